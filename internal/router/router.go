package router

import (
	"time"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/config"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/handler"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/infra"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/middleware"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/repository"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/service"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher, smtpCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	itemRepo := repository.NewItemRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	farmerRepo := repository.NewFarmerRepository(db)
	salesBillRepo := repository.NewSalesBillRepository(db)
	purchaseBillRepo := repository.NewPurchaseBillRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	rateRepo := repository.NewRateRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	rateSvc := service.NewRateService(rateRepo, rdb)
	itemSvc := service.NewItemService(itemRepo, cfg.CrateWeightKg)
	customerSvc := service.NewCustomerService(customerRepo)
	farmerSvc := service.NewFarmerService(farmerRepo)
	salesBillSvc := service.NewSalesBillService(salesBillRepo, customerRepo, itemRepo, rateSvc, dispatcher)
	purchaseBillSvc := service.NewPurchaseBillService(purchaseBillRepo, farmerRepo, itemRepo, rateSvc, cfg.CrateWeightKg, cfg.WeightDeductionP)
	saleSvc := service.NewSaleService(saleRepo)
	expenseSvc := service.NewExpenseService(expenseRepo)
	summarySvc := service.NewSummaryService(summaryRepo)
	documentSvc := service.NewDocumentService(documentRepo, salesBillRepo, dispatcher, cfg.PDFStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	itemsH := handler.NewItemsHandler(itemSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	farmersH := handler.NewFarmersHandler(farmerSvc)
	salesBillsH := handler.NewSalesBillsHandler(salesBillSvc, documentSvc)
	purchaseBillsH := handler.NewPurchaseBillsHandler(purchaseBillSvc)
	salesH := handler.NewSalesHandler(saleSvc, dispatcher)
	expensesH := handler.NewExpensesHandler(expenseSvc)
	summaryH := handler.NewSummaryHandler(summarySvc)
	ratesH := handler.NewRatesHandler(rateSvc)
	documentsH := handler.NewDocumentsHandler(documentSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	// Protected routes. Roles: operator (daily billing), manager (everything)
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	staff := middleware.RequireRole("operator", "manager")
	managerOnly := middleware.RequireRole("manager")

	v1 := r.Group("/v1", jwtMW)
	{
		// Master data — staff can read, manager can write
		v1.GET("/items", staff, itemsH.List)
		items := v1.Group("/items", managerOnly)
		{
			items.POST("", itemsH.Create)
			items.PUT("/:id", itemsH.Update)
			items.DELETE("/:id", itemsH.Deactivate)
			items.PATCH("/:id/reactivate", itemsH.Reactivate)
		}

		v1.GET("/customers", staff, customersH.List)
		customers := v1.Group("/customers", staff)
		{
			customers.POST("", customersH.Create)
			customers.PUT("/:id", customersH.Update)
		}
		v1.DELETE("/customers/:id", managerOnly, customersH.Deactivate)

		v1.GET("/farmers", staff, farmersH.List)
		farmers := v1.Group("/farmers", staff)
		{
			farmers.POST("", farmersH.Create)
			farmers.PUT("/:id", farmersH.Update)
		}
		v1.DELETE("/farmers/:id", managerOnly, farmersH.Deactivate)

		// Rates — pre-fill for bill entry
		v1.GET("/rates", staff, ratesH.Resolve)

		// Sales bills
		v1.POST("/sales-bills", staff, salesBillsH.Create)
		v1.GET("/sales-bills", staff, salesBillsH.List)
		v1.GET("/sales-bills/:id", staff, salesBillsH.Get)
		v1.PUT("/sales-bills/:id", staff, salesBillsH.Update)
		v1.DELETE("/sales-bills/:id", managerOnly, salesBillsH.Delete)
		v1.GET("/sales-bills/:id/document", staff, salesBillsH.GetDocument)
		v1.POST("/sales-bills/:id/document", staff, salesBillsH.RegenerateDocument)
		v1.GET("/documents/:id/pdf", staff, documentsH.DownloadPDF)

		// Purchase bills
		v1.POST("/purchase-bills", staff, purchaseBillsH.Create)
		v1.GET("/purchase-bills", staff, purchaseBillsH.List)
		v1.GET("/purchase-bills/:id", staff, purchaseBillsH.Get)
		v1.PUT("/purchase-bills/:id", staff, purchaseBillsH.Update)
		v1.DELETE("/purchase-bills/:id", managerOnly, purchaseBillsH.Delete)
		v1.POST("/purchase-bills/:id/payments", staff, purchaseBillsH.AddPayment)

		// Sale ledger
		v1.POST("/sales", staff, salesH.Upsert)
		v1.GET("/sales", staff, salesH.ListByDate)
		v1.POST("/sales/reconcile", managerOnly, salesH.Reconcile)

		// Expenses
		v1.POST("/expenses", staff, expensesH.Create)
		v1.GET("/expenses", staff, expensesH.List)
		v1.PUT("/expenses/:id", staff, expensesH.Update)
		v1.DELETE("/expenses/:id", managerOnly, expensesH.Delete)

		// Summaries
		summary := v1.Group("/summary", staff)
		{
			summary.GET("/daily", summaryH.Daily)
			summary.GET("/monthly", summaryH.Monthly)
			summary.GET("/pending-customers", summaryH.PendingCustomers)
			summary.GET("/pending-farmers", summaryH.PendingFarmers)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
