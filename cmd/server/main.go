package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/config"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/infra"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/repository"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/router"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/service"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Worker pool for async tasks (bill PDFs, email, ledger reconcile).
	// Handlers are wired here, at the composition root, so the pool has
	// full access to all infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)

	documentRepo := repository.NewDocumentRepository(db)
	salesBillRepo := repository.NewSalesBillRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	workerHandlers := &worker.WorkerHandlers{
		Document:  worker.NewDocumentWorker(documentRepo, salesBillRepo, dispatcher, cfg.PDFStoragePath, cfg.BusinessName),
		Email:     worker.NewEmailWorker(mailer, smtpCB, documentRepo),
		Reconcile: worker.NewReconcileWorker(service.NewSaleService(saleRepo)),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

	// Re-attempt failed PDF renders in the background
	worker.StartRetryCron(ctx, worker.RetryCronConfig{
		DocumentRepo:   documentRepo,
		BillRepo:       salesBillRepo,
		RDB:            rdb,
		PDFStoragePath: cfg.PDFStoragePath,
		BusinessName:   cfg.BusinessName,
	})

	r := router.New(cfg, db, rdb, dispatcher, smtpCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("ibfresh backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
