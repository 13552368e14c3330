package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/billing"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/dto"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/model"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/repository"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type SalesBillService interface {
	Create(ctx context.Context, req dto.SaveSalesBillRequest) (*dto.SalesBillResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.SaveSalesBillRequest) (*dto.SalesBillResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SalesBillResponse, error)
	List(ctx context.Context, filter dto.SalesBillFilter) (*dto.SalesBillListResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type salesBillService struct {
	repo         repository.SalesBillRepository
	customerRepo repository.CustomerRepository
	itemRepo     repository.ItemRepository
	rates        RateService
	dispatcher   *worker.Dispatcher
}

func NewSalesBillService(
	repo repository.SalesBillRepository,
	customerRepo repository.CustomerRepository,
	itemRepo repository.ItemRepository,
	rates RateService,
	dispatcher *worker.Dispatcher,
) SalesBillService {
	return &salesBillService{
		repo:         repo,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
		rates:        rates,
		dispatcher:   dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Create ────────────────────────────────────────────────────────────────────
//  1. Resolve customer and items (pre-flight, outside TX)
//  2. Look up the customer's outstanding balance across other bills
//  3. Compute the bill (pure, blocks on validation failure)
//  4. Assign the next bill number
//  5. TX: insert bill + line items
//  6. (async) invalidate rate cache, dispatch document job

func (s *salesBillService) Create(ctx context.Context, req dto.SaveSalesBillRequest) (*dto.SalesBillResponse, error) {
	customer, billDate, lines, err := s.resolveDraft(ctx, req)
	if err != nil {
		return nil, err
	}

	// Outstanding balance from all other unpaid/partial bills. A read failure
	// degrades to zero rather than blocking the sale — the balance can be
	// corrected by editing the bill later.
	prevBalance, err := s.repo.OutstandingBalance(ctx, customer.ID, uuid.Nil)
	if err != nil {
		log.Warn().Err(err).Str("customer_id", customer.ID.String()).
			Msg("sales_bill: outstanding balance lookup failed, defaulting to 0")
		prevBalance = decimal.Zero
	}

	res, err := billing.ComputeSalesBill(billing.SalesDraft{
		Lines:           lines,
		Discount:        req.Discount,
		PreviousBalance: prevBalance,
		AmountReceived:  req.AmountReceived,
	})
	if err != nil {
		return nil, err
	}

	// Bill number is assigned once, at creation. If the lookup fails we fall
	// back to a timestamp-derived placeholder instead of failing the save.
	var number string
	if highest, err := s.repo.HighestBillNumber(ctx); err != nil {
		log.Warn().Err(err).Msg("sales_bill: highest bill number lookup failed, using fallback")
		number = billing.FallbackBillNumber(time.Now())
	} else {
		number = billing.NextBillNumber(highest)
	}

	bill := buildSalesBill(res, customer.ID, billDate)
	bill.BillNumber = number

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, bill)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.afterSave(ctx, bill, req.EmailTo)
	bill.Customer = customer
	return salesBillToResponse(bill), nil
}

// ── Update ────────────────────────────────────────────────────────────────────
// Recomputes everything and replaces the full line-item set (delete-all,
// insert-all — never a diff). The original bill number is preserved.

func (s *salesBillService) Update(ctx context.Context, id uuid.UUID, req dto.SaveSalesBillRequest) (*dto.SalesBillResponse, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("bill not found")
	}

	customer, billDate, lines, err := s.resolveDraft(ctx, req)
	if err != nil {
		return nil, err
	}

	// Exclude this bill from its own previous balance.
	prevBalance, err := s.repo.OutstandingBalance(ctx, customer.ID, id)
	if err != nil {
		log.Warn().Err(err).Str("bill_id", id.String()).
			Msg("sales_bill: outstanding balance lookup failed, defaulting to 0")
		prevBalance = decimal.Zero
	}

	res, err := billing.ComputeSalesBill(billing.SalesDraft{
		Lines:           lines,
		Discount:        req.Discount,
		PreviousBalance: prevBalance,
		AmountReceived:  req.AmountReceived,
	})
	if err != nil {
		return nil, err
	}

	bill := buildSalesBill(res, customer.ID, billDate)
	bill.ID = id
	bill.BillNumber = existing.BillNumber // never regenerated on update

	items := bill.Items
	bill.Items = nil
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateHeaderTx(tx, bill); err != nil {
			return err
		}
		return s.repo.ReplaceItemsTx(tx, id, items)
	})
	if txErr != nil {
		return nil, txErr
	}
	bill.Items = items

	s.afterSave(ctx, bill, req.EmailTo)
	bill.Customer = customer
	return salesBillToResponse(bill), nil
}

func (s *salesBillService) Get(ctx context.Context, id uuid.UUID) (*dto.SalesBillResponse, error) {
	bill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("bill not found")
	}
	return salesBillToResponse(bill), nil
}

func (s *salesBillService) List(ctx context.Context, filter dto.SalesBillFilter) (*dto.SalesBillListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	bills, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SalesBillResponse, 0, len(bills))
	for i := range bills {
		items = append(items, *salesBillToResponse(&bills[i]))
	}
	return &dto.SalesBillListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *salesBillService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("bill not found")
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.DeleteTx(tx, id)
	})
}

// ── helpers ──────────────────────────────────────────────────────────────────

// resolveDraft validates the customer, parses the date, and resolves every
// line's item reference, denormalizing the item name into the line.
func (s *salesBillService) resolveDraft(ctx context.Context, req dto.SaveSalesBillRequest) (*model.Customer, time.Time, []billing.SalesLine, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, time.Time{}, nil, fmt.Errorf("invalid customer_id: %w", err)
	}
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, time.Time{}, nil, errors.New("customer not found")
	}
	billDate, err := time.Parse(dateLayout, req.BillDate)
	if err != nil {
		return nil, time.Time{}, nil, fmt.Errorf("invalid bill_date: %w", err)
	}

	lines := make([]billing.SalesLine, 0, len(req.Items))
	for _, it := range req.Items {
		itemID, err := uuid.Parse(it.ItemID)
		if err != nil {
			return nil, time.Time{}, nil, fmt.Errorf("invalid item_id: %w", err)
		}
		item, err := s.itemRepo.FindByID(ctx, itemID)
		if err != nil {
			return nil, time.Time{}, nil, fmt.Errorf("item %s not found", it.ItemID)
		}
		lines = append(lines, billing.SalesLine{
			ItemID:       itemID,
			ItemName:     item.Name,
			Crates:       it.Crates,
			Kg:           it.Kg,
			RatePerCrate: it.RatePerCrate,
			RatePerKg:    it.RatePerKg,
		})
	}
	return customer, billDate, lines, nil
}

func buildSalesBill(res *billing.SalesResult, customerID uuid.UUID, billDate time.Time) *model.SalesBill {
	bill := &model.SalesBill{
		CustomerID:      customerID,
		BillDate:        billDate,
		Subtotal:        res.Subtotal,
		Discount:        res.Discount,
		Total:           res.Total,
		PreviousBalance: res.PreviousBalance,
		GrandTotal:      res.GrandTotal,
		AmountReceived:  res.AmountReceived,
		BalanceDue:      res.BalanceDue,
		PaymentStatus:   res.PaymentStatus,
	}
	for _, ln := range res.Lines {
		bill.Items = append(bill.Items, model.LineItem{
			ItemID:       ln.ItemID,
			ItemName:     ln.ItemName,
			Crates:       ln.Crates,
			Kg:           ln.Kg,
			RatePerCrate: ln.RatePerCrate,
			RatePerKg:    ln.RatePerKg,
			Amount:       ln.Amount,
		})
	}
	return bill
}

// afterSave runs the best-effort side effects: drop cached rates that this
// bill may have refreshed, and enqueue the billing document render.
func (s *salesBillService) afterSave(ctx context.Context, bill *model.SalesBill, emailTo *string) {
	if s.rates != nil {
		ids := make([]uuid.UUID, 0, len(bill.Items))
		for _, it := range bill.Items {
			ids = append(ids, it.ItemID)
		}
		s.rates.Invalidate(ctx, RateKindSales, ids)
	}
	if s.dispatcher != nil {
		payload := worker.DocumentJobPayload{SalesBillID: bill.ID.String()}
		if emailTo != nil && *emailTo != "" {
			payload.EmailTo = emailTo
		}
		if err := s.dispatcher.EnqueueDocument(ctx, payload); err != nil {
			log.Warn().Err(err).Str("bill_id", bill.ID.String()).
				Msg("sales_bill: failed to enqueue document job")
		}
	}
}

func salesBillToResponse(b *model.SalesBill) *dto.SalesBillResponse {
	items := make([]dto.LineItemResponse, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, dto.LineItemResponse{
			ItemID:       it.ItemID.String(),
			ItemName:     it.ItemName,
			Crates:       it.Crates,
			Kg:           it.Kg,
			RatePerCrate: it.RatePerCrate,
			RatePerKg:    it.RatePerKg,
			Amount:       it.Amount,
		})
	}
	customerName := ""
	if b.Customer != nil {
		customerName = b.Customer.Name
	}
	return &dto.SalesBillResponse{
		ID:              b.ID.String(),
		BillNumber:      b.BillNumber,
		CustomerID:      b.CustomerID.String(),
		CustomerName:    customerName,
		BillDate:        b.BillDate.Format(dateLayout),
		Items:           items,
		Subtotal:        b.Subtotal,
		Discount:        b.Discount,
		Total:           b.Total,
		PreviousBalance: b.PreviousBalance,
		GrandTotal:      b.GrandTotal,
		AmountReceived:  b.AmountReceived,
		BalanceDue:      b.BalanceDue,
		PaymentStatus:   b.PaymentStatus,
		CreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
