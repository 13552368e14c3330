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

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseBillService interface {
	Create(ctx context.Context, req dto.SavePurchaseBillRequest) (*dto.PurchaseBillResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.SavePurchaseBillRequest) (*dto.PurchaseBillResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PurchaseBillResponse, error)
	List(ctx context.Context, filter dto.PurchaseBillFilter) (*dto.PurchaseBillListResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddPayment(ctx context.Context, billID uuid.UUID, req dto.AddPaymentRequest) (*dto.PurchaseBillResponse, error)
}

type purchaseBillService struct {
	repo       repository.PurchaseBillRepository
	farmerRepo repository.FarmerRepository
	itemRepo   repository.ItemRepository
	rates      RateService
	// Business defaults applied when a draft leaves them unset.
	defaultCrateWeight decimal.Decimal
	defaultDeduction   decimal.Decimal
}

func NewPurchaseBillService(
	repo repository.PurchaseBillRepository,
	farmerRepo repository.FarmerRepository,
	itemRepo repository.ItemRepository,
	rates RateService,
	defaultCrateWeightKg, defaultDeductionPct int,
) PurchaseBillService {
	return &purchaseBillService{
		repo:               repo,
		farmerRepo:         farmerRepo,
		itemRepo:           itemRepo,
		rates:              rates,
		defaultCrateWeight: decimal.NewFromInt(int64(defaultCrateWeightKg)),
		defaultDeduction:   decimal.NewFromInt(int64(defaultDeductionPct)),
	}
}

// ── Create ────────────────────────────────────────────────────────────────────

func (s *purchaseBillService) Create(ctx context.Context, req dto.SavePurchaseBillRequest) (*dto.PurchaseBillResponse, error) {
	farmer, billDate, draft, err := s.resolveDraft(ctx, req)
	if err != nil {
		return nil, err
	}

	res, err := billing.ComputePurchaseBill(*draft)
	if err != nil {
		return nil, err
	}

	// A fresh bill has no payments yet.
	bill := buildPurchaseBill(res, req.OtherDeductions, farmer.ID, billDate)
	bill.AmountPaid = decimal.Zero
	bill.BalanceDue, bill.PaymentStatus = billing.Settle(res.Total, decimal.Zero)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, bill)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.invalidateRates(ctx, bill)
	bill.Farmer = farmer
	return purchaseBillToResponse(bill), nil
}

// ── Update ────────────────────────────────────────────────────────────────────
// Items and deductions are replaced wholesale; the payment history is kept and
// the balance resettled against the new total.

func (s *purchaseBillService) Update(ctx context.Context, id uuid.UUID, req dto.SavePurchaseBillRequest) (*dto.PurchaseBillResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, errors.New("bill not found")
	}

	farmer, billDate, draft, err := s.resolveDraft(ctx, req)
	if err != nil {
		return nil, err
	}

	res, err := billing.ComputePurchaseBill(*draft)
	if err != nil {
		return nil, err
	}

	amountPaid, err := s.repo.SumPayments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("payment history lookup failed: %w", err)
	}

	bill := buildPurchaseBill(res, req.OtherDeductions, farmer.ID, billDate)
	bill.ID = id
	bill.AmountPaid = amountPaid
	bill.BalanceDue, bill.PaymentStatus = billing.Settle(res.Total, amountPaid)

	items, deductions := bill.Items, bill.Deductions
	bill.Items, bill.Deductions = nil, nil
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateHeaderTx(tx, bill); err != nil {
			return err
		}
		return s.repo.ReplaceLinesTx(tx, id, items, deductions)
	})
	if txErr != nil {
		return nil, txErr
	}
	bill.Items, bill.Deductions = items, deductions

	s.invalidateRates(ctx, bill)
	bill.Farmer = farmer
	return purchaseBillToResponse(bill), nil
}

func (s *purchaseBillService) Get(ctx context.Context, id uuid.UUID) (*dto.PurchaseBillResponse, error) {
	bill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("bill not found")
	}
	return purchaseBillToResponse(bill), nil
}

func (s *purchaseBillService) List(ctx context.Context, filter dto.PurchaseBillFilter) (*dto.PurchaseBillListResponse, error) {
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
	items := make([]dto.PurchaseBillResponse, 0, len(bills))
	for i := range bills {
		items = append(items, *purchaseBillToResponse(&bills[i]))
	}
	return &dto.PurchaseBillListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *purchaseBillService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("bill not found")
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.DeleteTx(tx, id)
	})
}

// ── AddPayment ────────────────────────────────────────────────────────────────
// Appends an immutable payment record and resettles the bill. No cap on the
// amount: overpaying flips balance_due negative (farmer credit), but only
// after the caller has explicitly confirmed.

func (s *purchaseBillService) AddPayment(ctx context.Context, billID uuid.UUID, req dto.AddPaymentRequest) (*dto.PurchaseBillResponse, error) {
	bill, err := s.repo.FindByID(ctx, billID)
	if err != nil {
		return nil, errors.New("bill not found")
	}
	paidOn, err := time.Parse(dateLayout, req.PaidOn)
	if err != nil {
		return nil, fmt.Errorf("invalid paid_on: %w", err)
	}
	if !req.Amount.IsPositive() {
		return nil, errors.New("payment amount must be positive")
	}

	if bill.AmountPaid.Add(req.Amount).GreaterThan(bill.Total) && !req.Confirm {
		return nil, fmt.Errorf("payment exceeds balance due of %s — resend with confirm to record the overpayment",
			bill.BalanceDue.StringFixed(2))
	}

	payment := &model.Payment{
		BillID: billID,
		PaidOn: paidOn,
		Amount: req.Amount,
		Mode:   req.Mode,
		Note:   req.Note,
	}
	if err := s.repo.AddPayment(ctx, payment); err != nil {
		return nil, err
	}

	// Recompute from the source of truth, not by incrementing in memory.
	amountPaid, err := s.repo.SumPayments(ctx, billID)
	if err != nil {
		return nil, err
	}
	balanceDue, status := billing.Settle(bill.Total, amountPaid)
	if err := s.repo.UpdateSettlement(ctx, billID, amountPaid, balanceDue, status); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	return purchaseBillToResponse(updated), nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (s *purchaseBillService) resolveDraft(ctx context.Context, req dto.SavePurchaseBillRequest) (*model.Farmer, time.Time, *billing.PurchaseDraft, error) {
	farmerID, err := uuid.Parse(req.FarmerID)
	if err != nil {
		return nil, time.Time{}, nil, fmt.Errorf("invalid farmer_id: %w", err)
	}
	farmer, err := s.farmerRepo.FindByID(ctx, farmerID)
	if err != nil {
		return nil, time.Time{}, nil, errors.New("farmer not found")
	}
	billDate, err := time.Parse(dateLayout, req.BillDate)
	if err != nil {
		return nil, time.Time{}, nil, fmt.Errorf("invalid bill_date: %w", err)
	}

	draft := &billing.PurchaseDraft{CommissionPerKg: req.CommissionPerKg}
	for _, it := range req.Items {
		itemID, err := uuid.Parse(it.ItemID)
		if err != nil {
			return nil, time.Time{}, nil, fmt.Errorf("invalid item_id: %w", err)
		}
		item, err := s.itemRepo.FindByID(ctx, itemID)
		if err != nil {
			return nil, time.Time{}, nil, fmt.Errorf("item %s not found", it.ItemID)
		}

		// Per-line override → item default → business default, in that order.
		crateWeight := it.CrateWeightKg
		if crateWeight.IsZero() {
			crateWeight = item.CrateWeightKg
		}
		if crateWeight.IsZero() {
			crateWeight = s.defaultCrateWeight
		}
		deductionPct := it.DeductionPct
		if it.ApplyDeduction && deductionPct.IsZero() {
			deductionPct = s.defaultDeduction
		}

		draft.Lines = append(draft.Lines, billing.PurchaseLine{
			ItemID:         itemID,
			ItemName:       item.Name,
			Crates:         it.Crates,
			CrateWeightKg:  crateWeight,
			LooseKg:        it.LooseKg,
			ApplyDeduction: it.ApplyDeduction,
			DeductionPct:   deductionPct,
			RatePerKg:      it.RatePerKg,
		})
	}
	for _, d := range req.OtherDeductions {
		draft.OtherDeductions = append(draft.OtherDeductions, billing.NamedAmount{
			Label:  d.Label,
			Amount: d.Amount,
		})
	}
	return farmer, billDate, draft, nil
}

func buildPurchaseBill(res *billing.PurchaseResult, deductions []dto.DeductionRequest, farmerID uuid.UUID, billDate time.Time) *model.PurchaseBill {
	bill := &model.PurchaseBill{
		FarmerID:              farmerID,
		BillDate:              billDate,
		GrossAmount:           res.GrossAmount,
		WeightDeductionAmount: res.WeightDeductionAmount,
		Subtotal:              res.Subtotal,
		TotalBillableKg:       res.TotalBillableKg,
		CommissionPerKg:       res.CommissionPerKg,
		CommissionAmount:      res.CommissionAmount,
		OtherDeductionsTotal:  res.OtherDeductionsTotal,
		Total:                 res.Total,
	}
	for _, ln := range res.Lines {
		bill.Items = append(bill.Items, model.PurchaseBillItem{
			ItemID:           ln.ItemID,
			ItemName:         ln.ItemName,
			Crates:           ln.Crates,
			CrateWeightKg:    ln.CrateWeightKg,
			LooseKg:          ln.LooseKg,
			ApplyDeduction:   ln.ApplyDeduction,
			DeductionPct:     ln.DeductionPct,
			ActualWeightKg:   ln.ActualWeightKg,
			BillableWeightKg: ln.BillableWeightKg,
			RatePerKg:        ln.RatePerKg,
			Amount:           ln.Amount,
		})
	}
	for _, d := range deductions {
		bill.Deductions = append(bill.Deductions, model.PurchaseDeduction{
			Label:  d.Label,
			Amount: d.Amount,
		})
	}
	return bill
}

func (s *purchaseBillService) invalidateRates(ctx context.Context, bill *model.PurchaseBill) {
	if s.rates == nil {
		return
	}
	ids := make([]uuid.UUID, 0, len(bill.Items))
	for _, it := range bill.Items {
		ids = append(ids, it.ItemID)
	}
	s.rates.Invalidate(ctx, RateKindPurchase, ids)
}

func purchaseBillToResponse(b *model.PurchaseBill) *dto.PurchaseBillResponse {
	items := make([]dto.PurchaseItemResponse, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, dto.PurchaseItemResponse{
			ItemID:           it.ItemID.String(),
			ItemName:         it.ItemName,
			Crates:           it.Crates,
			CrateWeightKg:    it.CrateWeightKg,
			LooseKg:          it.LooseKg,
			ApplyDeduction:   it.ApplyDeduction,
			DeductionPct:     it.DeductionPct,
			ActualWeightKg:   it.ActualWeightKg,
			BillableWeightKg: it.BillableWeightKg,
			RatePerKg:        it.RatePerKg,
			Amount:           it.Amount,
		})
	}
	deductions := make([]dto.DeductionResponse, 0, len(b.Deductions))
	for _, d := range b.Deductions {
		deductions = append(deductions, dto.DeductionResponse{Label: d.Label, Amount: d.Amount})
	}
	payments := make([]dto.PaymentResponse, 0, len(b.Payments))
	for _, p := range b.Payments {
		payments = append(payments, dto.PaymentResponse{
			ID:     p.ID.String(),
			Amount: p.Amount,
			PaidOn: p.PaidOn.Format(dateLayout),
			Mode:   p.Mode,
			Note:   p.Note,
		})
	}
	farmerName := ""
	if b.Farmer != nil {
		farmerName = b.Farmer.Name
	}
	return &dto.PurchaseBillResponse{
		ID:                    b.ID.String(),
		FarmerID:              b.FarmerID.String(),
		FarmerName:            farmerName,
		BillDate:              b.BillDate.Format(dateLayout),
		Items:                 items,
		GrossAmount:           b.GrossAmount,
		WeightDeductionAmount: b.WeightDeductionAmount,
		Subtotal:              b.Subtotal,
		TotalBillableKg:       b.TotalBillableKg,
		CommissionPerKg:       b.CommissionPerKg,
		CommissionAmount:      b.CommissionAmount,
		OtherDeductions:       deductions,
		OtherDeductionsTotal:  b.OtherDeductionsTotal,
		Total:                 b.Total,
		AmountPaid:            b.AmountPaid,
		BalanceDue:            b.BalanceDue,
		PaymentStatus:         b.PaymentStatus,
		Payments:              payments,
		CreatedAt:             b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
