package service

import (
	"context"
	"testing"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/dto"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/model"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ─── stubs ───────────────────────────────────────────────────────────────────

type stubPurchaseBillRepo struct {
	bills    map[uuid.UUID]*model.PurchaseBill
	payments map[uuid.UUID][]model.Payment
}

var _ repository.PurchaseBillRepository = (*stubPurchaseBillRepo)(nil)

func newStubPurchaseBillRepo() *stubPurchaseBillRepo {
	return &stubPurchaseBillRepo{
		bills:    make(map[uuid.UUID]*model.PurchaseBill),
		payments: make(map[uuid.UUID][]model.Payment),
	}
}

func (s *stubPurchaseBillRepo) DB() *gorm.DB { return nil }

func (s *stubPurchaseBillRepo) Create(ctx context.Context, tx *gorm.DB, b *model.PurchaseBill) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	s.bills[b.ID] = b
	return nil
}

func (s *stubPurchaseBillRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseBill, error) {
	b, ok := s.bills[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *b
	clone.Payments = s.payments[id]
	return &clone, nil
}

func (s *stubPurchaseBillRepo) List(ctx context.Context, filter dto.PurchaseBillFilter) ([]model.PurchaseBill, int64, error) {
	var out []model.PurchaseBill
	for _, b := range s.bills {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (s *stubPurchaseBillRepo) UpdateHeaderTx(tx *gorm.DB, b *model.PurchaseBill) error {
	existing, ok := s.bills[b.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	items, deds := existing.Items, existing.Deductions
	*existing = *b
	existing.Items, existing.Deductions = items, deds
	return nil
}

func (s *stubPurchaseBillRepo) ReplaceLinesTx(tx *gorm.DB, billID uuid.UUID, items []model.PurchaseBillItem, deductions []model.PurchaseDeduction) error {
	b, ok := s.bills[billID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Items, b.Deductions = items, deductions
	return nil
}

func (s *stubPurchaseBillRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	delete(s.bills, id)
	delete(s.payments, id)
	return nil
}

func (s *stubPurchaseBillRepo) AddPayment(ctx context.Context, p *model.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.payments[p.BillID] = append(s.payments[p.BillID], *p)
	return nil
}

func (s *stubPurchaseBillRepo) SumPayments(ctx context.Context, billID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range s.payments[billID] {
		sum = sum.Add(p.Amount)
	}
	return sum, nil
}

func (s *stubPurchaseBillRepo) UpdateSettlement(ctx context.Context, billID uuid.UUID, amountPaid, balanceDue decimal.Decimal, status string) error {
	b, ok := s.bills[billID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.AmountPaid, b.BalanceDue, b.PaymentStatus = amountPaid, balanceDue, status
	return nil
}

type stubFarmerRepo struct {
	farmers map[uuid.UUID]*model.Farmer
}

var _ repository.FarmerRepository = (*stubFarmerRepo)(nil)

func (s *stubFarmerRepo) Create(ctx context.Context, f *model.Farmer) error { return nil }

func (s *stubFarmerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Farmer, error) {
	f, ok := s.farmers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (s *stubFarmerRepo) List(ctx context.Context, search string, includeInactive bool) ([]model.Farmer, error) {
	return nil, nil
}
func (s *stubFarmerRepo) Update(ctx context.Context, f *model.Farmer) error { return nil }
func (s *stubFarmerRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return nil
}

// ─── fixtures ────────────────────────────────────────────────────────────────

type purchaseBillFixture struct {
	svc    PurchaseBillService
	repo   *stubPurchaseBillRepo
	farmer *model.Farmer
	item   *model.Item
}

func buildPurchaseBillSvc(t *testing.T, itemCrateWeight string) *purchaseBillFixture {
	t.Helper()
	farmer := &model.Farmer{ID: uuid.New(), Name: "Ramesh", Active: true}
	item := &model.Item{
		ID:            uuid.New(),
		Name:          "Katla",
		CrateWeightKg: decimal.RequireFromString(itemCrateWeight),
		Active:        true,
	}

	repo := newStubPurchaseBillRepo()
	farmers := &stubFarmerRepo{farmers: map[uuid.UUID]*model.Farmer{farmer.ID: farmer}}
	items := &stubItemRepo{items: map[uuid.UUID]*model.Item{item.ID: item}}

	svc := NewPurchaseBillService(repo, farmers, items, nil, 35, 5)
	return &purchaseBillFixture{svc: svc, repo: repo, farmer: farmer, item: item}
}

func purchaseReq(f *purchaseBillFixture, crates int, rate string) dto.SavePurchaseBillRequest {
	return dto.SavePurchaseBillRequest{
		FarmerID: f.farmer.ID.String(),
		BillDate: "2025-03-14",
		Items: []dto.PurchaseItemRequest{
			{ItemID: f.item.ID.String(), Crates: crates,
				ApplyDeduction: true,
				RatePerKg:      decimal.RequireFromString(rate)},
		},
		CommissionPerKg: decimal.RequireFromString("0.5"),
	}
}

// ─── tests ───────────────────────────────────────────────────────────────────

func TestPurchaseBillCreate(t *testing.T) {
	f := buildPurchaseBillSvc(t, "35")

	res, err := f.svc.Create(context.Background(), purchaseReq(f, 10, "50"))
	require.NoError(t, err)

	// 10×35 = 350 actual, 5% off → 332.5 billable at 50/kg, plus 0.5/kg agent
	// commission on the billable weight.
	assert.Equal(t, "Ramesh", res.FarmerName)
	assert.Equal(t, "350", res.Items[0].ActualWeightKg.String())
	assert.Equal(t, "332.5", res.Items[0].BillableWeightKg.String())
	assert.Equal(t, "5", res.Items[0].DeductionPct.String())
	assert.Equal(t, "16625", res.Subtotal.String())
	assert.Equal(t, "166.25", res.CommissionAmount.String())
	assert.Equal(t, "16791.25", res.Total.String())
	assert.True(t, res.AmountPaid.IsZero())
	assert.Equal(t, "16791.25", res.BalanceDue.String())
	assert.Equal(t, model.StatusPending, res.PaymentStatus)
}

func TestPurchaseBillCreate_CrateWeightResolution(t *testing.T) {
	// Item default wins over the business default.
	f := buildPurchaseBillSvc(t, "40")
	res, err := f.svc.Create(context.Background(), purchaseReq(f, 1, "50"))
	require.NoError(t, err)
	assert.Equal(t, "40", res.Items[0].ActualWeightKg.String())

	// Per-line override wins over both.
	f = buildPurchaseBillSvc(t, "40")
	req := purchaseReq(f, 1, "50")
	req.Items[0].CrateWeightKg = decimal.RequireFromString("38")
	res, err = f.svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "38", res.Items[0].ActualWeightKg.String())

	// Zero item weight falls back to the business default (35).
	f = buildPurchaseBillSvc(t, "0")
	res, err = f.svc.Create(context.Background(), purchaseReq(f, 1, "50"))
	require.NoError(t, err)
	assert.Equal(t, "35", res.Items[0].ActualWeightKg.String())
}

func TestPurchaseBillCreate_FarmerNotFound(t *testing.T) {
	f := buildPurchaseBillSvc(t, "35")
	req := purchaseReq(f, 1, "50")
	req.FarmerID = uuid.NewString()

	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorContains(t, err, "farmer not found")
}

func TestPurchaseBillAddPayment(t *testing.T) {
	f := buildPurchaseBillSvc(t, "35")
	created, err := f.svc.Create(context.Background(), purchaseReq(f, 10, "50"))
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	// First instalment.
	res, err := f.svc.AddPayment(context.Background(), id, dto.AddPaymentRequest{
		Amount: decimal.RequireFromString("10000"),
		PaidOn: "2025-03-15",
		Mode:   "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, "10000", res.AmountPaid.String())
	assert.Equal(t, "6791.25", res.BalanceDue.String())
	assert.Equal(t, model.StatusPartial, res.PaymentStatus)

	// Second instalment settles the bill exactly.
	res, err = f.svc.AddPayment(context.Background(), id, dto.AddPaymentRequest{
		Amount: decimal.RequireFromString("6791.25"),
		PaidOn: "2025-03-20",
		Mode:   "upi",
	})
	require.NoError(t, err)
	assert.True(t, res.BalanceDue.IsZero())
	assert.Equal(t, model.StatusPaid, res.PaymentStatus)
	assert.Len(t, res.Payments, 2)
}

func TestPurchaseBillAddPayment_OverpayNeedsConfirm(t *testing.T) {
	f := buildPurchaseBillSvc(t, "35")
	created, err := f.svc.Create(context.Background(), purchaseReq(f, 10, "50"))
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	_, err = f.svc.AddPayment(context.Background(), id, dto.AddPaymentRequest{
		Amount: decimal.RequireFromString("20000"),
		PaidOn: "2025-03-15",
		Mode:   "cash",
	})
	assert.ErrorContains(t, err, "resend with confirm")

	res, err := f.svc.AddPayment(context.Background(), id, dto.AddPaymentRequest{
		Amount:  decimal.RequireFromString("20000"),
		PaidOn:  "2025-03-15",
		Mode:    "cash",
		Confirm: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "-3208.75", res.BalanceDue.String())
	assert.Equal(t, model.StatusPaid, res.PaymentStatus)
}

func TestPurchaseBillAddPayment_Validation(t *testing.T) {
	f := buildPurchaseBillSvc(t, "35")
	created, err := f.svc.Create(context.Background(), purchaseReq(f, 10, "50"))
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	_, err = f.svc.AddPayment(context.Background(), id, dto.AddPaymentRequest{
		Amount: decimal.Zero, PaidOn: "2025-03-15", Mode: "cash",
	})
	assert.ErrorContains(t, err, "must be positive")

	_, err = f.svc.AddPayment(context.Background(), id, dto.AddPaymentRequest{
		Amount: decimal.RequireFromString("100"), PaidOn: "15-03-2025", Mode: "cash",
	})
	assert.ErrorContains(t, err, "invalid paid_on")

	_, err = f.svc.AddPayment(context.Background(), uuid.New(), dto.AddPaymentRequest{
		Amount: decimal.RequireFromString("100"), PaidOn: "2025-03-15", Mode: "cash",
	})
	assert.ErrorContains(t, err, "bill not found")
}

func TestPurchaseBillUpdate_ResettlesAgainstPayments(t *testing.T) {
	f := buildPurchaseBillSvc(t, "35")
	created, err := f.svc.Create(context.Background(), purchaseReq(f, 10, "50"))
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	_, err = f.svc.AddPayment(context.Background(), id, dto.AddPaymentRequest{
		Amount: decimal.RequireFromString("5000"), PaidOn: "2025-03-15", Mode: "cash",
	})
	require.NoError(t, err)

	// Shrink the bill; the recorded payment survives and the balance resettles.
	res, err := f.svc.Update(context.Background(), id, purchaseReq(f, 5, "50"))
	require.NoError(t, err)
	assert.Equal(t, "5000", res.AmountPaid.String())
	assert.Equal(t, "8395.625", res.Total.String())
	assert.Equal(t, "3395.625", res.BalanceDue.String())
	assert.Equal(t, model.StatusPartial, res.PaymentStatus)
}
