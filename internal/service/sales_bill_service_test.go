package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

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

type stubSalesBillRepo struct {
	bills       map[uuid.UUID]*model.SalesBill
	highest     string
	highestErr  error
	outstanding decimal.Decimal
	// lastExcluded records the exclude argument of the latest
	// OutstandingBalance call.
	lastExcluded uuid.UUID
	deleted      []uuid.UUID
}

var _ repository.SalesBillRepository = (*stubSalesBillRepo)(nil)

func newStubSalesBillRepo() *stubSalesBillRepo {
	return &stubSalesBillRepo{
		bills:       make(map[uuid.UUID]*model.SalesBill),
		outstanding: decimal.Zero,
	}
}

func (s *stubSalesBillRepo) DB() *gorm.DB { return nil }

func (s *stubSalesBillRepo) Create(ctx context.Context, tx *gorm.DB, b *model.SalesBill) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	s.bills[b.ID] = b
	return nil
}

func (s *stubSalesBillRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.SalesBill, error) {
	b, ok := s.bills[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (s *stubSalesBillRepo) List(ctx context.Context, filter dto.SalesBillFilter) ([]model.SalesBill, int64, error) {
	var out []model.SalesBill
	for _, b := range s.bills {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (s *stubSalesBillRepo) UpdateHeaderTx(tx *gorm.DB, b *model.SalesBill) error {
	existing, ok := s.bills[b.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	items := existing.Items
	*existing = *b
	existing.Items = items
	return nil
}

func (s *stubSalesBillRepo) ReplaceItemsTx(tx *gorm.DB, billID uuid.UUID, items []model.LineItem) error {
	b, ok := s.bills[billID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Items = items
	return nil
}

func (s *stubSalesBillRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	delete(s.bills, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubSalesBillRepo) HighestBillNumber(ctx context.Context) (string, error) {
	return s.highest, s.highestErr
}

func (s *stubSalesBillRepo) OutstandingBalance(ctx context.Context, customerID uuid.UUID, exclude uuid.UUID) (decimal.Decimal, error) {
	s.lastExcluded = exclude
	return s.outstanding, nil
}

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

func (s *stubCustomerRepo) Create(ctx context.Context, c *model.Customer) error { return nil }

func (s *stubCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := s.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (s *stubCustomerRepo) List(ctx context.Context, search string, includeInactive bool) ([]model.Customer, error) {
	return nil, nil
}
func (s *stubCustomerRepo) Update(ctx context.Context, c *model.Customer) error { return nil }
func (s *stubCustomerRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return nil
}

type stubItemRepo struct {
	items map[uuid.UUID]*model.Item
}

var _ repository.ItemRepository = (*stubItemRepo)(nil)

func (s *stubItemRepo) Create(ctx context.Context, it *model.Item) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	s.items[it.ID] = it
	return nil
}

func (s *stubItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	it, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return it, nil
}

func (s *stubItemRepo) List(ctx context.Context, includeInactive bool) ([]model.Item, error) {
	var out []model.Item
	for _, it := range s.items {
		if it.Active || includeInactive {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (s *stubItemRepo) Update(ctx context.Context, it *model.Item) error {
	s.items[it.ID] = it
	return nil
}

func (s *stubItemRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	it, ok := s.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	it.Active = active
	return nil
}

// ─── fixtures ────────────────────────────────────────────────────────────────

type salesBillFixture struct {
	svc      SalesBillService
	repo     *stubSalesBillRepo
	customer *model.Customer
	item     *model.Item
}

func buildSalesBillSvc(t *testing.T) *salesBillFixture {
	t.Helper()
	customer := &model.Customer{ID: uuid.New(), Name: "Hotel Blue Bay", Active: true}
	item := &model.Item{ID: uuid.New(), Name: "Rohu", CrateWeightKg: decimal.NewFromInt(35), Active: true}

	repo := newStubSalesBillRepo()
	customers := &stubCustomerRepo{customers: map[uuid.UUID]*model.Customer{customer.ID: customer}}
	items := &stubItemRepo{items: map[uuid.UUID]*model.Item{item.ID: item}}

	// rates and dispatcher are nil: cache invalidation and document dispatch
	// are skipped in unit mode.
	svc := NewSalesBillService(repo, customers, items, nil, nil)
	return &salesBillFixture{svc: svc, repo: repo, customer: customer, item: item}
}

func saveReq(f *salesBillFixture, crates int, rate, received string) dto.SaveSalesBillRequest {
	return dto.SaveSalesBillRequest{
		CustomerID: f.customer.ID.String(),
		BillDate:   "2025-03-14",
		Items: []dto.LineItemRequest{
			{ItemID: f.item.ID.String(), Crates: crates, RatePerCrate: decimal.RequireFromString(rate)},
		},
		AmountReceived: decimal.RequireFromString(received),
	}
}

// ─── tests ───────────────────────────────────────────────────────────────────

func TestSalesBillCreate(t *testing.T) {
	f := buildSalesBillSvc(t)
	f.repo.highest = "IB-0041"
	f.repo.outstanding = decimal.RequireFromString("200")

	res, err := f.svc.Create(context.Background(), saveReq(f, 2, "500", "600"))
	require.NoError(t, err)

	assert.Equal(t, "IB-0042", res.BillNumber)
	assert.Equal(t, "Hotel Blue Bay", res.CustomerName)
	assert.Equal(t, "1000", res.Subtotal.String())
	assert.Equal(t, "200", res.PreviousBalance.String())
	assert.Equal(t, "1200", res.GrandTotal.String())
	assert.Equal(t, "600", res.BalanceDue.String())
	assert.Equal(t, model.StatusPartial, res.PaymentStatus)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Rohu", res.Items[0].ItemName)
	assert.Len(t, f.repo.bills, 1)
}

func TestSalesBillCreate_CustomerNotFound(t *testing.T) {
	f := buildSalesBillSvc(t)
	req := saveReq(f, 1, "500", "0")
	req.CustomerID = uuid.NewString()

	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorContains(t, err, "customer not found")
}

func TestSalesBillCreate_UnknownItem(t *testing.T) {
	f := buildSalesBillSvc(t)
	req := saveReq(f, 1, "500", "0")
	req.Items[0].ItemID = uuid.NewString()

	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorContains(t, err, "not found")
}

func TestSalesBillCreate_ZeroRateBlocked(t *testing.T) {
	f := buildSalesBillSvc(t)
	_, err := f.svc.Create(context.Background(), saveReq(f, 2, "0", "0"))
	assert.ErrorContains(t, err, "crate rate not set")
	assert.Empty(t, f.repo.bills)
}

func TestSalesBillCreate_NumberFallbackOnLookupFailure(t *testing.T) {
	f := buildSalesBillSvc(t)
	f.repo.highestErr = errors.New("connection reset")

	res, err := f.svc.Create(context.Background(), saveReq(f, 1, "500", "500"))
	require.NoError(t, err)
	// Timestamp placeholder, not the IB-%04d series.
	assert.True(t, strings.HasPrefix(res.BillNumber, "IB-"))
	assert.NotEqual(t, "IB-0001", res.BillNumber)
}

func TestSalesBillUpdate(t *testing.T) {
	f := buildSalesBillSvc(t)
	f.repo.highest = "IB-0007"

	created, err := f.svc.Create(context.Background(), saveReq(f, 2, "500", "1000"))
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	// The edit recomputes everything, but the number survives.
	updated, err := f.svc.Update(context.Background(), id, saveReq(f, 3, "400", "200"))
	require.NoError(t, err)
	assert.Equal(t, created.BillNumber, updated.BillNumber)
	assert.Equal(t, "1200", updated.Subtotal.String())
	assert.Equal(t, model.StatusPartial, updated.PaymentStatus)

	// The bill being edited never feeds its own previous balance.
	assert.Equal(t, id, f.repo.lastExcluded)
}

func TestSalesBillUpdate_NotFound(t *testing.T) {
	f := buildSalesBillSvc(t)
	_, err := f.svc.Update(context.Background(), uuid.New(), saveReq(f, 1, "500", "0"))
	assert.ErrorContains(t, err, "bill not found")
}

func TestSalesBillDelete(t *testing.T) {
	f := buildSalesBillSvc(t)
	created, err := f.svc.Create(context.Background(), saveReq(f, 1, "500", "500"))
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	require.NoError(t, f.svc.Delete(context.Background(), id))
	assert.Empty(t, f.repo.bills)

	err = f.svc.Delete(context.Background(), id)
	assert.ErrorContains(t, err, "bill not found")
}

func TestBillResponse_CreatedAtIsUTC(t *testing.T) {
	// Bills created in local office time must serialize as real UTC instants,
	// not local wall time with a Z tacked on.
	ist := time.FixedZone("IST", 5*3600+1800)
	createdAt := time.Date(2025, 3, 14, 9, 30, 0, 0, ist)

	sales := salesBillToResponse(&model.SalesBill{CreatedAt: createdAt})
	assert.Equal(t, "2025-03-14T04:00:00Z", sales.CreatedAt)

	purchase := purchaseBillToResponse(&model.PurchaseBill{CreatedAt: createdAt})
	assert.Equal(t, "2025-03-14T04:00:00Z", purchase.CreatedAt)
}

func TestSalesBillList_DefaultsPagination(t *testing.T) {
	f := buildSalesBillSvc(t)
	_, err := f.svc.Create(context.Background(), saveReq(f, 1, "500", "500"))
	require.NoError(t, err)

	res, err := f.svc.List(context.Background(), dto.SalesBillFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 50, res.Limit)
	assert.EqualValues(t, 1, res.Total)
}
