package service

import (
	"context"
	"errors"
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

// stubSaleRepo keeps rows in insertion order and serves reads newest-first,
// matching the real repo's ORDER BY created_at DESC, id DESC.
type stubSaleRepo struct {
	rows []model.Sale
	// findErr, when set, is returned by FindByNaturalKey in place of a lookup.
	findErr error
}

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

func (s *stubSaleRepo) newestFirst() []model.Sale {
	out := make([]model.Sale, 0, len(s.rows))
	for i := len(s.rows) - 1; i >= 0; i-- {
		out = append(out, s.rows[i])
	}
	return out
}

func (s *stubSaleRepo) FindByNaturalKey(ctx context.Context, customerID, itemID uuid.UUID, date time.Time) (*model.Sale, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	for _, row := range s.newestFirst() {
		if row.CustomerID == customerID && row.ItemID == itemID && row.SaleDate.Equal(date) {
			found := row
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubSaleRepo) Create(ctx context.Context, sale *model.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	s.rows = append(s.rows, *sale)
	return nil
}

func (s *stubSaleRepo) UpdateQuantities(ctx context.Context, id uuid.UUID, crates int, kg decimal.Decimal) error {
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Crates = crates
			s.rows[i].Kg = kg
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *stubSaleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *stubSaleRepo) ListByDate(ctx context.Context, date time.Time) ([]model.Sale, error) {
	var out []model.Sale
	for _, row := range s.newestFirst() {
		if row.SaleDate.Equal(date) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *stubSaleRepo) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	doomed := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}
	var kept []model.Sale
	var deleted int64
	for _, row := range s.rows {
		if doomed[row.ID] {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	s.rows = kept
	return deleted, nil
}

func upsertReq(customerID, itemID uuid.UUID, crates int, kg string) dto.UpsertSaleRequest {
	return dto.UpsertSaleRequest{
		CustomerID: customerID.String(),
		ItemID:     itemID.String(),
		SaleDate:   "2025-03-14",
		Crates:     crates,
		Kg:         decimal.RequireFromString(kg),
	}
}

func TestSaleUpsert_CreateThenUpdate(t *testing.T) {
	repo := &stubSaleRepo{}
	svc := NewSaleService(repo)
	customerID, itemID := uuid.New(), uuid.New()

	res, err := svc.Upsert(context.Background(), upsertReq(customerID, itemID, 2, "0"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Crates)
	assert.Len(t, repo.rows, 1)

	// Same natural key: the row is rewritten, not duplicated.
	res, err = svc.Upsert(context.Background(), upsertReq(customerID, itemID, 5, "3.5"))
	require.NoError(t, err)
	assert.Equal(t, 5, res.Crates)
	assert.Equal(t, "3.5", res.Kg.String())
	assert.Len(t, repo.rows, 1)
}

func TestSaleUpsert_ZeroZeroDeletes(t *testing.T) {
	repo := &stubSaleRepo{}
	svc := NewSaleService(repo)
	customerID, itemID := uuid.New(), uuid.New()

	_, err := svc.Upsert(context.Background(), upsertReq(customerID, itemID, 2, "0"))
	require.NoError(t, err)

	res, err := svc.Upsert(context.Background(), upsertReq(customerID, itemID, 0, "0"))
	require.NoError(t, err)
	assert.True(t, res.Deleted)
	assert.Empty(t, repo.rows)

	// Zero/zero against a missing row is a no-op, not an error.
	res, err = svc.Upsert(context.Background(), upsertReq(customerID, itemID, 0, "0"))
	require.NoError(t, err)
	assert.True(t, res.Deleted)
}

func TestSaleUpsert_ZeroZeroSurfacesLookupFailure(t *testing.T) {
	repo := &stubSaleRepo{}
	svc := NewSaleService(repo)
	customerID, itemID := uuid.New(), uuid.New()

	_, err := svc.Upsert(context.Background(), upsertReq(customerID, itemID, 2, "0"))
	require.NoError(t, err)

	// A store outage during the lookup must not be answered with "deleted":
	// the row is still there.
	boom := errors.New("connection refused")
	repo.findErr = boom

	_, err = svc.Upsert(context.Background(), upsertReq(customerID, itemID, 0, "0"))
	assert.ErrorIs(t, err, boom)
	assert.Len(t, repo.rows, 1)
}

func TestSaleListByDate(t *testing.T) {
	repo := &stubSaleRepo{}
	svc := NewSaleService(repo)
	customerID, itemID := uuid.New(), uuid.New()

	_, err := svc.Upsert(context.Background(), upsertReq(customerID, itemID, 1, "0"))
	require.NoError(t, err)

	sales, err := svc.ListByDate(context.Background(), "2025-03-14")
	require.NoError(t, err)
	assert.Len(t, sales, 1)

	sales, err = svc.ListByDate(context.Background(), "2025-03-15")
	require.NoError(t, err)
	assert.Empty(t, sales)

	_, err = svc.ListByDate(context.Background(), "14/03/2025")
	assert.ErrorContains(t, err, "invalid date")
}

func TestSaleReconcile_KeepsNewestPerGroup(t *testing.T) {
	repo := &stubSaleRepo{}
	svc := NewSaleService(repo)
	customerID, itemID := uuid.New(), uuid.New()
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	// Three legacy duplicates for one (customer, item) pair plus one clean row.
	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.Create(context.Background(), &model.Sale{
			CustomerID: customerID, ItemID: itemID, SaleDate: date, Crates: i,
		}))
	}
	otherItem := uuid.New()
	require.NoError(t, repo.Create(context.Background(), &model.Sale{
		CustomerID: customerID, ItemID: otherItem, SaleDate: date, Crates: 9,
	}))

	res, err := svc.Reconcile(context.Background(), "2025-03-14")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Deleted)
	assert.Len(t, repo.rows, 2)

	// The newest duplicate survives.
	survivor, err := repo.FindByNaturalKey(context.Background(), customerID, itemID, date)
	require.NoError(t, err)
	assert.Equal(t, 3, survivor.Crates)

	// Idempotent: a second run deletes nothing.
	res, err = svc.Reconcile(context.Background(), "2025-03-14")
	require.NoError(t, err)
	assert.Zero(t, res.Deleted)
}
