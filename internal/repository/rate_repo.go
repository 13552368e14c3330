package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LastRate is the most recently used pricing for one item.
// Zero values mean "no history" — the caller decides what absence implies.
type LastRate struct {
	ItemID       uuid.UUID       `gorm:"column:item_id"`
	RatePerCrate decimal.Decimal `gorm:"column:rate_per_crate"`
	RatePerKg    decimal.Decimal `gorm:"column:rate_per_kg"`
}

type RateRepository interface {
	LatestSalesRates(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]LastRate, error)
	LatestPurchaseRates(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]LastRate, error)
}

type rateRepo struct{ db *gorm.DB }

func NewRateRepository(db *gorm.DB) RateRepository { return &rateRepo{db: db} }

// LatestSalesRates resolves "most recent" by line item creation timestamp, not
// bill date — a backdated bill entered today still wins. Ties break on the
// highest id.
func (r *rateRepo) LatestSalesRates(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]LastRate, error) {
	if len(itemIDs) == 0 {
		return map[uuid.UUID]LastRate{}, nil
	}
	var rows []LastRate
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (item_id) item_id, rate_per_crate, rate_per_kg
		FROM line_items
		WHERE item_id IN ?
		ORDER BY item_id, created_at DESC, id DESC`, itemIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return indexRates(rows), nil
}

func (r *rateRepo) LatestPurchaseRates(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]LastRate, error) {
	if len(itemIDs) == 0 {
		return map[uuid.UUID]LastRate{}, nil
	}
	var rows []LastRate
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (item_id) item_id, 0 AS rate_per_crate, rate_per_kg
		FROM purchase_bill_items
		WHERE item_id IN ?
		ORDER BY item_id, created_at DESC, id DESC`, itemIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return indexRates(rows), nil
}

func indexRates(rows []LastRate) map[uuid.UUID]LastRate {
	out := make(map[uuid.UUID]LastRate, len(rows))
	for _, row := range rows {
		out[row.ItemID] = row
	}
	return out
}
