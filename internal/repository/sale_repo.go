package repository

import (
	"context"
	"time"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleRepository interface {
	FindByNaturalKey(ctx context.Context, customerID, itemID uuid.UUID, date time.Time) (*model.Sale, error)
	Create(ctx context.Context, s *model.Sale) error
	UpdateQuantities(ctx context.Context, id uuid.UUID, crates int, kg decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByDate(ctx context.Context, date time.Time) ([]model.Sale, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) FindByNaturalKey(ctx context.Context, customerID, itemID uuid.UUID, date time.Time) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND item_id = ? AND sale_date = ?", customerID, itemID, date).
		Order("created_at DESC, id DESC").
		First(&s).Error
	return &s, err
}

func (r *saleRepo) Create(ctx context.Context, s *model.Sale) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) UpdateQuantities(ctx context.Context, id uuid.UUID, crates int, kg decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Sale{}).Where("id = ?", id).
		Updates(map[string]interface{}{"crates": crates, "kg": kg}).Error
}

func (r *saleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Sale{}, id).Error
}

// ListByDate returns the day's rows newest-first with id as tie-break, which
// is the iteration order the duplicate reconciler depends on.
func (r *saleRepo) ListByDate(ctx context.Context, date time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").Preload("Item").
		Where("sale_date = ?", date).
		Order("created_at DESC, id DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Sale{})
	return res.RowsAffected, res.Error
}
