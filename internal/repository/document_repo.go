package repository

import (
	"context"
	"time"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(ctx context.Context, d *model.Document) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Document, error)
	FindBySalesBillID(ctx context.Context, billID uuid.UUID) (*model.Document, error)
	Update(ctx context.Context, d *model.Document) error
	ListPendingRetries(ctx context.Context, before time.Time, limit int) ([]model.Document, error)
}

type documentRepo struct{ db *gorm.DB }

func NewDocumentRepository(db *gorm.DB) DocumentRepository { return &documentRepo{db: db} }

func (r *documentRepo) Create(ctx context.Context, d *model.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *documentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	var d model.Document
	err := r.db.WithContext(ctx).First(&d, id).Error
	return &d, err
}

func (r *documentRepo) FindBySalesBillID(ctx context.Context, billID uuid.UUID) (*model.Document, error) {
	var d model.Document
	err := r.db.WithContext(ctx).
		Where("sales_bill_id = ?", billID).
		Order("created_at DESC").
		First(&d).Error
	return &d, err
}

func (r *documentRepo) Update(ctx context.Context, d *model.Document) error {
	return r.db.WithContext(ctx).Save(d).Error
}

// ListPendingRetries feeds the retry cron: pending documents whose
// next_retry_at has passed.
func (r *documentRepo) ListPendingRetries(ctx context.Context, before time.Time, limit int) ([]model.Document, error) {
	var docs []model.Document
	err := r.db.WithContext(ctx).
		Where("status = ? AND next_retry_at IS NOT NULL AND next_retry_at <= ?", "pending", before).
		Order("next_retry_at ASC").
		Limit(limit).
		Find(&docs).Error
	return docs, err
}
