package repository

import (
	"context"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemRepository interface {
	Create(ctx context.Context, it *model.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	List(ctx context.Context, includeInactive bool) ([]model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type itemRepo struct{ db *gorm.DB }

func NewItemRepository(db *gorm.DB) ItemRepository { return &itemRepo{db: db} }

func (r *itemRepo) Create(ctx context.Context, it *model.Item) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *itemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var it model.Item
	err := r.db.WithContext(ctx).First(&it, id).Error
	return &it, err
}

func (r *itemRepo) List(ctx context.Context, includeInactive bool) ([]model.Item, error) {
	var items []model.Item
	q := r.db.WithContext(ctx).Order("name ASC")
	if !includeInactive {
		q = q.Where("active = true")
	}
	err := q.Find(&items).Error
	return items, err
}

func (r *itemRepo) Update(ctx context.Context, it *model.Item) error {
	return r.db.WithContext(ctx).Save(it).Error
}

func (r *itemRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).Model(&model.Item{}).Where("id = ?", id).Update("active", active).Error
}
