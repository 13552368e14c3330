package repository

import (
	"context"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FarmerRepository interface {
	Create(ctx context.Context, f *model.Farmer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Farmer, error)
	List(ctx context.Context, search string, includeInactive bool) ([]model.Farmer, error)
	Update(ctx context.Context, f *model.Farmer) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type farmerRepo struct{ db *gorm.DB }

func NewFarmerRepository(db *gorm.DB) FarmerRepository { return &farmerRepo{db: db} }

func (r *farmerRepo) Create(ctx context.Context, f *model.Farmer) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *farmerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Farmer, error) {
	var f model.Farmer
	err := r.db.WithContext(ctx).First(&f, id).Error
	return &f, err
}

func (r *farmerRepo) List(ctx context.Context, search string, includeInactive bool) ([]model.Farmer, error) {
	var farmers []model.Farmer
	q := r.db.WithContext(ctx).Order("name ASC")
	if !includeInactive {
		q = q.Where("active = true")
	}
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	err := q.Find(&farmers).Error
	return farmers, err
}

func (r *farmerRepo) Update(ctx context.Context, f *model.Farmer) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *farmerRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).Model(&model.Farmer{}).Where("id = ?", id).Update("active", active).Error
}
