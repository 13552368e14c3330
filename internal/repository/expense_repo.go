package repository

import (
	"context"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(ctx context.Context, e *model.Expense) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Expense, error)
	ListRange(ctx context.Context, from, to string) ([]model.Expense, error)
	Update(ctx context.Context, e *model.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type expenseRepo struct{ db *gorm.DB }

func NewExpenseRepository(db *gorm.DB) ExpenseRepository { return &expenseRepo{db: db} }

func (r *expenseRepo) Create(ctx context.Context, e *model.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *expenseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Expense, error) {
	var e model.Expense
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}

// ListRange returns expenses with spent_on in [from, to], newest day first.
func (r *expenseRepo) ListRange(ctx context.Context, from, to string) ([]model.Expense, error) {
	var expenses []model.Expense
	q := r.db.WithContext(ctx)
	if from != "" {
		q = q.Where("spent_on >= ?", from)
	}
	if to != "" {
		q = q.Where("spent_on <= ?", to)
	}
	err := q.Order("spent_on DESC, created_at DESC").Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) Update(ctx context.Context, e *model.Expense) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *expenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Expense{}, id).Error
}
