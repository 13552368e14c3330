package service

import (
	"context"
	"errors"
	"time"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/dto"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/model"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/repository"

	"github.com/google/uuid"
)

type ExpenseService interface {
	Create(ctx context.Context, req dto.SaveExpenseRequest) (*dto.ExpenseResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.SaveExpenseRequest) (*dto.ExpenseResponse, error)
	List(ctx context.Context, filter dto.ExpenseFilter) ([]dto.ExpenseResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type expenseService struct {
	repo repository.ExpenseRepository
}

func NewExpenseService(repo repository.ExpenseRepository) ExpenseService {
	return &expenseService{repo: repo}
}

func (s *expenseService) Create(ctx context.Context, req dto.SaveExpenseRequest) (*dto.ExpenseResponse, error) {
	spentOn, err := time.Parse(dateLayout, req.SpentOn)
	if err != nil {
		return nil, errors.New("invalid spent_on date")
	}
	e := &model.Expense{
		SpentOn:  spentOn,
		Category: req.Category,
		Label:    req.Label,
		Amount:   req.Amount,
		Note:     req.Note,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return expenseToResponse(e), nil
}

func (s *expenseService) Update(ctx context.Context, id uuid.UUID, req dto.SaveExpenseRequest) (*dto.ExpenseResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("expense not found")
	}
	spentOn, err := time.Parse(dateLayout, req.SpentOn)
	if err != nil {
		return nil, errors.New("invalid spent_on date")
	}
	e.SpentOn = spentOn
	e.Category = req.Category
	e.Label = req.Label
	e.Amount = req.Amount
	e.Note = req.Note
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return expenseToResponse(e), nil
}

func (s *expenseService) List(ctx context.Context, filter dto.ExpenseFilter) ([]dto.ExpenseResponse, error) {
	expenses, err := s.repo.ListRange(ctx, filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, *expenseToResponse(&expenses[i]))
	}
	return out, nil
}

func (s *expenseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("expense not found")
	}
	return s.repo.Delete(ctx, id)
}

func expenseToResponse(e *model.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:       e.ID.String(),
		SpentOn:  e.SpentOn.Format(dateLayout),
		Category: e.Category,
		Label:    e.Label,
		Amount:   e.Amount,
		Note:     e.Note,
	}
}
