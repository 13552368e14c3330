package service

import (
	"context"
	"errors"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/dto"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/model"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ItemService interface {
	Create(ctx context.Context, req dto.SaveItemRequest) (*dto.ItemResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.SaveItemRequest) (*dto.ItemResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.ItemResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type itemService struct {
	repo               repository.ItemRepository
	defaultCrateWeight decimal.Decimal
}

func NewItemService(repo repository.ItemRepository, defaultCrateWeightKg int) ItemService {
	return &itemService{
		repo:               repo,
		defaultCrateWeight: decimal.NewFromInt(int64(defaultCrateWeightKg)),
	}
}

func (s *itemService) Create(ctx context.Context, req dto.SaveItemRequest) (*dto.ItemResponse, error) {
	crateWeight := req.CrateWeightKg
	if crateWeight.IsZero() {
		crateWeight = s.defaultCrateWeight
	}
	item := &model.Item{Name: req.Name, CrateWeightKg: crateWeight, Active: true}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return itemToResponse(item), nil
}

func (s *itemService) Update(ctx context.Context, id uuid.UUID, req dto.SaveItemRequest) (*dto.ItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("item not found")
	}
	item.Name = req.Name
	if !req.CrateWeightKg.IsZero() {
		item.CrateWeightKg = req.CrateWeightKg
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return itemToResponse(item), nil
}

func (s *itemService) List(ctx context.Context, includeInactive bool) ([]dto.ItemResponse, error) {
	items, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, *itemToResponse(&items[i]))
	}
	return out, nil
}

func (s *itemService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, false)
}

func (s *itemService) Reactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, true)
}

func itemToResponse(it *model.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:            it.ID.String(),
		Name:          it.Name,
		CrateWeightKg: it.CrateWeightKg,
		Active:        it.Active,
	}
}
