package service

import (
	"context"
	"errors"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/dto"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/model"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/repository"

	"github.com/google/uuid"
)

type FarmerService interface {
	Create(ctx context.Context, req dto.SaveFarmerRequest) (*dto.FarmerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.SaveFarmerRequest) (*dto.FarmerResponse, error)
	List(ctx context.Context, search string, includeInactive bool) ([]dto.FarmerResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type farmerService struct {
	repo repository.FarmerRepository
}

func NewFarmerService(repo repository.FarmerRepository) FarmerService {
	return &farmerService{repo: repo}
}

func (s *farmerService) Create(ctx context.Context, req dto.SaveFarmerRequest) (*dto.FarmerResponse, error) {
	f := &model.Farmer{
		Name:    req.Name,
		Phone:   req.Phone,
		Village: req.Village,
		Active:  true,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return farmerToResponse(f), nil
}

func (s *farmerService) Update(ctx context.Context, id uuid.UUID, req dto.SaveFarmerRequest) (*dto.FarmerResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("farmer not found")
	}
	f.Name = req.Name
	f.Phone = req.Phone
	f.Village = req.Village
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return farmerToResponse(f), nil
}

func (s *farmerService) List(ctx context.Context, search string, includeInactive bool) ([]dto.FarmerResponse, error) {
	farmers, err := s.repo.List(ctx, search, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FarmerResponse, 0, len(farmers))
	for i := range farmers {
		out = append(out, *farmerToResponse(&farmers[i]))
	}
	return out, nil
}

func (s *farmerService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, false)
}

func farmerToResponse(f *model.Farmer) *dto.FarmerResponse {
	return &dto.FarmerResponse{
		ID:      f.ID.String(),
		Name:    f.Name,
		Phone:   f.Phone,
		Village: f.Village,
		Active:  f.Active,
	}
}
