package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/dto"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/model"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type SaleService interface {
	Upsert(ctx context.Context, req dto.UpsertSaleRequest) (*dto.SaleResponse, error)
	ListByDate(ctx context.Context, date string) ([]dto.SaleResponse, error)
	Reconcile(ctx context.Context, date string) (*dto.ReconcileResponse, error)
}

type saleService struct {
	repo repository.SaleRepository
}

func NewSaleService(repo repository.SaleRepository) SaleService {
	return &saleService{repo: repo}
}

// ── Upsert ────────────────────────────────────────────────────────────────────
// One ledger row per (customer, item, date). Writing over an existing triple
// updates it in place; zero for both quantities deletes the row. This is the
// write path that keeps the natural key unique going forward.

func (s *saleService) Upsert(ctx context.Context, req dto.UpsertSaleRequest) (*dto.SaleResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer_id: %w", err)
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("invalid item_id: %w", err)
	}
	saleDate, err := time.Parse(dateLayout, req.SaleDate)
	if err != nil {
		return nil, fmt.Errorf("invalid sale_date: %w", err)
	}

	existing, findErr := s.repo.FindByNaturalKey(ctx, customerID, itemID, saleDate)

	// Zero quantities → delete the row if one exists, no-op otherwise.
	// A lookup failure other than not-found must surface: answering "deleted"
	// while the row may still exist would silently drop the write.
	if req.Crates == 0 && req.Kg.IsZero() {
		if findErr != nil {
			if !errors.Is(findErr, gorm.ErrRecordNotFound) {
				return nil, findErr
			}
			return &dto.SaleResponse{
				CustomerID: req.CustomerID,
				ItemID:     req.ItemID,
				SaleDate:   req.SaleDate,
				Deleted:    true,
			}, nil
		}
		if err := s.repo.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
		resp := saleToResponse(existing)
		resp.Deleted = true
		return resp, nil
	}

	if findErr == nil {
		if err := s.repo.UpdateQuantities(ctx, existing.ID, req.Crates, req.Kg); err != nil {
			return nil, err
		}
		existing.Crates = req.Crates
		existing.Kg = req.Kg
		return saleToResponse(existing), nil
	}
	if !errors.Is(findErr, gorm.ErrRecordNotFound) {
		return nil, findErr
	}

	sale := &model.Sale{
		CustomerID: customerID,
		ItemID:     itemID,
		SaleDate:   saleDate,
		Crates:     req.Crates,
		Kg:         req.Kg,
	}
	if err := s.repo.Create(ctx, sale); err != nil {
		return nil, err
	}
	return saleToResponse(sale), nil
}

func (s *saleService) ListByDate(ctx context.Context, date string) ([]dto.SaleResponse, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	sales, err := s.repo.ListByDate(ctx, d)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, *saleToResponse(&sales[i]))
	}
	return out, nil
}

// ── Reconcile ─────────────────────────────────────────────────────────────────
// Self-healing cleanup for rows written by the legacy path before the upsert
// existed: within each (customer, item) group on the date, keep the newest row
// by creation timestamp and delete the rest. The repo iterates newest-first
// with id as tie-break, so equal timestamps deterministically keep the highest
// id. Running it twice deletes nothing the second time.

func (s *saleService) Reconcile(ctx context.Context, date string) (*dto.ReconcileResponse, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid sale_date: %w", err)
	}
	sales, err := s.repo.ListByDate(ctx, d)
	if err != nil {
		return nil, err
	}

	type key struct{ customer, item uuid.UUID }
	seen := make(map[key]bool, len(sales))
	var doomed []uuid.UUID
	for _, sale := range sales {
		k := key{sale.CustomerID, sale.ItemID}
		if seen[k] {
			doomed = append(doomed, sale.ID)
			continue
		}
		seen[k] = true
	}

	deleted, err := s.repo.DeleteByIDs(ctx, doomed)
	if err != nil {
		return nil, err
	}
	if deleted > 0 {
		log.Info().Str("date", date).Int64("deleted", deleted).
			Msg("sale: removed duplicate ledger rows")
	}
	return &dto.ReconcileResponse{SaleDate: date, Deleted: int(deleted)}, nil
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	customerName, itemName := "", ""
	if s.Customer != nil {
		customerName = s.Customer.Name
	}
	if s.Item != nil {
		itemName = s.Item.Name
	}
	return &dto.SaleResponse{
		ID:           s.ID.String(),
		CustomerID:   s.CustomerID.String(),
		CustomerName: customerName,
		ItemID:       s.ItemID.String(),
		ItemName:     itemName,
		SaleDate:     s.SaleDate.Format(dateLayout),
		Crates:       s.Crates,
		Kg:           s.Kg,
	}
}
