package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/dto"
	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RateKind selects which bill history the resolver reads.
type RateKind string

const (
	RateKindSales    RateKind = "sales"
	RateKindPurchase RateKind = "purchase"
)

const rateCacheTTL = 4 * time.Hour

// RateService resolves the most recently used rate per item, for pre-filling
// new bills. "Most recent" means record creation time, not bill date. Absence
// is not an error: items without history come back with zero rates and
// Found=false, and the caller must require explicit entry before save.
type RateService interface {
	Resolve(ctx context.Context, kind RateKind, itemIDs []uuid.UUID) ([]dto.RateResponse, error)
	// Invalidate drops cached rates after a bill write touches the items.
	Invalidate(ctx context.Context, kind RateKind, itemIDs []uuid.UUID)
}

type rateService struct {
	repo repository.RateRepository
	rdb  *redis.Client // nil disables caching (unit test mode)
}

func NewRateService(repo repository.RateRepository, rdb *redis.Client) RateService {
	return &rateService{repo: repo, rdb: rdb}
}

func rateCacheKey(kind RateKind, id uuid.UUID) string {
	return fmt.Sprintf("rates:%s:%s", kind, id)
}

func (s *rateService) Resolve(ctx context.Context, kind RateKind, itemIDs []uuid.UUID) ([]dto.RateResponse, error) {
	out := make([]dto.RateResponse, 0, len(itemIDs))
	var misses []uuid.UUID

	// 1. Try cache first — best effort, a cold or down Redis just means DB reads.
	cached := make(map[uuid.UUID]dto.RateResponse)
	if s.rdb != nil {
		for _, id := range itemIDs {
			raw, err := s.rdb.Get(ctx, rateCacheKey(kind, id)).Bytes()
			if err != nil {
				misses = append(misses, id)
				continue
			}
			var r dto.RateResponse
			if json.Unmarshal(raw, &r) != nil {
				misses = append(misses, id)
				continue
			}
			cached[id] = r
		}
	} else {
		misses = itemIDs
	}

	// 2. Resolve the misses from bill history. A read failure degrades to
	// "no rate found" for every item instead of failing the caller.
	resolved := make(map[uuid.UUID]repository.LastRate)
	if len(misses) > 0 {
		var err error
		switch kind {
		case RateKindPurchase:
			resolved, err = s.repo.LatestPurchaseRates(ctx, misses)
		default:
			resolved, err = s.repo.LatestSalesRates(ctx, misses)
		}
		if err != nil {
			log.Warn().Err(err).Str("kind", string(kind)).
				Msg("rate: history lookup failed, returning empty rates")
			resolved = map[uuid.UUID]repository.LastRate{}
		}
	}

	for _, id := range itemIDs {
		if r, ok := cached[id]; ok {
			out = append(out, r)
			continue
		}
		r := dto.RateResponse{ItemID: id.String()}
		if last, ok := resolved[id]; ok {
			r.RatePerCrate = last.RatePerCrate
			r.RatePerKg = last.RatePerKg
			r.Found = true
		}
		out = append(out, r)

		// 3. Populate cache — best effort, ignore errors.
		if s.rdb != nil && r.Found {
			if b, err := json.Marshal(r); err == nil {
				_ = s.rdb.Set(ctx, rateCacheKey(kind, id), b, rateCacheTTL).Err()
			}
		}
	}
	return out, nil
}

func (s *rateService) Invalidate(ctx context.Context, kind RateKind, itemIDs []uuid.UUID) {
	if s.rdb == nil || len(itemIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(itemIDs))
	for _, id := range itemIDs {
		keys = append(keys, rateCacheKey(kind, id))
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Msg("rate: cache invalidation failed")
	}
}
