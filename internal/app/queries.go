package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"staymarket/internal/domain"
)

type QueryService struct {
	repo     domain.PropertyRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.PropertyRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) GetProperty(ctx context.Context, customerID, listingID string) (domain.PropertyRow, error) {
	key := fmt.Sprintf("property:%s:%s", customerID, listingID)
	var row domain.PropertyRow
	if ok, _ := s.cache.Get(ctx, key, &row); ok {
		return row, nil
	}
	row, err := s.repo.GetByCustomerAndListing(ctx, customerID, listingID)
	if err != nil {
		return domain.PropertyRow{}, err
	}
	_ = s.cache.Set(ctx, key, row, int(s.cacheTTL.Seconds()))
	return row, nil
}

func (s *QueryService) ListProperties(ctx context.Context, customerID string, limit int) ([]domain.PropertyRow, error) {
	key := fmt.Sprintf("properties:%s", customerID)
	var out []domain.PropertyRow
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	rows, err := s.repo.ListProperties(ctx, customerID, limit)
	if err != nil {
		return nil, err
	}

	// copy slice to avoid aliasing the repo's backing array (prevents tests from mutating cached value)
	copyRows := make([]domain.PropertyRow, len(rows))
	copy(copyRows, rows)

	// optional size guard
	if b, _ := json.Marshal(copyRows); len(b) < 1_000_000 {
		_ = s.cache.Set(ctx, key, copyRows, int(s.cacheTTL.Seconds()))
	}
	return copyRows, nil
}
