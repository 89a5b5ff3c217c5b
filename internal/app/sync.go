package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"staymarket/internal/adapters/observability"
	"staymarket/internal/domain"
	"staymarket/internal/reconcile"
)

// SyncService pulls a customer's full listing catalog from the provider,
// hydrates each listing across the detail, images, and calendar endpoints,
// and ensures each one is present exactly once in local storage.
type SyncService struct {
	provider domain.ProviderClient
	repo     domain.PropertyRepository
	cache    domain.Cache
	maps     reconcile.Maps
	workers  int64
}

func NewSyncService(p domain.ProviderClient, r domain.PropertyRepository, cache domain.Cache, maps reconcile.Maps, workers int) *SyncService {
	if workers <= 0 {
		workers = 4
	}
	return &SyncService{provider: p, repo: r, cache: cache, maps: maps, workers: int64(workers)}
}

// SyncCustomer returns every listing it managed to hydrate, in provider
// listing order, regardless of which ones were newly persisted. The
// listing-collection fetch is fatal; per-listing failures are isolated.
func (s *SyncService) SyncCustomer(ctx context.Context, customerID string) ([]reconcile.Object, error) {
	env, err := s.provider.ListListings(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("list listings for customer %s: %w", customerID, err)
	}

	partials, err := reconcile.ReconcileList(env, "Property", reconcile.EndpointListing, s.maps.Provider, nil)
	if err != nil {
		return nil, err
	}

	// Hydration for one listing is independent of the others, so listings
	// run under a bounded pool. Results land by index to preserve provider
	// listing order; within a listing the endpoint merges stay sequential.
	results := make([]reconcile.Object, len(partials))
	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup

	for i, partial := range partials {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Str("customer_id", customerID).Err(err).Msg("sync canceled before all listings were processed")
			break
		}
		wg.Add(1)
		go func(i int, partial reconcile.Object) {
			defer wg.Done()
			defer sem.Release(1)

			listingID := stringID(partial["id"])
			if listingID == "" {
				log.Warn().Str("customer_id", customerID).Int("index", i).Msg("listing has no id, skipping")
				observability.ObserveSync("skipped")
				return
			}

			obj, err := s.syncListing(ctx, customerID, listingID)
			if err != nil {
				log.Warn().
					Str("customer_id", customerID).
					Str("listing_id", listingID).
					Err(err).
					Msg("listing sync failed")
				observability.ObserveSync("failed")
				return
			}
			results[i] = obj
			observability.ObserveSync("synced")
		}(i, partial)
	}
	wg.Wait()

	out := make([]reconcile.Object, 0, len(results))
	for _, o := range results {
		if o != nil {
			out = append(out, o)
		}
	}
	return out, nil
}

// syncListing hydrates one listing and persists it when absent. A create
// failure is logged and skipped; the hydrated object is still returned,
// since the sync's read-path output is independent of its writes.
func (s *SyncService) syncListing(ctx context.Context, customerID, listingID string) (reconcile.Object, error) {
	obj, err := s.hydrate(ctx, customerID, listingID)
	if err != nil {
		return nil, err
	}

	exists := false
	if _, err := s.repo.GetByCustomerAndListing(ctx, customerID, listingID); err == nil {
		exists = true
	} else if !errors.Is(err, domain.ErrNotFound) {
		// Fail open: over-writing beats silently losing the listing, and
		// the create is a no-op on conflict anyway.
		log.Warn().
			Str("customer_id", customerID).
			Str("listing_id", listingID).
			Err(err).
			Msg("existence check failed, attempting write")
	}

	if !exists {
		rec := reconcile.ToRecord(obj, "Property", "properties", s.maps.Storage)
		rec["customer_id"] = customerID
		if err := s.repo.CreateProperty(ctx, rec); err != nil {
			log.Error().
				Str("customer_id", customerID).
				Str("listing_id", listingID).
				Err(err).
				Msg("create property failed")
			observability.ObserveSync("create_failed")
		} else {
			observability.ObserveSync("created")
			s.invalidate(ctx, customerID, listingID)
		}
	}
	return obj, nil
}

// hydrate fetches the three per-listing endpoints sequentially and folds
// each response into the accumulator: detail, then images (whole body
// under one field), then calendar pricing. The order is fixed because
// later stages merge into earlier stages' output.
func (s *SyncService) hydrate(ctx context.Context, customerID, listingID string) (reconcile.Object, error) {
	detail, err := s.provider.GetListing(ctx, customerID, listingID)
	if err != nil {
		return nil, fmt.Errorf("fetch listing detail: %w", err)
	}
	obj, err := reconcile.ReconcileOne(detail, "Property", reconcile.EndpointListing, s.maps.Provider, nil, false)
	if err != nil {
		return nil, err
	}

	images, err := s.provider.GetListingImages(ctx, customerID, listingID)
	if err != nil {
		return nil, fmt.Errorf("fetch listing images: %w", err)
	}
	obj, err = reconcile.ReconcileOne(images, "Property", reconcile.EndpointListingImages, s.maps.Provider, obj, true)
	if err != nil {
		return nil, err
	}

	calendar, err := s.provider.GetCalendar(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("fetch listing calendar: %w", err)
	}
	return reconcile.ReconcileOne(calendar, "Property", reconcile.EndpointCalendar, s.maps.Provider, obj, false)
}

func (s *SyncService) invalidate(ctx context.Context, customerID, listingID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, fmt.Sprintf("property:%s:%s", customerID, listingID))
	_ = s.cache.Del(ctx, fmt.Sprintf("properties:%s", customerID))
}

// stringID accepts the id shapes providers actually send: strings and
// JSON numbers.
func stringID(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}
