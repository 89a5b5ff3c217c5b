package domain

import (
	"context"

	"staymarket/internal/reconcile"
)

type PropertyRepository interface {
	// Write path. Create is an upsert no-op on conflict, so a stale
	// existence check cannot fail the batch.
	CreateProperty(ctx context.Context, rec reconcile.Record) error

	// Read paths. Both return ErrNotFound when the (customer, listing)
	// pair is definitively absent.
	GetByCustomerAndListing(ctx context.Context, customerID, listingID string) (PropertyRow, error)
	ListProperties(ctx context.Context, customerID string, limit int) ([]PropertyRow, error)
}

// ProviderClient covers the provider endpoints the sync consumes. Every
// method returns the provider's uniform { data: ... } envelope.
type ProviderClient interface {
	ListListings(ctx context.Context, customerID string) (reconcile.Envelope, error)
	GetListing(ctx context.Context, customerID, listingID string) (reconcile.Envelope, error)
	GetListingImages(ctx context.Context, customerID, listingID string) (reconcile.Envelope, error)
	GetCalendar(ctx context.Context, listingID string) (reconcile.Envelope, error)
	GetCustomer(ctx context.Context, customerID string) (reconcile.Envelope, error)
	ListCustomers(ctx context.Context) (reconcile.Envelope, error)
	ListReservations(ctx context.Context, listingID string) (reconcile.Envelope, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
