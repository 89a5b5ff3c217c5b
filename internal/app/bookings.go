package app

import (
	"context"

	"staymarket/internal/domain"
	"staymarket/internal/reconcile"
)

// BookingService reads a listing's reservations from the provider.
type BookingService struct {
	provider domain.ProviderClient
	maps     reconcile.Maps
}

func NewBookingService(p domain.ProviderClient, maps reconcile.Maps) *BookingService {
	return &BookingService{provider: p, maps: maps}
}

// ListReservations reconciles the reservations endpoint into typed
// bookings. Total prices arrive in cents and leave in major units.
func (s *BookingService) ListReservations(ctx context.Context, listingID string) ([]domain.Booking, error) {
	env, err := s.provider.ListReservations(ctx, listingID)
	if err != nil {
		return nil, err
	}
	objs, err := reconcile.ReconcileList(env, "Booking", reconcile.EndpointReservations, s.maps.Provider, nil)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booking, len(objs))
	for i, obj := range objs {
		if err := decodeObject(obj, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
