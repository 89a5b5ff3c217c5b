package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staymarket/internal/app"
	"staymarket/internal/reconcile"
)

func TestCustomerLookup_TypedView(t *testing.T) {
	maps, err := reconcile.LoadMaps()
	require.NoError(t, err)

	p := &fakeProvider{customer: reconcile.Envelope{Data: map[string]any{
		"id":       "cust-1",
		"name":     "Ana Marques",
		"email":    "ana@example.com",
		"timezone": "Europe/Lisbon",
		"secret":   "never mapped",
	}}}

	c, err := app.NewCustomerService(p, maps).Lookup(context.Background(), "cust-1")
	require.NoError(t, err)
	assert.Equal(t, "cust-1", c.ID)
	assert.Equal(t, "Ana Marques", c.Name)
	assert.Equal(t, "ana@example.com", c.Email)
	assert.Equal(t, "Europe/Lisbon", c.Timezone)
}

func TestCustomerList_BareElementPaths(t *testing.T) {
	maps, err := reconcile.LoadMaps()
	require.NoError(t, err)

	p := &fakeProvider{customer: reconcile.Envelope{Data: []any{
		map[string]any{"id": "c-1", "email": "one@example.com"},
		map[string]any{"id": "c-2", "email": "two@example.com"},
	}}}

	cs, err := app.NewCustomerService(p, maps).List(context.Background())
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.Equal(t, "c-1", cs[0].ID)
	assert.Equal(t, "two@example.com", cs[1].Email)
}

func TestBookings_ListReservations(t *testing.T) {
	maps, err := reconcile.LoadMaps()
	require.NoError(t, err)

	p := &fakeProvider{reservations: map[string]reconcile.Envelope{
		"l-1": {Data: []any{map[string]any{
			"id":             "b-1",
			"listing_id":     "l-1",
			"guest":          map[string]any{"email": "guest@example.com"},
			"arrival_date":   "2026-10-01",
			"departure_date": "2026-10-05",
			"guests":         map[string]any{"total": float64(2)},
			"financials": map[string]any{
				"guest": map[string]any{"total_price": map[string]any{"amount": float64(64000)}},
			},
			"status": "accepted",
		}}},
	}}

	bs, err := app.NewBookingService(p, maps).ListReservations(context.Background(), "l-1")
	require.NoError(t, err)
	require.Len(t, bs, 1)
	assert.Equal(t, "b-1", bs[0].ID)
	assert.Equal(t, "l-1", bs[0].PropertyID)
	assert.Equal(t, "guest@example.com", bs[0].CustomerID)
	assert.Equal(t, 2, bs[0].Guests)
	assert.Equal(t, float64(640), bs[0].TotalPrice)
	assert.Equal(t, "accepted", bs[0].Status)
}
