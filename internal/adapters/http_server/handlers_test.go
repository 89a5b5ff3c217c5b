package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpserver "staymarket/internal/adapters/http_server"
	"staymarket/internal/app"
	"staymarket/internal/domain"
)

// ---------- fakes ----------

type stubRepo struct {
	rows map[string]domain.PropertyRow // key customer:listing
}

func (r *stubRepo) CreateProperty(ctx context.Context, rec map[string]any) error { return nil }

func (r *stubRepo) GetByCustomerAndListing(ctx context.Context, customerID, listingID string) (domain.PropertyRow, error) {
	row, ok := r.rows[customerID+":"+listingID]
	if !ok {
		return domain.PropertyRow{}, domain.ErrNotFound
	}
	return row, nil
}

func (r *stubRepo) ListProperties(ctx context.Context, customerID string, limit int) ([]domain.PropertyRow, error) {
	var out []domain.PropertyRow
	for _, row := range r.rows {
		if row.CustomerID == customerID {
			out = append(out, row)
		}
	}
	return out, nil
}

type nopCache struct{}

func (nopCache) Get(ctx context.Context, key string, dst any) (bool, error) { return false, nil }
func (nopCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	return nil
}
func (nopCache) Del(ctx context.Context, key string) error { return nil }

func newTestServer(t *testing.T, repo *stubRepo) *httptest.Server {
	t.Helper()
	q := app.NewQueryService(repo, nopCache{}, time.Minute)
	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{Q: q})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

// ---------- tests ----------

func TestGetProperty_ETagRoundTrip(t *testing.T) {
	name := "Sea Loft"
	repo := &stubRepo{rows: map[string]domain.PropertyRow{
		"cust-1:l-1": {CustomerID: "cust-1", ListingID: "l-1", Name: &name},
	}}
	ts := newTestServer(t, repo)

	res, err := http.Get(ts.URL + "/v1/properties/cust-1/l-1")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	etag := res.Header.Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag header")
	}

	var row domain.PropertyRow
	if err := json.NewDecoder(res.Body).Decode(&row); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if row.ListingID != "l-1" || row.Name == nil || *row.Name != "Sea Loft" {
		t.Fatalf("unexpected body: %+v", row)
	}

	// Second request with If-None-Match must short-circuit.
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/properties/cust-1/l-1", nil)
	req.Header.Set("If-None-Match", etag)
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("conditional GET: %v", err)
	}
	defer res2.Body.Close()
	if res2.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", res2.StatusCode)
	}
}

func TestGetProperty_NotFoundIsProblemJSON(t *testing.T) {
	ts := newTestServer(t, &stubRepo{rows: map[string]domain.PropertyRow{}})

	res, err := http.Get(ts.URL + "/v1/properties/cust-1/nope")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	var p struct {
		Title  string `json:"title"`
		Status int    `json:"status"`
	}
	if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Status != http.StatusNotFound || p.Title == "" {
		t.Fatalf("unexpected problem body: %+v", p)
	}
}

func TestListProperties_RequiresCustomer(t *testing.T) {
	ts := newTestServer(t, &stubRepo{rows: map[string]domain.PropertyRow{}})

	res, err := http.Get(ts.URL + "/v1/properties")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d", res.StatusCode)
	}
}

func TestListProperties_ByCustomer(t *testing.T) {
	repo := &stubRepo{rows: map[string]domain.PropertyRow{
		"cust-1:l-1": {CustomerID: "cust-1", ListingID: "l-1"},
		"cust-2:l-9": {CustomerID: "cust-2", ListingID: "l-9"},
	}}
	ts := newTestServer(t, repo)

	res, err := http.Get(ts.URL + "/v1/properties?customer=cust-1")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var body struct {
		Items []domain.PropertyRow `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Items) != 1 || body.Items[0].ListingID != "l-1" {
		t.Fatalf("unexpected items: %+v", body.Items)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, &stubRepo{})

	res, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
}
