package provider_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"staymarket/internal/adapters/provider"
	"staymarket/internal/domain"
)

func TestClient_GetListing_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(500)
		default:
			if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
				t.Errorf("missing bearer token, got %q", got)
			}
			w.WriteHeader(200)
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": "l-1"}})
		}
	}))
	defer ts.Close()

	cl, err := provider.New(ts.URL, "test-token", "2024-01", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	env, err := cl.GetListing(ctx, "cust-1", "l-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	data, ok := env.Data.(map[string]any)
	if !ok || data["id"] != "l-1" {
		t.Fatalf("unexpected payload: %+v", env.Data)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestClient_404_IsNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "Listing not found", "code": "NOT_FOUND"})
	}))
	defer ts.Close()

	cl, err := provider.New(ts.URL, "test-token", "", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err = cl.GetListing(ctx, "cust-1", "nope")
	if err == nil {
		t.Fatalf("expected error for 404")
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("404 should satisfy ErrNotFound, got %v", err)
	}
	var apiErr *provider.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "NOT_FOUND" || apiErr.Message != "Listing not found" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestClient_PlainTextErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(403)
		_, _ = w.Write([]byte("token expired"))
	}))
	defer ts.Close()

	cl, err := provider.New(ts.URL, "test-token", "", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err = cl.ListCustomers(ctx)
	var apiErr *provider.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != 403 || apiErr.Message != "token expired" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
	if errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("403 must not satisfy ErrNotFound")
	}
}

func TestClient_RequiresToken(t *testing.T) {
	if _, err := provider.New("https://example.com", "", "", 5); err == nil {
		t.Fatalf("expected error for empty token")
	}
}

func TestClient_HonorsRetryAfter(t *testing.T) {
	var hits int32
	start := time.Now()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(429)
			return
		}
		w.WriteHeader(200)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer ts.Close()

	cl, err := provider.New(ts.URL, "test-token", "", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := cl.ListListings(ctx, "cust-1"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if elapsed := time.Since(start); elapsed < time.Second {
		t.Fatalf("expected Retry-After wait, finished in %v", elapsed)
	}
}
