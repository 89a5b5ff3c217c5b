// internal/adapters/provider/client.go
package provider

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"staymarket/internal/adapters/observability"
	"staymarket/internal/reconcile"
)

// Client talks to the property-management provider's connect API.
type Client struct {
	base    string
	hc      *http.Client
	token   string
	version string
	rl      *rate.Limiter
}

func New(base, token, version string, rps int) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("platform token is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base:    strings.TrimSuffix(base, "/"),
		hc:      &http.Client{Timeout: 20 * time.Second},
		token:   token,
		version: version,
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Endpoints ----

func (c *Client) ListListings(ctx context.Context, customerID string) (reconcile.Envelope, error) {
	return c.getEnvelope(ctx, fmt.Sprintf("/v1/customers/%s/listings", customerID), reconcile.EndpointListing)
}

func (c *Client) GetListing(ctx context.Context, customerID, listingID string) (reconcile.Envelope, error) {
	return c.getEnvelope(ctx, fmt.Sprintf("/v1/customers/%s/listings/%s", customerID, listingID), reconcile.EndpointListing)
}

func (c *Client) GetListingImages(ctx context.Context, customerID, listingID string) (reconcile.Envelope, error) {
	return c.getEnvelope(ctx, fmt.Sprintf("/v1/customers/%s/listings/%s/images", customerID, listingID), reconcile.EndpointListingImages)
}

func (c *Client) GetCalendar(ctx context.Context, listingID string) (reconcile.Envelope, error) {
	return c.getEnvelope(ctx, fmt.Sprintf("/v1/listings/%s/calendar", listingID), reconcile.EndpointCalendar)
}

func (c *Client) GetCustomer(ctx context.Context, customerID string) (reconcile.Envelope, error) {
	return c.getEnvelope(ctx, fmt.Sprintf("/v1/customers/%s", customerID), reconcile.EndpointCustomer)
}

func (c *Client) ListCustomers(ctx context.Context) (reconcile.Envelope, error) {
	return c.getEnvelope(ctx, "/v1/customers", reconcile.EndpointCustomers)
}

func (c *Client) ListReservations(ctx context.Context, listingID string) (reconcile.Envelope, error) {
	return c.getEnvelope(ctx, fmt.Sprintf("/v1/listings/%s/reservations", listingID), reconcile.EndpointReservations)
}

// ---- Internals ----

func (c *Client) getEnvelope(ctx context.Context, path, endpoint string) (reconcile.Envelope, error) {
	var env reconcile.Envelope
	start := time.Now()
	err := c.get(ctx, c.base+path, &env)
	status := http.StatusOK
	if apiErr, ok := err.(*APIError); ok {
		status = apiErr.Status
	} else if err != nil {
		status = 0
	}
	observability.ObserveExternal("provider", endpoint, status, time.Since(start))
	return env, err
}

// get performs a GET with client-side rate limiting, retries, and JSON
// decode into out. Retries on 429 and transient 5xx, honoring Retry-After
// when provided. Non-2xx responses are normalized into *APIError.
func (c *Client) get(ctx context.Context, url string, out any) error {
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		// build a fresh request each attempt
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")
		if c.version != "" {
			req.Header.Set("Connect-Version", c.version)
		}

		resp, err := c.hc.Do(req)
		if err != nil {
			// network error or context canceled
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusAccepted:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNoContent:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			// Prefer server-provided Retry-After; otherwise exponential backoff.
			wait := retryAfter(resp)
			apiErr := readAPIError(resp)
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = apiErr
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			return readAPIError(resp)
		}
	}

	return lastErr
}

// readAPIError normalizes an error response body (JSON or plain text)
// into an *APIError. Closes the body.
func readAPIError(resp *http.Response) *APIError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	resp.Body.Close()

	apiErr := &APIError{
		Status:  resp.StatusCode,
		Code:    "API_ERROR",
		Message: fmt.Sprintf("HTTP error, status: %d", resp.StatusCode),
	}
	var body struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(b, &body); err == nil {
		if body.Message != "" {
			apiErr.Message = body.Message
		}
		if body.Code != "" {
			apiErr.Code = body.Code
		}
	} else if s := strings.TrimSpace(string(b)); s != "" {
		apiErr.Message = s
	}
	return apiErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	// seconds form
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	// HTTP-date form
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential backoff delay with concurrency-safe jitter.
// i = retry attempt (0,1,2,...). Base doubles each attempt (200ms, 400ms, 800ms...),
// with up to +50% random jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0                  // 0..1
	j := time.Duration(0.5 * f * float64(base)) // up to +50%
	return base + j
}
