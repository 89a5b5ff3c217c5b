// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"staymarket/internal/app"
	"staymarket/internal/domain"
)

type Handlers struct {
	Q         *app.QueryService
	Sync      *app.SyncService
	Customers *app.CustomerService
	Bookings  *app.BookingService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/properties", h.listProperties)
	s.mux.Get("/v1/properties/{customerID}/{listingID}", h.getProperty)
	s.mux.Post("/v1/sync/{customerID}", h.syncCustomer)
	s.mux.Get("/v1/customers", h.listCustomers)
	s.mux.Get("/v1/customers/{customerID}", h.getCustomer)
	s.mux.Get("/v1/listings/{listingID}/reservations", h.listReservations)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")
	listingID := chi.URLParam(r, "listingID")

	row, err := h.Q.GetProperty(r.Context(), customerID, listingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "property not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "property lookup failed")
		return
	}

	etag, body := calcETagAndBody(row)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write getProperty body")
	}
}

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer")
	if customerID == "" {
		writeProblem(w, http.StatusBadRequest, "Missing customer", "customer query parameter is required")
		return
	}

	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}

	rows, err := h.Q.ListProperties(r.Context(), customerID, limit)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "property listing failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": rows})
}

func (h *Handlers) syncCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")

	objs, err := h.Sync.SyncCustomer(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "customer has no listings at the provider")
			return
		}
		writeProblem(w, http.StatusBadGateway, "Provider Error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"synced": len(objs), "items": objs})
}

func (h *Handlers) getCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.Customers.Lookup(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "customer not found")
			return
		}
		writeProblem(w, http.StatusBadGateway, "Provider Error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handlers) listCustomers(w http.ResponseWriter, r *http.Request) {
	cs, err := h.Customers.List(r.Context())
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Provider Error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": cs})
}

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	bs, err := h.Bookings.ListReservations(r.Context(), chi.URLParam(r, "listingID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "listing not found")
			return
		}
		writeProblem(w, http.StatusBadGateway, "Provider Error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": bs})
}
