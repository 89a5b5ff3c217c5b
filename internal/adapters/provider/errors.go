package provider

import (
	"fmt"
	"net/http"

	"staymarket/internal/domain"
)

// APIError is the uniform error shape for non-2xx provider responses:
// message and code from the body when it was JSON, plus the HTTP status.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider: %s (code=%s, status=%d)", e.Message, e.Code, e.Status)
}

// Is lets 404 responses match domain.ErrNotFound via errors.Is.
func (e *APIError) Is(target error) bool {
	return target == domain.ErrNotFound && e.Status == http.StatusNotFound
}
