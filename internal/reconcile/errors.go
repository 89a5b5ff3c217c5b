package reconcile

import "fmt"

// ConfigurationError signals a domain type absent from the provider mapping
// table. That is a deployment defect, never retried or defaulted.
type ConfigurationError struct {
	DomainType string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("reconcile: no provider mapping for domain type %q", e.DomainType)
}

// ShapeError signals a provider response that violated the expected
// envelope shape for the requested mode.
type ShapeError struct {
	DomainType string
	Endpoint   string
	Reason     string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("reconcile: bad envelope shape for %s via %s: %s", e.DomainType, e.Endpoint, e.Reason)
}
