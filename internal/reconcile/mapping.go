package reconcile

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
)

// Endpoint identifiers scoping provider mapping entries. The provider
// client resolves these templates into concrete URLs; here they only act
// as match keys.
const (
	EndpointListing       = "/v1/customers/{customer}/listings/{listing}"
	EndpointListingImages = "/v1/customers/{customer}/listings/{listing}/images"
	EndpointCalendar      = "/v1/listings/{listing}/calendar"
	EndpointCustomer      = "/v1/customers/{customer}"
	EndpointCustomers     = "/v1/customers"
	EndpointReservations  = "/v1/listings/{listing}/reservations"
)

// ProviderEntry maps one value in a provider endpoint response to one path
// in a domain object. A nil Source marks a reserved placeholder; such
// entries never participate in reconciliation.
type ProviderEntry struct {
	Source   *string `json:"source"`
	Target   string  `json:"target"`
	Endpoint *string `json:"endpoint"`
}

// ProviderMap is keyed by domain type name (Property, Customer, Booking).
type ProviderMap map[string][]ProviderEntry

// StorageEntry maps one domain-object path to one storage column. A nil
// Source marks a reserved column that must be skipped.
type StorageEntry struct {
	Source *string `json:"source"`
	Column string  `json:"column"`
	Domain *string `json:"domain"`
}

// StorageMap is keyed by storage table name.
type StorageMap map[string][]StorageEntry

// Maps bundles the two static mapping tables. Loaded once at process
// start; never mutated afterwards, safe for concurrent reads.
type Maps struct {
	Provider ProviderMap
	Storage  StorageMap
}

//go:embed mappings/provider_map.json mappings/storage_map.json
var mappingFS embed.FS

// LoadMaps parses and validates the embedded mapping tables.
func LoadMaps() (Maps, error) {
	var m Maps
	if err := decodeStrict("mappings/provider_map.json", &m.Provider); err != nil {
		return Maps{}, err
	}
	if err := decodeStrict("mappings/storage_map.json", &m.Storage); err != nil {
		return Maps{}, err
	}
	for typ, entries := range m.Provider {
		for i, e := range entries {
			if e.Target == "" {
				return Maps{}, fmt.Errorf("provider map %s[%d]: empty target", typ, i)
			}
			if e.Source != nil && e.Endpoint == nil {
				return Maps{}, fmt.Errorf("provider map %s[%d]: source %q has no endpoint scope", typ, i, *e.Source)
			}
		}
	}
	for table, entries := range m.Storage {
		for i, e := range entries {
			if e.Column == "" {
				return Maps{}, fmt.Errorf("storage map %s[%d]: empty column", table, i)
			}
			if e.Source != nil && e.Domain == nil {
				return Maps{}, fmt.Errorf("storage map %s[%d]: source %q has no domain scope", table, i, *e.Source)
			}
		}
	}
	return m, nil
}

func decodeStrict(name string, dst any) error {
	b, err := mappingFS.ReadFile(name)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
