package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMaps_EmbeddedTablesAreValid(t *testing.T) {
	m, err := LoadMaps()
	require.NoError(t, err)

	for _, typ := range []string{"Property", "Customer", "Booking"} {
		assert.NotEmpty(t, m.Provider[typ], "provider map missing %s", typ)
	}
	for _, table := range []string{"properties", "neighborhoods", "favorites"} {
		assert.NotEmpty(t, m.Storage[table], "storage map missing %s", table)
	}

	// every active entry must carry its scope
	for typ, entries := range m.Provider {
		for _, e := range entries {
			if e.Source != nil {
				assert.NotNil(t, e.Endpoint, "%s entry %q lacks endpoint", typ, *e.Source)
			}
		}
	}
	for table, entries := range m.Storage {
		for _, e := range entries {
			if e.Source != nil {
				assert.NotNil(t, e.Domain, "%s entry %q lacks domain", table, *e.Source)
			}
		}
	}
}

func TestLoadMaps_PlaceholderEntriesAreInert(t *testing.T) {
	m, err := LoadMaps()
	require.NoError(t, err)

	entries, err := scopedEntries(m.Provider, "Customer", EndpointCustomer)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotNil(t, e.Source)
		assert.NotContains(t, []string{"createdAt", "updatedAt"}, e.Target,
			"placeholder targets must never be scoped in")
	}
}
