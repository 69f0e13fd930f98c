package catalog

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andes-data/sales-atlas/pkg/models/store"
	"github.com/andes-data/sales-atlas/pkg/store/bsale"
	"github.com/andes-data/sales-atlas/pkg/store/cache"
)

// stubFetcher serves canned records per endpoint and counts calls.
type stubFetcher struct {
	records map[string][]store.Record
	errs    map[string]error
	calls   map[string]int
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		records: map[string][]store.Record{},
		errs:    map[string]error{},
		calls:   map[string]int{},
	}
}

func (s *stubFetcher) FetchAll(_ context.Context, endpoint string, _ url.Values) ([]store.Record, error) {
	s.calls[endpoint]++
	if err := s.errs[endpoint]; err != nil {
		return nil, err
	}
	return s.records[endpoint], nil
}

func newTestResolver(t *testing.T, fetcher *stubFetcher) (*Resolver, string) {
	t.Helper()
	dir := t.TempDir()
	cacheStore, err := cache.NewFSStore(dir)
	require.NoError(t, err)
	return NewResolver(fetcher, cacheStore), dir
}

func TestDocumentTypes_BuildsMapSkippingNullIDs(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.records["document_types"] = []store.Record{
		{"id": float64(5), "name": "Factura Electrónica"},
		{"id": nil, "name": "sin id"},
		{"id": float64(12), "name": "Boleta"},
	}
	resolver, _ := newTestResolver(t, fetcher)

	m, err := resolver.DocumentTypes(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, "Factura Electrónica", m.Name(5))
	assert.Equal(t, "Boleta", m.Name(12))
	assert.Equal(t, "", m.Name(99))
}

func TestDocumentTypes_CacheRoundTrip(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.records["document_types"] = []store.Record{
		{"id": float64(5), "name": "Factura"},
	}
	resolver, _ := newTestResolver(t, fetcher)

	fresh, err := resolver.DocumentTypes(context.Background(), false)
	require.NoError(t, err)

	cached, err := resolver.DocumentTypes(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, fresh, cached)
	assert.Equal(t, 1, fetcher.calls["document_types"], "second call must come from cache")
}

func TestDocumentTypes_RefreshBypassesCache(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.records["document_types"] = []store.Record{
		{"id": float64(5), "name": "Factura"},
	}
	resolver, _ := newTestResolver(t, fetcher)

	_, err := resolver.DocumentTypes(context.Background(), false)
	require.NoError(t, err)

	fetcher.records["document_types"] = []store.Record{
		{"id": float64(5), "name": "Factura (renombrada)"},
	}
	m, err := resolver.DocumentTypes(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, "Factura (renombrada)", m.Name(5))
	assert.Equal(t, 2, fetcher.calls["document_types"])
}

func TestDocumentTypes_MalformedCacheKeysTreatedAsMiss(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.records["document_types"] = []store.Record{
		{"id": float64(7), "name": "Nota de Crédito"},
	}
	resolver, dir := newTestResolver(t, fetcher)

	path := filepath.Join(dir, "document_types.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not-a-number":"x"}`), 0o644))

	m, err := resolver.DocumentTypes(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "Nota de Crédito", m.Name(7))
	assert.Equal(t, 1, fetcher.calls["document_types"])
}

func TestUsers_NameFallsBackToFirstLast(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.records["users"] = []store.Record{
		{"id": float64(1), "name": "Vendedor Uno"},
		{"id": float64(2), "firstName": "María", "lastName": "Pérez"},
		{"id": float64(3), "firstName": "Solo"},
		{"id": float64(4)},
	}
	resolver, _ := newTestResolver(t, fetcher)

	m, err := resolver.Users(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "Vendedor Uno", m.Name(1))
	assert.Equal(t, "María Pérez", m.Name(2))
	assert.Equal(t, "Solo", m.Name(3))
	assert.Equal(t, "", m.Name(4))
}

func TestVariantCosts_PicksFirstPopulatedCostColumn(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.records["variants"] = []store.Record{
		{"id": float64(1), "code": "SKU-1", "description": "Uno", "costPrice": float64(900)},
		{"id": float64(2), "code": "SKU-2", "description": "Dos", "costPrice": float64(450), "netCost": float64(999)},
	}
	resolver, _ := newTestResolver(t, fetcher)

	idx, err := resolver.VariantCosts(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 900.0, idx.UnitCost(1, ""))
	// costPrice is ahead of netCost in the candidate ordering.
	assert.Equal(t, 450.0, idx.UnitCost(2, ""))
}

func TestVariantCosts_NestedPricesCost(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.records["variants"] = []store.Record{
		{"id": float64(1), "code": "SKU-1", "prices": map[string]any{"cost": float64(120)}},
	}
	resolver, _ := newTestResolver(t, fetcher)

	idx, err := resolver.VariantCosts(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 120.0, idx.UnitCost(1, ""))
}

func TestVariantCosts_NoCostColumnDefaultsToZero(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.records["variants"] = []store.Record{
		{"id": float64(1), "code": "SKU-1", "description": "Sin costo"},
	}
	resolver, _ := newTestResolver(t, fetcher)

	idx, err := resolver.VariantCosts(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())
	assert.Equal(t, 0.0, idx.UnitCost(1, "SKU-1"))
}

func TestVariantCosts_NonNumericCostCoercesToZero(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.records["variants"] = []store.Record{
		{"id": float64(1), "code": "SKU-1", "cost": "n/a"},
		{"id": float64(2), "code": "SKU-2", "cost": float64(300)},
	}
	resolver, _ := newTestResolver(t, fetcher)

	idx, err := resolver.VariantCosts(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 0.0, idx.UnitCost(1, ""))
	assert.Equal(t, 300.0, idx.UnitCost(2, ""))
}

func TestVariantCosts_UpstreamErrorDegradesToEmptyIndex(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.errs["variants"] = &bsale.APIError{StatusCode: http.StatusNotFound, URL: "variants"}
	resolver, dir := newTestResolver(t, fetcher)

	idx, err := resolver.VariantCosts(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
	assert.Equal(t, 0.0, idx.UnitCost(1, "SKU-1"))

	// The empty result is persisted so the next run does not retry.
	_, statErr := os.Stat(filepath.Join(dir, "variants_dim.json"))
	assert.NoError(t, statErr)
}

func TestVariantCosts_CacheRoundTrip(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.records["variants"] = []store.Record{
		{"id": float64(9), "code": "ABC-1", "description": "Caja", "cost": float64(500)},
	}
	resolver, _ := newTestResolver(t, fetcher)

	fresh, err := resolver.VariantCosts(context.Background(), false)
	require.NoError(t, err)

	cached, err := resolver.VariantCosts(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, fresh.Entries(), cached.Entries())
	assert.Equal(t, 1, fetcher.calls["variants"])
}

func TestAll_ResolvesEveryDimension(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.records["document_types"] = []store.Record{{"id": float64(1), "name": "Factura"}}
	fetcher.records["users"] = []store.Record{{"id": float64(2), "name": "Ana"}}
	fetcher.records["offices"] = []store.Record{{"id": float64(3), "name": "Casa Matriz"}}
	fetcher.records["price_lists"] = []store.Record{{"id": float64(4), "name": "Mayorista"}}
	fetcher.records["variants"] = []store.Record{{"id": float64(5), "code": "SKU-5", "cost": float64(10)}}
	resolver, _ := newTestResolver(t, fetcher)

	cats, err := resolver.All(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "Factura", cats.DocumentTypes.Name(1))
	assert.Equal(t, "Ana", cats.Users.Name(2))
	assert.Equal(t, "Casa Matriz", cats.Offices.Name(3))
	assert.Equal(t, "Mayorista", cats.PriceLists.Name(4))
	assert.Equal(t, 10.0, cats.VariantCosts.UnitCost(5, ""))
}
