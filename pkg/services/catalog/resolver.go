package catalog

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/andes-data/sales-atlas/pkg/models/domain"
	"github.com/andes-data/sales-atlas/pkg/models/store"
	"github.com/andes-data/sales-atlas/pkg/store/bsale"
	"github.com/andes-data/sales-atlas/pkg/store/cache"
)

// costColumns are the cost-bearing field names tried against the variants
// endpoint, in priority order. Which one is populated depends on the account.
var costColumns = []string{
	"cost",
	"costPrice",
	"netCost",
	"lastPurchasePrice",
	"averageCost",
	"prices.cost",
	"unitCost",
	"purchasePrice",
}

// Resolver builds id->name maps for the reference dimensions and the
// variant cost index, each backed by a persistent cache with a
// forced-refresh mode.
type Resolver struct {
	fetcher bsale.Fetcher
	cache   cache.Store
}

func NewResolver(fetcher bsale.Fetcher, cacheStore cache.Store) *Resolver {
	return &Resolver{fetcher: fetcher, cache: cacheStore}
}

func (r *Resolver) DocumentTypes(ctx context.Context, refresh bool) (domain.CatalogMap, error) {
	return r.nameMap(ctx, "document_types", "[id,name]", refresh, displayName)
}

func (r *Resolver) Offices(ctx context.Context, refresh bool) (domain.CatalogMap, error) {
	return r.nameMap(ctx, "offices", "[id,name]", refresh, displayName)
}

func (r *Resolver) PriceLists(ctx context.Context, refresh bool) (domain.CatalogMap, error) {
	return r.nameMap(ctx, "price_lists", "[id,name]", refresh, displayName)
}

// Users resolves salesperson names. Some accounts do not expose a name
// field and only carry firstName/lastName.
func (r *Resolver) Users(ctx context.Context, refresh bool) (domain.CatalogMap, error) {
	return r.nameMap(ctx, "users", "", refresh, userDisplayName)
}

// All resolves every dimension needed for one report run.
func (r *Resolver) All(ctx context.Context, refresh bool) (domain.Catalogs, error) {
	docTypes, err := r.DocumentTypes(ctx, refresh)
	if err != nil {
		return domain.Catalogs{}, err
	}
	users, err := r.Users(ctx, refresh)
	if err != nil {
		return domain.Catalogs{}, err
	}
	offices, err := r.Offices(ctx, refresh)
	if err != nil {
		return domain.Catalogs{}, err
	}
	priceLists, err := r.PriceLists(ctx, refresh)
	if err != nil {
		return domain.Catalogs{}, err
	}
	costs, err := r.VariantCosts(ctx, refresh)
	if err != nil {
		return domain.Catalogs{}, err
	}

	return domain.Catalogs{
		DocumentTypes: docTypes,
		Users:         users,
		Offices:       offices,
		PriceLists:    priceLists,
		VariantCosts:  costs,
	}, nil
}

func (r *Resolver) nameMap(
	ctx context.Context,
	dimension string,
	fields string,
	refresh bool,
	name func(store.Record) string,
) (domain.CatalogMap, error) {
	logger := zerolog.Ctx(ctx)

	if !refresh {
		if cached, ok := r.loadCachedMap(dimension); ok {
			return cached, nil
		}
	}

	params := url.Values{}
	if fields != "" {
		params.Set("fields", fields)
	}

	rows, err := r.fetcher.FetchAll(ctx, dimension, params)
	if err != nil {
		return nil, err
	}

	mapping := domain.CatalogMap{}
	for _, row := range rows {
		id, ok := row.Int("id")
		if !ok {
			continue
		}
		mapping[id] = name(row)
	}

	if err := r.saveMap(dimension, mapping); err != nil {
		logger.Warn().Err(err).Str("dimension", dimension).Msg("failed to persist catalog cache")
	}
	return mapping, nil
}

// loadCachedMap coerces the string-keyed cache entry back to integer keys.
// Any malformed key invalidates the whole entry so the caller refetches.
func (r *Resolver) loadCachedMap(dimension string) (domain.CatalogMap, bool) {
	var cached map[string]string
	hit, err := r.cache.Load(dimension, &cached)
	if err != nil || !hit || len(cached) == 0 {
		return nil, false
	}

	mapping := domain.CatalogMap{}
	for k, v := range cached {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, false
		}
		mapping[id] = v
	}
	return mapping, true
}

func (r *Resolver) saveMap(dimension string, mapping domain.CatalogMap) error {
	serialized := make(map[string]string, len(mapping))
	for id, name := range mapping {
		serialized[strconv.Itoa(id)] = name
	}
	return r.cache.Save(dimension, serialized)
}

// VariantCosts builds the variant cost dimension. The variants endpoint is
// not available on every plan: an upstream API error degrades to an empty
// index ("cost unknown for all variants") instead of failing the run.
func (r *Resolver) VariantCosts(ctx context.Context, refresh bool) (*domain.VariantCostIndex, error) {
	logger := zerolog.Ctx(ctx)

	const cacheName = "variants_dim"

	if !refresh {
		var cached []domain.VariantCost
		if hit, err := r.cache.Load(cacheName, &cached); err == nil && hit {
			return domain.NewVariantCostIndex(cached), nil
		}
	}

	rows, err := r.fetcher.FetchAll(ctx, "variants", url.Values{})
	if err != nil {
		var apiErr *bsale.APIError
		if errors.As(err, &apiErr) {
			logger.Warn().Err(err).Msg("variants endpoint unavailable, costs default to zero")
			empty := []domain.VariantCost{}
			if err := r.cache.Save(cacheName, empty); err != nil {
				logger.Warn().Err(err).Msg("failed to persist variant cost cache")
			}
			return domain.NewVariantCostIndex(empty), nil
		}
		return nil, err
	}

	flat := make([]store.Record, 0, len(rows))
	for _, row := range rows {
		flat = append(flat, row.Flatten())
	}

	costColumn := pickCostColumn(flat)
	if costColumn == "" && len(flat) > 0 {
		logger.Warn().
			Strs("candidates", costColumns).
			Msg("no cost column found on variants, costs default to zero")
	}

	entries := make([]domain.VariantCost, 0, len(flat))
	for _, row := range flat {
		id, _ := row.Int("id")
		cost := 0.0
		if costColumn != "" {
			cost = row.Float(costColumn)
		}
		entries = append(entries, domain.VariantCost{
			VariantID:   id,
			SKU:         row.String("code"),
			Description: row.String("description"),
			CostNetUnit: cost,
		})
	}

	if err := r.cache.Save(cacheName, entries); err != nil {
		logger.Warn().Err(err).Msg("failed to persist variant cost cache")
	}
	return domain.NewVariantCostIndex(entries), nil
}

// pickCostColumn returns the first candidate field that exists with at
// least one non-null value across the fetched variants.
func pickCostColumn(rows []store.Record) string {
	for _, candidate := range costColumns {
		for _, row := range rows {
			if row.Has(candidate) {
				return candidate
			}
		}
	}
	return ""
}

func displayName(row store.Record) string {
	return row.String("name")
}

func userDisplayName(row store.Record) string {
	if name := row.String("name"); name != "" {
		return name
	}
	first := row.String("firstName")
	last := row.String("lastName")
	return strings.TrimSpace(first + " " + last)
}
