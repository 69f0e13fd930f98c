package domain

import "strings"

// CatalogMap maps a reference-dimension id to its display name.
// A missing id resolves to an empty string, never an error.
type CatalogMap map[int]string

func (m CatalogMap) Name(id int) string {
	return m[id]
}

// VariantCost is one normalized row of the variant cost dimension.
type VariantCost struct {
	VariantID   int     `json:"variant_id"`
	SKU         string  `json:"sku"`
	Description string  `json:"variant_description"`
	CostNetUnit float64 `json:"cost_net_unit"`
}

// VariantCostIndex holds unit net costs keyed by variant id with a SKU
// fallback. Upstream accounts inconsistently populate variant id vs. SKU on
// line items, so both lookups are kept.
type VariantCostIndex struct {
	entries []VariantCost
	byID    map[int]float64
	bySKU   map[string]float64
}

func NewVariantCostIndex(entries []VariantCost) *VariantCostIndex {
	idx := &VariantCostIndex{
		entries: entries,
		byID:    make(map[int]float64, len(entries)),
		bySKU:   make(map[string]float64, len(entries)),
	}
	for _, e := range entries {
		if e.VariantID != 0 {
			idx.byID[e.VariantID] = e.CostNetUnit
		}
		if sku := strings.TrimSpace(e.SKU); sku != "" {
			idx.bySKU[sku] = e.CostNetUnit
		}
	}
	return idx
}

func (i *VariantCostIndex) Entries() []VariantCost {
	if i == nil {
		return nil
	}
	return i.entries
}

func (i *VariantCostIndex) Len() int {
	if i == nil {
		return 0
	}
	return len(i.entries)
}

// UnitCost resolves the unit net cost for a line item. A zero cost by id is
// treated as unresolved and retried by SKU; an unknown variant costs 0.
func (i *VariantCostIndex) UnitCost(variantID int, sku string) float64 {
	if i == nil {
		return 0
	}
	if cost, ok := i.byID[variantID]; ok && cost != 0 {
		return cost
	}
	if cost, ok := i.bySKU[strings.TrimSpace(sku)]; ok {
		return cost
	}
	return 0
}

// Catalogs bundles every reference dimension used to enrich a report run.
// Built once per run and read-only afterward.
type Catalogs struct {
	DocumentTypes CatalogMap
	Users         CatalogMap
	Offices       CatalogMap
	PriceLists    CatalogMap
	VariantCosts  *VariantCostIndex
}
