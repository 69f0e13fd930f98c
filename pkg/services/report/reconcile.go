package report

import (
	"strings"
	"time"

	"github.com/andes-data/sales-atlas/pkg/models/domain"
	"github.com/andes-data/sales-atlas/pkg/models/store"
)

// candidate resolves one value source for an output column. Candidates are
// evaluated left to right; the first non-empty result wins. Keeping the
// orderings as data lets a new source slot in without touching the
// resolution logic.
type candidate func(row store.Record, cats domain.Catalogs) string

var (
	documentTypeChain = []candidate{
		field(docPrefix + "document_type.name"),
		field(docPrefix + "documentType.name"),
		catalogName(docPrefix+"documentTypeId", func(c domain.Catalogs) domain.CatalogMap { return c.DocumentTypes }),
		field(docPrefix + "documentTypeId"),
	}
	salespersonChain = []candidate{
		field(docPrefix + "user.name"),
		catalogName(docPrefix+"user.id", func(c domain.Catalogs) domain.CatalogMap { return c.Users }),
	}
	officeChain = []candidate{
		field(docPrefix + "office.name"),
		catalogName(docPrefix+"office.id", func(c domain.Catalogs) domain.CatalogMap { return c.Offices }),
	}
	priceListChain = []candidate{
		field(docPrefix + "priceList.name"),
		catalogName(docPrefix+"priceList.id", func(c domain.Catalogs) domain.CatalogMap { return c.PriceLists }),
	}
	customerChain = []candidate{
		field(docPrefix + "client.company"),
		joined(docPrefix+"client.firstName", docPrefix+"client.lastName"),
	}
	currencyChain = []candidate{
		field(docPrefix + "coin.code"),
		literal("CLP"),
	}
	trackingChain = []candidate{
		field(docPrefix + "trackingNumber"),
		field(docPrefix + "token"),
		field(docPrefix + "id"),
	}
)

// resolve returns the first non-empty candidate value. Non-empty means
// present, non-null and not whitespace-only after trimming.
func resolve(row store.Record, cats domain.Catalogs, chain []candidate) string {
	for _, c := range chain {
		if v := c(row, cats); strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func field(path string) candidate {
	return func(row store.Record, _ domain.Catalogs) string {
		return row.String(path)
	}
}

func catalogName(idPath string, pick func(domain.Catalogs) domain.CatalogMap) candidate {
	return func(row store.Record, cats domain.Catalogs) string {
		id, ok := row.Int(idPath)
		if !ok {
			return ""
		}
		return pick(cats).Name(id)
	}
}

func joined(firstPath, lastPath string) candidate {
	return func(row store.Record, _ domain.Catalogs) string {
		return strings.TrimSpace(row.String(firstPath) + " " + row.String(lastPath))
	}
}

func literal(value string) candidate {
	return func(store.Record, domain.Catalogs) string {
		return value
	}
}

// formatEmissionDate renders a seconds-since-epoch emission timestamp as
// DD/MM/YYYY. Missing or non-numeric timestamps render empty.
func formatEmissionDate(row store.Record) string {
	v, ok := row.Get(docPrefix + "emissionDate")
	if !ok {
		return ""
	}
	unix, ok := store.ToFloat(v)
	if !ok {
		return ""
	}
	return time.Unix(int64(unix), 0).UTC().Format("02/01/2006")
}
