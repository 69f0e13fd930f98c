package report

import (
	"github.com/andes-data/sales-atlas/pkg/models/store"
)

// docPrefix namespaces document-level fields on a flattened row so they
// cannot collide with item-level keys.
const docPrefix = "doc."

// docMetaPaths are the document-level fields carried onto every line item
// row. Both document_type and documentType spellings exist in the wild.
var docMetaPaths = []string{
	"id",
	"number",
	"emissionDate",
	"documentTypeId",
	"trackingNumber",
	"token",
	"document_type.name",
	"documentType.name",
	"office.id",
	"office.name",
	"user.id",
	"user.name",
	"client.firstName",
	"client.lastName",
	"client.company",
	"client.code",
	"priceList.id",
	"priceList.name",
	"coin.code",
}

// Flatten expands each document into one row per line item. Documents with
// zero items contribute zero rows, and an unparseable details shape is
// treated the same way. Item fields keep flattened dotted keys
// ("variant.id"); document fields are copied under the doc. prefix.
func Flatten(docs []store.Record) []store.Record {
	var rows []store.Record
	for _, doc := range docs {
		for _, item := range lineItems(doc) {
			row := item.Flatten()
			for _, path := range docMetaPaths {
				if v, ok := doc.Get(path); ok {
					row[docPrefix+path] = v
				}
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// lineItems extracts the nested line item collection. The expanded details
// relation arrives as an object with an items array; a bare array is
// tolerated for older payload shapes.
func lineItems(doc store.Record) []store.Record {
	v, ok := doc.Get("details")
	if !ok {
		return nil
	}

	switch t := v.(type) {
	case map[string]any:
		arr, _ := t["items"].([]any)
		return toRecords(arr)
	case []any:
		return toRecords(t)
	default:
		return nil
	}
}

func toRecords(arr []any) []store.Record {
	var records []store.Record
	for _, v := range arr {
		if obj, ok := v.(map[string]any); ok {
			records = append(records, store.Record(obj))
		}
	}
	return records
}
