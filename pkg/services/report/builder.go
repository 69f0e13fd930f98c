package report

import (
	"github.com/andes-data/sales-atlas/pkg/models/domain"
	"github.com/andes-data/sales-atlas/pkg/models/store"
)

// Build turns raw documents and resolved catalogs into the final report.
// The pipeline is linear and pure: flatten, reconcile, compute, annotate.
// It never fails: unusable documents contribute no rows and an empty input
// yields a header-only report.
func Build(docs []store.Record, cats domain.Catalogs) *domain.SalesReport {
	flat := Flatten(docs)

	rows := make([]domain.ReportRow, 0, len(flat))
	for _, row := range flat {
		rows = append(rows, buildRow(row, cats))
	}
	return &domain.SalesReport{Rows: rows}
}

func buildRow(row store.Record, cats domain.Catalogs) domain.ReportRow {
	quantity := row.Float("quantity")
	netUnit := row.Float("netUnitValue")
	grossUnit := row.Float("totalUnitValue")
	netTotal := row.Float("netAmount")
	grossTotal := row.Float("totalAmount")
	taxTotal := row.Float("taxAmount")
	discountGross := row.Float("totalDiscount")

	variantID, _ := row.Int("variant.id")
	sku := row.String("variant.code")
	unitCost := cats.VariantCosts.UnitCost(variantID, sku)

	fin := computeFinancials(netTotal, grossTotal, discountGross, unitCost, quantity)

	out := domain.ReportRow{
		DocumentType:   resolve(row, cats, documentTypeChain),
		DocumentNumber: row.String(docPrefix + "number"),
		EmissionDate:   formatEmissionDate(row),
		TrackingRef:    resolve(row, cats, trackingChain),
		Office:         resolve(row, cats, officeChain),
		Salesperson:    resolve(row, cats, salespersonChain),
		CustomerName:   resolve(row, cats, customerChain),
		CustomerCode:   row.String(docPrefix + "client.code"),
		PriceList:      resolve(row, cats, priceListChain),
		Currency:       resolve(row, cats, currencyChain),
		SKU:            sku,
		Product:        row.String("variant.description"),
		ListPrice:      listPrice(row, grossUnit),
		NetUnitPrice:   netUnit,
		GrossUnitPrice: grossUnit,
		Quantity:       quantity,
		NetTotal:       netTotal,
		TaxTotal:       taxTotal,
		GrossTotal:     grossTotal,
		GrossDiscount:  discountGross,
		DiscountPct:    fin.DiscountPct,
		UnitCost:       unitCost,
		CostTotal:      fin.CostTotal,
		Margin:         fin.Margin,
		MarginPct:      fin.MarginPct,
	}

	if amountWarning(quantity, grossUnit, grossTotal) {
		out.Warning = domain.WarnAmountMismatch
	}
	return out
}

// listPrice prefers the API-provided list price; when no numeric value is
// present the gross unit price is the best available proxy.
func listPrice(row store.Record, grossUnit float64) float64 {
	v, ok := row.Get("listPrice")
	if !ok {
		return grossUnit
	}
	price, ok := store.ToFloat(v)
	if !ok {
		return grossUnit
	}
	return price
}
