package adapters

import (
	"strconv"

	"github.com/andes-data/sales-atlas/pkg/models/api"
	"github.com/andes-data/sales-atlas/pkg/models/domain"
)

// MapReportRowToRecord renders one report row as an ordered output record
// matching domain.Columns. The warning cell is appended only when the
// report as a whole carries the advisory column.
func MapReportRowToRecord(row domain.ReportRow, includeWarning bool) []string {
	record := []string{
		row.DocumentType,
		row.DocumentNumber,
		row.EmissionDate,
		row.TrackingRef,
		row.Office,
		row.Salesperson,
		row.CustomerName,
		row.CustomerCode,
		row.PriceList,
		row.Currency,
		row.SKU,
		row.Product,
		FormatAmount(row.ListPrice),
		FormatAmount(row.NetUnitPrice),
		FormatAmount(row.GrossUnitPrice),
		FormatAmount(row.Quantity),
		FormatAmount(row.NetTotal),
		FormatAmount(row.TaxTotal),
		FormatAmount(row.GrossTotal),
		FormatAmount(row.GrossDiscount),
		FormatAmount(row.DiscountPct),
		FormatAmount(row.UnitCost),
		FormatAmount(row.CostTotal),
		FormatAmount(row.Margin),
		FormatAmount(row.MarginPct),
	}
	if includeWarning {
		record = append(record, row.Warning)
	}
	return record
}

// MapReportDomainToApi shapes a report for the JSON web surface.
func MapReportDomainToApi(report *domain.SalesReport) api.SalesReport {
	out := api.SalesReport{
		Columns:  report.Header(),
		Rows:     [][]string{},
		RowCount: len(report.Rows),
	}
	includeWarning := report.HasWarnings()
	for _, row := range report.Rows {
		out.Rows = append(out.Rows, MapReportRowToRecord(row, includeWarning))
	}
	return out
}

// FormatAmount renders a numeric cell with the shortest exact
// representation so repeated runs stay byte-identical.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
