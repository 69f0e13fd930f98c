package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andes-data/sales-atlas/pkg/models/domain"
)

func TestMapReportRowToRecord_OrderMatchesColumns(t *testing.T) {
	row := domain.ReportRow{
		DocumentType:   "Factura",
		DocumentNumber: "42",
		EmissionDate:   "01/05/2024",
		TrackingRef:    "TRK",
		Office:         "Casa Matriz",
		Salesperson:    "Ana",
		CustomerName:   "ACME",
		CustomerCode:   "11.111.111-1",
		PriceList:      "Mayorista",
		Currency:       "CLP",
		SKU:            "ABC-1",
		Product:        "Caja",
		ListPrice:      1500,
		NetUnitPrice:   1000,
		GrossUnitPrice: 1190,
		Quantity:       2,
		NetTotal:       2000,
		TaxTotal:       380,
		GrossTotal:     2380,
		GrossDiscount:  0,
		UnitCost:       500,
		CostTotal:      1000,
		Margin:         1000,
		MarginPct:      0.5,
	}

	record := MapReportRowToRecord(row, false)
	require.Len(t, record, len(domain.Columns))
	assert.Equal(t, "Factura", record[0])
	assert.Equal(t, "01/05/2024", record[2])
	assert.Equal(t, "ABC-1", record[10])
	assert.Equal(t, "1190", record[14])
	assert.Equal(t, "0.5", record[24])
}

func TestMapReportRowToRecord_WarningCell(t *testing.T) {
	row := domain.ReportRow{Warning: domain.WarnAmountMismatch}

	with := MapReportRowToRecord(row, true)
	without := MapReportRowToRecord(row, false)

	assert.Len(t, with, len(domain.Columns)+1)
	assert.Equal(t, domain.WarnAmountMismatch, with[len(with)-1])
	assert.Len(t, without, len(domain.Columns))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0", FormatAmount(0))
	assert.Equal(t, "1190", FormatAmount(1190))
	assert.Equal(t, "0.05", FormatAmount(0.05))
	assert.Equal(t, "-3.5", FormatAmount(-3.5))
}

func TestMapReportDomainToApi(t *testing.T) {
	report := &domain.SalesReport{Rows: []domain.ReportRow{
		{DocumentNumber: "1"},
		{DocumentNumber: "2", Warning: domain.WarnAmountMismatch},
	}}

	out := MapReportDomainToApi(report)
	assert.Equal(t, 2, out.RowCount)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, report.Header(), out.Columns)
	assert.Len(t, out.Rows[0], len(domain.Columns)+1)
}
