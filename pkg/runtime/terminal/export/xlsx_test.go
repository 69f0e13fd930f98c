package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/andes-data/sales-atlas/pkg/models/domain"
)

func TestXLSXReporter_WritesHeaderAndRows(t *testing.T) {
	report := &domain.SalesReport{Rows: []domain.ReportRow{
		{DocumentType: "Factura", DocumentNumber: "7", Currency: "CLP"},
	}}

	var buf bytes.Buffer
	require.NoError(t, NewXLSXReporter(&buf).Handle(report))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Tipo de Documento", rows[0][0])
	assert.Equal(t, "Factura", rows[1][0])
	assert.Equal(t, "7", rows[1][1])
}

func TestXLSXReporter_EmptyReportKeepsHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSXReporter(&buf).Handle(&domain.SalesReport{}))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.Columns, rows[0])
}
