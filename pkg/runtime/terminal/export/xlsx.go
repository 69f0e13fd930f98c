package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/andes-data/sales-atlas/pkg/adapters"
	"github.com/andes-data/sales-atlas/pkg/models/domain"
)

const sheetName = "Sheet1"

// XLSXReporter writes a sales report as an XLSX workbook for consumers who
// want a spreadsheet instead of CSV.
type XLSXReporter struct {
	writer io.Writer
}

func NewXLSXReporter(writer io.Writer) *XLSXReporter {
	return &XLSXReporter{writer: writer}
}

func (x *XLSXReporter) Handle(report *domain.SalesReport) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := writeRow(f, 1, report.Header()); err != nil {
		return err
	}

	includeWarning := report.HasWarnings()
	for i, row := range report.Rows {
		record := adapters.MapReportRowToRecord(row, includeWarning)
		if err := writeRow(f, i+2, record); err != nil {
			return err
		}
	}

	if err := f.Write(x.writer); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, rowNo int, cells []string) error {
	for col, value := range cells {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNo)
		if err != nil {
			return fmt.Errorf("failed to address cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}
	return nil
}
