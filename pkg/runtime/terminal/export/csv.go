package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/andes-data/sales-atlas/pkg/adapters"
	"github.com/andes-data/sales-atlas/pkg/models/domain"
)

// utf8BOM keeps Excel happy with accented column names.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVReporter writes a sales report as UTF-8 CSV with a byte-order marker.
// An empty report still produces the header row.
type CSVReporter struct {
	writer io.Writer
}

func NewCSVReporter(writer io.Writer) *CSVReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &CSVReporter{writer: writer}
}

func (c *CSVReporter) Handle(report *domain.SalesReport) error {
	if _, err := c.writer.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	w := csv.NewWriter(c.writer)
	if err := w.Write(report.Header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	includeWarning := report.HasWarnings()
	for _, row := range report.Rows {
		if err := w.Write(adapters.MapReportRowToRecord(row, includeWarning)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
