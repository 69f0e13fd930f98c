package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/andes-data/sales-atlas/pkg/models/domain"
)

// SummaryReporter prints a short run summary to the console after the
// report file has been written.
type SummaryReporter struct {
	writer io.Writer
}

func NewSummaryReporter(writer io.Writer) *SummaryReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &SummaryReporter{writer: writer}
}

func (s *SummaryReporter) Writer() io.Writer {
	return s.writer
}

type summaryData struct {
	Path     string
	Rows     int
	Flagged  int
	NetTotal float64
}

func (s *SummaryReporter) Handle(report *domain.SalesReport, outPath string) error {
	data := summaryData{Path: outPath, Rows: len(report.Rows)}
	for _, row := range report.Rows {
		data.NetTotal += row.NetTotal
		if row.Warning != "" {
			data.Flagged++
		}
	}

	tmpl := `Report written to {{.Path}}
Rows: {{.Rows}}
Net total: {{printf "%.2f" .NetTotal}}
{{if .Flagged}}Flagged rows ({{.Flagged}}) need review: see the {{"_warn_monto"}} column
{{end}}`

	t, err := template.New("summary").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(s.writer, data)
}
