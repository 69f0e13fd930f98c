package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/andes-data/sales-atlas/pkg/adapters"
	"github.com/andes-data/sales-atlas/pkg/models/domain"
	"github.com/andes-data/sales-atlas/pkg/runtime/terminal/export"
	"github.com/andes-data/sales-atlas/pkg/services/sales"
)

const dateLayout = "2006-01-02"

// Generator produces a sales report for a document query.
type Generator interface {
	Generate(ctx context.Context, q sales.Query, refresh bool) (*domain.SalesReport, error)
}

type Handler struct {
	generator Generator
}

func NewHandler(generator Generator) *Handler {
	return &Handler{generator: generator}
}

// GetSalesReport generates a report on demand and streams it in the
// requested format (csv, xlsx or json; csv by default).
func (h *Handler) GetSalesReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	q, err := parseQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	refresh := r.URL.Query().Get("refresh") == "true"

	report, err := h.generator.Generate(ctx, q, refresh)
	if err != nil {
		logger.Error().Err(err).Msg("failed to generate sales report")
		http.Error(w, "failed to generate report", http.StatusBadGateway)
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename=reporte_ventas.csv")
		if err := export.NewCSVReporter(w).Handle(report); err != nil {
			logger.Error().Err(err).Msg("failed to stream csv report")
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename=reporte_ventas.xlsx")
		if err := export.NewXLSXReporter(w).Handle(report); err != nil {
			logger.Error().Err(err).Msg("failed to stream xlsx report")
		}
	case "json":
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(adapters.MapReportDomainToApi(report)); err != nil {
			logger.Error().Err(err).Msg("failed to encode report")
		}
	default:
		http.Error(w, fmt.Sprintf("unsupported format %q", format), http.StatusBadRequest)
	}
}

func parseQuery(r *http.Request) (sales.Query, error) {
	q := sales.Query{}

	if since := r.URL.Query().Get("since"); since != "" {
		t, err := time.ParseInLocation(dateLayout, since, time.Local)
		if err != nil {
			return sales.Query{}, fmt.Errorf("invalid since date %q", since)
		}
		q.Since = t
	}
	if until := r.URL.Query().Get("until"); until != "" {
		t, err := time.ParseInLocation(dateLayout, until, time.Local)
		if err != nil {
			return sales.Query{}, fmt.Errorf("invalid until date %q", until)
		}
		q.Until = t
	}
	return q, nil
}
