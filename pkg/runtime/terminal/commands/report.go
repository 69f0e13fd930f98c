package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/andes-data/sales-atlas/pkg/runtime/terminal/export"
	"github.com/andes-data/sales-atlas/pkg/services/catalog"
	"github.com/andes-data/sales-atlas/pkg/services/config"
	"github.com/andes-data/sales-atlas/pkg/services/report"
	"github.com/andes-data/sales-atlas/pkg/services/sales"
	"github.com/andes-data/sales-atlas/pkg/store/bsale"
	"github.com/andes-data/sales-atlas/pkg/store/cache"
)

const dateLayout = "2006-01-02"

type ReportCmd struct {
	profilePath string
	since       string
	until       string
	limit       int
	out         string
	format      string
	refresh     bool
	debug       bool
	summary     *export.SummaryReporter
}

func NewReportCmd(summary *export.SummaryReporter) *cobra.Command {
	rc := &ReportCmd{summary: summary}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the sales report",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.profilePath, "profile", "", "Path to the configuration profile")
	cmd.Flags().StringVar(&rc.since, "since", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rc.until, "until", "", "End date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&rc.limit, "limit", 50, "Page size (Bsale caps this at 50)")
	cmd.Flags().StringVar(&rc.out, "out", "", "Output file path")
	cmd.Flags().StringVar(&rc.format, "format", "csv", "Output format: csv or xlsx")
	cmd.Flags().BoolVar(&rc.refresh, "refresh", false, "Rebuild catalog caches before the run")
	cmd.Flags().BoolVar(&rc.debug, "debug", false, "Verbose logging")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	logger := newLogger(rc.debug)
	ctx := logger.WithContext(cmd.Context())

	query, err := rc.parseQuery()
	if err != nil {
		return err
	}

	profile, err := config.LoadProfile(rc.profilePath)
	if err != nil {
		return err
	}

	client, err := bsale.NewClient(bsale.Settings{
		BaseURL:   profile.BaseURL,
		Token:     profile.Token,
		PageDelay: profile.PageDelay(),
	})
	if err != nil {
		return err
	}

	cacheStore, err := cache.NewFSStore(profile.CacheDir)
	if err != nil {
		return err
	}

	svc := report.NewService(sales.NewService(client), catalog.NewResolver(client, cacheStore))
	rep, err := svc.Generate(ctx, query, rc.refresh)
	if err != nil {
		return err
	}

	outPath := rc.outPath()
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch rc.format {
	case "csv":
		err = export.NewCSVReporter(f).Handle(rep)
	case "xlsx":
		err = export.NewXLSXReporter(f).Handle(rep)
	default:
		return fmt.Errorf("unsupported format %q, expected csv or xlsx", rc.format)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return rc.summary.Handle(rep, outPath)
}

func (rc *ReportCmd) parseQuery() (sales.Query, error) {
	q := sales.Query{Limit: rc.limit}

	if rc.since != "" {
		since, err := time.ParseInLocation(dateLayout, rc.since, time.Local)
		if err != nil {
			return sales.Query{}, fmt.Errorf("invalid --since date %q: %w", rc.since, err)
		}
		q.Since = since
	}
	if rc.until != "" {
		until, err := time.ParseInLocation(dateLayout, rc.until, time.Local)
		if err != nil {
			return sales.Query{}, fmt.Errorf("invalid --until date %q: %w", rc.until, err)
		}
		q.Until = until
	}
	return q, nil
}

func (rc *ReportCmd) outPath() string {
	if rc.out != "" {
		return rc.out
	}

	since := rc.since
	if since == "" {
		since = "full"
	}
	until := rc.until
	if until == "" {
		until = "full"
	}
	return filepath.Join("data", fmt.Sprintf("reporte_ventas_%s_%s.%s", since, until, rc.format))
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)
}
