package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andes-data/sales-atlas/pkg/runtime/terminal/export"
	"github.com/andes-data/sales-atlas/pkg/services/catalog"
	"github.com/andes-data/sales-atlas/pkg/services/config"
	"github.com/andes-data/sales-atlas/pkg/store/bsale"
	"github.com/andes-data/sales-atlas/pkg/store/cache"
)

type CatalogsCmd struct {
	profilePath string
	debug       bool
	summary     *export.SummaryReporter
}

// NewCatalogsCmd force-refreshes every catalog cache. Useful after renaming
// offices or price lists upstream, since caches never expire on their own.
func NewCatalogsCmd(summary *export.SummaryReporter) *cobra.Command {
	cc := &CatalogsCmd{summary: summary}
	cmd := &cobra.Command{
		Use:   "catalogs",
		Short: "Refresh the catalog caches",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.profilePath, "profile", "", "Path to the configuration profile")
	cmd.Flags().BoolVar(&cc.debug, "debug", false, "Verbose logging")

	return cmd
}

func (cc *CatalogsCmd) run(cmd *cobra.Command, _ []string) error {
	logger := newLogger(cc.debug)
	ctx := logger.WithContext(cmd.Context())

	profile, err := config.LoadProfile(cc.profilePath)
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

	cats, err := catalog.NewResolver(client, cacheStore).All(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to refresh catalogs: %w", err)
	}

	w := cc.summary.Writer()
	fmt.Fprintf(w, "document types: %d\n", len(cats.DocumentTypes))
	fmt.Fprintf(w, "users: %d\n", len(cats.Users))
	fmt.Fprintf(w, "offices: %d\n", len(cats.Offices))
	fmt.Fprintf(w, "price lists: %d\n", len(cats.PriceLists))
	fmt.Fprintf(w, "variants: %d\n", cats.VariantCosts.Len())
	return nil
}
