package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/andes-data/sales-atlas/pkg/server"
	"github.com/andes-data/sales-atlas/pkg/services/catalog"
	"github.com/andes-data/sales-atlas/pkg/services/config"
	"github.com/andes-data/sales-atlas/pkg/services/report"
	"github.com/andes-data/sales-atlas/pkg/services/sales"
	"github.com/andes-data/sales-atlas/pkg/store/bsale"
	"github.com/andes-data/sales-atlas/pkg/store/cache"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the sales report API",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the profile file (token can also come from BSALE_TOKEN)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	profile, err := config.LoadProfile(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	client, err := bsale.NewClient(bsale.Settings{
		BaseURL:   profile.BaseURL,
		Token:     profile.Token,
		PageDelay: profile.PageDelay(),
	})
	if err != nil {
		return fmt.Errorf("failed to create bsale client: %w", err)
	}

	cacheStore, err := cache.NewFSStore(profile.CacheDir)
	if err != nil {
		return fmt.Errorf("failed to create cache store: %w", err)
	}

	reports := report.NewService(sales.NewService(client), catalog.NewResolver(client, cacheStore))

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Reports: reports,
		},
	})

	return api.Start()
}
