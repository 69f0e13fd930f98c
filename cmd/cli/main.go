package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/andes-data/sales-atlas/pkg/runtime/terminal"
)

func main() {
	// Optional: the access token usually lives in .env.
	_ = godotenv.Load()

	cli := terminal.NewCLI(terminal.Options{
		Output: os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
