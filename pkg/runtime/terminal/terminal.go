package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/andes-data/sales-atlas/pkg/runtime/terminal/commands"
	"github.com/andes-data/sales-atlas/pkg/runtime/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	summary *export.SummaryReporter
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		summary: export.NewSummaryReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales-atlas",
		Short: "Bsale sales report tool",
	}

	cmd.AddCommand(commands.NewReportCmd(cli.summary))
	cmd.AddCommand(commands.NewCatalogsCmd(cli.summary))

	return cmd
}
