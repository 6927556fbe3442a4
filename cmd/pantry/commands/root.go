// ABOUTME: Cobra root command with global flags shared by all subcommands
// ABOUTME: Entry point for the pantry CLI
package commands

import (
	"github.com/spf13/cobra"
)

var (
	quiet        bool
	outputFormat string
	configPath   string
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pantry",
		Short: "Restaurant knowledge base with hybrid retrieval",
		Long: `Pantry stores a restaurant's operational documents (menus, SOPs, recipes,
policies) and structured CSV exports, and retrieves the most relevant
passages for a query using hybrid semantic + keyword search.

Each restaurant is an isolated tenant: every command that touches data
takes a --tenant flag.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	root.PersistentFlags().StringVar(&outputFormat, "format", "text", "Output format: text or json")
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")

	root.AddCommand(
		NewIngestCmd(),
		NewImportCSVCmd(),
		NewSearchCmd(),
		NewListCmd(),
		NewDeleteCmd(),
		NewStatsCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return root
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}
