// ABOUTME: CLI command to import a structured CSV export
// ABOUTME: Each row becomes one retrievable passage; category auto-detected from headers
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fikalabs/pantry/internal/core"
)

var (
	importTenant   string
	importCategory string
)

// NewImportCSVCmd creates the import-csv command
func NewImportCSVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-csv <file>",
		Short: "Import a CSV export",
		Long: `Import a structured CSV export (sales, inventory, or products) into a
restaurant's knowledge base. The export category is detected from the column
headers; pass --category to override.

Examples:
  pantry import-csv --tenant fika sales-march.csv
  pantry import-csv --tenant fika --category inventory stock.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runImportCSV,
	}

	cmd.Flags().StringVar(&importTenant, "tenant", "", "Restaurant account (required)")
	cmd.Flags().StringVar(&importCategory, "category", "", "Override category detection: sales, inventory, or products")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}

func runImportCSV(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}

	importer := core.NewImporter(store, embedder)
	result, err := importer.ImportCSV(cmd.Context(), importTenant, f, filepath.Base(path), core.ImportOptions{
		Category: importCategory,
	})
	if err != nil {
		return fmt.Errorf("importing csv: %w", err)
	}

	if outputFormat == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d %s rows as document %s\n",
			result.RowCount, result.Category, result.DocumentID)
	}
	return nil
}
