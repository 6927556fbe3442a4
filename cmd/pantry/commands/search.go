// ABOUTME: CLI command to search a tenant's knowledge base
// ABOUTME: Hybrid semantic + keyword retrieval with fused ranking
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	searchTenant string
	searchLimit  int
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the knowledge base",
		Long: `Search a restaurant's knowledge base with hybrid retrieval.

The query runs as a semantic (embedding similarity) search and a keyword
search in parallel; the two rankings are fused into one result list.

Examples:
  pantry search --tenant fika "fryer cleaning"
  pantry search --tenant fika --limit 10 --format json "gluten free menu items"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().StringVar(&searchTenant, "tenant", "", "Restaurant account (required)")
	cmd.Flags().IntVar(&searchLimit, "limit", 5, "Maximum results to return")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}
	query := args[0]

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

	service := newQueryService(cfg, store, embedder)
	hits, err := service.Search(cmd.Context(), searchTenant, query, searchLimit)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	if len(hits) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No results for query: %s\n", query)
		}
		return nil
	}

	if outputFormat == "json" {
		data, err := json.MarshalIndent(hits, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tSOURCE\tTITLE\tPREVIEW\n")
	fmt.Fprintf(w, "-----\t------\t-----\t-------\n")
	for _, hit := range hits {
		title := hit.Chunk.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(w, "%.4f\t%s\t%s\t%s\n",
			hit.Score, hit.Provenance, truncate(title, 24), truncate(hit.Chunk.Content, 60))
	}
	return w.Flush()
}
