// ABOUTME: CLI command to list a tenant's ingested documents
// ABOUTME: Most recent first, table or JSON output
package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listTenant string

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ingested documents",
		Long: `List a restaurant's ingested documents, most recent first.

Examples:
  pantry list --tenant fika
  pantry list --tenant fika --format json`,
		RunE: runList,
	}

	cmd.Flags().StringVar(&listTenant, "tenant", "", "Restaurant account (required)")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	docs, err := store.ListDocuments(cmd.Context(), listTenant)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if len(docs) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No documents for tenant: %s\n", listTenant)
		}
		return nil
	}

	if outputFormat == "json" {
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tTYPE\tTITLE\tCHUNKS\tTAGS\tCREATED\n")
	fmt.Fprintf(w, "--\t----\t-----\t------\t----\t-------\n")
	for _, doc := range docs {
		title := doc.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			doc.ID, doc.Type, truncate(title, 30), doc.ChunkCount,
			strings.Join(doc.Tags, ","), formatTime(doc.CreatedAt))
	}
	return w.Flush()
}
