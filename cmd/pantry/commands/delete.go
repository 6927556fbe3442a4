// ABOUTME: CLI command to delete a document and its chunks
// ABOUTME: Deleting a nonexistent document is a reported no-op, not an error
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteTenant string

// NewDeleteCmd creates the delete command
func NewDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <document-id>",
		Short: "Delete a document",
		Long: `Delete a document and all of its indexed chunks.

There is no in-place edit: to update a document, delete it and ingest the
new version.

Examples:
  pantry delete --tenant fika 4f8f1c1e-9a2b-4c3d-8e5f-6a7b8c9d0e1f`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().StringVar(&deleteTenant, "tenant", "", "Restaurant account (required)")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := store.DeleteDocument(cmd.Context(), deleteTenant, args[0])
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
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
		if result.DocumentDeleted {
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted document %s (%d chunks removed)\n", args[0], result.ChunksDeleted)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Document %s not found for tenant %s\n", args[0], deleteTenant)
		}
	}
	return nil
}
