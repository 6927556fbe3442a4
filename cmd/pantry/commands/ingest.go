// ABOUTME: CLI command to ingest a document into a tenant's knowledge base
// ABOUTME: Accepts inline text, stdin, or a .txt/.md/.pdf file
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fikalabs/pantry/internal/core"
	"github.com/fikalabs/pantry/internal/extract"
	"github.com/fikalabs/pantry/internal/models"
)

var (
	ingestTenant string
	ingestFile   string
	ingestTitle  string
	ingestType   string
	ingestTags   []string
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [text]",
		Short: "Ingest a document",
		Long: `Ingest a free-form operational document into a restaurant's knowledge base.

The document is split into overlapping passages, embedded, and indexed for
hybrid retrieval. Re-ingesting the same content creates a new document.

Examples:
  pantry ingest --tenant fika --title "Fryer Cleaning" --type sop --file fryer.md
  pantry ingest --tenant fika --title "Winter Menu" --type menu --file menu.pdf
  cat opening-checklist.txt | pantry ingest --tenant fika --type sop --title "Opening Checklist"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runIngest,
	}

	cmd.Flags().StringVar(&ingestTenant, "tenant", "", "Restaurant account (required)")
	cmd.Flags().StringVar(&ingestFile, "file", "", "Read document from file (.txt, .md, or .pdf)")
	cmd.Flags().StringVar(&ingestTitle, "title", "", "Document title")
	cmd.Flags().StringVar(&ingestType, "type", "other", "Document type: menu, recipe, sop, policy, manual, other")
	cmd.Flags().StringSliceVar(&ingestTags, "tags", nil, "Tags (comma-separated)")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	docType, err := models.ParseDocumentType(ingestType)
	if err != nil {
		return err
	}

	var content string
	switch {
	case ingestFile != "":
		content, err = extract.FromFile(ingestFile)
		if err != nil {
			return err
		}
		if ingestTitle == "" {
			ingestTitle = filepath.Base(ingestFile)
		}
	case len(args) > 0:
		content = args[0]
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		content = string(data)
	}

	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("no document content provided")
	}

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

	lifecycle := newLifecycle(cfg, store, embedder)
	result, err := lifecycle.Ingest(cmd.Context(), ingestTenant, content, core.IngestOptions{
		Title: ingestTitle,
		Type:  docType,
		Tags:  ingestTags,
	})
	if err != nil {
		return fmt.Errorf("ingesting document: %w", err)
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
		fmt.Fprintf(cmd.OutOrStdout(), "Ingested document %s (%d chunks)\n", result.DocumentID, result.ChunkCount)
	}
	return nil
}
