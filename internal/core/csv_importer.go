// ABOUTME: CSV ingestion path: one row becomes one retrievable passage
// ABOUTME: Auto-detects the export category from column headers via ordered synonym lists
package core

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/fikalabs/pantry/internal/models"
)

// CSV export categories recognized by header inspection
const (
	CategorySales     = "sales"
	CategoryInventory = "inventory"
	CategoryProducts  = "products"
)

// Header synonyms per semantic field, resolved once per file. Order matters:
// the first match wins when an export uses more than one alternate name.
var (
	salesColumns = []string{
		"receipt_id", "receipt", "receipt_number", "transaction_id", "order_id",
		"payment_type", "payment_method", "gross_sales", "net_sales", "sales_total", "total_sales",
	}
	stockColumns = []string{
		"stock", "stock_level", "in_stock", "quantity_on_hand", "on_hand", "par_level", "reorder_point",
	}
	priceColumns = []string{
		"price", "unit_price", "menu_price", "selling_price",
	}
	costColumns = []string{
		"cost", "unit_cost", "cogs", "cost_of_goods",
	}
	categoryColumns = []string{
		"category", "menu_category", "item_category", "product_category",
	}
)

// ImportOptions tunes a CSV import
type ImportOptions struct {
	// Category overrides header auto-detection when set.
	Category string
}

// ImportResult reports what a CSV import created
type ImportResult struct {
	DocumentID string `json:"document_id"`
	Category   string `json:"category"`
	RowCount   int    `json:"row_count"`
}

// Importer converts structured CSV exports into retrievable chunks.
// Rows bypass the chunker: one row is already one retrievable unit.
type Importer struct {
	store    Store
	embedder Embedder
}

// NewImporter creates a CSV Importer
func NewImporter(store Store, embedder Embedder) *Importer {
	return &Importer{store: store, embedder: embedder}
}

// ImportCSV reads a tabular export, detects its category, converts each row
// into one passage, embeds all passages, and writes one document plus one
// chunk per row in a single transaction.
func (im *Importer) ImportCSV(ctx context.Context, tenantID string, r io.Reader, filename string, opts ImportOptions) (ImportResult, error) {
	if tenantID == "" {
		return ImportResult{}, Validationf("tenant id is required")
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return ImportResult{}, Validationf("csv file %s is empty", filename)
	}
	if err != nil {
		return ImportResult{}, Validationf("csv file %s: malformed header: %v", filename, err)
	}

	columns := normalizeHeader(header)

	category := opts.Category
	if category == "" {
		category = DetectCategory(columns)
		if category == "" {
			return ImportResult{}, Validationf(
				"csv file %s: cannot determine export category from columns %v; pass an explicit category",
				filename, columns)
		}
	} else if category != CategorySales && category != CategoryInventory && category != CategoryProducts {
		return ImportResult{}, Validationf("unknown csv category %q (valid: sales, inventory, products)", category)
	}

	var passages []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ImportResult{}, Validationf("csv file %s: row %d: %v", filename, len(passages)+2, err)
		}
		passage := rowToPassage(columns, record)
		if passage == "" {
			continue
		}
		passages = append(passages, passage)
	}

	if len(passages) == 0 {
		return ImportResult{}, Validationf("csv file %s has no data rows", filename)
	}

	vectors, err := im.embedder.Embed(ctx, passages)
	if err != nil {
		return ImportResult{}, fmt.Errorf("embedding csv rows: %w", err)
	}
	if len(vectors) != len(passages) {
		return ImportResult{}, &EmbeddingProviderError{
			Detail: fmt.Sprintf("expected %d vectors, got %d", len(passages), len(vectors)),
		}
	}

	now := time.Now().UTC()
	doc := models.Document{
		ID:         uuid.NewString(),
		TenantID:   tenantID,
		Title:      filename,
		Type:       models.DocTypeOther,
		ChunkCount: len(passages),
		Tags:       []string{"csv", category},
		CreatedAt:  now,
	}

	chunks := make([]models.Chunk, len(passages))
	for i, passage := range passages {
		chunks[i] = models.Chunk{
			TenantID:   tenantID,
			DocumentID: doc.ID,
			Content:    passage,
			Embedding:  vectors[i],
			Position:   i,
			DocType:    doc.Type,
			Title:      doc.Title,
			Section:    category,
			Tags:       doc.Tags,
			CreatedAt:  now,
		}
	}

	if err := im.store.InsertDocumentWithChunks(ctx, doc, chunks); err != nil {
		return ImportResult{}, fmt.Errorf("storing csv import: %w", err)
	}

	return ImportResult{DocumentID: doc.ID, Category: category, RowCount: len(passages)}, nil
}

// DetectCategory classifies an export from its normalized column names.
// Receipt, payment, or sales-summary columns mean a sales export; stock
// columns without any price column mean inventory; price alongside cost or
// category columns means a product list. Anything else is unknown.
func DetectCategory(columns []string) string {
	if hasAny(columns, salesColumns) {
		return CategorySales
	}
	hasPrice := hasAny(columns, priceColumns)
	if hasAny(columns, stockColumns) && !hasPrice {
		return CategoryInventory
	}
	if hasPrice && (hasAny(columns, costColumns) || hasAny(columns, categoryColumns)) {
		return CategoryProducts
	}
	return ""
}

func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		h = strings.ReplaceAll(h, " ", "_")
		columns[i] = h
	}
	return columns
}

func hasAny(columns, synonyms []string) bool {
	for _, col := range columns {
		for _, syn := range synonyms {
			if col == syn {
				return true
			}
		}
	}
	return false
}

// rowToPassage renders one CSV row as a compact "column: value" passage
func rowToPassage(columns, record []string) string {
	var parts []string
	for i, value := range record {
		value = strings.TrimSpace(value)
		if value == "" || i >= len(columns) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", columns[i], value))
	}
	return strings.Join(parts, "; ")
}
