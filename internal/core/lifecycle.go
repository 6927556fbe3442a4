// ABOUTME: Document lifecycle manager: Ingest, List, Delete, Stats per tenant
// ABOUTME: Ingest is atomic; a failed embedding or write leaves no half-written document
package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/fikalabs/pantry/internal/models"
)

// Default chunking parameters, overridable per Lifecycle
const (
	DefaultChunkMaxChars = 1000
	DefaultChunkOverlap  = 150
)

// IngestOptions carries the caller-supplied document metadata
type IngestOptions struct {
	Title string
	Type  models.DocumentType
	Tags  []string
}

// IngestResult reports what an ingestion created
type IngestResult struct {
	DocumentID string `json:"document_id"`
	ChunkCount int    `json:"chunk_count"`
}

// Lifecycle owns create/list/delete of documents and their derived chunks
type Lifecycle struct {
	store        Store
	embedder     Embedder
	maxChars     int
	overlapChars int
}

// NewLifecycle creates a Lifecycle. Zero chunking parameters fall back to the
// package defaults.
func NewLifecycle(store Store, embedder Embedder, maxChars, overlapChars int) *Lifecycle {
	if maxChars <= 0 {
		maxChars = DefaultChunkMaxChars
	}
	if overlapChars <= 0 || overlapChars >= maxChars {
		overlapChars = DefaultChunkOverlap
		if overlapChars >= maxChars {
			overlapChars = maxChars / 5
		}
	}
	return &Lifecycle{
		store:        store,
		embedder:     embedder,
		maxChars:     maxChars,
		overlapChars: overlapChars,
	}
}

// Ingest chunks content, embeds every chunk, and writes one document plus its
// chunk records in a single transaction. A fresh document id is generated per
// call; re-ingesting the same content creates a new document.
func (l *Lifecycle) Ingest(ctx context.Context, tenantID, content string, opts IngestOptions) (IngestResult, error) {
	if tenantID == "" {
		return IngestResult{}, Validationf("tenant id is required")
	}
	if opts.Type == "" {
		opts.Type = models.DocTypeOther
	}
	if _, err := models.ParseDocumentType(string(opts.Type)); err != nil {
		return IngestResult{}, Validationf("%v", err)
	}
	for _, tag := range opts.Tags {
		// Tags are stored comma-joined; a comma inside one would corrupt it.
		if strings.Contains(tag, ",") {
			return IngestResult{}, Validationf("tag %q must not contain a comma", tag)
		}
	}

	pieces, err := Chunk(content, l.maxChars, l.overlapChars)
	if err != nil {
		return IngestResult{}, err
	}
	if len(pieces) == 0 {
		return IngestResult{}, Validationf("document content is empty")
	}

	texts := make([]string, len(pieces))
	for i, p := range pieces {
		texts[i] = p.Content
	}

	vectors, err := l.embedder.Embed(ctx, texts)
	if err != nil {
		return IngestResult{}, fmt.Errorf("embedding document chunks: %w", err)
	}
	if len(vectors) != len(texts) {
		return IngestResult{}, &EmbeddingProviderError{
			Detail: fmt.Sprintf("expected %d vectors, got %d", len(texts), len(vectors)),
		}
	}

	now := time.Now().UTC()
	doc := models.Document{
		ID:         uuid.NewString(),
		TenantID:   tenantID,
		Title:      opts.Title,
		Type:       opts.Type,
		Content:    content,
		ChunkCount: len(pieces),
		Tags:       opts.Tags,
		CreatedAt:  now,
	}

	chunks := make([]models.Chunk, len(pieces))
	for i, p := range pieces {
		chunks[i] = models.Chunk{
			TenantID:   tenantID,
			DocumentID: doc.ID,
			Content:    p.Content,
			Embedding:  vectors[i],
			Position:   p.Index,
			DocType:    doc.Type,
			Title:      doc.Title,
			Tags:       doc.Tags,
			CreatedAt:  now,
		}
	}

	if err := l.store.InsertDocumentWithChunks(ctx, doc, chunks); err != nil {
		return IngestResult{}, fmt.Errorf("storing document: %w", err)
	}

	return IngestResult{DocumentID: doc.ID, ChunkCount: len(chunks)}, nil
}

// List returns the tenant's document summaries, most recent first
func (l *Lifecycle) List(ctx context.Context, tenantID string) ([]models.DocumentSummary, error) {
	if tenantID == "" {
		return nil, Validationf("tenant id is required")
	}
	return l.store.ListDocuments(ctx, tenantID)
}

// Delete removes a document and all of its chunks. Deleting a document that
// does not exist for the tenant reports a zero result, not an error.
func (l *Lifecycle) Delete(ctx context.Context, tenantID, documentID string) (DeleteResult, error) {
	if tenantID == "" {
		return DeleteResult{}, Validationf("tenant id is required")
	}
	if documentID == "" {
		return DeleteResult{}, Validationf("document id is required")
	}
	return l.store.DeleteDocument(ctx, tenantID, documentID)
}

// Stats aggregates document and chunk counts. Cross-tenant aggregation
// requires the explicit AllTenants flag.
func (l *Lifecycle) Stats(ctx context.Context, filter StatsFilter) (Stats, error) {
	if filter.TenantID == "" && !filter.AllTenants {
		return Stats{}, Validationf("tenant id is required unless all-tenants is requested")
	}
	return l.store.Stats(ctx, filter)
}
