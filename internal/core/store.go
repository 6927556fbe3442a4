// ABOUTME: Narrow store interface through which the core reads and writes
// ABOUTME: Every method takes a tenant filter; all-tenants access is explicit opt-in
package core

import (
	"context"

	"github.com/fikalabs/pantry/internal/models"
)

// DeleteResult reports what a document deletion removed
type DeleteResult struct {
	ChunksDeleted   int  `json:"chunks_deleted"`
	DocumentDeleted bool `json:"document_deleted"`
}

// StatsFilter scopes a Stats call. AllTenants must be set explicitly to
// aggregate across tenants; an empty TenantID alone is rejected.
type StatsFilter struct {
	TenantID   string
	AllTenants bool
}

// Stats summarizes stored documents and chunks
type Stats struct {
	Documents int            `json:"documents"`
	Chunks    int            `json:"chunks"`
	ByType    map[string]int `json:"by_type"`
}

// Store is the persistence boundary for documents and chunks.
// Implementations must apply the tenant predicate on every query.
type Store interface {
	// InsertDocumentWithChunks writes one document and all of its chunks
	// atomically: on error nothing is visible to readers.
	InsertDocumentWithChunks(ctx context.Context, doc models.Document, chunks []models.Chunk) error

	// ListDocuments returns a tenant's documents, most recent first.
	ListDocuments(ctx context.Context, tenantID string) ([]models.DocumentSummary, error)

	// DeleteDocument removes all chunks for (tenant, document id), then the
	// document record. A missing document is a no-op result, not an error.
	DeleteDocument(ctx context.Context, tenantID, documentID string) (DeleteResult, error)

	// CountChunks returns the number of live chunks for one document.
	CountChunks(ctx context.Context, tenantID, documentID string) (int, error)

	// SemanticSearch returns the tenant's chunks most similar to the query
	// vector, best first, capped at limit.
	SemanticSearch(ctx context.Context, tenantID string, vector []float32, limit int) ([]models.ScoredChunk, error)

	// LexicalSearch returns the tenant's chunks ranked by keyword relevance,
	// best first, capped at limit. Returns ErrIndexUnavailable (possibly
	// wrapped) when the lexical index has not been built.
	LexicalSearch(ctx context.Context, tenantID, query string, limit int) ([]models.ScoredChunk, error)

	// Stats aggregates document and chunk counts, by document type.
	Stats(ctx context.Context, filter StatsFilter) (Stats, error)

	Close() error
}

// Embedder converts text into fixed-dimension vectors via an external provider
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery embeds a single query string.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}
