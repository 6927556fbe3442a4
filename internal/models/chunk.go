// ABOUTME: Chunk is one retrievable text unit with its embedding vector
// ABOUTME: Chunks are exclusively owned by their parent Document and tenant-scoped
package models

import "time"

// Chunk represents a retrievable unit of a Document. Metadata fields (Title,
// DocType, Section, Tags) are copied from the parent at ingestion time so a
// search hit is self-describing without a second lookup.
type Chunk struct {
	ID         int64        `json:"id"`
	TenantID   string       `json:"tenant_id"`
	DocumentID string       `json:"document_id"`
	Content    string       `json:"content"`
	Embedding  []float32    `json:"-"`
	Position   int          `json:"position"`
	DocType    DocumentType `json:"doc_type"`
	Title      string       `json:"title"`
	Section    string       `json:"section,omitempty"`
	Tags       []string     `json:"tags,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// ScoredChunk is a chunk with the raw score assigned by one underlying search
type ScoredChunk struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}
