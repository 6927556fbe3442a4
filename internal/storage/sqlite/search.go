// ABOUTME: Semantic (cosine) and lexical (FTS5) search over a tenant's chunks
// ABOUTME: A missing lexical index maps to ErrIndexUnavailable, never a fatal error
package sqlite

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fikalabs/pantry/internal/core"
	"github.com/fikalabs/pantry/internal/models"
)

const chunkColumns = "id, tenant_id, document_id, content, embedding, position, doc_type, title, section, tags, created_at"

// SemanticSearch scores every chunk of the tenant by cosine similarity to the
// query vector and returns the top limit, best first. Brute force over the
// tenant's vectors: the corpus per tenant is small and the scan is a single
// indexed read.
func (s *Store) SemanticSearch(ctx context.Context, tenantID string, vector []float32, limit int) ([]models.ScoredChunk, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM chunks WHERE tenant_id = ?
	`, chunkColumns), tenantID)
	if err != nil {
		return nil, &core.StoreError{Op: "semantic search", Err: err}
	}
	defer rows.Close()

	var scored []models.ScoredChunk
	for rows.Next() {
		chunk, blob, err := scanChunkRow(rows)
		if err != nil {
			return nil, &core.StoreError{Op: "semantic search", Err: err}
		}
		embedding, err := decodeVector(blob)
		if err != nil {
			return nil, &core.StoreError{Op: "semantic search", Err: err}
		}
		chunk.Embedding = embedding
		scored = append(scored, models.ScoredChunk{
			Chunk: chunk,
			Score: cosineSimilarity(vector, embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StoreError{Op: "semantic search", Err: err}
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// LexicalSearch runs a keyword query against the FTS5 index, constrained to
// the tenant, best match first. Edit tolerance is rendered as per-term prefix
// matching. When the index does not exist the call reports
// ErrIndexUnavailable so the retriever can degrade instead of failing.
func (s *Store) LexicalSearch(ctx context.Context, tenantID, query string, limit int) ([]models.ScoredChunk, error) {
	match := buildMatchExpression(query)
	if match == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT c.id, c.tenant_id, c.document_id, c.content, c.embedding, c.position,
		       c.doc_type, c.title, c.section, c.tags, c.created_at,
		       -bm25(chunks_fts) AS score
		FROM chunks_fts
		JOIN chunks c ON c.id = chunks_fts.rowid
		WHERE chunks_fts MATCH ? AND c.tenant_id = ?
		ORDER BY score DESC
		LIMIT %d
	`, limit), match, tenantID)
	if err != nil {
		if isMissingIndexErr(err) {
			return nil, fmt.Errorf("lexical index not built: %w", core.ErrIndexUnavailable)
		}
		return nil, &core.StoreError{Op: "lexical search", Err: err}
	}
	defer rows.Close()

	var scored []models.ScoredChunk
	for rows.Next() {
		var (
			chunk   models.Chunk
			blob    []byte
			docType string
			tags    string
			score   float64
		)
		err := rows.Scan(&chunk.ID, &chunk.TenantID, &chunk.DocumentID, &chunk.Content, &blob,
			&chunk.Position, &docType, &chunk.Title, &chunk.Section, &tags, &chunk.CreatedAt, &score)
		if err != nil {
			return nil, &core.StoreError{Op: "lexical search", Err: err}
		}
		chunk.DocType = models.DocumentType(docType)
		chunk.Tags = decodeTags(tags)
		embedding, err := decodeVector(blob)
		if err != nil {
			return nil, &core.StoreError{Op: "lexical search", Err: err}
		}
		chunk.Embedding = embedding
		scored = append(scored, models.ScoredChunk{Chunk: chunk, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StoreError{Op: "lexical search", Err: err}
	}
	return scored, nil
}

// buildMatchExpression turns a free-form query into an FTS5 MATCH expression:
// each term becomes a quoted prefix match, OR-joined, so near-miss spellings
// that share a prefix still hit.
func buildMatchExpression(query string) string {
	terms := strings.Fields(query)
	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.Trim(term, `"'`)
		if term == "" {
			continue
		}
		term = strings.ReplaceAll(term, `"`, `""`)
		parts = append(parts, fmt.Sprintf(`"%s"*`, term))
	}
	return strings.Join(parts, " OR ")
}

// isMissingIndexErr reports whether err means the FTS table or module is absent
func isMissingIndexErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "no such table: chunks_fts") ||
		strings.Contains(msg, "no such module: fts5")
}
