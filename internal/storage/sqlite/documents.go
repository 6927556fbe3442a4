// ABOUTME: Document and chunk persistence: transactional insert, list, delete, stats
// ABOUTME: Every statement carries a tenant predicate; all-tenants stats are explicit opt-in
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fikalabs/pantry/internal/core"
	"github.com/fikalabs/pantry/internal/models"
)

// Compile-time check that Store satisfies the core store contract
var _ core.Store = (*Store)(nil)

// InsertDocumentWithChunks writes a document and all of its chunks in one
// transaction. On any failure the transaction rolls back and nothing is
// visible: a document's chunk_count always matches its live chunks.
func (s *Store) InsertDocumentWithChunks(ctx context.Context, doc models.Document, chunks []models.Chunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &core.StoreError{Op: "insert document", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (id, tenant_id, title, doc_type, content, chunk_count, tags, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.TenantID, doc.Title, string(doc.Type), doc.Content, len(chunks), encodeTags(doc.Tags), doc.CreatedAt)
	if err != nil {
		return &core.StoreError{Op: "insert document", Err: err}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (tenant_id, document_id, content, embedding, position, doc_type, title, section, tags, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return &core.StoreError{Op: "insert chunks", Err: err}
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		_, err = stmt.ExecContext(ctx,
			chunk.TenantID, chunk.DocumentID, chunk.Content, encodeVector(chunk.Embedding),
			chunk.Position, string(chunk.DocType), chunk.Title, chunk.Section,
			encodeTags(chunk.Tags), chunk.CreatedAt)
		if err != nil {
			return &core.StoreError{Op: "insert chunks", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &core.StoreError{Op: "insert document", Err: err}
	}
	return nil
}

// ListDocuments returns a tenant's document summaries, most recent first
func (s *Store) ListDocuments(ctx context.Context, tenantID string) ([]models.DocumentSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tenant_id, title, doc_type, chunk_count, tags, created_at
		FROM documents
		WHERE tenant_id = ?
		ORDER BY created_at DESC, id DESC
	`, tenantID)
	if err != nil {
		return nil, &core.StoreError{Op: "list documents", Err: err}
	}
	defer rows.Close()

	var summaries []models.DocumentSummary
	for rows.Next() {
		var (
			summary models.DocumentSummary
			docType string
			tags    string
		)
		if err := rows.Scan(&summary.ID, &summary.TenantID, &summary.Title, &docType,
			&summary.ChunkCount, &tags, &summary.CreatedAt); err != nil {
			return nil, &core.StoreError{Op: "list documents", Err: err}
		}
		summary.Type = models.DocumentType(docType)
		summary.Tags = decodeTags(tags)
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StoreError{Op: "list documents", Err: err}
	}
	return summaries, nil
}

// DeleteDocument removes a document's chunks, then the document record.
// A document that does not exist for the tenant yields a zero result.
func (s *Store) DeleteDocument(ctx context.Context, tenantID, documentID string) (core.DeleteResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.DeleteResult{}, &core.StoreError{Op: "delete document", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM chunks WHERE tenant_id = ? AND document_id = ?`, tenantID, documentID)
	if err != nil {
		return core.DeleteResult{}, &core.StoreError{Op: "delete chunks", Err: err}
	}
	chunksDeleted, err := res.RowsAffected()
	if err != nil {
		return core.DeleteResult{}, &core.StoreError{Op: "delete chunks", Err: err}
	}

	res, err = tx.ExecContext(ctx,
		`DELETE FROM documents WHERE tenant_id = ? AND id = ?`, tenantID, documentID)
	if err != nil {
		return core.DeleteResult{}, &core.StoreError{Op: "delete document", Err: err}
	}
	docsDeleted, err := res.RowsAffected()
	if err != nil {
		return core.DeleteResult{}, &core.StoreError{Op: "delete document", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return core.DeleteResult{}, &core.StoreError{Op: "delete document", Err: err}
	}

	return core.DeleteResult{
		ChunksDeleted:   int(chunksDeleted),
		DocumentDeleted: docsDeleted > 0,
	}, nil
}

// CountChunks returns the number of live chunks for one document
func (s *Store) CountChunks(ctx context.Context, tenantID, documentID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chunks WHERE tenant_id = ? AND document_id = ?`,
		tenantID, documentID).Scan(&count)
	if err != nil {
		return 0, &core.StoreError{Op: "count chunks", Err: err}
	}
	return count, nil
}

// Stats aggregates document and chunk counts, grouped by document type
func (s *Store) Stats(ctx context.Context, filter core.StatsFilter) (core.Stats, error) {
	if filter.TenantID == "" && !filter.AllTenants {
		return core.Stats{}, &core.StoreError{
			Op:  "stats",
			Err: fmt.Errorf("tenant filter missing and all-tenants not requested"),
		}
	}

	where := "WHERE tenant_id = ?"
	args := []any{filter.TenantID}
	if filter.AllTenants {
		where = ""
		args = nil
	}

	stats := core.Stats{ByType: make(map[string]int)}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT doc_type, COUNT(*), COALESCE(SUM(chunk_count), 0)
		FROM documents %s
		GROUP BY doc_type
	`, where), args...)
	if err != nil {
		return core.Stats{}, &core.StoreError{Op: "stats", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var (
			docType   string
			docCount  int
			chunkSum  int
		)
		if err := rows.Scan(&docType, &docCount, &chunkSum); err != nil {
			return core.Stats{}, &core.StoreError{Op: "stats", Err: err}
		}
		stats.ByType[docType] = docCount
		stats.Documents += docCount
		stats.Chunks += chunkSum
	}
	if err := rows.Err(); err != nil {
		return core.Stats{}, &core.StoreError{Op: "stats", Err: err}
	}

	return stats, nil
}

// encodeTags stores tags as a comma-joined string; ingest rejects tags that
// contain commas, so the join is unambiguous
func encodeTags(tags []string) string {
	return strings.Join(tags, ",")
}

func decodeTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// scanChunkRow reads one chunk row in the column order used by the search queries
func scanChunkRow(rows *sql.Rows) (models.Chunk, []byte, error) {
	var (
		chunk     models.Chunk
		blob      []byte
		docType   string
		tags      string
		createdAt time.Time
	)
	err := rows.Scan(&chunk.ID, &chunk.TenantID, &chunk.DocumentID, &chunk.Content, &blob,
		&chunk.Position, &docType, &chunk.Title, &chunk.Section, &tags, &createdAt)
	if err != nil {
		return models.Chunk{}, nil, err
	}
	chunk.DocType = models.DocumentType(docType)
	chunk.Tags = decodeTags(tags)
	chunk.CreatedAt = createdAt
	return chunk, blob, nil
}
