// ABOUTME: SQLite schema for tenant-scoped documents and chunks
// ABOUTME: Chunk metadata is denormalized from the parent document at ingestion time
package sqlite

// Schema contains the SQL statements for base table initialization
const Schema = `
-- Documents: whole ingested artifacts, immutable once written
CREATE TABLE IF NOT EXISTS documents (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    doc_type TEXT NOT NULL DEFAULT 'other',
    content TEXT NOT NULL DEFAULT '',
    chunk_count INTEGER NOT NULL DEFAULT 0,
    tags TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Chunks: retrievable units, exclusively owned by their document
CREATE TABLE IF NOT EXISTS chunks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    tenant_id TEXT NOT NULL,
    document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
    content TEXT NOT NULL,
    embedding BLOB NOT NULL,
    position INTEGER NOT NULL,
    doc_type TEXT NOT NULL DEFAULT 'other',
    title TEXT NOT NULL DEFAULT '',
    section TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_documents_tenant ON documents(tenant_id, created_at);
CREATE INDEX IF NOT EXISTS idx_chunks_tenant ON chunks(tenant_id);
CREATE INDEX IF NOT EXISTS idx_chunks_document ON chunks(tenant_id, document_id);
`

// SearchIndexSchema creates the FTS5 lexical index over chunk content.
// Kept separate from Schema: when the driver lacks FTS5 the base tables still
// initialize and lexical search reports the index as unavailable.
const SearchIndexSchema = `
CREATE VIRTUAL TABLE IF NOT EXISTS chunks_fts USING fts5(
    content,
    content='chunks',
    content_rowid='id'
);

CREATE TRIGGER IF NOT EXISTS chunks_fts_insert AFTER INSERT ON chunks BEGIN
    INSERT INTO chunks_fts(rowid, content) VALUES (new.id, new.content);
END;

CREATE TRIGGER IF NOT EXISTS chunks_fts_delete AFTER DELETE ON chunks BEGIN
    INSERT INTO chunks_fts(chunks_fts, rowid, content) VALUES ('delete', old.id, old.content);
END;

-- Backfill from the content table so chunks written while the index was
-- absent (or dropped for a rebuild) become searchable. No-op on a fresh table.
INSERT INTO chunks_fts(chunks_fts) VALUES ('rebuild');
`
