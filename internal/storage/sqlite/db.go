// ABOUTME: SQLite database connection and lifecycle management
// ABOUTME: Uses modernc.org/sqlite for pure-Go SQLite support
package sqlite

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store is the SQLite-backed document and chunk store. One Store is built at
// process start and passed into every component that needs it; the underlying
// sql.DB pools connections and is safe for concurrent use.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultDataDir returns the default data directory following the XDG spec
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".local/share/pantry"
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "pantry")
}

// DefaultDBPath returns the default database file path
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), "pantry.db")
}

// Open opens or creates a SQLite database at the given path
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// WAL mode for concurrent readers during ingest writes
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return newStore(conn, path)
}

// OpenInMemory creates an in-memory SQLite database (for testing)
func OpenInMemory() (*Store, error) {
	conn, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	// A single in-memory database must not be opened on multiple connections
	conn.SetMaxOpenConns(1)

	return newStore(conn, ":memory:")
}

func newStore(conn *sql.DB, path string) (*Store, error) {
	s := &Store{db: conn, path: path}

	if err := s.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	// The lexical index is best-effort: a driver built without FTS5 still
	// serves every other operation, and lexical search degrades to empty.
	if err := s.initSearchIndex(); err != nil {
		log.Printf("lexical search index unavailable: %v", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(Schema)
	return err
}

func (s *Store) initSearchIndex() error {
	_, err := s.db.Exec(SearchIndexSchema)
	return err
}

// DropSearchIndex removes the lexical index and its sync triggers. Writes keep
// working afterwards; lexical search reports the index as unavailable until it
// is rebuilt.
func (s *Store) DropSearchIndex() error {
	_, err := s.db.Exec(`
		DROP TRIGGER IF EXISTS chunks_fts_insert;
		DROP TRIGGER IF EXISTS chunks_fts_delete;
		DROP TABLE IF EXISTS chunks_fts;
	`)
	return err
}
