// Package sqlite provides the SQLite-backed index store and query engine.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/libdoc"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// schemaVersion is the on-disk format this binary reads and writes.
const schemaVersion = 1

// DB represents a SQLite database connection.
//
// Writers (upserts, deletes, rebuilds) hold mu exclusively for the whole
// transaction; readers hold it shared, so a search never runs while a
// document's rows and postings are being replaced.
type DB struct {
	db   *sql.DB
	path string

	mu         sync.RWMutex
	generation atomic.Uint64

	// Now returns the current time. Overridable in tests.
	Now func() time.Time
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path, Now: time.Now}
}

// Open opens the database connection and creates the schema if needed.
// Any failure is reported as EUNAVAILABLE.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return unavailable(db.path, err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	// This also keeps ":memory:" databases on a single shared connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return unavailable(db.path, err)
	}

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	// WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return unavailable(db.path, fmt.Errorf("%s: %w", pragma, err))
		}
	}

	db.db = conn

	if err := db.migrate(); err != nil {
		conn.Close()
		db.db = nil
		if libdoc.ErrorCode(err) == libdoc.EUNAVAILABLE {
			return err
		}
		return unavailable(db.path, err)
	}

	return nil
}

func unavailable(path string, err error) error {
	return libdoc.Errorf(libdoc.EUNAVAILABLE, "cannot open index %s: %v", path, err)
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// Generation returns a counter that changes after every committed write.
func (db *DB) Generation() uint64 {
	return db.generation.Load()
}

// errUnchanged makes update roll back without reporting an error.
var errUnchanged = errors.New("unchanged")

// update runs fn in a transaction while holding the write lock. The
// generation is bumped only when the transaction commits.
func (db *DB) update(ctx context.Context, fn func(tx *sql.Tx) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); errors.Is(err, errUnchanged) {
		return nil
	} else if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	db.generation.Add(1)
	return nil
}

// view holds the read lock while fn runs.
func (db *DB) view(fn func() error) error {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return fn()
}

func (db *DB) now() string {
	return db.Now().UTC().Format(time.RFC3339)
}

// migrate creates the schema, refusing databases written by a newer binary.
func (db *DB) migrate() error {
	if _, err := db.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var version sql.NullInt64
	if err := db.db.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version.Int64 > schemaVersion {
		return libdoc.Errorf(libdoc.EUNAVAILABLE,
			"index %s has schema version %d, this build supports up to %d", db.path, version.Int64, schemaVersion)
	}

	if _, err := db.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if !version.Valid {
		if _, err := db.db.Exec(`INSERT INTO schema_version (version) VALUES (?)`, schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
	}
	return nil
}

const schema = `
	CREATE TABLE IF NOT EXISTS libraries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		library_id INTEGER NOT NULL REFERENCES libraries(id) ON DELETE CASCADE,
		path TEXT NOT NULL,
		parent_path TEXT NOT NULL,
		chunk_index INTEGER NOT NULL DEFAULT 0,
		chunk_count INTEGER NOT NULL DEFAULT 1,
		title TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL DEFAULT '',
		content_hash TEXT NOT NULL DEFAULT '',
		char_offset INTEGER NOT NULL DEFAULT 0,
		start_line INTEGER NOT NULL DEFAULT 1,
		title_len INTEGER NOT NULL DEFAULT 0,
		body_len INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE (library_id, path)
	);

	CREATE INDEX IF NOT EXISTS idx_documents_parent ON documents(library_id, parent_path);
	CREATE INDEX IF NOT EXISTS idx_documents_title ON documents(library_id, title);

	CREATE TABLE IF NOT EXISTS postings (
		term TEXT NOT NULL,
		field INTEGER NOT NULL,
		doc_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		freq INTEGER NOT NULL,
		positions BLOB NOT NULL,
		PRIMARY KEY (term, field, doc_id)
	) WITHOUT ROWID;

	CREATE INDEX IF NOT EXISTS idx_postings_doc_id ON postings(doc_id);

	CREATE TABLE IF NOT EXISTS term_stats (
		term TEXT NOT NULL,
		field INTEGER NOT NULL,
		df INTEGER NOT NULL,
		PRIMARY KEY (term, field)
	) WITHOUT ROWID;

	CREATE TABLE IF NOT EXISTS corpus_stats (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		doc_count INTEGER NOT NULL DEFAULT 0,
		title_len_sum INTEGER NOT NULL DEFAULT 0,
		body_len_sum INTEGER NOT NULL DEFAULT 0
	);

	INSERT OR IGNORE INTO corpus_stats (id) VALUES (1);
`
