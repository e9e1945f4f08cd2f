package lsp

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// IndexedSymbol is one workspace-visible symbol persisted in the index.
type IndexedSymbol struct {
	URI   string
	Name  string
	Kind  SymbolKind
	Start int
	End   int
}

// Index is the SQLite-backed workspace symbol store. The server rewrites a
// document's rows on every analysis, so queries always reflect the last
// published state. The store survives restarts when backed by a file under
// the workspace's .ucls directory.
type Index struct {
	mu sync.Mutex
	db *sql.DB
}

const indexSchema = `
CREATE TABLE IF NOT EXISTS symbols (
	uri   TEXT NOT NULL,
	name  TEXT NOT NULL,
	kind  INTEGER NOT NULL,
	start_offset INTEGER NOT NULL,
	end_offset   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS symbols_name ON symbols(name);
CREATE INDEX IF NOT EXISTS symbols_uri ON symbols(uri);
`

// OpenIndex opens (or creates) the symbol index at path. An empty path
// yields an in-memory index, used when the client sent no workspace root.
func OpenIndex(path string) (*Index, error) {
	dsn := ":memory:"
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating index directory: %w", err)
		}
		dsn = path
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening symbol index: %w", err)
	}
	// A single connection keeps the in-memory database alive and
	// serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(indexSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing symbol index: %w", err)
	}
	return &Index{db: db}, nil
}

// Update replaces every indexed symbol of the given document.
func (ix *Index) Update(uri string, syms []IndexedSymbol) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	tx, err := ix.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM symbols WHERE uri = ?`, uri); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO symbols (uri, name, kind, start_offset, end_offset) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, s := range syms {
		if _, err := stmt.Exec(uri, s.Name, int(s.Kind), s.Start, s.End); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Remove drops every symbol of a closed document.
func (ix *Index) Remove(uri string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	_, err := ix.db.Exec(`DELETE FROM symbols WHERE uri = ?`, uri)
	return err
}

// Query returns symbols whose name contains the query string, ordered by
// name then document. An empty query matches everything.
func (ix *Index) Query(query string) ([]IndexedSymbol, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	rows, err := ix.db.Query(
		`SELECT uri, name, kind, start_offset, end_offset FROM symbols
		 WHERE name LIKE '%' || ? || '%'
		 ORDER BY name, uri`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []IndexedSymbol
	for rows.Next() {
		var s IndexedSymbol
		var kind int
		if err := rows.Scan(&s.URI, &s.Name, &kind, &s.Start, &s.End); err != nil {
			return nil, err
		}
		s.Kind = SymbolKind(kind)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Close releases the underlying database.
func (ix *Index) Close() error {
	return ix.db.Close()
}
