// Package cache implements a content-addressed store for analysis results:
// the key is the SHA-256 of a shader's source text plus its input-prop
// signature, the value is the diagnostic (if any) and the gathered const
// table the last run over that exact input produced. Grounded on the
// pack's SQLite-backed stores (internal/board.SQLiteBoard): WAL mode, a
// single writer connection, idempotent schema creation.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/shaderkit/shaderc/internal/diagnostics"
	"github.com/shaderkit/shaderc/internal/shader/ast"
)

const schema = `
CREATE TABLE IF NOT EXISTS analysis (
	key        TEXT PRIMARY KEY,
	diag_json  TEXT,
	const_json TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Key identifies one (source, input props) pair.
type Key string

// NewKey hashes src and the input-prop signature into a Key. sig should be
// a stable rendering of the caller's []analyse.PropDef (name:type pairs,
// order-sensitive).
func NewKey(src, sig string) Key {
	h := sha256.New()
	h.Write([]byte(src))
	h.Write([]byte{0})
	h.Write([]byte(sig))
	return Key(hex.EncodeToString(h.Sum(nil)))
}

// Entry is one cached analysis result. Diag is nil when analysis succeeded.
type Entry struct {
	Diag  *diagnostics.Error
	Const []ast.Value
}

// Cache is a SQLite-backed content-addressed store, opened over a single
// connection since SQLite allows only one writer at a time.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at path and ensures its schema.
func Open(ctx context.Context, path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: create schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying connection.
func (c *Cache) Close() error { return c.db.Close() }

// Get returns the cached entry for key, and whether one was found.
func (c *Cache) Get(ctx context.Context, key Key) (Entry, bool, error) {
	var diagJSON sql.NullString
	var constJSON string
	err := c.db.QueryRowContext(ctx,
		"SELECT diag_json, const_json FROM analysis WHERE key = ?", string(key),
	).Scan(&diagJSON, &constJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("cache: get %s: %w", key, err)
	}

	var entry Entry
	if diagJSON.Valid {
		var d diagnostics.Error
		if err := json.Unmarshal([]byte(diagJSON.String), &d); err != nil {
			return Entry{}, false, fmt.Errorf("cache: decode diagnostic for %s: %w", key, err)
		}
		entry.Diag = &d
	}
	if err := json.Unmarshal([]byte(constJSON), &entry.Const); err != nil {
		return Entry{}, false, fmt.Errorf("cache: decode const table for %s: %w", key, err)
	}
	return entry, true, nil
}

// Put upserts entry under key.
func (c *Cache) Put(ctx context.Context, key Key, entry Entry) error {
	var diagJSON sql.NullString
	if entry.Diag != nil {
		b, err := json.Marshal(entry.Diag)
		if err != nil {
			return fmt.Errorf("cache: encode diagnostic for %s: %w", key, err)
		}
		diagJSON = sql.NullString{String: string(b), Valid: true}
	}
	constB, err := json.Marshal(entry.Const)
	if err != nil {
		return fmt.Errorf("cache: encode const table for %s: %w", key, err)
	}

	const q = `
		INSERT INTO analysis (key, diag_json, const_json)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			diag_json  = excluded.diag_json,
			const_json = excluded.const_json,
			created_at = CURRENT_TIMESTAMP`
	if _, err := c.db.ExecContext(ctx, q, string(key), diagJSON, string(constB)); err != nil {
		return fmt.Errorf("cache: put %s: %w", key, err)
	}
	return nil
}
