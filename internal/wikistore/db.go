// Package wikistore holds the sqlite-backed page-sidecar store: one row per
// page recording the signature and timestamp a build used so the next run
// can decide whether to regenerate it without re-reading the live wiki tree.
package wikistore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"wikigen/internal/wikilog"
)

// DB wraps a sqlite connection opened at <wiki_dir>/meta/sidecars.db, with
// the same pragma set and transaction helper the rest of the engine expects.
type DB struct {
	conn   *sql.DB
	logger *wikilog.Logger
	path   string
}

// Open opens or creates the sidecar database under wikiDir/meta, running the
// schema migration on first use.
func Open(wikiDir string, logger *wikilog.Logger) (*DB, error) {
	metaDir := filepath.Join(wikiDir, "meta")
	if err := os.MkdirAll(metaDir, 0o755); err != nil {
		return nil, fmt.Errorf("create meta directory: %w", err)
	}

	dbPath := filepath.Join(metaDir, "sidecars.db")
	existed := fileExists(dbPath)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sidecar database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("set pragma %q: %w", p, err)
		}
	}

	db := &DB{conn: conn, logger: logger, path: dbPath}

	if !existed {
		if logger != nil {
			logger.Info("creating sidecar database", map[string]interface{}{"path": dbPath})
		}
		if err := db.initializeSchema(); err != nil {
			conn.Close()
			return nil, fmt.Errorf("initialize sidecar schema: %w", err)
		}
	}

	return db, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// WithTx runs fn inside a transaction, committing on success and rolling
// back (re-panicking) on error or panic.
func (db *DB) WithTx(fn func(*sql.Tx) error) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && db.logger != nil {
			db.logger.Error("rollback failed", map[string]interface{}{
				"error":          err.Error(),
				"rollback_error": rbErr.Error(),
			})
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
