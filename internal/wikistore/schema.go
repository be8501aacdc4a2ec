package wikistore

import "database/sql"

const currentSchemaVersion = 1

func (db *DB) initializeSchema() error {
	return db.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER NOT NULL
			)
		`); err != nil {
			return err
		}
		if _, err := tx.Exec(`INSERT INTO schema_version (version) VALUES (?)`, currentSchemaVersion); err != nil {
			return err
		}
		_, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS page_sidecars (
				page_type    TEXT NOT NULL,
				target       TEXT NOT NULL,
				source_hash  TEXT NOT NULL,
				generated_at INTEGER NOT NULL,
				PRIMARY KEY (page_type, target)
			)
		`)
		return err
	})
}
