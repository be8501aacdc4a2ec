package wikistore

import "database/sql"

// Sidecar is the stored (signature, generated_at) pair for one page, read
// at the start of a build and compared against the freshly computed
// signature to decide whether the page must be regenerated.
type Sidecar struct {
	PageType    string
	Target      string
	SourceHash  string
	GeneratedAt int64
}

// SidecarRepository is the page_sidecars table's CRUD surface.
type SidecarRepository struct {
	db *DB
}

// NewSidecarRepository wraps db for sidecar access.
func NewSidecarRepository(db *DB) *SidecarRepository {
	return &SidecarRepository{db: db}
}

// Get returns the stored sidecar for (pageType, target), or ok=false if no
// prior build produced one.
func (r *SidecarRepository) Get(pageType, target string) (Sidecar, bool, error) {
	row := r.db.conn.QueryRow(`
		SELECT page_type, target, source_hash, generated_at
		FROM page_sidecars WHERE page_type = ? AND target = ?
	`, pageType, target)

	var s Sidecar
	err := row.Scan(&s.PageType, &s.Target, &s.SourceHash, &s.GeneratedAt)
	if err == sql.ErrNoRows {
		return Sidecar{}, false, nil
	}
	if err != nil {
		return Sidecar{}, false, err
	}
	return s, true, nil
}

// All loads every stored sidecar, keyed by "pageType::target", for a build
// that wants to seed its in-memory lookup map in one query rather than one
// per page.
func (r *SidecarRepository) All() (map[string]Sidecar, error) {
	rows, err := r.db.conn.Query(`SELECT page_type, target, source_hash, generated_at FROM page_sidecars`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]Sidecar)
	for rows.Next() {
		var s Sidecar
		if err := rows.Scan(&s.PageType, &s.Target, &s.SourceHash, &s.GeneratedAt); err != nil {
			return nil, err
		}
		out[s.PageType+"::"+s.Target] = s
	}
	return out, rows.Err()
}

// Put upserts the sidecar for (pageType, target), called after a page is
// successfully generated and staged.
func (r *SidecarRepository) Put(s Sidecar) error {
	return r.db.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO page_sidecars (page_type, target, source_hash, generated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(page_type, target) DO UPDATE SET
				source_hash = excluded.source_hash,
				generated_at = excluded.generated_at
		`, s.PageType, s.Target, s.SourceHash, s.GeneratedAt)
		return err
	})
}
