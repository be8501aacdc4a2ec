// Package wikichange is an optional pre-discovery filter: given a repo root
// and, optionally, the file hashes a previous build observed, it reports
// which files plausibly changed so a caller can skip re-reading
// byte-identical files before signatures are even computed. It is not
// load-bearing for regeneration decisions — the signature layer remains the
// authority on whether a page is stale — this only avoids wasted parsing.
package wikichange

// ChangeType classifies how a file changed between two observations.
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeModified ChangeType = "modified"
	ChangeDeleted  ChangeType = "deleted"
	ChangeRenamed  ChangeType = "renamed"
)

// ChangedFile is one file the detector believes needs re-parsing.
type ChangedFile struct {
	Path       string
	OldPath    string // set only for ChangeRenamed
	ChangeType ChangeType
	Hash       string // new content hash; empty for ChangeDeleted
}

// Config controls which files the detector considers eligible.
type Config struct {
	Excludes   []string // filepath.Match globs or directory prefixes
	IncludeTests bool   // whether _test.go / *.spec.* style files count
}

// DefaultConfig excludes nothing extra and skips test files.
func DefaultConfig() Config {
	return Config{IncludeTests: false}
}
