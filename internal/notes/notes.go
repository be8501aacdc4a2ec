// Package notes defines the read-only NotesQuery capability the core
// consults when deciding whether a page is stale and when assembling a
// generator prompt. It is an abstract capability like textgen.Generator: the
// core never writes notes, only reads them.
package notes

import "context"

// Scope identifies what a note is attached to.
type Scope string

const (
	ScopeFile      Scope = "file"
	ScopeDirectory Scope = "directory"
	ScopeWorkflow  Scope = "workflow"
	ScopeGeneral   Scope = "general"
)

// Note is one annotation a human or another tool attached to a file,
// directory, workflow, or the repository in general.
type Note struct {
	Content   string
	Author    string // optional, may be empty
	UpdatedAt int64  // unix seconds
}

// Query is the capability the core depends on for note lookups. Results
// must come back newest-first by UpdatedAt and the query must be read-only
// from the core's perspective — no method here can mutate stored notes.
type Query interface {
	NotesFor(ctx context.Context, scope Scope, target string) ([]Note, error)
}

// None is a Query that always returns zero notes, for builds run without a
// notes backend configured.
type None struct{}

func (None) NotesFor(context.Context, Scope, string) ([]Note, error) { return nil, nil }
