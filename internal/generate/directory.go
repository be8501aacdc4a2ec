package generate

import (
	"context"
	"sort"
	"strings"

	"wikigen/internal/notes"
	"wikigen/internal/signature"
)

// DirectFile is one direct child file of a directory, reduced to what the
// directory page's Files table and prompt need.
type DirectFile struct {
	Path    string
	Purpose string
	Hash    string
}

// ChildDirectory is one direct child directory, already generated — its
// summary feeds both the parent's prompt and its signature.
type ChildDirectory struct {
	Path    string
	Summary DirectorySummary
}

// DirectoryInput is everything the directory-page generator needs,
// assembled by the orchestrator's depth-first phase once every direct
// child's summary is available.
type DirectoryInput struct {
	Path             string
	DirectFiles      []DirectFile
	ChildDirectories []ChildDirectory
	Notes            []notes.Note
}

// Directory generates the directory page for in. The caller is responsible
// for calling this only after every direct child directory has already been
// processed, per the depth-first ordering rule.
func Directory(ctx context.Context, deps Deps, in DirectoryInput) (Page, DirectorySummary, error) {
	if deps.Notes != nil && in.Notes == nil {
		dirNotes, err := deps.Notes.NotesFor(ctx, notes.ScopeDirectory, in.Path)
		if err != nil && deps.Logger != nil {
			deps.Logger.Warn("notes lookup failed for directory, continuing without notes", map[string]interface{}{"path": in.Path, "error": err.Error()})
		}
		in.Notes = dirNotes
	}

	prompt := buildDirectoryPrompt(in)
	summary, body, err := generateDirectorySummary(ctx, deps.TextGen, prompt, directorySystemPrompt, in.Path, deps.Report)
	if err != nil {
		return Page{}, DirectorySummary{}, err
	}
	if len(summary.Contains) == 0 {
		summary.Contains = directChildNames(in)
	}

	content := strings.TrimRight(body, "\n") + "\n"
	return Page{
		Content:    content,
		Type:       PageDirectory,
		Path:       PagePath(PageDirectory, in.Path),
		Target:     in.Path,
		WordCount:  wordCount(content),
		SourceHash: signature.Directory(fileHashesOf(in.DirectFiles), childSummariesOf(in.ChildDirectories)),
	}, summary, nil
}

func directChildNames(in DirectoryInput) []string {
	names := make([]string, 0, len(in.DirectFiles)+len(in.ChildDirectories))
	for _, f := range in.DirectFiles {
		names = append(names, f.Path)
	}
	for _, c := range in.ChildDirectories {
		names = append(names, c.Path)
	}
	sort.Strings(names)
	return names
}

func fileHashesOf(files []DirectFile) map[string]string {
	out := make(map[string]string, len(files))
	for _, f := range files {
		out[f.Path] = f.Hash
	}
	return out
}

func childSummariesOf(children []ChildDirectory) []signature.ChildSummary {
	out := make([]signature.ChildSummary, 0, len(children))
	for _, c := range children {
		out = append(out, signature.ChildSummary{Path: c.Path, Purpose: c.Summary.Purpose})
	}
	return out
}
