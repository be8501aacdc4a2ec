package orchestrator

import (
	"context"
	"sort"

	"wikigen/internal/generate"
	"wikigen/internal/notes"
	"wikigen/internal/signature"
	"wikigen/internal/wikipaths"
	"wikigen/internal/wikistore"
)

// processDirectories runs the Directories phase: every directory containing
// at least one discovered file gets a page, deepest first, so a directory's
// ChildDirectories are always already-generated DirectorySummary values by
// the time its own page is built. Unlike Files, this phase is deliberately
// sequential — the depth-first dependency makes concurrent generation
// unsafe without per-level barriers that would give back most of the
// parallelism anyway.
func (b *builder) processDirectories(ctx context.Context) {
	dirs := b.directoriesByDepth()
	childDirs := make(map[string][]generate.ChildDirectory)

	total := len(dirs)
	for i, dir := range dirs {
		in := generate.DirectoryInput{
			Path:             dir,
			DirectFiles:      b.directFilesOf(dir),
			ChildDirectories: childDirs[dir],
		}

		summary := b.processOneDirectory(ctx, in)
		b.dirSummaries[dir] = summary

		if dir != "" {
			parent := wikipaths.Parent(dir)
			childDirs[parent] = append(childDirs[parent], generate.ChildDirectory{Path: dir, Summary: summary})
		}

		b.emit(PhaseDirectories, i+1, total, dir)
	}
}

func (b *builder) processOneDirectory(ctx context.Context, in generate.DirectoryInput) generate.DirectorySummary {
	var dirNotes []notes.Note
	if b.opts.Notes != nil {
		dirNotes, _ = b.opts.Notes.NotesFor(ctx, notes.ScopeDirectory, in.Path)
	}
	in.Notes = dirNotes

	currentSig := signature.Directory(fileHashMap(in.DirectFiles), childSummaries(in.ChildDirectories))

	var stored wikistore.Sidecar
	var hasStored bool
	if b.opts.Store != nil {
		var err error
		stored, hasStored, err = b.opts.Store.Get("directory", in.Path)
		if err != nil {
			b.report.Add(in.Path, asWikiErr(err))
		}
	}

	decision := signature.Decide(stored.SourceHash, stored.GeneratedAt, hasStored, currentSig, dirNotes)
	if decision == signature.Skip {
		if page := b.loadCarriedPage(generate.PageDirectory, in.Path); page != nil {
			// See the matching comment in files.go: a carried page needs its
			// SourceHash restamped so its sidecar row survives into the next
			// build's staging database.
			page.SourceHash = currentSig
			b.pages = append(b.pages, *page)
			b.unchanged++
			return generate.DirectorySummary{}
		}
	}

	page, summary, err := generate.Directory(ctx, b.deps(), in)
	if err != nil {
		b.report.Add(in.Path, asWikiErr(err))
		if prev := b.loadCarriedPage(generate.PageDirectory, in.Path); prev != nil {
			b.pages = append(b.pages, *prev)
		}
		return generate.DirectorySummary{}
	}

	b.pages = append(b.pages, page)
	return summary
}

func fileHashMap(files []generate.DirectFile) map[string]string {
	out := make(map[string]string, len(files))
	for _, f := range files {
		out[f.Path] = f.Hash
	}
	return out
}

func childSummaries(children []generate.ChildDirectory) []signature.ChildSummary {
	out := make([]signature.ChildSummary, 0, len(children))
	for _, c := range children {
		out = append(out, signature.ChildSummary{Path: c.Path, Purpose: c.Summary.Purpose})
	}
	return out
}

// directoriesByDepth lists every directory that contains at least one
// discovered file, directly or via a descendant, deepest first (ties
// broken lexically for a deterministic build). The repo root itself
// (path "") is always included last, once any file exists at all, since
// every file's ancestor chain terminates there.
func (b *builder) directoriesByDepth() []string {
	set := make(map[string]bool)
	for path := range b.files {
		dir := wikipaths.Parent(path)
		for {
			if set[dir] {
				break
			}
			set[dir] = true
			if dir == "" {
				break
			}
			dir = wikipaths.Parent(dir)
		}
	}

	dirs := make([]string, 0, len(set))
	for d := range set {
		dirs = append(dirs, d)
	}
	sort.Slice(dirs, func(i, j int) bool {
		di, dj := wikipaths.Depth(dirs[i]), wikipaths.Depth(dirs[j])
		if di != dj {
			return di > dj
		}
		return dirs[i] < dirs[j]
	})
	return dirs
}

func (b *builder) directFilesOf(dir string) []generate.DirectFile {
	var files []generate.DirectFile
	for path := range b.files {
		if wikipaths.Parent(path) != dir {
			continue
		}
		files = append(files, generate.DirectFile{
			Path:    path,
			Purpose: b.fileSummaries[path].Purpose,
			Hash:    b.fileHashes[path],
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}
