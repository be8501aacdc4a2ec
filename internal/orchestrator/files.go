package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/semaphore"

	"wikigen/internal/generate"
	"wikigen/internal/notes"
	"wikigen/internal/parsing"
	"wikigen/internal/signature"
	"wikigen/internal/wikierr"
	"wikigen/internal/wikistore"
)

// processFiles runs the Files phase: for every eligible file, compute its
// signature, decide skip-vs-regenerate against the stored sidecar, and
// either carry the previous page forward unchanged or enqueue a generator
// task. Generator tasks run up to the configured parallelism limit; map
// writes are serialized by a mutex since different goroutines touch
// different keys of the same Go map concurrently.
func (b *builder) processFiles(ctx context.Context) {
	var paths []string
	for p, fp := range b.files {
		if fp.hasLang {
			paths = append(paths, p)
			continue
		}
		// Files in an unsupported language never get a page of their own,
		// but the Directories phase still needs a stable hash for them to
		// fold into its parent directory's signature.
		b.hashIneligibleFile(p, fp)
	}
	sort.Strings(paths)

	limit := int64(b.opts.parallelLimit())
	if limit < 1 {
		limit = 1
	}
	sem := semaphore.NewWeighted(limit)

	var mu sync.Mutex
	var wg sync.WaitGroup
	total := len(paths)

	for i, p := range paths {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		step := i + 1
		path := p
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			page, summary, hash, unchanged := b.processOneFile(ctx, path)

			mu.Lock()
			if page != nil {
				b.pages = append(b.pages, *page)
			}
			b.fileSummaries[path] = summary
			b.fileHashes[path] = hash
			if unchanged {
				b.unchanged++
			}
			mu.Unlock()

			b.emit(PhaseFiles, step, total, path)
		}()
	}
	wg.Wait()
}

func (b *builder) hashIneligibleFile(path string, fp *fileParse) {
	abs := filepath.Join(b.opts.RepoRoot, filepath.FromSlash(path))
	content, err := os.ReadFile(abs)
	if err != nil {
		return
	}
	b.fileHashes[path] = signature.FileHash(content)
	b.fileSummaries[path] = generate.FileSummary{}
}

func (b *builder) processOneFile(ctx context.Context, path string) (*generate.Page, generate.FileSummary, string, bool) {
	fp := b.files[path]
	hash := signature.FileHash(fp.content)

	var fileNotes []notes.Note
	if b.opts.Notes != nil {
		fileNotes, _ = b.opts.Notes.NotesFor(ctx, notes.ScopeFile, path)
	}
	currentSig := signature.File(fp.content, fileNotes)

	var stored wikistore.Sidecar
	var hasStored bool
	if b.opts.Store != nil {
		var err error
		stored, hasStored, err = b.opts.Store.Get("file", path)
		if err != nil {
			b.report.Add(path, wikierr.Wrap(wikierr.ConfigError, "reading stored page signature", err))
		}
	}

	// A skipped file carries its page forward unchanged but contributes an
	// empty FileSummary to the Directories phase: the sidecar only stores
	// (source_hash, generated_at), not the parsed purpose/layer, so a
	// skipped file's row in its parent directory's table has an empty
	// DirectFile.Purpose.
	decision := signature.Decide(stored.SourceHash, stored.GeneratedAt, hasStored, currentSig, fileNotes)
	if decision == signature.Skip {
		if page := b.loadCarriedPage(generate.PageFile, path); page != nil {
			// The sidecar row must be rewritten every build, even when the
			// page itself is untouched: staging.Commit only persists rows
			// for the pages in this build's list, so a carried page with no
			// SourceHash would silently lose its sidecar and force a
			// regeneration on the next build instead of another skip.
			page.SourceHash = currentSig
			return page, generate.FileSummary{}, hash, true
		}
	}

	var symbols []parsing.ParsedSymbol
	var refs []parsing.Reference
	if fp.result != nil {
		symbols = fp.result.Symbols
		refs = fp.result.References
	}

	in := generate.FileInput{
		Path:           path,
		Language:       fp.language,
		Content:        fp.content,
		Symbols:        symbols,
		References:     refs,
		Graph:          b.graph,
		Synthesis:      b.synth,
		KnownFilePaths: b.knownFilePaths(),
	}

	page, summary, err := generate.File(ctx, b.deps(), in)
	if err != nil {
		b.report.Add(path, asWikiErr(err))
		if prev := b.loadCarriedPage(generate.PageFile, path); prev != nil {
			return prev, generate.FileSummary{}, hash, true
		}
		return nil, generate.FileSummary{}, hash, false
	}

	return &page, summary, hash, false
}

// asWikiErr recovers the stable error code from a generator failure,
// falling back to ConfigError for anything that did not already come
// through wikierr (generators are documented to only ever return a
// *wikierr.Error, but Report.Add requires one).
func asWikiErr(err error) *wikierr.Error {
	if we, ok := err.(*wikierr.Error); ok {
		return we
	}
	return wikierr.Wrap(wikierr.ConfigError, "generator failed", err)
}

func (b *builder) knownFilePaths() map[string]bool {
	out := make(map[string]bool, len(b.files))
	for p := range b.files {
		out[p] = true
	}
	return out
}

// loadCarriedPage reads a previously committed page's bytes from the live
// wiki so an unchanged page can be carried forward without calling the text
// generator again.
func (b *builder) loadCarriedPage(pageType generate.PageType, target string) *generate.Page {
	rel := generate.PagePath(pageType, target)
	full := filepath.Join(b.liveWikiDir(), "wiki", rel)
	data, err := os.ReadFile(full)
	if err != nil {
		return nil
	}
	return &generate.Page{Content: string(data), Type: pageType, Path: rel, Target: target}
}
