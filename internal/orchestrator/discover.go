package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/semaphore"

	"wikigen/internal/parsing"
	"wikigen/internal/patterns"
	"wikigen/internal/wikierr"
	"wikigen/internal/wikipaths"
)

var discoverSkipDirs = map[string]bool{
	".git":              true,
	".wikigen":          true,
	".wikigen-building": true,
	"vendor":            true,
	"node_modules":      true,
	"bin":               true,
	"dist":              true,
	"out":               true,
	".cache":            true,
}

// discover walks RepoRoot, collecting every eligible file under
// MaxFileSizeKB and parsing it up to the configured parallelism limit.
// Per-file parse failures are recorded on the report and never abort the
// phase — the file still gets a fileParse entry with a nil result so its
// path remains eligible for a minimal file page.
func (b *builder) discover(ctx context.Context) error {
	var paths []string
	maxBytes := int64(b.opts.Config.MaxFileSizeKB) * 1024

	err := filepath.Walk(b.opts.RepoRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if discoverSkipDirs[filepath.Base(path)] {
				return filepath.SkipDir
			}
			return nil
		}
		if maxBytes > 0 && info.Size() > maxBytes {
			return nil
		}
		rel, relErr := wikipaths.Canonicalize(path, b.opts.RepoRoot)
		if relErr != nil {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return wikierr.Wrap(wikierr.ConfigError, "walking repository root", err)
	}
	sort.Strings(paths)

	table, err := loadPatternTable(b.opts)
	if err != nil {
		return err
	}
	extractor := parsing.NewExtractor(table)

	limit := int64(b.opts.parallelLimit())
	if limit < 1 {
		limit = 1
	}
	sem := semaphore.NewWeighted(limit)

	var mu sync.Mutex
	var wg sync.WaitGroup
	total := len(paths)
	for i, rel := range paths {
		lang, eligible := parsing.LanguageFromExtension(filepath.Ext(rel))
		fp := &fileParse{path: rel, language: lang, hasLang: eligible}

		mu.Lock()
		b.files[rel] = fp
		mu.Unlock()
		b.emit(PhaseDiscover, i+1, total, rel)

		if !eligible {
			// Still gets the fileParse entry above, for the minimal file
			// page path, but is never handed to the parser.
			continue
		}

		if err := sem.Acquire(ctx, 1); err != nil {
			return err
		}
		wg.Add(1)
		go func(fp *fileParse) {
			defer wg.Done()
			defer sem.Release(1)
			b.parseOne(ctx, extractor, fp)
		}(fp)
	}
	wg.Wait()
	return nil
}

func (b *builder) parseOne(ctx context.Context, extractor *parsing.Extractor, fp *fileParse) {
	absPath := filepath.Join(b.opts.RepoRoot, filepath.FromSlash(fp.path))
	content, err := os.ReadFile(absPath)
	if err != nil {
		b.report.Add(fp.path, wikierr.Wrap(wikierr.ParseError, "reading file", err))
		return
	}
	fp.content = content

	result := extractor.ExtractSource(ctx, fp.path, content, fp.language)
	fp.result = result
	if result != nil && result.Err != nil {
		b.report.Add(fp.path, wikierr.Wrap(wikierr.ParseError, "parsing file", result.Err))
	}
}

func loadPatternTable(opts Options) (*patterns.Table, error) {
	if opts.Config.PatternsFile == "" {
		return patterns.DefaultTable(), nil
	}
	path := opts.Config.PatternsFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(opts.RepoRoot, path)
	}
	if _, err := os.Stat(path); err != nil {
		return patterns.DefaultTable(), nil
	}
	table, err := patterns.Load(path)
	if err != nil {
		return nil, wikierr.Wrap(wikierr.ConfigError, "loading pattern declarations", err)
	}
	return table, nil
}
