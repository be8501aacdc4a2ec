// Package staging implements C7: building a complete wiki into a shadow
// directory and atomically rotating it into place, so the live wiki never
// observably contains a mix of old and new pages.
package staging

import (
	"os"
	"path/filepath"

	"wikigen/internal/generate"
	"wikigen/internal/wikiconfig"
	"wikigen/internal/wikierr"
	"wikigen/internal/wikigraph"
	"wikigen/internal/wikilog"
	"wikigen/internal/wikistore"
)

// Options configures one Commit call.
type Options struct {
	RepoRoot string
	Config   *wikiconfig.Config
	Logger   *wikilog.Logger

	// GeneratedAt stamps every sidecar row written this build. Commit never
	// calls time.Now() itself (workflow scripts and orchestrator tests both
	// need a deterministic clock), so the caller supplies it.
	GeneratedAt int64
}

// Commit builds pages and graph into the configured staging directory, then
// atomically swaps it in as the live wiki. On any failure before the swap,
// the staging directory is removed and the live wiki is left untouched. A
// failure during the swap itself restores the previous live wiki from its
// backup before returning.
func Commit(opts Options, pages []generate.Page, graph *wikigraph.Graph) error {
	lock, err := AcquireLock(opts.RepoRoot)
	if err != nil {
		return wikierr.Wrap(wikierr.CommitFailure, "acquiring build lock", err)
	}
	defer lock.Release()

	stagingPath := filepath.Join(opts.RepoRoot, opts.Config.StagingDir)
	livePath := opts.resolvedWikiDir()

	if err := prepareStagingDir(stagingPath); err != nil {
		return err
	}

	if err := writePages(stagingPath, pages); err != nil {
		os.RemoveAll(stagingPath)
		return err
	}

	if graph != nil {
		if err := graph.Persist(filepath.Join(stagingPath, "graph")); err != nil {
			os.RemoveAll(stagingPath)
			return err
		}
	}

	if err := writeSidecars(stagingPath, pages, opts.GeneratedAt, opts.Logger); err != nil {
		os.RemoveAll(stagingPath)
		return err
	}

	if err := swap(stagingPath, livePath, opts.Logger); err != nil {
		return err
	}

	return nil
}

func (o Options) resolvedWikiDir() string {
	if filepath.IsAbs(o.Config.WikiDir) {
		return o.Config.WikiDir
	}
	return filepath.Join(o.RepoRoot, o.Config.WikiDir)
}

// prepareStagingDir removes any leftover directory from a previously failed
// build (the spec's "staging directory removed on retry" guarantee) and
// creates the wiki/graph/meta layout fresh.
func prepareStagingDir(stagingPath string) error {
	if err := os.RemoveAll(stagingPath); err != nil {
		return wikierr.Wrap(wikierr.CommitFailure, "clearing stale staging directory", err)
	}
	for _, sub := range []string{"wiki", "graph", "meta"} {
		if err := os.MkdirAll(filepath.Join(stagingPath, sub), 0o755); err != nil {
			return wikierr.Wrap(wikierr.CommitFailure, "creating staging directory", err)
		}
	}
	return nil
}

func writePages(stagingPath string, pages []generate.Page) error {
	for _, p := range pages {
		full := filepath.Join(stagingPath, "wiki", filepath.FromSlash(p.Path))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return wikierr.Wrap(wikierr.CommitFailure, "creating page directory for "+p.Path, err)
		}
		if err := os.WriteFile(full, []byte(p.Content), 0o644); err != nil {
			return wikierr.Wrap(wikierr.CommitFailure, "writing page "+p.Path, err)
		}
	}
	return nil
}

func writeSidecars(stagingPath string, pages []generate.Page, generatedAt int64, logger *wikilog.Logger) error {
	db, err := wikistore.Open(stagingPath, logger)
	if err != nil {
		return wikierr.Wrap(wikierr.CommitFailure, "opening staged sidecar database", err)
	}
	defer db.Close()

	repo := wikistore.NewSidecarRepository(db)
	for _, p := range pages {
		if p.SourceHash == "" {
			continue
		}
		s := wikistore.Sidecar{
			PageType:    string(p.Type),
			Target:      p.Target,
			SourceHash:  p.SourceHash,
			GeneratedAt: generatedAt,
		}
		if err := repo.Put(s); err != nil {
			return wikierr.Wrap(wikierr.CommitFailure, "writing sidecar for "+p.Path, err)
		}
	}
	return nil
}

// swap performs the rename-backup-rename-cleanup sequence. If the live wiki
// does not yet exist (first build), it skips straight to the final rename.
func swap(stagingPath, livePath string, logger *wikilog.Logger) error {
	backupPath := livePath + ".backup"
	os.RemoveAll(backupPath)

	liveExists := dirExists(livePath)
	if liveExists {
		if err := os.Rename(livePath, backupPath); err != nil {
			os.RemoveAll(stagingPath)
			return wikierr.Wrap(wikierr.CommitFailure, "backing up live wiki", err)
		}
	}

	if err := os.Rename(stagingPath, livePath); err != nil {
		if liveExists {
			if rbErr := os.Rename(backupPath, livePath); rbErr != nil && logger != nil {
				logger.Error("failed to restore live wiki after failed swap", map[string]interface{}{"error": rbErr.Error()})
			}
		}
		return wikierr.Wrap(wikierr.CommitFailure, "swapping staged wiki into place", err)
	}

	if liveExists {
		archiveAndRemove(backupPath, logger)
	}
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
