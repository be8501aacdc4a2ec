package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"wikigen/internal/notes"
	"wikigen/internal/wikiconfig"
	"wikigen/internal/wikilog"
	"wikigen/internal/wikistore"
)

// stubGenerator always returns the same well-formed frontmatter-bearing
// response, regardless of prompt, so a build exercises the full pipeline
// without a real model backend.
type stubGenerator struct {
	calls int
}

const stubResponse = `---
purpose: Does a thing.
layer: domain
key_abstractions:
  - Thing
internal_deps: []
external_deps: []
---
## Purpose

Does a thing.

## Public API

- Do() error
`

func (g *stubGenerator) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	g.calls++
	return stubResponse, nil
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestOptions(t *testing.T, repoRoot string, gen *stubGenerator) Options {
	cfg := wikiconfig.DefaultConfig()
	cfg.RepoRoot = repoRoot
	cfg.PatternsFile = "" // falls back to patterns.DefaultTable()

	logger := wikilog.NewLogger(wikilog.Config{Format: wikilog.HumanFormat, Level: wikilog.ErrorLevel})

	db, err := wikistore.Open(filepath.Join(repoRoot, cfg.WikiDir), logger)
	if err != nil {
		t.Fatalf("open sidecar store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return Options{
		RepoRoot: repoRoot,
		RepoName: "testrepo",
		Config:   cfg,
		TextGen:  gen,
		Notes:    notes.None{},
		Store:    wikistore.NewSidecarRepository(db),
		Logger:   logger,
	}
}

func TestBuild_GeneratesFileDirectoryAndArchitecturePages(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pkg/widget.go", "package pkg\n\ntype Widget struct{}\n\nfunc (w *Widget) Do() error { return nil }\n")
	writeFile(t, root, "pkg/helper.go", "package pkg\n\nfunc helper() int { return 1 }\n")
	writeFile(t, root, "README.md", "# testrepo\n")

	gen := &stubGenerator{}
	opts := newTestOptions(t, root, gen)

	result, err := Build(context.Background(), opts, 1000)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var sawFile, sawDir, sawArch, sawRoot, sawHealth bool
	for _, p := range result.Pages {
		switch p.Type {
		case "file":
			sawFile = true
		case "directory":
			sawDir = true
		case "architecture":
			sawArch = true
		case "root":
			sawRoot = true
		case "code-health":
			sawHealth = true
		}
	}
	if !sawFile {
		t.Error("expected at least one file page")
	}
	if !sawDir {
		t.Error("expected at least one directory page")
	}
	if !sawArch || !sawRoot || !sawHealth {
		t.Errorf("expected architecture, root, and code-health pages; got arch=%v root=%v health=%v", sawArch, sawRoot, sawHealth)
	}

	liveWiki := filepath.Join(root, opts.Config.WikiDir, "wiki")
	if _, err := os.Stat(liveWiki); err != nil {
		t.Fatalf("expected committed wiki dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, opts.Config.StagingDir)); err == nil {
		t.Error("staging directory should not survive a successful commit")
	}
}

func TestBuild_SecondRunSkipsUnchangedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pkg/widget.go", "package pkg\n\ntype Widget struct{}\n")

	gen := &stubGenerator{}
	opts := newTestOptions(t, root, gen)

	if _, err := Build(context.Background(), opts, 1000); err != nil {
		t.Fatalf("first Build: %v", err)
	}
	firstCalls := gen.calls

	// Re-open the store against the now-committed wiki dir for the second
	// build, exactly as a second CLI invocation would.
	opts2 := newTestOptions(t, root, gen)
	result, err := Build(context.Background(), opts2, 2000)
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}

	if result.Unchanged == 0 {
		t.Error("expected the second build to carry at least one page forward unchanged")
	}
	if gen.calls > firstCalls {
		t.Errorf("expected no new generator calls for unchanged files, got %d additional calls", gen.calls-firstCalls)
	}

	// A third build must still find its sidecars: a carried-forward page
	// that failed to persist its signature on the second build would force
	// regeneration here even though nothing changed.
	opts3 := newTestOptions(t, root, gen)
	if _, err := Build(context.Background(), opts3, 3000); err != nil {
		t.Fatalf("third Build: %v", err)
	}
	if gen.calls > firstCalls {
		t.Errorf("expected the third build to still skip unchanged files, got %d additional calls since the first build", gen.calls-firstCalls)
	}
}

func TestBuild_RegeneratesAfterFileEdit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pkg/widget.go", "package pkg\n\ntype Widget struct{}\n")

	gen := &stubGenerator{}
	opts := newTestOptions(t, root, gen)
	if _, err := Build(context.Background(), opts, 1000); err != nil {
		t.Fatalf("first Build: %v", err)
	}

	writeFile(t, root, "pkg/widget.go", "package pkg\n\ntype Widget struct{ Name string }\n")

	opts2 := newTestOptions(t, root, gen)
	result, err := Build(context.Background(), opts2, 2000)
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	if result.Unchanged == len(result.Pages) {
		t.Error("expected the edited file's page to be regenerated, not every page carried forward")
	}
}
