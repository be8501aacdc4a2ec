package staging

import (
	"os"
	"path/filepath"
	"testing"

	"wikigen/internal/generate"
	"wikigen/internal/wikiconfig"
	"wikigen/internal/wikigraph"
	"wikigen/internal/wikilog"
)

func testOpts(repoRoot string) Options {
	cfg := wikiconfig.DefaultConfig()
	cfg.RepoRoot = repoRoot
	return Options{
		RepoRoot:    repoRoot,
		Config:      cfg,
		Logger:      wikilog.NewLogger(wikilog.Config{Format: wikilog.HumanFormat, Level: wikilog.ErrorLevel}),
		GeneratedAt: 1000,
	}
}

func samplePages(content string) []generate.Page {
	return []generate.Page{
		{Content: content, Type: generate.PageFile, Path: "files/widget.md", Target: "widget.go", SourceHash: "h1"},
	}
}

func TestCommit_FirstBuildHasNoLiveWikiYet(t *testing.T) {
	root := t.TempDir()
	graph := wikigraph.Build(nil, wikigraph.BuildOptions{})

	if err := Commit(testOpts(root), samplePages("first content"), graph); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	live := filepath.Join(root, wikiconfig.DefaultConfig().WikiDir)
	data, err := os.ReadFile(filepath.Join(live, "wiki", "files", "widget.md"))
	if err != nil {
		t.Fatalf("reading committed page: %v", err)
	}
	if string(data) != "first content" {
		t.Errorf("committed page content = %q, want %q", data, "first content")
	}

	if _, err := os.Stat(filepath.Join(root, wikiconfig.DefaultConfig().StagingDir)); err == nil {
		t.Error("staging directory should not survive a successful commit")
	}
	if _, err := os.Stat(live + ".backup"); err == nil {
		t.Error("backup directory should not survive a successful commit")
	}
}

func TestCommit_SecondBuildReplacesLiveWikiAtomically(t *testing.T) {
	root := t.TempDir()
	graph := wikigraph.Build(nil, wikigraph.BuildOptions{})

	if err := Commit(testOpts(root), samplePages("v1"), graph); err != nil {
		t.Fatalf("first Commit: %v", err)
	}
	if err := Commit(testOpts(root), samplePages("v2"), graph); err != nil {
		t.Fatalf("second Commit: %v", err)
	}

	live := filepath.Join(root, wikiconfig.DefaultConfig().WikiDir)
	data, err := os.ReadFile(filepath.Join(live, "wiki", "files", "widget.md"))
	if err != nil {
		t.Fatalf("reading committed page: %v", err)
	}
	if string(data) != "v2" {
		t.Errorf("committed page content = %q, want %q (old and new content must never coexist)", data, "v2")
	}

	if _, err := os.Stat(live + ".backup"); err == nil {
		t.Error("backup directory should have been archived and removed after a successful swap")
	}
}

func TestCommit_RemovesStaleStagingDirOnRetry(t *testing.T) {
	root := t.TempDir()
	cfg := wikiconfig.DefaultConfig()
	stagingPath := filepath.Join(root, cfg.StagingDir)

	// Simulate a staging directory left over from a previously crashed build.
	if err := os.MkdirAll(stagingPath, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(stagingPath, "garbage.txt"), []byte("leftover"), 0o644); err != nil {
		t.Fatal(err)
	}

	graph := wikigraph.Build(nil, wikigraph.BuildOptions{})
	if err := Commit(testOpts(root), samplePages("clean build"), graph); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if _, err := os.Stat(filepath.Join(stagingPath, "garbage.txt")); err == nil {
		t.Error("leftover staging content should not survive into the committed wiki")
	}
}

func TestAcquireLock_SecondAcquireFailsWhileFirstHeld(t *testing.T) {
	root := t.TempDir()

	lock, err := AcquireLock(root)
	if err != nil {
		t.Fatalf("first AcquireLock: %v", err)
	}
	defer lock.Release()

	if _, err := AcquireLock(root); err == nil {
		t.Error("expected a second AcquireLock to fail while the first lock is held")
	}
}

func TestAcquireLock_ReleasedLockCanBeReacquired(t *testing.T) {
	root := t.TempDir()

	lock, err := AcquireLock(root)
	if err != nil {
		t.Fatalf("AcquireLock: %v", err)
	}
	lock.Release()

	lock2, err := AcquireLock(root)
	if err != nil {
		t.Fatalf("AcquireLock after release: %v", err)
	}
	defer lock2.Release()
}
