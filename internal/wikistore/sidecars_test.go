package wikistore

import (
	"os"
	"testing"
)

func TestSidecarRepository_PutAndGet(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "wikigen-sidecars-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	db, err := Open(tmpDir, nil)
	if err != nil {
		t.Fatalf("failed to open sidecar database: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := NewSidecarRepository(db)

	if _, ok, err := repo.Get("file", "internal/api/handler.go"); err != nil {
		t.Fatalf("Get on empty store returned error: %v", err)
	} else if ok {
		t.Fatal("expected ok=false for a sidecar that was never stored")
	}

	want := Sidecar{PageType: "file", Target: "internal/api/handler.go", SourceHash: "abc123", GeneratedAt: 100}
	if err := repo.Put(want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, err := repo.Get("file", "internal/api/handler.go")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true after Put")
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestSidecarRepository_PutUpserts(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "wikigen-sidecars-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	db, err := Open(tmpDir, nil)
	if err != nil {
		t.Fatalf("failed to open sidecar database: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := NewSidecarRepository(db)
	_ = repo.Put(Sidecar{PageType: "directory", Target: "internal/api", SourceHash: "v1", GeneratedAt: 1})
	_ = repo.Put(Sidecar{PageType: "directory", Target: "internal/api", SourceHash: "v2", GeneratedAt: 2})

	got, ok, err := repo.Get("directory", "internal/api")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if got.SourceHash != "v2" || got.GeneratedAt != 2 {
		t.Errorf("expected upserted values, got %+v", got)
	}
}

func TestSidecarRepository_All(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "wikigen-sidecars-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	db, err := Open(tmpDir, nil)
	if err != nil {
		t.Fatalf("failed to open sidecar database: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := NewSidecarRepository(db)
	_ = repo.Put(Sidecar{PageType: "file", Target: "a.go", SourceHash: "h1", GeneratedAt: 1})
	_ = repo.Put(Sidecar{PageType: "file", Target: "b.go", SourceHash: "h2", GeneratedAt: 2})

	all, err := repo.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 sidecars, got %d", len(all))
	}
	if all["file::a.go"].SourceHash != "h1" {
		t.Errorf("unexpected entry for file::a.go: %+v", all["file::a.go"])
	}
}
