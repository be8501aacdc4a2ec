package diagrams

import (
	"strings"
	"testing"
)

func TestGenerateFileDependencyDiagram(t *testing.T) {
	nodes := []FileNode{
		{Path: "internal/api/handler.go", Degree: 3},
		{Path: "internal/storage/db.go", Degree: 1},
		{Path: "internal/orphan/file.go", Degree: 0},
	}
	edges := []FileEdge{
		{From: "internal/api/handler.go", To: "internal/storage/db.go"},
		{From: "internal/api/handler.go", To: "internal/missing/file.go"},
	}

	text := GenerateFileDependencyDiagram(nodes, edges, 0)
	if text == "" {
		t.Fatal("expected non-empty diagram")
	}
	if !strings.HasPrefix(text, "graph LR") {
		t.Errorf("expected graph LR header, got %q", text)
	}
	if strings.Contains(text, "missing") {
		t.Error("expected edge to a node outside the kept set to be dropped")
	}
	if !Validate(text).Valid {
		t.Errorf("generated diagram failed validation: %v", Validate(text).Errors)
	}
}

func TestGenerateFileDependencyDiagram_TruncatesToMax(t *testing.T) {
	var nodes []FileNode
	for i := 0; i < 50; i++ {
		nodes = append(nodes, FileNode{Path: "internal/pkg/file" + string(rune('a'+i%26)) + ".go", Degree: 50 - i})
	}
	text := GenerateFileDependencyDiagram(nodes, nil, 5)
	if strings.Count(text, "[") > 5 {
		t.Errorf("expected at most 5 node lines, got %q", text)
	}
}

func TestGenerateFocusedDependencyDiagram(t *testing.T) {
	target := "internal/api/handler.go"
	neighbors := []FileEdge{
		{From: target, To: "internal/storage/db.go"},
		{From: "internal/caller/caller.go", To: target},
	}
	text := GenerateFocusedDependencyDiagram(target, neighbors)
	if text == "" {
		t.Fatal("expected non-empty diagram")
	}
	if !strings.Contains(text, SanitizeNodeID(target)) {
		t.Errorf("expected target node present, got %q", text)
	}
	if !Validate(text).Valid {
		t.Errorf("generated diagram failed validation: %v", Validate(text).Errors)
	}
}
