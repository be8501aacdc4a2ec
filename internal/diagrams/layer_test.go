package diagrams

import (
	"strings"
	"testing"
)

func TestGenerateLayerDiagram(t *testing.T) {
	m := SynthesisMap{
		Layers: map[string]LayerSummary{
			"api":     {Purpose: "HTTP handlers", Directories: []string{"internal/api"}, Files: []string{"internal/api/handler.go"}},
			"storage": {Purpose: "persistence", Directories: []string{"internal/storage"}, Files: []string{"internal/storage/db.go"}},
		},
		KeyComponents: []string{"internal/api/handler.go", "internal/storage/db.go"},
		DependencyGraph: map[string][]string{
			"api": {"storage"},
		},
	}

	text := GenerateLayerDiagram(m)
	if text == "" {
		t.Fatal("expected non-empty diagram")
	}
	if !strings.HasPrefix(text, "graph TD") {
		t.Errorf("expected graph TD header, got %q", text)
	}
	if strings.Count(text, "subgraph") != 2 {
		t.Errorf("expected 2 subgraphs, got text: %q", text)
	}
	if strings.Count(text, "\n  end\n") != 2 {
		t.Errorf("expected 2 end lines, got text: %q", text)
	}
	if !Validate(text).Valid {
		t.Errorf("generated diagram failed validation: %v", Validate(text).Errors)
	}
}

func TestGenerateLayerDiagram_SkipsUnknownDependencyTargets(t *testing.T) {
	m := SynthesisMap{
		Layers: map[string]LayerSummary{
			"api": {Directories: []string{"internal/api"}},
		},
		DependencyGraph: map[string][]string{
			"api": {"ghost-layer"},
		},
	}
	text := GenerateLayerDiagram(m)
	if strings.Contains(text, "ghost") {
		t.Errorf("expected edge to unknown layer to be dropped, got %q", text)
	}
}

func TestGenerateLayerDiagram_CapsComponents(t *testing.T) {
	dirs := []string{"internal/api"}
	var key []string
	for i := 0; i < 10; i++ {
		key = append(key, "internal/api/file"+string(rune('a'+i))+".go")
	}
	m := SynthesisMap{
		Layers: map[string]LayerSummary{
			"api": {Directories: dirs},
		},
		KeyComponents: key,
	}
	text := GenerateLayerDiagram(m)
	count := strings.Count(text, "\n    api_")
	if count > maxComponentsPerLayer {
		t.Errorf("expected at most %d components, counted %d occurrences in %q", maxComponentsPerLayer, count, text)
	}
}
