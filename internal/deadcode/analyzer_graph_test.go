package deadcode

import (
	"testing"

	"wikigen/internal/parsing"
	"wikigen/internal/wikigraph"
)

func buildTestGraph(t *testing.T) *wikigraph.Graph {
	t.Helper()
	units := []wikigraph.FileUnit{
		{
			FilePath: "pkg/service.go",
			Symbols: []parsing.ParsedSymbol{
				{Name: "Handler", Kind: parsing.KindFunction, StartLine: 1, EndLine: 5},
				{Name: "unusedHelper", Kind: parsing.KindFunction, StartLine: 7, EndLine: 9},
			},
			References: []parsing.Reference{
				{Source: "pkg/service.go::Handler", Target: "Worker", Kind: parsing.RefCalls, Confidence: 0.9, Line: 3},
			},
		},
		{
			FilePath: "pkg/worker.go",
			Symbols: []parsing.ParsedSymbol{
				{Name: "Worker", Kind: parsing.KindFunction, StartLine: 1, EndLine: 4},
			},
		},
	}
	return wikigraph.Build(units, wikigraph.BuildOptions{})
}

func TestAnalyzer_FlagsZeroIncoming(t *testing.T) {
	g := buildTestGraph(t)
	a := NewAnalyzer(nil)
	result := a.Analyze(g, DefaultOptions())

	foundUnused := false
	for _, item := range result.DeadCode {
		if item.SymbolName == "unusedHelper" {
			foundUnused = true
			if item.Category != CategoryZeroRefs {
				t.Errorf("unusedHelper category = %q, want %q", item.Category, CategoryZeroRefs)
			}
		}
		if item.SymbolName == "Worker" {
			t.Error("Worker has an incoming call edge and must not be flagged dead")
		}
	}
	if !foundUnused {
		t.Error("expected unusedHelper to be flagged as dead code")
	}
}

func TestAnalyzer_EntryPointNeverFlagged(t *testing.T) {
	units := []wikigraph.FileUnit{
		{
			FilePath: "pkg/routes.go",
			Symbols: []parsing.ParsedSymbol{
				{Name: "ListUsers", Kind: parsing.KindFunction, StartLine: 1, EndLine: 3, IsEntryPoint: true},
			},
		},
	}
	g := wikigraph.Build(units, wikigraph.BuildOptions{})
	a := NewAnalyzer(nil)
	result := a.Analyze(g, DefaultOptions())

	for _, item := range result.DeadCode {
		if item.SymbolName == "ListUsers" {
			t.Error("entry points must never be flagged as dead code")
		}
	}
}
