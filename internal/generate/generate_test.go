package generate

import (
	"context"
	"strings"
	"testing"

	"wikigen/internal/diagrams"
	"wikigen/internal/notes"
	"wikigen/internal/parsing"
	"wikigen/internal/textgen"
	"wikigen/internal/wikiconfig"
	"wikigen/internal/wikierr"
	"wikigen/internal/wikigraph"
)

type scriptedGenerator struct {
	responses []string
	calls     int
	err       error
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	if g.calls >= len(g.responses) {
		return g.responses[len(g.responses)-1], nil
	}
	resp := g.responses[g.calls]
	g.calls++
	return resp, nil
}

type staticNotes struct {
	notes []notes.Note
}

func (n staticNotes) NotesFor(context.Context, notes.Scope, string) ([]notes.Note, error) {
	return n.notes, nil
}

const validFileResponse = `---
purpose: Parses widgets
layer: domain
key_abstractions:
  - Widget
internal_deps: []
external_deps: []
---
## Purpose

Parses widgets from source text.

## Public API

- Parse(string) (Widget, error)

## Internal Details

Uses a hand-rolled scanner.

## Dependencies

None.

## Usage Examples

See tests.
`

func TestFile_ParsesFrontmatterOnFirstAttempt(t *testing.T) {
	deps := Deps{
		Config:  wikiconfig.DefaultConfig(),
		TextGen: &scriptedGenerator{responses: []string{validFileResponse}},
		Notes:   notes.None{},
		Report:  wikierr.NewReport(),
	}
	in := FileInput{
		Path:     "widgets/parse.go",
		Language: parsing.LangGo,
		Content:  []byte("package widgets\n"),
		Symbols:  []parsing.ParsedSymbol{{Name: "Parse", Kind: parsing.KindFunction}},
	}

	page, _, err := File(context.Background(), deps, in)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if !strings.Contains(page.Content, "Parses widgets from source text") {
		t.Errorf("expected body content preserved, got %q", page.Content)
	}
	if strings.Contains(page.Content, "purpose:") {
		t.Errorf("frontmatter block should have been stripped, got %q", page.Content)
	}
	if page.Path != "files/widgets--parse.go.md" {
		t.Errorf("unexpected path: %s", page.Path)
	}
	if page.SourceHash == "" {
		t.Error("expected a non-empty source hash")
	}
	if !deps.Report.Empty() {
		t.Errorf("expected no recorded failures, got %+v", deps.Report.Failures())
	}
}

func TestFile_RetriesOnceOnMalformedFrontmatterThenFallsBack(t *testing.T) {
	deps := Deps{
		Config:  wikiconfig.DefaultConfig(),
		TextGen: &scriptedGenerator{responses: []string{"no frontmatter here", "still no frontmatter"}},
		Notes:   notes.None{},
		Report:  wikierr.NewReport(),
	}
	in := FileInput{Path: "a.go", Language: parsing.LangGo, Content: []byte("package a\n")}

	page, _, err := File(context.Background(), deps, in)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if page.Content == "" {
		t.Error("expected fallback page content to still be produced")
	}
	failures := deps.Report.Failures()
	if len(failures) != 2 {
		t.Fatalf("expected 2 recorded yaml-parse failures, got %d: %+v", len(failures), failures)
	}
	for _, f := range failures {
		if f.Err.Code != wikierr.YamlParseFailure {
			t.Errorf("expected YamlParseFailure, got %s", f.Err.Code)
		}
	}
}

func TestFile_CoercesInvalidLayer(t *testing.T) {
	resp := strings.Replace(validFileResponse, "layer: domain", "layer: nonsense", 1)
	deps := Deps{
		Config:  wikiconfig.DefaultConfig(),
		TextGen: &scriptedGenerator{responses: []string{resp}},
		Notes:   notes.None{},
		Report:  wikierr.NewReport(),
	}
	in := FileInput{Path: "a.go", Language: parsing.LangGo, Content: []byte("package a\n")}

	if _, _, err := File(context.Background(), deps, in); err != nil {
		t.Fatalf("File: %v", err)
	}
	failures := deps.Report.Failures()
	if len(failures) != 1 || failures[0].Err.Code != wikierr.InvalidLayerValue {
		t.Fatalf("expected one InvalidLayerValue failure, got %+v", failures)
	}
}

func TestFile_TransportErrorPropagates(t *testing.T) {
	deps := Deps{
		Config:  wikiconfig.DefaultConfig(),
		TextGen: &scriptedGenerator{err: &textgen.TransportError{Cause: context.DeadlineExceeded}},
		Notes:   notes.None{},
		Report:  wikierr.NewReport(),
	}
	in := FileInput{Path: "a.go", Language: parsing.LangGo, Content: []byte("package a\n")}

	_, _, err := File(context.Background(), deps, in)
	if err == nil {
		t.Fatal("expected a transport error to propagate")
	}
	var werr *wikierr.Error
	if !asWikiErr(err, &werr) || werr.Code != wikierr.GeneratorTransportError {
		t.Errorf("expected GeneratorTransportError, got %v", err)
	}
}

func asWikiErr(err error, target **wikierr.Error) bool {
	we, ok := err.(*wikierr.Error)
	if !ok {
		return false
	}
	*target = we
	return true
}

const validDirResponse = `---
purpose: Widget parsing helpers
contains:
  - parse.go
role_in_system: Domain logic
---
Widgets live here.

## Subdirectories

None.

## Files

- parse.go

## Key Components

Parse

## Dependencies

None.
`

func TestDirectory_GeneratesSummaryAndSignature(t *testing.T) {
	deps := Deps{
		Config:  wikiconfig.DefaultConfig(),
		TextGen: &scriptedGenerator{responses: []string{validDirResponse}},
		Notes:   notes.None{},
		Report:  wikierr.NewReport(),
	}
	in := DirectoryInput{
		Path:        "widgets",
		DirectFiles: []DirectFile{{Path: "widgets/parse.go", Purpose: "parses widgets", Hash: "deadbeef"}},
	}

	page, summary, err := Directory(context.Background(), deps, in)
	if err != nil {
		t.Fatalf("Directory: %v", err)
	}
	if summary.Purpose != "Widget parsing helpers" {
		t.Errorf("unexpected purpose: %q", summary.Purpose)
	}
	if page.Path != "directories/widgets.md" {
		t.Errorf("unexpected path: %s", page.Path)
	}
	if page.SourceHash == "" {
		t.Error("expected a non-empty directory signature")
	}
}

func TestArchitecture_AppendsGeneratedDiagrams(t *testing.T) {
	deps := Deps{
		Config:  wikiconfig.DefaultConfig(),
		TextGen: &scriptedGenerator{responses: []string{"The system has two layers."}},
	}
	m := diagrams.SynthesisMap{
		Layers: map[string]diagrams.LayerSummary{
			"api":    {Purpose: "handles requests", Files: []string{"api/handler.go"}},
			"domain": {Purpose: "core logic", Files: []string{"domain/widget.go"}},
		},
		DependencyGraph: map[string][]string{"api": {"domain"}},
	}

	page, err := Architecture(context.Background(), deps, ArchitectureInput{Synthesis: m})
	if err != nil {
		t.Fatalf("Architecture: %v", err)
	}
	if !strings.Contains(page.Content, "Generated Diagrams") {
		t.Errorf("expected a Generated Diagrams section, got %q", page.Content)
	}
	if !strings.Contains(page.Content, "graph TD") && !strings.Contains(page.Content, "graph LR") {
		t.Errorf("expected at least the layer diagram to be present, got %q", page.Content)
	}
}

func TestRoot_DerivesFromArchitecturePage(t *testing.T) {
	deps := Deps{TextGen: &scriptedGenerator{responses: []string{"Welcome to the wiki."}}}
	arch := Page{Content: "architecture body", SourceHash: "abc123"}

	page, err := Root(context.Background(), deps, arch, "widgets")
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	if page.Path != "root.md" {
		t.Errorf("unexpected path: %s", page.Path)
	}
	if !strings.Contains(page.Content, "Welcome") {
		t.Errorf("expected generated body, got %q", page.Content)
	}
}

func TestFileNeighbors_FindsImportEdgesBothDirections(t *testing.T) {
	g := &wikigraph.Graph{
		Nodes: map[string]*wikigraph.Node{
			"b.go::Helper": {ID: "b.go::Helper", FilePath: "b.go"},
		},
		Edges: []wikigraph.Edge{
			{Source: "a.go", Target: "b.go::Helper", Kind: "imports", Confidence: 0.95},
		},
	}
	neighbors := fileNeighbors(g, "a.go")
	if len(neighbors) != 1 || neighbors[0].From != "a.go" || neighbors[0].To != "b.go" {
		t.Fatalf("unexpected neighbors: %+v", neighbors)
	}

	fromOther := fileNeighbors(g, "b.go")
	if len(fromOther) != 1 || fromOther[0].From != "a.go" || fromOther[0].To != "b.go" {
		t.Fatalf("unexpected reverse-direction neighbors: %+v", fromOther)
	}
}

func TestClassInfos_GroupsMethodsUnderClass(t *testing.T) {
	symbols := []parsing.ParsedSymbol{
		{Name: "Widget", Kind: parsing.KindClass},
		{Name: "Parse", Kind: parsing.KindMethod, ParentName: "Widget", Signature: "Parse(s string) error"},
		{Name: "orphanFunc", Kind: parsing.KindFunction},
	}
	classes := ClassInfos(symbols)
	if len(classes) != 1 || classes[0].Name != "Widget" {
		t.Fatalf("unexpected classes: %+v", classes)
	}
	if len(classes[0].Methods) != 1 || classes[0].Methods[0].Name != "Parse" {
		t.Fatalf("unexpected methods: %+v", classes[0].Methods)
	}
}

func TestCodeHealth_EmptyResultReportsNoCandidates(t *testing.T) {
	page := CodeHealth(nil)
	if !strings.Contains(page.Content, "No review candidates") {
		t.Errorf("expected empty-result message, got %q", page.Content)
	}
	if page.Path != "code-health.md" {
		t.Errorf("unexpected path: %s", page.Path)
	}
}
