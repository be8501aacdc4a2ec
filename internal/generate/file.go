package generate

import (
	"context"
	"sort"
	"strings"

	"wikigen/internal/depscan"
	"wikigen/internal/diagrams"
	"wikigen/internal/notes"
	"wikigen/internal/parsing"
	"wikigen/internal/signature"
	"wikigen/internal/wikigraph"
)

// FileInput is everything the file-page generator needs about one source
// file, assembled by the orchestrator from C1's extraction output and C2's
// resolved graph.
type FileInput struct {
	Path           string
	Language       parsing.Language
	Content        []byte
	Symbols        []parsing.ParsedSymbol
	References     []parsing.Reference // this file's own raw references, pre-resolution
	Graph          *wikigraph.Graph
	Synthesis      diagrams.SynthesisMap
	KnownFilePaths map[string]bool
}

// File generates the file page for in, returning both the rendered Page and
// the FileSummary parsed from its frontmatter so the Directories phase can
// fold it into a ChildSummary without re-reading the page back off disk. A
// transport error from the text generator is returned to the caller as a
// fatal-to-this-page error; a malformed or missing YAML frontmatter block is
// handled internally via retry-then-fallback and never returned as an error.
func File(ctx context.Context, deps Deps, in FileInput) (Page, FileSummary, error) {
	var fileNotes []notes.Note
	if deps.Notes != nil {
		var err error
		fileNotes, err = deps.Notes.NotesFor(ctx, notes.ScopeFile, in.Path)
		if err != nil && deps.Logger != nil {
			deps.Logger.Warn("notes lookup failed for file, continuing without notes", map[string]interface{}{"path": in.Path, "error": err.Error()})
		}
	}

	prompt := buildFilePrompt(in, fileNotes)
	summary, body, err := generateFileSummary(ctx, deps.TextGen, deps.Config, prompt, fileSystemPrompt, in.Path, deps.Report)
	if err != nil {
		return Page{}, FileSummary{}, err
	}

	lang := depscan.LanguageForExt(extOf(in.Path))
	if lang == "" {
		lang = string(in.Language)
	}
	classified := depscan.Classify(lang, importTargets(in.References), in.KnownFilePaths)
	if len(summary.InternalDeps) == 0 {
		summary.InternalDeps = classified.InternalDeps
	}
	if len(summary.ExternalDeps) == 0 {
		summary.ExternalDeps = classified.ExternalDeps
	}

	sections := []string{strings.TrimRight(body, "\n")}

	if classes := ClassInfos(in.Symbols); len(classes) > 0 {
		sections = appendDiagramSection(sections, "Class Diagram", diagrams.GenerateClassDiagram(classes))
	}
	if neighbors := fileNeighbors(in.Graph, in.Path); len(neighbors) > 0 {
		sections = appendDiagramSection(sections, "Dependency Diagram", diagrams.GenerateFocusedDependencyDiagram(in.Path, neighbors))
	}

	content := strings.Join(sections, "\n\n") + "\n"
	return Page{
		Content:    content,
		Type:       PageFile,
		Path:       PagePath(PageFile, in.Path),
		Target:     in.Path,
		WordCount:  wordCount(content),
		SourceHash: signature.File(in.Content, fileNotes),
	}, summary, nil
}

func extOf(path string) string {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return ""
	}
	return path[idx:]
}

// ClassInfos groups a file's method symbols under their enclosing class so
// the class diagram generator can render one block per class.
func ClassInfos(symbols []parsing.ParsedSymbol) []diagrams.ClassInfo {
	methodsByParent := make(map[string][]parsing.ParsedSymbol)
	for _, s := range symbols {
		if s.Kind == parsing.KindMethod && s.ParentName != "" {
			methodsByParent[s.ParentName] = append(methodsByParent[s.ParentName], s)
		}
	}

	var classes []diagrams.ClassInfo
	for _, s := range symbols {
		if s.Kind != parsing.KindClass {
			continue
		}
		var methods []diagrams.MethodInfo
		for _, m := range methodsByParent[s.Name] {
			methods = append(methods, diagrams.MethodInfo{Name: m.Name, Signature: m.Signature})
		}
		classes = append(classes, diagrams.ClassInfo{Name: s.Name, Methods: methods})
	}
	return classes
}

// fileNeighbors derives the file-to-file import edges touching path from
// the resolved graph: an "imports" edge sourced at path, or one whose
// resolved target node lives in path.
func fileNeighbors(g *wikigraph.Graph, path string) []diagrams.FileEdge {
	if g == nil {
		return nil
	}
	seen := make(map[string]bool)
	var edges []diagrams.FileEdge
	for _, e := range g.Edges {
		if e.Kind != string(parsing.RefImports) {
			continue
		}
		var from, to string
		if e.Source == path {
			n, ok := g.Nodes[e.Target]
			if !ok || n.FilePath == "" || n.FilePath == path {
				continue
			}
			from, to = path, n.FilePath
		} else if n, ok := g.Nodes[e.Target]; ok && n.FilePath == path && e.Source != path {
			from, to = e.Source, path
		} else {
			continue
		}
		key := from + ">" + to
		if seen[key] {
			continue
		}
		seen[key] = true
		edges = append(edges, diagrams.FileEdge{From: from, To: to})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}
