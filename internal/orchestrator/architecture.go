package orchestrator

import (
	"context"
	"sort"

	"wikigen/internal/deadcode"
	"wikigen/internal/diagrams"
	"wikigen/internal/generate"
	"wikigen/internal/parsing"
)

// processArchitecture runs the Architecture phase: the repo-wide
// architecture page, the root landing page generated from it, and the
// deterministic code-health page. All three are appended to b.pages;
// failures on the architecture or root page are fatal (there is no prior
// page to carry forward for a singleton that may never have existed), a
// code-health failure cannot happen since it calls no generator.
func (b *builder) processArchitecture(ctx context.Context) error {
	in := generate.ArchitectureInput{
		Synthesis: b.synth,
		FileNodes: b.repoFileNodes(),
		FileEdges: b.repoFileEdges(),
		Classes:   b.repoClasses(),
	}

	archPage, err := generate.Architecture(ctx, b.deps(), in)
	if err != nil {
		return asWikiErr(err)
	}
	b.pages = append(b.pages, archPage)
	b.emit(PhaseArchitecture, 1, 3, "architecture page generated")

	rootPage, err := generate.Root(ctx, b.deps(), archPage, b.opts.RepoName)
	if err != nil {
		return asWikiErr(err)
	}
	b.pages = append(b.pages, rootPage)
	b.emit(PhaseArchitecture, 2, 3, "root page generated")

	analyzer := deadcode.NewAnalyzer(b.opts.Config.DeadCode.ExcludedNames)
	analyzeOpts := deadcode.DefaultOptions()
	analyzeOpts.IncludeUnexported = b.opts.Config.DeadCode.IncludeUnexported
	result := analyzer.Analyze(b.graph, analyzeOpts)
	b.pages = append(b.pages, generate.CodeHealth(result))
	b.emit(PhaseArchitecture, 3, 3, "code health page generated")

	return nil
}

// repoFileNodes computes one FileNode per discovered file, degree counted
// from its "imports" edges in either direction.
func (b *builder) repoFileNodes() []diagrams.FileNode {
	if b.graph == nil {
		return nil
	}
	degree := make(map[string]int, len(b.files))
	for path := range b.files {
		degree[path] = 0
	}
	for _, e := range b.graph.Edges {
		if e.Kind != string(parsing.RefImports) {
			continue
		}
		from := endpointFile(b.graph, e.Source)
		to := endpointFile(b.graph, e.Target)
		if _, ok := degree[from]; ok {
			degree[from]++
		}
		if _, ok := degree[to]; ok && to != from {
			degree[to]++
		}
	}

	nodes := make([]diagrams.FileNode, 0, len(degree))
	for path, d := range degree {
		nodes = append(nodes, diagrams.FileNode{Path: path, Degree: d})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Path < nodes[j].Path })
	return nodes
}

func (b *builder) repoFileEdges() []diagrams.FileEdge {
	if b.graph == nil {
		return nil
	}
	seen := make(map[string]bool)
	var edges []diagrams.FileEdge
	for _, e := range b.graph.Edges {
		if e.Kind != string(parsing.RefImports) {
			continue
		}
		from := endpointFile(b.graph, e.Source)
		to := endpointFile(b.graph, e.Target)
		if from == "" || to == "" || from == to {
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

// repoClasses groups every file's method symbols under their enclosing
// class, repository-wide, for the architecture page's class diagram. Reuses
// the same per-file grouping the file page's own class diagram uses.
func (b *builder) repoClasses() []diagrams.ClassInfo {
	var classes []diagrams.ClassInfo
	for _, path := range sortedFileKeys(b.files) {
		fp := b.files[path]
		if fp.result == nil {
			continue
		}
		classes = append(classes, generate.ClassInfos(fp.result.Symbols)...)
	}
	return classes
}

func sortedFileKeys(files map[string]*fileParse) []string {
	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
