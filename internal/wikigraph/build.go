package wikigraph

import (
	"sort"

	"wikigen/internal/parsing"
)

// BuildOptions configures graph construction.
type BuildOptions struct {
	// MaterializeExternals, when true, adds a synthetic node for every
	// reference target that stays unresolved after resolution, so externals still appear as edge targets rather than
	// being dropped.
	MaterializeExternals bool
}

// Build constructs a SymbolTable and a Graph from every file's parsed
// output: insert every symbol, resolve every reference,
// then add nodes for every parsed symbol and edges for resolved references.
func Build(units []FileUnit, opts BuildOptions) *Graph {
	table := newSymbolTable()
	g := newGraph()

	for _, u := range units {
		for _, sym := range u.Symbols {
			n := &Node{
				ID:           u.FilePath + "::" + sym.QualifiedName(),
				Name:         sym.Name,
				Kind:         string(sym.Kind),
				FilePath:     u.FilePath,
				LineStart:    sym.StartLine,
				LineEnd:      sym.EndLine,
				Docstring:    sym.Docstring,
				Signature:    sym.Signature,
				Parent:       sym.ParentName,
				IsEntryPoint: sym.IsEntryPoint,
			}
			g.Nodes[n.ID] = n
			table.insert(n)
		}
	}

	for _, u := range units {
		for _, ref := range u.References {
			g.Edges = append(g.Edges, resolveReference(table, u.FilePath, ref, g, opts)...)
		}
	}

	sortGraph(g)
	g.index()
	g.Metadata.NodeCount = len(g.Nodes)
	g.Metadata.EdgeCount = len(g.Edges)
	return g
}

// resolveReference implements exact-match / ambiguous /
// unresolved resolution algorithm for a single reference.
func resolveReference(table *SymbolTable, sourceFile string, ref parsing.Reference, g *Graph, opts BuildOptions) []Edge {
	candidates := table.Resolve(ref.Target)

	source := ref.Source
	if source == "" {
		source = sourceFile
	}

	switch len(candidates) {
	case 1:
		return []Edge{{
			Source:     source,
			Target:     candidates[0],
			Kind:       string(ref.Kind),
			Confidence: ref.Confidence,
			Line:       ref.Line,
		}}
	case 0:
		confidence := ref.Confidence * 0.3
		if !opts.MaterializeExternals {
			return nil
		}
		externalID := "external::" + ref.Target
		if _, ok := g.Nodes[externalID]; !ok {
			g.Nodes[externalID] = &Node{
				ID:       externalID,
				Name:     ref.Target,
				Kind:     "external",
				External: true,
			}
		}
		return []Edge{{
			Source:     source,
			Target:     externalID,
			Kind:       string(ref.Kind),
			Confidence: confidence,
			Line:       ref.Line,
		}}
	default:
		edges := make([]Edge, 0, len(candidates))
		for _, c := range candidates {
			edges = append(edges, Edge{
				Source:     source,
				Target:     c,
				Kind:       string(ref.Kind),
				Confidence: ref.Confidence * 0.5,
				Line:       ref.Line,
			})
		}
		return edges
	}
}

// sortGraph orders edges by (source, target) for deterministic
// persistence; nodes are ordered by id at persistence time (SortedNodeIDs).
func sortGraph(g *Graph) {
	sort.Slice(g.Edges, func(i, j int) bool {
		if g.Edges[i].Source != g.Edges[j].Source {
			return g.Edges[i].Source < g.Edges[j].Source
		}
		return g.Edges[i].Target < g.Edges[j].Target
	})
}

// SortedNodeIDs returns every node id in the graph in sorted order.
func SortedNodeIDs(g *Graph) []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
