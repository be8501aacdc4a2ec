package orchestrator

import (
	"path/filepath"
	"sort"
	"strings"

	"wikigen/internal/deadcode"
	"wikigen/internal/diagrams"
	"wikigen/internal/wikigraph"
)

// layerHeuristics maps a lowercase path segment to the layer it suggests, checked against every
// segment of a file's directory path. The synthesis map feeds both the
// architecture page's prompt and the layer diagram, so this runs ahead of
// any file's own LLM-assigned FileSummary.Layer — it is a purely structural
// approximation and is not updated from the per-file layers the Files
// phase produces.
var layerHeuristics = []struct {
	segment string
	layer   string
}{
	{"api", "api"},
	{"handler", "api"},
	{"handlers", "api"},
	{"routes", "api"},
	{"cmd", "api"},
	{"domain", "domain"},
	{"service", "domain"},
	{"services", "domain"},
	{"core", "domain"},
	{"infra", "infrastructure"},
	{"infrastructure", "infrastructure"},
	{"storage", "infrastructure"},
	{"store", "infrastructure"},
	{"db", "infrastructure"},
	{"repository", "infrastructure"},
	{"config", "config"},
	{"configs", "config"},
	{"test", "test"},
	{"tests", "test"},
	{"testdata", "test"},
}

// classifyLayer guesses a file's architectural layer from its path alone.
func classifyLayer(path string, cfg layerDefaults) string {
	if deadcode.IsTestFile(path) {
		return "test"
	}
	segments := strings.Split(filepath.ToSlash(filepath.Dir(path)), "/")
	for _, seg := range segments {
		seg = strings.ToLower(seg)
		for _, h := range layerHeuristics {
			if seg == h.segment {
				return h.layer
			}
		}
	}
	return cfg.defaultLayer
}

type layerDefaults struct {
	defaultLayer string
}

// synthesize derives a SynthesisMap from the discovered files and the
// resolved graph: files are grouped into layers by classifyLayer, the
// dependency graph collapses file-to-file "imports"/"calls" edges into
// cross-layer edges, and key components are the graph's entry points.
func (b *builder) synthesize() diagrams.SynthesisMap {
	defaults := layerDefaults{defaultLayer: b.opts.Config.LayerValidation.DefaultLayer}
	if defaults.defaultLayer == "" {
		defaults.defaultLayer = "utility"
	}

	layers := make(map[string]diagrams.LayerSummary)
	fileLayer := make(map[string]string, len(b.files))
	dirSet := make(map[string]map[string]bool)

	for path := range b.files {
		layer := classifyLayer(path, defaults)
		fileLayer[path] = layer
		summary := layers[layer]
		summary.Files = append(summary.Files, path)
		layers[layer] = summary

		dir := filepath.ToSlash(filepath.Dir(path))
		if dir == "." {
			dir = ""
		}
		if dirSet[layer] == nil {
			dirSet[layer] = make(map[string]bool)
		}
		dirSet[layer][dir] = true
	}

	for layer, summary := range layers {
		dirs := make([]string, 0, len(dirSet[layer]))
		for d := range dirSet[layer] {
			dirs = append(dirs, d)
		}
		sort.Strings(dirs)
		sort.Strings(summary.Files)
		summary.Directories = dirs
		summary.Purpose = defaultLayerPurpose(layer)
		layers[layer] = summary
	}

	depSet := make(map[string]map[string]bool)
	if b.graph != nil {
		for _, e := range b.graph.Edges {
			srcFile := endpointFile(b.graph, e.Source)
			dstFile := endpointFile(b.graph, e.Target)
			fromLayer, fromOK := fileLayer[srcFile]
			toLayer, toOK := fileLayer[dstFile]
			if !fromOK || !toOK || fromLayer == toLayer {
				continue
			}
			if depSet[fromLayer] == nil {
				depSet[fromLayer] = make(map[string]bool)
			}
			depSet[fromLayer][toLayer] = true
		}
	}

	depGraph := make(map[string][]string, len(depSet))
	for from, tos := range depSet {
		list := make([]string, 0, len(tos))
		for to := range tos {
			list = append(list, to)
		}
		sort.Strings(list)
		depGraph[from] = list
	}

	var keyComponents []string
	if b.graph != nil {
		for _, n := range b.graph.EntryPoints() {
			keyComponents = append(keyComponents, n.Name)
		}
	}
	sort.Strings(keyComponents)

	return diagrams.SynthesisMap{Layers: layers, KeyComponents: keyComponents, DependencyGraph: depGraph}
}

// endpointFile resolves a graph edge endpoint id to its owning file path: a
// symbol node's FilePath, or (for file-scope edges like imports, whose
// source is a bare file path rather than a node id) the id itself.
func endpointFile(g *wikigraph.Graph, id string) string {
	if n, ok := g.Nodes[id]; ok && n.FilePath != "" {
		return n.FilePath
	}
	return id
}

func defaultLayerPurpose(layer string) string {
	switch layer {
	case "api":
		return "Exposes the system's external entry points."
	case "domain":
		return "Implements core business logic."
	case "infrastructure":
		return "Integrates with databases, storage, and other external systems."
	case "config":
		return "Holds configuration definitions and loaders."
	case "test":
		return "Contains test code."
	default:
		return "Utility and supporting code."
	}
}
