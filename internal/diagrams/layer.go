package diagrams

import (
	"fmt"
	"sort"
	"strings"
)

// maxComponentsPerLayer caps how many key components are listed inside each
// layer's subgraph.
const maxComponentsPerLayer = 5

// GenerateLayerDiagram renders one subgraph per layer in m, listing up to 5
// components each, with edges between layers from m.DependencyGraph
//. Returns "" if the generated text fails Validate — the
// generator drops invalid diagrams silently.
func GenerateLayerDiagram(m SynthesisMap) string {
	var b strings.Builder
	b.WriteString("graph TD\n")

	layers := make([]string, 0, len(m.Layers))
	for l := range m.Layers {
		layers = append(layers, l)
	}
	sort.Strings(layers)

	for _, layer := range layers {
		summary := m.Layers[layer]
		subgraphID := SanitizeNodeID(layer)
		fmt.Fprintf(&b, "  subgraph %s[%s]\n", subgraphID, SanitizeLabel(layer))

		components := layerComponents(summary, m.KeyComponents)
		if len(components) > maxComponentsPerLayer {
			components = components[:maxComponentsPerLayer]
		}
		for _, c := range components {
			fmt.Fprintf(&b, "    %s_%s[%s]\n", subgraphID, SanitizeNodeID(c), SanitizeLabel(c))
		}
		b.WriteString("  end\n")
	}

	depTargets := make([]string, 0, len(m.DependencyGraph))
	for l := range m.DependencyGraph {
		depTargets = append(depTargets, l)
	}
	sort.Strings(depTargets)
	for _, from := range depTargets {
		tos := append([]string(nil), m.DependencyGraph[from]...)
		sort.Strings(tos)
		for _, to := range tos {
			if _, ok := m.Layers[to]; !ok {
				continue
			}
			fmt.Fprintf(&b, "  %s --> %s\n", SanitizeNodeID(from), SanitizeNodeID(to))
		}
	}

	text := b.String()
	if !Validate(text).Valid {
		return ""
	}
	return text
}

// layerComponents picks the key components belonging to this layer's
// directories/files, falling back to the directory list itself when no
// key component maps into the layer.
func layerComponents(summary LayerSummary, keyComponents []string) []string {
	var matched []string
	for _, kc := range keyComponents {
		for _, d := range summary.Directories {
			if strings.HasPrefix(kc, d) {
				matched = append(matched, kc)
				break
			}
		}
	}
	if len(matched) > 0 {
		sort.Strings(matched)
		return matched
	}
	fallback := append([]string(nil), summary.Directories...)
	sort.Strings(fallback)
	return fallback
}
