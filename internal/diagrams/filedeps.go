package diagrams

import (
	"fmt"
	"sort"
	"strings"
)

// maxRepoFileNodes is the default cap for the whole-repo file dependency
// diagram.
const maxRepoFileNodes = 30

// GenerateFileDependencyDiagram renders nodes sorted by degree descending,
// truncated to maxNodes (0 means use the repo-wide default of 30), with
// edges restricted to the retained node set.
func GenerateFileDependencyDiagram(nodes []FileNode, edges []FileEdge, maxNodes int) string {
	if maxNodes <= 0 {
		maxNodes = maxRepoFileNodes
	}

	sorted := append([]FileNode(nil), nodes...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Degree != sorted[j].Degree {
			return sorted[i].Degree > sorted[j].Degree
		}
		return sorted[i].Path < sorted[j].Path
	})
	if len(sorted) > maxNodes {
		sorted = sorted[:maxNodes]
	}

	kept := make(map[string]bool, len(sorted))
	for _, n := range sorted {
		kept[n.Path] = true
	}

	var b strings.Builder
	b.WriteString("graph LR\n")
	for _, n := range sorted {
		fmt.Fprintf(&b, "  %s[%s]\n", SanitizeNodeID(n.Path), SanitizeLabel(n.Path))
	}

	filtered := make([]FileEdge, 0, len(edges))
	for _, e := range edges {
		if kept[e.From] && kept[e.To] {
			filtered = append(filtered, e)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].From != filtered[j].From {
			return filtered[i].From < filtered[j].From
		}
		return filtered[i].To < filtered[j].To
	})
	for _, e := range filtered {
		fmt.Fprintf(&b, "  %s --> %s\n", SanitizeNodeID(e.From), SanitizeNodeID(e.To))
	}

	text := b.String()
	if !Validate(text).Valid {
		return ""
	}
	return text
}

// GenerateFocusedDependencyDiagram is the per-file variant: a
// target-centered neighborhood rather than the whole-repo top-N. neighbors holds the files directly importing or imported by
// target.
func GenerateFocusedDependencyDiagram(target string, neighbors []FileEdge) string {
	var b strings.Builder
	b.WriteString("graph LR\n")
	fmt.Fprintf(&b, "  %s[%s]\n", SanitizeNodeID(target), SanitizeLabel(target))

	seen := map[string]bool{target: true}
	sorted := append([]FileEdge(nil), neighbors...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].From != sorted[j].From {
			return sorted[i].From < sorted[j].From
		}
		return sorted[i].To < sorted[j].To
	})
	for _, e := range sorted {
		other := e.To
		if e.From != target {
			other = e.From
		}
		if !seen[other] {
			seen[other] = true
			fmt.Fprintf(&b, "  %s[%s]\n", SanitizeNodeID(other), SanitizeLabel(other))
		}
		fmt.Fprintf(&b, "  %s --> %s\n", SanitizeNodeID(e.From), SanitizeNodeID(e.To))
	}

	text := b.String()
	if !Validate(text).Valid {
		return ""
	}
	return text
}
