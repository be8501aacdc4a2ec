package deadcode

import (
	"path/filepath"
	"sort"
	"strings"

	"wikigen/internal/wikigraph"
)

// Analyzer implements C3's dead-code analyser: input is a built Graph,
// output is the set of "Review Candidates" a dead-code page presents
//.
type Analyzer struct {
	exclusions *ExclusionRules
}

// NewAnalyzer builds an Analyzer. excludedNames augments the built-in
// conventional exclusions (main, init, test prefixes, etc.) with
// repo-specific names/glob patterns.
func NewAnalyzer(excludedNames []string) *Analyzer {
	return &Analyzer{exclusions: NewExclusionRules(excludedNames)}
}

// Analyze applies four-condition dead-candidate predicate to
// every node in g, then enriches the surviving and near-miss nodes with the
// confidence-scored category split (self-only, zero-refs, test-only,
// internal-export) so the dead-code page can explain each flag instead of
// a flat "unused" label.
func (a *Analyzer) Analyze(g *wikigraph.Graph, opts AnalyzerOptions) *Result {
	var items []DeadCodeItem
	totalAnalyzed := 0

	for _, id := range wikigraph.SortedNodeIDs(g) {
		n := g.Nodes[id]
		if n.External {
			continue
		}
		if len(opts.Scope) > 0 && !a.isInScope(n.FilePath, opts.Scope) {
			continue
		}
		exported := isExported(n.Name, n.Kind)
		if opts.IncludeExported && !exported && !opts.IncludeUnexported {
			continue
		}
		if opts.IncludeUnexported && exported && !opts.IncludeExported {
			continue
		}

		symInfo := SymbolInfo{
			Name:     n.Name,
			Kind:     n.Kind,
			FilePath: n.FilePath,
			Exported: exported,
		}
		if reason := a.exclusions.ShouldExclude(symInfo); reason != "" {
			continue
		}
		if IsTestFile(n.FilePath) {
			continue
		}
		if n.IsEntryPoint {
			continue
		}

		totalAnalyzed++

		stats := categorizeIncoming(g, n)
		item, isDead := classify(n, stats, exported, opts)
		if isDead && item.Confidence >= opts.MinConfidence {
			items = append(items, item)
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Confidence != items[j].Confidence {
			return items[i].Confidence > items[j].Confidence
		}
		return items[i].FilePath < items[j].FilePath
	})

	if opts.Limit > 0 && len(items) > opts.Limit {
		items = items[:opts.Limit]
	}

	return &Result{
		DeadCode: items,
		Summary:  computeSummary(items, totalAnalyzed),
		Scope:    opts.Scope,
	}
}

// categorizeIncoming buckets a node's incoming edges (of any kind, not just
// "calls") into self, test, and ordinary-internal/external references.
func categorizeIncoming(g *wikigraph.Graph, n *wikigraph.Node) ReferenceStats {
	var stats ReferenceStats
	dir := filepath.Dir(n.FilePath)
	for _, e := range g.IncomingEdges(n.ID) {
		stats.Total++
		src, ok := g.Nodes[e.Source]
		if e.Source == n.ID {
			stats.FromSelf++
			continue
		}
		srcFile := e.Source
		if ok {
			srcFile = src.FilePath
		}
		if IsTestFile(srcFile) {
			stats.FromTests++
			continue
		}
		if filepath.Dir(srcFile) == dir {
			stats.Internal++
		} else {
			stats.External++
		}
	}
	return stats
}

// classify applies literal predicate ("zero incoming edges of
// any type") as the primary dead-candidate gate, then assigns the teacher's
// richer category/confidence split for the presentation layer.
func classify(n *wikigraph.Node, stats ReferenceStats, exported bool, opts AnalyzerOptions) (DeadCodeItem, bool) {
	item := DeadCodeItem{
		SymbolID:       n.ID,
		SymbolName:     n.Name,
		Kind:           n.Kind,
		FilePath:       n.FilePath,
		LineNumber:     n.LineStart,
		LineEnd:        n.LineEnd,
		ReferenceCount: stats.Total,
		TestReferences: stats.FromTests,
		SelfReferences: stats.FromSelf,
		Exported:       exported,
	}

	if stats.Total == 0 {
		item.Category = CategoryZeroRefs
		item.Reason = "no detected callers"
		item.Confidence = 0.99
		return item, true
	}

	nonSelf := stats.Total - stats.FromSelf
	if nonSelf == 0 {
		item.Category = CategorySelfOnly
		item.Reason = "no detected callers outside itself (recursive but never called)"
		item.Confidence = 0.95
		return item, true
	}

	if !opts.ExcludeTestOnly && stats.FromTests == nonSelf {
		item.Category = CategoryTestOnly
		item.Reason = "no detected callers outside test files"
		item.Confidence = 0.75
		return item, true
	}

	if exported && stats.External == 0 && stats.Internal > 0 {
		item.Category = CategoryInternalExport
		item.Reason = "exported but no detected callers outside its own directory"
		item.Confidence = 0.60
		return item, true
	}

	return item, false
}

func (a *Analyzer) isInScope(filePath string, scope []string) bool {
	if len(scope) == 0 {
		return true
	}
	for _, s := range scope {
		if strings.HasPrefix(filePath, s) || strings.HasPrefix(filePath, s+"/") {
			return true
		}
	}
	return false
}

func isExported(name, kind string) bool {
	if name == "" || kind == "variable" {
		return false
	}
	first := rune(name[0])
	return first >= 'A' && first <= 'Z'
}

func computeSummary(items []DeadCodeItem, totalAnalyzed int) DeadCodeSummary {
	summary := DeadCodeSummary{
		TotalSymbols: totalAnalyzed,
		ByKind:       make(map[string]int),
		ByCategory:   make(map[string]int),
	}
	estimated := 0
	for _, item := range items {
		if item.Confidence >= 0.9 {
			summary.DeadCount++
		} else {
			summary.SuspiciousCount++
		}
		summary.ByKind[item.Kind]++
		summary.ByCategory[string(item.Category)]++
		switch item.Kind {
		case "function", "method":
			estimated += 20
		case "class":
			estimated += 30
		default:
			estimated += 5
		}
	}
	summary.EstimatedLines = estimated
	return summary
}
