package orchestrator

import (
	"sort"

	"wikigen/internal/wikigraph"
)

// analyze builds the symbol table and resolved graph from every Discover
// result and computes the synthesis map the Files and Architecture phases
// consume. Persisting the graph to disk happens at Commit time, alongside
// every other staged artifact, so a failed build never leaves a half
// written graph/ directory next to the live wiki.
func (b *builder) analyze() {
	paths := make([]string, 0, len(b.files))
	for p := range b.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	units := make([]wikigraph.FileUnit, 0, len(paths))
	for _, p := range paths {
		fp := b.files[p]
		if fp.result == nil {
			continue
		}
		units = append(units, wikigraph.FileUnit{
			FilePath:   p,
			Symbols:    fp.result.Symbols,
			References: fp.result.References,
		})
	}

	b.graph = wikigraph.Build(units, wikigraph.BuildOptions{MaterializeExternals: true})
	b.emit(PhaseAnalyze, 1, 2, "graph built")

	b.synth = b.synthesize()
	b.emit(PhaseAnalyze, 2, 2, "synthesis map computed")
}
