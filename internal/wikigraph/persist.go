package wikigraph

import (
	"encoding/json"
	"os"
	"path/filepath"

	"wikigen/internal/wikierr"
)

// Persist writes nodes.json, edges.json, and metadata.json into dir, sorted
// for determinism, 2-space indented.
func (g *Graph) Persist(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return wikierr.Wrap(wikierr.CommitFailure, "creating graph output dir", err)
	}

	ids := SortedNodeIDs(g)
	nodes := make([]*Node, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, g.Nodes[id])
	}

	if err := writeJSON(filepath.Join(dir, "nodes.json"), nodes); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, "edges.json"), g.Edges); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, "metadata.json"), g.Metadata); err != nil {
		return err
	}
	return nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return wikierr.Wrap(wikierr.CommitFailure, "marshaling "+filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return wikierr.Wrap(wikierr.CommitFailure, "writing "+filepath.Base(path), err)
	}
	return nil
}

// Load reads a previously persisted graph back from dir, rebuilding the
// query indices.
func Load(dir string) (*Graph, error) {
	g := newGraph()

	var nodes []*Node
	if err := readJSON(filepath.Join(dir, "nodes.json"), &nodes); err != nil {
		return nil, err
	}
	for _, n := range nodes {
		g.Nodes[n.ID] = n
	}

	if err := readJSON(filepath.Join(dir, "edges.json"), &g.Edges); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, "metadata.json"), &g.Metadata); err != nil {
		return nil, err
	}

	sortGraph(g)
	g.index()
	return g, nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return wikierr.Wrap(wikierr.CommitFailure, "reading "+filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return wikierr.Wrap(wikierr.CommitFailure, "parsing "+filepath.Base(path), err)
	}
	return nil
}
