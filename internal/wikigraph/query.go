package wikigraph

import "sort"

// Calls returns the nodes id has a "calls" edge to with confidence >=
// minConf.
func (g *Graph) Calls(id string, minConf float64) []*Node {
	var out []*Node
	for _, idx := range g.outgoing[id] {
		e := g.Edges[idx]
		if e.Kind == "calls" && e.Confidence >= minConf {
			if n, ok := g.Nodes[e.Target]; ok {
				out = append(out, n)
			}
		}
	}
	return out
}

// Callers is the symmetric inbound query to Calls.
func (g *Graph) Callers(id string, minConf float64) []*Node {
	var out []*Node
	for _, idx := range g.incoming[id] {
		e := g.Edges[idx]
		if e.Kind == "calls" && e.Confidence >= minConf {
			if n, ok := g.Nodes[e.Source]; ok {
				out = append(out, n)
			}
		}
	}
	return out
}

// Neighborhood returns the breadth-first subgraph within hops of id,
// treating edges as undirected, plus the edges strictly between the
// returned nodes.
func (g *Graph) Neighborhood(id string, hops int, minConf float64) ([]*Node, []Edge) {
	visited := map[string]int{id: 0}
	queue := []string{id}
	for len(queue) > 0 && visited[queue[0]] < hops {
		cur := queue[0]
		queue = queue[1:]
		depth := visited[cur]
		for _, nb := range g.undirectedNeighbors(cur, minConf) {
			if _, seen := visited[nb]; !seen {
				visited[nb] = depth + 1
				queue = append(queue, nb)
			}
		}
	}

	nodes := make([]*Node, 0, len(visited))
	for nid := range visited {
		if n, ok := g.Nodes[nid]; ok {
			nodes = append(nodes, n)
		}
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	var edges []Edge
	for _, e := range g.Edges {
		if e.Confidence < minConf {
			continue
		}
		_, srcIn := visited[e.Source]
		_, dstIn := visited[e.Target]
		if srcIn && dstIn {
			edges = append(edges, e)
		}
	}
	return nodes, edges
}

func (g *Graph) undirectedNeighbors(id string, minConf float64) []string {
	var out []string
	for _, idx := range g.outgoing[id] {
		if e := g.Edges[idx]; e.Confidence >= minConf {
			out = append(out, e.Target)
		}
	}
	for _, idx := range g.incoming[id] {
		if e := g.Edges[idx]; e.Confidence >= minConf {
			out = append(out, e.Source)
		}
	}
	return out
}

// TraceFlow returns up to maxPaths simple paths from a to b, shortest
// first, with a cutoff of 10 hops.
func (g *Graph) TraceFlow(a, b string, minConf float64, maxPaths int) [][]string {
	const cutoff = 10
	var results [][]string
	visited := map[string]bool{a: true}
	path := []string{a}

	var dfs func(cur string)
	dfs = func(cur string) {
		if len(results) >= maxPaths || len(path) > cutoff+1 {
			return
		}
		if cur == b && len(path) > 1 {
			cp := make([]string, len(path))
			copy(cp, path)
			results = append(results, cp)
			return
		}
		for _, idx := range g.outgoing[cur] {
			e := g.Edges[idx]
			if e.Confidence < minConf || visited[e.Target] {
				continue
			}
			visited[e.Target] = true
			path = append(path, e.Target)
			dfs(e.Target)
			path = path[:len(path)-1]
			visited[e.Target] = false
			if len(results) >= maxPaths {
				return
			}
		}
	}
	dfs(a)

	sort.Slice(results, func(i, j int) bool { return len(results[i]) < len(results[j]) })
	if len(results) > maxPaths {
		results = results[:maxPaths]
	}
	return results
}

// EntryPoints returns nodes with at least one outgoing "calls" edge and zero
// incoming "calls" edges.
func (g *Graph) EntryPoints() []*Node {
	var out []*Node
	for id, n := range g.Nodes {
		hasOut, hasIn := false, false
		for _, idx := range g.outgoing[id] {
			if g.Edges[idx].Kind == "calls" {
				hasOut = true
				break
			}
		}
		for _, idx := range g.incoming[id] {
			if g.Edges[idx].Kind == "calls" {
				hasIn = true
				break
			}
		}
		if hasOut && !hasIn {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LeafNodes returns nodes with zero outgoing "calls" edges.
func (g *Graph) LeafNodes() []*Node {
	var out []*Node
	for id, n := range g.Nodes {
		hasOut := false
		for _, idx := range g.outgoing[id] {
			if g.Edges[idx].Kind == "calls" {
				hasOut = true
				break
			}
		}
		if !hasOut {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IncomingEdges returns every edge whose target is id, of any kind —
// used by the dead-code analyser's zero-incoming-edge predicate.
func (g *Graph) IncomingEdges(id string) []Edge {
	var out []Edge
	for _, idx := range g.incoming[id] {
		out = append(out, g.Edges[idx])
	}
	return out
}

// Degree returns a node's total edge count (in + out), used by the file
// dependency diagram generator to sort nodes by degree descending.
func (g *Graph) Degree(id string) int {
	return len(g.outgoing[id]) + len(g.incoming[id])
}
