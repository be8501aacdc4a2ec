package wikigraph

// SymbolTable maps a simple name and a qualified name ("Parent.member") to
// the set of fully-qualified ids that declare it. One qualified id maps to
// at most one symbol; a simple or qualified name may map to several when
// multiple files declare the same name. It is rebuilt
// from scratch at the start of every graph build.
type SymbolTable struct {
	bySimple    map[string]map[string]bool
	byQualified map[string]map[string]bool
	nodeByID    map[string]*Node
}

func newSymbolTable() *SymbolTable {
	return &SymbolTable{
		bySimple:    make(map[string]map[string]bool),
		byQualified: make(map[string]map[string]bool),
		nodeByID:    make(map[string]*Node),
	}
}

func (t *SymbolTable) insert(n *Node) {
	t.nodeByID[n.ID] = n
	addTo(t.bySimple, n.Name, n.ID)
	qualified := n.Name
	if n.Parent != "" {
		qualified = n.Parent + "." + n.Name
	}
	addTo(t.byQualified, qualified, n.ID)
}

func addTo(m map[string]map[string]bool, key, id string) {
	set, ok := m[key]
	if !ok {
		set = make(map[string]bool)
		m[key] = set
	}
	set[id] = true
}

// Resolve looks up a reference target by qualified name first, falling back
// to the simple name step 1. It returns the candidate
// node ids found (possibly empty, possibly more than one).
func (t *SymbolTable) Resolve(target string) []string {
	if ids, ok := t.byQualified[target]; ok && len(ids) > 0 {
		return setToSlice(ids)
	}
	if ids, ok := t.bySimple[target]; ok && len(ids) > 0 {
		return setToSlice(ids)
	}
	return nil
}

func setToSlice(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
