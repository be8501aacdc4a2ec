package diagrams

// SynthesisMap is the derived structure the architecture generator and the
// layer diagram consume: layer -> {purpose, directories,
// files}, a flat key_components list, and a layer -> layers dependency map.
type SynthesisMap struct {
	Layers          map[string]LayerSummary
	KeyComponents   []string
	DependencyGraph map[string][]string
}

// LayerSummary is one entry of SynthesisMap.Layers.
type LayerSummary struct {
	Purpose     string
	Directories []string
	Files       []string
}

// ClassInfo is the minimal shape the class diagram generator needs from a
// parsed class symbol.
type ClassInfo struct {
	Name    string
	Methods []MethodInfo
}

// MethodInfo is a simplified method signature for the class diagram.
type MethodInfo struct {
	Name      string
	Signature string
}

// FileNode is the minimal shape the file-dependency diagram generator needs
// per file: its path and its degree in the code graph.
type FileNode struct {
	Path   string
	Degree int
}

// FileEdge is a directed file-to-file dependency for the dependency
// diagram.
type FileEdge struct {
	From string
	To   string
}
