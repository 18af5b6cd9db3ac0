package api

// Document represents a validated Rojo project description.
// It maps filesystem paths onto a named instance tree.
type Document struct {
	// Name of the project. Becomes the root node's instance name when the
	// tree itself carries no DataModel root.
	Name string `json:"name"`
	// Tree is the root node of the instance tree.
	Tree *Node `json:"tree"`
	// GlobIgnorePaths lists glob patterns, relative to the directory
	// containing the document, that exclude matching paths from the tree.
	GlobIgnorePaths []string `json:"globIgnorePaths,omitempty"`
	// ServePort is the port a live-sync server would listen on (optional).
	ServePort int `json:"servePort,omitempty"`
}

// Node represents one instance in the declared tree.
// Object keys starting with '$' are reserved metadata; every other key
// names a child node. Children preserve declaration order, which decides
// partition priority at resolution time.
type Node struct {
	// ClassName is the declared instance class ($className), if any.
	ClassName string
	// Path binds this node to a real filesystem path ($path), if any.
	Path *PathSpec
	// Properties holds declared instance properties ($properties).
	// Carried through verbatim; path resolution never inspects them.
	Properties map[string]any
	// IgnoreUnknownInstances mirrors $ignoreUnknownInstances when present.
	IgnoreUnknownInstances *bool
	// Children in declaration order.
	Children []Child
}

// Child is a named child node.
type Child struct {
	Name string
	Node *Node
}

// PathSpec is a $path binding: either a plain string or
// {"optional": "..."} for bindings allowed to be absent on disk.
type PathSpec struct {
	Value    string
	Optional bool
}

// Child returns the named child node, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c.Node
		}
	}
	return nil
}
