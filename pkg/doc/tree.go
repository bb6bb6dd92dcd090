package doc

import "errors"

var (
	// ErrUnknownParent is returned by [Builder.Add] when the parent ID does
	// not address a node already in the tree.
	ErrUnknownParent = errors.New("unknown parent node")

	// ErrEmptyTree is returned when a tree without a root is used.
	ErrEmptyTree = errors.New("tree has no root")
)

// unsetSuffix marks an explicitly unset attribute key.
const unsetSuffix = "!"

// Tree is an arena of nodes. Node 0 is the root. Child order in
// Node.Blocks is document order.
//
// The zero value is an empty tree. Build trees with [Builder]; a finished
// Tree is safe for concurrent readers.
type Tree struct {
	nodes []Node
}

// Root returns the ID of the root node, or NoNode for an empty tree.
func (t *Tree) Root() NodeID {
	if t == nil || len(t.nodes) == 0 {
		return NoNode
	}
	return 0
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Node returns the node with the given ID, or nil if id is out of range.
// Callers must treat the returned node as read-only.
func (t *Tree) Node(id NodeID) *Node {
	if t == nil || id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

// Parent returns the parent of id, or NoNode for the root and unknown IDs.
func (t *Tree) Parent(id NodeID) NodeID {
	n := t.Node(id)
	if n == nil {
		return NoNode
	}
	return n.Parent
}

// Lookup resolves an attribute by walking from id up to the root. An
// explicit unset ("key!") on the way stops the walk and reports false.
func (t *Tree) Lookup(id NodeID, key string) (string, bool) {
	for n := t.Node(id); n != nil; n = t.Node(n.Parent) {
		if _, unset := n.Attributes[key+unsetSuffix]; unset {
			return "", false
		}
		if v, ok := n.Attributes[key]; ok {
			return v, true
		}
	}
	return "", false
}

// Unset reports whether key is explicitly unset on id or its nearest
// ancestor that mentions key at all.
func (t *Tree) Unset(id NodeID, key string) bool {
	for n := t.Node(id); n != nil; n = t.Node(n.Parent) {
		if _, unset := n.Attributes[key+unsetSuffix]; unset {
			return true
		}
		if _, ok := n.Attributes[key]; ok {
			return false
		}
	}
	return false
}

// Depth returns the number of ancestors of id.
func (t *Tree) Depth(id NodeID) int {
	d := 0
	for p := t.Parent(id); p != NoNode; p = t.Parent(p) {
		d++
	}
	return d
}

// Walk visits id and its descendants depth-first in document order. If fn
// returns false the node's children are skipped.
func (t *Tree) Walk(id NodeID, fn func(id NodeID, n *Node) bool) {
	n := t.Node(id)
	if n == nil {
		return
	}
	if !fn(id, n) {
		return
	}
	for _, c := range n.Blocks {
		t.Walk(c, fn)
	}
}

// Builder assembles a Tree. It is not safe for concurrent use.
type Builder struct {
	nodes []Node
}

// NewBuilder starts a tree with root as node 0.
func NewBuilder(root Node) *Builder {
	root.Parent = NoNode
	root.Blocks = nil
	return &Builder{nodes: []Node{root}}
}

// Root returns the root node's ID.
func (b *Builder) Root() NodeID { return 0 }

// Add appends n as the last child of parent and returns its ID. Any Blocks
// or Parent already set on n are ignored. Add panics if parent is unknown;
// use [Builder.TryAdd] when parent IDs come from untrusted input.
func (b *Builder) Add(parent NodeID, n Node) NodeID {
	id, err := b.TryAdd(parent, n)
	if err != nil {
		panic(err)
	}
	return id
}

// TryAdd is like Add but returns ErrUnknownParent instead of panicking.
func (b *Builder) TryAdd(parent NodeID, n Node) (NodeID, error) {
	if parent < 0 || int(parent) >= len(b.nodes) {
		return NoNode, ErrUnknownParent
	}
	id := NodeID(len(b.nodes))
	n.Parent = parent
	n.Blocks = nil
	b.nodes = append(b.nodes, n)
	b.nodes[parent].Blocks = append(b.nodes[parent].Blocks, id)
	return id, nil
}

// Tree returns the built tree. The builder must not be used afterwards.
func (b *Builder) Tree() *Tree {
	t := &Tree{nodes: b.nodes}
	b.nodes = nil
	return t
}
