package outline

import (
	"github.com/xlab/treeprint"

	"github.com/matzehuels/docsink/pkg/doc"
	"github.com/matzehuels/docsink/pkg/render"
)

// Options configures outline extraction.
type Options struct {
	// Attributes are defaults consulted after the tree, as in
	// render.WithAttributes. Only "sectnumlevels" is used.
	Attributes map[string]string
}

// Entry is one section of the outline. The root entry stands for the
// whole document.
type Entry struct {
	ID       doc.NodeID
	Level    int
	Title    string // numbered heading text
	Anchor   string
	Children []*Entry
}

// Len returns the number of entries below e.
func (e *Entry) Len() int {
	n := len(e.Children)
	for _, c := range e.Children {
		n += c.Len()
	}
	return n
}

// Build extracts the section outline of t. It returns nil for an empty
// tree.
func Build(t *doc.Tree, opts Options) *Entry {
	root := t.Root()
	if root == doc.NoNode {
		return nil
	}
	rn := t.Node(root)
	out := &Entry{ID: root, Level: rn.Level, Title: rn.Title, Anchor: rn.ID}
	if rn.Kind == doc.KindSection {
		out.Title = render.NumberedTitle(rn, sectnumLevels(t, root, opts))
	}
	for _, c := range rn.Blocks {
		collect(t, c, out, opts)
	}
	return out
}

func collect(t *doc.Tree, id doc.NodeID, parent *Entry, opts Options) {
	n := t.Node(id)
	if n == nil {
		return
	}
	if n.Kind == doc.KindSection {
		e := &Entry{
			ID:     id,
			Level:  n.Level,
			Title:  render.NumberedTitle(n, sectnumLevels(t, id, opts)),
			Anchor: n.ID,
		}
		parent.Children = append(parent.Children, e)
		parent = e
	}
	for _, c := range n.Blocks {
		collect(t, c, parent, opts)
	}
}

func sectnumLevels(t *doc.Tree, id doc.NodeID, opts Options) int {
	v, ok := t.Lookup(id, render.AttrSectnumLevels)
	if !ok && !t.Unset(id, render.AttrSectnumLevels) {
		v, ok = opts.Attributes[render.AttrSectnumLevels]
	}
	if !ok {
		return render.DefaultSectnumLevels
	}
	levels, _ := render.ParseSectnumLevels(v)
	return levels
}

// Text renders the outline as an indented tree.
func Text(root *Entry) string {
	if root == nil {
		return ""
	}
	title := root.Title
	if title == "" {
		title = "(untitled)"
	}
	tree := treeprint.NewWithRoot(title)
	addEntries(tree, root.Children)
	return tree.String()
}

func addEntries(tree treeprint.Tree, entries []*Entry) {
	for _, e := range entries {
		if len(e.Children) == 0 {
			tree.AddNode(e.Title)
			continue
		}
		addEntries(tree.AddBranch(e.Title), e.Children)
	}
}
