package render

import (
	"strings"

	"github.com/matzehuels/docsink/pkg/doc"
	"github.com/matzehuels/docsink/pkg/sink"
)

// ItemKind is the rendering of a list item decided from its marker.
type ItemKind uint8

const (
	ItemUnordered ItemKind = iota
	ItemOrdered
	ItemDescription
)

func (k ItemKind) String() string {
	switch k {
	case ItemOrdered:
		return "ordered"
	case ItemDescription:
		return "description"
	default:
		return "unordered"
	}
}

// ClassifyItem decides how a list item renders from its marker and the
// kind of its parent.
//
//   - "*" or "-" prefix: unordered
//   - "." prefix or a leading digit: ordered
//   - other markers ending in "." or ")" ("a.", "iv)"): ordered
//   - empty marker: ordered in an ordered list, a description entry in a
//     description list, unordered elsewhere
func ClassifyItem(marker string, parent doc.Kind) ItemKind {
	m := strings.TrimSpace(marker)
	if m == "" {
		switch parent {
		case doc.KindOrderedList:
			return ItemOrdered
		case doc.KindDescriptionList:
			return ItemDescription
		default:
			return ItemUnordered
		}
	}
	switch c := m[0]; {
	case c == '*' || c == '-':
		return ItemUnordered
	case c == '.' || ('0' <= c && c <= '9'):
		return ItemOrdered
	}
	if strings.HasSuffix(m, ".") || strings.HasSuffix(m, ")") {
		return ItemOrdered
	}
	return ItemUnordered
}

func processList(c *Context, _ doc.NodeID, n *doc.Node) {
	if !n.HasBlocks() {
		return
	}
	e := sink.List
	if n.Kind == doc.KindOrderedList {
		e = sink.NumberedList
	}
	c.Open(e, nil)
	c.RenderChildren(n)
	c.Close(e)
}

func processListItem(c *Context, id doc.NodeID, n *doc.Node) {
	var parent doc.Kind
	if p := c.Tree.Node(n.Parent); p != nil {
		parent = p.Kind
	}

	e := sink.ListItem
	switch ClassifyItem(n.Marker, parent) {
	case ItemOrdered:
		e = sink.NumberedListItem
	case ItemDescription:
		processDescriptionEntry(c, id, n)
		return
	}

	c.Open(e, nil)
	c.Text(n.Text)
	c.RenderChildren(n)
	c.Close(e)
}

func processDescriptionList(c *Context, _ doc.NodeID, n *doc.Node) {
	if !n.HasBlocks() {
		return
	}
	c.Open(sink.DefinitionList, nil)
	for _, child := range n.Blocks {
		entry := c.Tree.Node(child)
		switch {
		case entry == nil:
			c.Logger.Warn("skipping dangling node reference", "id", child)
		case entry.Kind == doc.KindDescriptionEntry || entry.Kind == doc.KindListItem:
			c.descriptionPair(entry)
		default:
			c.Logger.Warn("unexpected node in description list", "kind", entry.KindName())
			c.Render(child)
		}
	}
	c.Close(sink.DefinitionList)
}

// processDescriptionEntry handles an entry dispatched on its own, outside
// a description list, by giving it a list of its own.
func processDescriptionEntry(c *Context, _ doc.NodeID, n *doc.Node) {
	c.Open(sink.DefinitionList, nil)
	c.descriptionPair(n)
	c.Close(sink.DefinitionList)
}

// descriptionPair emits the term and definition of one entry. When the
// entry has nested blocks its text is already part of them, so only the
// blocks are rendered.
func (c *Context) descriptionPair(n *doc.Node) {
	c.Wrap(sink.DefinedTerm, nil, n.Term)
	c.Open(sink.Definition, nil)
	if n.HasBlocks() {
		c.RenderChildren(n)
	} else {
		c.Text(n.Text)
	}
	c.Close(sink.Definition)
}
