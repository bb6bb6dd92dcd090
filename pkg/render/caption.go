package render

import (
	"strconv"

	"github.com/matzehuels/docsink/pkg/doc"
	"github.com/matzehuels/docsink/pkg/sink"
)

// Label attributes. Unsetting one ("table-caption!") disables captions
// for its kind. With WithCaptionNumbering, a set label also numbers blocks
// that carry no precomputed caption as "<label> N.".
const (
	AttrTableCaption   = "table-caption"
	AttrListingCaption = "listing-caption"
	AttrExampleCaption = "example-caption"
	AttrFigureCaption  = "figure-caption"
)

// ComposeCaption joins a label such as "Table 1." and a title. It returns
// "" when title is empty and title alone when label is empty.
func ComposeCaption(label, title string) string {
	switch {
	case title == "":
		return ""
	case label == "":
		return title
	default:
		return label + " " + title
	}
}

// captionText resolves the caption for a titled block. ok is false when
// the block gets no caption element at all: it has no title, or captions
// are disabled for it or its kind.
//
// The label is the node's "caption" attribute or its precomputed Caption.
// An empty Caption means no label. Only with caption numbering enabled is
// a missing label synthesised from the per-kind counter, which counts
// every captioned block so it stays in step with precomputed labels.
func (c *Context) captionText(id doc.NodeID, n *doc.Node, labelAttr string) (text string, ok bool) {
	if n.Title == "" || c.Unset(id, labelAttr) {
		return "", false
	}
	own, hasOwn := n.Attr("caption")
	if hasOwn && own == "" {
		return "", false
	}

	prefix, hasPrefix := c.Attr(id, labelAttr)
	numbered := c.numberCaptions && hasPrefix && !doc.IsBlank(prefix)
	var seq int
	if numbered {
		seq = c.next(n.Kind)
	}

	var label string
	switch {
	case hasOwn:
		label = own
	case n.Caption != "":
		label = n.Caption
	case numbered:
		label = prefix + " " + strconv.Itoa(seq) + "."
	}
	return ComposeCaption(label, n.Title), true
}

// titleDivision emits the caption of a block as a title division.
func (c *Context) titleDivision(id doc.NodeID, n *doc.Node, labelAttr string) {
	if text, ok := c.captionText(id, n, labelAttr); ok {
		c.Wrap(sink.Division, sink.Attrs{"class": "title"}, text)
	}
}
