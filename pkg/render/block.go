package render

import (
	"github.com/matzehuels/docsink/pkg/doc"
	"github.com/matzehuels/docsink/pkg/sink"
)

// Listing attributes.
const (
	AttrLanguage       = "language"
	AttrSourceLanguage = "source-language"
	AttrLinenums       = "linenums"
	AttrLinenumsOption = "linenums-option"
)

// IsSource reports whether a listing renders as highlighted source code.
func IsSource(n *doc.Node) bool {
	lang, _ := n.Attr(AttrLanguage)
	return !doc.IsBlank(lang) || n.Style == "source"
}

func processListing(c *Context, id doc.NodeID, n *doc.Node) {
	if !IsSource(n) {
		verbatim(c, n.Text)
		return
	}

	c.Open(sink.Division, sink.Attrs{"class": "listingblock"})
	c.titleDivision(id, n, AttrListingCaption)

	attrs := sink.Attrs{"class": "prettyprint"}
	_, linenums := n.Attr(AttrLinenums)
	_, option := n.Attr(AttrLinenumsOption)
	if linenums || option {
		attrs["class"] += " linenums"
	}
	lang, _ := n.Attr(AttrLanguage)
	if doc.IsBlank(lang) {
		lang, _ = c.Attr(id, AttrSourceLanguage)
	}
	if !doc.IsBlank(lang) {
		attrs["data-lang"] = lang
	}

	c.Wrap(sink.Verbatim, attrs, n.Text)
	c.Close(sink.Division)
}

func processLiteral(c *Context, _ doc.NodeID, n *doc.Node) {
	verbatim(c, n.Text)
}

// verbatim writes a plain container around a plain preformatted block.
func verbatim(c *Context, text string) {
	c.Open(sink.Division, nil)
	c.Wrap(sink.Verbatim, nil, text)
	c.Close(sink.Division)
}

// processExample renders its children in place inside a labelled
// container.
func processExample(c *Context, id doc.NodeID, n *doc.Node) {
	c.Open(sink.Division, sink.Attrs{"class": "exampleblock"})
	c.titleDivision(id, n, AttrExampleCaption)
	c.RenderChildren(n)
	c.Close(sink.Division)
}
