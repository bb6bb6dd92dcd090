package render

import (
	"github.com/matzehuels/docsink/pkg/doc"
	"github.com/matzehuels/docsink/pkg/sink"
)

func processDocument(c *Context, _ doc.NodeID, n *doc.Node) {
	c.Open(sink.Body, nil)
	if n.Title != "" {
		c.Wrap(sink.Heading1, nil, n.Title)
		c.rootTitle, c.titled = n.Title, true
	}
	c.RenderChildren(n)
	c.Close(sink.Body)
}

// Preamble groups the content before the first section.
func processPreamble(c *Context, _ doc.NodeID, n *doc.Node) {
	c.RenderChildren(n)
}

func processParagraph(c *Context, _ doc.NodeID, n *doc.Node) {
	c.Wrap(sink.Paragraph, nil, n.Text)
}
