package render

import (
	"github.com/matzehuels/docsink/pkg/doc"
	"github.com/matzehuels/docsink/pkg/sink"
)

// processTable writes header rows as a single row of header cells, one
// row per body row, then the caption. A table without rows is still
// opened and closed.
func processTable(c *Context, id doc.NodeID, n *doc.Node) {
	c.Open(sink.Table, nil)

	if len(n.Header) > 0 {
		c.Open(sink.TableRow, nil)
		for _, row := range n.Header {
			for _, cell := range row {
				c.Wrap(sink.TableHeaderCell, nil, cell.Text)
			}
		}
		c.Close(sink.TableRow)
	}

	for _, row := range n.Body {
		c.Open(sink.TableRow, nil)
		for _, cell := range row {
			c.Wrap(sink.TableCell, nil, cell.Text)
		}
		c.Close(sink.TableRow)
	}

	if text, ok := c.captionText(id, n, AttrTableCaption); ok {
		c.Wrap(sink.TableCaption, nil, text)
	}

	c.Close(sink.Table)
}
