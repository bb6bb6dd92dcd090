package render

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/docsink/pkg/doc"
	"github.com/matzehuels/docsink/pkg/sink"
)

// AttrImagesDir is the inherited attribute prefixed to image targets.
const AttrImagesDir = "imagesdir"

// ImagePath joins imagesdir and target with exactly one separator. A blank
// imagesdir leaves target untouched; the target is never checked on disk.
func ImagePath(imagesdir, target string) string {
	if doc.IsBlank(imagesdir) {
		return target
	}
	if strings.HasSuffix(imagesdir, "/") || strings.HasSuffix(imagesdir, `\`) {
		return imagesdir + target
	}
	return imagesdir + string(filepath.Separator) + target
}

func processImage(c *Context, id doc.NodeID, n *doc.Node) {
	dir, _ := c.Attr(id, AttrImagesDir)

	var attrs sink.Attrs
	if !doc.IsBlank(n.Alt) {
		attrs = sink.Attrs{"alt": n.Alt}
	}

	if n.Title == "" {
		c.Figure(ImagePath(dir, n.Target), attrs)
		return
	}

	c.Open(sink.Division, sink.Attrs{"class": "imageblock"})
	c.Figure(ImagePath(dir, n.Target), attrs)
	c.titleDivision(id, n, AttrFigureCaption)
	c.Close(sink.Division)
}
