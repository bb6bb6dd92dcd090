package render

import (
	"strconv"
	"strings"

	"github.com/matzehuels/docsink/pkg/doc"
	"github.com/matzehuels/docsink/pkg/sink"
)

// AttrSectnumLevels limits numbering to sections at or above this level.
const AttrSectnumLevels = "sectnumlevels"

func processSection(c *Context, id doc.NodeID, n *doc.Node) {
	level := n.Level
	if level < 0 {
		c.warnOnce("negative section level", "negative section level treated as 0", "level", level)
		level = 0
	}

	if level == 0 {
		// The document processor already wrote the root title.
		if !c.titled || c.rootTitle != n.Title {
			if n.Title != "" {
				c.Wrap(sink.Heading1, nil, n.Title)
			}
		}
		c.RenderChildren(n)
		return
	}

	if level > c.maxSectionLevel {
		c.warnOnce("heading level clamped", "heading level clamped",
			"level", level, "max", c.maxSectionLevel)
		level = c.maxSectionLevel
	}

	c.Open(sink.Division, sink.Attrs{"class": "sect" + strconv.Itoa(level)})
	if n.ID != "" {
		c.Open(sink.Anchor, sink.Attrs{"name": n.ID})
		c.Close(sink.Anchor)
	}
	c.Wrap(sink.HeadingElement(level+1), nil, c.sectionTitle(id, n))
	c.RenderChildren(n)
	c.Close(sink.Division)
}

// sectionTitle resolves sectnumlevels only when the section is numbered.
func (c *Context) sectionTitle(id doc.NodeID, n *doc.Node) string {
	if !n.Numbered || n.Sectnum == "" {
		return n.Title
	}
	return NumberedTitle(n, c.sectnumLevels(id))
}

// NumberedTitle returns the heading text of a section: its title, prefixed
// with Sectnum when the section is numbered and its unclamped level is at
// most sectnumlevels.
func NumberedTitle(n *doc.Node, sectnumlevels int) string {
	if !n.Numbered || n.Sectnum == "" || n.Level > sectnumlevels {
		return n.Title
	}
	return n.Sectnum + " " + n.Title
}

// ParseSectnumLevels parses a sectnumlevels value. ok is false when v is
// not an integer, in which case DefaultSectnumLevels is returned.
func ParseSectnumLevels(v string) (levels int, ok bool) {
	levels, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return DefaultSectnumLevels, false
	}
	return levels, true
}

func (c *Context) sectnumLevels(id doc.NodeID) int {
	v, ok := c.Attr(id, AttrSectnumLevels)
	if !ok {
		return DefaultSectnumLevels
	}
	levels, ok := ParseSectnumLevels(v)
	if !ok {
		c.warnOnce("invalid sectnumlevels", "invalid sectnumlevels, using default",
			"value", v, "default", DefaultSectnumLevels)
	}
	return levels
}
