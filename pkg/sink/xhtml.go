package sink

import (
	"bufio"
	"html"
	"io"
)

var xhtmlTags = [elementCount]string{
	Body:             "div",
	Division:         "div",
	Anchor:           "a",
	Heading1:         "h1",
	Heading2:         "h2",
	Heading3:         "h3",
	Heading4:         "h4",
	Heading5:         "h5",
	Heading6:         "h6",
	Paragraph:        "p",
	List:             "ul",
	NumberedList:     "ol",
	ListItem:         "li",
	NumberedListItem: "li",
	Table:            "table",
	TableRow:         "tr",
	TableHeaderCell:  "th",
	TableCell:        "td",
	TableCaption:     "caption",
	DefinitionList:   "dl",
	DefinedTerm:      "dt",
	Definition:       "dd",
	Verbatim:         "pre",
}

// Elements followed by a line break when closed. Inline-level content
// (anchors, cells, terms) stays on one line.
var xhtmlBreakAfter = [elementCount]bool{
	Body:             true,
	Division:         true,
	Heading1:         true,
	Heading2:         true,
	Heading3:         true,
	Heading4:         true,
	Heading5:         true,
	Heading6:         true,
	Paragraph:        true,
	List:             true,
	NumberedList:     true,
	ListItem:         true,
	NumberedListItem: true,
	Table:            true,
	TableRow:         true,
	TableCaption:     true,
	DefinitionList:   true,
	Definition:       true,
	Verbatim:         true,
}

// XHTMLOption configures an XHTML sink.
type XHTMLOption func(*XHTML)

// WithCompact disables the line breaks written after block elements.
func WithCompact() XHTMLOption { return func(x *XHTML) { x.compact = true } }

// WithBodyClass sets the class written on the Body element when the
// renderer supplies none. The default is "body".
func WithBodyClass(class string) XHTMLOption { return func(x *XHTML) { x.bodyClass = class } }

// XHTML writes events as a well-formed XHTML fragment. Text passed to
// RawText is written verbatim; attribute values are escaped.
//
// Call Flush when done; the sink buffers its output.
type XHTML struct {
	w         *bufio.Writer
	err       error
	compact   bool
	bodyClass string
}

// NewXHTML returns an XHTML sink writing to w.
func NewXHTML(w io.Writer, opts ...XHTMLOption) *XHTML {
	x := &XHTML{w: bufio.NewWriter(w), bodyClass: "body"}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

func (x *XHTML) Open(e Element, attrs Attrs) error {
	if e >= elementCount {
		return x.err
	}
	if e == Body && attrs["class"] == "" && x.bodyClass != "" {
		attrs = withAttr(attrs, "class", x.bodyClass)
	}
	x.write("<" + xhtmlTags[e])
	x.writeAttrs(attrs)
	x.write(">")
	return x.err
}

func (x *XHTML) Close(e Element) error {
	if e >= elementCount {
		return x.err
	}
	x.write("</" + xhtmlTags[e] + ">")
	if xhtmlBreakAfter[e] && !x.compact {
		x.write("\n")
	}
	return x.err
}

func (x *XHTML) RawText(text string) error {
	x.write(text)
	return x.err
}

func (x *XHTML) FigureGraphics(src string, attrs Attrs) error {
	x.write(`<img src="` + html.EscapeString(src) + `"`)
	x.writeAttrs(attrs)
	x.write("/>")
	return x.err
}

// Flush writes buffered output to the underlying writer.
func (x *XHTML) Flush() error {
	if x.err != nil {
		return x.err
	}
	x.err = x.w.Flush()
	return x.err
}

func (x *XHTML) writeAttrs(attrs Attrs) {
	for _, k := range attrs.Keys() {
		x.write(" " + k + `="` + html.EscapeString(attrs[k]) + `"`)
	}
}

func (x *XHTML) write(s string) {
	if x.err != nil {
		return
	}
	_, x.err = x.w.WriteString(s)
}

func withAttr(a Attrs, k, v string) Attrs {
	out := make(Attrs, len(a)+1)
	for key, val := range a {
		out[key] = val
	}
	out[k] = v
	return out
}

var _ Sink = (*XHTML)(nil)
