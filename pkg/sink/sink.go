package sink

import (
	"maps"
	"slices"
	"strconv"
)

// Sink receives structural events for one render pass.
//
// Implementations are not required to be safe for concurrent use. Every
// method returns an error only when the destination itself fails.
type Sink interface {
	// Open starts a block construct. attrs may be nil.
	Open(e Element, attrs Attrs) error
	// Close ends the most recently opened construct of kind e.
	Close(e Element) error
	// RawText writes content that is already escaped for the target format.
	RawText(text string) error
	// FigureGraphics places an image with the given source path.
	FigureGraphics(src string, attrs Attrs) error
}

// Element names a block construct.
type Element uint8

const (
	Body Element = iota
	Division
	Anchor
	Heading1
	Heading2
	Heading3
	Heading4
	Heading5
	Heading6
	Paragraph
	List
	NumberedList
	ListItem
	NumberedListItem
	Table
	TableRow
	TableHeaderCell
	TableCell
	TableCaption
	DefinitionList
	DefinedTerm
	Definition
	Verbatim

	elementCount
)

// MaxHeadingLevel is the deepest heading any sink supports.
const MaxHeadingLevel = 6

var elementNames = [elementCount]string{
	Body:             "body",
	Division:         "division",
	Anchor:           "anchor",
	Heading1:         "heading1",
	Heading2:         "heading2",
	Heading3:         "heading3",
	Heading4:         "heading4",
	Heading5:         "heading5",
	Heading6:         "heading6",
	Paragraph:        "paragraph",
	List:             "list",
	NumberedList:     "numberedList",
	ListItem:         "listItem",
	NumberedListItem: "numberedListItem",
	Table:            "table",
	TableRow:         "tableRow",
	TableHeaderCell:  "tableHeaderCell",
	TableCell:        "tableCell",
	TableCaption:     "tableCaption",
	DefinitionList:   "definitionList",
	DefinedTerm:      "definedTerm",
	Definition:       "definition",
	Verbatim:         "verbatim",
}

// String returns the element's name, e.g. "numberedList".
func (e Element) String() string {
	if e >= elementCount {
		return "element(" + strconv.Itoa(int(e)) + ")"
	}
	return elementNames[e]
}

// ParseElement maps a name produced by String back to an Element.
func ParseElement(s string) (Element, bool) {
	for e, name := range elementNames {
		if name == s {
			return Element(e), true
		}
	}
	return 0, false
}

// HeadingElement returns the heading element for level, clamped to
// 1..MaxHeadingLevel.
func HeadingElement(level int) Element {
	level = max(1, min(level, MaxHeadingLevel))
	return Heading1 + Element(level-1)
}

// HeadingLevel returns the level of a heading element, or 0 for other
// elements.
func (e Element) HeadingLevel() int {
	if e < Heading1 || e > Heading6 {
		return 0
	}
	return int(e-Heading1) + 1
}

// Attrs holds element attributes. Sinks write them in sorted key order.
type Attrs map[string]string

// Keys returns the attribute names in sorted order.
func (a Attrs) Keys() []string {
	return slices.Sorted(maps.Keys(a))
}

// Clone returns a copy of a, or nil if a is empty.
func (a Attrs) Clone() Attrs {
	if len(a) == 0 {
		return nil
	}
	return maps.Clone(a)
}
