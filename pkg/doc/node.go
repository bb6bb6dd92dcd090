package doc

import "strings"

// Kind identifies the structural type of a node.
type Kind uint8

const (
	// KindUnknown marks a node the producer could not map to a known kind.
	// Node.Name carries the original kind string.
	KindUnknown Kind = iota
	KindDocument
	KindSection
	KindPreamble
	KindParagraph
	KindOrderedList
	KindUnorderedList
	KindListItem
	KindDescriptionList
	KindDescriptionEntry
	KindTable
	KindImage
	KindListing
	KindLiteral
	KindExample

	kindCount
)

// KindCount is the number of kinds, including KindUnknown. It sizes lookup
// tables indexed by Kind.
const KindCount = int(kindCount)

var kindNames = [kindCount]string{
	KindUnknown:          "unknown",
	KindDocument:         "document",
	KindSection:          "section",
	KindPreamble:         "preamble",
	KindParagraph:        "paragraph",
	KindOrderedList:      "orderedList",
	KindUnorderedList:    "unorderedList",
	KindListItem:         "listItem",
	KindDescriptionList:  "descriptionList",
	KindDescriptionEntry: "descriptionEntry",
	KindTable:            "table",
	KindImage:            "image",
	KindListing:          "listing",
	KindLiteral:          "literal",
	KindExample:          "example",
}

// String returns the wire name of the kind (e.g. "orderedList").
func (k Kind) String() string {
	if k >= kindCount {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// ParseKind maps a wire name to a Kind. Unrecognised names return
// KindUnknown and false.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if k != int(KindUnknown) && name == s {
			return Kind(k), true
		}
	}
	return KindUnknown, false
}

// Kinds returns every known kind except KindUnknown, in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, KindCount-1)
	for k := KindDocument; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// NodeID addresses a node inside its Tree.
type NodeID int32

// NoNode is the parent of the root.
const NoNode NodeID = -1

// Cell is a single table cell with inline text already resolved for the
// target format.
type Cell struct {
	Text string
}

// Row is an ordered sequence of cells.
type Row []Cell

// Node is one element of the document tree. Which fields are meaningful
// depends on Kind; unused fields are left at their zero value.
type Node struct {
	Kind Kind
	// Name is the producer's kind string for KindUnknown nodes.
	Name string

	ID      string
	Title   string
	Caption string // auto-generated label prefix, e.g. "Table 1."
	Level   int
	Style   string

	Attributes map[string]string

	// Text is the resolved inline content of paragraphs, list items,
	// description entries and the raw content of verbatim blocks.
	Text string

	Marker string // list item marker ("*", "-", ".", "1.")
	Term   string // description entry term

	Target string // image target
	Alt    string // image alt text

	Sectnum  string // precomputed section number, e.g. "1.2.3"
	Numbered bool

	Header []Row
	Body   []Row

	Parent NodeID
	Blocks []NodeID
}

// KindName returns the name used in diagnostics: Name for unknown nodes,
// the kind's wire name otherwise.
func (n *Node) KindName() string {
	if n.Kind == KindUnknown && n.Name != "" {
		return n.Name
	}
	return n.Kind.String()
}

// Attr returns the node's own attribute without inheritance.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.Attributes[key]
	return v, ok
}

// HasBlocks reports whether the node has children.
func (n *Node) HasBlocks() bool { return len(n.Blocks) > 0 }

// IsBlank reports whether s is empty or only whitespace.
func IsBlank(s string) bool { return strings.TrimSpace(s) == "" }
