// Package io provides JSON import and export for document trees.
//
// # Overview
//
// The renderer consumes a fully built [doc.Tree]. This package is the
// hand-off point from whatever produced the tree: a parser writes nested
// JSON, docsink reads it back into the flat arena used for rendering.
//
// # JSON Format
//
// A document is one nested object. Every node has a "kind"; children are
// listed in "blocks" in document order:
//
//	{
//	  "kind": "document",
//	  "title": "Guide",
//	  "attributes": {"sectnumlevels": "2", "imagesdir": "images"},
//	  "blocks": [
//	    {
//	      "kind": "section", "id": "_intro", "title": "Intro", "level": 1,
//	      "sectnum": "1.", "numbered": true,
//	      "blocks": [{"kind": "paragraph", "text": "Hello"}]
//	    },
//	    {"kind": "table", "title": "Sizes", "header": [["A", "B"]], "body": [["1", "2"]]}
//	  ]
//	}
//
// # Node Fields
//
// Required:
//   - kind: one of the [doc.Kind] names ("section", "orderedList", ...)
//
// Optional, meaningful per kind:
//   - id, title, caption, level, style, attributes, blocks
//   - text: resolved inline content or verbatim block content
//   - marker: list item marker ("*", "-", ".", "1.")
//   - term: description entry term
//   - target, alt: image
//   - sectnum, numbered: section numbering
//   - header, body: table rows as arrays of cell texts
//
// Kind names this version does not know are kept: the node is imported as
// [doc.KindUnknown] with the name preserved, and rendering falls back to
// its children.
//
// Attribute keys ending in "!" mark an explicit unset, e.g.
// {"table-caption!": ""} disables table captions below that node.
//
// # Round-Trip
//
// [WriteJSON] emits the same format, so import, export and re-import
// produce identical trees.
//
// [doc.Tree]: github.com/matzehuels/docsink/pkg/doc.Tree
// [doc.Kind]: github.com/matzehuels/docsink/pkg/doc.Kind
// [doc.KindUnknown]: github.com/matzehuels/docsink/pkg/doc.KindUnknown
package io
