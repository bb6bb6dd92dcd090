// Package doc provides the read-only document tree consumed by the renderer.
//
// # Overview
//
// A [Tree] is the hand-off format between an upstream markup parser and the
// renderer in [render]. It holds sections, paragraphs, lists, tables,
// images and delimited blocks as [Node] values in a flat arena: every node
// is addressed by a [NodeID] and records its parent's ID instead of a
// pointer, so the structure cannot form reference cycles.
//
// # Node Kinds
//
// [Kind] is a closed set of tags. Nodes whose kind the producer did not
// recognise are stored as [KindUnknown] and keep the original kind string in
// [Node.Name]; the renderer routes them through its fallback path so their
// children are still rendered.
//
// # Attributes
//
// Attribute lookup is inherited: [Tree.Lookup] checks the node itself, then
// each ancestor up to the root. A key suffixed with "!" records an explicit
// unset (the AsciiDoc ":name!:" form) and stops the walk:
//
//	t.Lookup(id, "sectnumlevels") // "2", true
//	t.Unset(id, "table-caption")  // true when "table-caption!" is set above id
//
// # Building Trees
//
// Use [Builder] to assemble a tree top-down:
//
//	b := doc.NewBuilder(doc.Node{Kind: doc.KindDocument, Title: "Guide"})
//	sec := b.Add(b.Root(), doc.Node{Kind: doc.KindSection, Level: 1, Title: "Intro"})
//	b.Add(sec, doc.Node{Kind: doc.KindParagraph, Text: "Hello"})
//	t := b.Tree()
//
// A finished tree is never mutated by the renderer and may be rendered by
// several goroutines at once.
//
// [render]: github.com/matzehuels/docsink/pkg/render
package doc
