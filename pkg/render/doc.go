// Package render walks a [doc.Tree] and emits structural events to a
// [sink.Sink].
//
// # Overview
//
// A [Renderer] owns a [Dispatcher], which maps every [doc.Kind] to exactly
// one [Processor]. Rendering is a depth-first walk in document order:
//
//	Renderer.Render -> Dispatcher.Render(node) -> Processor.Process(node)
//	                                             -> sink calls
//	                                             -> Context.Render(child) ...
//
// The dispatcher is an index keyed by kind, so two processors can never
// compete for the same node. Nodes of [doc.KindUnknown], and kinds with no
// registered processor, go to the fallback processor, which logs the kind
// and renders the node's children so descendant content is never dropped.
//
// # Built-in Processors
//
//   - document, preamble, paragraph
//   - section: numbering (sectnum, sectnumlevels), anchors, heading clamping
//   - orderedList, unorderedList, listItem (classified by marker)
//   - descriptionList, descriptionEntry
//   - table: header/body rows and caption
//   - image: imagesdir path resolution and alt text
//   - listing, literal, example
//
// # Captions
//
// Tables, source listings, examples and titled images share one caption
// rule, [ComposeCaption]. Labels come from the node's own "caption"
// attribute or its precomputed Caption; an empty Caption means the title
// stands alone. [WithCaptionNumbering] adds a per-pass counter driven by
// the kind's label attribute ("table-caption", "listing-caption",
// "example-caption", "figure-caption") for blocks without a label.
//
// # Degradation
//
// Unknown kinds, unparseable attributes and sections deeper than the
// target format supports are logged as warnings and rendered as well as
// possible. They never fail a render. The only error [Renderer.Render]
// returns is the first error reported by the sink, unchanged.
//
// # Concurrency
//
// A Renderer and its Dispatcher are read-only after construction and may
// be shared by goroutines rendering different trees into different sinks.
// All per-pass state lives in a [Context].
//
// [doc.Tree]: github.com/matzehuels/docsink/pkg/doc.Tree
// [doc.Kind]: github.com/matzehuels/docsink/pkg/doc.Kind
// [doc.KindUnknown]: github.com/matzehuels/docsink/pkg/doc.KindUnknown
// [sink.Sink]: github.com/matzehuels/docsink/pkg/sink.Sink
package render
