// Package pkg provides the core libraries for docsink document rendering.
//
// # Overview
//
// Docsink turns a parsed AsciiDoc-style document tree into a stream of
// structural sink events (open, close, text, figure) that a sink writes
// as XHTML, Markdown or a raw event log. The pkg directory is organized
// into three areas:
//
//  1. Domain: [doc], [sink], [render], [outline]
//  2. Infrastructure: [io], [cache], [config], [observability], [errors]
//  3. Orchestration: [pipeline]
//
// # Architecture
//
// The data flow through docsink:
//
//	JSON document tree
//	         ↓
//	    [io] package (decode into an arena tree)
//	         ↓
//	    [render] package (dispatch each node to its processor)
//	         ↓
//	    [sink] package (XHTML, Markdown, Recorder)
//	         ↓
//	    HTML/Markdown/event JSON output
//
// # Quick Start
//
// Build a tree and render it to XHTML:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/matzehuels/docsink/pkg/doc"
//	    "github.com/matzehuels/docsink/pkg/render"
//	    "github.com/matzehuels/docsink/pkg/sink"
//	)
//
//	b := doc.NewBuilder(doc.Node{Kind: doc.KindDocument, Title: "Guide"})
//	sec := b.Add(0, doc.Node{Kind: doc.KindSection, Title: "Intro", Level: 1})
//	b.Add(sec, doc.Node{Kind: doc.KindParagraph, Text: "Hello"})
//
//	x := sink.NewXHTML(os.Stdout)
//	_ = render.New().Render(context.Background(), b.Tree(), x)
//	_ = x.Flush()
//
// # Main Packages
//
// [doc] - Arena-backed document tree with parent indices and inherited
// attribute lookup, including "name!" unsets.
//
// [sink] - The Sink interface and its XHTML, Markdown and recording
// implementations.
//
// [render] - Dispatcher, per-kind processors, fallback handling, caption
// numbering and section numbering.
//
// [outline] - Section outline as an indented tree, Graphviz DOT or SVG.
//
// [io] - JSON import and export of document trees.
//
// [cache] - Artifact cache with file, Redis and null backends.
//
// [config] - The .docsink.toml configuration file.
//
// [pipeline] - Render once, encode per format, with caching. Used by the
// CLI.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/render/...    # Specific package
//	go test -run Example        # Examples only
//
// [doc]: https://pkg.go.dev/github.com/matzehuels/docsink/pkg/doc
// [sink]: https://pkg.go.dev/github.com/matzehuels/docsink/pkg/sink
// [render]: https://pkg.go.dev/github.com/matzehuels/docsink/pkg/render
// [outline]: https://pkg.go.dev/github.com/matzehuels/docsink/pkg/outline
// [io]: https://pkg.go.dev/github.com/matzehuels/docsink/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/docsink/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/docsink/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/docsink/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/docsink/pkg/errors
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/docsink/pkg/pipeline
package pkg
