// Package sink defines the event interface the renderer writes to, and the
// output formats that consume those events.
//
// # Overview
//
// A [Sink] receives a flat, ordered stream of structural events produced
// by walking a document tree: paired [Sink.Open]/[Sink.Close] calls for
// block constructs, [Sink.RawText] for content that is already resolved for
// the destination format, and [Sink.FigureGraphics] for images. Calls are
// balanced and arrive in document order from a single goroutine.
//
// This package provides:
//
//   - [Recorder]: keeps the events in memory (tests, JSON event dumps)
//   - [XHTML]: writes a well-formed XHTML fragment
//   - [Markdown]: writes Markdown text
//
// Basic usage:
//
//	var buf bytes.Buffer
//	s := sink.NewXHTML(&buf, sink.WithIndent("  "))
//	if err := renderer.Render(tree, s); err != nil {
//	    return err
//	}
//
// # Errors
//
// Sinks that write to an [io.Writer] remember the first write error and
// return it from every later call, so the renderer stops at the first
// failure and hands it to its caller unchanged.
//
// # Adding New Formats
//
// To add a new output format:
//
//  1. Implement [Sink] (four methods)
//  2. Map every [Element] to the target construct; unknown elements
//     should be tolerated so newer renderers keep working
//  3. Register the format in pkg/pipeline for CLI support
package sink
