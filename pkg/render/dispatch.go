package render

import (
	"github.com/matzehuels/docsink/pkg/doc"
	"github.com/matzehuels/docsink/pkg/observability"
)

// Processor renders one node kind. It may recurse into children through
// the Context.
type Processor interface {
	Process(c *Context, id doc.NodeID, n *doc.Node)
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(c *Context, id doc.NodeID, n *doc.Node)

// Process calls f.
func (f ProcessorFunc) Process(c *Context, id doc.NodeID, n *doc.Node) { f(c, id, n) }

// Dispatcher maps node kinds to processors. Each kind has at most one
// processor; kinds without one, and KindUnknown nodes, are handled by the
// fallback.
//
// Configure a Dispatcher before rendering. It must not be modified while
// renders are in flight.
type Dispatcher struct {
	processors [doc.KindCount]Processor
	fallback   Processor
}

// NewDispatcher returns a dispatcher with no processors and the default
// fallback.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{fallback: Fallback{}}
}

// NewDefaultDispatcher returns a dispatcher with every built-in processor
// registered.
func NewDefaultDispatcher() *Dispatcher {
	d := NewDispatcher()
	d.Register(doc.KindDocument, ProcessorFunc(processDocument))
	d.Register(doc.KindPreamble, ProcessorFunc(processPreamble))
	d.Register(doc.KindParagraph, ProcessorFunc(processParagraph))
	d.Register(doc.KindSection, ProcessorFunc(processSection))
	d.Register(doc.KindOrderedList, ProcessorFunc(processList))
	d.Register(doc.KindUnorderedList, ProcessorFunc(processList))
	d.Register(doc.KindListItem, ProcessorFunc(processListItem))
	d.Register(doc.KindDescriptionList, ProcessorFunc(processDescriptionList))
	d.Register(doc.KindDescriptionEntry, ProcessorFunc(processDescriptionEntry))
	d.Register(doc.KindTable, ProcessorFunc(processTable))
	d.Register(doc.KindImage, ProcessorFunc(processImage))
	d.Register(doc.KindListing, ProcessorFunc(processListing))
	d.Register(doc.KindLiteral, ProcessorFunc(processLiteral))
	d.Register(doc.KindExample, ProcessorFunc(processExample))
	return d
}

// Register sets the processor for kind, replacing any previous one.
// Registering for KindUnknown or passing a nil processor removes the
// entry, so the kind falls back.
func (d *Dispatcher) Register(kind doc.Kind, p Processor) {
	if int(kind) >= doc.KindCount {
		return
	}
	if kind == doc.KindUnknown {
		p = nil
	}
	d.processors[kind] = p
}

// Processor returns the processor registered for kind.
func (d *Dispatcher) Processor(kind doc.Kind) (Processor, bool) {
	if int(kind) >= doc.KindCount || d.processors[kind] == nil {
		return nil, false
	}
	return d.processors[kind], true
}

// SetFallback replaces the fallback processor. nil restores the default.
func (d *Dispatcher) SetFallback(p Processor) {
	if p == nil {
		p = Fallback{}
	}
	d.fallback = p
}

// Clone returns an independent copy, e.g. to customise the defaults:
//
//	d := render.NewDefaultDispatcher().Clone()
//	d.Register(doc.KindImage, myImageProcessor)
func (d *Dispatcher) Clone() *Dispatcher {
	cp := *d
	return &cp
}

// Render selects the processor for id's kind and runs it.
func (d *Dispatcher) Render(c *Context, id doc.NodeID) {
	n := c.Tree.Node(id)
	if n == nil {
		c.Logger.Warn("skipping dangling node reference", "id", id)
		return
	}
	if p, ok := d.Processor(n.Kind); ok {
		p.Process(c, id, n)
		return
	}
	d.fallback.Process(c, id, n)
}

// Fallback handles nodes no processor claims: it logs the kind and renders
// the children so their content survives.
type Fallback struct{}

// Process implements Processor.
func (Fallback) Process(c *Context, _ doc.NodeID, n *doc.Node) {
	c.Logger.Warn("no processor for node kind, rendering children only", "kind", n.KindName())
	observability.Render().OnFallback(c.ctx, n.KindName())
	c.RenderChildren(n)
}
