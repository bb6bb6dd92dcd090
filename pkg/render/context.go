package render

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/docsink/pkg/doc"
	"github.com/matzehuels/docsink/pkg/observability"
	"github.com/matzehuels/docsink/pkg/sink"
)

// Context is the state of one render pass. Processors use it to emit
// events, resolve attributes and render children.
//
// Emission is sticky: once the sink reports an error, every later call is
// a no-op and Err returns that error.
type Context struct {
	Tree   *doc.Tree
	Logger *log.Logger

	ctx        context.Context
	sink       sink.Sink
	err        error
	dispatcher *Dispatcher

	maxSectionLevel int
	defaults        map[string]string
	numberCaptions  bool

	counters  [doc.KindCount]int
	warned    map[string]bool
	rootTitle string
	titled    bool
}

func newContext(ctx context.Context, r *Renderer, t *doc.Tree, s sink.Sink) *Context {
	return &Context{
		Tree:            t,
		Logger:          r.logger,
		ctx:             ctx,
		sink:            s,
		dispatcher:      r.dispatcher,
		maxSectionLevel: r.maxSectionLevel,
		defaults:        r.attributes,
		numberCaptions:  r.numberCaptions,
		warned:          make(map[string]bool),
	}
}

// Err returns the first sink error of the pass.
func (c *Context) Err() error { return c.err }

// Render dispatches one node.
func (c *Context) Render(id doc.NodeID) {
	if c.err != nil {
		return
	}
	c.dispatcher.Render(c, id)
}

// RenderChildren dispatches each child of n in document order.
func (c *Context) RenderChildren(n *doc.Node) {
	for _, child := range n.Blocks {
		if c.err != nil {
			return
		}
		c.Render(child)
	}
}

// Open emits an open event.
func (c *Context) Open(e sink.Element, attrs sink.Attrs) {
	if c.err == nil {
		c.err = c.sink.Open(e, attrs)
	}
}

// Close emits a close event.
func (c *Context) Close(e sink.Element) {
	if c.err == nil {
		c.err = c.sink.Close(e)
	}
}

// Text emits raw text.
func (c *Context) Text(s string) {
	if c.err == nil {
		c.err = c.sink.RawText(s)
	}
}

// Figure emits an image.
func (c *Context) Figure(src string, attrs sink.Attrs) {
	if c.err == nil {
		c.err = c.sink.FigureGraphics(src, attrs)
	}
}

// Wrap emits e around text: open, raw text, close.
func (c *Context) Wrap(e sink.Element, attrs sink.Attrs, text string) {
	c.Open(e, attrs)
	c.Text(text)
	c.Close(e)
}

// Attr resolves key for id: the node's ancestor chain first, then the
// renderer's default attributes. An explicit unset in the tree hides the
// defaults.
func (c *Context) Attr(id doc.NodeID, key string) (string, bool) {
	if v, ok := c.Tree.Lookup(id, key); ok {
		return v, true
	}
	if c.Tree.Unset(id, key) {
		return "", false
	}
	if _, unset := c.defaults[key+"!"]; unset {
		return "", false
	}
	v, ok := c.defaults[key]
	return v, ok
}

// Unset reports whether key is explicitly unset for id, either in the
// tree or, when the tree does not mention key, in the default attributes.
func (c *Context) Unset(id doc.NodeID, key string) bool {
	if c.Tree.Unset(id, key) {
		return true
	}
	if _, ok := c.Tree.Lookup(id, key); ok {
		return false
	}
	_, unset := c.defaults[key+"!"]
	return unset
}

// next increments and returns the pass counter for kind.
func (c *Context) next(kind doc.Kind) int {
	c.counters[kind]++
	return c.counters[kind]
}

// warnOnce logs msg the first time key is seen in this pass and reports
// the condition to the observability hooks.
func (c *Context) warnOnce(key, msg string, keyvals ...any) {
	if c.warned[key] {
		return
	}
	c.warned[key] = true
	c.Logger.Warn(msg, keyvals...)
	observability.Render().OnDegrade(c.ctx, key)
}
