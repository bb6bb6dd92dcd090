package render

import (
	"context"
	"io"
	"maps"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/docsink/pkg/doc"
	"github.com/matzehuels/docsink/pkg/observability"
	"github.com/matzehuels/docsink/pkg/sink"
)

const (
	// DefaultMaxSectionLevel is the deepest section level rendered as its
	// own heading. Level 5 maps to the sink's sixth heading level.
	DefaultMaxSectionLevel = sink.MaxHeadingLevel - 1

	// DefaultSectnumLevels applies when "sectnumlevels" is absent or invalid.
	DefaultSectnumLevels = 3
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger for degradation warnings. The default
// discards all output.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithDispatcher replaces the built-in dispatcher.
func WithDispatcher(d *Dispatcher) Option {
	return func(r *Renderer) {
		if d != nil {
			r.dispatcher = d
		}
	}
}

// WithMaxSectionLevel sets the deepest section level the target supports.
// Values outside 1..DefaultMaxSectionLevel are clamped into that range.
func WithMaxSectionLevel(n int) Option {
	return func(r *Renderer) {
		r.maxSectionLevel = max(1, min(n, DefaultMaxSectionLevel))
	}
}

// WithAttributes supplies default attributes consulted after a node's own
// ancestor chain. Attributes in the tree take precedence; a "key!" entry
// unsets key for the whole document unless the tree sets it.
func WithAttributes(attrs map[string]string) Option {
	return func(r *Renderer) {
		r.attributes = maps.Clone(attrs)
	}
}

// WithCaptionNumbering numbers titled tables, listings, examples and
// images that arrive without a precomputed caption, using the kind's label
// attribute ("Table 3."). Off by default: the tree's Caption is used as
// is and an empty Caption means no label.
func WithCaptionNumbering(on bool) Option {
	return func(r *Renderer) {
		r.numberCaptions = on
	}
}

// Renderer renders document trees. It holds only configuration; see the
// package documentation for concurrency guarantees.
type Renderer struct {
	dispatcher      *Dispatcher
	logger          *log.Logger
	maxSectionLevel int
	attributes      map[string]string
	numberCaptions  bool
}

// New creates a Renderer with the built-in processors.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		dispatcher:      NewDefaultDispatcher(),
		logger:          log.NewWithOptions(io.Discard, log.Options{}),
		maxSectionLevel: DefaultMaxSectionLevel,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dispatcher returns the renderer's dispatcher.
func (r *Renderer) Dispatcher() *Dispatcher { return r.dispatcher }

// Render walks t from its root and writes events to s. ctx is passed to
// observability hooks only; a render pass is not cancellable.
//
// Render returns nil for an empty tree. If s reports an error, no further
// events are sent and that error is returned as is.
func (r *Renderer) Render(ctx context.Context, t *doc.Tree, s sink.Sink) error {
	root := t.Root()
	if root == doc.NoNode {
		return nil
	}

	hooks := observability.Render()
	hooks.OnPassStart(ctx, t.Len())
	start := time.Now()

	c := newContext(ctx, r, t, s)
	c.Render(root)

	hooks.OnPassComplete(ctx, t.Len(), time.Since(start), c.err)
	return c.err
}
