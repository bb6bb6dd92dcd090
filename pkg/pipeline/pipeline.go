// Package pipeline turns document trees into artifacts.
//
// This package implements the render → encode pipeline shared by the CLI
// and any other entry point, so caching and option defaults behave the
// same everywhere.
//
// # Architecture
//
// A run has two stages:
//
//  1. Render: walk the tree once into a [sink.Recorder]
//  2. Encode: replay the recorded events into one sink per format
//     (html, markdown) or serialize them directly (events)
//
// Artifacts are cached per format under a key derived from the document
// hash and every option that changes the output.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, tree, pipeline.Options{
//	    Formats:    []string{"html", "markdown"},
//	    Attributes: map[string]string{"sectnumlevels": "2"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html := result.Artifacts["html"]
//
// Outlines use the same cache:
//
//	dot, err := runner.Outline(ctx, tree, pipeline.OutlineOptions{Format: "dot"})
package pipeline

import (
	"io"
	"maps"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/docsink/pkg/buildinfo"
	"github.com/matzehuels/docsink/pkg/cache"
	"github.com/matzehuels/docsink/pkg/doc"
	errs "github.com/matzehuels/docsink/pkg/errors"
	"github.com/matzehuels/docsink/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

// Format constants for artifact formats.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatEvents   = "events"
)

// Format constants for outline formats.
const (
	OutlineText = "text"
	OutlineDOT  = "dot"
	OutlineSVG  = "svg"
)

// DefaultFormat is used when no format is requested.
const DefaultFormat = FormatHTML

// ValidFormats lists the supported artifact formats in output order.
var ValidFormats = []string{FormatHTML, FormatMarkdown, FormatEvents}

// ValidOutlineFormats lists the supported outline formats.
var ValidOutlineFormats = []string{OutlineText, OutlineDOT, OutlineSVG}

// Extension returns the file extension used for an artifact format.
func Extension(format string) string {
	switch format {
	case FormatHTML:
		return ".html"
	case FormatMarkdown:
		return ".md"
	case FormatEvents:
		return ".events.json"
	case OutlineDOT:
		return ".dot"
	case OutlineSVG:
		return ".svg"
	default:
		return ".txt"
	}
}

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	Formats         []string          `json:"formats,omitempty"`
	Attributes      map[string]string `json:"attributes,omitempty"`
	MaxSectionLevel int               `json:"max_section_level,omitempty"`
	NumberCaptions  bool              `json:"number_captions,omitempty"`
	Refresh         bool              `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger     *log.Logger        `json:"-"`
	Dispatcher *render.Dispatcher `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// OutlineOptions configures an outline run.
type OutlineOptions struct {
	Format     string            `json:"format,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Refresh    bool              `json:"refresh,omitempty"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DocHash is the content hash of the input tree.
	DocHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo reports whether the artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EventCount int
	RenderTime time.Duration
	EncodeTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a format is a known artifact format.
func ValidateFormat(format string) error {
	return errs.ValidateFormat(format, ValidFormats)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAttributes checks every attribute name.
func ValidateAttributes(attrs map[string]string) error {
	for k := range attrs {
		if err := errs.ValidateAttributeName(k); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateAttributes(o.Attributes); err != nil {
		return err
	}
	if o.MaxSectionLevel == 0 {
		o.MaxSectionLevel = render.DefaultMaxSectionLevel
	}
	if o.MaxSectionLevel < 1 || o.MaxSectionLevel > render.DefaultMaxSectionLevel {
		return errs.New(errs.ErrCodeInvalidInput, "max section level %d out of range 1..%d",
			o.MaxSectionLevel, render.DefaultMaxSectionLevel)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Validate checks the outline options and fills in defaults.
func (o *OutlineOptions) Validate() error {
	if o.Format == "" {
		o.Format = OutlineText
	}
	if err := errs.ValidateFormat(o.Format, ValidOutlineFormats); err != nil {
		return err
	}
	return ValidateAttributes(o.Attributes)
}

// RendererOptions returns the render options the pipeline uses.
func (o *Options) RendererOptions() []render.Option {
	return []render.Option{
		render.WithLogger(o.Logger),
		render.WithDispatcher(o.Dispatcher),
		render.WithMaxSectionLevel(o.MaxSectionLevel),
		render.WithAttributes(o.Attributes),
		render.WithCaptionNumbering(o.NumberCaptions),
	}
}

// ArtifactKeyOpts returns cache key options for one format. The build
// version is part of the key so upgrades never serve stale output.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:          format,
		MaxSectionLevel: o.MaxSectionLevel,
		NumberCaptions:  o.NumberCaptions,
		Attributes:      maps.Clone(o.Attributes),
		Version:         buildinfo.Version,
	}
}

// Cacheable reports whether results of these options may be cached. A
// custom dispatcher changes output in ways the key cannot capture.
func (o *Options) Cacheable() bool {
	return o.Dispatcher == nil
}

// OutlineKeyOpts returns cache key options for an outline.
func (o *OutlineOptions) OutlineKeyOpts() cache.OutlineKeyOpts {
	return cache.OutlineKeyOpts{
		Format:     o.Format,
		Attributes: maps.Clone(o.Attributes),
		Version:    buildinfo.Version,
	}
}

// countNodes returns the number of nodes reachable from the root.
func countNodes(t *doc.Tree) int {
	n := 0
	t.Walk(t.Root(), func(doc.NodeID, *doc.Node) bool {
		n++
		return true
	})
	return n
}
