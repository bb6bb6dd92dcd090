package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/docsink/pkg/doc"
	"github.com/matzehuels/docsink/pkg/outline"
	"github.com/matzehuels/docsink/pkg/render"
	"github.com/matzehuels/docsink/pkg/sink"
)

// Render generates artifacts in the requested formats. The tree is walked
// once; every format replays the same events.
func Render(ctx context.Context, t *doc.Tree, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	rec, err := Record(ctx, t, opts)
	if err != nil {
		return nil, err
	}
	return Encode(ctx, rec, opts.Formats)
}

// Record renders t into a fresh recorder.
func Record(ctx context.Context, t *doc.Tree, opts Options) (*sink.Recorder, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if t.Root() == doc.NoNode {
		return nil, doc.ErrEmptyTree
	}

	rec := sink.NewRecorder()
	if err := render.New(opts.RendererOptions()...).Render(ctx, t, rec); err != nil {
		return nil, err
	}
	if err := rec.Balanced(); err != nil {
		return nil, fmt.Errorf("unbalanced render output: %w", err)
	}
	return rec, nil
}

// Encode replays rec into each format. The context is checked between
// formats.
func Encode(ctx context.Context, rec *sink.Recorder, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := encode(rec, format)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func encode(rec *sink.Recorder, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatHTML:
		x := sink.NewXHTML(&buf)
		if err := rec.Replay(x); err != nil {
			return nil, err
		}
		if err := x.Flush(); err != nil {
			return nil, err
		}
	case FormatMarkdown:
		m := sink.NewMarkdown(&buf)
		if err := rec.Replay(m); err != nil {
			return nil, err
		}
		if err := m.Flush(); err != nil {
			return nil, err
		}
	case FormatEvents:
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return nil, err
		}
		buf.Write(data)
		buf.WriteByte('\n')
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return buf.Bytes(), nil
}

// RenderOutline renders the section outline of t.
func RenderOutline(ctx context.Context, t *doc.Tree, opts OutlineOptions) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	root := outline.Build(t, outline.Options{Attributes: opts.Attributes})
	if root == nil {
		return nil, doc.ErrEmptyTree
	}

	switch opts.Format {
	case OutlineText:
		return []byte(outline.Text(root)), nil
	case OutlineDOT:
		return []byte(outline.ToDOT(root)), nil
	case OutlineSVG:
		return outline.RenderSVG(ctx, outline.ToDOT(root))
	default:
		return nil, fmt.Errorf("unsupported outline format: %s", opts.Format)
	}
}
