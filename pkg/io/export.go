package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/docsink/pkg/doc"
)

// WriteJSON encodes t as nested, indented JSON and writes it to w. The
// output can be re-imported with [ReadJSON].
func WriteJSON(t *doc.Tree, w io.Writer) error {
	root := t.Root()
	if root == doc.NoNode {
		return doc.ErrEmptyTree
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(export(t, root)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes t to a JSON file at path.
func ExportJSON(t *doc.Tree, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(t, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func export(t *doc.Tree, id doc.NodeID) node {
	n := t.Node(id)
	out := node{
		Kind:       n.KindName(),
		ID:         n.ID,
		Title:      n.Title,
		Caption:    n.Caption,
		Level:      n.Level,
		Style:      n.Style,
		Attributes: n.Attributes,
		Text:       n.Text,
		Marker:     n.Marker,
		Term:       n.Term,
		Target:     n.Target,
		Alt:        n.Alt,
		Sectnum:    n.Sectnum,
		Numbered:   n.Numbered,
		Header:     fromRows(n.Header),
		Body:       fromRows(n.Body),
	}
	if len(n.Blocks) > 0 {
		out.Blocks = make([]node, len(n.Blocks))
		for i, c := range n.Blocks {
			out.Blocks[i] = export(t, c)
		}
	}
	return out
}
