package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/docsink/pkg/doc"
)

// ErrMissingKind is returned when a node has no "kind" field.
var ErrMissingKind = errors.New("node has no kind")

// ReadJSON decodes a nested JSON document from r into a tree.
//
// ReadJSON returns an error if the JSON is malformed or a node has no
// kind. Unknown kind names are not an error; see the package
// documentation. Errors name the path of the offending node, e.g.
// "blocks[2].blocks[0]". ReadJSON does not close r.
func ReadJSON(r io.Reader) (*doc.Tree, error) {
	var root node
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	rn, err := convert(root, "root")
	if err != nil {
		return nil, err
	}
	b := doc.NewBuilder(rn)
	if err := addBlocks(b, b.Root(), root.Blocks, "root"); err != nil {
		return nil, err
	}
	return b.Tree(), nil
}

// ImportJSON reads a JSON document file at path. It returns the same
// errors as [ReadJSON], wrapped with the path.
func ImportJSON(path string) (*doc.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func addBlocks(b *doc.Builder, parent doc.NodeID, blocks []node, path string) error {
	for i, child := range blocks {
		p := fmt.Sprintf("%s.blocks[%d]", path, i)
		n, err := convert(child, p)
		if err != nil {
			return err
		}
		id := b.Add(parent, n)
		if err := addBlocks(b, id, child.Blocks, p); err != nil {
			return err
		}
	}
	return nil
}

func convert(in node, path string) (doc.Node, error) {
	if in.Kind == "" {
		return doc.Node{}, fmt.Errorf("%s: %w", path, ErrMissingKind)
	}
	n := doc.Node{
		ID:         in.ID,
		Title:      in.Title,
		Caption:    in.Caption,
		Level:      in.Level,
		Style:      in.Style,
		Attributes: in.Attributes,
		Text:       in.Text,
		Marker:     in.Marker,
		Term:       in.Term,
		Target:     in.Target,
		Alt:        in.Alt,
		Sectnum:    in.Sectnum,
		Numbered:   in.Numbered,
		Header:     toRows(in.Header),
		Body:       toRows(in.Body),
	}
	if k, ok := doc.ParseKind(in.Kind); ok {
		n.Kind = k
	} else {
		n.Kind = doc.KindUnknown
		n.Name = in.Kind
	}
	return n, nil
}
