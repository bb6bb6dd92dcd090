package io

import "github.com/matzehuels/docsink/pkg/doc"

// node is the wire form of a doc.Node.
type node struct {
	Kind       string            `json:"kind"`
	ID         string            `json:"id,omitempty"`
	Title      string            `json:"title,omitempty"`
	Caption    string            `json:"caption,omitempty"`
	Level      int               `json:"level,omitempty"`
	Style      string            `json:"style,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Text       string            `json:"text,omitempty"`
	Marker     string            `json:"marker,omitempty"`
	Term       string            `json:"term,omitempty"`
	Target     string            `json:"target,omitempty"`
	Alt        string            `json:"alt,omitempty"`
	Sectnum    string            `json:"sectnum,omitempty"`
	Numbered   bool              `json:"numbered,omitempty"`
	Header     [][]string        `json:"header,omitempty"`
	Body       [][]string        `json:"body,omitempty"`
	Blocks     []node            `json:"blocks,omitempty"`
}

func toRows(in [][]string) []doc.Row {
	if len(in) == 0 {
		return nil
	}
	rows := make([]doc.Row, len(in))
	for i, r := range in {
		rows[i] = make(doc.Row, len(r))
		for j, text := range r {
			rows[i][j] = doc.Cell{Text: text}
		}
	}
	return rows
}

func fromRows(in []doc.Row) [][]string {
	if len(in) == 0 {
		return nil
	}
	rows := make([][]string, len(in))
	for i, r := range in {
		rows[i] = make([]string, len(r))
		for j, c := range r {
			rows[i][j] = c.Text
		}
	}
	return rows
}
