package io

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/docsink/pkg/doc"
)

const sample = `{
  "kind": "document",
  "title": "Guide",
  "attributes": {"sectnumlevels": "2", "table-caption!": ""},
  "blocks": [
    {
      "kind": "section", "id": "_intro", "title": "Intro", "level": 1,
      "sectnum": "1.", "numbered": true,
      "blocks": [
        {"kind": "paragraph", "text": "Hello <em>world</em>"},
        {"kind": "sidebar", "blocks": [{"kind": "paragraph", "text": "aside"}]}
      ]
    },
    {"kind": "table", "title": "Sizes", "header": [["A", "B"]], "body": [["1", "2"], ["3", "4"]]},
    {"kind": "unorderedList", "blocks": [{"kind": "listItem", "marker": "*", "text": "a"}]}
  ]
}`

func TestReadJSON(t *testing.T) {
	tree, err := ReadJSON(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if tree.Len() != 8 {
		t.Errorf("Len() = %d, want 8", tree.Len())
	}

	root := tree.Node(tree.Root())
	if root.Kind != doc.KindDocument || root.Title != "Guide" {
		t.Errorf("root = %s %q, want document \"Guide\"", root.Kind, root.Title)
	}
	if !tree.Unset(tree.Root(), "table-caption") {
		t.Error("table-caption not unset on root")
	}

	sec := tree.Node(root.Blocks[0])
	if sec.Kind != doc.KindSection || sec.Level != 1 || !sec.Numbered || sec.Sectnum != "1." {
		t.Errorf("section = %+v", sec)
	}
	if v, ok := tree.Lookup(root.Blocks[0], "sectnumlevels"); !ok || v != "2" {
		t.Errorf("Lookup(sectnumlevels) = %q, %v, want \"2\", true", v, ok)
	}

	side := tree.Node(sec.Blocks[1])
	if side.Kind != doc.KindUnknown || side.Name != "sidebar" || len(side.Blocks) != 1 {
		t.Errorf("unknown node = kind %s name %q blocks %d, want unknown \"sidebar\" 1", side.Kind, side.Name, len(side.Blocks))
	}

	table := tree.Node(root.Blocks[1])
	if len(table.Header) != 1 || len(table.Body) != 2 || table.Body[1][0].Text != "3" {
		t.Errorf("table rows = %v / %v", table.Header, table.Body)
	}

	item := tree.Node(tree.Node(root.Blocks[2]).Blocks[0])
	if item.Parent != root.Blocks[2] {
		t.Errorf("item parent = %d, want %d", item.Parent, root.Blocks[2])
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"malformed", `{"kind":`, "decode"},
		{"root without kind", `{"title": "x"}`, "root"},
		{"child without kind", `{"kind":"document","blocks":[{"kind":"section"},{"kind":"section","blocks":[{}]}]}`, "root.blocks[1].blocks[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}

	_, err := ReadJSON(strings.NewReader(`{}`))
	if !errors.Is(err, ErrMissingKind) {
		t.Errorf("error = %v, want ErrMissingKind", err)
	}
}

func TestRoundTrip(t *testing.T) {
	tree, err := ReadJSON(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	var first bytes.Buffer
	if err := WriteJSON(tree, &first); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(first.String(), `"kind": "sidebar"`) {
		t.Error("unknown kind name lost on export")
	}
	if !strings.Contains(first.String(), "<em>world</em>") {
		t.Error("inline markup escaped on export")
	}

	again, err := ReadJSON(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatalf("ReadJSON(export): %v", err)
	}
	var second bytes.Buffer
	if err := WriteJSON(again, &second); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if first.String() != second.String() {
		t.Errorf("round trip differs:\n%s\n---\n%s", first.String(), second.String())
	}
}

func TestWriteJSONEmptyTree(t *testing.T) {
	if err := WriteJSON(&doc.Tree{}, &bytes.Buffer{}); !errors.Is(err, doc.ErrEmptyTree) {
		t.Errorf("WriteJSON(empty) = %v, want ErrEmptyTree", err)
	}
}

func TestImportExportFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	if err := os.WriteFile(in, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	tree, err := ImportJSON(in)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	out := filepath.Join(dir, "out.json")
	if err := ExportJSON(tree, out); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	back, err := ImportJSON(out)
	if err != nil {
		t.Fatalf("ImportJSON(export): %v", err)
	}
	if back.Len() != tree.Len() {
		t.Errorf("Len() = %d, want %d", back.Len(), tree.Len())
	}

	if _, err := ImportJSON(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ImportJSON(missing) = %v, want os.ErrNotExist", err)
	}
}

func TestExportJSONReportsWriteFailure(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	tree, err := ReadJSON(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if err := ExportJSON(tree, "/dev/full"); err == nil {
		t.Error("ExportJSON to a full device should fail")
	}
	if err := ExportJSON(tree, t.TempDir()); err == nil {
		t.Error("ExportJSON to a directory should fail")
	}
}
