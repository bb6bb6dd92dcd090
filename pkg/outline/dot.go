package outline

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
)

// ToDOT converts an outline to Graphviz DOT source, one box per section
// with edges from each section to its subsections. The result can be
// rendered with [RenderSVG].
func ToDOT(root *Entry) string {
	var buf bytes.Buffer
	buf.WriteString("digraph outline {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	if root != nil {
		writeNodes(&buf, root, true)
		buf.WriteString("\n")
		writeEdges(&buf, root)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(e *Entry) string {
	return "n" + strconv.Itoa(int(e.ID))
}

func writeNodes(buf *bytes.Buffer, e *Entry, isRoot bool) {
	attrs := []string{fmt.Sprintf("label=%q", label(e))}
	if isRoot {
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	fmt.Fprintf(buf, "  %s [%s];\n", nodeName(e), strings.Join(attrs, ", "))
	for _, c := range e.Children {
		writeNodes(buf, c, false)
	}
}

func writeEdges(buf *bytes.Buffer, e *Entry) {
	for _, c := range e.Children {
		fmt.Fprintf(buf, "  %s -> %s;\n", nodeName(e), nodeName(c))
		writeEdges(buf, c)
	}
}

func label(e *Entry) string {
	if e.Title == "" {
		return "(untitled)"
	}
	return e.Title
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one
// sized in user units so the image scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
