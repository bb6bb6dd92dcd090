// Package outline extracts the section hierarchy of a document tree and
// renders it as an indented text tree, Graphviz DOT or SVG.
//
// # Usage
//
//	root := outline.Build(tree, outline.Options{})
//	fmt.Print(outline.Text(root))
//
//	dot := outline.ToDOT(root)
//	svg, err := outline.RenderSVG(ctx, dot)
//
// Section titles are numbered with the same rule the renderer uses for
// headings, so the outline matches the rendered table of contents.
//
// Sections are found anywhere in the tree, including inside preambles,
// examples and unknown container kinds; each attaches to its nearest
// section ancestor.
package outline
