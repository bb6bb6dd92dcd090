package render_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/docsink/pkg/doc"
	"github.com/matzehuels/docsink/pkg/render"
	"github.com/matzehuels/docsink/pkg/sink"
)

func ExampleRenderer_Render() {
	b := doc.NewBuilder(doc.Node{Kind: doc.KindDocument})
	sec := b.Add(0, doc.Node{Kind: doc.KindSection, ID: "_intro", Title: "Intro", Level: 1, Sectnum: "1.", Numbered: true})
	b.Add(sec, doc.Node{Kind: doc.KindParagraph, Text: "Hello"})

	rec := sink.NewRecorder()
	if err := render.New().Render(context.Background(), b.Tree(), rec); err != nil {
		fmt.Println(err)
		return
	}
	for _, e := range rec.Events {
		fmt.Println(e)
	}
	// Output:
	// open(body)
	// open(division class="sect1")
	// open(anchor name="_intro")
	// close(anchor)
	// open(heading2)
	// text("1. Intro")
	// close(heading2)
	// open(paragraph)
	// text("Hello")
	// close(paragraph)
	// close(division)
	// close(body)
}

func ExampleComposeCaption() {
	fmt.Println(render.ComposeCaption("Table 1.", "Example"))
	fmt.Println(render.ComposeCaption("", "Example"))
	// Output:
	// Table 1. Example
	// Example
}

func ExampleDispatcher_Register() {
	d := render.NewDefaultDispatcher().Clone()
	d.Register(doc.KindParagraph, render.ProcessorFunc(func(c *render.Context, _ doc.NodeID, n *doc.Node) {
		c.Wrap(sink.Division, sink.Attrs{"class": "note"}, n.Text)
	}))

	b := doc.NewBuilder(doc.Node{Kind: doc.KindParagraph, Text: "Careful"})
	rec := sink.NewRecorder()
	_ = render.New(render.WithDispatcher(d)).Render(context.Background(), b.Tree(), rec)
	fmt.Println(rec.Strings())
	// Output:
	// [open(division class="note") text("Careful") close(division)]
}
