package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/matzehuels/docsink/pkg/cache"
	"github.com/matzehuels/docsink/pkg/doc"
	docio "github.com/matzehuels/docsink/pkg/io"
	errs "github.com/matzehuels/docsink/pkg/errors"
	"github.com/matzehuels/docsink/pkg/render"
	"github.com/matzehuels/docsink/pkg/sink"
)

// sampleTree is a small document with a numbered section, a paragraph, a
// captioned table and a source listing.
func sampleTree() *doc.Tree {
	b := doc.NewBuilder(doc.Node{
		Kind:       doc.KindDocument,
		Title:      "Guide",
		Attributes: map[string]string{"table-caption": "Table"},
	})
	sec := b.Add(0, doc.Node{Kind: doc.KindSection, ID: "_intro", Title: "Intro", Level: 1, Sectnum: "1.", Numbered: true})
	b.Add(sec, doc.Node{Kind: doc.KindParagraph, Text: "Hello"})
	b.Add(sec, doc.Node{
		Kind:    doc.KindTable,
		Title:   "Data",
		Caption: "Table 1.",
		Header:  []doc.Row{{{Text: "a"}, {Text: "b"}}},
		Body:    []doc.Row{{{Text: "1"}, {Text: "2"}}},
	})
	b.Add(sec, doc.Node{
		Kind:       doc.KindListing,
		Style:      "source",
		Text:       "fmt.Println()",
		Attributes: map[string]string{"language": "go"},
	})
	return b.Tree()
}

func parseHTML(t *testing.T, data []byte) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return d
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"html", false},
		{"markdown", false},
		{"events", false},
		{"pdf", true},
		{"HTML", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"html", "markdown"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	err := ValidateFormats([]string{"html", "invalid"})
	if !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormats error = %v, want INVALID_FORMAT", err)
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if !slices.Equal(opts.Formats, []string{FormatHTML}) {
		t.Errorf("Formats = %v, want [html]", opts.Formats)
	}
	if opts.MaxSectionLevel != render.DefaultMaxSectionLevel {
		t.Errorf("MaxSectionLevel = %d, want %d", opts.MaxSectionLevel, render.DefaultMaxSectionLevel)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"bad format", Options{Formats: []string{"pdf"}}, errs.ErrCodeInvalidFormat},
		{"bad attribute", Options{Attributes: map[string]string{"a b": "x"}}, errs.ErrCodeInvalidAttribute},
		{"level too deep", Options{MaxSectionLevel: 6}, errs.ErrCodeInvalidInput},
		{"negative level", Options{MaxSectionLevel: -1}, errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errs.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{MaxSectionLevel: 3, Attributes: map[string]string{"x": "1"}}
	k := opts.ArtifactKeyOpts(FormatMarkdown)
	if k.Format != FormatMarkdown || k.MaxSectionLevel != 3 || k.Attributes["x"] != "1" {
		t.Errorf("ArtifactKeyOpts = %+v", k)
	}

	// The key options must not alias the caller's map.
	opts.Attributes["x"] = "2"
	if k.Attributes["x"] != "1" {
		t.Error("ArtifactKeyOpts should copy attributes")
	}
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		FormatHTML:     ".html",
		FormatMarkdown: ".md",
		FormatEvents:   ".events.json",
		OutlineText:    ".txt",
		OutlineDOT:     ".dot",
		OutlineSVG:     ".svg",
	}
	for format, want := range tests {
		if got := Extension(format); got != want {
			t.Errorf("Extension(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestRenderHTML(t *testing.T) {
	artifacts, err := Render(context.Background(), sampleTree(), Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	d := parseHTML(t, artifacts[FormatHTML])

	if got := d.Find("h1").Text(); got != "Guide" {
		t.Errorf("h1 = %q, want Guide", got)
	}
	if got := d.Find("div.sect1 > h2").Text(); got != "1. Intro" {
		t.Errorf("section heading = %q, want %q", got, "1. Intro")
	}
	if id, _ := d.Find("div.sect1 > a").Attr("name"); id != "_intro" {
		t.Errorf("anchor name = %q, want _intro", id)
	}
	if got := d.Find("div.sect1 > p").Text(); got != "Hello" {
		t.Errorf("paragraph = %q, want Hello", got)
	}
	if n := d.Find("table th").Length(); n != 2 {
		t.Errorf("header cells = %d, want 2", n)
	}
	if got := d.Find("table caption").Text(); got != "Table 1. Data" {
		t.Errorf("caption = %q, want %q", got, "Table 1. Data")
	}
	if lang, _ := d.Find("div.listingblock pre.prettyprint").Attr("data-lang"); lang != "go" {
		t.Errorf("data-lang = %q, want go", lang)
	}
}

func TestRenderMarkdown(t *testing.T) {
	artifacts, err := Render(context.Background(), sampleTree(), Options{Formats: []string{FormatMarkdown}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	md := string(artifacts[FormatMarkdown])
	for _, want := range []string{"# Guide", "## 1. Intro", "Hello", "```go"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if _, ok := artifacts[FormatHTML]; ok {
		t.Error("unrequested html artifact produced")
	}
}

func TestRenderEvents(t *testing.T) {
	tree := sampleTree()
	artifacts, err := Render(context.Background(), tree, Options{Formats: []string{FormatEvents}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var got sink.Recorder
	if err := json.Unmarshal(artifacts[FormatEvents], &got); err != nil {
		t.Fatalf("unmarshal events: %v", err)
	}
	want, err := Record(context.Background(), tree, Options{})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if !slices.Equal(got.Strings(), want.Strings()) {
		t.Errorf("events = %v\nwant %v", got.Strings(), want.Strings())
	}
}

func TestRenderEmptyTree(t *testing.T) {
	_, err := Render(context.Background(), &doc.Tree{}, Options{})
	if !errors.Is(err, doc.ErrEmptyTree) {
		t.Errorf("error = %v, want ErrEmptyTree", err)
	}
}

func TestEncodeCanceled(t *testing.T) {
	rec, err := Record(context.Background(), sampleTree(), Options{})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Encode(ctx, rec, []string{FormatHTML}); !errors.Is(err, context.Canceled) {
		t.Errorf("Encode error = %v, want context.Canceled", err)
	}
}

func TestRenderOutline(t *testing.T) {
	ctx := context.Background()

	text, err := RenderOutline(ctx, sampleTree(), OutlineOptions{})
	if err != nil {
		t.Fatalf("RenderOutline(text): %v", err)
	}
	if !strings.Contains(string(text), "1. Intro") {
		t.Errorf("text outline missing section:\n%s", text)
	}

	dot, err := RenderOutline(ctx, sampleTree(), OutlineOptions{Format: OutlineDOT})
	if err != nil {
		t.Fatalf("RenderOutline(dot): %v", err)
	}
	if !strings.HasPrefix(string(dot), "digraph outline {") {
		t.Errorf("dot outline = %q", dot)
	}

	if _, err := RenderOutline(ctx, sampleTree(), OutlineOptions{Format: "png"}); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("bad format error = %v, want INVALID_FORMAT", err)
	}
}

func TestRunnerExecuteCaches(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	ctx := context.Background()
	tree := sampleTree()
	opts := Options{Formats: []string{FormatHTML, FormatMarkdown}}

	first, err := r.Execute(ctx, tree, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	if first.Stats.NodeCount != 5 {
		t.Errorf("NodeCount = %d, want 5", first.Stats.NodeCount)
	}
	if len(first.DocHash) != 64 {
		t.Errorf("DocHash = %q, want 64 hex chars", first.DocHash)
	}

	second, err := r.Execute(ctx, tree, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the cache")
	}
	for _, f := range opts.Formats {
		if !bytes.Equal(first.Artifacts[f], second.Artifacts[f]) {
			t.Errorf("cached %s artifact differs", f)
		}
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, tree, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestRunnerCacheKeyIncludesOptions(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	tree := sampleTree()

	if _, err := r.Execute(ctx, tree, Options{}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, tree, Options{Attributes: map[string]string{"table-caption": "Tab."}})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.RenderHit {
		t.Error("different attributes should not share cached artifacts")
	}

	res, err = r.Execute(ctx, tree, Options{NumberCaptions: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.RenderHit {
		t.Error("caption numbering should not share cached artifacts")
	}
}

func TestRenderNumberCaptions(t *testing.T) {
	b := doc.NewBuilder(doc.Node{Kind: doc.KindDocument, Attributes: map[string]string{"table-caption": "Table"}})
	b.Add(0, doc.Node{Kind: doc.KindTable, Title: "Plain"})
	tree := b.Tree()

	tests := []struct {
		number bool
		want   string
	}{
		{false, "Plain"},
		{true, "Table 1. Plain"},
	}
	for _, tt := range tests {
		artifacts, err := Render(context.Background(), tree, Options{NumberCaptions: tt.number})
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if got := parseHTML(t, artifacts[FormatHTML]).Find("table caption").Text(); got != tt.want {
			t.Errorf("NumberCaptions=%v: caption = %q, want %q", tt.number, got, tt.want)
		}
	}
}

func TestRunnerCustomDispatcherSkipsCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	d := render.NewDefaultDispatcher().Clone()

	for range 2 {
		res, err := r.Execute(ctx, sampleTree(), Options{Dispatcher: d})
		if err != nil {
			t.Fatal(err)
		}
		if res.CacheInfo.RenderHit {
			t.Error("custom dispatcher output should not be cached")
		}
	}
}

func TestRunnerInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), sampleTree(), Options{Formats: []string{"pdf"}})
	if !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestRunnerOutlineCaches(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	ctx := context.Background()

	first, err := r.Outline(ctx, sampleTree(), OutlineOptions{Format: OutlineText})
	if err != nil {
		t.Fatal(err)
	}
	hash, _ := HashTree(sampleTree())
	key := r.Keyer.OutlineKey(hash, (&OutlineOptions{Format: OutlineText}).OutlineKeyOpts())
	cached, hit, err := c.Get(ctx, key)
	if err != nil || !hit {
		t.Fatalf("outline not cached: hit=%v err=%v", hit, err)
	}
	if !bytes.Equal(first, cached) {
		t.Error("cached outline differs from rendered outline")
	}
}

func TestHashTreeStable(t *testing.T) {
	h1, err := HashTree(sampleTree())
	if err != nil {
		t.Fatal(err)
	}
	h2, _ := HashTree(sampleTree())
	if h1 != h2 {
		t.Errorf("HashTree not stable: %s != %s", h1, h2)
	}

	b := doc.NewBuilder(doc.Node{Kind: doc.KindDocument, Title: "Other"})
	h3, _ := HashTree(b.Tree())
	if h1 == h3 {
		t.Error("different trees should hash differently")
	}
}

func TestExampleDocument(t *testing.T) {
	tree, err := docio.ImportJSON(filepath.Join("..", "..", "examples", "guide.json"))
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	artifacts, err := Render(context.Background(), tree, Options{Formats: ValidFormats})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	d := parseHTML(t, artifacts[FormatHTML])

	if got := d.Find("div.sect2 > h3").Text(); got != "1.1. Requirements" {
		t.Errorf("subsection heading = %q, want %q", got, "1.1. Requirements")
	}
	if got := d.Find("table caption").Text(); got != "Table 1. Formats" {
		t.Errorf("table caption = %q", got)
	}
	if got := d.Find("div.listingblock > div.title").Text(); got != "Listing 1. Build" {
		t.Errorf("listing title = %q", got)
	}
	if src, _ := d.Find("div.imageblock img").Attr("src"); src != filepath.Join("images", "outline.svg") {
		t.Errorf("image src = %q", src)
	}
	if n := d.Find("ol > li").Length(); n != 2 {
		t.Errorf("ordered items = %d, want 2", n)
	}
	if n := d.Find("dl > dt").Length(); n != 3 {
		t.Errorf("terms = %d, want 3", n)
	}
	if !bytes.Contains(artifacts[FormatMarkdown], []byte("## 2. Usage")) {
		t.Errorf("markdown missing usage heading:\n%s", artifacts[FormatMarkdown])
	}
}
