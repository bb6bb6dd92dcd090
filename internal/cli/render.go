package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/docsink/pkg/io"
	"github.com/matzehuels/docsink/pkg/pipeline"
)

// stdoutPath selects standard output for -o.
const stdoutPath = "-"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output          string   // output file (single format) or base path
	formats         string   // comma-separated formats
	attributes      []string // -a key=value assignments
	maxSectionLevel int      // 0 means the configured level
	numberCaptions  bool
	noCache         bool
	refresh         bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [doc.json]",
		Short: "Render a document tree to HTML, Markdown or an event log",
		Long: `Render a document tree to one or more output formats.

The input is a JSON document tree (see 'docsink outline' for a quick look
at its sections). Each format is written next to the input file unless
-o is given; with a single format, -o names the output file and "-"
writes to standard output.

Attributes set with -a act as document-level defaults: values in the
tree win. Use -a name! to unset an attribute, e.g. -a table-caption!.

Results are cached; use --no-cache or --refresh to bypass the cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file (single format), base path (multiple), or "-" for stdout`)
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): html, markdown, events (comma-separated)")
	cmd.Flags().StringArrayVarP(&opts.attributes, "attribute", "a", nil, "set a document attribute (name=value, name!, repeatable)")
	cmd.Flags().IntVar(&opts.maxSectionLevel, "max-section-level", 0, "deepest section level of the output (1-5)")
	cmd.Flags().BoolVar(&opts.numberCaptions, "number-captions", false, "number titled blocks that have no caption (Table 1., ...)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

// pipelineOptions merges config values and flags.
func (c *CLI) pipelineOptions(opts renderOpts) (pipeline.Options, error) {
	attrs, err := mergeAttributes(c.Config.Attributes, opts.attributes)
	if err != nil {
		return pipeline.Options{}, err
	}
	po := pipeline.Options{
		Formats:         parseFormats(opts.formats, c.Config.Render.Formats),
		Attributes:      attrs,
		MaxSectionLevel: c.Config.Render.MaxSectionLevel,
		NumberCaptions:  c.Config.Render.NumberCaptions || opts.numberCaptions,
		Refresh:         opts.refresh,
		Logger:          c.Logger,
	}
	if opts.maxSectionLevel != 0 {
		po.MaxSectionLevel = opts.maxSectionLevel
	}
	if err := po.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return po, nil
}

// runRender loads the tree, runs the pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	po, err := c.pipelineOptions(opts)
	if err != nil {
		return err
	}
	if opts.output == stdoutPath && len(po.Formats) > 1 {
		return fmt.Errorf("cannot write %d formats to stdout", len(po.Formats))
	}

	tree, err := io.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering "+filepath.Base(input)+"...")
	spinner.Start()

	result, err := runner.Execute(ctx, tree, po)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return err
		}
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if opts.output == stdoutPath {
		_, err := os.Stdout.Write(result.Artifacts[po.Formats[0]])
		return err
	}

	if err := writeArtifacts(result.Artifacts, po.Formats, input, opts.output); err != nil {
		return err
	}
	printStats(result.Stats.NodeCount, result.Stats.EventCount, result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes each format to its output path in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	printSuccess("Render complete")
	for _, format := range formats {
		path := outputPath(output, input, format, len(formats) == 1)
		data := artifacts[format]
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path, len(data))
	}
	return nil
}

// outputPath picks the file for one format. A single format honours
// output as given; otherwise output (or the input name) is a base path
// that gets the format's extension.
func outputPath(output, input, format string, single bool) string {
	if single && output != "" {
		return output
	}
	return basePath(output, input) + pipeline.Extension(format)
}

// basePath derives the base output path from the output and input file
// paths. Known artifact extensions are stripped from output.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, f := range slices.Concat(pipeline.ValidFormats, pipeline.ValidOutlineFormats) {
		if ext := pipeline.Extension(f); strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}
