package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/docsink/pkg/io"
	"github.com/matzehuels/docsink/pkg/pipeline"
)

// outlineCommand creates the outline command.
func (c *CLI) outlineCommand() *cobra.Command {
	var (
		format     string
		output     string
		attributes []string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "outline [doc.json]",
		Short: "Print the section outline of a document",
		Long: `Print the section outline of a document.

Formats:
  text  indented tree (default), printed to stdout
  dot   Graphviz DOT source
  svg   outline diagram rendered with Graphviz

Section numbers follow the sectnumlevels attribute, as in 'render'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs, err := mergeAttributes(c.Config.Attributes, attributes)
			if err != nil {
				return err
			}
			opts := pipeline.OutlineOptions{Format: format, Attributes: attrs}
			return c.runOutline(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", pipeline.OutlineText, "output format: text, dot, svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringArrayVarP(&attributes, "attribute", "a", nil, "set a document attribute (name=value, name!, repeatable)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runOutline loads the tree and writes its outline.
func (c *CLI) runOutline(ctx context.Context, input string, opts pipeline.OutlineOptions, output string, noCache bool) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	tree, err := io.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	p := newProgress(c.Logger)
	data, err := runner.Outline(ctx, tree, opts)
	if err != nil {
		return err
	}
	p.done("Built " + opts.Format + " outline")

	if output == "" || output == stdoutPath {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Outline written")
	printFile(output, len(data))
	return nil
}
