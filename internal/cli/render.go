package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noderunner/noderunner/pkg/codec"
	"github.com/noderunner/noderunner/pkg/errors"
	treeio "github.com/noderunner/noderunner/pkg/io"
	"github.com/noderunner/noderunner/pkg/render/nodelink"
	"github.com/noderunner/noderunner/pkg/shader"
	"github.com/noderunner/noderunner/pkg/token"
)

// Supported render output formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"
)

// renderOptions holds the flags of the render command.
type renderOptions struct {
	output    string
	format    string
	detailed  bool
	scale     float64
	kindsFile string
}

// renderCommand creates the render command for node-link diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render <token|tree.json>",
		Short: "Render a tree as a node-link diagram",
		Long: `Render a tree as a node-link diagram.

The render command accepts either a share token or a tree document and
produces a left-to-right node-link diagram: frames become clusters, group
nodes get a double border, and --detailed annotates nodes with their kind
and edges with their socket names.

Formats: svg (default), png, pdf, dot. PDF and PNG conversion require
rsvg-convert on PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: derived from the input)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatSVG, "output format: svg, png, pdf, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "annotate nodes with kinds and edges with socket names")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2.0, "raster scale factor (png only)")
	cmd.Flags().StringVar(&opts.kindsFile, "kinds", "", "TOML file with additional node kinds")

	return cmd
}

// runRender loads the tree from either input form and writes the diagram.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOptions) error {
	l := loggerFromContext(ctx)

	format := strings.ToLower(opts.format)
	switch format {
	case formatDOT, formatSVG, formatPDF, formatPNG:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unsupported format %q (want svg, png, pdf or dot)", opts.format)
	}

	reg, err := loadRegistry(opts.kindsFile)
	if err != nil {
		return err
	}

	tree, err := loadRenderInput(ctx, input, reg)
	if err != nil {
		return err
	}

	p := newProgress(l)
	dot := nodelink.ToDOT(tree, nodelink.Options{Detailed: opts.detailed})

	var data []byte
	switch format {
	case formatDOT:
		data = []byte(dot)
	case formatSVG:
		data, err = nodelink.RenderSVG(dot)
	case formatPDF:
		data, err = nodelink.RenderPDF(dot)
	case formatPNG:
		data, err = nodelink.RenderPNG(dot, opts.scale)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}

	output := opts.output
	if output == "" {
		output = outputPath(input, format)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	p.done(fmt.Sprintf("Rendered %q", tree.Name))

	printSuccess("Diagram written")
	printFile(output)
	printStats(len(tree.Nodes()), len(tree.Links()))
	return nil
}

// loadRenderInput accepts either a tree document path or a raw token.
// A path that exists on disk wins; anything else is decoded as a token.
func loadRenderInput(ctx context.Context, input string, reg *shader.Registry) (*shader.Tree, error) {
	if _, err := os.Stat(input); err == nil {
		tree, _, err := treeio.ReadTreeFile(ctx, input, reg, shader.NewAssets())
		if err != nil {
			return nil, fmt.Errorf("load tree %s: %w", input, err)
		}
		return tree, nil
	}

	snap, err := token.Decode(ctx, input)
	if err != nil {
		return nil, err
	}
	name := snap.Name
	if name == "" {
		name = "Material"
	}
	tree := shader.NewTree(name, reg)
	codec.Decode(ctx, snap, tree, shader.NewAssets())
	return tree, nil
}

// outputPath derives the output filename from the input argument.
// Tree documents swap their extension; tokens render next to the cwd.
func outputPath(input, format string) string {
	base := filepath.Base(input)
	if ext := filepath.Ext(base); ext == ".json" {
		return strings.TrimSuffix(input, ext) + "." + format
	}
	return "tree." + format
}
