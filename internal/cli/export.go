package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/noderunner/noderunner/pkg/codec"
	"github.com/noderunner/noderunner/pkg/errors"
	treeio "github.com/noderunner/noderunner/pkg/io"
	"github.com/noderunner/noderunner/pkg/shader"
	"github.com/noderunner/noderunner/pkg/token"
)

// exportOptions holds the flags of the export command.
type exportOptions struct {
	selectStr string
	label     string
	output    string
	kindsFile string
}

// exportCommand creates the export command for encoding trees as tokens.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export <tree.json>",
		Short: "Encode a tree document as a share token",
		Long: `Encode a tree document as a share token.

The export command reads a tree document (JSON), optionally narrows it to a
named selection of nodes, and encodes the result as a compact text token
that 'import' can reconstruct anywhere.

Links are kept only when both endpoints are part of the selection. Group
input/output pseudo-nodes cannot be selected explicitly; they travel inside
their group's interior instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.selectStr, "select", "s", "", "comma-separated node names to export (default: all)")
	cmd.Flags().StringVarP(&opts.label, "label", "l", "", "human-readable label prefixed to the token")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the token to a file instead of stdout")
	cmd.Flags().StringVar(&opts.kindsFile, "kinds", "", "TOML file with additional node kinds")

	return cmd
}

// runExport loads the tree, resolves the selection and prints the token.
func (c *CLI) runExport(ctx context.Context, input string, opts exportOptions) error {
	l := loggerFromContext(ctx)

	if strings.Contains(opts.label, token.Marker) {
		return errors.New(errors.ErrCodeInvalidInput, "label must not contain the token marker %q", token.Marker)
	}

	reg, err := loadRegistry(opts.kindsFile)
	if err != nil {
		return err
	}

	tree, _, err := treeio.ReadTreeFile(ctx, input, reg, shader.NewAssets())
	if err != nil {
		return fmt.Errorf("load tree %s: %w", input, err)
	}
	if len(tree.Nodes()) == 0 {
		return errors.New(errors.ErrCodeNoSelection, "tree %q has no nodes to export", tree.Name)
	}

	selection, err := resolveSelection(tree, parseSelection(opts.selectStr), l)
	if err != nil {
		return err
	}

	p := newProgress(l)
	snap, report := codec.EncodeTree(ctx, tree, selection)
	tok, err := token.Encode(ctx, snap, opts.label)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Encoded %d nodes, %d links", report.NodesEncoded, report.LinksEncoded))

	reportDiagnostics(report)

	if opts.output != "" {
		if err := treeio.WriteToken(tok, opts.output); err != nil {
			return err
		}
		printSuccess("Token written (%d characters)", len(tok))
		printFile(opts.output)
		return nil
	}
	fmt.Println(tok)
	return nil
}

// resolveSelection validates an explicit node selection against the tree.
// Group interface pseudo-nodes are silently excluded; unknown names are
// logged and skipped. A nil selection means "everything" and passes through.
func resolveSelection(tree *shader.Tree, names []string, l *log.Logger) ([]string, error) {
	if names == nil {
		return nil, nil
	}
	var kept []string
	for _, name := range names {
		n, ok := tree.NodeByName(name)
		if !ok {
			l.Warn("selected node not found", "node", name)
			continue
		}
		if n.IsGroupInterface() {
			l.Warn("group interface nodes cannot be selected", "node", name)
			continue
		}
		kept = append(kept, name)
	}
	if len(kept) == 0 {
		return nil, errors.New(errors.ErrCodeNoSelection, "selection matches no exportable nodes")
	}
	return kept, nil
}

// reportDiagnostics prints codec diagnostics beneath the primary output.
func reportDiagnostics(report *codec.Report) {
	if !report.HasDiagnostics() {
		return
	}
	printWarning("%d value(s) could not be fully represented", len(report.Diagnostics))
	for _, d := range report.Diagnostics {
		printDetail("%s", d)
	}
}
