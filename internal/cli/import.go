package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noderunner/noderunner/pkg/codec"
	"github.com/noderunner/noderunner/pkg/errors"
	treeio "github.com/noderunner/noderunner/pkg/io"
	"github.com/noderunner/noderunner/pkg/shader"
	"github.com/noderunner/noderunner/pkg/token"
)

// importOptions holds the flags of the import command.
type importOptions struct {
	target    string
	output    string
	kindsFile string
}

// importCommand creates the import command for decoding tokens into trees.
func (c *CLI) importCommand() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import <token|->",
		Short: "Decode a share token into a tree document",
		Long: `Decode a share token into a tree document.

The import command reverses 'export': it unwraps the token, rebuilds the
nodes, properties and links it describes, and writes the resulting tree as
a JSON document. Pass '-' to read the token from stdin.

With --target the nodes are merged into an existing tree document instead
of a fresh one; name collisions are resolved with numeric suffixes and the
imported links still land on the imported nodes.

Unknown node kinds are skipped and links whose endpoints are missing are
dropped; both are reported rather than failing the whole import.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "existing tree document to import into")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the resulting tree document to a file (default: stdout)")
	cmd.Flags().StringVar(&opts.kindsFile, "kinds", "", "TOML file with additional node kinds")

	return cmd
}

// runImport decodes the token and materializes it into a tree document.
func (c *CLI) runImport(ctx context.Context, arg string, opts importOptions) error {
	l := loggerFromContext(ctx)

	tok, err := readTokenArg(arg)
	if err != nil {
		return err
	}
	if tok == "" {
		return errors.New(errors.ErrCodeInvalidInput, "no input provided")
	}

	snap, err := token.Decode(ctx, tok)
	if err != nil {
		return err
	}

	reg, err := loadRegistry(opts.kindsFile)
	if err != nil {
		return err
	}

	assets := shader.NewAssets()
	tree, err := importTarget(ctx, snap.Name, opts.target, reg, assets)
	if err != nil {
		return err
	}

	p := newProgress(l)
	report := codec.Decode(ctx, snap, tree, assets)
	p.done(fmt.Sprintf("Created %d nodes, %d links", report.NodesCreated, report.LinksCreated))

	printImportSummary(report)

	out, _ := codec.EncodeTree(ctx, tree, nil)
	if opts.output != "" {
		if err := treeio.ExportJSON(out, opts.output); err != nil {
			return err
		}
		printSuccess("Imported into %q", tree.Name)
		printFile(opts.output)
		return nil
	}
	return treeio.WriteJSON(out, os.Stdout)
}

// readTokenArg returns the token from the argument, reading stdin for "-".
func readTokenArg(arg string) (string, error) {
	if arg != "-" {
		return strings.TrimSpace(arg), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read token from stdin")
	}
	return strings.TrimSpace(string(data)), nil
}

// importTarget returns the tree the snapshot will be decoded into: the
// loaded --target document when given, otherwise a fresh tree named after
// the snapshot.
func importTarget(ctx context.Context, snapName, target string, reg *shader.Registry, assets *shader.Assets) (*shader.Tree, error) {
	if target == "" {
		name := snapName
		if name == "" {
			name = "Imported"
		}
		return shader.NewTree(name, reg), nil
	}
	tree, _, err := treeio.ReadTreeFile(ctx, target, reg, assets)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNoTarget, err, "load target tree %s", target)
	}
	return tree, nil
}

// printImportSummary reports skipped nodes, dropped links and created
// interface sockets after a decode.
func printImportSummary(report *codec.Report) {
	if report.NodesSkipped > 0 {
		printWarning("%d node(s) skipped", report.NodesSkipped)
	}
	if report.LinksDropped > 0 {
		printWarning("%d link(s) dropped", report.LinksDropped)
	}
	if report.SocketsCreated > 0 {
		printDetail("%d group interface socket(s) created", report.SocketsCreated)
	}
	for _, d := range report.Diagnostics {
		printDetail("%s", d)
	}
}
