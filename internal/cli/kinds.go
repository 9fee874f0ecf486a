package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noderunner/noderunner/pkg/shader"
)

// kindsCommand creates the kinds command for listing registered node kinds.
func (c *CLI) kindsCommand() *cobra.Command {
	var (
		kindsFile string
		sockets   bool
	)

	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List the registered node kinds",
		Long: `List the registered node kinds.

Kinds determine which nodes a token can materialize: a snapshot whose type
has no registered kind is skipped during import. Use --kinds to merge
additional kinds from a TOML file, and --sockets to show each kind's
input and output sockets.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runKinds(kindsFile, sockets)
		},
	}

	cmd.Flags().StringVar(&kindsFile, "kinds", "", "TOML file with additional node kinds")
	cmd.Flags().BoolVar(&sockets, "sockets", false, "show each kind's sockets")

	return cmd
}

// runKinds prints every registered kind in sorted order.
func (c *CLI) runKinds(kindsFile string, sockets bool) error {
	reg, err := loadRegistry(kindsFile)
	if err != nil {
		return err
	}

	names := reg.Kinds()
	fmt.Println(StyleTitle.Render(fmt.Sprintf("%d node kinds", len(names))))
	for _, name := range names {
		spec, ok := reg.Kind(name)
		if !ok {
			continue
		}
		fmt.Printf("  %s  %s\n", StyleValue.Render(name),
			StyleDim.Render(fmt.Sprintf("%d props · %d in · %d out",
				len(spec.Props), len(spec.Inputs), len(spec.Outputs))))
		if sockets {
			printSockets("in", spec.Inputs)
			printSockets("out", spec.Outputs)
		}
	}
	return nil
}

// printSockets prints one socket direction of a kind spec.
func printSockets(dir string, specs []shader.SocketSpec) {
	if len(specs) == 0 {
		return
	}
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Name
	}
	printDetail("%-3s %s", dir, strings.Join(names, ", "))
}
