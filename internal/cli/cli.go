// Package cli implements the noderunner command-line interface.
//
// This package provides commands for exporting shader node trees as share
// tokens, importing tokens back into trees, inspecting token contents, and
// rendering trees as node-link diagrams. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - export: Encode a tree document (or a selection of its nodes) as a token
//   - import: Decode a token into a tree document
//   - inspect: Browse the nodes and links inside a token
//   - render: Generate DOT, SVG, PDF, or PNG node-link diagrams
//   - kinds: List the registered node kinds
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context, and codec diagnostics surface through the
// observability hooks registered at startup.
package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/noderunner/noderunner/pkg/buildinfo"
	"github.com/noderunner/noderunner/pkg/errors"
	"github.com/noderunner/noderunner/pkg/observability"
	"github.com/noderunner/noderunner/pkg/shader"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display and completion scripts.
const appName = "noderunner"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger and installs
// observability hooks that forward codec and transport events to it.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
	observability.SetCodecHooks(logCodecHooks{logger: c.Logger})
	observability.SetTransportHooks(logTransportHooks{logger: c.Logger})
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Node Runner shares shader node setups as text tokens",
		Long:         `Node Runner is a CLI tool for serializing shader node trees into compact text tokens and reconstructing them elsewhere, so node setups travel as easily as a snippet.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.kindsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Registry Loading
// =============================================================================

// loadRegistry builds the node-kind registry, merging a user-supplied TOML
// kinds file on top of the builtins when one is given.
func loadRegistry(kindsFile string) (*shader.Registry, error) {
	reg := shader.DefaultRegistry()
	if kindsFile == "" {
		return reg, nil
	}
	n, err := shader.LoadKindsFile(kindsFile, reg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidKinds, err, "load kinds from %s", kindsFile)
	}
	if n == 0 {
		return nil, errors.New(errors.ErrCodeInvalidKinds, "no node kinds declared in %s", kindsFile)
	}
	return reg, nil
}

// =============================================================================
// Selection Helpers
// =============================================================================

// parseSelection splits a comma-separated node name list, trimming blanks.
func parseSelection(s string) []string {
	if s == "" {
		return nil
	}
	var names []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
