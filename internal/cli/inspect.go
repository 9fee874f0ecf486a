package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/noderunner/noderunner/pkg/errors"
	"github.com/noderunner/noderunner/pkg/snapshot"
	"github.com/noderunner/noderunner/pkg/token"
)

// inspectCommand creates the inspect command for browsing token contents.
func (c *CLI) inspectCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect <token|->",
		Short: "Browse the nodes and links inside a share token",
		Long: `Browse the nodes and links inside a share token.

The inspect command decodes a token without materializing a tree and opens
an interactive browser over its contents: node names, kinds, property
counts and link degrees, with a detail view per node.

Use --plain to print a static listing instead (useful in scripts or when
no terminal is attached).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print a static listing instead of the interactive browser")

	return cmd
}

// runInspect decodes the token and hands the snapshot to the browser.
func (c *CLI) runInspect(ctx context.Context, arg string, plain bool) error {
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

	rows := snapshotRows(snap)
	if plain {
		printSnapshot(snap, tok, rows)
		return nil
	}

	model := newInspectModel(snap.Name, rows)
	_, err = tea.NewProgram(model).Run()
	return err
}

// =============================================================================
// Snapshot Rows
// =============================================================================

// nodeRow is one node snapshot flattened for display.
type nodeRow struct {
	Name  string
	Kind  string
	Label string
	Props []string // property names, snapshot order
	Links int      // links touching this node
}

// snapshotRows flattens a snapshot into display rows in traversal order.
func snapshotRows(g *snapshot.Graph) []nodeRow {
	degree := make(map[string]int)
	for _, l := range g.Links {
		degree[l.FromNode]++
		degree[l.ToNode]++
	}

	var rows []nodeRow
	g.RangeNodes(func(name string, n *snapshot.Node) bool {
		row := nodeRow{
			Name:  name,
			Kind:  n.Type(),
			Label: n.Label(),
			Links: degree[name],
		}
		n.Range(func(prop string, _ any) bool {
			if prop != snapshot.KeyType && prop != snapshot.KeyLabel {
				row.Props = append(row.Props, prop)
			}
			return true
		})
		rows = append(rows, row)
		return true
	})
	return rows
}

// printSnapshot writes the static (non-TUI) listing.
func printSnapshot(g *snapshot.Graph, tok string, rows []nodeRow) {
	printKeyValue("Tree", g.Name)
	printKeyValue("Token size", fmt.Sprintf("%d characters", len(tok)))
	printStats(len(rows), len(g.Links))
	for _, row := range rows {
		label := ""
		if row.Label != "" && row.Label != row.Name {
			label = " (" + row.Label + ")"
		}
		fmt.Printf("  %s%s  %s\n", StyleValue.Render(row.Name), StyleDim.Render(label),
			StyleDim.Render(fmt.Sprintf("%s · %d props · %d links", row.Kind, len(row.Props), row.Links)))
	}
	for _, l := range g.Links {
		printDetail("%s.%s %s %s.%s", l.FromNode, l.FromSocket, iconArrow, l.ToNode, l.ToSocket)
	}
}

// =============================================================================
// InspectModel - Interactive snapshot browser
// =============================================================================

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectModel is the bubbletea model for browsing snapshot nodes.
type inspectModel struct {
	TreeName string
	Rows     []nodeRow
	Cursor   int
	Height   int
	Offset   int
	Detail   bool
}

// newInspectModel creates a browser over the given rows.
func newInspectModel(treeName string, rows []nodeRow) inspectModel {
	return inspectModel{
		TreeName: treeName,
		Rows:     rows,
		Height:   15,
	}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Detail {
				m.Detail = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Rows) > 0 {
				m.Detail = !m.Detail
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m inspectModel) View() string {
	if m.Detail {
		return m.detailView()
	}
	return m.listView()
}

// listView renders the node table.
func (m inspectModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Token: " + m.TreeName))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		label := r.Label
		if label == "" {
			label = "—"
		}
		rows = append(rows, []string{
			cursor, r.Name, r.Kind, label,
			fmt.Sprintf("%d", len(r.Props)), fmt.Sprintf("%d", r.Links),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Kind", "Label", "Props", "Links").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

// detailView renders the property list of the node under the cursor.
func (m inspectModel) detailView() string {
	var b strings.Builder
	r := m.Rows[m.Cursor]

	title := r.Name
	if r.Label != "" && r.Label != r.Name {
		title += " (" + r.Label + ")"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(r.Kind))
	b.WriteString("\n\n")

	props := append([]string(nil), r.Props...)
	sort.Strings(props)
	if len(props) == 0 {
		b.WriteString(listDimStyle.Render("  no properties"))
		b.WriteString("\n")
	}
	for _, p := range props {
		b.WriteString("  " + StyleValue.Render(p) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("⏎/esc back  q quit"))
	return b.String()
}
