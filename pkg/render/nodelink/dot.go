package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/noderunner/noderunner/pkg/render"
	"github.com/noderunner/noderunner/pkg/shader"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes node kinds and socket names in the diagram.
	// When false, only node names and plain arrows are shown.
	Detailed bool
}

// ToDOT converts a tree to Graphviz DOT format for node-link visualization.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF],
// or [RenderPNG].
//
// Frames become clusters containing their children; group nodes are drawn
// with a double outline to mark that they hide an interior tree.
func ToDOT(t *shader.Tree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	children := make(map[*shader.Node][]*shader.Node)
	for _, n := range t.Nodes() {
		if n.IsFrame() {
			continue
		}
		children[n.Parent] = append(children[n.Parent], n)
	}

	for _, frame := range t.Nodes() {
		if !frame.IsFrame() {
			continue
		}
		fmt.Fprintf(&buf, "  subgraph \"cluster_%s\" {\n", frame.Name)
		fmt.Fprintf(&buf, "    label=%q;\n", frameTitle(frame))
		buf.WriteString("    style=dashed;\n")
		for _, n := range children[frame] {
			writeNode(&buf, "    ", n, opts)
		}
		buf.WriteString("  }\n")
	}
	for _, n := range children[nil] {
		writeNode(&buf, "  ", n, opts)
	}

	buf.WriteString("\n")
	for _, l := range t.Links() {
		if opts.Detailed {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q, fontsize=16];\n",
				l.FromNode().Name, l.ToNode().Name,
				l.From.Name+" → "+l.To.Name)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", l.FromNode().Name, l.ToNode().Name)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeNode(buf *bytes.Buffer, indent string, n *shader.Node, opts Options) {
	attrs := []string{fmt.Sprintf("label=%q", nodeTitle(n, opts.Detailed))}
	if n.Kind == shader.KindGroup {
		attrs = append(attrs, "peripheries=2")
	}
	if n.IsGroupInterface() {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	fmt.Fprintf(buf, "%s%q [%s];\n", indent, n.Name, strings.Join(attrs, ", "))
}

func nodeTitle(n *shader.Node, detailed bool) string {
	title := n.Name
	if n.Label != "" {
		title = n.Label
	}
	if detailed {
		title += "\n" + n.Kind
	}
	return title
}

func frameTitle(frame *shader.Node) string {
	if frame.Label != "" {
		return frame.Label
	}
	return frame.Name
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
