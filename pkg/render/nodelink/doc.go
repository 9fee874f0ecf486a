// Package nodelink renders shader node trees as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// nodes appear as boxes connected by arrows. It gives a quick visual answer
// to "what does this token contain" without a full node editor.
//
// # Usage
//
// Convert a tree to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(tree, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Diagram Mapping
//
//   - Nodes render as rounded boxes titled by label (falling back to name)
//   - Frames render as dashed clusters around their children
//   - Group nodes get a double outline; their interiors are not expanded
//   - Group input/output pseudo-nodes render dashed and grey
//   - Links render as arrows, labeled with socket names in detailed mode
//
// The generated DOT uses left-to-right layout (rankdir=LR), matching the
// flow direction of a shader editor.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
