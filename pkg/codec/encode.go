package codec

import (
	"context"
	"time"

	"github.com/noderunner/noderunner/pkg/observability"
	"github.com/noderunner/noderunner/pkg/shader"
	"github.com/noderunner/noderunner/pkg/snapshot"
)

// excludedProps is the fixed denylist for the generic property walk:
// read-only, derived, or UI-only names that must never travel in a snapshot.
var excludedProps = make(map[string]bool)

func init() {
	for _, name := range []string{
		"bl_description",
		"bl_height_default",
		"bl_height_max",
		"bl_height_min",
		"bl_icon",
		"bl_idname",
		"bl_label",
		"bl_static_type",
		"bl_width_default",
		"bl_width_max",
		"bl_width_min",
		"cache_point_density",
		"calc_point_density",
		"calc_point_density_minmax",
		"dimensions",
		"draw_buttons",
		"draw_buttons_ext",
		"hide",
		"input_template",
		"internal_links",
		"is_registered_node_type",
		"output_template",
		"poll",
		"poll_instance",
		"select",
		"socket_value_update",
		"update",
	} {
		excludedProps[name] = true
	}
}

type encoder struct {
	report *Report
}

// EncodeTree serializes a tree into a graph snapshot. A non-nil selection
// restricts the snapshot to the named nodes, in selection order; links are
// kept only when both endpoints are selected. Names that match no node are
// silently ignored.
//
// Per-attribute failures are recorded on the report and encoded as null;
// the traversal itself never fails.
func EncodeTree(ctx context.Context, tree *shader.Tree, selection []string) (*snapshot.Graph, *Report) {
	e := &encoder{report: &Report{}}
	start := time.Now()
	observability.Codec().OnEncodeStart(ctx, tree.Name, len(tree.Nodes()))

	g := e.encodeTree(ctx, tree, selection)

	observability.Codec().OnEncodeComplete(ctx, tree.Name, e.report.NodesEncoded, time.Since(start), nil)
	return g, e.report
}

func (e *encoder) encodeTree(ctx context.Context, tree *shader.Tree, selection []string) *snapshot.Graph {
	g := snapshot.NewGraph(tree.Name)

	var nodes []*shader.Node
	if selection == nil {
		nodes = tree.Nodes()
	} else {
		for _, name := range selection {
			if n, ok := tree.NodeByName(name); ok {
				nodes = append(nodes, n)
			}
		}
	}
	selected := make(map[*shader.Node]bool, len(nodes))
	for _, n := range nodes {
		selected[n] = true
	}

	for _, n := range nodes {
		g.AddNode(n.Name, e.encodeNode(ctx, n))
	}

	for _, l := range tree.Links() {
		if !selected[l.FromNode()] || !selected[l.ToNode()] {
			continue
		}
		g.Links = append(g.Links, snapshot.Link{
			FromNode:             l.FromNode().Name,
			ToNode:               l.ToNode().Name,
			FromSocket:           l.From.Name,
			FromSocketType:       l.From.Type,
			FromSocketIdentifier: l.From.Identifier,
			ToSocket:             l.To.Name,
			ToSocketType:         l.To.Type,
			ToSocketIdentifier:   l.To.Identifier,
		})
		e.report.LinksEncoded++
	}
	return g
}

// encodeNode walks one node's properties through the attribute codec.
// "type" and "label" are always present; everything else goes through the
// denylist and skips nil values, matching the producer's reflective walk.
func (e *encoder) encodeNode(ctx context.Context, n *shader.Node) *snapshot.Node {
	snap := snapshot.NewNode(n.Kind, n.Label)
	snap.Set("name", n.Name)

	if n.Parent != nil {
		snap.Set(snapshot.KeyParent, n.Parent.Name)
	}
	if n.Subtree != nil {
		snap.Set(snapshot.KeyNodeTree, e.encodeTree(ctx, n.Subtree, nil))
	}

	for _, p := range n.Properties() {
		if excludedProps[p.Name] || isNilValue(p.Value) {
			continue
		}
		value := p.Value
		// Framed children travel frame-relative; decode reconstructs the
		// absolute position from the frame's own location.
		if p.Name == "location" && n.Parent != nil && n.Parent.IsFrame() {
			value = n.Location().Sub(n.Parent.Location())
		}
		snap.Set(p.Name, e.encodeAttr(ctx, n.Name, p.Name, value))
	}

	snap.Set("inputs", e.encodeSockets(ctx, n, n.Inputs))
	snap.Set("outputs", e.encodeSockets(ctx, n, n.Outputs))

	e.report.NodesEncoded++
	return snap
}

// encodeSockets captures socket default values positionally. Sockets without
// a default (shader sockets) hold a null slot so positions stay aligned.
func (e *encoder) encodeSockets(ctx context.Context, n *shader.Node, sockets []*shader.Socket) []any {
	out := make([]any, len(sockets))
	for i, s := range sockets {
		if !s.HasDefault() {
			continue
		}
		out[i] = e.encodeAttr(ctx, n.Name, s.Name, s.Default)
	}
	return out
}

// isNilValue reports whether a property value is absent, including typed
// nil pointers stored behind the any interface.
func isNilValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case *shader.ColorRamp:
		return val == nil
	case *shader.ColorMapping:
		return val == nil
	case *shader.TextureMapping:
		return val == nil
	case *shader.CurveMapping:
		return val == nil
	case *shader.CurveMap:
		return val == nil
	case *shader.Image:
		return val == nil
	case *shader.ImageUser:
		return val == nil
	case *shader.Text:
		return val == nil
	case *shader.ObjectRef:
		return val == nil
	case *shader.Node:
		return val == nil
	}
	return false
}
