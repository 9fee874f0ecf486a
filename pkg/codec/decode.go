package codec

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/noderunner/noderunner/pkg/errors"
	"github.com/noderunner/noderunner/pkg/observability"
	"github.com/noderunner/noderunner/pkg/shader"
	"github.com/noderunner/noderunner/pkg/snapshot"
)

type decoder struct {
	report *Report
	assets *shader.Assets
}

// Decode applies a graph snapshot onto a target tree.
//
// Nodes are created in three passes: frames first (their renames and
// positions seed the containment maps), then every other node in snapshot
// order, then links. Per-node, per-link and per-attribute failures are
// recorded on the report and skipped; Decode itself never fails.
//
// assets may be nil, in which case image and text references resolve to
// nothing and leave their defaults in place.
func Decode(ctx context.Context, g *snapshot.Graph, target *shader.Tree, assets *shader.Assets) *Report {
	d := &decoder{report: &Report{}, assets: assets}
	start := time.Now()
	observability.Codec().OnDecodeStart(ctx, g.Name, g.Len())

	d.decodeTree(ctx, g, target)

	observability.Codec().OnDecodeComplete(ctx, g.Name, d.report.NodesCreated, time.Since(start), nil)
	return d.report
}

func (d *decoder) decodeTree(ctx context.Context, g *snapshot.Graph, tree *shader.Tree) {
	// Old snapshot name -> actual name after collision suffixing. Built for
	// frames only; parent references resolve exclusively through it.
	frameRename := make(map[string]string)
	// Actual frame name -> frame position, for rebuilding absolute child
	// coordinates from frame-relative offsets.
	frameLoc := make(map[string]shader.Vector2)
	isFrame := make(map[string]bool)

	// Live nodes by their original snapshot name; links resolve against
	// this index, so later renames never break the link pass.
	live := make(map[string]*shader.Node)

	g.RangeNodes(func(name string, ns *snapshot.Node) bool {
		if ns.Type() != shader.KindFrame {
			return true
		}
		isFrame[name] = true
		n := d.decodeNode(ctx, tree, name, ns, frameRename)
		if n != nil {
			frameRename[name] = n.Name
			frameLoc[n.Name] = n.Location()
			live[name] = n
		}
		return true
	})

	g.RangeNodes(func(name string, ns *snapshot.Node) bool {
		if isFrame[name] {
			return true
		}
		n := d.decodeNode(ctx, tree, name, ns, frameRename)
		live[name] = n
		if n == nil {
			return true
		}
		if n.Parent != nil && n.Parent.IsFrame() {
			if loc, ok := frameLoc[n.Parent.Name]; ok {
				n.SetLocation(n.Location().Add(loc))
			} else {
				// Frame not part of this snapshot (partial export).
				n.Parent = nil
			}
		}
		return true
	})

	for _, l := range g.Links {
		d.decodeLink(ctx, tree, live, l)
	}
}

// decodeNode creates one node and restores its properties. A nil return
// means the snapshot produced no live node (unknown or undefined kind).
func (d *decoder) decodeNode(ctx context.Context, tree *shader.Tree, snapName string, ns *snapshot.Node, frameRename map[string]string) *shader.Node {
	kind := ns.Type()
	n, err := tree.NewNode(kind)
	if err != nil {
		d.report.NodesSkipped++
		d.report.addNodeDiag(errors.ErrCodeUnknownKind, snapName, err.Error())
		observability.Codec().OnNodeSkipped(ctx, snapName, kind, err.Error())
		return nil
	}
	n.Label = ns.Label()

	// A group interior must exist before inputs, outputs and links are
	// restored: its interface drives the group node's own sockets. The
	// interior starts empty; the pseudo-nodes and interface sockets are
	// recreated from the nested snapshot itself.
	if v, ok := ns.Get(snapshot.KeyNodeTree); ok {
		if sub, ok := v.(*snapshot.Graph); ok && n.Kind == shader.KindGroup {
			interior := shader.NewTree(sub.Name, tree.Registry())
			if err := tree.BindGroup(n, interior); err != nil {
				d.report.addNodeDiag(errors.ErrCodeInternal, n.Name, fmt.Sprintf("group interior: %v", err))
			} else {
				d.decodeTree(ctx, sub, interior)
			}
		}
	}

	ns.Range(func(name string, value any) bool {
		d.applyProperty(ctx, tree, n, name, value, frameRename)
		return true
	})

	d.report.NodesCreated++
	return n
}

// applyProperty dispatches one snapshot property by name onto a live node.
func (d *decoder) applyProperty(ctx context.Context, tree *shader.Tree, n *shader.Node, name string, value any, frameRename map[string]string) {
	switch name {
	case snapshot.KeyType, snapshot.KeyLabel, snapshot.KeyNodeTree, "image_user":
		// Read-only or already applied.
	case "name":
		if requested, ok := value.(string); ok {
			if _, err := tree.Rename(n, requested); err != nil {
				d.report.addNodeDiag(errors.ErrCodeInvalidInput, n.Name, fmt.Sprintf("rename to %q: %v", requested, err))
			}
		}
	case "color_ramp":
		decodeColorRamp(n, value)
	case "color_mapping":
		decodeColorMapping(n, value)
	case "texture_mapping":
		decodeTextureMapping(n, value)
	case "mapping":
		decodeCurveMapping(n, value)
	case "image":
		decodeImage(n, value, d.assets, d.report)
	case "inputs":
		decodeInputs(n, value)
	case "outputs":
		decodeOutputs(n, value)
	case "script":
		if t := decodeText(value, d.assets); t != nil {
			n.SetProp("script", t)
		}
	case "text":
		// Frame annotation bodies resolve like scripts; on any other node
		// the name is an ordinary property.
		if n.IsFrame() {
			if t := decodeText(value, d.assets); t != nil {
				n.SetProp("text", t)
			}
			return
		}
		d.assignProperty(n, name, value)
	case snapshot.KeyParent:
		old, ok := value.(string)
		if !ok {
			return
		}
		if actual, found := frameRename[old]; found {
			if frame, live := tree.NodeByName(actual); live {
				n.Parent = frame
			}
		}
	default:
		d.assignProperty(n, name, value)
	}
}

// assignProperty is the direct-assignment fallback: the decoded value is
// coerced to the shape of the value it replaces so typed properties keep
// their type across a round trip.
func (d *decoder) assignProperty(n *shader.Node, name string, value any) {
	if existing, ok := n.Prop(name); ok {
		n.SetProp(name, coerce(existing, value))
		return
	}
	n.SetProp(name, value)
}

// =============================================================================
// Link Pass
// =============================================================================

// decodeLink resolves one link record against the live-node index and
// connects the sockets. Missing sockets on group interface pseudo-nodes are
// created on the tree interface, typed from the opposite endpoint.
func (d *decoder) decodeLink(ctx context.Context, tree *shader.Tree, live map[string]*shader.Node, l snapshot.Link) {
	from, to := live[l.FromNode], live[l.ToNode]
	if from == nil || to == nil {
		d.dropLink(ctx, l, errors.ErrCodeUnknownNode, "endpoint node not found")
		return
	}

	out := from.SocketByIdentifier(l.FromSocketIdentifier, shader.Out)
	if out == nil && from.Kind == shader.KindGroupInput {
		is := tree.NewInterfaceSocket(l.FromSocket, l.FromSocket+" Input", shader.In, socketBaseType(l.ToSocketType))
		out = from.SocketByIdentifier(is.Identifier, shader.Out)
		d.report.SocketsCreated++
	}

	in := to.SocketByIdentifier(l.ToSocketIdentifier, shader.In)
	if in == nil && to.Kind == shader.KindGroupOutput {
		is := tree.NewInterfaceSocket(l.ToSocket, l.ToSocket+" Output", shader.Out, socketBaseType(l.FromSocketType))
		in = to.SocketByIdentifier(is.Identifier, shader.In)
		d.report.SocketsCreated++
	}

	if out == nil || in == nil {
		d.dropLink(ctx, l, errors.ErrCodeUnknownSocket, "socket not found")
		return
	}
	if _, err := tree.NewLink(out, in); err != nil {
		d.dropLink(ctx, l, errors.ErrCodeInvalidInput, err.Error())
		return
	}
	d.report.LinksCreated++
}

func (d *decoder) dropLink(ctx context.Context, l snapshot.Link, code errors.Code, reason string) {
	d.report.LinksDropped++
	d.report.addLinkDiag(code, fmt.Sprintf("%s:%s -> %s:%s: %s", l.FromNode, l.FromSocket, l.ToNode, l.ToSocket, reason))
	observability.Codec().OnLinkDropped(ctx, l.FromNode, l.ToNode, reason)
}

// socketBaseType narrows a compound socket kind ("NodeSocketFloatFactor")
// to the base kind usable for interface socket creation. The list order is
// a fixed priority; the first substring match wins, and anything
// unrecognized falls back to the boolean kind.
func socketBaseType(socketType string) string {
	for _, base := range []string{
		shader.SocketBool,
		shader.SocketVector,
		shader.SocketInt,
		shader.SocketShader,
		shader.SocketFloat,
		shader.SocketColor,
	} {
		if strings.Contains(socketType, base) {
			return base
		}
	}
	return shader.SocketBool
}
