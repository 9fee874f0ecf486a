package codec

import (
	"context"
	"testing"

	"github.com/noderunner/noderunner/pkg/shader"
	"github.com/noderunner/noderunner/pkg/snapshot"
)

// buildMaterial assembles a small but representative tree: a framed RGB
// source feeding a mix node, with tweaked defaults everywhere.
func buildMaterial(t *testing.T) *shader.Tree {
	t.Helper()
	tree := shader.NewTree("Material", nil)

	frame, err := tree.NewNode(shader.KindFrame)
	if err != nil {
		t.Fatal(err)
	}
	frame.Label = "sources"
	frame.SetLocation(shader.Vector2{-300, 100})

	rgb, err := tree.NewNode("ShaderNodeRGB")
	if err != nil {
		t.Fatal(err)
	}
	rgb.Parent = frame
	rgb.SetLocation(shader.Vector2{40, -60})
	rgb.Outputs[0].Default = shader.Color{0.2, 0.4, 0.6, 1}

	mix, err := tree.NewNode("ShaderNodeMixRGB")
	if err != nil {
		t.Fatal(err)
	}
	mix.SetProp("blend_type", "MULTIPLY")
	mix.Inputs[0].Default = 0.25

	if _, err := tree.NewLink(rgb.Outputs[0], mix.Inputs[1]); err != nil {
		t.Fatal(err)
	}
	return tree
}

// jsonRoundTrip pushes a snapshot through its wire representation so decode
// sees the value shapes a real token produces.
func jsonRoundTrip(t *testing.T, g *snapshot.Graph) *snapshot.Graph {
	t.Helper()
	raw, err := snapshot.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := snapshot.Unmarshal(raw)
	if err != nil {
		t.Fatal(err)
	}
	return decoded
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	source := buildMaterial(t)

	g, report := EncodeTree(context.Background(), source, nil)
	if report.HasDiagnostics() {
		t.Fatalf("encode diagnostics: %v", report.Diagnostics)
	}
	if report.NodesEncoded != 3 || report.LinksEncoded != 1 {
		t.Fatalf("encode report = %+v", report)
	}

	target := shader.NewTree("Material", nil)
	decodeReport := Decode(context.Background(), jsonRoundTrip(t, g), target, nil)
	if decodeReport.HasDiagnostics() {
		t.Fatalf("decode diagnostics: %v", decodeReport.Diagnostics)
	}

	if len(target.Nodes()) != 3 || len(target.Links()) != 1 {
		t.Fatalf("target has %d nodes / %d links", len(target.Nodes()), len(target.Links()))
	}

	rgb, ok := target.NodeByName("RGB")
	if !ok {
		t.Fatal("RGB node missing")
	}
	if rgb.Parent == nil || rgb.Parent.Label != "sources" {
		t.Error("frame containment lost")
	}
	// Locations survive the frame-relative wire representation.
	if got := rgb.Location(); got != (shader.Vector2{40, -60}) {
		t.Errorf("RGB location = %v, want {40 -60}", got)
	}
	if got := rgb.Outputs[0].Default; got != (shader.Color{0.2, 0.4, 0.6, 1}) {
		t.Errorf("RGB output default = %v", got)
	}

	mix, ok := target.NodeByName("Mix")
	if !ok {
		t.Fatal("Mix node missing")
	}
	if v, _ := mix.Prop("blend_type"); v != "MULTIPLY" {
		t.Errorf("blend_type = %v, want MULTIPLY", v)
	}
	if got := mix.Inputs[0].Default; got != 0.25 {
		t.Errorf("Fac default = %v, want 0.25", got)
	}
}

func TestRoundTripIsStable(t *testing.T) {
	source := buildMaterial(t)
	g, _ := EncodeTree(context.Background(), source, nil)

	first, err := snapshot.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}

	// Decoding and re-encoding a decoded tree yields an identical snapshot.
	target := shader.NewTree("Material", nil)
	Decode(context.Background(), jsonRoundTrip(t, g), target, nil)
	g2, _ := EncodeTree(context.Background(), target, nil)
	second, err := snapshot.Marshal(g2)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Errorf("re-encoded snapshot differs:\n%s\n%s", first, second)
	}
}

func TestEncodeSelectionFiltersNodesAndLinks(t *testing.T) {
	source := buildMaterial(t)

	g, report := EncodeTree(context.Background(), source, []string{"Mix", "RGB"})
	if report.NodesEncoded != 2 {
		t.Fatalf("encoded %d nodes, want 2", report.NodesEncoded)
	}
	if _, ok := g.Node("Frame"); ok {
		t.Error("unselected frame leaked into the snapshot")
	}
	// Both link endpoints are selected, so the link survives.
	if len(g.Links) != 1 {
		t.Errorf("snapshot has %d links, want 1", len(g.Links))
	}

	// Selection order drives snapshot order.
	var order []string
	g.RangeNodes(func(name string, _ *snapshot.Node) bool {
		order = append(order, name)
		return true
	})
	if len(order) != 2 || order[0] != "Mix" || order[1] != "RGB" {
		t.Errorf("snapshot order = %v, want [Mix RGB]", order)
	}

	// Dropping one endpoint drops the link.
	g, _ = EncodeTree(context.Background(), source, []string{"Mix"})
	if len(g.Links) != 0 {
		t.Errorf("snapshot has %d links, want 0", len(g.Links))
	}

	// Unknown selection names are ignored.
	g, _ = EncodeTree(context.Background(), source, []string{"Mix", "Nope"})
	if g.Len() != 1 {
		t.Errorf("snapshot has %d nodes, want 1", g.Len())
	}
}

func TestRoundTripGroupNode(t *testing.T) {
	reg := shader.DefaultRegistry()
	source := shader.NewTree("Material", reg)

	interior, err := shader.NewGroupTree("Shared Group", reg)
	if err != nil {
		t.Fatal(err)
	}
	interior.NewInterfaceSocket("Fac", "", shader.In, shader.SocketFloat)
	interior.NewInterfaceSocket("Color", "", shader.Out, shader.SocketColor)

	mix, err := interior.NewNode("ShaderNodeMixRGB")
	if err != nil {
		t.Fatal(err)
	}
	groupIn, _ := interior.NodeByName("Group Input")
	groupOut, _ := interior.NodeByName("Group Output")
	if _, err := interior.NewLink(groupIn.Outputs[0], mix.Inputs[0]); err != nil {
		t.Fatal(err)
	}
	if _, err := interior.NewLink(mix.Outputs[0], groupOut.Inputs[0]); err != nil {
		t.Fatal(err)
	}

	group, err := source.NewNode(shader.KindGroup)
	if err != nil {
		t.Fatal(err)
	}
	if err := source.BindGroup(group, interior); err != nil {
		t.Fatal(err)
	}

	rgb, err := source.NewNode("ShaderNodeRGB")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := source.NewLink(rgb.Outputs[0], group.Inputs[0]); err != nil {
		t.Fatal(err)
	}

	g, report := EncodeTree(context.Background(), source, nil)
	if report.HasDiagnostics() {
		t.Fatalf("encode diagnostics: %v", report.Diagnostics)
	}

	target := shader.NewTree("Material", reg)
	decodeReport := Decode(context.Background(), jsonRoundTrip(t, g), target, nil)
	if decodeReport.HasDiagnostics() {
		t.Fatalf("decode diagnostics: %v", decodeReport.Diagnostics)
	}

	decoded, ok := target.NodeByName("Group")
	if !ok {
		t.Fatal("group node missing")
	}
	if decoded.Subtree == nil {
		t.Fatal("group interior missing")
	}
	if decoded.Subtree.Name != "Shared Group" {
		t.Errorf("interior name = %q", decoded.Subtree.Name)
	}
	if len(decoded.Subtree.Nodes()) != 3 {
		t.Errorf("interior has %d nodes, want 3", len(decoded.Subtree.Nodes()))
	}
	if len(decoded.Subtree.Links()) != 2 {
		t.Errorf("interior has %d links, want 2", len(decoded.Subtree.Links()))
	}

	// The group node regained its mirrored sockets, and the outer link
	// found the recreated input.
	if len(decoded.Inputs) != 1 || len(decoded.Outputs) != 1 {
		t.Fatalf("group node has %d inputs / %d outputs, want 1 / 1", len(decoded.Inputs), len(decoded.Outputs))
	}
	if len(target.Links()) != 1 {
		t.Fatalf("target has %d links, want 1", len(target.Links()))
	}
	if target.Links()[0].To.Node() != decoded {
		t.Error("outer link did not land on the group node")
	}
}
