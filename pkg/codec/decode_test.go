package codec

import (
	"context"
	"testing"

	"github.com/noderunner/noderunner/pkg/shader"
	"github.com/noderunner/noderunner/pkg/snapshot"
)

func rgbToMixSnapshot() *snapshot.Graph {
	g := snapshot.NewGraph("Material")
	g.AddNode("RGB", snapshot.NewNode("ShaderNodeRGB", "base color"))
	g.AddNode("Mix", snapshot.NewNode("ShaderNodeMixRGB", ""))
	g.Links = append(g.Links, snapshot.Link{
		FromNode:             "RGB",
		ToNode:               "Mix",
		FromSocket:           "Color",
		FromSocketType:       shader.SocketColor,
		FromSocketIdentifier: "Color",
		ToSocket:             "Color1",
		ToSocketType:         shader.SocketColor,
		ToSocketIdentifier:   "Color1",
	})
	return g
}

func TestDecodeCreatesNodesAndLinks(t *testing.T) {
	target := shader.NewTree("Material", nil)
	report := Decode(context.Background(), rgbToMixSnapshot(), target, nil)

	if report.NodesCreated != 2 || report.LinksCreated != 1 {
		t.Fatalf("report = %+v, want 2 nodes and 1 link", report)
	}
	if report.HasDiagnostics() {
		t.Fatalf("unexpected diagnostics: %v", report.Diagnostics)
	}

	rgb, ok := target.NodeByName("RGB")
	if !ok {
		t.Fatal("RGB node missing")
	}
	if rgb.Label != "base color" {
		t.Errorf("label = %q, want %q", rgb.Label, "base color")
	}

	links := target.Links()
	if len(links) != 1 {
		t.Fatalf("tree has %d links, want 1", len(links))
	}
	if links[0].FromNode() != rgb || links[0].To.Identifier != "Color1" {
		t.Errorf("link endpoints wrong: %s -> %s", links[0].From.Identifier, links[0].To.Identifier)
	}
}

func TestDecodeUnknownKindIsSkippedNotFatal(t *testing.T) {
	g := rgbToMixSnapshot()
	g.AddNode("Mystery", snapshot.NewNode("ShaderNodeDoesNotExist", ""))
	g.AddNode("Undefined", snapshot.NewNode(shader.KindUndefined, ""))
	g.Links = append(g.Links, snapshot.Link{
		FromNode: "Mystery", ToNode: "Mix",
		FromSocketIdentifier: "Color", ToSocketIdentifier: "Color2",
	})

	target := shader.NewTree("Material", nil)
	report := Decode(context.Background(), g, target, nil)

	if report.NodesCreated != 2 || report.NodesSkipped != 2 {
		t.Errorf("report = %+v, want 2 created / 2 skipped", report)
	}
	if report.LinksCreated != 1 || report.LinksDropped != 1 {
		t.Errorf("report = %+v, want 1 link created / 1 dropped", report)
	}
	if len(target.Nodes()) != 2 {
		t.Errorf("tree has %d nodes, want 2", len(target.Nodes()))
	}
}

func TestDecodeMissingSocketDropsLink(t *testing.T) {
	g := rgbToMixSnapshot()
	g.Links[0].ToSocketIdentifier = "Nope"

	target := shader.NewTree("Material", nil)
	report := Decode(context.Background(), g, target, nil)

	if report.LinksCreated != 0 || report.LinksDropped != 1 {
		t.Errorf("report = %+v, want 0 created / 1 dropped", report)
	}
	if len(target.Links()) != 0 {
		t.Error("dropped link was still created")
	}
}

func TestDecodeFrameContainment(t *testing.T) {
	g := snapshot.NewGraph("Material")

	frame := snapshot.NewNode(shader.KindFrame, "layout")
	frame.Set("name", "Frame")
	frame.Set("location", []any{100.0, 200.0})
	g.AddNode("Frame", frame)

	child := snapshot.NewNode("ShaderNodeRGB", "")
	child.Set("name", "RGB")
	child.Set("parent", "Frame")
	child.Set("location", []any{10.0, 20.0})
	g.AddNode("RGB", child)

	target := shader.NewTree("Material", nil)
	Decode(context.Background(), g, target, nil)

	rgb, ok := target.NodeByName("RGB")
	if !ok {
		t.Fatal("RGB node missing")
	}
	if rgb.Parent == nil || !rgb.Parent.IsFrame() {
		t.Fatal("child lost its frame parent")
	}
	// Child positions travel frame-relative; absolute coordinates come back
	// as frame position + offset.
	if got := rgb.Location(); got != (shader.Vector2{110, 220}) {
		t.Errorf("child location = %v, want {110 220}", got)
	}
}

func TestDecodeAbsentFrameDropsParent(t *testing.T) {
	g := snapshot.NewGraph("Material")
	child := snapshot.NewNode("ShaderNodeRGB", "")
	child.Set("parent", "Frame")
	child.Set("location", []any{10.0, 20.0})
	g.AddNode("RGB", child)

	target := shader.NewTree("Material", nil)
	report := Decode(context.Background(), g, target, nil)

	rgb, _ := target.NodeByName("RGB")
	if rgb.Parent != nil {
		t.Error("parent kept despite frame missing from snapshot")
	}
	if got := rgb.Location(); got != (shader.Vector2{10, 20}) {
		t.Errorf("location = %v, want untranslated {10 20}", got)
	}
	if report.NodesCreated != 1 {
		t.Errorf("report = %+v", report)
	}
}

func TestDecodeRenamedFrameKeepsContainment(t *testing.T) {
	g := snapshot.NewGraph("Material")

	frame := snapshot.NewNode(shader.KindFrame, "")
	frame.Set("name", "Frame")
	frame.Set("location", []any{50.0, 50.0})
	g.AddNode("Frame", frame)

	child := snapshot.NewNode("ShaderNodeRGB", "")
	child.Set("parent", "Frame")
	g.AddNode("RGB", child)

	// The target already owns a frame named "Frame": the decoded frame is
	// suffixed, and the parent reference must follow the rename.
	target := shader.NewTree("Material", nil)
	if _, err := target.NewNode(shader.KindFrame); err != nil {
		t.Fatal(err)
	}

	Decode(context.Background(), g, target, nil)

	decoded, ok := target.NodeByName("Frame.001")
	if !ok {
		t.Fatal("renamed frame missing")
	}
	rgb, _ := target.NodeByName("RGB")
	if rgb.Parent != decoded {
		t.Errorf("child parent = %v, want the renamed frame", rgb.Parent)
	}
}

func TestDecodeNameCollisionKeepsLinksResolvable(t *testing.T) {
	target := shader.NewTree("Material", nil)
	pre, err := target.NewNode("ShaderNodeRGB")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := target.Rename(pre, "RGB"); err != nil {
		t.Fatal(err)
	}

	g := rgbToMixSnapshot()
	for _, ns := range []string{"RGB", "Mix"} {
		n, _ := g.Node(ns)
		n.Set("name", ns)
	}

	report := Decode(context.Background(), g, target, nil)
	if report.LinksCreated != 1 {
		t.Fatalf("report = %+v, want 1 link", report)
	}

	renamed, ok := target.NodeByName("RGB.001")
	if !ok {
		t.Fatal("decoded node was not suffixed")
	}
	if target.Links()[0].FromNode() != renamed {
		t.Error("link resolved against the pre-existing node, not the decoded one")
	}
}

func TestDecodeCreatesGroupInterfaceSockets(t *testing.T) {
	g := snapshot.NewGraph("Group")
	g.AddNode("Group Input", snapshot.NewNode(shader.KindGroupInput, ""))
	g.AddNode("Mix", snapshot.NewNode("ShaderNodeMixRGB", ""))
	g.AddNode("Group Output", snapshot.NewNode(shader.KindGroupOutput, ""))
	g.Links = append(g.Links,
		snapshot.Link{
			FromNode: "Group Input", ToNode: "Mix",
			FromSocket: "Fac", FromSocketIdentifier: "Socket_1",
			ToSocket: "Fac", ToSocketType: "NodeSocketFloatFactor", ToSocketIdentifier: "Fac",
		},
		snapshot.Link{
			FromNode: "Mix", ToNode: "Group Output",
			FromSocket: "Color", FromSocketType: shader.SocketColor, FromSocketIdentifier: "Color",
			ToSocket: "Result", ToSocketIdentifier: "Socket_2",
		},
	)

	target := shader.NewTree("Group", nil)
	report := Decode(context.Background(), g, target, nil)

	if report.LinksCreated != 2 || report.SocketsCreated != 2 {
		t.Fatalf("report = %+v, want 2 links and 2 created sockets", report)
	}

	iface := target.Interface()
	if len(iface) != 2 {
		t.Fatalf("interface has %d sockets, want 2", len(iface))
	}
	// Typed from the opposite endpoint, narrowed to a base kind.
	if iface[0].SocketType != shader.SocketFloat || iface[0].InOut != shader.In {
		t.Errorf("input interface socket = %+v", iface[0])
	}
	if iface[1].SocketType != shader.SocketColor || iface[1].InOut != shader.Out {
		t.Errorf("output interface socket = %+v", iface[1])
	}
	// Identifiers are deterministic per tree.
	if iface[0].Identifier != "Socket_1" || iface[1].Identifier != "Socket_2" {
		t.Errorf("identifiers = %s, %s", iface[0].Identifier, iface[1].Identifier)
	}
}

func TestSocketBaseType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"NodeSocketFloatFactor", shader.SocketFloat},
		{"NodeSocketVectorXYZ", shader.SocketVector},
		{"NodeSocketColor", shader.SocketColor},
		{"NodeSocketShader", shader.SocketShader},
		{"NodeSocketInt", shader.SocketInt},
		{"NodeSocketBool", shader.SocketBool},
		{"SomethingExotic", shader.SocketBool},
		{"", shader.SocketBool},
	}
	for _, tt := range tests {
		if got := socketBaseType(tt.in); got != tt.want {
			t.Errorf("socketBaseType(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
