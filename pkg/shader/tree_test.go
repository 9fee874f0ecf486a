package shader

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewNodeNaming(t *testing.T) {
	tree := NewTree("Material", nil)

	first, err := tree.NewNode("ShaderNodeRGB")
	if err != nil {
		t.Fatal(err)
	}
	if first.Name != "RGB" {
		t.Errorf("first node name = %q, want %q", first.Name, "RGB")
	}

	second, err := tree.NewNode("ShaderNodeRGB")
	if err != nil {
		t.Fatal(err)
	}
	if second.Name != "RGB.001" {
		t.Errorf("second node name = %q, want %q", second.Name, "RGB.001")
	}

	if got, ok := tree.NodeByName("RGB.001"); !ok || got != second {
		t.Error("NodeByName should find the suffixed node")
	}
}

func TestNewNodeUnknownKind(t *testing.T) {
	tree := NewTree("Material", nil)

	for _, kind := range []string{"ShaderNodeDoesNotExist", KindUndefined} {
		if _, err := tree.NewNode(kind); !errors.Is(err, ErrUnknownKind) {
			t.Errorf("NewNode(%q) error = %v, want ErrUnknownKind", kind, err)
		}
	}
}

func TestNodesInsertionOrder(t *testing.T) {
	tree := NewTree("Material", nil)
	kinds := []string{"ShaderNodeRGB", "ShaderNodeMixRGB", "ShaderNodeValue"}
	for _, k := range kinds {
		if _, err := tree.NewNode(k); err != nil {
			t.Fatal(err)
		}
	}

	for i, n := range tree.Nodes() {
		if n.Kind != kinds[i] {
			t.Errorf("Nodes()[%d].Kind = %q, want %q", i, n.Kind, kinds[i])
		}
	}
}

func TestRename(t *testing.T) {
	tree := NewTree("Material", nil)
	rgb, _ := tree.NewNode("ShaderNodeRGB")
	mix, _ := tree.NewNode("ShaderNodeMixRGB")

	got, err := tree.Rename(mix, "Base Color")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Base Color" {
		t.Errorf("Rename = %q, want %q", got, "Base Color")
	}
	if _, ok := tree.NodeByName("Mix"); ok {
		t.Error("old name should no longer resolve")
	}

	// Renaming onto a taken name suffixes.
	got, err = tree.Rename(rgb, "Base Color")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Base Color.001" {
		t.Errorf("colliding Rename = %q, want %q", got, "Base Color.001")
	}

	// Renaming to the current name is a no-op.
	got, err = tree.Rename(mix, "Base Color")
	if err != nil || got != "Base Color" {
		t.Errorf("self Rename = %q, %v", got, err)
	}
}

func TestRenameRejectsInvalidNames(t *testing.T) {
	tree := NewTree("Material", nil)
	rgb, _ := tree.NewNode("ShaderNodeRGB")

	for _, name := range []string{"", "bad__NRname"} {
		if _, err := tree.Rename(rgb, name); err == nil {
			t.Errorf("Rename(%q) should fail", name)
		}
	}
}

func TestNewLink(t *testing.T) {
	tree := NewTree("Material", nil)
	rgb, _ := tree.NewNode("ShaderNodeRGB")
	mix, _ := tree.NewNode("ShaderNodeMixRGB")

	l, err := tree.NewLink(rgb.Outputs[0], mix.Inputs[1])
	if err != nil {
		t.Fatal(err)
	}
	if l.FromNode() != rgb || l.ToNode() != mix {
		t.Error("link endpoints do not match their nodes")
	}
	if len(tree.Links()) != 1 {
		t.Errorf("tree has %d links, want 1", len(tree.Links()))
	}
}

func TestNewLinkErrors(t *testing.T) {
	tree := NewTree("Material", nil)
	other := NewTree("Other", nil)
	rgb, _ := tree.NewNode("ShaderNodeRGB")
	mix, _ := tree.NewNode("ShaderNodeMixRGB")
	foreign, _ := other.NewNode("ShaderNodeMixRGB")

	tests := []struct {
		name string
		from *Socket
		to   *Socket
		want error
	}{
		{name: "nil endpoint", from: rgb.Outputs[0], to: nil, want: ErrForeignSocket},
		{name: "foreign node", from: rgb.Outputs[0], to: foreign.Inputs[0], want: ErrForeignSocket},
		{name: "input to input", from: mix.Inputs[0], to: mix.Inputs[1], want: ErrLinkDirection},
		{name: "output to output", from: rgb.Outputs[0], to: mix.Outputs[0], want: ErrLinkDirection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tree.NewLink(tt.from, tt.to); !errors.Is(err, tt.want) {
				t.Errorf("NewLink error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRemoveNode(t *testing.T) {
	tree := NewTree("Material", nil)
	frame, _ := tree.NewNode(KindFrame)
	rgb, _ := tree.NewNode("ShaderNodeRGB")
	mix, _ := tree.NewNode("ShaderNodeMixRGB")
	rgb.Parent = frame
	if _, err := tree.NewLink(rgb.Outputs[0], mix.Inputs[1]); err != nil {
		t.Fatal(err)
	}

	tree.RemoveNode(mix)
	if len(tree.Links()) != 0 {
		t.Error("links touching the removed node should be dropped")
	}

	tree.RemoveNode(frame)
	if rgb.Parent != nil {
		t.Error("children of a removed frame should be unparented")
	}
	if len(tree.Nodes()) != 1 {
		t.Errorf("tree has %d nodes, want 1", len(tree.Nodes()))
	}
}

func TestNewGroupTreeSeedsPseudoNodes(t *testing.T) {
	interior, err := NewGroupTree("Group", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := interior.NodeByName("Group Input"); !ok {
		t.Error("group tree should contain the input pseudo-node")
	}
	if _, ok := interior.NodeByName("Group Output"); !ok {
		t.Error("group tree should contain the output pseudo-node")
	}
}

func TestInterfaceSocketIdentifiers(t *testing.T) {
	interior, _ := NewGroupTree("Group", nil)

	for i := 1; i <= 3; i++ {
		is := interior.NewInterfaceSocket(fmt.Sprintf("Value %d", i), "", In, SocketFloat)
		want := fmt.Sprintf("Socket_%d", i)
		if is.Identifier != want {
			t.Errorf("identifier = %q, want %q", is.Identifier, want)
		}
	}

	// A fresh tree restarts the sequence.
	fresh, _ := NewGroupTree("Group", nil)
	if is := fresh.NewInterfaceSocket("Value", "", In, SocketFloat); is.Identifier != "Socket_1" {
		t.Errorf("fresh tree identifier = %q, want Socket_1", is.Identifier)
	}
}

func TestInterfaceSocketMirroring(t *testing.T) {
	interior, _ := NewGroupTree("Group", nil)
	in, _ := interior.NodeByName("Group Input")
	out, _ := interior.NodeByName("Group Output")

	interior.NewInterfaceSocket("Fac", "", In, SocketFloat)
	interior.NewInterfaceSocket("Color", "", Out, SocketColor)

	// Interface inputs surface as outputs of the group-input pseudo-node.
	if s := in.SocketByIdentifier("Socket_1", Out); s == nil || s.Name != "Fac" {
		t.Error("interface input should mirror onto the group-input node")
	}
	// Interface outputs surface as inputs of the group-output pseudo-node.
	if s := out.SocketByIdentifier("Socket_2", In); s == nil || s.Name != "Color" {
		t.Error("interface output should mirror onto the group-output node")
	}
}

func TestBindGroupMirrorsInterface(t *testing.T) {
	outer := NewTree("Material", nil)
	interior, _ := NewGroupTree("Group", nil)
	interior.NewInterfaceSocket("Fac", "", In, SocketFloat)

	g, _ := outer.NewNode(KindGroup)
	if err := outer.BindGroup(g, interior); err != nil {
		t.Fatal(err)
	}
	if g.Subtree != interior {
		t.Error("BindGroup should set the subtree")
	}
	if s := g.SocketByIdentifier("Socket_1", In); s == nil || s.Name != "Fac" {
		t.Error("existing interface sockets should mirror onto the group node")
	}

	// Sockets declared after binding also reach the group node.
	interior.NewInterfaceSocket("Color", "", Out, SocketColor)
	if s := g.SocketByIdentifier("Socket_2", Out); s == nil || s.Name != "Color" {
		t.Error("new interface sockets should mirror onto bound group nodes")
	}

	rgb, _ := outer.NewNode("ShaderNodeRGB")
	if err := outer.BindGroup(rgb, interior); err == nil {
		t.Error("BindGroup should reject non-group nodes")
	}
}

func TestNodePropertyDefaults(t *testing.T) {
	tree := NewTree("Material", nil)
	mix, _ := tree.NewNode("ShaderNodeMixRGB")

	if v, ok := mix.Prop("blend_type"); !ok || v != "MIX" {
		t.Errorf("blend_type = %v, want MIX", v)
	}
	if v, ok := mix.Prop("location"); !ok || v != (Vector2{}) {
		t.Errorf("location = %v, want zero vector", v)
	}

	// Defaults are copies: mutating one node must not leak into the next.
	mix.SetProp("blend_type", "MULTIPLY")
	second, _ := tree.NewNode("ShaderNodeMixRGB")
	if v, _ := second.Prop("blend_type"); v != "MIX" {
		t.Errorf("second node blend_type = %v, want MIX", v)
	}
}

func TestSocketDefaults(t *testing.T) {
	tests := []struct {
		socketType string
		want       any
	}{
		{socketType: SocketFloat, want: 0.0},
		{socketType: "NodeSocketFloatFactor", want: 0.0},
		{socketType: SocketBool, want: false},
		{socketType: SocketInt, want: 0},
		{socketType: SocketColor, want: Color{0.5, 0.5, 0.5, 1}},
		{socketType: SocketVector, want: Vector{}},
		{socketType: SocketShader, want: nil},
	}

	for _, tt := range tests {
		if got := SocketDefault(tt.socketType); got != tt.want {
			t.Errorf("SocketDefault(%q) = %v, want %v", tt.socketType, got, tt.want)
		}
	}
}

func TestLocation(t *testing.T) {
	tree := NewTree("Material", nil)
	rgb, _ := tree.NewNode("ShaderNodeRGB")

	rgb.SetLocation(Vector2{40, -60})
	if got := rgb.Location(); got != (Vector2{40, -60}) {
		t.Errorf("Location = %v, want {40 -60}", got)
	}
	if v, _ := rgb.Prop("location"); v != (Vector2{40, -60}) {
		t.Error("SetLocation should write the location property")
	}
}
