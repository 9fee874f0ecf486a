package snapshot

import (
	"encoding/json"
	"strings"
	"testing"
)

func buildGraph() *Graph {
	g := NewGraph("Material")

	a := NewNode("ShaderNodeTexNoise", "noise")
	a.Set("scale", 5.0)
	a.Set("location", []any{10.0, -20.0})
	g.AddNode("Noise Texture", a)

	b := NewNode("ShaderNodeOutputMaterial", "")
	g.AddNode("Material Output", b)

	g.Links = append(g.Links, Link{
		FromNode:             "Noise Texture",
		ToNode:               "Material Output",
		FromSocket:           "Color",
		FromSocketType:       "NodeSocketColor",
		FromSocketIdentifier: "Color",
		ToSocket:             "Surface",
		ToSocketType:         "NodeSocketShader",
		ToSocketIdentifier:   "Surface",
	})
	return g
}

func TestGraphRoundTrip(t *testing.T) {
	g := buildGraph()

	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if back.Name != "Material" {
		t.Errorf("Name = %q, want Material", back.Name)
	}
	if back.Len() != 2 {
		t.Fatalf("Len = %d, want 2", back.Len())
	}
	if len(back.Links) != 1 {
		t.Fatalf("links = %d, want 1", len(back.Links))
	}
	if back.Links[0].ToSocketIdentifier != "Surface" {
		t.Errorf("ToSocketIdentifier = %q", back.Links[0].ToSocketIdentifier)
	}

	n, ok := back.Node("Noise Texture")
	if !ok {
		t.Fatal("Noise Texture snapshot missing")
	}
	if n.Type() != "ShaderNodeTexNoise" {
		t.Errorf("Type = %q", n.Type())
	}
	if v, _ := n.Get("scale"); v != 5.0 {
		t.Errorf("scale = %v, want 5.0", v)
	}
}

func TestNodeOrderPreserved(t *testing.T) {
	g := NewGraph("G")
	names := []string{"zeta", "alpha", "mid", "omega", "beta"}
	for _, name := range names {
		g.AddNode(name, NewNode("ShaderNodeValue", ""))
	}

	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	var got []string
	back.RangeNodes(func(name string, _ *Node) bool {
		got = append(got, name)
		return true
	})

	if len(got) != len(names) {
		t.Fatalf("got %d names, want %d", len(got), len(names))
	}
	for i, name := range names {
		if got[i] != name {
			t.Errorf("node %d = %q, want %q (insertion order lost)", i, got[i], name)
		}
	}
}

func TestNodePropertyOrderPreserved(t *testing.T) {
	n := NewNode("ShaderNodeTexNoise", "")
	keys := []string{"width", "scale", "detail", "location", "blend"}
	for i, k := range keys {
		n.Set(k, float64(i))
	}

	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var back Node
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	want := append([]string{KeyType, KeyLabel}, keys...)
	var got []string
	back.Range(func(name string, _ any) bool {
		got = append(got, name)
		return true
	})
	if len(got) != len(want) {
		t.Fatalf("got %d keys, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNestedTreeDecodesAsGraph(t *testing.T) {
	inner := NewGraph("NodeGroup")
	inner.AddNode("Group Input", NewNode("NodeGroupInput", ""))
	inner.AddNode("Group Output", NewNode("NodeGroupOutput", ""))
	inner.AddNode("Value", NewNode("ShaderNodeValue", ""))

	group := NewNode("ShaderNodeGroup", "grouped")
	group.Set(KeyNodeTree, inner)

	g := NewGraph("Material")
	g.AddNode("Group", group)

	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	node, ok := back.Node("Group")
	if !ok {
		t.Fatal("Group snapshot missing")
	}
	v, ok := node.Get(KeyNodeTree)
	if !ok {
		t.Fatal("node_tree key missing")
	}
	sub, ok := v.(*Graph)
	if !ok {
		t.Fatalf("node_tree decoded as %T, want *Graph", v)
	}
	if sub.Name != "NodeGroup" || sub.Len() != 3 {
		t.Errorf("nested graph = %q with %d nodes", sub.Name, sub.Len())
	}

	var order []string
	sub.RangeNodes(func(name string, _ *Node) bool {
		order = append(order, name)
		return true
	})
	if strings.Join(order, ",") != "Group Input,Group Output,Value" {
		t.Errorf("nested order = %v", order)
	}
}

func TestUnmarshalRejectsNonObjectNode(t *testing.T) {
	var n Node
	if err := json.Unmarshal([]byte(`[1, 2]`), &n); err == nil {
		t.Error("expected error for non-object node snapshot")
	}
}
