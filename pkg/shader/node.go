package shader

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Well-known node kinds with structural meaning to the codec.
const (
	// KindFrame is the visual container kind. Frames never compute anything;
	// other nodes may declare one as their parent.
	KindFrame = "NodeFrame"

	// KindGroup is a node whose body is a nested tree.
	KindGroup = "ShaderNodeGroup"

	// KindGroupInput and KindGroupOutput are the pseudo-nodes exposing a group
	// interior's interface. Their sockets mirror the tree interface and are
	// created lazily during link application, not from a kind template.
	KindGroupInput  = "NodeGroupInput"
	KindGroupOutput = "NodeGroupOutput"

	// KindUndefined is the sentinel kind for nodes whose kind was not
	// recognized by the producing environment. Such nodes are never created.
	KindUndefined = "NodeUndefined"
)

// Property is a named property value in declaration order.
type Property struct {
	Name  string
	Value any
}

// Node is a single node instance in a tree.
//
// Properties live in an ordered bag keyed by name; the codec enumerates them
// generically via [Node.Properties] without knowing the kind's schema.
type Node struct {
	Kind  string
	Name  string
	Label string

	Inputs  []*Socket
	Outputs []*Socket

	// Parent is the containing frame, or nil.
	Parent *Node

	// Subtree is the group interior for KindGroup nodes, nil otherwise.
	Subtree *Tree

	props *orderedmap.OrderedMap[string, any]
	tree  *Tree
}

// Tree returns the tree the node belongs to.
func (n *Node) Tree() *Tree { return n.tree }

// IsFrame reports whether the node is a visual container.
func (n *Node) IsFrame() bool { return n.Kind == KindFrame }

// IsGroupInterface reports whether the node is a group input/output pseudo-node.
func (n *Node) IsGroupInterface() bool {
	return n.Kind == KindGroupInput || n.Kind == KindGroupOutput
}

// Prop returns the property value for name.
func (n *Node) Prop(name string) (any, bool) {
	return n.props.Get(name)
}

// SetProp assigns a property value. Assigning an unknown name adds it to the
// bag; the host environment is tolerant of producer/consumer schema drift.
func (n *Node) SetProp(name string, v any) {
	n.props.Set(name, v)
}

// Properties returns all properties in declaration order.
func (n *Node) Properties() []Property {
	out := make([]Property, 0, n.props.Len())
	for pair := n.props.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Property{Name: pair.Key, Value: pair.Value})
	}
	return out
}

// SocketByIdentifier finds a socket by its stable identifier and direction.
// Returns nil if no socket matches.
func (n *Node) SocketByIdentifier(identifier string, dir Direction) *Socket {
	sockets := n.Inputs
	if dir == Out {
		sockets = n.Outputs
	}
	for _, s := range sockets {
		if s.Identifier == identifier {
			return s
		}
	}
	return nil
}

// Location returns the node's position, or the zero vector when the
// location property is unset.
func (n *Node) Location() Vector2 {
	if v, ok := n.props.Get("location"); ok {
		if loc, ok := v.(Vector2); ok {
			return loc
		}
	}
	return Vector2{}
}

// SetLocation moves the node.
func (n *Node) SetLocation(loc Vector2) {
	n.props.Set("location", loc)
}

// addSocket appends a socket built from a template and binds it to the node.
func (n *Node) addSocket(spec SocketSpec, dir Direction) *Socket {
	identifier := spec.Identifier
	if identifier == "" {
		identifier = spec.Name
	}
	def := spec.Default
	if def == nil {
		def = SocketDefault(spec.Type)
	}
	s := &Socket{
		Name:       spec.Name,
		Identifier: identifier,
		Type:       spec.Type,
		Direction:  dir,
		Default:    cloneValue(def),
		node:       n,
	}
	if dir == Out {
		n.Outputs = append(n.Outputs, s)
	} else {
		n.Inputs = append(n.Inputs, s)
	}
	return s
}

func newNode(kind string, spec *KindSpec, t *Tree) *Node {
	n := &Node{
		Kind:  kind,
		props: orderedmap.New[string, any](),
		tree:  t,
	}
	for _, p := range commonProps() {
		n.props.Set(p.Name, cloneValue(p.Value))
	}
	for _, p := range spec.Props {
		n.props.Set(p.Name, cloneValue(p.Default))
	}
	for _, in := range spec.Inputs {
		n.addSocket(in, In)
	}
	for _, out := range spec.Outputs {
		n.addSocket(out, Out)
	}
	return n
}

// commonProps are the properties every node kind carries regardless of its
// template. "dimensions", "select" and "hide" exist on the instance but sit
// on the codec's exclusion list, matching the host environment where they
// are derived or UI-only.
func commonProps() []Property {
	return []Property{
		{Name: "location", Value: Vector2{}},
		{Name: "width", Value: 140.0},
		{Name: "height", Value: 100.0},
		{Name: "color", Value: Color{0.608, 0.608, 0.608, 1}},
		{Name: "use_custom_color", Value: false},
		{Name: "mute", Value: false},
		{Name: "select", Value: false},
		{Name: "hide", Value: false},
		{Name: "dimensions", Value: Vector2{140, 100}},
	}
}
