package shader

import (
	stderrors "errors"
	"fmt"

	"github.com/noderunner/noderunner/pkg/errors"
)

var (
	// ErrUnknownKind is returned by [Tree.NewNode] when no kind spec is
	// registered under the requested identifier, or the identifier is the
	// undefined-kind sentinel.
	ErrUnknownKind = stderrors.New("unknown node kind")

	// ErrForeignSocket is returned by [Tree.NewLink] when an endpoint's node
	// does not belong to this tree.
	ErrForeignSocket = stderrors.New("socket belongs to another tree")

	// ErrLinkDirection is returned by [Tree.NewLink] when the endpoints are
	// not an output feeding an input.
	ErrLinkDirection = stderrors.New("links connect an output socket to an input socket")
)

// Link is a directed connection from an output socket to an input socket.
type Link struct {
	From *Socket // output side
	To   *Socket // input side
}

// FromNode returns the link's source node.
func (l *Link) FromNode() *Node { return l.From.node }

// ToNode returns the link's destination node.
func (l *Link) ToNode() *Node { return l.To.node }

// InterfaceSocket is an entry in a group tree's interface. It is not a node
// socket itself: it is mirrored onto the group's pseudo-nodes and onto every
// group node bound to the tree.
type InterfaceSocket struct {
	Name        string
	Description string
	InOut       Direction
	SocketType  string
	Identifier  string
}

// Tree is a node container: the decode target and encode source.
//
// Node iteration order is insertion order, which the codec relies on for
// deterministic snapshots.
type Tree struct {
	Name string

	reg      *Registry
	nodes    []*Node
	byName   map[string]*Node
	links    []*Link
	iface    []*InterfaceSocket
	ifaceSeq int
	users    []*Node // group nodes whose Subtree is this tree
}

// NewTree creates an empty tree using the given registry.
// A nil registry falls back to [DefaultRegistry].
func NewTree(name string, reg *Registry) *Tree {
	if reg == nil {
		reg = DefaultRegistry()
	}
	return &Tree{
		Name:   name,
		reg:    reg,
		byName: make(map[string]*Node),
	}
}

// NewGroupTree creates a tree seeded with the group input/output pseudo-nodes,
// ready to be bound as a group node's interior.
func NewGroupTree(name string, reg *Registry) (*Tree, error) {
	t := NewTree(name, reg)
	if _, err := t.NewNode(KindGroupInput); err != nil {
		return nil, err
	}
	if _, err := t.NewNode(KindGroupOutput); err != nil {
		return nil, err
	}
	return t, nil
}

// Registry returns the kind registry the tree creates nodes from.
func (t *Tree) Registry() *Registry { return t.reg }

// Nodes returns all nodes in insertion order.
func (t *Tree) Nodes() []*Node { return t.nodes }

// Links returns all links in creation order.
func (t *Tree) Links() []*Link { return t.links }

// NodeByName finds a node by its unique name.
func (t *Tree) NodeByName(name string) (*Node, bool) {
	n, ok := t.byName[name]
	return n, ok
}

// NewNode creates a node of the given kind, named after the kind's default
// name (uniquified on collision). Unknown kinds fail with [ErrUnknownKind].
func (t *Tree) NewNode(kind string) (*Node, error) {
	if kind == KindUndefined {
		return nil, fmt.Errorf("create node: %w: %s", ErrUnknownKind, kind)
	}
	spec, ok := t.reg.Kind(kind)
	if !ok {
		return nil, fmt.Errorf("create node: %w: %s", ErrUnknownKind, kind)
	}

	n := newNode(kind, spec, t)
	n.Name = t.uniqueName(spec.DefaultName)
	t.nodes = append(t.nodes, n)
	t.byName[n.Name] = n

	if n.IsGroupInterface() {
		t.syncInterfaceNode(n)
	}
	return n, nil
}

// Rename gives the node a requested name, suffixing it Blender-style
// (".001", ".002", ...) on collision. The actual name is returned.
func (t *Tree) Rename(n *Node, name string) (string, error) {
	if err := errors.ValidateNodeName(name); err != nil {
		return "", err
	}
	if n.Name == name {
		return name, nil
	}
	delete(t.byName, n.Name)
	n.Name = t.uniqueName(name)
	t.byName[n.Name] = n
	return n.Name, nil
}

// RemoveNode detaches a node and every link touching it.
func (t *Tree) RemoveNode(n *Node) {
	kept := t.links[:0]
	for _, l := range t.links {
		if l.From.node != n && l.To.node != n {
			kept = append(kept, l)
		}
	}
	t.links = kept

	for i, other := range t.nodes {
		if other == n {
			t.nodes = append(t.nodes[:i], t.nodes[i+1:]...)
			break
		}
	}
	delete(t.byName, n.Name)

	for _, other := range t.nodes {
		if other.Parent == n {
			other.Parent = nil
		}
	}
}

// NewLink connects an output socket to an input socket.
func (t *Tree) NewLink(from, to *Socket) (*Link, error) {
	if from == nil || to == nil {
		return nil, fmt.Errorf("create link: %w", ErrForeignSocket)
	}
	if from.node == nil || from.node.tree != t || to.node == nil || to.node.tree != t {
		return nil, fmt.Errorf("create link: %w", ErrForeignSocket)
	}
	if from.Direction != Out || to.Direction != In {
		return nil, fmt.Errorf("create link: %w", ErrLinkDirection)
	}
	l := &Link{From: from, To: to}
	t.links = append(t.links, l)
	return l, nil
}

// =============================================================================
// Group Interface
// =============================================================================

// Interface returns the tree's interface sockets in creation order.
func (t *Tree) Interface() []*InterfaceSocket {
	return t.iface
}

// NewInterfaceSocket declares a new interface socket on the tree and mirrors
// it onto the group input/output pseudo-nodes and every bound group node.
//
// Identifiers are sequential per tree ("Socket_1", "Socket_2", ...). The
// sequence restarts for every fresh tree, so re-decoding a snapshot into two
// independent targets yields matching identifiers.
func (t *Tree) NewInterfaceSocket(name, description string, inOut Direction, socketType string) *InterfaceSocket {
	t.ifaceSeq++
	is := &InterfaceSocket{
		Name:        name,
		Description: description,
		InOut:       inOut,
		SocketType:  socketType,
		Identifier:  fmt.Sprintf("Socket_%d", t.ifaceSeq),
	}
	t.iface = append(t.iface, is)

	for _, n := range t.nodes {
		if n.IsGroupInterface() {
			t.mirrorInterfaceSocket(n, is)
		}
	}
	for _, g := range t.users {
		t.mirrorOnGroupNode(g, is)
	}
	return is
}

// BindGroup sets the node's interior tree and mirrors the interface onto the
// group node's own sockets. The node must be of the group kind.
func (t *Tree) BindGroup(n *Node, interior *Tree) error {
	if n.Kind != KindGroup {
		return fmt.Errorf("bind group interior: node %s is %s, want %s", n.Name, n.Kind, KindGroup)
	}
	n.Subtree = interior
	interior.users = append(interior.users, n)
	for _, is := range interior.iface {
		interior.mirrorOnGroupNode(n, is)
	}
	return nil
}

// mirrorInterfaceSocket projects one interface socket onto a pseudo-node:
// interface inputs appear as outputs of the group-input node, interface
// outputs as inputs of the group-output node.
func (t *Tree) mirrorInterfaceSocket(n *Node, is *InterfaceSocket) {
	spec := SocketSpec{Name: is.Name, Identifier: is.Identifier, Type: is.SocketType}
	switch {
	case n.Kind == KindGroupInput && is.InOut == In:
		n.addSocket(spec, Out)
	case n.Kind == KindGroupOutput && is.InOut == Out:
		n.addSocket(spec, In)
	}
}

// mirrorOnGroupNode projects one interface socket onto a bound group node:
// interface inputs become node inputs, interface outputs node outputs.
func (t *Tree) mirrorOnGroupNode(g *Node, is *InterfaceSocket) {
	spec := SocketSpec{Name: is.Name, Identifier: is.Identifier, Type: is.SocketType}
	g.addSocket(spec, is.InOut)
}

// syncInterfaceNode rebuilds a freshly created pseudo-node's sockets from the
// interface declared so far.
func (t *Tree) syncInterfaceNode(n *Node) {
	for _, is := range t.iface {
		t.mirrorInterfaceSocket(n, is)
	}
}

// uniqueName returns base, or base with the first free ".NNN" suffix.
func (t *Tree) uniqueName(base string) string {
	if base == "" {
		base = "Node"
	}
	if _, taken := t.byName[base]; !taken {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s.%03d", base, i)
		if _, taken := t.byName[candidate]; !taken {
			return candidate
		}
	}
}
