package shader

import "strings"

// Direction distinguishes input from output sockets.
type Direction int

const (
	// In marks sockets that receive links.
	In Direction = iota
	// Out marks sockets that originate links.
	Out
)

// String returns the direction in the host environment's convention.
func (d Direction) String() string {
	if d == Out {
		return "OUTPUT"
	}
	return "INPUT"
}

// Socket kind identifiers. Compound kinds (e.g. "NodeSocketFloatFactor")
// share the prefix of their base kind.
const (
	SocketBool   = "NodeSocketBool"
	SocketVector = "NodeSocketVector"
	SocketInt    = "NodeSocketInt"
	SocketShader = "NodeSocketShader"
	SocketFloat  = "NodeSocketFloat"
	SocketColor  = "NodeSocketColor"
	SocketString = "NodeSocketString"
)

// Socket is a typed port on a node instance.
//
// Name is the display name and is not unique per node; Identifier is the
// stable per-node key used for link resolution.
type Socket struct {
	Name       string
	Identifier string
	Type       string
	Direction  Direction
	Default    any // nil for sockets without a default (e.g. shader sockets)

	node *Node
}

// Node returns the owning node.
func (s *Socket) Node() *Node { return s.node }

// HasDefault reports whether the socket kind carries a default value.
func (s *Socket) HasDefault() bool { return s.Default != nil }

// SocketDefault returns the initial default value for a socket kind, or nil
// for kinds without one. Compound kinds map to their base kind's default.
func SocketDefault(socketType string) any {
	switch {
	case strings.HasPrefix(socketType, SocketBool):
		return false
	case strings.HasPrefix(socketType, SocketVector):
		return Vector{}
	case strings.HasPrefix(socketType, SocketInt):
		return 0
	case strings.HasPrefix(socketType, SocketShader):
		return nil
	case strings.HasPrefix(socketType, SocketColor):
		return Color{0.5, 0.5, 0.5, 1}
	case strings.HasPrefix(socketType, SocketFloat):
		return 0.0
	case strings.HasPrefix(socketType, SocketString):
		return ""
	default:
		return nil
	}
}
