// Package snapshot defines the wire data model for captured subgraphs:
// a graph snapshot holds node snapshots (property name → serialized value)
// in traversal order plus an ordered list of link records.
//
// Snapshots are JSON-shaped: values are numbers, strings, booleans, null,
// ordered sequences, and mappings. Node order is significant — the mapping
// types preserve insertion order through marshal/unmarshal so that encode →
// token → decode walks nodes in the order the producer did.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Reserved node snapshot keys. Every other key is a plain property name.
const (
	// KeyType is the node's kind identifier, used to recreate it.
	KeyType = "type"
	// KeyLabel is the node's display label.
	KeyLabel = "label"
	// KeyParent names the containing frame (non-frame nodes only).
	KeyParent = "parent"
	// KeyNodeTree holds the nested graph snapshot of a group interior.
	KeyNodeTree = "node_tree"
)

// Link is an ordered record of one connection between two node snapshots.
//
// Socket names are diagnostic; identifiers are the stable per-node lookup
// keys. The socket type fields are consulted only when a group interface
// socket has to be created during decode.
type Link struct {
	FromNode             string `json:"from_node"`
	ToNode               string `json:"to_node"`
	FromSocket           string `json:"from_socket"`
	FromSocketType       string `json:"from_socket_type"`
	FromSocketIdentifier string `json:"from_socket_identifier"`
	ToSocket             string `json:"to_socket"`
	ToSocketType         string `json:"to_socket_type"`
	ToSocketIdentifier   string `json:"to_socket_identifier"`
}

// Node is one node's snapshot: an ordered mapping from property name to
// serialized value, always carrying the reserved "type" and "label" keys.
type Node struct {
	fields *orderedmap.OrderedMap[string, any]
}

// NewNode returns a node snapshot seeded with its kind and label.
func NewNode(kind, label string) *Node {
	n := &Node{fields: orderedmap.New[string, any]()}
	n.Set(KeyType, kind)
	n.Set(KeyLabel, label)
	return n
}

// Type returns the node's kind identifier.
func (n *Node) Type() string {
	if v, ok := n.Get(KeyType); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Label returns the node's display label.
func (n *Node) Label() string {
	if v, ok := n.Get(KeyLabel); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Set assigns a property value, appending the key on first assignment.
func (n *Node) Set(name string, value any) {
	if n.fields == nil {
		n.fields = orderedmap.New[string, any]()
	}
	n.fields.Set(name, value)
}

// Get returns the value stored under name.
func (n *Node) Get(name string) (any, bool) {
	if n.fields == nil {
		return nil, false
	}
	return n.fields.Get(name)
}

// Len returns the number of stored properties (including reserved keys).
func (n *Node) Len() int {
	if n.fields == nil {
		return 0
	}
	return n.fields.Len()
}

// Range calls fn for every property in insertion order until fn returns false.
func (n *Node) Range(fn func(name string, value any) bool) {
	if n.fields == nil {
		return
	}
	for pair := n.fields.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// MarshalJSON encodes the snapshot as a JSON object in insertion order.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n.fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(n.fields)
}

// UnmarshalJSON decodes a JSON object preserving key order. The reserved
// "node_tree" key decodes into a nested [*Graph] so group interiors keep
// their node ordering; every other value decodes into the generic JSON
// value model.
func (n *Node) UnmarshalJSON(data []byte) error {
	n.fields = orderedmap.New[string, any]()

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("node snapshot: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("node snapshot: non-string key %v", keyTok)
		}

		if key == KeyNodeTree {
			var sub Graph
			if err := dec.Decode(&sub); err != nil {
				return fmt.Errorf("node snapshot: nested tree: %w", err)
			}
			n.fields.Set(key, &sub)
			continue
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("node snapshot: key %q: %w", key, err)
		}
		n.fields.Set(key, value)
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// Graph is a complete subgraph snapshot: named, with nodes in traversal
// order and links in capture order.
type Graph struct {
	Name  string                                `json:"name"`
	Nodes *orderedmap.OrderedMap[string, *Node] `json:"nodes"`
	Links []Link                                `json:"links"`
}

// NewGraph returns an empty snapshot.
func NewGraph(name string) *Graph {
	return &Graph{
		Name:  name,
		Nodes: orderedmap.New[string, *Node](),
	}
}

// AddNode stores a node snapshot under its original node name.
func (g *Graph) AddNode(name string, n *Node) {
	if g.Nodes == nil {
		g.Nodes = orderedmap.New[string, *Node]()
	}
	g.Nodes.Set(name, n)
}

// Node returns the snapshot stored under name.
func (g *Graph) Node(name string) (*Node, bool) {
	if g.Nodes == nil {
		return nil, false
	}
	return g.Nodes.Get(name)
}

// Len returns the number of node snapshots.
func (g *Graph) Len() int {
	if g.Nodes == nil {
		return 0
	}
	return g.Nodes.Len()
}

// RangeNodes calls fn for every node snapshot in traversal order until fn
// returns false.
func (g *Graph) RangeNodes(fn func(name string, n *Node) bool) {
	if g.Nodes == nil {
		return
	}
	for pair := g.Nodes.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Marshal encodes the snapshot as compact JSON.
func Marshal(g *Graph) ([]byte, error) {
	return json.Marshal(g)
}

// Unmarshal decodes JSON bytes into a snapshot.
func Unmarshal(data []byte) (*Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	if g.Nodes == nil {
		g.Nodes = orderedmap.New[string, *Node]()
	}
	return &g, nil
}
