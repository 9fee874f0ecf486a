// Package shader models the host graph environment that snapshot tokens are
// captured from and applied to: node trees, nodes with typed property bags,
// input/output sockets, frame containment, group interiors with dynamic
// interface sockets, and the ambient asset registry for images and texts.
//
// The package is deliberately schema-driven: node kinds are not Go types but
// entries in a [Registry] describing their properties and socket templates.
// This keeps the codec generic — it walks whatever properties a node instance
// exposes, without compile-time knowledge of the kind.
//
// Trees are not safe for concurrent use without external synchronization.
package shader
