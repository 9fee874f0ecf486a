// Package codec converts between live shader trees and their wire snapshots.
//
// It is built from two strictly layered parts:
//
//   - The attribute codec serializes a single property value of unknown
//     shape into the JSON-safe value model, dispatching on the value's
//     runtime type in a fixed priority order. Its inverse is driven by the
//     consuming field name, not by inspecting the serialized shape, because
//     the target property's type is known at decode time.
//
//   - The graph codec walks the node set, encodes per-node attributes,
//     captures links, and reconstructs trees from snapshots: frames first
//     (containment before content), then nodes (group interiors before
//     other properties), then links (which may create group interface
//     sockets on demand).
//
// Per-item failures — unknown kinds, unresolvable endpoints, unsupported
// values — never abort a traversal. They are recorded on the [Report] and
// mirrored to the observability hooks; only the transport envelope can fail
// an operation as a whole, and that happens before this package runs.
package codec
