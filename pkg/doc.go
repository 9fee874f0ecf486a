// Package pkg provides the core libraries for Node Runner shader tree sharing.
//
// # Overview
//
// Node Runner serializes shader node trees into compact text tokens and
// reconstructs them elsewhere. The pkg directory is organized into five main
// areas:
//
//  1. [shader] - The host graph model (trees, nodes, sockets, kinds, assets)
//  2. [snapshot] - The wire data model (ordered node/link snapshots)
//  3. [codec] - Encoding trees to snapshots and decoding them back
//  4. [token] - The text-safe transport envelope (zlib + base64)
//  5. [render/nodelink] - Node-link diagram rendering (DOT, SVG, PDF, PNG)
//
// Supporting packages: [errors] (structured error codes), [observability]
// (codec/transport hooks), [io] (tree documents and token files), and
// [buildinfo] (version metadata).
//
// # Architecture
//
// The typical data flow through Node Runner:
//
//	shader.Tree
//	     ↓
//	[codec] package (encode nodes, properties, links)
//	     ↓
//	snapshot.Graph
//	     ↓
//	[token] package (JSON → zlib → base64 envelope)
//	     ↓
//	"<label>__NR<payload>" token
//
// Import runs the same path in reverse: the token is unwrapped atomically,
// then the codec materializes nodes into a target tree, skipping what it
// cannot recreate and reporting diagnostics instead of failing.
//
// # Quick Start
//
// Encode a tree and wrap it as a token:
//
//	import (
//	    "context"
//	    "github.com/noderunner/noderunner/pkg/codec"
//	    "github.com/noderunner/noderunner/pkg/shader"
//	    "github.com/noderunner/noderunner/pkg/token"
//	)
//
//	tree := shader.NewTree("Material", nil)
//	rgb, _ := tree.NewNode("ShaderNodeRGB")
//	mix, _ := tree.NewNode("ShaderNodeMixRGB")
//	tree.NewLink(rgb.Outputs[0], mix.Inputs[1])
//
//	snap, report := codec.EncodeTree(context.Background(), tree, nil)
//	tok, err := token.Encode(context.Background(), snap, "Material")
//
// Decode it into a fresh tree:
//
//	snap, err := token.Decode(context.Background(), tok)
//	target := shader.NewTree(snap.Name, nil)
//	report := codec.Decode(context.Background(), snap, target, shader.NewAssets())
//
// [shader]: https://pkg.go.dev/github.com/noderunner/noderunner/pkg/shader
// [snapshot]: https://pkg.go.dev/github.com/noderunner/noderunner/pkg/snapshot
// [codec]: https://pkg.go.dev/github.com/noderunner/noderunner/pkg/codec
// [token]: https://pkg.go.dev/github.com/noderunner/noderunner/pkg/token
// [render/nodelink]: https://pkg.go.dev/github.com/noderunner/noderunner/pkg/render/nodelink
// [errors]: https://pkg.go.dev/github.com/noderunner/noderunner/pkg/errors
// [observability]: https://pkg.go.dev/github.com/noderunner/noderunner/pkg/observability
// [io]: https://pkg.go.dev/github.com/noderunner/noderunner/pkg/io
// [buildinfo]: https://pkg.go.dev/github.com/noderunner/noderunner/pkg/buildinfo
package pkg
