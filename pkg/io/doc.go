// Package io provides JSON import and export for graph snapshot documents.
//
// # Overview
//
// A snapshot document is the uncompressed form of a transport token: the
// same graph structure, stored as readable JSON instead of a deflated
// base64 string. The format is designed for:
//
//   - Inspecting what a token carries without decoding it by hand
//   - Authoring small graphs in a text editor and packing them into tokens
//   - Round-trip preservation: import, transform, export, re-import identically
//
// # JSON Format
//
//	{
//	  "name": "Material",
//	  "nodes": {
//	    "RGB": {"type": "ShaderNodeRGB", "label": ""},
//	    "Mix": {"type": "ShaderNodeMixRGB", "label": "", "blend_type": "MIX"}
//	  },
//	  "links": [
//	    {"from_node": "RGB", "to_node": "Mix", ...}
//	  ]
//	}
//
// Node order inside "nodes" is significant and preserved on both read and
// write; it is the traversal order the producer captured.
//
// # Import
//
// Use [ImportJSON] to read a document from a file path, or [ReadJSON] to
// read from any io.Reader. Both validate that every node snapshot carries a
// kind identifier; structural problems are reported with the INVALID_INPUT
// error code.
//
// # Export
//
// Use [ExportJSON] to write a document to a file, or [WriteJSON] to write to
// any io.Writer. Output is indented for readability; the codec does not care
// about whitespace.
//
// # Tree Documents
//
// [ReadTreeFile] and [WriteTreeFile] go one level higher: they run a
// document through the codec, so the caller works with a live tree instead
// of the raw snapshot.
package io
