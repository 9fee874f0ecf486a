package io

import (
	"fmt"
	"io"
	"os"

	"github.com/noderunner/noderunner/pkg/errors"
	"github.com/noderunner/noderunner/pkg/snapshot"
)

// ReadJSON decodes a JSON snapshot document from r.
//
// The input must be an object with "name", "nodes" and "links" fields; see
// the package documentation for the format. ReadJSON validates that every
// node snapshot carries a non-empty "type", since a snapshot without kind
// identifiers can never decode into a tree. Malformed input is reported
// with the INVALID_INPUT code.
//
// The returned snapshot is independent of r and can be modified safely
// after ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*snapshot.Graph, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read snapshot document")
	}
	g, err := snapshot.Unmarshal(raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode snapshot document")
	}

	var invalid []string
	g.RangeNodes(func(name string, n *snapshot.Node) bool {
		if n == nil || n.Type() == "" {
			invalid = append(invalid, name)
		}
		return true
	})
	if len(invalid) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "node snapshots without a kind: %v", invalid)
	}
	return g, nil
}

// ImportJSON reads a JSON snapshot document at path.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Open failures are reported with the FILE_NOT_FOUND code; decoding
// failures carry the same codes as [ReadJSON].
func ImportJSON(path string) (*snapshot.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()

	g, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return g, nil
}
