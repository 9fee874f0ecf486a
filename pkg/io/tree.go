package io

import (
	"context"
	"os"

	"github.com/noderunner/noderunner/pkg/codec"
	"github.com/noderunner/noderunner/pkg/errors"
	"github.com/noderunner/noderunner/pkg/shader"
)

// =============================================================================
// Tree Documents
// =============================================================================
//
// A tree document is a snapshot graph stored as an indented JSON file. It is
// the durable on-disk form of a shader tree: reading one decodes it into a
// live tree, writing one encodes the tree back. Because both directions run
// through the codec, a document survives edit/reload cycles the same way a
// token does.

// ReadTreeFile loads a tree document and decodes it into a fresh tree built
// on reg. Assets resolve weak references (images, scripts) during decode;
// pass a fresh registry when no ambient assets exist.
func ReadTreeFile(ctx context.Context, path string, reg *shader.Registry, assets *shader.Assets) (*shader.Tree, *codec.Report, error) {
	g, err := ImportJSON(path)
	if err != nil {
		return nil, nil, err
	}
	name := g.Name
	if name == "" {
		name = "Material"
	}
	tree := shader.NewTree(name, reg)
	report := codec.Decode(ctx, g, tree, assets)
	return tree, report, nil
}

// WriteTreeFile encodes tree and writes it as an indented JSON document.
func WriteTreeFile(ctx context.Context, path string, tree *shader.Tree) (*codec.Report, error) {
	g, report := codec.EncodeTree(ctx, tree, nil)
	f, err := os.Create(path)
	if err != nil {
		return report, errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	if err := WriteJSON(g, f); err != nil {
		return report, errors.Wrap(errors.ErrCodeInternal, err, "write tree document %s", path)
	}
	return report, nil
}
