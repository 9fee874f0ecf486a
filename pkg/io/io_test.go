package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/noderunner/noderunner/pkg/errors"
	"github.com/noderunner/noderunner/pkg/snapshot"
)

func TestWriteReadRoundTrip(t *testing.T) {
	g := snapshot.NewGraph("Material")
	g.AddNode("RGB", snapshot.NewNode("ShaderNodeRGB", "base"))
	g.AddNode("Mix", snapshot.NewNode("ShaderNodeMixRGB", ""))
	g.Links = append(g.Links, snapshot.Link{FromNode: "RGB", ToNode: "Mix"})

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("output is not indented")
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Material" || got.Len() != 2 || len(got.Links) != 1 {
		t.Errorf("round trip lost structure: name=%q nodes=%d links=%d", got.Name, got.Len(), len(got.Links))
	}

	var order []string
	got.RangeNodes(func(name string, _ *snapshot.Node) bool {
		order = append(order, name)
		return true
	})
	if order[0] != "RGB" || order[1] != "Mix" {
		t.Errorf("node order = %v, want [RGB Mix]", order)
	}
}

func TestReadJSONRejectsNodesWithoutKind(t *testing.T) {
	doc := `{"name": "x", "nodes": {"Mystery": {"label": ""}}, "links": []}`
	_, err := ReadJSON(strings.NewReader(doc))
	if err == nil {
		t.Fatal("expected error for node without a kind")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %v, want INVALID_INPUT", errors.GetCode(err))
	}
}

func TestReadJSONRejectsMalformedInput(t *testing.T) {
	for _, doc := range []string{"", "{", `[1, 2]`} {
		if _, err := ReadJSON(strings.NewReader(doc)); err == nil {
			t.Errorf("ReadJSON(%q) succeeded, want error", doc)
		}
	}
}

func TestImportExportFiles(t *testing.T) {
	g := snapshot.NewGraph("Material")
	g.AddNode("Value", snapshot.NewNode("ShaderNodeValue", ""))

	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := ExportJSON(g, path); err != nil {
		t.Fatal(err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 1 {
		t.Errorf("imported %d nodes, want 1", got.Len())
	}

	_, err = ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestTokenFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.txt")
	if err := WriteToken("abc__NRdef", path); err != nil {
		t.Fatal(err)
	}
	got, err := ReadToken(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "abc__NRdef" {
		t.Errorf("token = %q, want trailing newline trimmed", got)
	}
}
