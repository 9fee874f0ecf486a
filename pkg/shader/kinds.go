package shader

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/noderunner/noderunner/pkg/errors"
)

// kindsFile is the TOML schema for user-defined node kinds.
//
// Example:
//
//	[[kind]]
//	name = "ShaderNodeHalftone"
//	default_name = "Halftone"
//
//	  [[kind.prop]]
//	  name = "pattern"
//	  default = "DOTS"
//
//	  [[kind.input]]
//	  name = "Color"
//	  type = "NodeSocketColor"
//
//	  [[kind.output]]
//	  name = "Color"
//	  type = "NodeSocketColor"
type kindsFile struct {
	Kind []kindEntry `toml:"kind"`
}

type kindEntry struct {
	Name        string        `toml:"name"`
	DefaultName string        `toml:"default_name"`
	Prop        []propEntry   `toml:"prop"`
	Input       []socketEntry `toml:"input"`
	Output      []socketEntry `toml:"output"`
}

type propEntry struct {
	Name    string `toml:"name"`
	Default any    `toml:"default"`
}

type socketEntry struct {
	Name       string `toml:"name"`
	Identifier string `toml:"identifier"`
	Type       string `toml:"type"`
}

// LoadKindsFile registers the node kinds declared in a TOML file.
// Returns the number of kinds registered.
func LoadKindsFile(path string, reg *Registry) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, errors.Wrap(errors.ErrCodeFileNotFound, err, "kinds file %s", path)
		}
		return 0, errors.Wrap(errors.ErrCodeInvalidKinds, err, "read kinds file %s", path)
	}
	return LoadKinds(data, reg)
}

// LoadKinds registers the node kinds declared in TOML bytes.
func LoadKinds(data []byte, reg *Registry) (int, error) {
	var file kindsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidKinds, err, "parse kinds file")
	}

	for i, k := range file.Kind {
		if k.Name == "" {
			return 0, errors.New(errors.ErrCodeInvalidKinds, "kind #%d has no name", i+1)
		}
		spec := KindSpec{
			Kind:        k.Name,
			DefaultName: k.DefaultName,
		}
		for _, p := range k.Prop {
			spec.Props = append(spec.Props, PropSpec{Name: p.Name, Default: normalizeTOMLValue(p.Default)})
		}
		var err error
		if spec.Inputs, err = socketSpecs(k.Name, k.Input); err != nil {
			return 0, err
		}
		if spec.Outputs, err = socketSpecs(k.Name, k.Output); err != nil {
			return 0, err
		}
		if err := reg.Register(spec); err != nil {
			return 0, errors.Wrap(errors.ErrCodeInvalidKinds, err, "register kind %s", k.Name)
		}
	}
	return len(file.Kind), nil
}

func socketSpecs(kind string, entries []socketEntry) ([]SocketSpec, error) {
	out := make([]SocketSpec, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" || e.Type == "" {
			return nil, errors.New(errors.ErrCodeInvalidKinds, "kind %s: sockets need name and type", kind)
		}
		out = append(out, SocketSpec{Name: e.Name, Identifier: e.Identifier, Type: e.Type})
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// normalizeTOMLValue maps TOML decoder output onto the property value model
// (integers become float64 like every other numeric property).
func normalizeTOMLValue(v any) any {
	switch val := v.(type) {
	case int64:
		return float64(val)
	case []any:
		switch len(val) {
		case 2:
			return Vector2{tomlFloat(val[0]), tomlFloat(val[1])}
		case 3:
			return Vector{tomlFloat(val[0]), tomlFloat(val[1]), tomlFloat(val[2])}
		case 4:
			return Color{tomlFloat(val[0]), tomlFloat(val[1]), tomlFloat(val[2]), tomlFloat(val[3])}
		}
		return fmt.Sprintf("%v", val)
	default:
		return v
	}
}

func tomlFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int64:
		return float64(val)
	default:
		return 0
	}
}
