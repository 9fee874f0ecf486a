package shader

import (
	"fmt"
	"sort"
)

// PropSpec declares one settable property of a node kind.
// Default is deep-copied per node instance.
type PropSpec struct {
	Name    string
	Default any
}

// SocketSpec declares one socket template of a node kind.
// Identifier defaults to Name; Default defaults to the socket kind's default.
type SocketSpec struct {
	Name       string
	Identifier string
	Type       string
	Default    any
}

// KindSpec is the static metadata for a node kind: the explicit field list
// the generic property walk enumerates, plus socket templates.
type KindSpec struct {
	Kind        string
	DefaultName string
	Props       []PropSpec
	Inputs      []SocketSpec
	Outputs     []SocketSpec
}

// Registry maps kind identifiers to their specs.
type Registry struct {
	kinds map[string]*KindSpec
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]*KindSpec)}
}

// Register adds a kind spec, replacing any previous spec for the same kind.
func (r *Registry) Register(spec KindSpec) error {
	if spec.Kind == "" {
		return fmt.Errorf("register kind: empty kind identifier")
	}
	if spec.Kind == KindUndefined {
		return fmt.Errorf("register kind: %q is reserved", KindUndefined)
	}
	if spec.DefaultName == "" {
		spec.DefaultName = spec.Kind
	}
	r.kinds[spec.Kind] = &spec
	return nil
}

// Kind returns the spec registered for a kind identifier.
func (r *Registry) Kind(kind string) (*KindSpec, bool) {
	s, ok := r.kinds[kind]
	return s, ok
}

// Kinds returns all registered kind identifiers, sorted.
func (r *Registry) Kinds() []string {
	out := make([]string, 0, len(r.kinds))
	for k := range r.kinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry returns a fresh registry with the builtin node kinds.
// Callers may extend it with [Registry.Register] or [LoadKindsFile] without
// affecting other trees.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, spec := range builtinKinds() {
		// Specs are static; Register only fails on reserved identifiers.
		if err := r.Register(spec); err != nil {
			panic(err)
		}
	}
	return r
}

func builtinKinds() []KindSpec {
	return []KindSpec{
		{
			Kind:        KindFrame,
			DefaultName: "Frame",
			Props: []PropSpec{
				{Name: "label_size", Default: 20.0},
				{Name: "shrink", Default: true},
				{Name: "text", Default: (*Text)(nil)},
			},
		},
		{
			Kind:        KindGroup,
			DefaultName: "Group",
			// Sockets come from the bound interior's interface.
		},
		{
			Kind:        KindGroupInput,
			DefaultName: "Group Input",
			// Outputs mirror the tree interface inputs.
		},
		{
			Kind:        KindGroupOutput,
			DefaultName: "Group Output",
			Props: []PropSpec{
				{Name: "is_active_output", Default: true},
			},
			// Inputs mirror the tree interface outputs.
		},
		{
			Kind:        "ShaderNodeValue",
			DefaultName: "Value",
			Outputs: []SocketSpec{
				{Name: "Value", Type: SocketFloat},
			},
		},
		{
			Kind:        "ShaderNodeRGB",
			DefaultName: "RGB",
			Outputs: []SocketSpec{
				{Name: "Color", Type: SocketColor},
			},
		},
		{
			Kind:        "ShaderNodeMixRGB",
			DefaultName: "Mix",
			Props: []PropSpec{
				{Name: "blend_type", Default: "MIX"},
				{Name: "use_alpha", Default: false},
				{Name: "use_clamp", Default: false},
			},
			Inputs: []SocketSpec{
				{Name: "Fac", Type: "NodeSocketFloatFactor", Default: 0.5},
				{Name: "Color1", Type: SocketColor},
				{Name: "Color2", Type: SocketColor},
			},
			Outputs: []SocketSpec{
				{Name: "Color", Type: SocketColor},
			},
		},
		{
			Kind:        "ShaderNodeBsdfPrincipled",
			DefaultName: "Principled BSDF",
			Inputs: []SocketSpec{
				{Name: "Base Color", Type: SocketColor, Default: Color{0.8, 0.8, 0.8, 1}},
				{Name: "Metallic", Type: "NodeSocketFloatFactor"},
				{Name: "Roughness", Type: "NodeSocketFloatFactor", Default: 0.5},
				{Name: "IOR", Type: SocketFloat, Default: 1.45},
				{Name: "Alpha", Type: "NodeSocketFloatFactor", Default: 1.0},
				{Name: "Normal", Type: SocketVector},
			},
			Outputs: []SocketSpec{
				{Name: "BSDF", Type: SocketShader},
			},
		},
		{
			Kind:        "ShaderNodeOutputMaterial",
			DefaultName: "Material Output",
			Props: []PropSpec{
				{Name: "is_active_output", Default: true},
				{Name: "target", Default: "ALL"},
			},
			Inputs: []SocketSpec{
				{Name: "Surface", Type: SocketShader},
				{Name: "Volume", Type: SocketShader},
				{Name: "Displacement", Type: SocketVector},
			},
		},
		{
			Kind:        "ShaderNodeTexNoise",
			DefaultName: "Noise Texture",
			Props: []PropSpec{
				{Name: "noise_dimensions", Default: "3D"},
				{Name: "normalize", Default: true},
				{Name: "color_mapping", Default: NewColorMapping()},
				{Name: "texture_mapping", Default: NewTextureMapping()},
			},
			Inputs: []SocketSpec{
				{Name: "Vector", Type: SocketVector},
				{Name: "Scale", Type: SocketFloat, Default: 5.0},
				{Name: "Detail", Type: SocketFloat, Default: 2.0},
				{Name: "Roughness", Type: "NodeSocketFloatFactor", Default: 0.5},
				{Name: "Distortion", Type: SocketFloat},
			},
			Outputs: []SocketSpec{
				{Name: "Fac", Type: "NodeSocketFloatFactor"},
				{Name: "Color", Type: SocketColor},
			},
		},
		{
			Kind:        "ShaderNodeTexImage",
			DefaultName: "Image Texture",
			Props: []PropSpec{
				{Name: "image", Default: (*Image)(nil)},
				{Name: "image_user", Default: &ImageUser{}},
				{Name: "interpolation", Default: "Linear"},
				{Name: "projection", Default: "FLAT"},
				{Name: "extension", Default: "REPEAT"},
				{Name: "color_mapping", Default: NewColorMapping()},
				{Name: "texture_mapping", Default: NewTextureMapping()},
			},
			Inputs: []SocketSpec{
				{Name: "Vector", Type: SocketVector},
			},
			Outputs: []SocketSpec{
				{Name: "Color", Type: SocketColor},
				{Name: "Alpha", Type: SocketFloat},
			},
		},
		{
			Kind:        "ShaderNodeValToRGB",
			DefaultName: "Color Ramp",
			Props: []PropSpec{
				{Name: "color_ramp", Default: NewColorRamp()},
			},
			Inputs: []SocketSpec{
				{Name: "Fac", Type: "NodeSocketFloatFactor", Default: 0.5},
			},
			Outputs: []SocketSpec{
				{Name: "Color", Type: SocketColor},
				{Name: "Alpha", Type: SocketFloat},
			},
		},
		{
			Kind:        "ShaderNodeRGBCurve",
			DefaultName: "RGB Curves",
			Props: []PropSpec{
				// C, R, G, B
				{Name: "mapping", Default: NewCurveMapping(4)},
			},
			Inputs: []SocketSpec{
				{Name: "Fac", Type: "NodeSocketFloatFactor", Default: 1.0},
				{Name: "Color", Type: SocketColor},
			},
			Outputs: []SocketSpec{
				{Name: "Color", Type: SocketColor},
			},
		},
		{
			Kind:        "ShaderNodeScript",
			DefaultName: "Script",
			Props: []PropSpec{
				{Name: "mode", Default: "INTERNAL"},
				{Name: "script", Default: (*Text)(nil)},
				{Name: "use_auto_update", Default: false},
			},
		},
	}
}
