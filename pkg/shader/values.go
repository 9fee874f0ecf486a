package shader

// =============================================================================
// Math Values
// =============================================================================

// Vector2 is a 2D coordinate, used for node locations and curve points.
type Vector2 [2]float64

// Vector is a 3-component vector.
type Vector [3]float64

// Euler is a rotation triple (radians, XYZ order).
type Euler [3]float64

// Color is an RGBA color. Components are in [0, 1] but not clamped here.
type Color [4]float64

// Add returns the component-wise sum of two 2D coordinates.
// Used to reconstruct absolute node positions from frame-relative offsets.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v[0] + o[0], v[1] + o[1]}
}

// Sub returns the component-wise difference of two 2D coordinates.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{v[0] - o[0], v[1] - o[1]}
}

// =============================================================================
// Color Ramp
// =============================================================================

// RampElement is a single color stop on a ramp.
type RampElement struct {
	Position float64
	Color    Color
}

// ColorRamp maps a scalar to a color through ordered stops.
type ColorRamp struct {
	ColorMode        string // "RGB", "HSV", "HSL"
	HueInterpolation string // "NEAR", "FAR", "CW", "CCW"
	Interpolation    string // "LINEAR", "EASE", "B_SPLINE", "CARDINAL", "CONSTANT"
	Elements         []RampElement
}

// NewColorRamp returns a ramp with the standard two stops (black at 0, white at 1).
func NewColorRamp() *ColorRamp {
	return &ColorRamp{
		ColorMode:        "RGB",
		HueInterpolation: "NEAR",
		Interpolation:    "LINEAR",
		Elements: []RampElement{
			{Position: 0, Color: Color{0, 0, 0, 1}},
			{Position: 1, Color: Color{1, 1, 1, 1}},
		},
	}
}

// Clone returns a deep copy of the ramp.
func (r *ColorRamp) Clone() *ColorRamp {
	if r == nil {
		return nil
	}
	out := *r
	out.Elements = append([]RampElement(nil), r.Elements...)
	return &out
}

// =============================================================================
// Color Mapping
// =============================================================================

// ColorMapping adjusts texture colors (brightness, contrast, optional ramp).
type ColorMapping struct {
	BlendColor   Color
	BlendFactor  float64
	BlendType    string // "MIX", "MULTIPLY", ...
	Brightness   float64
	Contrast     float64
	Saturation   float64
	Ramp         *ColorRamp
	UseColorRamp bool
}

// NewColorMapping returns a color mapping with neutral defaults.
func NewColorMapping() *ColorMapping {
	return &ColorMapping{
		BlendColor:  Color{1, 1, 1, 1},
		BlendType:   "MIX",
		Brightness:  1,
		Contrast:    1,
		Saturation:  1,
		Ramp:        NewColorRamp(),
	}
}

// Clone returns a deep copy of the mapping.
func (m *ColorMapping) Clone() *ColorMapping {
	if m == nil {
		return nil
	}
	out := *m
	out.Ramp = m.Ramp.Clone()
	return &out
}

// =============================================================================
// Texture Mapping
// =============================================================================

// TextureMapping transforms texture coordinates.
type TextureMapping struct {
	Mapping     string // "FLAT", "CUBE", "TUBE", "SPHERE"
	MappingX    string // "NONE", "X", "Y", "Z"
	MappingY    string
	MappingZ    string
	Max         Vector
	Min         Vector
	Rotation    Vector
	Scale       Vector
	Translation Vector
	UseMax      bool
	UseMin      bool
	VectorType  string // "POINT", "TEXTURE", "VECTOR", "NORMAL"
}

// NewTextureMapping returns an identity texture mapping.
func NewTextureMapping() *TextureMapping {
	return &TextureMapping{
		Mapping:    "FLAT",
		MappingX:   "X",
		MappingY:   "Y",
		MappingZ:   "Z",
		Max:        Vector{1, 1, 1},
		Scale:      Vector{1, 1, 1},
		VectorType: "POINT",
	}
}

// Clone returns a copy of the mapping.
func (m *TextureMapping) Clone() *TextureMapping {
	if m == nil {
		return nil
	}
	out := *m
	return &out
}

// =============================================================================
// Curve Mapping
// =============================================================================

// CurveMapPoint is a control point on a curve.
type CurveMapPoint struct {
	HandleType string // "AUTO", "AUTO_CLAMPED", "VECTOR"
	Location   Vector2
	Select     bool
}

// CurveMap is a single editable curve.
//
// A freshly created curve always contains exactly two points, (0,0) and
// (1,1) — decode relies on this to overwrite the defaults in place before
// appending further points.
type CurveMap struct {
	Points []*CurveMapPoint
}

// NewCurveMap returns a curve with the two standard endpoints.
func NewCurveMap() *CurveMap {
	return &CurveMap{
		Points: []*CurveMapPoint{
			{HandleType: "AUTO", Location: Vector2{0, 0}},
			{HandleType: "AUTO", Location: Vector2{1, 1}},
		},
	}
}

// NewPoint appends a control point at the given location and returns it.
func (c *CurveMap) NewPoint(x, y float64) *CurveMapPoint {
	p := &CurveMapPoint{HandleType: "AUTO", Location: Vector2{x, y}}
	c.Points = append(c.Points, p)
	return p
}

// Clone returns a deep copy of the curve.
func (c *CurveMap) Clone() *CurveMap {
	if c == nil {
		return nil
	}
	out := &CurveMap{Points: make([]*CurveMapPoint, len(c.Points))}
	for i, p := range c.Points {
		cp := *p
		out.Points[i] = &cp
	}
	return out
}

// CurveMapping is a group of curves with shared clipping and levels.
type CurveMapping struct {
	BlackLevel Color
	WhiteLevel Color
	ClipMaxX   float64
	ClipMaxY   float64
	ClipMinX   float64
	ClipMinY   float64
	Curves     []*CurveMap
	Extend     string // "EXTRAPOLATED", "HORIZONTAL"
	Tone       string // "STANDARD", "FILMLIKE"
	UseClip    bool
}

// NewCurveMapping returns a mapping with n default curves.
func NewCurveMapping(n int) *CurveMapping {
	m := &CurveMapping{
		BlackLevel: Color{0, 0, 0, 1},
		WhiteLevel: Color{1, 1, 1, 1},
		ClipMaxX:   1,
		ClipMaxY:   1,
		Extend:     "EXTRAPOLATED",
		Tone:       "STANDARD",
		UseClip:    true,
	}
	for range n {
		m.Curves = append(m.Curves, NewCurveMap())
	}
	return m
}

// Clone returns a deep copy of the mapping.
func (m *CurveMapping) Clone() *CurveMapping {
	if m == nil {
		return nil
	}
	out := *m
	out.Curves = make([]*CurveMap, len(m.Curves))
	for i, c := range m.Curves {
		out.Curves[i] = c.Clone()
	}
	return &out
}

// =============================================================================
// Assets and References
// =============================================================================

// Image is an image datablock in the ambient asset registry.
// Snapshots reference images by name only; pixel data never travels.
type Image struct {
	Name     string
	Filepath string
}

// ImageUser carries per-node image sampling state.
// It is intentionally opaque to the codec: it encodes to an empty mapping
// and is never applied on decode.
type ImageUser struct {
	FrameCurrent int
}

// ObjectRef is a reference to a scene object (e.g. for point density
// sampling). Object state is not part of a snapshot; references encode
// to null.
type ObjectRef struct {
	Name string
}

// TextLine is a single line of an embedded text datablock.
type TextLine struct {
	Body string
}

// Text is an embedded text datablock (script bodies, frame annotations).
type Text struct {
	Name               string
	CurrentCharacter   int
	CurrentLineIndex   int
	Filepath           string
	Indentation        string // "AUTO", "TABS", "SPACES"
	Lines              []*TextLine
	SelectEndCharacter int
	SelectEndLineIndex int
	UseModule          bool
}

// NewText returns an empty text with a single blank line.
func NewText(name string) *Text {
	return &Text{
		Name:        name,
		Indentation: "AUTO",
		Lines:       []*TextLine{{}},
	}
}

// CurrentLine returns the line at the current cursor index, creating lines
// as needed so the cursor is always addressable.
func (t *Text) CurrentLine() *TextLine {
	for len(t.Lines) <= t.CurrentLineIndex {
		t.Lines = append(t.Lines, &TextLine{})
	}
	return t.Lines[t.CurrentLineIndex]
}

// Clone returns a deep copy of the text.
func (t *Text) Clone() *Text {
	if t == nil {
		return nil
	}
	out := *t
	out.Lines = make([]*TextLine, len(t.Lines))
	for i, l := range t.Lines {
		cl := *l
		out.Lines[i] = &cl
	}
	return &out
}

// =============================================================================
// Value Cloning
// =============================================================================

// cloneValue deep-copies property defaults so node instances never share
// mutable state with the registry.
func cloneValue(v any) any {
	switch val := v.(type) {
	case *ColorRamp:
		return val.Clone()
	case *ColorMapping:
		return val.Clone()
	case *TextureMapping:
		return val.Clone()
	case *CurveMapping:
		return val.Clone()
	case *CurveMap:
		return val.Clone()
	case *Text:
		return val.Clone()
	case *ImageUser:
		if val == nil {
			return (*ImageUser)(nil)
		}
		cp := *val
		return &cp
	default:
		// Value types (numbers, strings, bools, arrays) copy by assignment.
		return v
	}
}
