package codec

import (
	"context"
	"fmt"

	"github.com/noderunner/noderunner/pkg/observability"
	"github.com/noderunner/noderunner/pkg/shader"
)

// =============================================================================
// Attribute Encode
// =============================================================================

// encodeAttr converts a single property value into the JSON-safe snapshot
// value model. Dispatch is an ordered chain of type checks; the order matters
// because some values satisfy more than one shape (a slice of colors is both
// a collection and elementwise encodable).
//
// An unsupported value encodes to null after recording a diagnostic; per-item
// failures never abort the traversal.
func (e *encoder) encodeAttr(ctx context.Context, nodeName, attrName string, v any) any {
	switch val := v.(type) {
	case shader.Color:
		return []any{val[0], val[1], val[2], val[3]}
	case shader.Vector:
		return []any{val[0], val[1], val[2]}
	case shader.Euler:
		return []any{val[0], val[1], val[2]}
	case shader.Vector2:
		return []any{val[0], val[1]}
	case *shader.ColorRamp:
		return encodeColorRamp(val)
	case *shader.Tree:
		return e.encodeTree(ctx, val, nil)
	case *shader.ColorMapping:
		return encodeColorMapping(val)
	case *shader.TextureMapping:
		return encodeTextureMapping(val)
	case *shader.CurveMapping:
		return encodeCurveMapping(val)
	case *shader.CurveMap:
		return encodeCurveMap(val)
	case *shader.CurveMapPoint:
		return encodeCurveMapPoint(val)
	case *shader.Image:
		if val == nil {
			return nil
		}
		return map[string]any{"name": val.Name}
	case *shader.ImageUser:
		// Sampling state is environment-derived; it round-trips as an
		// empty mapping and is never applied on decode.
		return map[string]any{}
	case *shader.Node:
		if val != nil && val.IsFrame() {
			return e.encodeFrameMeta(ctx, val)
		}
	case *shader.Text:
		return encodeText(val)
	case *shader.ObjectRef:
		// Scene objects are not part of a snapshot.
		return nil
	case *shader.Socket:
		if val == nil || !val.HasDefault() {
			return nil
		}
		return e.encodeAttr(ctx, nodeName, attrName, val.Default)
	case []*shader.Socket:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = e.encodeAttr(ctx, nodeName, attrName, s)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = e.encodeAttr(ctx, nodeName, attrName, elem)
		}
		return out
	case []float64:
		out := make([]any, len(val))
		for i, f := range val {
			out[i] = f
		}
		return out
	case nil, bool, int, int64, float64, string:
		return val
	}

	e.report.addAttrDiag(nodeName, fmt.Sprintf("unsupported value %v of type %T in %q", v, v, attrName))
	observability.Codec().OnAttributeFallback(ctx, nodeName, attrName, fmt.Sprintf("%T", v))
	return nil
}

func encodeColorRamp(r *shader.ColorRamp) any {
	if r == nil {
		return nil
	}
	elements := make([]any, len(r.Elements))
	for i, e := range r.Elements {
		elements[i] = map[string]any{
			"position": e.Position,
			"color":    []any{e.Color[0], e.Color[1], e.Color[2], e.Color[3]},
		}
	}
	return map[string]any{
		"color_mode":        r.ColorMode,
		"elements":          elements,
		"hue_interpolation": r.HueInterpolation,
		"interpolation":     r.Interpolation,
	}
}

func encodeColorMapping(m *shader.ColorMapping) any {
	if m == nil {
		return nil
	}
	return map[string]any{
		"blend_color":    []any{m.BlendColor[0], m.BlendColor[1], m.BlendColor[2], m.BlendColor[3]},
		"blend_factor":   m.BlendFactor,
		"blend_type":     m.BlendType,
		"brightness":     m.Brightness,
		"color_ramp":     encodeColorRamp(m.Ramp),
		"contrast":       m.Contrast,
		"saturation":     m.Saturation,
		"use_color_ramp": m.UseColorRamp,
	}
}

func encodeTextureMapping(m *shader.TextureMapping) any {
	if m == nil {
		return nil
	}
	return map[string]any{
		"mapping":     m.Mapping,
		"mapping_x":   m.MappingX,
		"mapping_y":   m.MappingY,
		"mapping_z":   m.MappingZ,
		"max":         encodeVector(m.Max),
		"min":         encodeVector(m.Min),
		"rotation":    encodeVector(m.Rotation),
		"scale":       encodeVector(m.Scale),
		"translation": encodeVector(m.Translation),
		"use_max":     m.UseMax,
		"use_min":     m.UseMin,
		"vector_type": m.VectorType,
	}
}

func encodeCurveMapping(m *shader.CurveMapping) any {
	if m == nil {
		return nil
	}
	curves := make([]any, len(m.Curves))
	for i, c := range m.Curves {
		curves[i] = encodeCurveMap(c)
	}
	return map[string]any{
		"black_level": []any{m.BlackLevel[0], m.BlackLevel[1], m.BlackLevel[2], m.BlackLevel[3]},
		"clip_max_x":  m.ClipMaxX,
		"clip_max_y":  m.ClipMaxY,
		"clip_min_x":  m.ClipMinX,
		"clip_min_y":  m.ClipMinY,
		"curves":      curves,
		"extend":      m.Extend,
		"tone":        m.Tone,
		"use_clip":    m.UseClip,
		"white_level": []any{m.WhiteLevel[0], m.WhiteLevel[1], m.WhiteLevel[2], m.WhiteLevel[3]},
	}
}

func encodeCurveMap(c *shader.CurveMap) any {
	if c == nil {
		return nil
	}
	points := make([]any, len(c.Points))
	for i, p := range c.Points {
		points[i] = encodeCurveMapPoint(p)
	}
	return map[string]any{"points": points}
}

func encodeCurveMapPoint(p *shader.CurveMapPoint) any {
	if p == nil {
		return nil
	}
	return map[string]any{
		"handle_type": p.HandleType,
		"location":    []any{p.Location[0], p.Location[1]},
		"select":      p.Select,
	}
}

func encodeText(t *shader.Text) any {
	if t == nil {
		return nil
	}
	lines := make([]any, len(t.Lines))
	for i, l := range t.Lines {
		lines[i] = map[string]any{"body": l.Body}
	}
	return map[string]any{
		"current_character":     t.CurrentCharacter,
		"current_line":          map[string]any{"body": t.CurrentLine().Body},
		"current_line_index":    t.CurrentLineIndex,
		"filepath":              t.Filepath,
		"indentation":           t.Indentation,
		"lines":                 lines,
		"select_end_character":  t.SelectEndCharacter,
		"select_end_line_index": t.SelectEndLineIndex,
		"use_module":            t.UseModule,
	}
}

// encodeFrameMeta captures the frame-specific properties of a frame node
// referenced as an attribute value.
func (e *encoder) encodeFrameMeta(ctx context.Context, frame *shader.Node) any {
	meta := map[string]any{}
	if v, ok := frame.Prop("label_size"); ok {
		meta["label_size"] = v
	}
	if v, ok := frame.Prop("shrink"); ok {
		meta["shrink"] = v
	}
	if v, ok := frame.Prop("text"); ok {
		if text, ok := v.(*shader.Text); ok && text != nil {
			meta["text"] = encodeText(text)
		}
	}
	return meta
}

func encodeVector(v shader.Vector) []any {
	return []any{v[0], v[1], v[2]}
}
