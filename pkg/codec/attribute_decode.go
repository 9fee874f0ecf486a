package codec

import (
	"github.com/noderunner/noderunner/pkg/shader"
)

// =============================================================================
// Attribute Decode
// =============================================================================
//
// Decoding is not symmetric with encoding: it is driven by the consuming
// property name, because the target's expected shape is known at that point.
// Every helper defaults absent keys so snapshots produced by an older or
// partial schema still apply cleanly.

// decodeColorRamp applies serialized ramp data onto the node's existing ramp.
func decodeColorRamp(n *shader.Node, data any) {
	m := asMap(data)
	if m == nil {
		return
	}
	ramp := rampProp(n, "color_ramp")
	if ramp == nil {
		return
	}
	applyColorRamp(ramp, m)
}

func applyColorRamp(ramp *shader.ColorRamp, m map[string]any) {
	ramp.ColorMode = getString(m, "color_mode", ramp.ColorMode)
	ramp.HueInterpolation = getString(m, "hue_interpolation", ramp.HueInterpolation)
	ramp.Interpolation = getString(m, "interpolation", ramp.Interpolation)

	for i, elemData := range asSlice(m["elements"]) {
		em := asMap(elemData)
		if em == nil {
			continue
		}
		if i >= len(ramp.Elements) {
			ramp.Elements = append(ramp.Elements, shader.RampElement{})
		}
		ramp.Elements[i].Position = getFloat(em, "position", ramp.Elements[i].Position)
		ramp.Elements[i].Color = toColor(em["color"], ramp.Elements[i].Color)
	}
}

// decodeColorMapping applies serialized color mapping data onto the node's
// existing mapping, one field at a time.
func decodeColorMapping(n *shader.Node, data any) {
	m := asMap(data)
	if m == nil {
		return
	}
	v, ok := n.Prop("color_mapping")
	if !ok {
		return
	}
	cm, ok := v.(*shader.ColorMapping)
	if !ok || cm == nil {
		return
	}

	cm.BlendColor = toColor(m["blend_color"], cm.BlendColor)
	cm.BlendFactor = getFloat(m, "blend_factor", cm.BlendFactor)
	cm.BlendType = getString(m, "blend_type", cm.BlendType)
	cm.Brightness = getFloat(m, "brightness", cm.Brightness)
	cm.Contrast = getFloat(m, "contrast", cm.Contrast)
	cm.Saturation = getFloat(m, "saturation", cm.Saturation)
	cm.UseColorRamp = getBool(m, "use_color_ramp", cm.UseColorRamp)

	if rampData := asMap(m["color_ramp"]); rampData != nil && cm.Ramp != nil {
		applyColorRamp(cm.Ramp, rampData)
	}
}

// decodeTextureMapping applies serialized texture mapping data onto the
// node's existing mapping.
func decodeTextureMapping(n *shader.Node, data any) {
	m := asMap(data)
	if m == nil {
		return
	}
	v, ok := n.Prop("texture_mapping")
	if !ok {
		return
	}
	tm, ok := v.(*shader.TextureMapping)
	if !ok || tm == nil {
		return
	}

	tm.Mapping = getString(m, "mapping", tm.Mapping)
	tm.MappingX = getString(m, "mapping_x", tm.MappingX)
	tm.MappingY = getString(m, "mapping_y", tm.MappingY)
	tm.MappingZ = getString(m, "mapping_z", tm.MappingZ)
	tm.Max = toVector(m["max"], tm.Max)
	tm.Min = toVector(m["min"], tm.Min)
	tm.Rotation = toVector(m["rotation"], tm.Rotation)
	tm.Scale = toVector(m["scale"], tm.Scale)
	tm.Translation = toVector(m["translation"], tm.Translation)
	tm.UseMax = getBool(m, "use_max", tm.UseMax)
	tm.UseMin = getBool(m, "use_min", tm.UseMin)
	tm.VectorType = getString(m, "vector_type", tm.VectorType)
}

// decodeCurveMapping applies serialized curve mapping data onto the node's
// existing "mapping" property.
//
// Freshly created curves already hold the two standard endpoints; snapshot
// points overwrite existing points in place before any extra points are
// appended, so defaults never survive as duplicates.
func decodeCurveMapping(n *shader.Node, data any) {
	m := asMap(data)
	if m == nil {
		return
	}
	v, ok := n.Prop("mapping")
	if !ok {
		return
	}
	cm, ok := v.(*shader.CurveMapping)
	if !ok || cm == nil {
		return
	}

	cm.BlackLevel = toColor(m["black_level"], cm.BlackLevel)
	cm.WhiteLevel = toColor(m["white_level"], cm.WhiteLevel)
	cm.ClipMaxX = getFloat(m, "clip_max_x", cm.ClipMaxX)
	cm.ClipMaxY = getFloat(m, "clip_max_y", cm.ClipMaxY)
	cm.ClipMinX = getFloat(m, "clip_min_x", cm.ClipMinX)
	cm.ClipMinY = getFloat(m, "clip_min_y", cm.ClipMinY)
	cm.Extend = getString(m, "extend", cm.Extend)
	cm.Tone = getString(m, "tone", cm.Tone)
	cm.UseClip = getBool(m, "use_clip", cm.UseClip)

	for i, curveData := range asSlice(m["curves"]) {
		if i >= len(cm.Curves) {
			break
		}
		cd := asMap(curveData)
		if cd == nil {
			continue
		}
		applyCurveMap(cm.Curves[i], cd)
	}
}

func applyCurveMap(c *shader.CurveMap, m map[string]any) {
	for j, pointData := range asSlice(m["points"]) {
		pd := asMap(pointData)
		if pd == nil {
			continue
		}
		var p *shader.CurveMapPoint
		if j < len(c.Points) {
			p = c.Points[j]
		} else {
			p = c.NewPoint(0, 0)
		}
		p.HandleType = getString(pd, "handle_type", p.HandleType)
		p.Location = toVector2(pd["location"], p.Location)
		p.Select = getBool(pd, "select", p.Select)
	}
}

// decodeImage resolves an image reference by name against the ambient asset
// registry. Missing assets leave the property untouched.
func decodeImage(n *shader.Node, data any, assets *shader.Assets, r *Report) {
	m := asMap(data)
	if m == nil || assets == nil {
		return
	}
	name := getString(m, "name", "")
	img := assets.ImageByName(name)
	if img == nil {
		r.addAssetDiag(n.Name, "image "+name+" not found")
		return
	}
	n.SetProp("image", img)
}

// decodeText resolves an embedded text reference. An existing text with a
// matching filepath wins; otherwise a new text is created and registered.
func decodeText(data any, assets *shader.Assets) *shader.Text {
	m := asMap(data)
	if m == nil {
		return nil
	}
	if assets != nil {
		if existing := assets.TextByFilepath(getString(m, "filepath", "")); existing != nil {
			return existing
		}
	}

	text := shader.NewText("Text")
	text.CurrentCharacter = getInt(m, "current_character", 0)
	text.CurrentLineIndex = getInt(m, "current_line_index", 0)
	text.Filepath = getString(m, "filepath", "")
	text.Indentation = getString(m, "indentation", text.Indentation)
	text.SelectEndCharacter = getInt(m, "select_end_character", 0)
	text.SelectEndLineIndex = getInt(m, "select_end_line_index", 0)
	text.UseModule = getBool(m, "use_module", false)

	if lines := asSlice(m["lines"]); len(lines) > 0 {
		text.Lines = text.Lines[:0]
		for _, lineData := range lines {
			lm := asMap(lineData)
			text.Lines = append(text.Lines, &shader.TextLine{Body: getString(lm, "body", "")})
		}
	}
	if cl := asMap(m["current_line"]); cl != nil {
		text.CurrentLine().Body = getString(cl, "body", text.CurrentLine().Body)
	}

	if assets != nil {
		assets.AddText(text)
	}
	return text
}

// decodeInputs restores socket default values positionally. Group interface
// pseudo-nodes are skipped: their sockets belong to the tree interface and
// are restored during the link pass.
func decodeInputs(n *shader.Node, data any) {
	if n.IsGroupInterface() {
		return
	}
	applySocketDefaults(n.Inputs, asSlice(data))
}

// decodeOutputs restores output socket default values positionally, with
// the same group-interface exclusion as decodeInputs.
func decodeOutputs(n *shader.Node, data any) {
	if n.IsGroupInterface() {
		return
	}
	applySocketDefaults(n.Outputs, asSlice(data))
}

func applySocketDefaults(sockets []*shader.Socket, values []any) {
	for i, v := range values {
		if v == nil || i >= len(sockets) {
			continue
		}
		s := sockets[i]
		if !s.HasDefault() {
			continue
		}
		s.Default = coerce(s.Default, v)
	}
}

// =============================================================================
// Value Coercion
// =============================================================================

// coerce converts a decoded JSON value to the shape of the value it is about
// to replace, so typed properties keep their type across a round trip.
func coerce(existing, v any) any {
	switch ex := existing.(type) {
	case shader.Color:
		return toColor(v, ex)
	case shader.Vector:
		return toVector(v, ex)
	case shader.Euler:
		return toEuler(v, ex)
	case shader.Vector2:
		return toVector2(v, ex)
	case int:
		if f, ok := v.(float64); ok {
			return int(f)
		}
	case float64:
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		}
	case bool:
		if b, ok := v.(bool); ok {
			return b
		}
	case string:
		if s, ok := v.(string); ok {
			return s
		}
	}
	return v
}

func rampProp(n *shader.Node, name string) *shader.ColorRamp {
	v, ok := n.Prop(name)
	if !ok {
		return nil
	}
	ramp, _ := v.(*shader.ColorRamp)
	return ramp
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func getString(m map[string]any, key, def string) string {
	if m == nil {
		return def
	}
	if s, ok := m[key].(string); ok {
		return s
	}
	return def
}

func getFloat(m map[string]any, key string, def float64) float64 {
	if m == nil {
		return def
	}
	switch n := m[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return def
}

func getInt(m map[string]any, key string, def int) int {
	if m == nil {
		return def
	}
	switch n := m[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return def
}

func getBool(m map[string]any, key string, def bool) bool {
	if m == nil {
		return def
	}
	if b, ok := m[key].(bool); ok {
		return b
	}
	return def
}

func floatAt(s []any, i int, def float64) float64 {
	if i >= len(s) {
		return def
	}
	switch n := s[i].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return def
}

func toColor(v any, def shader.Color) shader.Color {
	s := asSlice(v)
	if len(s) < 3 {
		return def
	}
	out := def
	out[0] = floatAt(s, 0, def[0])
	out[1] = floatAt(s, 1, def[1])
	out[2] = floatAt(s, 2, def[2])
	if len(s) > 3 {
		out[3] = floatAt(s, 3, def[3])
	} else {
		out[3] = 1
	}
	return out
}

func toVector(v any, def shader.Vector) shader.Vector {
	s := asSlice(v)
	if len(s) < 3 {
		return def
	}
	return shader.Vector{floatAt(s, 0, def[0]), floatAt(s, 1, def[1]), floatAt(s, 2, def[2])}
}

func toEuler(v any, def shader.Euler) shader.Euler {
	s := asSlice(v)
	if len(s) < 3 {
		return def
	}
	return shader.Euler{floatAt(s, 0, def[0]), floatAt(s, 1, def[1]), floatAt(s, 2, def[2])}
}

func toVector2(v any, def shader.Vector2) shader.Vector2 {
	s := asSlice(v)
	if len(s) < 2 {
		return def
	}
	return shader.Vector2{floatAt(s, 0, def[0]), floatAt(s, 1, def[1])}
}
