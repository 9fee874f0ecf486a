package shader

import "testing"

func TestVector2Arithmetic(t *testing.T) {
	a := Vector2{110, 220}
	b := Vector2{100, 200}

	if got := a.Sub(b); got != (Vector2{10, 20}) {
		t.Errorf("Sub = %v, want {10 20}", got)
	}
	if got := a.Sub(b).Add(b); got != a {
		t.Errorf("Sub then Add = %v, want %v", got, a)
	}
}

func TestNewColorRampDefaults(t *testing.T) {
	r := NewColorRamp()

	if len(r.Elements) != 2 {
		t.Fatalf("new ramp has %d elements, want 2", len(r.Elements))
	}
	if r.Elements[0].Position != 0 || r.Elements[1].Position != 1 {
		t.Errorf("element positions = %v, %v, want 0 and 1",
			r.Elements[0].Position, r.Elements[1].Position)
	}
	if r.Interpolation != "LINEAR" {
		t.Errorf("interpolation = %q, want LINEAR", r.Interpolation)
	}
}

func TestColorRampClone(t *testing.T) {
	r := NewColorRamp()
	c := r.Clone()

	c.Elements[0].Position = 0.25
	if r.Elements[0].Position != 0 {
		t.Error("mutating a clone must not touch the original")
	}
}

func TestNewCurveMapDefaults(t *testing.T) {
	c := NewCurveMap()

	// Fresh curves carry exactly the two endpoints; decode relies on
	// overwriting them in place.
	if len(c.Points) != 2 {
		t.Fatalf("new curve has %d points, want 2", len(c.Points))
	}
	if c.Points[0].Location != (Vector2{0, 0}) || c.Points[1].Location != (Vector2{1, 1}) {
		t.Errorf("point locations = %v, %v", c.Points[0].Location, c.Points[1].Location)
	}
}

func TestCurveMapNewPoint(t *testing.T) {
	c := NewCurveMap()
	p := c.NewPoint(0.5, 0.75)

	if len(c.Points) != 3 {
		t.Errorf("curve has %d points after NewPoint, want 3", len(c.Points))
	}
	if p.Location != (Vector2{0.5, 0.75}) {
		t.Errorf("point location = %v", p.Location)
	}
}

func TestNewCurveMapping(t *testing.T) {
	m := NewCurveMapping(4)

	if len(m.Curves) != 4 {
		t.Fatalf("mapping has %d curves, want 4", len(m.Curves))
	}
	if m.ClipMaxX != 1 || m.ClipMaxY != 1 {
		t.Errorf("clip max = %v, %v, want 1, 1", m.ClipMaxX, m.ClipMaxY)
	}
}

func TestCurveMappingClone(t *testing.T) {
	m := NewCurveMapping(1)
	c := m.Clone()

	c.Curves[0].NewPoint(0.5, 0.5)
	if len(m.Curves[0].Points) != 2 {
		t.Error("mutating a cloned mapping must not touch the original")
	}
}

func TestTextCurrentLine(t *testing.T) {
	txt := NewText("Script")

	if txt.CurrentLine() == nil {
		t.Fatal("fresh text should expose its current line")
	}

	txt.Lines = append(txt.Lines, &TextLine{Body: "line two"})
	txt.CurrentLineIndex = 1
	if got := txt.CurrentLine().Body; got != "line two" {
		t.Errorf("current line body = %q, want %q", got, "line two")
	}

	// An out-of-range cursor grows the line list so it stays addressable.
	txt.CurrentLineIndex = 4
	if txt.CurrentLine() == nil || len(txt.Lines) != 5 {
		t.Errorf("cursor at 4 should extend the text to 5 lines, got %d", len(txt.Lines))
	}
}

func TestTextClone(t *testing.T) {
	txt := NewText("Script")
	txt.Lines[0].Body = "original"

	c := txt.Clone()
	c.Lines[0].Body = "changed"
	if txt.Lines[0].Body != "original" {
		t.Error("mutating a clone must not touch the original")
	}
}
