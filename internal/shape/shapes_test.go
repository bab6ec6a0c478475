package shape

import (
	"math"
	"testing"

	"github.com/krapie/tldraw-custom/internal/geom"
)

func TestRectangleBounds(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindRectangle)
	s := u.Create(&Shape{Size: vec(10, 20)})

	b := u.Bounds(s)
	want := geom.Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 20, Width: 10, Height: 20}
	if b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
}

func TestRectangleTranslateBy(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindRectangle)
	s := u.Create(&Shape{Size: vec(10, 20)})

	u.TranslateBy(s, vec(5, 5))
	if s.Point != vec(5, 5) {
		t.Errorf("point = %+v, want {5 5}", s.Point)
	}
}

func TestQuarterTurnSwapsWidthAndHeight(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindRectangle)
	s := u.Create(&Shape{Size: vec(10, 20)})

	centerBefore := u.Center(s)
	if err := u.SetProperty(s, "rotation", math.Pi/2); err != nil {
		t.Fatal(err)
	}

	rb := u.RotatedBounds(s)
	if !almostEqual(rb.Width, 20) || !almostEqual(rb.Height, 10) {
		t.Errorf("rotated bounds %fx%f, want 20x10", rb.Width, rb.Height)
	}
	c := rb.Center()
	if !almostEqual(c.X, centerBefore.X) || !almostEqual(c.Y, centerBefore.Y) {
		t.Errorf("center moved: %+v -> %+v", centerBefore, c)
	}
}

func TestRectangleTransformFitsBounds(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindRectangle)
	s := u.Create(&Shape{Size: vec(10, 10)})

	u.Transform(s, geom.NewBounds(5, 5, 45, 25), TransformInfo{
		Type: TransformBottomRightCorner, Initial: s.Clone(), ScaleX: 4, ScaleY: 2,
	})
	if s.Point != vec(5, 5) {
		t.Errorf("point = %+v", s.Point)
	}
	if s.Size != vec(40, 20) {
		t.Errorf("size = %+v, want {40 20}", s.Size)
	}
}

func TestTransformClampsDegenerateBounds(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindRectangle)
	s := u.Create(&Shape{Size: vec(10, 10)})

	u.Transform(s, geom.NewBounds(5, 5, 5, 5), TransformInfo{ScaleX: 0, ScaleY: 0})
	if s.Size.X < 1 || s.Size.Y < 1 {
		t.Errorf("size collapsed to %+v", s.Size)
	}
	if math.IsNaN(s.Size.X) || math.IsInf(s.Size.X, 0) {
		t.Errorf("size is not finite: %+v", s.Size)
	}
}

func TestCircleHitTest(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindCircle)
	s := u.Create(&Shape{Radius: 10})

	if !u.HitTest(s, vec(10, 10)) {
		t.Error("center should hit")
	}
	if !u.HitTest(s, vec(10, 19)) {
		t.Error("interior point should hit")
	}
	// Inside the bounding box but outside the circle.
	if u.HitTest(s, vec(1, 1)) {
		t.Error("bounding-box corner should miss the circle")
	}
}

func TestCircleTransformStaysCentered(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindCircle)
	s := u.Create(&Shape{Radius: 10})

	u.Transform(s, geom.NewBounds(0, 0, 40, 20), TransformInfo{ScaleX: 2, ScaleY: 1})
	if s.Radius != 10 {
		t.Errorf("radius = %f, want 10 (min axis / 2)", s.Radius)
	}
	center := u.Center(s)
	if !almostEqual(center.X, 20) || !almostEqual(center.Y, 10) {
		t.Errorf("center = %+v, want {20 10}", center)
	}
}

func TestEllipseHitTest(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindEllipse)
	s := u.Create(&Shape{Size: vec(20, 10)})

	if !u.HitTest(s, vec(10, 5)) {
		t.Error("center should hit")
	}
	if u.HitTest(s, vec(1, 1)) {
		t.Error("box corner should miss the ellipse")
	}
	if !u.HitTest(s, vec(19, 5)) {
		t.Error("point near the right vertex should hit")
	}
}

func TestLineHitTestTolerance(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindLine)
	s := u.Create(&Shape{Handles: map[string]Handle{
		HandleStart: {ID: HandleStart, Index: 0, Point: vec(0, 0)},
		HandleEnd:   {ID: HandleEnd, Index: 1, Point: vec(100, 0)},
	}})

	if !u.HitTest(s, vec(50, 3)) {
		t.Error("point within tolerance should hit")
	}
	if u.HitTest(s, vec(50, 10)) {
		t.Error("point beyond tolerance should miss")
	}
}

func TestLineHandleChangeNormalizes(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindLine)
	s := u.Create(&Shape{Point: vec(10, 10), Handles: map[string]Handle{
		HandleStart: {ID: HandleStart, Index: 0, Point: vec(0, 0)},
		HandleEnd:   {ID: HandleEnd, Index: 1, Point: vec(50, 50)},
	}})

	// Drag the start handle up-left of the local origin.
	u.OnHandleChange(s, map[string]Handle{
		HandleStart: {ID: HandleStart, Point: vec(-20, -20)},
	})

	if s.Point != vec(-10, -10) {
		t.Errorf("point = %+v, want {-10 -10}", s.Point)
	}
	if s.Handles[HandleStart].Point != vec(0, 0) {
		t.Errorf("start handle = %+v, want origin after normalize", s.Handles[HandleStart].Point)
	}
	if s.Handles[HandleEnd].Point != vec(70, 70) {
		t.Errorf("end handle = %+v, want {70 70}", s.Handles[HandleEnd].Point)
	}
}

func TestLineBindingMovesHandle(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindLine)
	s := u.Create(&Shape{Handles: map[string]Handle{
		HandleStart: {ID: HandleStart, Index: 0, Point: vec(0, 0)},
		HandleEnd:   {ID: HandleEnd, Index: 1, Point: vec(50, 0)},
	}})

	binding := Binding{
		ID:       "bind_1",
		FromID:   s.ID,
		ToID:     "shape_target",
		HandleID: HandleEnd,
		Point:    vec(0.5, 0.5), // target center
	}
	target := geom.NewBounds(100, 100, 140, 140)
	u.OnBindingChange(s, binding, target)

	end := s.Point.Add(s.Handles[HandleEnd].Point)
	if end != vec(120, 120) {
		t.Errorf("end handle world pos = %+v, want target center {120 120}", end)
	}
	if s.Handles[HandleEnd].BindingID != "bind_1" {
		t.Errorf("bindingId = %q", s.Handles[HandleEnd].BindingID)
	}
}

func TestArrowBendRecentersWhenEndpointMoves(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindArrow)
	s := u.Create(&Shape{Handles: map[string]Handle{
		HandleStart: {ID: HandleStart, Index: 0, Point: vec(0, 0)},
		HandleEnd:   {ID: HandleEnd, Index: 1, Point: vec(100, 0)},
		HandleBend:  {ID: HandleBend, Index: 2, Point: vec(50, 0)},
	}})

	u.OnHandleChange(s, map[string]Handle{
		HandleEnd: {ID: HandleEnd, Point: vec(100, 100)},
	})

	bend := s.Handles[HandleBend].Point
	if bend != vec(50, 50) {
		t.Errorf("bend = %+v, want midpoint {50 50}", bend)
	}
}

func TestPolylineTransformScalesPoints(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindPolyline)
	s := u.Create(&Shape{Points: []geom.Vec{{X: 0, Y: 0}, {X: 10, Y: 20}}})

	u.Transform(s, geom.NewBounds(0, 0, 20, 40), TransformInfo{
		Initial: s.Clone(), ScaleX: 2, ScaleY: 2,
	})

	if s.Points[1] != vec(20, 40) {
		t.Errorf("scaled point = %+v, want {20 40}", s.Points[1])
	}
	b := u.Bounds(s)
	if b.Width != 20 || b.Height != 40 {
		t.Errorf("bounds = %fx%f, want 20x40", b.Width, b.Height)
	}
}

func TestPolylineTransformFlips(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindPolyline)
	s := u.Create(&Shape{Points: []geom.Vec{{X: 0, Y: 0}, {X: 10, Y: 10}}})

	u.Transform(s, geom.NewBounds(0, 0, 10, 10), TransformInfo{
		Initial: s.Clone(), ScaleX: -1, ScaleY: 1,
	})

	if s.Points[0] != vec(10, 0) {
		t.Errorf("first point = %+v, want {10 0} after x flip", s.Points[0])
	}
	if s.Points[1] != vec(0, 10) {
		t.Errorf("second point = %+v, want {0 10} after x flip", s.Points[1])
	}
}

func TestGroupFitsChildren(t *testing.T) {
	r := NewRegistry()
	ru := r.Lookup(KindRectangle)
	a := ru.Create(&Shape{Point: vec(0, 0), Size: vec(10, 10)})
	b := ru.Create(&Shape{Point: vec(40, 40), Size: vec(20, 20)})

	gu := r.Lookup(KindGroup)
	g := gu.Create(&Shape{Children: []string{a.ID, b.ID}})
	gu.OnChildrenChange(g, []*Shape{a, b})

	if g.Point != vec(0, 0) {
		t.Errorf("group point = %+v", g.Point)
	}
	if g.Size != vec(60, 60) {
		t.Errorf("group size = %+v, want {60 60}", g.Size)
	}
}

func TestTextEditsRemeasure(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindText)
	s := u.Create(&Shape{Text: "hi"})

	before := u.Bounds(s)
	if err := u.SetProperty(s, "text", "hello world"); err != nil {
		t.Fatal(err)
	}
	after := u.Bounds(s)
	if after.Width <= before.Width {
		t.Errorf("width did not grow with longer text: %f -> %f", before.Width, after.Width)
	}
}

func TestTextTransformSingleScalesFont(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindText)
	s := u.Create(&Shape{Text: "hello"})
	initial := s.Clone()

	newBounds := geom.NewBounds(0, 0, s.Size.X*2, s.Size.Y*2)
	u.TransformSingle(s, newBounds, TransformInfo{Initial: initial, ScaleX: 2, ScaleY: 2})

	if !almostEqual(s.FontSize, defaultFontSize*2) {
		t.Errorf("fontSize = %f, want %f", s.FontSize, defaultFontSize*2)
	}

	// The multi-shape Transform stretches the box but keeps the font.
	s2 := u.Create(&Shape{Text: "hello"})
	u.Transform(s2, newBounds, TransformInfo{Initial: s2.Clone(), ScaleX: 2, ScaleY: 2})
	if s2.FontSize != defaultFontSize {
		t.Errorf("Transform changed fontSize to %f", s2.FontSize)
	}
}

func TestHitTestBounds(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindRectangle)
	s := u.Create(&Shape{Point: vec(10, 10), Size: vec(20, 20)})

	if !u.HitTestBounds(s, geom.NewBounds(0, 0, 100, 100)) {
		t.Error("containing marquee should hit")
	}
	if !u.HitTestBounds(s, geom.NewBounds(25, 25, 100, 100)) {
		t.Error("partially overlapping marquee should hit")
	}
	if u.HitTestBounds(s, geom.NewBounds(50, 50, 100, 100)) {
		t.Error("disjoint marquee should miss")
	}
}

func TestHitTestBoundsRotatedShape(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindRectangle)
	// A long thin bar rotated 45 degrees reaches outside its un-rotated box.
	s := u.Create(&Shape{Point: vec(0, 0), Size: vec(100, 4)})
	if err := u.SetProperty(s, "rotation", math.Pi/4); err != nil {
		t.Fatal(err)
	}

	// The rotated centerline runs through (70, 22).
	if !u.HitTestBounds(s, geom.NewBounds(65, 15, 75, 30)) {
		t.Error("marquee over the rotated bar should hit")
	}
	// A marquee over where the bar used to be, but no longer is.
	if u.HitTestBounds(s, geom.NewBounds(90, -10, 110, 0)) {
		t.Error("marquee off the rotated bar should miss")
	}
}

func TestRayHitTestExtendsPastEnd(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindRay)
	s := u.Create(&Shape{Handles: map[string]Handle{
		HandleStart: {ID: HandleStart, Index: 0, Point: vec(0, 0)},
		HandleEnd:   {ID: HandleEnd, Index: 1, Point: vec(10, 0)},
	}})

	if !u.HitTest(s, vec(500, 0)) {
		t.Error("point far along the ray should hit")
	}
	if u.HitTest(s, vec(-20, 0)) {
		t.Error("point behind the ray origin should miss")
	}
}

func TestDrawFilledHitsInterior(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindDraw)
	square := []geom.Vec{{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 40, Y: 40}, {X: 0, Y: 40}, {X: 0, Y: 0}}

	open := u.Create(&Shape{Points: square})
	if open.Style.IsFilled {
		t.Fatal("default draw style should be unfilled")
	}
	if u.HitTest(open, vec(20, 20)) {
		t.Error("interior should miss an unfilled stroke")
	}

	filled := u.Create(&Shape{Points: square})
	yes := true
	u.ApplyStyles(filled, StylePatch{IsFilled: &yes})
	if !u.HitTest(filled, vec(20, 20)) {
		t.Error("interior should hit a filled stroke")
	}
}
