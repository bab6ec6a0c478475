package shape

import (
	"math"
	"testing"

	"github.com/krapie/tldraw-custom/internal/geom"
)

func vec(x, y float64) geom.Vec {
	return geom.Vec{X: x, Y: y}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBoundsInvariantForAllKinds(t *testing.T) {
	r := NewRegistry()
	for _, kind := range AllKinds {
		u := r.Lookup(kind)
		s := u.Create(nil)
		b := u.Bounds(s)
		if b.Width != b.MaxX-b.MinX {
			t.Errorf("%s: width %f != maxX-minX %f", kind, b.Width, b.MaxX-b.MinX)
		}
		if b.Height != b.MaxY-b.MinY {
			t.Errorf("%s: height %f != maxY-minY %f", kind, b.Height, b.MaxY-b.MinY)
		}
	}
}

func TestRotatedBoundsEqualsBoundsAtZeroRotation(t *testing.T) {
	r := NewRegistry()
	for _, kind := range AllKinds {
		u := r.Lookup(kind)
		s := u.Create(nil)
		if got, want := u.RotatedBounds(s), u.Bounds(s); got != want {
			t.Errorf("%s: rotated bounds %+v != bounds %+v at rotation 0", kind, got, want)
		}
	}
}

func TestHitTestCenterForAllKinds(t *testing.T) {
	r := NewRegistry()
	for _, kind := range AllKinds {
		u := r.Lookup(kind)
		s := u.Create(&Shape{Point: vec(20, 30)})
		if !u.HitTest(s, u.Center(s)) {
			t.Errorf("%s: hit test missed its own center", kind)
		}
	}
}

func TestTranslateByAdditivity(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindRectangle)

	a := u.Create(&Shape{Point: vec(3, 4)})
	u.TranslateBy(a, vec(1, 2))
	u.TranslateBy(a, vec(5, -7))

	b := u.Create(&Shape{Point: vec(3, 4)})
	u.TranslateBy(b, vec(6, -5))

	if a.Point != b.Point {
		t.Errorf("sequential deltas %+v != summed delta %+v", a.Point, b.Point)
	}
}

func TestTranslateToIdempotent(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindCircle)
	s := u.Create(nil)

	u.TranslateTo(s, vec(12, 34))
	u.TranslateTo(s, vec(12, 34))
	if s.Point != vec(12, 34) {
		t.Errorf("point = %+v, want {12 34}", s.Point)
	}
}

func TestCreateDoesNotMutatePartial(t *testing.T) {
	r := NewRegistry()
	partial := &Shape{
		Name:   "stroke",
		Points: []geom.Vec{{X: 1, Y: 1}, {X: 2, Y: 2}},
	}
	s := r.Create(KindDraw, partial)

	s.Points[0] = vec(99, 99)
	if partial.Points[0] != vec(1, 1) {
		t.Error("Create shared the partial's points slice")
	}
	if partial.ID != "" {
		t.Error("Create wrote an ID back into the partial")
	}
	if s.Name != "stroke" {
		t.Errorf("name = %q, want overlaid value", s.Name)
	}
}

func TestCreateAppliesDefaultsThenOverlay(t *testing.T) {
	r := NewRegistry()
	s := r.Create(KindRectangle, &Shape{Point: vec(5, 6), Size: vec(10, 20)})

	if s.Point != vec(5, 6) {
		t.Errorf("point = %+v", s.Point)
	}
	if s.Size != vec(10, 20) {
		t.Errorf("size = %+v", s.Size)
	}
	if s.Rotation != 0 {
		t.Errorf("rotation = %f, want 0", s.Rotation)
	}
	if s.ChildIndex != 1 {
		t.Errorf("childIndex = %f, want 1", s.ChildIndex)
	}
	if s.Style != DefaultStyle {
		t.Errorf("style = %+v, want default", s.Style)
	}
}

func TestSetPropertyRotationOnlyAffectsRotatedBounds(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindRectangle)
	s := u.Create(&Shape{Size: vec(10, 20)})

	before := u.Bounds(s)
	rotatedBefore := u.RotatedBounds(s)

	if err := u.SetProperty(s, "rotation", 1.0); err != nil {
		t.Fatalf("SetProperty(rotation): %v", err)
	}
	if s.Rotation != 1.0 {
		t.Errorf("rotation = %f, want 1.0", s.Rotation)
	}
	if got := u.Bounds(s); got != before {
		t.Errorf("un-rotated bounds changed: %+v -> %+v", before, got)
	}
	if got := u.RotatedBounds(s); got == rotatedBefore {
		t.Error("rotated bounds unchanged after rotation edit")
	}
}

func TestSetPropertyRejectsUnknownKey(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindRectangle)
	s := u.Create(nil)
	point, size, rotation := s.Point, s.Size, s.Rotation

	if err := u.SetProperty(s, "glow", 1.0); err == nil {
		t.Fatal("expected error for unknown property")
	}
	if s.Point != point || s.Size != size || s.Rotation != rotation {
		t.Error("shape mutated by rejected property")
	}
}

func TestSetPropertyRejectsWrongKind(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindRectangle)
	s := u.Create(nil)

	// radius belongs to circles and dots, not rectangles
	if err := u.SetProperty(s, "radius", 10.0); err == nil {
		t.Fatal("expected error for radius on a rectangle")
	}
	if s.Radius != 0 {
		t.Errorf("radius = %f after rejected set", s.Radius)
	}
}

func TestSetPropertyRejectsWrongType(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindCircle)
	s := u.Create(nil)

	if err := u.SetProperty(s, "radius", "big"); err == nil {
		t.Fatal("expected type error")
	}
	if s.Radius != 50 {
		t.Errorf("radius = %f, want untouched default 50", s.Radius)
	}
}

func TestApplyStylesShallowMerge(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindEllipse)
	s := u.Create(nil)

	fill := "#ff0000"
	width := 5.0
	u.ApplyStyles(s, StylePatch{Fill: &fill, StrokeWidth: &width})

	if s.Style.Fill != "#ff0000" {
		t.Errorf("fill = %q", s.Style.Fill)
	}
	if s.Style.StrokeWidth != 5 {
		t.Errorf("strokeWidth = %f", s.Style.StrokeWidth)
	}
	if s.Style.Stroke != DefaultStyle.Stroke {
		t.Errorf("stroke = %q, should be untouched", s.Style.Stroke)
	}
	if s.Style.Opacity != DefaultStyle.Opacity {
		t.Errorf("opacity = %f, should be untouched", s.Style.Opacity)
	}
}

func TestBoundsCacheInvalidatedByMutation(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindRectangle)
	s := u.Create(&Shape{Size: vec(10, 10)})

	first := u.Bounds(s)
	if first.MinX != 0 {
		t.Fatalf("minX = %f", first.MinX)
	}

	u.TranslateBy(s, vec(100, 0))
	moved := u.Bounds(s)
	if moved.MinX != 100 {
		t.Errorf("stale bounds after translate: minX = %f, want 100", moved.MinX)
	}

	if err := u.SetProperty(s, "size", vec(50, 50)); err != nil {
		t.Fatalf("SetProperty(size): %v", err)
	}
	resized := u.Bounds(s)
	if resized.Width != 50 {
		t.Errorf("stale bounds after resize: width = %f, want 50", resized.Width)
	}
}

func TestBoundsCacheReusedBetweenReads(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindPolyline)
	s := u.Create(&Shape{Points: []geom.Vec{{X: 0, Y: 0}, {X: 30, Y: 40}}})

	first := u.Bounds(s)
	if _, ok := r.cache.Get(s.ID); !ok {
		t.Fatal("bounds not cached after first query")
	}
	second := u.Bounds(s)
	if first != second {
		t.Errorf("cached read differs: %+v vs %+v", first, second)
	}
}

func TestRegistryInvalidateDropsEntry(t *testing.T) {
	r := NewRegistry()
	u := r.Lookup(KindRectangle)
	s := u.Create(nil)
	u.Bounds(s)

	r.Invalidate(s.ID)
	if _, ok := r.cache.Get(s.ID); ok {
		t.Error("cache entry survived Invalidate")
	}
}
