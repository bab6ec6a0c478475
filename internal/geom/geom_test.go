package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func close(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestVecArithmetic(t *testing.T) {
	a := Vec{X: 3, Y: 4}
	b := Vec{X: 1, Y: 2}

	if got := a.Add(b); got != (Vec{X: 4, Y: 6}) {
		t.Errorf("Add = %+v", got)
	}
	if got := a.Sub(b); got != (Vec{X: 2, Y: 2}) {
		t.Errorf("Sub = %+v", got)
	}
	if got := a.MulScalar(2); got != (Vec{X: 6, Y: 8}) {
		t.Errorf("MulScalar = %+v", got)
	}
	if got := a.Len(); got != 5 {
		t.Errorf("Len = %f", got)
	}
	if got := a.Dist(b); !close(got, math.Hypot(2, 2)) {
		t.Errorf("Dist = %f", got)
	}
	if got := a.Lerp(b, 0.5); got != (Vec{X: 2, Y: 3}) {
		t.Errorf("Lerp = %+v", got)
	}
}

func TestRotWith(t *testing.T) {
	p := Vec{X: 10, Y: 0}
	got := p.RotWith(Vec{}, math.Pi/2)
	if !close(got.X, 0) || !close(got.Y, 10) {
		t.Errorf("quarter turn about origin = %+v", got)
	}

	got = p.RotWith(Vec{X: 5, Y: 0}, math.Pi)
	if !close(got.X, 0) || !close(got.Y, 0) {
		t.Errorf("half turn about {5 0} = %+v", got)
	}

	if got := p.RotWith(Vec{X: 1, Y: 1}, 0); got != p {
		t.Errorf("zero rotation moved the point: %+v", got)
	}
}

func TestDistanceToSegment(t *testing.T) {
	a := Vec{X: 0, Y: 0}
	b := Vec{X: 10, Y: 0}

	if got := DistanceToSegment(Vec{X: 5, Y: 3}, a, b); !close(got, 3) {
		t.Errorf("perpendicular distance = %f", got)
	}
	// Past the end the nearest point is the endpoint, not the line.
	if got := DistanceToSegment(Vec{X: 13, Y: 4}, a, b); !close(got, 5) {
		t.Errorf("distance past end = %f", got)
	}
	// Degenerate segment.
	if got := DistanceToSegment(Vec{X: 3, Y: 4}, a, a); !close(got, 5) {
		t.Errorf("distance to point segment = %f", got)
	}
}

func TestBoundsConstructors(t *testing.T) {
	b := NewBounds(1, 2, 11, 22)
	if b.Width != 10 || b.Height != 20 {
		t.Errorf("derived size = %fx%f", b.Width, b.Height)
	}
	if got := b.Center(); got != (Vec{X: 6, Y: 12}) {
		t.Errorf("center = %+v", got)
	}

	fp := BoundsFromPoints([]Vec{{X: 5, Y: 5}, {X: -1, Y: 3}, {X: 2, Y: 9}})
	if fp != NewBounds(-1, 3, 5, 9) {
		t.Errorf("from points = %+v", fp)
	}

	if got := BoundsFromPoints(nil); got != (Bounds{}) {
		t.Errorf("empty point set = %+v", got)
	}
}

func TestBoundsUnion(t *testing.T) {
	a := NewBounds(0, 0, 10, 10)
	b := NewBounds(5, 5, 20, 30)

	if got := a.Union(b); got != NewBounds(0, 0, 20, 30) {
		t.Errorf("union = %+v", got)
	}
	// Empty operands do not drag the union toward the origin.
	if got := b.Union(Bounds{}); got != b {
		t.Errorf("union with empty = %+v", got)
	}
	if got := (Bounds{}).Union(b); got != b {
		t.Errorf("empty union = %+v", got)
	}
}

func TestBoundsExpandBy(t *testing.T) {
	b := NewBounds(10, 10, 20, 20).ExpandBy(5)
	if b != NewBounds(5, 5, 25, 25) {
		t.Errorf("expanded = %+v", b)
	}
}

func TestBoundsContainAndCollide(t *testing.T) {
	outer := NewBounds(0, 0, 100, 100)
	inner := NewBounds(10, 10, 20, 20)
	overlapping := NewBounds(90, 90, 110, 110)
	disjoint := NewBounds(200, 200, 210, 210)

	if !BoundsContain(outer, inner) {
		t.Error("outer should contain inner")
	}
	if BoundsContain(inner, outer) {
		t.Error("inner should not contain outer")
	}
	if !BoundsCollide(outer, overlapping) {
		t.Error("overlapping bounds should collide")
	}
	if BoundsCollide(outer, disjoint) {
		t.Error("disjoint bounds should not collide")
	}
}

func TestPointInPolygon(t *testing.T) {
	// Concave "L" shape.
	poly := []Vec{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 4},
		{X: 4, Y: 4}, {X: 4, Y: 10}, {X: 0, Y: 10},
	}

	if !PointInPolygon(Vec{X: 2, Y: 2}, poly) {
		t.Error("point in the corner arm should be inside")
	}
	if !PointInPolygon(Vec{X: 8, Y: 2}, poly) {
		t.Error("point in the top arm should be inside")
	}
	if PointInPolygon(Vec{X: 8, Y: 8}, poly) {
		t.Error("point in the notch should be outside")
	}
	if PointInPolygon(Vec{X: -1, Y: 5}, poly) {
		t.Error("point left of the polygon should be outside")
	}
}

func TestBoundsCollidePolygon(t *testing.T) {
	diamond := []Vec{{X: 10, Y: 0}, {X: 20, Y: 10}, {X: 10, Y: 20}, {X: 0, Y: 10}}

	// Bounds fully inside the diamond: no vertices exchanged, edges cross
	// nothing, but the corners are in the polygon.
	if !BoundsCollidePolygon(NewBounds(8, 8, 12, 12), diamond) {
		t.Error("bounds inside polygon should collide")
	}
	// Polygon vertex inside the bounds.
	if !BoundsCollidePolygon(NewBounds(8, -5, 12, 5), diamond) {
		t.Error("bounds around a vertex should collide")
	}
	// Edges cross without either containing the other's vertices.
	if !BoundsCollidePolygon(NewBounds(-5, 8, 25, 12), diamond) {
		t.Error("bounds slicing through the polygon should collide")
	}
	// The diamond's corner region of its bounding box is empty space.
	if BoundsCollidePolygon(NewBounds(0, 0, 2, 2), diamond) {
		t.Error("bounds in the empty corner should not collide")
	}

	if !BoundsContainPolygon(NewBounds(-1, -1, 21, 21), diamond) {
		t.Error("enclosing bounds should contain the polygon")
	}
	if BoundsContainPolygon(NewBounds(0, 0, 15, 21), diamond) {
		t.Error("clipped bounds should not contain the polygon")
	}
}

func TestRotatedCorners(t *testing.T) {
	b := NewBounds(0, 0, 10, 20)
	corners := RotatedCorners(b, math.Pi/2)

	got := BoundsFromPoints(corners[:])
	if !close(got.Width, 20) || !close(got.Height, 10) {
		t.Errorf("rotated extent = %fx%f, want 20x10", got.Width, got.Height)
	}
	c := got.Center()
	if !close(c.X, 5) || !close(c.Y, 10) {
		t.Errorf("center = %+v, want {5 10}", c)
	}
}

func TestMatrixIdentity(t *testing.T) {
	p := Vec{X: 3, Y: 7}
	if got := Identity().TransformPoint(p); got != p {
		t.Errorf("identity moved the point: %+v", got)
	}
}

func TestMatrixComposition(t *testing.T) {
	// Rotate then translate: Multiply applies the right operand first.
	m := Translate(10, 0).Multiply(Rotate(math.Pi / 2))
	got := m.TransformPoint(Vec{X: 1, Y: 0})
	if !close(got.X, 10) || !close(got.Y, 1) {
		t.Errorf("composed transform = %+v, want {10 1}", got)
	}
}

func TestAboutCenter(t *testing.T) {
	// A quarter turn about the local center keeps the center fixed.
	center := Vec{X: 5, Y: 10}
	m := AboutCenter(Vec{X: 100, Y: 100}, math.Pi/2, center)

	got := m.TransformPoint(center)
	if !close(got.X, 105) || !close(got.Y, 110) {
		t.Errorf("center mapped to %+v, want {105 110}", got)
	}

	// A corner swings around the center.
	got = m.TransformPoint(Vec{X: 10, Y: 10})
	if !close(got.X, 105) || !close(got.Y, 115) {
		t.Errorf("corner mapped to %+v, want {105 115}", got)
	}

	if got := AboutCenter(Vec{X: 7, Y: 8}, 0, center).TransformPoint(Vec{}); got != (Vec{X: 7, Y: 8}) {
		t.Errorf("zero rotation reduces to translate, got %+v", got)
	}
}

func TestToSlice(t *testing.T) {
	s := Translate(3, 4).ToSlice()
	want := []float64{1, 0, 0, 1, 3, 4}
	for i := range want {
		if s[i] != want[i] {
			t.Fatalf("slice[%d] = %f, want %f", i, s[i], want[i])
		}
	}
}
