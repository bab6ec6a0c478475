package geom

import "math"

// Bounds is an axis-aligned bounding box. Width and Height are derived and
// always equal MaxX-MinX and MaxY-MinY; use the constructors to keep that
// invariant intact.
type Bounds struct {
	MinX   float64 `json:"minX"`
	MinY   float64 `json:"minY"`
	MaxX   float64 `json:"maxX"`
	MaxY   float64 `json:"maxY"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewBounds builds a Bounds from min/max coordinates.
func NewBounds(minX, minY, maxX, maxY float64) Bounds {
	return Bounds{
		MinX:   minX,
		MinY:   minY,
		MaxX:   maxX,
		MaxY:   maxY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// BoundsFromPoints returns the smallest Bounds containing all points.
// An empty point set yields a zero Bounds.
func BoundsFromPoints(points []Vec) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return NewBounds(minX, minY, maxX, maxY)
}

// Center returns the center point of the bounds.
func (b Bounds) Center() Vec {
	return Vec{b.MinX + b.Width/2, b.MinY + b.Height/2}
}

// IsEmpty checks if the bounds have zero or negative area.
func (b Bounds) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Union returns the smallest bounds containing both.
func (b Bounds) Union(other Bounds) Bounds {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}
	return NewBounds(
		math.Min(b.MinX, other.MinX),
		math.Min(b.MinY, other.MinY),
		math.Max(b.MaxX, other.MaxX),
		math.Max(b.MaxY, other.MaxY),
	)
}

// ExpandBy returns the bounds grown by d on every side.
func (b Bounds) ExpandBy(d float64) Bounds {
	return NewBounds(b.MinX-d, b.MinY-d, b.MaxX+d, b.MaxY+d)
}

// Corners returns the four corners in clockwise order from top-left.
func (b Bounds) Corners() [4]Vec {
	return [4]Vec{
		{b.MinX, b.MinY},
		{b.MaxX, b.MinY},
		{b.MaxX, b.MaxY},
		{b.MinX, b.MaxY},
	}
}

// RotatedCorners returns the four corners of b rotated about its center.
func RotatedCorners(b Bounds, radians float64) [4]Vec {
	center := b.Center()
	corners := b.Corners()
	for i, c := range corners {
		corners[i] = c.RotWith(center, radians)
	}
	return corners
}

// PointInBounds checks if p lies inside b (inclusive).
func PointInBounds(p Vec, b Bounds) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// BoundsContain checks if a fully contains b.
func BoundsContain(a, b Bounds) bool {
	return a.MinX <= b.MinX && a.MinY <= b.MinY && a.MaxX >= b.MaxX && a.MaxY >= b.MaxY
}

// BoundsCollide checks if a and b overlap.
func BoundsCollide(a, b Bounds) bool {
	return a.MaxX >= b.MinX && a.MinX <= b.MaxX && a.MaxY >= b.MinY && a.MinY <= b.MaxY
}

// BoundsContainPolygon checks if every point of the polygon lies inside b.
func BoundsContainPolygon(b Bounds, polygon []Vec) bool {
	if len(polygon) == 0 {
		return false
	}
	for _, p := range polygon {
		if !PointInBounds(p, b) {
			return false
		}
	}
	return true
}

// BoundsCollidePolygon checks if b and the polygon intersect: any polygon
// point inside b, any bounds corner inside the polygon, or any pair of edges
// crossing.
func BoundsCollidePolygon(b Bounds, polygon []Vec) bool {
	if len(polygon) == 0 {
		return false
	}
	for _, p := range polygon {
		if PointInBounds(p, b) {
			return true
		}
	}
	corners := b.Corners()
	for _, c := range corners {
		if PointInPolygon(c, polygon) {
			return true
		}
	}
	for i := range polygon {
		p1 := polygon[i]
		p2 := polygon[(i+1)%len(polygon)]
		for j := range corners {
			c1 := corners[j]
			c2 := corners[(j+1)%len(corners)]
			if segmentsIntersect(p1, p2, c1, c2) {
				return true
			}
		}
	}
	return false
}

// PointInPolygon checks if p lies inside the polygon using the even-odd rule.
func PointInPolygon(p Vec, polygon []Vec) bool {
	inside := false
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		a, b := polygon[i], polygon[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

func segmentsIntersect(a1, a2, b1, b2 Vec) bool {
	d1 := cross(b2.Sub(b1), a1.Sub(b1))
	d2 := cross(b2.Sub(b1), a2.Sub(b1))
	d3 := cross(a2.Sub(a1), b1.Sub(a1))
	d4 := cross(a2.Sub(a1), b2.Sub(a1))
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && onSegment(b1, b2, a1)) ||
		(d2 == 0 && onSegment(b1, b2, a2)) ||
		(d3 == 0 && onSegment(a1, a2, b1)) ||
		(d4 == 0 && onSegment(a1, a2, b2))
}

func cross(a, b Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}

func onSegment(a, b, p Vec) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}
