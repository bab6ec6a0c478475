// Package geom provides the 2D geometry primitives used by the shape core:
// vectors, axis-aligned bounds, affine matrices, and the polygon tests that
// back hit-testing and marquee selection.
package geom

import "math"

// Vec is a 2D point or vector.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y}
}

// MulScalar returns v scaled by s.
func (v Vec) MulScalar(s float64) Vec {
	return Vec{v.X * s, v.Y * s}
}

// Len returns the length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between v and o.
func (v Vec) Dist(o Vec) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Lerp returns the linear interpolation between v and o at t (0-1).
func (v Vec) Lerp(o Vec, t float64) Vec {
	return Vec{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// RotWith rotates v around center by the given angle in radians.
func (v Vec) RotWith(center Vec, radians float64) Vec {
	if radians == 0 {
		return v
	}
	sin := math.Sin(radians)
	cos := math.Cos(radians)
	dx := v.X - center.X
	dy := v.Y - center.Y
	return Vec{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// DistanceToSegment returns the distance from p to the segment a-b.
func DistanceToSegment(p, a, b Vec) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / lenSq
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return p.Dist(Vec{a.X + ab.X*t, a.Y + ab.Y*t})
}
