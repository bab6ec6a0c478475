package shape

import (
	"math"

	"github.com/krapie/tldraw-custom/internal/geom"
)

// clampSize keeps transform output finite and non-degenerate.
func clampSize(v, minimum float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < minimum {
		return minimum
	}
	return v
}

// pointsBounds computes bounds for shape-relative points offset by origin.
func pointsBounds(origin geom.Vec, points []geom.Vec) geom.Bounds {
	if len(points) == 0 {
		return geom.NewBounds(origin.X, origin.Y, origin.X+1, origin.Y+1)
	}
	abs := make([]geom.Vec, len(points))
	for i, p := range points {
		abs[i] = origin.Add(p)
	}
	return geom.BoundsFromPoints(abs)
}

// handlePoints collects the handle points of a shape in stable order by
// handle index.
func handlePoints(s *Shape) []geom.Vec {
	points := make([]geom.Vec, 0, len(s.Handles))
	for i := 0; i < len(s.Handles); i++ {
		for _, h := range s.Handles {
			if h.Index == i {
				points = append(points, h.Point)
			}
		}
	}
	if len(points) != len(s.Handles) {
		// Indexes are not contiguous; fall back to map order.
		points = points[:0]
		for _, h := range s.Handles {
			points = append(points, h.Point)
		}
	}
	return points
}

// scaleToBounds maps a shape-relative point from the initial bounds into the
// new bounds, flipping axes when the drag crossed over (negative scale).
func scaleToBounds(p geom.Vec, initial, next geom.Bounds, scaleX, scaleY float64) geom.Vec {
	nx := 0.0
	if initial.Width > 0 {
		nx = p.X / initial.Width * next.Width
	}
	ny := 0.0
	if initial.Height > 0 {
		ny = p.Y / initial.Height * next.Height
	}
	if scaleX < 0 {
		nx = next.Width - nx
	}
	if scaleY < 0 {
		ny = next.Height - ny
	}
	return geom.Vec{X: nx, Y: ny}
}

// hitsPolylinePath reports whether point is within tolerance of any segment
// of the polyline described by origin-relative points.
func hitsPolylinePath(origin geom.Vec, points []geom.Vec, point geom.Vec, tolerance float64) bool {
	if len(points) == 0 {
		return false
	}
	if len(points) == 1 {
		return point.Dist(origin.Add(points[0])) <= tolerance
	}
	for i := 0; i < len(points)-1; i++ {
		a := origin.Add(points[i])
		b := origin.Add(points[i+1])
		if geom.DistanceToSegment(point, a, b) <= tolerance {
			return true
		}
	}
	return false
}
