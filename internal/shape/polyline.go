package shape

import "github.com/krapie/tldraw-custom/internal/geom"

// PolylineUtil is the behavior for open polylines through a point list.
type PolylineUtil struct {
	baseUtil
}

func newPolylineUtil() *PolylineUtil {
	return &PolylineUtil{baseUtil{
		kind:                 KindPolyline,
		canTransform:         true,
		canChangeAspectRatio: true,
		canStyleFill:         false,
	}}
}

func (u *PolylineUtil) Create(props *Shape) *Shape {
	s := u.baseUtil.Create(props)
	if s.Points == nil {
		s.Points = []geom.Vec{{}}
	}
	return s
}

func (u *PolylineUtil) Bounds(s *Shape) geom.Bounds {
	return u.cachedBounds(s, func(s *Shape) geom.Bounds {
		return pointsBounds(s.Point, s.Points)
	})
}

func (u *PolylineUtil) HitTest(s *Shape, point geom.Vec) bool {
	return hitsPolylinePath(s.Point, s.Points, point, hitTolerance)
}

func (u *PolylineUtil) Transform(s *Shape, bounds geom.Bounds, info TransformInfo) {
	transformPoints(&u.baseUtil, s, bounds, info)
}

func (u *PolylineUtil) Render(s *Shape) *RenderNode {
	return &RenderNode{
		Kind:     NodePath,
		ShapeID:  s.ID,
		Point:    s.Point,
		Rotation: s.Rotation,
		Path:     linePath(s.Points),
		Style:    s.Style,
	}
}

// transformPoints maps every point from the pre-drag bounds into the new
// bounds. Shared by polyline and draw.
func transformPoints(b *baseUtil, s *Shape, bounds geom.Bounds, info TransformInfo) {
	initial := info.initial(s)
	initialBounds := pointsBounds(geom.Vec{}, initial.Points)
	points := make([]geom.Vec, len(initial.Points))
	for i, p := range initial.Points {
		points[i] = scaleToBounds(p, initialBounds, bounds, info.ScaleX, info.ScaleY)
	}
	s.Points = points
	s.Point = geom.Vec{X: bounds.MinX, Y: bounds.MinY}
	b.invalidate(s)
}
