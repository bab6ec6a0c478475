package shape

import "github.com/krapie/tldraw-custom/internal/geom"

// DrawUtil is the behavior for freehand strokes. Geometrically a polyline,
// but a filled stroke also hits on its interior.
type DrawUtil struct {
	baseUtil
}

func newDrawUtil() *DrawUtil {
	return &DrawUtil{baseUtil{
		kind:                 KindDraw,
		canTransform:         true,
		canChangeAspectRatio: true,
		canStyleFill:         true,
	}}
}

func (u *DrawUtil) Create(props *Shape) *Shape {
	s := u.baseUtil.Create(props)
	if s.Points == nil {
		s.Points = []geom.Vec{{}}
	}
	return s
}

func (u *DrawUtil) Bounds(s *Shape) geom.Bounds {
	return u.cachedBounds(s, func(s *Shape) geom.Bounds {
		return pointsBounds(s.Point, s.Points)
	})
}

func (u *DrawUtil) HitTest(s *Shape, point geom.Vec) bool {
	if hitsPolylinePath(s.Point, s.Points, point, hitTolerance) {
		return true
	}
	if !s.Style.IsFilled || len(s.Points) < 3 {
		return false
	}
	polygon := make([]geom.Vec, len(s.Points))
	for i, p := range s.Points {
		polygon[i] = s.Point.Add(p)
	}
	return geom.PointInPolygon(point, polygon)
}

func (u *DrawUtil) Transform(s *Shape, bounds geom.Bounds, info TransformInfo) {
	transformPoints(&u.baseUtil, s, bounds, info)
}

func (u *DrawUtil) Render(s *Shape) *RenderNode {
	return &RenderNode{
		Kind:     NodePath,
		ShapeID:  s.ID,
		Point:    s.Point,
		Rotation: s.Rotation,
		Path:     linePath(s.Points),
		Style:    s.Style,
	}
}
