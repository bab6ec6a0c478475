package shape

import "github.com/krapie/tldraw-custom/internal/geom"

// dotRadius is fixed: dots do not resize.
const dotRadius = 4.0

// DotUtil is the behavior for dots, fixed-size point markers.
type DotUtil struct {
	baseUtil
}

func newDotUtil() *DotUtil {
	return &DotUtil{baseUtil{
		kind:                 KindDot,
		canTransform:         false,
		canChangeAspectRatio: false,
		canStyleFill:         true,
	}}
}

func (u *DotUtil) Create(props *Shape) *Shape {
	s := u.baseUtil.Create(props)
	s.Radius = dotRadius
	return s
}

func (u *DotUtil) Bounds(s *Shape) geom.Bounds {
	return u.cachedBounds(s, func(s *Shape) geom.Bounds {
		d := s.Radius * 2
		return geom.NewBounds(s.Point.X, s.Point.Y, s.Point.X+d, s.Point.Y+d)
	})
}

func (u *DotUtil) HitTest(s *Shape, point geom.Vec) bool {
	center := geom.Vec{X: s.Point.X + s.Radius, Y: s.Point.Y + s.Radius}
	return point.Dist(center) <= s.Radius+hitTolerance
}

// Transform only repositions: a dot never scales.
func (u *DotUtil) Transform(s *Shape, bounds geom.Bounds, info TransformInfo) {
	s.Point = geom.Vec{X: bounds.MinX, Y: bounds.MinY}
	u.invalidate(s)
}

func (u *DotUtil) Render(s *Shape) *RenderNode {
	return &RenderNode{
		Kind:    NodeCircle,
		ShapeID: s.ID,
		Point:   geom.Vec{X: s.Point.X + s.Radius, Y: s.Point.Y + s.Radius},
		Radius:  s.Radius,
		Style:   s.Style,
	}
}
