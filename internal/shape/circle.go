package shape

import "github.com/krapie/tldraw-custom/internal/geom"

// CircleUtil is the behavior for circles. Point is the top-left of the
// bounding square; the center sits at Point + (Radius, Radius).
type CircleUtil struct {
	baseUtil
}

func newCircleUtil() *CircleUtil {
	return &CircleUtil{baseUtil{
		kind:                 KindCircle,
		canTransform:         true,
		canChangeAspectRatio: false,
		canStyleFill:         true,
	}}
}

func (u *CircleUtil) Create(props *Shape) *Shape {
	s := u.baseUtil.Create(props)
	if s.Radius == 0 {
		s.Radius = 50
	}
	return s
}

func (u *CircleUtil) Bounds(s *Shape) geom.Bounds {
	return u.cachedBounds(s, func(s *Shape) geom.Bounds {
		d := s.Radius * 2
		return geom.NewBounds(s.Point.X, s.Point.Y, s.Point.X+d, s.Point.Y+d)
	})
}

func (u *CircleUtil) HitTest(s *Shape, point geom.Vec) bool {
	center := geom.Vec{X: s.Point.X + s.Radius, Y: s.Point.Y + s.Radius}
	return point.Dist(center) <= s.Radius
}

// Transform fits the circle into the new bounds, keeping it centered when
// the bounds are not square.
func (u *CircleUtil) Transform(s *Shape, bounds geom.Bounds, info TransformInfo) {
	r := clampSize(min(bounds.Width, bounds.Height)/2, 0.5)
	center := bounds.Center()
	s.Radius = r
	s.Point = geom.Vec{X: center.X - r, Y: center.Y - r}
	u.invalidate(s)
}

func (u *CircleUtil) Render(s *Shape) *RenderNode {
	return &RenderNode{
		Kind:     NodeCircle,
		ShapeID:  s.ID,
		Point:    geom.Vec{X: s.Point.X + s.Radius, Y: s.Point.Y + s.Radius},
		Rotation: s.Rotation,
		Radius:   s.Radius,
		Style:    s.Style,
	}
}
