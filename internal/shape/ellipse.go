package shape

import "github.com/krapie/tldraw-custom/internal/geom"

// EllipseUtil is the behavior for ellipses. Size is the full extent; the
// radii are Size/2.
type EllipseUtil struct {
	baseUtil
}

func newEllipseUtil() *EllipseUtil {
	return &EllipseUtil{baseUtil{
		kind:                 KindEllipse,
		canTransform:         true,
		canChangeAspectRatio: true,
		canStyleFill:         true,
	}}
}

func (u *EllipseUtil) Create(props *Shape) *Shape {
	s := u.baseUtil.Create(props)
	if s.Size == (geom.Vec{}) {
		s.Size = geom.Vec{X: 100, Y: 100}
	}
	return s
}

func (u *EllipseUtil) Bounds(s *Shape) geom.Bounds {
	return u.cachedBounds(s, func(s *Shape) geom.Bounds {
		return geom.NewBounds(s.Point.X, s.Point.Y, s.Point.X+s.Size.X, s.Point.Y+s.Size.Y)
	})
}

func (u *EllipseUtil) HitTest(s *Shape, point geom.Vec) bool {
	rx := s.Size.X / 2
	ry := s.Size.Y / 2
	if rx <= 0 || ry <= 0 {
		return false
	}
	dx := (point.X - (s.Point.X + rx)) / rx
	dy := (point.Y - (s.Point.Y + ry)) / ry
	return dx*dx+dy*dy <= 1
}

func (u *EllipseUtil) Transform(s *Shape, bounds geom.Bounds, info TransformInfo) {
	s.Point = geom.Vec{X: bounds.MinX, Y: bounds.MinY}
	s.Size = geom.Vec{X: clampSize(bounds.Width, 1), Y: clampSize(bounds.Height, 1)}
	u.invalidate(s)
}

func (u *EllipseUtil) Render(s *Shape) *RenderNode {
	rx := s.Size.X / 2
	ry := s.Size.Y / 2
	return &RenderNode{
		Kind:     NodeEllipse,
		ShapeID:  s.ID,
		Point:    geom.Vec{X: s.Point.X + rx, Y: s.Point.Y + ry},
		Rotation: s.Rotation,
		RadiusX:  rx,
		RadiusY:  ry,
		Style:    s.Style,
	}
}
