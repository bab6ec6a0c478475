package shape

import "github.com/krapie/tldraw-custom/internal/geom"

// RectangleUtil is the behavior for axis-aligned rectangles.
type RectangleUtil struct {
	baseUtil
}

func newRectangleUtil() *RectangleUtil {
	return &RectangleUtil{baseUtil{
		kind:                 KindRectangle,
		canTransform:         true,
		canChangeAspectRatio: true,
		canStyleFill:         true,
	}}
}

func (u *RectangleUtil) Create(props *Shape) *Shape {
	s := u.baseUtil.Create(props)
	if s.Size == (geom.Vec{}) {
		s.Size = geom.Vec{X: 100, Y: 100}
	}
	return s
}

func (u *RectangleUtil) Bounds(s *Shape) geom.Bounds {
	return u.cachedBounds(s, func(s *Shape) geom.Bounds {
		return geom.NewBounds(s.Point.X, s.Point.Y, s.Point.X+s.Size.X, s.Point.Y+s.Size.Y)
	})
}

func (u *RectangleUtil) Transform(s *Shape, bounds geom.Bounds, info TransformInfo) {
	s.Point = geom.Vec{X: bounds.MinX, Y: bounds.MinY}
	s.Size = geom.Vec{X: clampSize(bounds.Width, 1), Y: clampSize(bounds.Height, 1)}
	u.invalidate(s)
}

func (u *RectangleUtil) Render(s *Shape) *RenderNode {
	return &RenderNode{
		Kind:     NodePath,
		ShapeID:  s.ID,
		Point:    s.Point,
		Rotation: s.Rotation,
		Path:     rectPath(s.Size),
		Style:    s.Style,
	}
}
