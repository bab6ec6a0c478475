package shape

import "github.com/krapie/tldraw-custom/internal/geom"

// GroupUtil is the behavior for groups. A group's geometry is derived from
// its children: OnChildrenChange refits the group box around their rotated
// bounds.
type GroupUtil struct {
	baseUtil
}

func newGroupUtil() *GroupUtil {
	return &GroupUtil{baseUtil{
		kind:                 KindGroup,
		canTransform:         true,
		canChangeAspectRatio: true,
		canStyleFill:         false,
	}}
}

func (u *GroupUtil) Create(props *Shape) *Shape {
	s := u.baseUtil.Create(props)
	if s.Children == nil {
		s.Children = []string{}
	}
	if s.Size == (geom.Vec{}) {
		s.Size = geom.Vec{X: 1, Y: 1}
	}
	return s
}

func (u *GroupUtil) Bounds(s *Shape) geom.Bounds {
	return u.cachedBounds(s, func(s *Shape) geom.Bounds {
		return geom.NewBounds(s.Point.X, s.Point.Y, s.Point.X+s.Size.X, s.Point.Y+s.Size.Y)
	})
}

func (u *GroupUtil) Transform(s *Shape, bounds geom.Bounds, info TransformInfo) {
	s.Point = geom.Vec{X: bounds.MinX, Y: bounds.MinY}
	s.Size = geom.Vec{X: clampSize(bounds.Width, 1), Y: clampSize(bounds.Height, 1)}
	u.invalidate(s)
}

// OnChildrenChange refits the group to the union of its children's rotated
// bounds.
func (u *GroupUtil) OnChildrenChange(s *Shape, children []*Shape) {
	if len(children) == 0 {
		return
	}
	var union geom.Bounds
	for i, child := range children {
		b := u.reg.UtilFor(child).RotatedBounds(child)
		if i == 0 {
			union = b
		} else {
			union = union.Union(b)
		}
	}
	s.Point = geom.Vec{X: union.MinX, Y: union.MinY}
	s.Size = geom.Vec{X: union.Width, Y: union.Height}
	u.invalidate(s)
}

func (u *GroupUtil) Render(s *Shape) *RenderNode {
	return &RenderNode{
		Kind:     NodeGroup,
		ShapeID:  s.ID,
		Point:    s.Point,
		Rotation: s.Rotation,
		Style:    s.Style,
	}
}
