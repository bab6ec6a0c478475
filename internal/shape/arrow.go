package shape

import "github.com/krapie/tldraw-custom/internal/geom"

// ArrowUtil is the behavior for arrows: a start and end handle plus a bend
// handle that pulls the midpoint. Arrows are the bindable shape family's
// main user: both endpoints can bind to other shapes.
type ArrowUtil struct {
	baseUtil
}

func newArrowUtil() *ArrowUtil {
	return &ArrowUtil{baseUtil{
		kind:                 KindArrow,
		canTransform:         true,
		canChangeAspectRatio: true,
		canStyleFill:         false,
	}}
}

func (u *ArrowUtil) Create(props *Shape) *Shape {
	s := u.baseUtil.Create(props)
	if s.Handles == nil {
		s.Handles = map[string]Handle{
			HandleStart: {ID: HandleStart, Index: 0, Point: geom.Vec{}},
			HandleEnd:   {ID: HandleEnd, Index: 1, Point: geom.Vec{X: 1, Y: 1}},
			HandleBend:  {ID: HandleBend, Index: 2, Point: geom.Vec{X: 0.5, Y: 0.5}},
		}
	}
	return s
}

func (u *ArrowUtil) Bounds(s *Shape) geom.Bounds {
	return u.cachedBounds(s, func(s *Shape) geom.Bounds {
		return pointsBounds(s.Point, handlePoints(s))
	})
}

func (u *ArrowUtil) HitTest(s *Shape, point geom.Vec) bool {
	start := s.Point.Add(s.Handles[HandleStart].Point)
	bend := s.Point.Add(s.Handles[HandleBend].Point)
	end := s.Point.Add(s.Handles[HandleEnd].Point)
	return geom.DistanceToSegment(point, start, bend) <= hitTolerance ||
		geom.DistanceToSegment(point, bend, end) <= hitTolerance
}

func (u *ArrowUtil) Transform(s *Shape, bounds geom.Bounds, info TransformInfo) {
	transformHandles(&u.baseUtil, s, bounds, info)
}

// OnHandleChange re-centers the bend handle when only an endpoint moved, so
// a straight arrow stays straight.
func (u *ArrowUtil) OnHandleChange(s *Shape, patch map[string]Handle) {
	applyHandlePatch(s, patch)
	if _, bendMoved := patch[HandleBend]; !bendMoved {
		start := s.Handles[HandleStart]
		end := s.Handles[HandleEnd]
		bend := s.Handles[HandleBend]
		bend.Point = start.Point.Lerp(end.Point, 0.5)
		s.Handles[HandleBend] = bend
	}
	normalizeHandles(s)
	u.invalidate(s)
}

func (u *ArrowUtil) OnBindingChange(s *Shape, binding Binding, target geom.Bounds) {
	u.OnHandleChange(s, boundHandlePatch(s, binding, target))
}

func (u *ArrowUtil) Render(s *Shape) *RenderNode {
	return &RenderNode{
		Kind:     NodePath,
		ShapeID:  s.ID,
		Point:    s.Point,
		Rotation: s.Rotation,
		Path: linePath([]geom.Vec{
			s.Handles[HandleStart].Point,
			s.Handles[HandleBend].Point,
			s.Handles[HandleEnd].Point,
		}),
		Style: s.Style,
	}
}
