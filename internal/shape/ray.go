package shape

import "github.com/krapie/tldraw-custom/internal/geom"

// rayReach is how far past the end handle a ray extends for hit testing.
const rayReach = 10000.0

// RayUtil is the behavior for rays: anchored at the start handle, passing
// through the end handle, conceptually unbounded past it.
type RayUtil struct {
	baseUtil
}

func newRayUtil() *RayUtil {
	return &RayUtil{baseUtil{
		kind:                 KindRay,
		canTransform:         true,
		canChangeAspectRatio: true,
		canStyleFill:         false,
	}}
}

func (u *RayUtil) Create(props *Shape) *Shape {
	s := u.baseUtil.Create(props)
	if s.Handles == nil {
		s.Handles = map[string]Handle{
			HandleStart: {ID: HandleStart, Index: 0, Point: geom.Vec{}},
			HandleEnd:   {ID: HandleEnd, Index: 1, Point: geom.Vec{X: 1, Y: 1}},
		}
	}
	return s
}

// Bounds covers only the editable segment between the handles; the infinite
// tail is a rendering concern.
func (u *RayUtil) Bounds(s *Shape) geom.Bounds {
	return u.cachedBounds(s, func(s *Shape) geom.Bounds {
		return pointsBounds(s.Point, handlePoints(s))
	})
}

func (u *RayUtil) HitTest(s *Shape, point geom.Vec) bool {
	start := s.Point.Add(s.Handles[HandleStart].Point)
	end := s.Point.Add(s.Handles[HandleEnd].Point)
	dir := end.Sub(start)
	if dir.Len() == 0 {
		return point.Dist(start) <= hitTolerance
	}
	far := start.Add(dir.MulScalar(rayReach / dir.Len()))
	return geom.DistanceToSegment(point, start, far) <= hitTolerance
}

func (u *RayUtil) Transform(s *Shape, bounds geom.Bounds, info TransformInfo) {
	transformHandles(&u.baseUtil, s, bounds, info)
}

func (u *RayUtil) OnHandleChange(s *Shape, patch map[string]Handle) {
	applyHandlePatch(s, patch)
	normalizeHandles(s)
	u.invalidate(s)
}

func (u *RayUtil) OnBindingChange(s *Shape, binding Binding, target geom.Bounds) {
	u.OnHandleChange(s, boundHandlePatch(s, binding, target))
}

func (u *RayUtil) Render(s *Shape) *RenderNode {
	start := s.Handles[HandleStart].Point
	end := s.Handles[HandleEnd].Point
	dir := end.Sub(start)
	if l := dir.Len(); l > 0 {
		end = start.Add(dir.MulScalar(rayReach / l))
	}
	return &RenderNode{
		Kind:     NodePath,
		ShapeID:  s.ID,
		Point:    s.Point,
		Rotation: s.Rotation,
		Path:     linePath([]geom.Vec{start, end}),
		Style:    s.Style,
	}
}
