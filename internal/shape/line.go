package shape

import "github.com/krapie/tldraw-custom/internal/geom"

// Handle IDs shared by the line-family shapes.
const (
	HandleStart = "start"
	HandleEnd   = "end"
	HandleBend  = "bend"
)

// LineUtil is the behavior for straight line segments between two handles.
type LineUtil struct {
	baseUtil
}

func newLineUtil() *LineUtil {
	return &LineUtil{baseUtil{
		kind:                 KindLine,
		canTransform:         true,
		canChangeAspectRatio: true,
		canStyleFill:         false,
	}}
}

func (u *LineUtil) Create(props *Shape) *Shape {
	s := u.baseUtil.Create(props)
	if s.Handles == nil {
		s.Handles = map[string]Handle{
			HandleStart: {ID: HandleStart, Index: 0, Point: geom.Vec{}},
			HandleEnd:   {ID: HandleEnd, Index: 1, Point: geom.Vec{X: 1, Y: 1}},
		}
	}
	return s
}

func (u *LineUtil) Bounds(s *Shape) geom.Bounds {
	return u.cachedBounds(s, func(s *Shape) geom.Bounds {
		return pointsBounds(s.Point, handlePoints(s))
	})
}

func (u *LineUtil) HitTest(s *Shape, point geom.Vec) bool {
	start := s.Point.Add(s.Handles[HandleStart].Point)
	end := s.Point.Add(s.Handles[HandleEnd].Point)
	return geom.DistanceToSegment(point, start, end) <= hitTolerance
}

func (u *LineUtil) Transform(s *Shape, bounds geom.Bounds, info TransformInfo) {
	transformHandles(&u.baseUtil, s, bounds, info)
}

func (u *LineUtil) OnHandleChange(s *Shape, patch map[string]Handle) {
	applyHandlePatch(s, patch)
	normalizeHandles(s)
	u.invalidate(s)
}

func (u *LineUtil) OnBindingChange(s *Shape, binding Binding, target geom.Bounds) {
	u.OnHandleChange(s, boundHandlePatch(s, binding, target))
}

func (u *LineUtil) Render(s *Shape) *RenderNode {
	return &RenderNode{
		Kind:     NodePath,
		ShapeID:  s.ID,
		Point:    s.Point,
		Rotation: s.Rotation,
		Path: linePath([]geom.Vec{
			s.Handles[HandleStart].Point,
			s.Handles[HandleEnd].Point,
		}),
		Style: s.Style,
	}
}

// transformHandles maps every handle from the pre-drag bounds into the new
// bounds. Shared by the line-family transforms.
func transformHandles(b *baseUtil, s *Shape, bounds geom.Bounds, info TransformInfo) {
	initial := info.initial(s)
	initialBounds := pointsBounds(geom.Vec{}, handlePoints(initial))
	for id, h := range s.Handles {
		ih, ok := initial.Handles[id]
		if !ok {
			ih = h
		}
		h.Point = scaleToBounds(ih.Point, initialBounds, bounds, info.ScaleX, info.ScaleY)
		s.Handles[id] = h
	}
	s.Point = geom.Vec{X: bounds.MinX, Y: bounds.MinY}
	b.invalidate(s)
}

// applyHandlePatch merges dragged handle positions into the shape.
func applyHandlePatch(s *Shape, patch map[string]Handle) {
	if s.Handles == nil {
		s.Handles = make(map[string]Handle, len(patch))
	}
	for id, h := range patch {
		if existing, ok := s.Handles[id]; ok {
			existing.Point = h.Point
			if h.BindingID != "" {
				existing.BindingID = h.BindingID
			}
			s.Handles[id] = existing
			continue
		}
		h.ID = id
		s.Handles[id] = h
	}
}

// normalizeHandles shifts the shape's point so the top-left of the handle
// extent sits at the local origin. Keeps handle coordinates small and the
// shape's point meaningful after a drag.
func normalizeHandles(s *Shape) {
	if len(s.Handles) == 0 {
		return
	}
	offset := geom.BoundsFromPoints(handlePoints(s))
	min := geom.Vec{X: offset.MinX, Y: offset.MinY}
	if min == (geom.Vec{}) {
		return
	}
	s.Point = s.Point.Add(min)
	for id, h := range s.Handles {
		h.Point = h.Point.Sub(min)
		s.Handles[id] = h
	}
}

// boundHandlePatch computes the new position for a bound handle: the
// binding's normalized anchor inside the target bounds, pulled back by the
// binding distance toward the shape.
func boundHandlePatch(s *Shape, binding Binding, target geom.Bounds) map[string]Handle {
	h, ok := s.Handles[binding.HandleID]
	if !ok {
		return nil
	}
	anchor := geom.Vec{
		X: target.MinX + binding.Point.X*target.Width,
		Y: target.MinY + binding.Point.Y*target.Height,
	}
	h.Point = anchor.Sub(s.Point)
	h.BindingID = binding.ID
	return map[string]Handle{binding.HandleID: h}
}
