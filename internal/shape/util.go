package shape

import (
	"fmt"
	"sync"

	"github.com/krapie/tldraw-custom/internal/geom"
	"github.com/krapie/tldraw-custom/internal/typeid"
)

// Util is the behavior contract every shape kind satisfies. Behavior objects
// are shared across all shapes of their kind and hold no per-shape state
// beyond the registry's bounds cache; the shape record is always passed in.
type Util interface {
	Kind() Kind

	// Capability flags. Variants disable editing features by overriding
	// these, not the operations themselves.
	CanTransform() bool
	CanChangeAspectRatio() bool
	CanStyleFill() bool

	// Create builds a new shape with a fresh ID and kind defaults, then
	// overlays the caller's partial. The partial is never mutated.
	Create(props *Shape) *Shape

	// Mutations. All mutate the shape in place and invalidate its cached
	// bounds when geometry changes.
	TranslateBy(s *Shape, delta geom.Vec)
	TranslateTo(s *Shape, point geom.Vec)
	Transform(s *Shape, bounds geom.Bounds, info TransformInfo)
	TransformSingle(s *Shape, bounds geom.Bounds, info TransformInfo)
	SetProperty(s *Shape, key string, value any) error
	ApplyStyles(s *Shape, patch StylePatch)

	// Reaction hooks.
	OnChildrenChange(s *Shape, children []*Shape)
	OnBindingChange(s *Shape, binding Binding, target geom.Bounds)
	OnHandleChange(s *Shape, patch map[string]Handle)

	// Queries. Read-only with respect to the shape.
	Render(s *Shape) *RenderNode
	Bounds(s *Shape) geom.Bounds
	RotatedBounds(s *Shape) geom.Bounds
	Center(s *Shape) geom.Vec
	HitTest(s *Shape, point geom.Vec) bool
	HitTestBounds(s *Shape, query geom.Bounds) bool
}

// hitTolerance is the pick distance, in canvas units, for stroke-only shapes
// (lines, polylines, freehand strokes).
const hitTolerance = 4.0

// BoundsCache maps a shape ID to its last computed un-rotated bounds.
// Entries are invalidated by every geometry-affecting mutation; the mutex is
// needed because the collab hub serves rooms from separate goroutines.
type BoundsCache struct {
	mu      sync.RWMutex
	entries map[string]geom.Bounds
}

func NewBoundsCache() *BoundsCache {
	return &BoundsCache{entries: make(map[string]geom.Bounds)}
}

func (c *BoundsCache) Get(id string) (geom.Bounds, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.entries[id]
	return b, ok
}

func (c *BoundsCache) Put(id string, b geom.Bounds) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = b
}

func (c *BoundsCache) Invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// Clear drops every entry. Used when a whole document is replaced and the
// old entries would otherwise survive under unchanged shape IDs.
func (c *BoundsCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]geom.Bounds)
}

// baseUtil is the default behavior every concrete util embeds. Its derived
// operations (RotatedBounds, Center, the hit tests) dispatch Bounds through
// the self reference so overrides participate.
type baseUtil struct {
	kind Kind
	self Util
	reg  *Registry

	canTransform         bool
	canChangeAspectRatio bool
	canStyleFill         bool
}

// bind wires the outer util and its registry. Called once at registration.
func (b *baseUtil) bind(self Util, reg *Registry) {
	b.self = self
	b.reg = reg
}

func (b *baseUtil) Kind() Kind                 { return b.kind }
func (b *baseUtil) CanTransform() bool         { return b.canTransform }
func (b *baseUtil) CanChangeAspectRatio() bool { return b.canChangeAspectRatio }
func (b *baseUtil) CanStyleFill() bool         { return b.canStyleFill }

func (b *baseUtil) Create(props *Shape) *Shape {
	s := &Shape{
		ID:         typeid.NewShapeID(),
		Kind:       b.kind,
		Name:       string(b.kind),
		ChildIndex: 1,
		Style:      DefaultStyle,
	}
	if props != nil {
		overlay(s, props)
	}
	return s
}

// overlay copies the non-zero fields of the partial onto s, deep-copying
// slices and maps so the caller's partial stays untouched.
func overlay(s, props *Shape) {
	if props.ID != "" {
		s.ID = props.ID
	}
	if props.Name != "" {
		s.Name = props.Name
	}
	if props.Parent != "" {
		s.Parent = props.Parent
	}
	if props.ChildIndex != 0 {
		s.ChildIndex = props.ChildIndex
	}
	if props.Point != (geom.Vec{}) {
		s.Point = props.Point
	}
	if props.Rotation != 0 {
		s.Rotation = props.Rotation
	}
	if props.IsLocked {
		s.IsLocked = true
	}
	if props.IsHidden {
		s.IsHidden = true
	}
	if props.IsAspectRatioLocked {
		s.IsAspectRatioLocked = true
	}
	if props.IsGenerated {
		s.IsGenerated = true
	}
	if props.Style != (Style{}) {
		s.Style = props.Style
	}
	if props.Radius != 0 {
		s.Radius = props.Radius
	}
	if props.Size != (geom.Vec{}) {
		s.Size = props.Size
	}
	if props.Points != nil {
		s.Points = make([]geom.Vec, len(props.Points))
		copy(s.Points, props.Points)
	}
	if props.Handles != nil {
		s.Handles = make(map[string]Handle, len(props.Handles))
		for k, v := range props.Handles {
			s.Handles[k] = v
		}
	}
	if props.Children != nil {
		s.Children = make([]string, len(props.Children))
		copy(s.Children, props.Children)
	}
	if props.Text != "" {
		s.Text = props.Text
	}
	if props.FontSize != 0 {
		s.FontSize = props.FontSize
	}
}

func (b *baseUtil) invalidate(s *Shape) {
	b.reg.cache.Invalidate(s.ID)
}

// cachedBounds consults the cache before computing, and stores the result.
func (b *baseUtil) cachedBounds(s *Shape, compute func(*Shape) geom.Bounds) geom.Bounds {
	if bounds, ok := b.reg.cache.Get(s.ID); ok {
		return bounds
	}
	bounds := compute(s)
	b.reg.cache.Put(s.ID, bounds)
	return bounds
}

func (b *baseUtil) TranslateBy(s *Shape, delta geom.Vec) {
	s.Point = s.Point.Add(delta)
	b.invalidate(s)
}

func (b *baseUtil) TranslateTo(s *Shape, point geom.Vec) {
	s.Point = point
	b.invalidate(s)
}

// Transform's default only repositions the shape to the new bounds' top-left
// corner. Real variants override to scale their geometry.
func (b *baseUtil) Transform(s *Shape, bounds geom.Bounds, info TransformInfo) {
	s.Point = geom.Vec{X: bounds.MinX, Y: bounds.MinY}
	b.invalidate(s)
}

func (b *baseUtil) TransformSingle(s *Shape, bounds geom.Bounds, info TransformInfo) {
	b.self.Transform(s, bounds, info)
}

func (b *baseUtil) ApplyStyles(s *Shape, patch StylePatch) {
	if patch.Fill != nil {
		s.Style.Fill = *patch.Fill
	}
	if patch.Stroke != nil {
		s.Style.Stroke = *patch.Stroke
	}
	if patch.StrokeWidth != nil {
		s.Style.StrokeWidth = *patch.StrokeWidth
	}
	if patch.Opacity != nil {
		s.Style.Opacity = *patch.Opacity
	}
	if patch.IsFilled != nil {
		s.Style.IsFilled = *patch.IsFilled
	}
}

func (b *baseUtil) OnChildrenChange(s *Shape, children []*Shape) {}

func (b *baseUtil) OnBindingChange(s *Shape, binding Binding, target geom.Bounds) {}

func (b *baseUtil) OnHandleChange(s *Shape, patch map[string]Handle) {}

// Render's default is a unit-circle placeholder; every real variant
// overrides it.
func (b *baseUtil) Render(s *Shape) *RenderNode {
	return &RenderNode{
		Kind:    NodeCircle,
		ShapeID: s.ID,
		Point:   s.Point,
		Radius:  1,
		Style:   s.Style,
	}
}

// Bounds' default is a degenerate 1x1 box at the shape's point.
func (b *baseUtil) Bounds(s *Shape) geom.Bounds {
	return b.cachedBounds(s, func(s *Shape) geom.Bounds {
		return geom.NewBounds(s.Point.X, s.Point.Y, s.Point.X+1, s.Point.Y+1)
	})
}

func (b *baseUtil) RotatedBounds(s *Shape) geom.Bounds {
	bounds := b.self.Bounds(s)
	if s.Rotation == 0 {
		return bounds
	}
	corners := geom.RotatedCorners(bounds, s.Rotation)
	return geom.BoundsFromPoints(corners[:])
}

func (b *baseUtil) Center(s *Shape) geom.Vec {
	return b.self.Bounds(s).Center()
}

func (b *baseUtil) HitTest(s *Shape, point geom.Vec) bool {
	return geom.PointInBounds(point, b.self.Bounds(s))
}

// HitTestBounds reports whether the query box contains the shape's rotated
// corners or collides with the rotated polygon they form. Used by marquee
// selection.
func (b *baseUtil) HitTestBounds(s *Shape, query geom.Bounds) bool {
	corners := geom.RotatedCorners(b.self.Bounds(s), s.Rotation)
	return geom.BoundsContainPolygon(query, corners[:]) ||
		geom.BoundsCollidePolygon(query, corners[:])
}

// SetProperty assigns a single field by key. The key must belong to the
// shape's kind; anything else is rejected before the shape is touched.
func (b *baseUtil) SetProperty(s *Shape, key string, value any) error {
	if !propertyAllowed(s.Kind, key) {
		return fmt.Errorf("shape: property %q is not valid for kind %q", key, s.Kind)
	}

	switch key {
	case "name":
		v, ok := value.(string)
		if !ok {
			return propTypeError(key, "string", value)
		}
		s.Name = v
	case "parent":
		v, ok := value.(string)
		if !ok {
			return propTypeError(key, "string", value)
		}
		s.Parent = v
	case "childIndex":
		v, err := toFloat(value)
		if err != nil {
			return propTypeError(key, "number", value)
		}
		s.ChildIndex = v
	case "rotation":
		v, err := toFloat(value)
		if err != nil {
			return propTypeError(key, "number", value)
		}
		s.Rotation = v
	case "point":
		v, ok := value.(geom.Vec)
		if !ok {
			return propTypeError(key, "geom.Vec", value)
		}
		s.Point = v
		b.invalidate(s)
	case "isLocked", "isHidden", "isAspectRatioLocked", "isGenerated":
		v, ok := value.(bool)
		if !ok {
			return propTypeError(key, "bool", value)
		}
		switch key {
		case "isLocked":
			s.IsLocked = v
		case "isHidden":
			s.IsHidden = v
		case "isAspectRatioLocked":
			s.IsAspectRatioLocked = v
		case "isGenerated":
			s.IsGenerated = v
		}
	case "radius":
		v, err := toFloat(value)
		if err != nil {
			return propTypeError(key, "number", value)
		}
		s.Radius = v
		b.invalidate(s)
	case "size":
		v, ok := value.(geom.Vec)
		if !ok {
			return propTypeError(key, "geom.Vec", value)
		}
		s.Size = v
		b.invalidate(s)
	case "points":
		v, ok := value.([]geom.Vec)
		if !ok {
			return propTypeError(key, "[]geom.Vec", value)
		}
		s.Points = make([]geom.Vec, len(v))
		copy(s.Points, v)
		b.invalidate(s)
	case "text":
		v, ok := value.(string)
		if !ok {
			return propTypeError(key, "string", value)
		}
		s.Text = v
		b.invalidate(s)
	case "fontSize":
		v, err := toFloat(value)
		if err != nil {
			return propTypeError(key, "number", value)
		}
		s.FontSize = v
		b.invalidate(s)
	default:
		return fmt.Errorf("shape: unknown property %q", key)
	}
	return nil
}

func propTypeError(key, want string, got any) error {
	return fmt.Errorf("shape: property %q requires a %s, got %T", key, want, got)
}

// toFloat accepts the numeric types that arrive from JSON decoding.
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}

// commonProperties are settable on every kind.
var commonProperties = map[string]bool{
	"name":                true,
	"parent":              true,
	"childIndex":          true,
	"rotation":            true,
	"point":               true,
	"isLocked":            true,
	"isHidden":            true,
	"isAspectRatioLocked": true,
	"isGenerated":         true,
}

// kindProperties lists the kind-specific fields each variant exposes.
var kindProperties = map[Kind][]string{
	KindCircle:    {"radius"},
	KindRectangle: {"size"},
	KindEllipse:   {"size"},
	KindLine:      {},
	KindRay:       {},
	KindPolyline:  {"points"},
	KindDraw:      {"points"},
	KindArrow:     {},
	KindGroup:     {"size"},
	KindDot:       {"radius"},
	KindText:      {"size", "text", "fontSize"},
}

func propertyAllowed(kind Kind, key string) bool {
	if commonProperties[key] {
		return true
	}
	for _, k := range kindProperties[kind] {
		if k == key {
			return true
		}
	}
	return false
}
