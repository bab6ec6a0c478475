// Package shape implements the polymorphic behavior table of the whiteboard:
// one behavior object per shape kind, all satisfying the same contract for
// creation, mutation, spatial queries, and reaction hooks. Callers resolve a
// behavior through a Registry and pass the shape record in as explicit state.
package shape

import (
	"github.com/krapie/tldraw-custom/internal/geom"
)

// Kind discriminates the closed set of shape variants.
type Kind string

const (
	KindCircle    Kind = "circle"
	KindRectangle Kind = "rectangle"
	KindEllipse   Kind = "ellipse"
	KindLine      Kind = "line"
	KindRay       Kind = "ray"
	KindPolyline  Kind = "polyline"
	KindDraw      Kind = "draw"
	KindArrow     Kind = "arrow"
	KindGroup     Kind = "group"
	KindDot       Kind = "dot"
	KindText      Kind = "text"
)

// AllKinds enumerates every registered shape kind. The registry test checks
// this list against the registered behaviors so a new kind cannot be added
// without a behavior.
var AllKinds = []Kind{
	KindCircle,
	KindRectangle,
	KindEllipse,
	KindLine,
	KindRay,
	KindPolyline,
	KindDraw,
	KindArrow,
	KindGroup,
	KindDot,
	KindText,
}

// Style holds the visual attributes shared by every shape kind.
type Style struct {
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
	Opacity     float64 `json:"opacity"`
	IsFilled    bool    `json:"isFilled"`
}

// DefaultStyle is applied by Create when the caller supplies none.
var DefaultStyle = Style{
	Fill:        "#ffffff",
	Stroke:      "#1d1d1d",
	StrokeWidth: 2,
	Opacity:     1,
}

// StylePatch is a partial style; nil fields are left untouched by ApplyStyles.
type StylePatch struct {
	Fill        *string  `json:"fill,omitempty"`
	Stroke      *string  `json:"stroke,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`
	Opacity     *float64 `json:"opacity,omitempty"`
	IsFilled    *bool    `json:"isFilled,omitempty"`
}

// Handle is a draggable control point belonging to a shape (a line endpoint,
// an arrow bend). Points are relative to the shape's Point.
type Handle struct {
	ID        string   `json:"id"`
	Index     int      `json:"index"`
	Point     geom.Vec `json:"point"`
	BindingID string   `json:"bindingId,omitempty"`
}

// Binding ties a shape's handle to another shape. Point is the normalized
// anchor inside the target's bounds ((0.5, 0.5) is the center).
type Binding struct {
	ID       string   `json:"id"`
	FromID   string   `json:"fromId"`
	ToID     string   `json:"toId"`
	HandleID string   `json:"handleId"`
	Point    geom.Vec `json:"point"`
	Distance float64  `json:"distance"`
}

// Shape is the mutable record for a single shape on a page. The document
// store owns the lifecycle; behaviors mutate it in place.
type Shape struct {
	ID         string   `json:"id"`
	Kind       Kind     `json:"kind"`
	Name       string   `json:"name"`
	Parent     string   `json:"parent"`
	ChildIndex float64  `json:"childIndex"`
	Point      geom.Vec `json:"point"`
	Rotation   float64  `json:"rotation"`

	IsLocked            bool `json:"isLocked,omitempty"`
	IsHidden            bool `json:"isHidden,omitempty"`
	IsAspectRatioLocked bool `json:"isAspectRatioLocked,omitempty"`
	IsGenerated         bool `json:"isGenerated,omitempty"`

	Style Style `json:"style"`

	// Kind-specific geometry.
	Radius   float64           `json:"radius,omitempty"`   // circle, dot
	Size     geom.Vec          `json:"size"`               // rectangle, ellipse, group, text
	Points   []geom.Vec        `json:"points,omitempty"`   // polyline, draw
	Handles  map[string]Handle `json:"handles,omitempty"`  // line, ray, arrow
	Children []string          `json:"children,omitempty"` // group
	Text     string            `json:"text,omitempty"`     // text
	FontSize float64           `json:"fontSize,omitempty"` // text
}

// Clone returns a deep copy of the shape.
func (s *Shape) Clone() *Shape {
	c := *s
	if s.Points != nil {
		c.Points = make([]geom.Vec, len(s.Points))
		copy(c.Points, s.Points)
	}
	if s.Handles != nil {
		c.Handles = make(map[string]Handle, len(s.Handles))
		for k, v := range s.Handles {
			c.Handles[k] = v
		}
	}
	if s.Children != nil {
		c.Children = make([]string, len(s.Children))
		copy(c.Children, s.Children)
	}
	return &c
}

// TransformHandleType identifies which resize control started a transform.
type TransformHandleType string

const (
	TransformTopLeftCorner     TransformHandleType = "top_left_corner"
	TransformTopRightCorner    TransformHandleType = "top_right_corner"
	TransformBottomRightCorner TransformHandleType = "bottom_right_corner"
	TransformBottomLeftCorner  TransformHandleType = "bottom_left_corner"
	TransformTopEdge           TransformHandleType = "top_edge"
	TransformRightEdge         TransformHandleType = "right_edge"
	TransformBottomEdge        TransformHandleType = "bottom_edge"
	TransformLeftEdge          TransformHandleType = "left_edge"
)

// TransformInfo carries the drag context for Transform/TransformSingle:
// the handle being dragged, the shape's pre-drag snapshot, the per-axis
// scale relative to the pre-drag bounds, and the transform origin.
type TransformInfo struct {
	Type            TransformHandleType `json:"type"`
	Initial         *Shape              `json:"initialShape,omitempty"`
	ScaleX          float64             `json:"scaleX"`
	ScaleY          float64             `json:"scaleY"`
	TransformOrigin geom.Vec            `json:"transformOrigin"`
}

// initial returns the pre-drag snapshot, falling back to the live shape.
func (info TransformInfo) initial(s *Shape) *Shape {
	if info.Initial != nil {
		return info.Initial
	}
	return s
}
