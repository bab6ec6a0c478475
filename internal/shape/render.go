package shape

import "github.com/krapie/tldraw-custom/internal/geom"

// NodeKind discriminates renderable node types.
type NodeKind string

const (
	NodePath    NodeKind = "path"
	NodeCircle  NodeKind = "circle"
	NodeEllipse NodeKind = "ellipse"
	NodeText    NodeKind = "text"
	NodeGroup   NodeKind = "group"
)

// PathCommand represents a single path segment.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["Z"].
type PathCommand []any

// RenderNode is the renderable produced by a behavior's Render. Its
// interpretation belongs to the consumer (SVG exporter, canvas frontend);
// the shape core only guarantees the structure.
type RenderNode struct {
	Kind     NodeKind      `json:"kind"`
	ShapeID  string        `json:"shapeId"`
	Point    geom.Vec      `json:"point"`
	Rotation float64       `json:"rotation,omitempty"`
	Radius   float64       `json:"radius,omitempty"`
	RadiusX  float64       `json:"radiusX,omitempty"`
	RadiusY  float64       `json:"radiusY,omitempty"`
	Path     []PathCommand `json:"path,omitempty"`
	Text     string        `json:"text,omitempty"`
	FontSize float64       `json:"fontSize,omitempty"`
	Style    Style         `json:"style"`
}

// linePath builds a polyline path through the given points.
func linePath(points []geom.Vec) []PathCommand {
	if len(points) == 0 {
		return nil
	}
	path := make([]PathCommand, 0, len(points))
	path = append(path, PathCommand{"M", points[0].X, points[0].Y})
	for _, p := range points[1:] {
		path = append(path, PathCommand{"L", p.X, p.Y})
	}
	return path
}

// rectPath builds a closed rectangle path of the given size at the origin.
func rectPath(size geom.Vec) []PathCommand {
	return []PathCommand{
		{"M", 0.0, 0.0},
		{"L", size.X, 0.0},
		{"L", size.X, size.Y},
		{"L", 0.0, size.Y},
		{"Z"},
	}
}
