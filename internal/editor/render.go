package editor

import (
	"encoding/json"
	"sort"

	"github.com/krapie/tldraw-custom/internal/geom"
	"github.com/krapie/tldraw-custom/internal/shape"
)

// DrawCommand is a single drawing operation for the frontend to execute on a
// Canvas2D context.
type DrawCommand struct {
	Op          string              `json:"op"` // "path", "circle", "ellipse", "text"
	ShapeID     string              `json:"shapeId,omitempty"`
	Transform   []float64           `json:"transform,omitempty"` // [a, b, c, d, e, f] affine matrix
	Path        []shape.PathCommand `json:"path,omitempty"`
	Radius      float64             `json:"radius,omitempty"`
	RadiusX     float64             `json:"radiusX,omitempty"`
	RadiusY     float64             `json:"radiusY,omitempty"`
	Text        string              `json:"text,omitempty"`
	FontSize    float64             `json:"fontSize,omitempty"`
	Fill        string              `json:"fill,omitempty"`
	Stroke      string              `json:"stroke,omitempty"`
	StrokeWidth float64             `json:"strokeWidth,omitempty"`
	Opacity     float64             `json:"opacity,omitempty"`
	IsFilled    bool                `json:"isFilled,omitempty"`
}

// Render compiles the current page to draw commands in painter's order (back
// to front) and returns them as JSON.
func (e *Editor) Render() string {
	p, err := e.page()
	if err != nil {
		return "[]"
	}

	shapes := make([]*shape.Shape, 0, len(p.Shapes))
	for _, s := range p.Shapes {
		if s.IsHidden || s.Kind == shape.KindGroup {
			continue
		}
		shapes = append(shapes, s)
	}
	sort.Slice(shapes, func(i, j int) bool {
		return shapes[i].ChildIndex < shapes[j].ChildIndex
	})

	commands := make([]DrawCommand, 0, len(shapes))
	for _, s := range shapes {
		node := e.reg.UtilFor(s).Render(s)
		if node == nil {
			continue
		}
		if cmd, ok := compileNode(e.reg.UtilFor(s).Bounds(s), node); ok {
			commands = append(commands, cmd)
		}
	}

	data, err := json.Marshal(commands)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// compileNode turns a render node into a draw command. The transform places
// the node and applies the shape's rotation about its bounds center.
func compileNode(bounds geom.Bounds, node *shape.RenderNode) (DrawCommand, bool) {
	center := bounds.Center().Sub(node.Point)
	m := geom.AboutCenter(node.Point, node.Rotation, center)

	cmd := DrawCommand{
		ShapeID:     node.ShapeID,
		Transform:   m.ToSlice(),
		Fill:        node.Style.Fill,
		Stroke:      node.Style.Stroke,
		StrokeWidth: node.Style.StrokeWidth,
		Opacity:     node.Style.Opacity,
		IsFilled:    node.Style.IsFilled,
	}

	switch node.Kind {
	case shape.NodePath:
		if len(node.Path) == 0 {
			return cmd, false
		}
		cmd.Op = "path"
		cmd.Path = node.Path
	case shape.NodeCircle:
		cmd.Op = "circle"
		cmd.Radius = node.Radius
	case shape.NodeEllipse:
		cmd.Op = "ellipse"
		cmd.RadiusX = node.RadiusX
		cmd.RadiusY = node.RadiusY
	case shape.NodeText:
		cmd.Op = "text"
		cmd.Text = node.Text
		cmd.FontSize = node.FontSize
	default:
		return cmd, false
	}
	return cmd, true
}
