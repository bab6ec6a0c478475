// Package export renders board pages to SVG.
package export

import (
	"fmt"
	"html"
	"math"
	"sort"
	"strings"

	"github.com/krapie/tldraw-custom/internal/document"
	"github.com/krapie/tldraw-custom/internal/geom"
	"github.com/krapie/tldraw-custom/internal/shape"
)

const exportPadding = 16.0

// PageToSVG renders every visible shape of a page to an SVG document sized to
// the content bounds plus padding.
func PageToSVG(reg *shape.Registry, p *document.Page) string {
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

	var content geom.Bounds
	first := true
	for _, s := range shapes {
		b := reg.UtilFor(s).RotatedBounds(s)
		if first {
			content = b
			first = false
		} else {
			content = content.Union(b)
		}
	}
	content = content.ExpandBy(exportPadding)

	var sb strings.Builder
	fmt.Fprintf(&sb,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g" width="%g" height="%g">`,
		content.MinX, content.MinY, content.Width, content.Height,
		content.Width, content.Height)
	sb.WriteByte('\n')

	for _, s := range shapes {
		node := reg.UtilFor(s).Render(s)
		if node == nil {
			continue
		}
		writeNode(&sb, reg.UtilFor(s).Bounds(s), node)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func writeNode(sb *strings.Builder, bounds geom.Bounds, node *shape.RenderNode) {
	transform := fmt.Sprintf(`translate(%g %g)`, node.Point.X, node.Point.Y)
	if node.Rotation != 0 {
		center := bounds.Center().Sub(node.Point)
		transform += fmt.Sprintf(` rotate(%g %g %g)`, node.Rotation*180/math.Pi, center.X, center.Y)
	}

	style := node.Style
	fill := "none"
	if style.IsFilled {
		fill = style.Fill
	}
	paint := fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="%g" opacity="%g"`,
		fill, style.Stroke, style.StrokeWidth, style.Opacity)

	switch node.Kind {
	case shape.NodePath:
		d := pathData(node.Path)
		if d == "" {
			return
		}
		fmt.Fprintf(sb, `  <path transform="%s" d="%s" %s stroke-linecap="round" stroke-linejoin="round"/>`, transform, d, paint)
	case shape.NodeCircle:
		fmt.Fprintf(sb, `  <circle transform="%s" r="%g" %s/>`, transform, node.Radius, paint)
	case shape.NodeEllipse:
		fmt.Fprintf(sb, `  <ellipse transform="%s" rx="%g" ry="%g" %s/>`, transform, node.RadiusX, node.RadiusY, paint)
	case shape.NodeText:
		fmt.Fprintf(sb, `  <text transform="%s" font-size="%g" fill="%s" opacity="%g" dominant-baseline="hanging">%s</text>`,
			transform, node.FontSize, style.Stroke, style.Opacity, html.EscapeString(node.Text))
	default:
		return
	}
	sb.WriteByte('\n')
}

// pathData converts canvas-style path commands to an SVG path string.
func pathData(path []shape.PathCommand) string {
	var sb strings.Builder
	for _, cmd := range path {
		if len(cmd) == 0 {
			continue
		}
		op, ok := cmd[0].(string)
		if !ok {
			continue
		}
		switch op {
		case "M", "L":
			if len(cmd) < 3 {
				continue
			}
			x, xok := toFloat(cmd[1])
			y, yok := toFloat(cmd[2])
			if !xok || !yok {
				continue
			}
			fmt.Fprintf(&sb, "%s%g %g ", op, x, y)
		case "Z":
			sb.WriteString("Z ")
		}
	}
	return strings.TrimSpace(sb.String())
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
