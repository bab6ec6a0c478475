package export

import (
	"strings"
	"testing"

	"github.com/krapie/tldraw-custom/internal/document"
	"github.com/krapie/tldraw-custom/internal/geom"
	"github.com/krapie/tldraw-custom/internal/shape"
)

func TestPageToSVG(t *testing.T) {
	reg := shape.NewRegistry()
	page := &document.Page{
		ID:       "page_1",
		Name:     "Page 1",
		Shapes:   map[string]*shape.Shape{},
		Bindings: map[string]*shape.Binding{},
	}

	rect := reg.Create(shape.KindRectangle, &shape.Shape{
		Point: geom.Vec{X: 10, Y: 10}, Size: geom.Vec{X: 100, Y: 50},
	})
	rect.ChildIndex = 1
	circle := reg.Create(shape.KindCircle, &shape.Shape{
		Point: geom.Vec{X: 200, Y: 10}, Radius: 25,
	})
	circle.ChildIndex = 2
	label := reg.Create(shape.KindText, &shape.Shape{
		Point: geom.Vec{X: 10, Y: 100}, Text: "a < b",
	})
	label.ChildIndex = 3
	page.Shapes[rect.ID] = rect
	page.Shapes[circle.ID] = circle
	page.Shapes[label.ID] = label

	svg := PageToSVG(reg, page)

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Fatalf("not an svg document: %.60s", svg)
	}
	if !strings.Contains(svg, "<path") {
		t.Error("rectangle path missing")
	}
	if !strings.Contains(svg, `<circle`) || !strings.Contains(svg, `r="25"`) {
		t.Error("circle missing")
	}
	if !strings.Contains(svg, "a &lt; b") {
		t.Error("text not escaped")
	}
	// Painter's order: the rectangle renders before the circle.
	if strings.Index(svg, "<path") > strings.Index(svg, "<circle") {
		t.Error("shapes not in stacking order")
	}
}

func TestPageToSVGSkipsHidden(t *testing.T) {
	reg := shape.NewRegistry()
	page := &document.Page{
		ID:     "page_1",
		Shapes: map[string]*shape.Shape{},
	}
	s := reg.Create(shape.KindCircle, &shape.Shape{Radius: 10})
	s.IsHidden = true
	page.Shapes[s.ID] = s

	svg := PageToSVG(reg, page)
	if strings.Contains(svg, "<circle") {
		t.Error("hidden shape exported")
	}
}

func TestPathData(t *testing.T) {
	d := pathData([]shape.PathCommand{
		{"M", 0.0, 0.0},
		{"L", 10.0, 0.0},
		{"Z"},
	})
	if d != "M0 0 L10 0 Z" {
		t.Errorf("pathData = %q", d)
	}
}
