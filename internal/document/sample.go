package document

import (
	"time"

	"github.com/krapie/tldraw-custom/internal/geom"
	"github.com/krapie/tldraw-custom/internal/shape"
	"github.com/krapie/tldraw-custom/internal/typeid"
)

// NewSampleDocument builds a starter board with one of each common shape and
// an arrow bound to the rectangle, so a fresh board is not a blank canvas.
func NewSampleDocument(boardID string) *BoardDocument {
	now := time.Now().UTC().Format(time.RFC3339)

	pageID := typeid.NewPageID()
	reg := shape.NewRegistry()

	rect := reg.Create(shape.KindRectangle, &shape.Shape{
		Parent: pageID,
		Point:  geom.Vec{X: 200, Y: 200},
		Size:   geom.Vec{X: 200, Y: 150},
		Style:  shape.Style{Fill: "#e94560", Stroke: "#1d1d1d", StrokeWidth: 2, Opacity: 1, IsFilled: true},
	})
	circle := reg.Create(shape.KindCircle, &shape.Shape{
		Parent: pageID,
		Point:  geom.Vec{X: 560, Y: 280},
		Radius: 80,
		Style:  shape.Style{Fill: "#0f3460", Stroke: "#16213e", StrokeWidth: 2, Opacity: 1, IsFilled: true},
	})
	label := reg.Create(shape.KindText, &shape.Shape{
		Parent:   pageID,
		Point:    geom.Vec{X: 220, Y: 120},
		Text:     "Welcome",
		FontSize: 28,
	})
	arrow := reg.Create(shape.KindArrow, &shape.Shape{
		Parent: pageID,
		Point:  geom.Vec{X: 420, Y: 275},
		Handles: map[string]shape.Handle{
			shape.HandleStart: {ID: shape.HandleStart, Index: 0, Point: geom.Vec{}},
			shape.HandleEnd:   {ID: shape.HandleEnd, Index: 1, Point: geom.Vec{X: 120, Y: 60}},
			shape.HandleBend:  {ID: shape.HandleBend, Index: 2, Point: geom.Vec{X: 60, Y: 30}},
		},
	})
	rect.ChildIndex = 1
	circle.ChildIndex = 2
	label.ChildIndex = 3
	arrow.ChildIndex = 4

	bindingID := typeid.NewBindingID()
	binding := &shape.Binding{
		ID:       bindingID,
		FromID:   arrow.ID,
		ToID:     rect.ID,
		HandleID: shape.HandleStart,
		Point:    geom.Vec{X: 1, Y: 0.5},
	}
	reg.UtilFor(arrow).OnBindingChange(arrow, *binding, reg.UtilFor(rect).Bounds(rect))

	return &BoardDocument{
		Board: Board{
			ID:        boardID,
			Name:      "Untitled",
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
			Pages:     []string{pageID},
		},
		Pages: map[string]*Page{
			pageID: {
				ID:   pageID,
				Name: "Page 1",
				Shapes: map[string]*shape.Shape{
					rect.ID:   rect,
					circle.ID: circle,
					label.ID:  label,
					arrow.ID:  arrow,
				},
				Bindings: map[string]*shape.Binding{
					bindingID: binding,
				},
			},
		},
		CurrentPage: pageID,
	}
}
