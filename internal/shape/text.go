package shape

import (
	"strings"

	"github.com/krapie/tldraw-custom/internal/geom"
)

const defaultFontSize = 16.0

// TextUtil is the behavior for text labels. Size is derived from the text
// content and font size; edits to either re-measure the box.
type TextUtil struct {
	baseUtil
}

func newTextUtil() *TextUtil {
	return &TextUtil{baseUtil{
		kind:                 KindText,
		canTransform:         true,
		canChangeAspectRatio: false,
		canStyleFill:         false,
	}}
}

func (u *TextUtil) Create(props *Shape) *Shape {
	s := u.baseUtil.Create(props)
	if s.FontSize == 0 {
		s.FontSize = defaultFontSize
	}
	if s.Size == (geom.Vec{}) {
		s.Size = measureText(s.Text, s.FontSize)
	}
	return s
}

func (u *TextUtil) Bounds(s *Shape) geom.Bounds {
	return u.cachedBounds(s, func(s *Shape) geom.Bounds {
		return geom.NewBounds(s.Point.X, s.Point.Y, s.Point.X+s.Size.X, s.Point.Y+s.Size.Y)
	})
}

// Transform fits the text box to the new bounds without changing the font:
// this is the multi-shape case, where relative layout wins over reflow.
func (u *TextUtil) Transform(s *Shape, bounds geom.Bounds, info TransformInfo) {
	s.Point = geom.Vec{X: bounds.MinX, Y: bounds.MinY}
	s.Size = geom.Vec{X: clampSize(bounds.Width, 1), Y: clampSize(bounds.Height, 1)}
	u.invalidate(s)
}

// TransformSingle scales the font with the drag and re-measures, so a lone
// text shape resizes by reflowing rather than stretching.
func (u *TextUtil) TransformSingle(s *Shape, bounds geom.Bounds, info TransformInfo) {
	initial := info.initial(s)
	initialBounds := geom.NewBounds(0, 0, initial.Size.X, initial.Size.Y)
	scale := 1.0
	if initialBounds.Width > 0 {
		scale = bounds.Width / initialBounds.Width
	}
	if scale < 0 {
		scale = -scale
	}
	fontSize := initial.FontSize
	if fontSize == 0 {
		fontSize = defaultFontSize
	}
	s.FontSize = clampSize(fontSize*scale, 1)
	s.Size = measureText(s.Text, s.FontSize)
	s.Point = geom.Vec{X: bounds.MinX, Y: bounds.MinY}
	u.invalidate(s)
}

// SetProperty re-measures the box after content edits.
func (u *TextUtil) SetProperty(s *Shape, key string, value any) error {
	if err := u.baseUtil.SetProperty(s, key, value); err != nil {
		return err
	}
	if key == "text" || key == "fontSize" {
		s.Size = measureText(s.Text, s.FontSize)
		u.invalidate(s)
	}
	return nil
}

func (u *TextUtil) Render(s *Shape) *RenderNode {
	return &RenderNode{
		Kind:     NodeText,
		ShapeID:  s.ID,
		Point:    s.Point,
		Rotation: s.Rotation,
		Text:     s.Text,
		FontSize: s.FontSize,
		Style:    s.Style,
	}
}

// measureText approximates the text extent from line count and the longest
// line. Real glyph metrics live in the frontend; the backend only needs a
// stable, monotonic box.
func measureText(text string, fontSize float64) geom.Vec {
	if fontSize <= 0 {
		fontSize = defaultFontSize
	}
	lines := strings.Split(text, "\n")
	longest := 1
	for _, line := range lines {
		if n := len([]rune(line)); n > longest {
			longest = n
		}
	}
	return geom.Vec{
		X: float64(longest) * fontSize * 0.6,
		Y: float64(len(lines)) * fontSize * 1.4,
	}
}
