package editor

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/krapie/tldraw-custom/internal/document"
	"github.com/krapie/tldraw-custom/internal/geom"
	"github.com/krapie/tldraw-custom/internal/shape"
)

// Editor owns a board document and drives it through the shape behavior
// registry. It is the embeddable core behind the wasm build: commands come in
// as JSON strings, queries go out the same way, so the host only ever moves
// strings across the boundary.
type Editor struct {
	doc    *document.BoardDocument
	reg    *shape.Registry
	pageID string

	// Selection state (backend owns this)
	selection []string
}

// NewEditor creates an editor with no document loaded.
func NewEditor() *Editor {
	return &Editor{
		reg: shape.NewRegistry(),
	}
}

// --- Commands (frontend → backend) ---

// LoadDocument loads a document from JSON.
func (e *Editor) LoadDocument(jsonData string) error {
	var doc document.BoardDocument
	if err := json.Unmarshal([]byte(jsonData), &doc); err != nil {
		return err
	}

	e.doc = &doc
	e.pageID = doc.CurrentPage
	if e.pageID == "" && len(doc.Board.Pages) > 0 {
		e.pageID = doc.Board.Pages[0]
	}
	e.selection = nil
	// The incoming document can reuse shape IDs with new geometry.
	e.reg.InvalidateAll()
	return nil
}

// LoadSampleDocument loads the built-in sample board.
func (e *Editor) LoadSampleDocument(boardID string) {
	e.doc = document.NewSampleDocument(boardID)
	e.pageID = e.doc.CurrentPage
	e.selection = nil
	e.reg.InvalidateAll()
}

// SetCurrentPage switches the active page.
func (e *Editor) SetCurrentPage(pageID string) error {
	if e.doc == nil {
		return fmt.Errorf("no document loaded")
	}
	if _, ok := e.doc.Pages[pageID]; !ok {
		return fmt.Errorf("page not found: %s", pageID)
	}
	e.pageID = pageID
	e.doc.CurrentPage = pageID
	return nil
}

func (e *Editor) page() (*document.Page, error) {
	if e.doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}
	p, ok := e.doc.Pages[e.pageID]
	if !ok {
		return nil, fmt.Errorf("page not found: %s", e.pageID)
	}
	return p, nil
}

func (e *Editor) lookup(id string) (*document.Page, *shape.Shape, error) {
	p, err := e.page()
	if err != nil {
		return nil, nil, err
	}
	s, ok := p.Shapes[id]
	if !ok {
		return nil, nil, fmt.Errorf("shape not found: %s", id)
	}
	return p, s, nil
}

// CreateShape creates a shape of the given kind from partial props JSON and
// returns its ID.
func (e *Editor) CreateShape(kind string, propsJSON string) (string, error) {
	p, err := e.page()
	if err != nil {
		return "", err
	}

	var props shape.Shape
	if propsJSON != "" {
		if err := json.Unmarshal([]byte(propsJSON), &props); err != nil {
			return "", fmt.Errorf("invalid props: %w", err)
		}
	}
	if props.Parent == "" {
		props.Parent = p.ID
	}
	if props.ChildIndex == 0 {
		props.ChildIndex = e.topChildIndex(p) + 1
	}

	s := e.reg.Create(shape.Kind(kind), &props)
	p.Shapes[s.ID] = s
	return s.ID, nil
}

func (e *Editor) topChildIndex(p *document.Page) float64 {
	max := 0.0
	for _, s := range p.Shapes {
		if s.ChildIndex > max {
			max = s.ChildIndex
		}
	}
	return max
}

// DeleteShape removes a shape and any bindings touching it.
func (e *Editor) DeleteShape(id string) error {
	p, s, err := e.lookup(id)
	if err != nil {
		return err
	}

	for bid, b := range p.Bindings {
		if b.FromID == id || b.ToID == id {
			delete(p.Bindings, bid)
		}
	}
	for _, childID := range s.Children {
		if child, ok := p.Shapes[childID]; ok {
			child.Parent = p.ID
		}
	}
	delete(p.Shapes, id)
	e.reg.Invalidate(id)
	e.selection = removeID(e.selection, id)
	return nil
}

// TranslateBy moves a shape by a delta, dragging bound shapes along.
func (e *Editor) TranslateBy(id string, dx, dy float64) error {
	p, s, err := e.lookup(id)
	if err != nil {
		return err
	}
	e.reg.UtilFor(s).TranslateBy(s, geom.Vec{X: dx, Y: dy})
	e.propagate(p, s)
	return nil
}

// TranslateTo moves a shape to an absolute point.
func (e *Editor) TranslateTo(id string, x, y float64) error {
	p, s, err := e.lookup(id)
	if err != nil {
		return err
	}
	e.reg.UtilFor(s).TranslateTo(s, geom.Vec{X: x, Y: y})
	e.propagate(p, s)
	return nil
}

// Transform resizes a shape into new bounds. solo selects the single-shape
// variant (text reflows instead of stretching).
func (e *Editor) Transform(id string, boundsJSON, infoJSON string, solo bool) error {
	p, s, err := e.lookup(id)
	if err != nil {
		return err
	}

	var bounds geom.Bounds
	if err := json.Unmarshal([]byte(boundsJSON), &bounds); err != nil {
		return fmt.Errorf("invalid bounds: %w", err)
	}
	var info shape.TransformInfo
	if infoJSON != "" {
		if err := json.Unmarshal([]byte(infoJSON), &info); err != nil {
			return fmt.Errorf("invalid transform info: %w", err)
		}
	}

	u := e.reg.UtilFor(s)
	if !u.CanTransform() {
		return fmt.Errorf("shape kind %q cannot be transformed", s.Kind)
	}
	if solo {
		u.TransformSingle(s, bounds, info)
	} else {
		u.Transform(s, bounds, info)
	}
	e.propagate(p, s)
	return nil
}

// SetProperty assigns a single property on a shape.
func (e *Editor) SetProperty(id, key string, valueJSON string) error {
	p, s, err := e.lookup(id)
	if err != nil {
		return err
	}
	var value any
	if err := json.Unmarshal([]byte(valueJSON), &value); err != nil {
		return fmt.Errorf("invalid value: %w", err)
	}
	if err := e.reg.UtilFor(s).SetProperty(s, key, value); err != nil {
		return err
	}
	e.propagate(p, s)
	return nil
}

// ApplyStyles merges a partial style into a shape.
func (e *Editor) ApplyStyles(id string, patchJSON string) error {
	_, s, err := e.lookup(id)
	if err != nil {
		return err
	}
	var patch shape.StylePatch
	if err := json.Unmarshal([]byte(patchJSON), &patch); err != nil {
		return fmt.Errorf("invalid style patch: %w", err)
	}
	e.reg.UtilFor(s).ApplyStyles(s, patch)
	return nil
}

// MoveHandle applies a handle drag to a shape.
func (e *Editor) MoveHandle(id string, patchJSON string) error {
	p, s, err := e.lookup(id)
	if err != nil {
		return err
	}
	var patch map[string]shape.Handle
	if err := json.Unmarshal([]byte(patchJSON), &patch); err != nil {
		return fmt.Errorf("invalid handle patch: %w", err)
	}
	e.reg.UtilFor(s).OnHandleChange(s, patch)
	e.propagate(p, s)
	return nil
}

// propagate refits the parent group and updates bound shapes after a
// geometry change.
func (e *Editor) propagate(p *document.Page, s *shape.Shape) {
	if parent, ok := p.Shapes[s.Parent]; ok && parent.Kind == shape.KindGroup {
		children := make([]*shape.Shape, 0, len(parent.Children))
		for _, id := range parent.Children {
			if c, ok := p.Shapes[id]; ok {
				children = append(children, c)
			}
		}
		e.reg.UtilFor(parent).OnChildrenChange(parent, children)
	}

	target := e.reg.UtilFor(s).Bounds(s)
	for _, b := range p.Bindings {
		if b.ToID != s.ID {
			continue
		}
		if from, ok := p.Shapes[b.FromID]; ok {
			e.reg.UtilFor(from).OnBindingChange(from, *b, target)
		}
	}
}

// --- Queries (frontend ← backend) ---

// HitTest returns the ID of the topmost shape containing the point, or an
// empty string. Topmost means highest child index, ties broken arbitrarily.
func (e *Editor) HitTest(x, y float64) string {
	p, err := e.page()
	if err != nil {
		return ""
	}

	point := geom.Vec{X: x, Y: y}
	bestID := ""
	bestIndex := 0.0
	for id, s := range p.Shapes {
		if s.IsHidden {
			continue
		}
		if !e.reg.UtilFor(s).HitTest(s, point) {
			continue
		}
		if bestID == "" || s.ChildIndex > bestIndex {
			bestID = id
			bestIndex = s.ChildIndex
		}
	}
	return bestID
}

// HitTestBounds returns the IDs of all shapes the marquee touches, back to
// front.
func (e *Editor) HitTestBounds(boundsJSON string) ([]string, error) {
	p, err := e.page()
	if err != nil {
		return nil, err
	}
	var bounds geom.Bounds
	if err := json.Unmarshal([]byte(boundsJSON), &bounds); err != nil {
		return nil, fmt.Errorf("invalid bounds: %w", err)
	}

	type hit struct {
		id    string
		index float64
	}
	hits := make([]hit, 0)
	for id, s := range p.Shapes {
		if s.IsHidden {
			continue
		}
		if e.reg.UtilFor(s).HitTestBounds(s, bounds) {
			hits = append(hits, hit{id, s.ChildIndex})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].index < hits[j].index })

	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.id
	}
	return ids, nil
}

// SetSelection sets the selected shape IDs.
func (e *Editor) SetSelection(ids []string) {
	e.selection = ids
}

// GetSelection returns the current selection as JSON.
func (e *Editor) GetSelection() string {
	data, _ := json.Marshal(e.selection)
	return string(data)
}

// GetSelectionBounds returns the combined rotated bounds of the selection as
// JSON.
func (e *Editor) GetSelectionBounds() string {
	p, err := e.page()
	if err != nil || len(e.selection) == 0 {
		return boundsToJSON(geom.Bounds{})
	}

	var result geom.Bounds
	first := true
	for _, id := range e.selection {
		s, ok := p.Shapes[id]
		if !ok {
			continue
		}
		b := e.reg.UtilFor(s).RotatedBounds(s)
		if first {
			result = b
			first = false
		} else {
			result = result.Union(b)
		}
	}
	return boundsToJSON(result)
}

// GetShapeBounds returns a shape's bounds as JSON.
func (e *Editor) GetShapeBounds(id string) (string, error) {
	_, s, err := e.lookup(id)
	if err != nil {
		return "", err
	}
	return boundsToJSON(e.reg.UtilFor(s).Bounds(s)), nil
}

// GetShape returns a shape record as JSON.
func (e *Editor) GetShape(id string) (string, error) {
	_, s, err := e.lookup(id)
	if err != nil {
		return "", err
	}
	data, _ := json.Marshal(s)
	return string(data), nil
}

// GetDocument returns the full document as JSON (for debugging/sync).
func (e *Editor) GetDocument() string {
	if e.doc == nil {
		return "{}"
	}
	data, _ := json.Marshal(e.doc)
	return string(data)
}

func boundsToJSON(b geom.Bounds) string {
	data, _ := json.Marshal(b)
	return string(data)
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
