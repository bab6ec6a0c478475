package collab

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/krapie/tldraw-custom/internal/document"
	"github.com/krapie/tldraw-custom/internal/shape"
	"github.com/krapie/tldraw-custom/internal/typeid"
)

// DocumentState holds the authoritative board state for a room. All shape
// mutations route through the behavior registry so kind-specific semantics
// (bounds caching, handle normalization, group refitting) apply on the server
// exactly as they do in the client editor.
type DocumentState struct {
	mu        sync.RWMutex
	doc       *document.BoardDocument
	reg       *shape.Registry
	serverSeq int64
	opLog     []Operation // Operation history for persistence
}

// NewDocumentState creates a new document state from an initial document
func NewDocumentState(doc *document.BoardDocument) *DocumentState {
	return &DocumentState{
		doc:       doc,
		reg:       shape.NewRegistry(),
		serverSeq: 0,
		opLog:     make([]Operation, 0),
	}
}

// GetDocument returns the current document. Callers must not mutate it.
func (ds *DocumentState) GetDocument() *document.BoardDocument {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.doc
}

// ServerSeq returns the sequence number of the last applied operation.
func (ds *DocumentState) ServerSeq() int64 {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.serverSeq
}

// ApplyOperation applies an operation to the document and returns the server sequence
func (ds *DocumentState) ApplyOperation(op Operation) (int64, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if err := ds.applyOperationLocked(op); err != nil {
		return 0, err
	}

	// Logged operations need a stable identity for persistence; clients may
	// submit without one.
	if op.ID == "" {
		op.ID = typeid.NewOpID()
	}
	ds.serverSeq++
	ds.opLog = append(ds.opLog, op)

	return ds.serverSeq, nil
}

func (ds *DocumentState) applyOperationLocked(op Operation) error {
	switch op.Type {
	case OpShapeCreate:
		return ds.applyCreate(op)
	case OpShapeDelete:
		return ds.applyDelete(op)
	case OpShapeTranslate, OpShapeTranslateTo:
		return ds.applyTranslate(op)
	case OpShapeTransform:
		return ds.applyTransform(op)
	case OpShapeStyle:
		return ds.applyStyle(op)
	case OpShapeProperty:
		return ds.applyProperty(op)
	case OpShapeHandle:
		return ds.applyHandle(op)
	case OpShapeReparent:
		return ds.applyReparent(op)
	case OpBindingCreate:
		return ds.applyBindingCreate(op)
	case OpBindingDelete:
		return ds.applyBindingDelete(op)
	case OpPageUpdate:
		return ds.applyPageUpdate(op)
	case OpBoardRename:
		return ds.applyBoardRename(op)
	default:
		return fmt.Errorf("unknown operation type: %s", op.Type)
	}
}

func (ds *DocumentState) page(id string) (*document.Page, error) {
	if id == "" {
		id = ds.doc.CurrentPage
	}
	p, ok := ds.doc.Pages[id]
	if !ok {
		return nil, fmt.Errorf("page not found: %s", id)
	}
	return p, nil
}

func (ds *DocumentState) findShape(op Operation) (*document.Page, *shape.Shape, error) {
	p, err := ds.page(op.PageID)
	if err != nil {
		return nil, nil, err
	}
	s, ok := p.Shapes[op.ShapeID]
	if !ok {
		return nil, nil, fmt.Errorf("shape not found: %s", op.ShapeID)
	}
	return p, s, nil
}

func (ds *DocumentState) applyCreate(op Operation) error {
	p, err := ds.page(op.PageID)
	if err != nil {
		return err
	}

	var props shape.Shape
	if len(op.Props) > 0 {
		if err := json.Unmarshal(op.Props, &props); err != nil {
			return fmt.Errorf("invalid shape props: %w", err)
		}
	}
	if props.Parent == "" {
		props.Parent = p.ID
	}
	if props.ChildIndex == 0 {
		props.ChildIndex = ds.nextChildIndex(p, props.Parent)
	}

	s := ds.reg.Create(op.Kind, &props)
	p.Shapes[s.ID] = s

	if parent, ok := p.Shapes[s.Parent]; ok && parent.Kind == shape.KindGroup {
		parent.Children = append(parent.Children, s.ID)
		ds.refitGroup(p, parent)
	}
	return nil
}

// nextChildIndex returns one past the highest child index on a parent, so
// created shapes land on top.
func (ds *DocumentState) nextChildIndex(p *document.Page, parent string) float64 {
	max := 0.0
	for _, s := range p.Shapes {
		if s.Parent == parent && s.ChildIndex > max {
			max = s.ChildIndex
		}
	}
	return max + 1
}

func (ds *DocumentState) applyDelete(op Operation) error {
	p, s, err := ds.findShape(op)
	if err != nil {
		return err
	}

	// Drop bindings pointing at or from the shape, and detach their handles.
	for id, b := range p.Bindings {
		if b.FromID != op.ShapeID && b.ToID != op.ShapeID {
			continue
		}
		if from, ok := p.Shapes[b.FromID]; ok {
			if h, ok := from.Handles[b.HandleID]; ok && h.BindingID == id {
				h.BindingID = ""
				from.Handles[b.HandleID] = h
			}
		}
		delete(p.Bindings, id)
	}

	// A deleted group releases its children to the page.
	for _, childID := range s.Children {
		if child, ok := p.Shapes[childID]; ok {
			child.Parent = p.ID
		}
	}

	if parent, ok := p.Shapes[s.Parent]; ok && parent.Kind == shape.KindGroup {
		parent.Children = removeID(parent.Children, op.ShapeID)
		ds.refitGroup(p, parent)
	}

	delete(p.Shapes, op.ShapeID)
	ds.reg.Invalidate(op.ShapeID)
	return nil
}

func (ds *DocumentState) applyTranslate(op Operation) error {
	p, s, err := ds.findShape(op)
	if err != nil {
		return err
	}

	u := ds.reg.UtilFor(s)
	switch {
	case op.Type == OpShapeTranslateTo && op.Point != nil:
		u.TranslateTo(s, *op.Point)
	case op.Delta != nil:
		u.TranslateBy(s, *op.Delta)
	default:
		return fmt.Errorf("translate operation missing point")
	}

	ds.afterShapeMoved(p, s)
	return nil
}

func (ds *DocumentState) applyTransform(op Operation) error {
	p, s, err := ds.findShape(op)
	if err != nil {
		return err
	}
	if op.Bounds == nil || op.Info == nil {
		return fmt.Errorf("transform operation missing bounds")
	}

	u := ds.reg.UtilFor(s)
	if !u.CanTransform() {
		return fmt.Errorf("shape kind %q cannot be transformed", s.Kind)
	}

	info := *op.Info
	if len(op.Initial) > 0 {
		var initial shape.Shape
		if err := json.Unmarshal(op.Initial, &initial); err != nil {
			return fmt.Errorf("invalid initial shape: %w", err)
		}
		info.Initial = &initial
	}

	if op.IsSolo {
		u.TransformSingle(s, *op.Bounds, info)
	} else {
		u.Transform(s, *op.Bounds, info)
	}

	ds.afterShapeMoved(p, s)
	return nil
}

func (ds *DocumentState) applyStyle(op Operation) error {
	_, s, err := ds.findShape(op)
	if err != nil {
		return err
	}
	if op.Style == nil {
		return fmt.Errorf("style operation missing patch")
	}
	ds.reg.UtilFor(s).ApplyStyles(s, *op.Style)
	return nil
}

func (ds *DocumentState) applyProperty(op Operation) error {
	p, s, err := ds.findShape(op)
	if err != nil {
		return err
	}

	var value any
	if err := json.Unmarshal(op.Value, &value); err != nil {
		return fmt.Errorf("invalid property value: %w", err)
	}
	if err := ds.reg.UtilFor(s).SetProperty(s, op.Key, value); err != nil {
		return err
	}

	ds.afterShapeMoved(p, s)
	return nil
}

func (ds *DocumentState) applyHandle(op Operation) error {
	p, s, err := ds.findShape(op)
	if err != nil {
		return err
	}
	if len(op.Handles) == 0 {
		return fmt.Errorf("handle operation missing patch")
	}

	ds.reg.UtilFor(s).OnHandleChange(s, op.Handles)
	ds.afterShapeMoved(p, s)
	return nil
}

func (ds *DocumentState) applyReparent(op Operation) error {
	p, s, err := ds.findShape(op)
	if err != nil {
		return err
	}

	newParent := op.NewParentID
	if newParent == "" {
		newParent = p.ID
	}
	if newParent != p.ID {
		target, ok := p.Shapes[newParent]
		if !ok {
			return fmt.Errorf("new parent not found: %s", newParent)
		}
		if target.Kind != shape.KindGroup {
			return fmt.Errorf("new parent %s is not a group", newParent)
		}
	}

	if old, ok := p.Shapes[s.Parent]; ok && old.Kind == shape.KindGroup {
		old.Children = removeID(old.Children, s.ID)
		ds.refitGroup(p, old)
	}

	s.Parent = newParent
	if op.NewIndex != nil {
		s.ChildIndex = float64(*op.NewIndex)
	} else {
		s.ChildIndex = ds.nextChildIndex(p, newParent)
	}

	if group, ok := p.Shapes[newParent]; ok && group.Kind == shape.KindGroup {
		group.Children = append(group.Children, s.ID)
		ds.refitGroup(p, group)
	}
	return nil
}

func (ds *DocumentState) applyBindingCreate(op Operation) error {
	p, err := ds.page(op.PageID)
	if err != nil {
		return err
	}
	if op.Binding == nil {
		return fmt.Errorf("binding operation missing binding")
	}

	b := *op.Binding
	from, ok := p.Shapes[b.FromID]
	if !ok {
		return fmt.Errorf("binding source not found: %s", b.FromID)
	}
	to, ok := p.Shapes[b.ToID]
	if !ok {
		return fmt.Errorf("binding target not found: %s", b.ToID)
	}

	p.Bindings[b.ID] = &b
	ds.reg.UtilFor(from).OnBindingChange(from, b, ds.reg.UtilFor(to).Bounds(to))
	return nil
}

func (ds *DocumentState) applyBindingDelete(op Operation) error {
	p, err := ds.page(op.PageID)
	if err != nil {
		return err
	}
	b, ok := p.Bindings[op.BindingID]
	if !ok {
		return fmt.Errorf("binding not found: %s", op.BindingID)
	}

	if from, ok := p.Shapes[b.FromID]; ok {
		if h, ok := from.Handles[b.HandleID]; ok && h.BindingID == op.BindingID {
			h.BindingID = ""
			from.Handles[b.HandleID] = h
		}
	}
	delete(p.Bindings, op.BindingID)
	return nil
}

func (ds *DocumentState) applyPageUpdate(op Operation) error {
	p, err := ds.page(op.PageID)
	if err != nil {
		return err
	}

	var changes map[string]interface{}
	if err := json.Unmarshal(op.Changes, &changes); err != nil {
		return fmt.Errorf("invalid page changes: %w", err)
	}

	if v, ok := changes["name"].(string); ok {
		p.Name = v
	}
	return nil
}

func (ds *DocumentState) applyBoardRename(op Operation) error {
	ds.doc.Board.Name = op.Name
	return nil
}

// afterShapeMoved propagates a geometry change: the parent group refits to
// its children, and shapes bound to the moved one follow it.
func (ds *DocumentState) afterShapeMoved(p *document.Page, s *shape.Shape) {
	if parent, ok := p.Shapes[s.Parent]; ok && parent.Kind == shape.KindGroup {
		ds.refitGroup(p, parent)
	}

	targetBounds := ds.reg.UtilFor(s).Bounds(s)
	for _, b := range p.Bindings {
		if b.ToID != s.ID {
			continue
		}
		from, ok := p.Shapes[b.FromID]
		if !ok {
			continue
		}
		ds.reg.UtilFor(from).OnBindingChange(from, *b, targetBounds)
	}
}

func (ds *DocumentState) refitGroup(p *document.Page, group *shape.Shape) {
	children := make([]*shape.Shape, 0, len(group.Children))
	for _, id := range group.Children {
		if child, ok := p.Shapes[id]; ok {
			children = append(children, child)
		}
	}
	ds.reg.UtilFor(group).OnChildrenChange(group, children)
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// GetServerTimestamp returns the current server timestamp
func GetServerTimestamp() int64 {
	return time.Now().UnixMilli()
}
