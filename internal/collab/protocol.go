package collab

import (
	"encoding/json"

	"github.com/krapie/tldraw-custom/internal/geom"
	"github.com/krapie/tldraw-custom/internal/shape"
)

type Message struct {
	Type     string          `json:"type"`
	BoardID  string          `json:"boardId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	UserID   string          `json:"userId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

type PresencePayload struct {
	Cursor      *CursorPos `json:"cursor,omitempty"`
	Selection   []string   `json:"selection,omitempty"`
	PageID      string     `json:"pageId,omitempty"`
	DisplayName string     `json:"displayName,omitempty"`
}

type CursorPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type PresenceLeavePayload struct {
	UserID string `json:"userId"`
}

const (
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
	TypeError          = "error"

	// Connection
	TypeWelcome = "welcome"

	// Document sync
	TypeDocSync = "doc.sync"

	// Operation message types
	TypeOpSubmit    = "op.submit"
	TypeOpAck       = "op.ack"
	TypeOpNack      = "op.nack"
	TypeOpBroadcast = "op.broadcast"
)

// Operation types applied to the board document.
const (
	OpShapeCreate      = "shape.create"
	OpShapeDelete      = "shape.delete"
	OpShapeTranslate   = "shape.translate"
	OpShapeTranslateTo = "shape.translate_to"
	OpShapeTransform   = "shape.transform"
	OpShapeStyle       = "shape.style"
	OpShapeProperty    = "shape.property"
	OpShapeHandle      = "shape.handle"
	OpShapeReparent    = "shape.reparent"
	OpBindingCreate    = "binding.create"
	OpBindingDelete    = "binding.delete"
	OpPageUpdate       = "page.update"
	OpBoardRename      = "board.rename"
)

// Operation represents a single document mutation
type Operation struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	ClientSeq int64  `json:"clientSeq"`
	PageID    string `json:"pageId,omitempty"`
	ShapeID   string `json:"shapeId,omitempty"`

	// For shape.create
	Kind  shape.Kind      `json:"kind,omitempty"`
	Props json.RawMessage `json:"props,omitempty"`

	// For shape.translate / shape.translate_to
	Delta *geom.Vec `json:"delta,omitempty"`
	Point *geom.Vec `json:"point,omitempty"`

	// For shape.transform
	Bounds  *geom.Bounds         `json:"bounds,omitempty"`
	Info    *shape.TransformInfo `json:"info,omitempty"`
	IsSolo  bool                 `json:"isSolo,omitempty"`
	Initial json.RawMessage      `json:"initial,omitempty"`

	// For shape.style
	Style *shape.StylePatch `json:"style,omitempty"`

	// For shape.property
	Key   string          `json:"key,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`

	// For shape.handle
	Handles map[string]shape.Handle `json:"handles,omitempty"`

	// For shape.reparent
	NewParentID string `json:"newParentId,omitempty"`
	NewIndex    *int   `json:"newIndex,omitempty"`

	// For binding.create / binding.delete
	BindingID string         `json:"bindingId,omitempty"`
	Binding   *shape.Binding `json:"binding,omitempty"`

	// For page.update
	Changes json.RawMessage `json:"changes,omitempty"`

	// For board.rename
	Name string `json:"name,omitempty"`
}

// OperationSubmitPayload is the payload for op.submit messages
type OperationSubmitPayload struct {
	Operation Operation `json:"operation"`
}

// OperationAckPayload is the payload for op.ack messages
type OperationAckPayload struct {
	OperationID     string `json:"operationId"`
	ServerSeq       int64  `json:"serverSeq"`
	ServerTimestamp int64  `json:"serverTimestamp"`
}

// OperationNackPayload is the payload for op.nack messages
type OperationNackPayload struct {
	OperationID string `json:"operationId"`
	Reason      string `json:"reason"`
}

// OperationBroadcastPayload is the payload for op.broadcast messages
type OperationBroadcastPayload struct {
	Operation Operation `json:"operation"`
	UserID    string    `json:"userId"`
	ServerSeq int64     `json:"serverSeq"`
}
