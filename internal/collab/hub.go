package collab

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/krapie/tldraw-custom/internal/document"
)

// DocLoader fetches the latest persisted document for a board.
type DocLoader func(boardID string) (*document.BoardDocument, error)

// DocSaver persists a snapshot of a board's document.
type DocSaver func(boardID string, doc *document.BoardDocument) error

// defaultSaveInterval is how often dirty room documents are flushed to
// storage when the hub is constructed with a non-positive interval.
const defaultSaveInterval = 30 * time.Second

type Room struct {
	boardID  string
	clients  map[string]*Client // clientID -> client
	presence *presenceTable
	state    *DocumentState
	dirty    bool
}

func NewRoom(boardID string, doc *document.BoardDocument) *Room {
	return &Room{
		boardID:  boardID,
		clients:  make(map[string]*Client),
		presence: newPresenceTable(),
		state:    NewDocumentState(doc),
	}
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // boardID -> room
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	done       chan struct{}
	loadDoc    DocLoader
	saveDoc    DocSaver

	saveInterval time.Duration
}

func NewHub(loadDoc DocLoader, saveDoc DocSaver, saveInterval time.Duration) *Hub {
	if saveInterval <= 0 {
		saveInterval = defaultSaveInterval
	}
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		loadDoc:    loadDoc,
		saveDoc:    saveDoc,

		saveInterval: saveInterval,
	}
}

func (h *Hub) Run() {
	ticker := time.NewTicker(h.saveInterval)
	defer ticker.Stop()

	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ticker.C:
			h.saveDirtyRooms()
		case <-h.stop:
			h.saveDirtyRooms()
			close(h.done)
			return
		}
	}
}

// Stop flushes every dirty document and shuts the hub down.
func (h *Hub) Stop() {
	close(h.stop)
	<-h.done
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.BoardID]
	if !ok {
		doc, err := h.loadDoc(client.BoardID)
		if err != nil {
			slog.Warn("load document, starting sample board", "error", err, "board", client.BoardID)
			doc = document.NewSampleDocument(client.BoardID)
		}
		room = NewRoom(client.BoardID, doc)
		h.rooms[client.BoardID] = room
	}
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	// Sync the full document to the new client
	docJSON, err := json.Marshal(room.state.GetDocument())
	if err != nil {
		slog.Error("marshal document", "error", err, "board", client.BoardID)
	} else {
		client.Send(&Message{
			Type:    TypeDocSync,
			BoardID: client.BoardID,
			Seq:     room.state.ServerSeq(),
			Payload: docJSON,
		})
	}

	// Send current presence state to new client
	stateMsg := room.presence.stateMessage()
	if stateMsg != nil {
		client.Send(stateMsg)
	}

	// Broadcast join to other clients
	joinPayload, _ := json.Marshal(PresenceJoinPayload{
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
	})
	joinMsg := &Message{
		Type:    TypePresenceJoin,
		UserID:  client.UserID,
		Payload: joinPayload,
	}
	h.broadcastToRoom(client.BoardID, joinMsg, client.ClientID)

	slog.Info("client joined", "user", client.UserID, "board", client.BoardID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.BoardID]
	if !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	close(client.send)
	room.presence.drop(client.UserID)

	var saveRoom *Room
	if len(room.clients) == 0 {
		if room.dirty {
			saveRoom = room
		}
		delete(h.rooms, client.BoardID)
	}
	h.mu.Unlock()

	if saveRoom != nil {
		h.persist(saveRoom)
	}

	// Broadcast leave to remaining clients
	leavePayload, _ := json.Marshal(PresenceLeavePayload{
		UserID: client.UserID,
	})
	leaveMsg := &Message{
		Type:    TypePresenceLeave,
		UserID:  client.UserID,
		Payload: leavePayload,
	}
	h.broadcastToRoom(client.BoardID, leaveMsg, "")

	slog.Info("client left", "user", client.UserID, "board", client.BoardID)
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypePresenceUpdate:
		h.handlePresenceUpdate(sender, msg)
	case TypeOpSubmit:
		h.handleOpSubmit(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.UserID)
	}
}

func (h *Hub) handleOpSubmit(sender *Client, msg *Message) {
	var payload OperationSubmitPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		slog.Warn("invalid operation payload", "error", err, "user", sender.UserID)
		return
	}
	op := payload.Operation

	h.mu.Lock()
	room, ok := h.rooms[sender.BoardID]
	if ok {
		room.dirty = true
	}
	h.mu.Unlock()
	if !ok {
		return
	}

	seq, err := room.state.ApplyOperation(op)
	if err != nil {
		slog.Warn("operation rejected", "error", err, "type", op.Type, "user", sender.UserID)
		nack, _ := json.Marshal(OperationNackPayload{
			OperationID: op.ID,
			Reason:      err.Error(),
		})
		sender.Send(&Message{Type: TypeOpNack, Payload: nack})
		return
	}

	ack, _ := json.Marshal(OperationAckPayload{
		OperationID:     op.ID,
		ServerSeq:       seq,
		ServerTimestamp: GetServerTimestamp(),
	})
	sender.Send(&Message{Type: TypeOpAck, Payload: ack})

	broadcast, _ := json.Marshal(OperationBroadcastPayload{
		Operation: op,
		UserID:    sender.UserID,
		ServerSeq: seq,
	})
	h.broadcastToRoom(sender.BoardID, &Message{
		Type:    TypeOpBroadcast,
		UserID:  sender.UserID,
		Payload: broadcast,
	}, sender.ClientID)
}

func (h *Hub) handlePresenceUpdate(sender *Client, msg *Message) {
	var presence PresencePayload
	if err := json.Unmarshal(msg.Payload, &presence); err != nil {
		slog.Warn("invalid presence payload", "error", err)
		return
	}

	presence.DisplayName = sender.DisplayName

	h.mu.RLock()
	room, ok := h.rooms[sender.BoardID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	room.presence.set(sender.UserID, &presence)

	// Broadcast to other clients in room
	outPayload, _ := json.Marshal(presence)
	outMsg := &Message{
		Type:    TypePresenceUpdate,
		UserID:  sender.UserID,
		Payload: outPayload,
	}
	h.broadcastToRoom(sender.BoardID, outMsg, sender.ClientID)
}

func (h *Hub) saveDirtyRooms() {
	h.mu.Lock()
	dirty := make([]*Room, 0)
	for _, room := range h.rooms {
		if room.dirty {
			room.dirty = false
			dirty = append(dirty, room)
		}
	}
	h.mu.Unlock()

	for _, room := range dirty {
		h.persist(room)
	}
}

func (h *Hub) persist(room *Room) {
	if err := h.saveDoc(room.boardID, room.state.GetDocument()); err != nil {
		slog.Error("save document", "error", err, "board", room.boardID)
		return
	}
	slog.Info("document saved", "board", room.boardID)
}

func (h *Hub) broadcastToRoom(boardID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[boardID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}
