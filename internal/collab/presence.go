package collab

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// presenceTable holds the live cursor, selection, and page position of every
// user in a room. Entries are keyed by user ID, so a reconnecting client
// replaces its stale entry instead of ghosting next to itself.
type presenceTable struct {
	mu      sync.RWMutex
	entries map[string]*PresencePayload
}

func newPresenceTable() *presenceTable {
	return &presenceTable{entries: make(map[string]*PresencePayload)}
}

func (t *presenceTable) set(userID string, p *PresencePayload) {
	t.mu.Lock()
	t.entries[userID] = p
	t.mu.Unlock()
}

func (t *presenceTable) drop(userID string) {
	t.mu.Lock()
	delete(t.entries, userID)
	t.mu.Unlock()
}

// snapshot copies the table so it can be marshaled outside the lock.
func (t *presenceTable) snapshot() map[string]*PresencePayload {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]*PresencePayload, len(t.entries))
	for userID, p := range t.entries {
		out[userID] = p
	}
	return out
}

// stateMessage builds the presence.state message a joining client receives
// before any broadcasts, so its first paint already shows everyone in the
// room.
func (t *presenceTable) stateMessage() *Message {
	payload, err := json.Marshal(PresenceStatePayload{Presences: t.snapshot()})
	if err != nil {
		slog.Error("marshal presence state", "error", err)
		return nil
	}
	return &Message{
		Type:    TypePresenceState,
		Payload: payload,
	}
}
