package collab

import (
	"testing"
	"time"
)

func TestNewHubSaveInterval(t *testing.T) {
	h := NewHub(nil, nil, 5*time.Second)
	if h.saveInterval != 5*time.Second {
		t.Errorf("saveInterval = %v, want 5s", h.saveInterval)
	}

	// A non-positive interval falls back to the default instead of
	// producing a ticker that panics.
	h = NewHub(nil, nil, 0)
	if h.saveInterval != defaultSaveInterval {
		t.Errorf("saveInterval = %v, want default %v", h.saveInterval, defaultSaveInterval)
	}
}
