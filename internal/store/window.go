package store

import (
	"sync"
	"time"

	"huddle/internal/constants"
	"huddle/pkg/metrics"
	"huddle/pkg/models"
)

// Window is a bounded in-memory buffer of admitted messages. When full, the
// oldest message is evicted. Readers get copies; the internal slice is never
// exposed.
type Window struct {
	mu       sync.RWMutex
	messages []models.Message
	capacity int
}

func NewWindow(capacity int) *Window {
	if capacity <= 0 {
		capacity = constants.DefaultWindowSize
	}
	return &Window{
		messages: make([]models.Message, 0, capacity),
		capacity: capacity,
	}
}

// Add appends a message, evicting the oldest when the window is full.
func (w *Window) Add(msg models.Message) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.messages) == w.capacity {
		copy(w.messages, w.messages[1:])
		w.messages[len(w.messages)-1] = msg
	} else {
		w.messages = append(w.messages, msg)
	}

	metrics.SetWindowMessages(len(w.messages))
}

// Snapshot returns a copy of the current window in arrival order.
func (w *Window) Snapshot() []models.Message {
	w.mu.RLock()
	defer w.mu.RUnlock()

	snapshot := make([]models.Message, len(w.messages))
	copy(snapshot, w.messages)
	return snapshot
}

// SnapshotSince returns messages newer than the cutoff, most recent last.
// Messages without a parseable timestamp are always included.
func (w *Window) SnapshotSince(cutoff time.Time) []models.Message {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var snapshot []models.Message
	for _, m := range w.messages {
		if t, ok := m.Time(); ok && t.Before(cutoff) {
			continue
		}
		snapshot = append(snapshot, m)
	}
	return snapshot
}

func (w *Window) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.messages)
}
