// Package notify is the status channel between background work and the
// dashboard. It intentionally does not behave like a queue: at most one
// "latest" message is shown, and later posts replace it instead of stacking.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a status message.
type Kind string

const (
	Processing Kind = "processing"
	Success    Kind = "success"
	Error      Kind = "error"
	Info       Kind = "info"
)

// Message is one transient status entry.
type Message struct {
	ID   string `json:"id"`
	Kind Kind   `json:"type"`
	Text string `json:"text"`
	Icon string `json:"icon"`
}

// Messenger collapses status updates into a single visible slot. Posting to
// an empty list appends a fresh entry; posting again rewrites the head entry
// in place, preserving its id, and leaves any older entries untouched.
type Messenger struct {
	mu   sync.Mutex
	msgs []Message
}

func NewMessenger() *Messenger {
	return &Messenger{}
}

// Post records a status transition.
func (m *Messenger) Post(kind Kind, text, icon string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.msgs) == 0 {
		m.msgs = append(m.msgs, Message{
			ID:   uuid.NewString(),
			Kind: kind,
			Text: text,
			Icon: icon,
		})
		return
	}
	head := m.msgs[0]
	head.Kind = kind
	head.Text = text
	head.Icon = icon
	m.msgs[0] = head
}

// Clear drops every message.
func (m *Messenger) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = nil
}

// ClearAfter schedules a full clear. Overlapping schedules are allowed to
// race; the last one to fire wins. The returned timer lets tests fire or
// stop the clear deterministically.
func (m *Messenger) ClearAfter(d time.Duration) *time.Timer {
	return time.AfterFunc(d, m.Clear)
}

// Messages returns a snapshot of the current list, newest first.
func (m *Messenger) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.msgs))
	copy(out, m.msgs)
	return out
}
