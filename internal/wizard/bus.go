package wizard

import (
	"sync"
	"time"
)

// EventKind discriminates bus events
type EventKind string

const (
	EventTotalsRecomputed       EventKind = "totals_recomputed"
	EventStepChanged            EventKind = "step_changed"
	EventSubmissionStateChanged EventKind = "submission_state_changed"
	EventDraftRecovered         EventKind = "draft_recovered"
	EventSessionReset           EventKind = "session_reset"
)

// Event is one typed notification on a session's bus
type Event struct {
	Kind       EventKind       `json:"kind"`
	Total      float64         `json:"total,omitempty"`
	Step       StepID          `json:"step,omitempty"`
	Submission SubmissionState `json:"submission,omitempty"`
	Revision   int64           `json:"revision"`
	At         time.Time       `json:"at"`
}

// Bus is an in-process publish/subscribe channel scoped to one wizard
// session. It replaces process-wide ambient signals: subscribers attach to
// the session they care about and die with it. Publishing never blocks; a
// subscriber that falls behind loses events rather than stalling the
// wizard.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan Event
	nextID int
	closed bool
}

const busBuffer = 16

// NewBus creates a session bus
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a listener. The returned cancel func detaches it and
// closes its channel; it is safe to call more than once.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event)
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	ch := make(chan Event, busBuffer)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// Publish fans an event out to all subscribers without blocking
func (b *Bus) Publish(event Event) {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			// subscriber is behind; drop rather than stall
		}
	}
}

// Close detaches every subscriber. Publish becomes a no-op.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
