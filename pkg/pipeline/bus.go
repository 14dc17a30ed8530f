package pipeline

import (
	"context"
	"sync"
	"time"
)

// EventType identifies the kind of event published on the bus.
type EventType int

const (
	// EventError reports a processing failure. Payload is a string or error.
	EventError EventType = iota
	// EventWarning reports a recoverable condition.
	EventWarning
	// EventSegmentEmitted fires for every token delivered by a segmenting
	// element. Payload is a SegmentPayload.
	EventSegmentEmitted
	// EventStreamFlushed fires when a segmenting element flushes its buffer.
	EventStreamFlushed
	// EventStreamClosed fires when a segmenting element reaches end of input.
	EventStreamClosed
)

// Event is the unit published on the bus.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Payload   interface{}
}

// SegmentPayload is the payload of EventSegmentEmitted and EventStreamFlushed.
type SegmentPayload struct {
	SessionID string
	SegmentID string
	Text      string
}

// Bus decouples elements from their observers. Publish never blocks.
type Bus interface {
	Subscribe(t EventType, ch chan Event)
	Unsubscribe(t EventType, ch chan Event)
	Publish(evt Event) bool
	Start(ctx context.Context) error
	Stop()
}

var _ Bus = (*EventBus)(nil)

// EventBus is the in-process Bus implementation.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[EventType][]chan Event
	running     bool
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[EventType][]chan Event),
	}
}

func (b *EventBus) Subscribe(t EventType, ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[t] = append(b.subscribers[t], ch)
}

func (b *EventBus) Unsubscribe(t EventType, ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subscribers[t]
	for i, sub := range subs {
		if sub == ch {
			b.subscribers[t] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// Publish delivers evt to every subscriber of its type. A subscriber whose
// channel is full is skipped rather than blocked on. Returns false if any
// subscriber missed the event.
func (b *EventBus) Publish(evt Event) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := true
	for _, ch := range b.subscribers[evt.Type] {
		select {
		case ch <- evt:
		default:
			delivered = false
		}
	}
	return delivered
}

func (b *EventBus) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.running = true
	return nil
}

func (b *EventBus) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.running = false
}
