package memory

import (
	"sync"

	"broadcast-service/internal/domain"
	"broadcast-service/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure EventBus implements the output port
var _ output.EventBus = (*EventBus)(nil)

// Per-subscriber channel depth. A listener that falls further behind
// than this loses events rather than stalling the orchestrator.
const subscriberBufferSize = 32

// EventBus struct - Output adapter for in-process event fan-out
// One subscriber map per session id; publish walks the current
// subscribers and performs a non-blocking send into each channel.
type EventBus struct {
	mu       sync.RWMutex
	nextID   int
	sessions map[string]map[int]chan domain.Message
}

// NewEventBus creates a new in-process event bus.
func NewEventBus() *EventBus {
	return &EventBus{
		sessions: make(map[string]map[int]chan domain.Message),
	}
}

// Publish delivers msg to every current subscriber of the session.
// No subscribers means no work; slow subscribers drop the event.
func (b *EventBus) Publish(sessionID string, msg domain.Message) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.sessions[sessionID] {
		select {
		case ch <- msg:
		default:
			logrus.Warnf("Dropping broadcast event for slow listener %d on session %s", id, sessionID)
		}
	}
}

// Subscribe registers a listener for the session. The returned cancel
// func deregisters the listener and closes its channel; calling it more
// than once is safe.
func (b *EventBus) Subscribe(sessionID string) (<-chan domain.Message, func()) {
	ch := make(chan domain.Message, subscriberBufferSize)

	b.mu.Lock()
	subs, ok := b.sessions[sessionID]
	if !ok {
		subs = make(map[int]chan domain.Message)
		b.sessions[sessionID] = subs
	}
	id := b.nextID
	b.nextID++
	subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			if subs, ok := b.sessions[sessionID]; ok {
				delete(subs, id)
				if len(subs) == 0 {
					delete(b.sessions, sessionID)
				}
			}
			b.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

// SubscriberCount reports the number of listeners on a session.
func (b *EventBus) SubscriberCount(sessionID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.sessions[sessionID])
}
