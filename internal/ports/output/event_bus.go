package output

import "broadcast-service/internal/domain"

// EventBus interface - Output port
// In-process publish/subscribe keyed by session id, decoupling the
// orchestrator from any number of concurrently connected listeners.
// Delivery is best-effort with no buffering of past events: a listener
// that was absent at publish time relies on history and last-interim
// replay instead.
type EventBus interface {
	// Publish delivers a message to every current subscriber of the
	// session. Publishing with no subscribers is a no-op.
	Publish(sessionID string, msg domain.Message)

	// Subscribe registers a listener for the session and returns the
	// delivery channel plus an unsubscribe func. Unsubscribe closes
	// the channel and must be called on listener disconnect so no
	// dangling subscriptions remain.
	Subscribe(sessionID string) (<-chan domain.Message, func())
}
