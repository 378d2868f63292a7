package output

import "broadcast-service/internal/domain"

// CaptionStore interface - Output port
// Optional durable collaborator persisting session lifecycle and
// finalized captions for post-class review. Best-effort only: every
// failure is logged and swallowed by the caller, and running without
// a store affects durability across restarts, never correctness.
type CaptionStore interface {
	// SaveSession records a newly created broadcast session.
	SaveSession(sessionID string) error

	// CloseSession marks a session as ended.
	CloseSession(sessionID string) error

	// SaveCaption persists one finalized caption with its translations.
	SaveCaption(sessionID string, msg domain.Message) error
}
