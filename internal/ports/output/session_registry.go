package output

import "broadcast-service/internal/domain"

// SessionRegistry interface - Output port
// Process-wide map from session identifier to live broadcast state.
// Implementations must be safe under concurrent access from many
// in-flight orchestration tasks; within one session a replace-by-
// timestamp must be atomic with respect to concurrent appends.
type SessionRegistry interface {
	// Create allocates a new session with a fresh identifier and
	// returns it. Sessions live until Remove or the inactivity sweep.
	Create() *domain.Session

	// Get retrieves a session by id. The bool reports existence;
	// absence is a normal outcome, not an error.
	Get(id string) (*domain.Session, bool)

	// Remove tears a session down. Returns false when the session
	// was already absent (idempotent).
	Remove(id string) bool

	// AppendOrReplace writes a non-interim message into the session's
	// history: replaces in place when an entry shares the message's
	// timestamp, appends otherwise, evicting the oldest entries past
	// the history cap. Returns false (no-op) when the session is gone,
	// which in-flight tasks racing a Remove must tolerate.
	AppendOrReplace(id string, msg domain.Message) bool

	// SetLastInterim overwrites the session's single interim slot so a
	// listener joining mid-utterance can replay the partial transcript.
	SetLastInterim(id string, msg domain.Message) bool

	// LastInterim returns the most recent interim message, if any.
	LastInterim(id string) (domain.Message, bool)

	// History returns a copy of the session's message history in
	// chronological order.
	History(id string) ([]domain.Message, bool)
}
