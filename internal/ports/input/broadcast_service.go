package input

import "broadcast-service/internal/domain"

// BroadcastService interface - Input port
// Driving port for the live classroom broadcast pipeline: session
// lifecycle plus the two-phase translation paths. HandleInterim and
// HandleFinal are dispatched as detached tasks by the ingestion
// adapter; neither raises - translation failures degrade to the
// original source text so listeners always see something.
type BroadcastService interface {
	// CreateSession starts a new broadcast and returns its id.
	CreateSession() string

	// EndSession tears a broadcast down. Returns false when the
	// session was already absent.
	EndSession(sessionID string) bool

	// SessionActive reports whether the session currently exists.
	SessionActive(sessionID string) bool

	// History returns the session's persisted message history.
	History(sessionID string) ([]domain.Message, bool)

	// LastInterim returns the session's in-flight interim message, if any.
	LastInterim(sessionID string) (domain.Message, bool)

	// HandleInterim translates an in-progress utterance through the
	// fast backend only and publishes it; history is never touched.
	HandleInterim(sessionID, text string)

	// HandleFinal runs the two-phase pipeline for a finalized
	// utterance: fast provisional pass, then quality final pass
	// replacing it under the same timestamp.
	HandleFinal(sessionID, text string)

	// TargetLanguages returns the configured listener language set.
	TargetLanguages() []string
}
