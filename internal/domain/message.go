package domain

import (
	"time"
)

// MessageState type - lifecycle state of a broadcast message.
// A message is either an in-progress transcript fragment (interim),
// a fast first-pass translation of a finalized utterance (provisional),
// or the polished second-pass translation (final). Modeling the state
// as one enum keeps interim+provisional unrepresentable.
type MessageState string

const (
	// StateInterim const - in-progress utterance, never persisted to history
	StateInterim MessageState = "INTERIM"
	// StateProvisional const - fast-pass result, subject to replacement
	StateProvisional MessageState = "PROVISIONAL"
	// StateFinal const - quality-pass result, permanent for its timestamp
	StateFinal MessageState = "FINAL"
)

// Message struct - Core domain entity, one unit of broadcast content
type Message struct {
	Original     string            // source-language text
	Translations map[string]string // target language code -> translated text
	Timestamp    time.Time         // identity key for provisional->final replacement
	State        MessageState
}

// Interim reports whether the message is an ephemeral in-progress fragment.
func (m Message) Interim() bool {
	return m.State == StateInterim
}

// Provisional reports whether the message still awaits its quality pass.
func (m Message) Provisional() bool {
	return m.State == StateProvisional
}

// TimestampMillis returns the wire representation of the message timestamp.
func (m Message) TimestampMillis() int64 {
	return m.Timestamp.UnixMilli()
}

// TranslationFor returns the translation for the given target language,
// or the empty string when no entry exists for that language.
func (m Message) TranslationFor(lang string) string {
	return m.Translations[lang]
}

// Session struct - one live classroom broadcast's identity and history
type Session struct {
	ID           string
	Messages     []Message // chronological, capped; interim messages never appear here
	LastInterim  *Message  // single slot for listeners joining mid-utterance
	CreatedAt    time.Time
	LastActivity time.Time // for the inactivity janitor
}
