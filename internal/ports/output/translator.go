package output

import "context"

// Translator interface - Output port
// Defines what the application needs from a machine translation backend.
// Language codes are the portal's fixed set (source plus three targets).
// Implementations return an error on any provider or network failure;
// the degrade-to-original policy lives in the application layer so it
// is applied uniformly to both backends.
type Translator interface {
	// Translate translates text from sourceLang to targetLang.
	// The context carries the per-call timeout; a hung provider must
	// surface as an error, never block the caller indefinitely.
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}
