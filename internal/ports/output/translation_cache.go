package output

// TranslationCache interface - Output port
// Bounded, time-expiring store mapping (original text, target language)
// to a previously computed quality translation, letting repeated phrases
// skip the quality backend's latency. Populated only from quality-pass
// results. Absence is a normal, expected outcome.
type TranslationCache interface {
	// Get returns the cached translation for (original, lang), if present.
	Get(original, lang string) (string, bool)

	// Set stores a quality translation for (original, lang).
	Set(original, lang, translation string)
}
