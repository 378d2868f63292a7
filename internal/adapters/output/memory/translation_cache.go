package memory

import (
	"time"

	"broadcast-service/internal/ports/output"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Compile-time check to ensure TranslationCache implements the output port
var _ output.TranslationCache = (*TranslationCache)(nil)

// TranslationCache struct - Output adapter caching quality translations
// Keyed by (target language, original text); capacity-bounded LRU with
// a fixed TTL from insertion. Only quality-pass results are stored so a
// hit always serves polished text.
type TranslationCache struct {
	lru *expirable.LRU[string, string]
}

// NewTranslationCache creates a cache holding at most capacity entries,
// each expiring ttl after insertion.
func NewTranslationCache(capacity int, ttl time.Duration) *TranslationCache {
	return &TranslationCache{
		lru: expirable.NewLRU[string, string](capacity, nil, ttl),
	}
}

// Get returns the cached translation for (original, lang), if present.
func (c *TranslationCache) Get(original, lang string) (string, bool) {
	return c.lru.Get(cacheKey(original, lang))
}

// Set stores a quality translation for (original, lang).
func (c *TranslationCache) Set(original, lang, translation string) {
	c.lru.Add(cacheKey(original, lang), translation)
}

// Len reports the number of live entries.
func (c *TranslationCache) Len() int {
	return c.lru.Len()
}

func cacheKey(original, lang string) string {
	// NUL never appears in language codes, so the key cannot collide
	return lang + "\x00" + original
}
