package domain

import "strings"

const (
	// DefaultSourceLanguage const - the broadcasting teacher speaks Korean
	DefaultSourceLanguage = "ko"
)

// DefaultTargetLanguages func - the fixed three-language listener set
// used when no target languages are configured.
func DefaultTargetLanguages() []string {
	return []string{"mn", "vi", "zh-CN"}
}

// NormalizeLanguage lowers a language code to its base form so that
// listener locales like "MN" or "vi-VN" match configured target codes.
// Region-qualified codes that are configured verbatim (e.g. "zh-CN")
// are matched before stripping the region.
func NormalizeLanguage(code string, targets []string) string {
	trimmed := strings.TrimSpace(code)
	for _, t := range targets {
		if strings.EqualFold(trimmed, t) {
			return t
		}
	}
	base := strings.ToLower(trimmed)
	if idx := strings.IndexAny(base, "-_"); idx >= 0 {
		base = base[:idx]
	}
	for _, t := range targets {
		lt := strings.ToLower(t)
		if i := strings.IndexAny(lt, "-_"); i >= 0 {
			lt = lt[:i]
		}
		if base == lt {
			return t
		}
	}
	return trimmed
}
