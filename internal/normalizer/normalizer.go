// Package normalizer prepares raw query text for retrieval and caching.
package normalizer

import (
	"regexp"
	"strings"
)

var (
	unsupportedRe = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?]`)
	spaceRe       = regexp.MustCompile(`\s+`)
)

// Normalize lowercases the input, replaces characters outside letters,
// digits, underscore, whitespace and basic punctuation with a space,
// collapses whitespace runs and trims. Idempotent; empty output means the
// caller has no valid query to work with.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = unsupportedRe.ReplaceAllString(text, " ")
	text = spaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
