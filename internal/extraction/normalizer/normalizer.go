// Package normalizer prepares decoded résumé text for extraction.
//
// Normalize produces the canonical text: horizontal whitespace runs are
// collapsed and line endings unified, but line breaks survive because the
// regex engine mines experience entries per line. Matchable is the lowercase
// view used exclusively for keyword and pattern matching; the canonical text
// is never mutated, so previews and model prompts keep their original case.
package normalizer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	horizontalWS = regexp.MustCompile(`[^\S\n]+`)
	blankRuns    = regexp.MustCompile(`\n{3,}`)
)

// Normalize collapses whitespace runs within lines, trims each line and
// squeezes runs of blank lines down to one.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = horizontalWS.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	text = strings.Join(lines, "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Matchable returns the lowercase view of text used for matching only
func Matchable(text string) string {
	return strings.ToLower(text)
}

// Preview returns a prefix of text at most limit bytes long. The cut backs
// up to a rune boundary so a multi-byte rune is never split.
func Preview(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit]
}
