// Package preview shortens note text for card and list display.
package preview

import (
	"strings"
	"unicode/utf8"
)

const (
	CardSize    = 100
	PreviewSize = 150
)

// Excerpt returns text cut to at most max runes, followed by "..." when it was
// cut. Short text is returned unchanged.
func Excerpt(text string, max int) string {
	if max <= 0 {
		max = CardSize
	}
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	n := 0
	for i := range text {
		if n == max {
			return text[:i] + "..."
		}
		n++
	}
	return text
}

// FirstLine returns the first non-blank line of text, trimmed.
func FirstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}

// OneLine collapses text onto a single line and cuts it to max runes, for
// table output.
func OneLine(text string, max int) string {
	return Excerpt(strings.Join(strings.Fields(text), " "), max)
}
