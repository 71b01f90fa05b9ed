package render

import (
	"fmt"
	"strings"
	"unicode"
)

// sanitizeLine makes user-controlled text safe to draw on one row. Control
// characters cannot reach the terminal as escape sequences: tabs and line
// breaks become spaces, the rest become '?'. Invisible format runes (bidi
// overrides, zero-width joiners, soft hyphens) and line separators are shown
// as code point labels so a name cannot disguise itself.
func sanitizeLine(text string) string {
	if strings.IndexFunc(text, needsSanitizing) < 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		case unicode.IsControl(r):
			b.WriteByte('?')
		case isInvisibleFormat(r):
			fmt.Fprintf(&b, "⟪U+%04X⟫", r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsSanitizing(r rune) bool {
	return unicode.IsControl(r) || isInvisibleFormat(r)
}

func isInvisibleFormat(r rune) bool {
	return unicode.In(r, unicode.Cf, unicode.Zl, unicode.Zp)
}
