// Package textlayout prepares text for the core PDF fonts and decides where
// lines and pages break.
//
// The PDF backend uses the standard Helvetica faces, which only cover the
// WinAnsi code page. Everything drawn goes through Sanitize first.
package textlayout

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// punctuation rewrites typographic characters to ASCII before range filtering.
var punctuation = strings.NewReplacer(
	"→", "->", // rightwards arrow
	"←", "<-", // leftwards arrow
	"—", "--", // em dash
	"–", "-", // en dash
	"“", `"`,
	"”", `"`,
	"„", `"`,
	"‘", "'",
	"’", "'",
	"‚", "'",
	"…", "...",
)

// outOfRange maps every rune the core fonts cannot encode to a space.
var outOfRange = runes.Map(func(r rune) rune {
	if InRange(r) {
		return r
	}
	return ' '
})

// InRange reports whether r is printable ASCII or in the Latin-1 supplement.
func InRange(r rune) bool {
	return (r >= 32 && r <= 126) || (r >= 160 && r <= 255)
}

// Sanitize rewrites s so it only contains characters the core fonts encode.
//
// Composed forms are built first so "e" + combining acute becomes a single
// Latin-1 "é". Arrows, dashes, curly quotes and the ellipsis get ASCII
// replacements; any other rune outside the supported ranges becomes a space.
// Whitespace runs collapse to one space and the result is trimmed.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(s)
	s = punctuation.Replace(s)
	s, _, err := transform.String(outOfRange, s)
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(s), " ")
}
