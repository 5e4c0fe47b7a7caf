package textscan

import (
	"log/slog"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// runes outside the allowed classes which are still fine to see in chat: the
// plumbing emoji sequences are built from, and the CTCP delimiter framing
// "/me" actions (which the action filter owns, not this one)
var glyphAllowance = map[rune]bool{
	'\x01':   true, // CTCP delimiter
	'‍': true, // zero width joiner
	'︎': true, // variation selector-15 (text style)
	'️': true, // variation selector-16 (emoji style)
	'⃣': true, // combining enclosing keycap
}

// HasDisruptiveGlyphs reports whether s contains any rune outside the letter,
// number, punctuation, symbol, and whitespace classes. Combining marks (the
// building block of "zalgo" text), control characters, and format characters
// all count as disruptive.
func HasDisruptiveGlyphs(s string) bool {
	for _, r := range s {
		if glyphAllowance[r] || unicode.IsSpace(r) {
			continue
		}
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		return true
	}
	return false
}

// Fold lower-cases s and strips diacritics (NFD, drop combining marks, NFC),
// for loose matching of usernames against blocklist patterns.
func Fold(s string) string {
	// the transform chain carries state, so build it per call
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(fold, strings.ToLower(s))
	if err != nil {
		slog.Warn("unicode normalization error", "err", err)
		return strings.ToLower(s)
	}
	return out
}
