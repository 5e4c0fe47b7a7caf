package textscan

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// RuneLen returns the length of s in runes, which is the length every
// threshold in this package is measured against.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// UppercaseRatio returns the percentage (0-100) of runes in s which are
// upper-case letters. Empty input yields 0.
func UppercaseRatio(s string) float64 {
	var total, upper int
	for _, r := range s {
		total++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(upper) / float64(total) * 100
}

// IsSymbol indicates whether r is one of the ASCII symbol characters counted
// by the symbol scans: `!`..`/`, `:`..`@`, `[`..`` ` ``, and `{`..`~`.
func IsSymbol(r rune) bool {
	switch {
	case r >= '!' && r <= '/':
		return true
	case r >= ':' && r <= '@':
		return true
	case r >= '[' && r <= '`':
		return true
	case r >= '{' && r <= '~':
		return true
	}
	return false
}

// SymbolRatio returns the percentage (0-100) of runes in s which are symbol
// characters. Empty input yields 0.
func SymbolRatio(s string) float64 {
	var total, symbols int
	for _, r := range s {
		total++
		if IsSymbol(r) {
			symbols++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(symbols) / float64(total) * 100
}

// LongestCharRun returns the length of the longest run of one repeated
// non-whitespace character in s. Whitespace breaks a run.
func LongestCharRun(s string) int {
	var longest, run int
	var prev rune
	for _, r := range s {
		if unicode.IsSpace(r) {
			run = 0
			prev = 0
			continue
		}
		if r == prev {
			run++
		} else {
			run = 1
			prev = r
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// LongestWordRun returns the length of the longest run of one identical
// whitespace-delimited word repeated back to back in s.
func LongestWordRun(s string) int {
	var longest, run int
	var prev string
	for _, w := range strings.Fields(s) {
		if w == prev {
			run++
		} else {
			run = 1
			prev = w
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// LongestSymbolRun returns the length of the longest run of one repeated
// symbol character in s. Any non-symbol rune breaks a run.
func LongestSymbolRun(s string) int {
	var longest, run int
	var prev rune
	for _, r := range s {
		if !IsSymbol(r) {
			run = 0
			prev = 0
			continue
		}
		if r == prev {
			run++
		} else {
			run = 1
			prev = r
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
