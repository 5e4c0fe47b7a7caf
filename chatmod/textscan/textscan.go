package textscan

import (
	"slices"
)

// Span marks one emote occurrence in a message, as half-open [Start, End)
// rune offsets in to the raw text. Spans never overlap.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s Span) Width() int {
	return s.End - s.Start
}

// Strip removes every span from raw and returns the remaining text. Spans are
// processed by descending start offset so earlier removals never shift the
// offsets of later ones. Spans reaching outside the text are clamped.
func Strip(raw string, spans []Span) string {
	if len(spans) == 0 {
		return raw
	}
	runes := []rune(raw)
	sorted := slices.Clone(spans)
	slices.SortFunc(sorted, func(a, b Span) int {
		return b.Start - a.Start
	})
	for _, sp := range sorted {
		start, end := sp.Start, sp.End
		if start < 0 {
			start = 0
		}
		if end > len(runes) {
			end = len(runes)
		}
		if start >= end {
			continue
		}
		runes = append(runes[:start], runes[end:]...)
	}
	return string(runes)
}
