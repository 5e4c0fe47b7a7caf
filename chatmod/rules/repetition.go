package rules

import (
	"github.com/chanops/skimmer/chatmod/engine"
	"github.com/chanops/skimmer/chatmod/textscan"
)

// RepetitionDetector fires when one character or one word is repeated past
// its configured maximum. Note the strict comparison: a run of exactly the
// maximum is still fine.
type RepetitionDetector struct{}

var _ engine.Detector = (*RepetitionDetector)(nil)

func (d *RepetitionDetector) Name() string { return "repetition" }

func (d *RepetitionDetector) Evaluate(c *engine.MessageContext) *engine.Verdict {
	f := c.Config.Cfg.Repetition
	return evaluateFilter(c, d.Name(), f.FilterBase, func() bool {
		raw := c.Msg.Text
		if textscan.RuneLen(raw) < f.MinLength {
			return false
		}
		if f.MaxChars > 0 && textscan.LongestCharRun(raw) > f.MaxChars {
			return true
		}
		return f.MaxWords > 0 && textscan.LongestWordRun(raw) > f.MaxWords
	})
}
