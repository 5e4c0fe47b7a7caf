package rules

import (
	"github.com/chanops/skimmer/chatmod/engine"
	"github.com/chanops/skimmer/chatmod/textscan"
)

// CapsDetector fires on a high ratio of upper-case letters. It measures the
// emote-stripped text: emote codes like "Kappa" carry capitals that are not
// shouting.
type CapsDetector struct{}

var _ engine.Detector = (*CapsDetector)(nil)

func (d *CapsDetector) Name() string { return "caps" }

func (d *CapsDetector) Evaluate(c *engine.MessageContext) *engine.Verdict {
	f := c.Config.Cfg.Caps
	return evaluateFilter(c, d.Name(), f.FilterBase, func() bool {
		plain := c.PlainText()
		if textscan.RuneLen(plain) < f.MinLength {
			return false
		}
		// a zero threshold reads as unset, not "everything fires"
		return f.MaxPercent > 0 && textscan.UppercaseRatio(plain) >= f.MaxPercent
	})
}
