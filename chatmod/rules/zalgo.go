package rules

import (
	"github.com/chanops/skimmer/chatmod/engine"
	"github.com/chanops/skimmer/chatmod/textscan"
)

// ZalgoDetector fires on disruptive glyphs: combining-mark stacks and other
// characters outside the blocks normal chat is written in.
type ZalgoDetector struct{}

var _ engine.Detector = (*ZalgoDetector)(nil)

func (d *ZalgoDetector) Name() string { return "zalgo" }

func (d *ZalgoDetector) Evaluate(c *engine.MessageContext) *engine.Verdict {
	f := c.Config.Cfg.Zalgo
	return evaluateFilter(c, d.Name(), f.FilterBase, func() bool {
		return textscan.HasDisruptiveGlyphs(c.Msg.Text)
	})
}
