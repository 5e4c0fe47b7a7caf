package rules

import (
	"github.com/chanops/skimmer/chatmod/engine"
	"github.com/chanops/skimmer/chatmod/textscan"
)

// LongMessageDetector fires when the raw text runs past the configured
// maximum rune length, emotes included.
type LongMessageDetector struct{}

var _ engine.Detector = (*LongMessageDetector)(nil)

func (d *LongMessageDetector) Name() string { return "longMessage" }

func (d *LongMessageDetector) Evaluate(c *engine.MessageContext) *engine.Verdict {
	f := c.Config.Cfg.LongMessage
	return evaluateFilter(c, d.Name(), f.FilterBase, func() bool {
		return f.MaxLength > 0 && textscan.RuneLen(c.Msg.Text) > f.MaxLength
	})
}
