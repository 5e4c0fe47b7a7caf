package rules

import (
	"time"

	"github.com/chanops/skimmer/chatmod/engine"
)

// OneManSpamDetector fires when one sender floods the channel with messages.
// The engine observes every message into the rate store before detectors run,
// so the triggering message counts toward its own window.
type OneManSpamDetector struct{}

var _ engine.Detector = (*OneManSpamDetector)(nil)

func (d *OneManSpamDetector) Name() string { return "oneManSpam" }

func (d *OneManSpamDetector) Evaluate(c *engine.MessageContext) *engine.Verdict {
	f := c.Config.Cfg.OneManSpam
	return evaluateFilter(c, d.Name(), f.FilterBase, func() bool {
		if f.MaxMessages <= 0 || f.WindowSeconds <= 0 {
			return false
		}
		window := time.Duration(f.WindowSeconds) * time.Second
		return c.RecentMessageCount(window) >= f.MaxMessages
	})
}
