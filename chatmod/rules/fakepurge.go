package rules

import (
	"strings"

	"github.com/chanops/skimmer/chatmod/engine"
)

// phrases viewers paste to fake a moderator purging their message
var fakePurgePhrases = []string{
	"<message deleted>",
	"<deleted message>",
	"message deleted by a moderator.",
}

// FakePurgeDetector fires on an exact (case-insensitive) fake-purge phrase.
// Substring matches are deliberately ignored: talking *about* a purge is
// fine.
type FakePurgeDetector struct{}

var _ engine.Detector = (*FakePurgeDetector)(nil)

func (d *FakePurgeDetector) Name() string { return "fakePurge" }

func (d *FakePurgeDetector) Evaluate(c *engine.MessageContext) *engine.Verdict {
	f := c.Config.Cfg.FakePurge
	return evaluateFilter(c, d.Name(), f.FilterBase, func() bool {
		for _, phrase := range fakePurgePhrases {
			if strings.EqualFold(c.Msg.Text, phrase) {
				return true
			}
		}
		return false
	})
}
