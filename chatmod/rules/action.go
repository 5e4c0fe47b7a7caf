package rules

import (
	"strings"

	"github.com/chanops/skimmer/chatmod/engine"
)

// /me messages arrive CTCP-wrapped: "\x01ACTION <text>\x01"
const actionPrefix = "\x01ACTION"

// ActionDetector fires on /me action messages. Off in the default config;
// channels that want plain text only turn it on.
type ActionDetector struct{}

var _ engine.Detector = (*ActionDetector)(nil)

func (d *ActionDetector) Name() string { return "action" }

func (d *ActionDetector) Evaluate(c *engine.MessageContext) *engine.Verdict {
	f := c.Config.Cfg.Action
	return evaluateFilter(c, d.Name(), f.FilterBase, func() bool {
		raw := c.Msg.Text
		return len(raw) >= len(actionPrefix) && strings.EqualFold(raw[:len(actionPrefix)], actionPrefix)
	})
}
