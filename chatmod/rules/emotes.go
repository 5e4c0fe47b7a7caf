package rules

import (
	"strings"

	"github.com/chanops/skimmer/chatmod/engine"
)

// EmoteFloodDetector fires on too many emotes, and optionally on messages
// which are nothing but emotes.
type EmoteFloodDetector struct{}

var _ engine.Detector = (*EmoteFloodDetector)(nil)

func (d *EmoteFloodDetector) Name() string { return "emotes" }

func (d *EmoteFloodDetector) Evaluate(c *engine.MessageContext) *engine.Verdict {
	f := c.Config.Cfg.Emotes
	return evaluateFilter(c, d.Name(), f.FilterBase, func() bool {
		count := len(c.Msg.Emotes)
		if f.MaxAllowed > 0 && count >= f.MaxAllowed {
			return true
		}
		return f.FlagOnlyEmotes && count > 0 && strings.TrimSpace(c.PlainText()) == ""
	})
}
