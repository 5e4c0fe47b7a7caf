package rules

import (
	"github.com/chanops/skimmer/chatmod/config"
	"github.com/chanops/skimmer/chatmod/engine"
	"github.com/chanops/skimmer/chatmod/textscan"
)

// BlocklistDetector scans the channel's ordered blocklist. The first matching
// entry wins and supplies its own punishment directly; the warning/timeout
// escalation the threshold categories run through does not apply here.
type BlocklistDetector struct{}

var _ engine.Detector = (*BlocklistDetector)(nil)

func (d *BlocklistDetector) Name() string { return "blocklist" }

func (d *BlocklistDetector) Evaluate(c *engine.MessageContext) *engine.Verdict {
	if len(c.Config.Blocklist) == 0 {
		return nil
	}
	if c.HasAnyLevel(alwaysExempt) {
		return nil
	}

	for i := range c.Config.Blocklist {
		m := &c.Config.Blocklist[i]
		if !m.Match(d.scopeText(c, m.Entry.Scope)) {
			continue
		}
		if m.Entry.Punishment.Kind == config.PunishBan {
			// bans are rare and worth a human look
			c.Notify("slack")
		}
		return &engine.Verdict{
			Category:   d.Name(),
			Tier:       engine.TierBlocklist,
			Punishment: m.Entry.Punishment,
		}
	}
	return nil
}

func (d *BlocklistDetector) scopeText(c *engine.MessageContext, scope config.MatchScope) string {
	switch scope {
	case config.ScopeUsername:
		return textscan.Fold(c.Msg.Login)
	case config.ScopeBoth:
		return textscan.Fold(c.Msg.Login) + " " + c.Msg.Text
	default:
		return c.Msg.Text
	}
}
