// Package rules implements the moderation detector set: one detector per
// category, every threshold category sharing a single control flow, plus the
// ordered blocklist. Detectors are pure over the message and config; warning
// marks and notifications are enqueued through the context and applied by the
// engine afterwards.
package rules

import (
	"time"

	"github.com/chanops/skimmer/chatmod/config"
	"github.com/chanops/skimmer/chatmod/engine"
	"github.com/chanops/skimmer/chatmod/perms"
)

// exempt from every category, on top of each category's ExcludedLevels
const alwaysExempt = perms.Broadcaster | perms.Moderator

// Shared control flow for the threshold categories: enabled check, then the
// permission check (before any content analysis), then the category test,
// then warning escalation.
func evaluateFilter(c *engine.MessageContext, category string, base config.FilterBase, test func() bool) *engine.Verdict {
	if !base.Enabled {
		return nil
	}
	if c.HasAnyLevel(alwaysExempt | base.ExcludedLevels) {
		return nil
	}
	if !test() {
		return nil
	}
	return escalate(c, category, base)
}

// A firing category escalates to the timeout tier when the sender was warned
// within the channel's warning window. Otherwise it yields the warning tier
// and marks the sender warned; the mark is recorded only on firing, never on
// every message.
func escalate(c *engine.MessageContext, category string, base config.FilterBase) *engine.Verdict {
	window := time.Duration(c.Config.Cfg.WarningWindowSeconds) * time.Second
	if c.RecentlyWarned(window) {
		return &engine.Verdict{Category: category, Tier: engine.TierTimeout, Punishment: base.Timeout}
	}
	c.MarkWarned()
	return &engine.Verdict{Category: category, Tier: engine.TierWarning, Punishment: base.Warning}
}
