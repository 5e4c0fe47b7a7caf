package engine

import (
	"github.com/chanops/skimmer/chatmod/textscan"
)

func (eng *Engine) persistEffects(c *MessageContext, decision *Decision) {
	if c.effects.RecordWarning {
		if err := eng.Warnings.RecordWarning(c.Ctx, c.Msg.ChannelID, c.Msg.UserID, c.Msg.At); err != nil {
			// the verdict still stands; the next violation just won't escalate
			c.Logger.Error("recording warning failed", "err", err)
		} else {
			warningRecordCount.Inc()
		}
	}

	if eng.Notifier == nil {
		return
	}
	for _, srv := range dedupeStrings(c.effects.NotifyServices) {
		if err := eng.Notifier.Send(c.Ctx, srv, c, decision); err != nil {
			c.Logger.Error("notification failed", "service", srv, "err", err)
		}
	}
}

func (eng *Engine) canonicalLogLine(c *MessageContext, decision *Decision) {
	if decision.Final == nil {
		c.Logger.Debug("message-ok",
			"msgID", c.Msg.ID,
			"textHash", textscan.HashOfString(c.Msg.Text),
		)
		return
	}
	categories := make([]string, len(decision.Verdicts))
	for i, v := range decision.Verdicts {
		categories[i] = v.Category
	}
	c.Logger.Info("message-flagged",
		"msgID", c.Msg.ID,
		"categories", categories,
		"category", decision.Final.Category,
		"tier", decision.Final.Tier,
		"punishment", decision.Final.Punishment.Kind,
		"durationSeconds", decision.Final.Punishment.DurationSeconds,
		"textHash", textscan.HashOfString(c.Msg.Text),
	)
}
