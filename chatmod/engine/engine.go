package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/chanops/skimmer/chatmod/config"
	"github.com/chanops/skimmer/chatmod/perms"
	"github.com/chanops/skimmer/chatmod/ratestore"
	"github.com/chanops/skimmer/chatmod/setstore"
	"github.com/chanops/skimmer/chatmod/warnstore"
)

// runtime for evaluating chat messages against per-channel moderation rules,
// managing escalation state, and handing decisions back to the caller.
//
// Careful when initializing: only the fields marked optional may be left nil.
type Engine struct {
	Logger    *slog.Logger
	Detectors []Detector
	Configs   config.Source
	Warnings  warnstore.WarningStore
	Rates     ratestore.RateStore
	Sets      setstore.SetStore
	// optional; nil means badge-derived levels only
	Permissions perms.Store
	// optional; used to notify services about enforcement actions
	Notifier Notifier
	// overridable for tests; nil means time.Now
	Clock func() time.Time
}

// ProcessMessage evaluates one chat message and returns the moderation
// decision. Enforcement is the caller's job.
//
// A message is never *rejected* because moderation state was unavailable:
// config fetch errors evaluate against an all-disabled config, and store
// failures inside detectors fail open. The only error returned is the
// caller's own context cancellation, in which case no side effects were
// persisted.
func (eng *Engine) ProcessMessage(ctx context.Context, msg Message) (*Decision, error) {
	// similar to an HTTP server, we want to recover any panics from rule execution
	defer func() {
		if r := recover(); r != nil {
			eng.Logger.Error("chatmod message evaluation exception", "err", r, "channel", msg.Channel, "msgID", msg.ID)
		}
	}()
	start := time.Now()

	if msg.At.IsZero() {
		msg.At = eng.now()
	}

	cfg, err := eng.Configs.GetConfig(ctx, msg.ChannelID)
	if err != nil {
		if !errors.Is(err, config.ErrNotFound) {
			eng.Logger.Warn("channel config fetch failed, treating all categories as disabled", "channelID", msg.ChannelID, "err", err)
		}
		cfg = config.Disabled()
	}

	// observe before evaluating, so the current message counts toward its own
	// rate window
	if err := eng.Rates.Observe(ctx, msg.ChannelID, msg.UserID, msg.At); err != nil {
		eng.Logger.Warn("message rate observation failed", "channelID", msg.ChannelID, "err", err)
	}

	c := NewMessageContext(ctx, eng, msg, cfg)
	decision := &Decision{Message: &c.Msg}
	for _, det := range eng.Detectors {
		if v := det.Evaluate(&c); v != nil {
			decision.Verdicts = append(decision.Verdicts, *v)
		}
	}
	decision.Final = aggregateVerdicts(decision.Verdicts)

	if c.Err != nil {
		c.Logger.Warn("store lookups failed during evaluation, failed open", "err", c.Err)
	}

	// if the caller gave up mid-evaluation, leave no state behind
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	eng.persistEffects(&c, decision)
	eng.canonicalLogLine(&c, decision)

	outcome := "clean"
	if decision.Final != nil {
		outcome = string(decision.Final.Punishment.Kind)
		for _, v := range decision.Verdicts {
			detectorFiredCount.WithLabelValues(v.Category).Inc()
		}
	}
	messageProcessedCount.WithLabelValues(outcome).Inc()
	messageProcessDuration.Observe(time.Since(start).Seconds())
	return decision, nil
}

func (eng *Engine) now() time.Time {
	if eng.Clock != nil {
		return eng.Clock()
	}
	return time.Now()
}
