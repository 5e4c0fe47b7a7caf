package engine

import (
	"github.com/chanops/skimmer/chatmod/config"
)

// Tier records which stage of a detector produced a verdict.
type Tier string

var (
	// first offense within a category
	TierWarning Tier = "warning"
	// repeat offense inside the warning window
	TierTimeout Tier = "timeout"
	// blocklist entries carry their own punishment and skip escalation
	TierBlocklist Tier = "blocklist"
)

// Verdict is one detector's decision to act on a message.
type Verdict struct {
	// detector category, eg "caps" or "blocklist"
	Category   string
	Tier       Tier
	Punishment config.Punishment
}

// Decision is the full outcome for one message: every verdict that fired, in
// detector order, and the single aggregated verdict to enforce.
type Decision struct {
	Message  *Message
	Verdicts []Verdict
	// nil when no detector fired
	Final *Verdict
}

// The most severe punishment kind wins; on a tie the earliest detector in the
// configured order wins.
func aggregateVerdicts(verdicts []Verdict) *Verdict {
	var final *Verdict
	for i := range verdicts {
		v := &verdicts[i]
		if final == nil || v.Punishment.Kind.Severity() > final.Punishment.Kind.Severity() {
			final = v
		}
	}
	return final
}
