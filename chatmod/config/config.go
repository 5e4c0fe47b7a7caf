package config

import (
	"github.com/chanops/skimmer/chatmod/perms"
)

// PunishmentKind is what actually happens to a sender when a verdict lands.
type PunishmentKind string

const (
	PunishNone    PunishmentKind = "none"
	PunishWarning PunishmentKind = "warning"
	PunishTimeout PunishmentKind = "timeout"
	PunishBan     PunishmentKind = "ban"
)

// Severity orders kinds for aggregation across filters: ban > timeout >
// warning > none. Unknown kinds sort below none.
func (k PunishmentKind) Severity() int {
	switch k {
	case PunishNone:
		return 0
	case PunishWarning:
		return 1
	case PunishTimeout:
		return 2
	case PunishBan:
		return 3
	}
	return -1
}

// Punishment is one enforcement outcome: the action kind, how long it lasts
// (timeouts only), a short reason code, and the chat message template sent to
// the offender. Template rendering happens downstream; this package carries
// the raw string.
type Punishment struct {
	Kind            PunishmentKind `json:"kind"`
	DurationSeconds int            `json:"durationSeconds,omitempty"`
	Reason          string         `json:"reason,omitempty"`
	Message         string         `json:"message,omitempty"`
}

// FilterBase carries the settings shared by every threshold filter category:
// whether it runs at all, which permission levels are exempt on top of the
// always-exempt broadcaster and moderators, and the two escalation tiers.
type FilterBase struct {
	Enabled        bool        `json:"enabled"`
	ExcludedLevels perms.Level `json:"excludedLevels,omitempty"`
	Warning        Punishment  `json:"warning"`
	Timeout        Punishment  `json:"timeout"`
}

type CapsFilter struct {
	FilterBase
	// messages shorter than MinLength runes (emotes stripped) never trigger
	MinLength  int     `json:"minLength"`
	MaxPercent float64 `json:"maxPercent"`
}

type ActionFilter struct {
	FilterBase
}

type EmoteFilter struct {
	FilterBase
	MaxAllowed int `json:"maxAllowed"`
	// also trigger when a message is nothing but emotes
	FlagOnlyEmotes bool `json:"flagOnlyEmotes,omitempty"`
}

type FakePurgeFilter struct {
	FilterBase
}

type LinkFilter struct {
	FilterBase
}

type LongMessageFilter struct {
	FilterBase
	MaxLength int `json:"maxLength"`
}

type OneManSpamFilter struct {
	FilterBase
	MaxMessages   int `json:"maxMessages"`
	WindowSeconds int `json:"windowSeconds"`
}

type RepetitionFilter struct {
	FilterBase
	// messages shorter than MinLength runes never trigger
	MinLength int `json:"minLength"`
	MaxChars  int `json:"maxChars"`
	MaxWords  int `json:"maxWords"`
}

type SymbolFilter struct {
	FilterBase
	MaxPercent float64 `json:"maxPercent"`
	MaxGrouped int     `json:"maxGrouped"`
}

type ZalgoFilter struct {
	FilterBase
}

// MatchScope selects which text a blocklist entry is matched against.
type MatchScope string

const (
	ScopeMessage  MatchScope = "message"
	ScopeUsername MatchScope = "username"
	ScopeBoth     MatchScope = "both"
)

// BlocklistEntry is one ordered blocklist rule. Entries are evaluated in
// configured order, the first match wins, and the matched entry supplies its
// own punishment directly (no warning escalation).
type BlocklistEntry struct {
	Pattern    string     `json:"pattern"`
	IsRegex    bool       `json:"isRegex,omitempty"`
	Scope      MatchScope `json:"scope"`
	Punishment Punishment `json:"punishment"`
	Note       string     `json:"note,omitempty"`
}

// ChannelConfig is the full per-channel moderation ruleset. A channel with no
// stored config is treated as all categories disabled, not an error.
type ChannelConfig struct {
	Caps        CapsFilter        `json:"caps"`
	Action      ActionFilter      `json:"action"`
	Emotes      EmoteFilter       `json:"emotes"`
	FakePurge   FakePurgeFilter   `json:"fakePurge"`
	Links       LinkFilter        `json:"links"`
	LongMessage LongMessageFilter `json:"longMessage"`
	OneManSpam  OneManSpamFilter  `json:"oneManSpam"`
	Repetition  RepetitionFilter  `json:"repetition"`
	Symbols     SymbolFilter      `json:"symbols"`
	Zalgo       ZalgoFilter       `json:"zalgo"`

	// a warning-tier verdict inside this window escalates the next violation
	// to the timeout tier
	WarningWindowSeconds int `json:"warningWindowSeconds"`

	Blocklist     []BlocklistEntry `json:"blocklist,omitempty"`
	LinkAllowlist []string         `json:"linkAllowlist,omitempty"`
}

// DefaultConfig returns the ruleset a channel starts with: the usual spam
// categories on with conservative thresholds, warnings as chat messages, and
// ten-minute timeouts on escalation.
func DefaultConfig() *ChannelConfig {
	base := func(reason, warnMsg string) FilterBase {
		return FilterBase{
			Enabled: true,
			Warning: Punishment{
				Kind:    PunishWarning,
				Reason:  reason,
				Message: warnMsg,
			},
			Timeout: Punishment{
				Kind:            PunishTimeout,
				DurationSeconds: 600,
				Reason:          reason,
				Message:         "(user), you were warned",
			},
		}
	}

	cfg := &ChannelConfig{
		Caps: CapsFilter{
			FilterBase: base("caps", "(user), please keep caps under control"),
			MinLength:  15,
			MaxPercent: 50,
		},
		Action: ActionFilter{
			// off by default: lots of channels are fine with /me
			FilterBase: FilterBase{
				Warning: Punishment{Kind: PunishWarning, Reason: "action", Message: "(user), no action messages please"},
				Timeout: Punishment{Kind: PunishTimeout, DurationSeconds: 600, Reason: "action", Message: "(user), you were warned"},
			},
		},
		Emotes: EmoteFilter{
			FilterBase: base("emotes", "(user), easy on the emotes"),
			MaxAllowed: 15,
		},
		FakePurge: FakePurgeFilter{
			FilterBase: base("fake-purge", "(user), only moderators purge messages"),
		},
		Links: LinkFilter{
			FilterBase: base("links", "(user), ask a moderator before posting links"),
		},
		LongMessage: LongMessageFilter{
			FilterBase: base("long-message", "(user), please keep messages shorter"),
			MaxLength:  300,
		},
		OneManSpam: OneManSpamFilter{
			FilterBase:    base("spam", "(user), slow down a little"),
			MaxMessages:   10,
			WindowSeconds: 30,
		},
		Repetition: RepetitionFilter{
			FilterBase: base("repetition", "(user), we heard you the first time"),
			MinLength:  15,
			MaxChars:   10,
			MaxWords:   5,
		},
		Symbols: SymbolFilter{
			FilterBase: base("symbols", "(user), easy on the symbols"),
			MaxPercent: 50,
			MaxGrouped: 8,
		},
		Zalgo: ZalgoFilter{
			FilterBase: base("zalgo", "(user), please keep chat readable"),
		},
		WarningWindowSeconds: 60,
	}
	return cfg
}
