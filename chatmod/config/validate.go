package config

import (
	"fmt"
	"regexp"
	"strings"
)

func validKind(k PunishmentKind) bool {
	switch k {
	case PunishNone, PunishWarning, PunishTimeout, PunishBan:
		return true
	}
	return false
}

func validScope(s MatchScope) bool {
	switch s {
	case ScopeMessage, ScopeUsername, ScopeBoth:
		return true
	}
	return false
}

func checkPunishment(problems []string, field string, p Punishment) []string {
	if !validKind(p.Kind) {
		problems = append(problems, fmt.Sprintf("%s: unknown punishment kind %q", field, p.Kind))
	}
	if p.DurationSeconds < 0 {
		problems = append(problems, fmt.Sprintf("%s: negative duration", field))
	}
	return problems
}

func checkFilter(problems []string, name string, f FilterBase) []string {
	problems = checkPunishment(problems, name+".warning", f.Warning)
	problems = checkPunishment(problems, name+".timeout", f.Timeout)
	return problems
}

func checkPercent(problems []string, field string, v float64) []string {
	if v < 0 || v > 100 {
		problems = append(problems, fmt.Sprintf("%s: percentage out of range: %v", field, v))
	}
	return problems
}

func checkCount(problems []string, field string, v int) []string {
	if v < 0 {
		problems = append(problems, fmt.Sprintf("%s: negative count", field))
	}
	return problems
}

// Validate rejects configs which could fail later at evaluation time.
// Malformed blocklist patterns in particular must never get past a write:
// evaluation assumes every stored pattern compiles.
func (c *ChannelConfig) Validate() error {
	var problems []string

	problems = checkFilter(problems, "caps", c.Caps.FilterBase)
	problems = checkCount(problems, "caps.minLength", c.Caps.MinLength)
	problems = checkPercent(problems, "caps.maxPercent", c.Caps.MaxPercent)

	problems = checkFilter(problems, "action", c.Action.FilterBase)

	problems = checkFilter(problems, "emotes", c.Emotes.FilterBase)
	problems = checkCount(problems, "emotes.maxAllowed", c.Emotes.MaxAllowed)

	problems = checkFilter(problems, "fakePurge", c.FakePurge.FilterBase)
	problems = checkFilter(problems, "links", c.Links.FilterBase)

	problems = checkFilter(problems, "longMessage", c.LongMessage.FilterBase)
	problems = checkCount(problems, "longMessage.maxLength", c.LongMessage.MaxLength)

	problems = checkFilter(problems, "oneManSpam", c.OneManSpam.FilterBase)
	problems = checkCount(problems, "oneManSpam.maxMessages", c.OneManSpam.MaxMessages)
	problems = checkCount(problems, "oneManSpam.windowSeconds", c.OneManSpam.WindowSeconds)

	problems = checkFilter(problems, "repetition", c.Repetition.FilterBase)
	problems = checkCount(problems, "repetition.minLength", c.Repetition.MinLength)
	problems = checkCount(problems, "repetition.maxChars", c.Repetition.MaxChars)
	problems = checkCount(problems, "repetition.maxWords", c.Repetition.MaxWords)

	problems = checkFilter(problems, "symbols", c.Symbols.FilterBase)
	problems = checkPercent(problems, "symbols.maxPercent", c.Symbols.MaxPercent)
	problems = checkCount(problems, "symbols.maxGrouped", c.Symbols.MaxGrouped)

	problems = checkFilter(problems, "zalgo", c.Zalgo.FilterBase)

	problems = checkCount(problems, "warningWindowSeconds", c.WarningWindowSeconds)

	for i, entry := range c.Blocklist {
		field := fmt.Sprintf("blocklist[%d]", i)
		if entry.Pattern == "" {
			problems = append(problems, field+": empty pattern")
		} else if entry.IsRegex {
			if _, err := regexp.Compile(entry.Pattern); err != nil {
				problems = append(problems, fmt.Sprintf("%s: invalid pattern: %v", field, err))
			}
		}
		if !validScope(entry.Scope) {
			problems = append(problems, fmt.Sprintf("%s: unknown match scope %q", field, entry.Scope))
		}
		problems = checkPunishment(problems, field+".punishment", entry.Punishment)
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid moderation config: %s", strings.Join(problems, "; "))
	}
	return nil
}
