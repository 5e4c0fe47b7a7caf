package config

import (
	"fmt"
	"regexp"
	"strings"
)

// BlocklistMatcher is one blocklist entry with its pattern prepared for
// matching. Matchers are built once when a config loads, never per message.
type BlocklistMatcher struct {
	Entry *BlocklistEntry
	re    *regexp.Regexp
}

func (m *BlocklistMatcher) Match(text string) bool {
	return m.re.MatchString(text)
}

// Compiled is a ChannelConfig plus the matcher state derived from it. This is
// what evaluation consumes; the raw config is what stores persist.
type Compiled struct {
	Cfg       *ChannelConfig
	Blocklist []BlocklistMatcher
	allowlist map[string]bool
}

// Compile builds the matcher state for a config. Literal blocklist phrases
// become case-insensitive substring matchers; regex entries are compiled as
// written. Validate catches bad patterns at write time, so a compile failure
// here means the stored config predates validation or was written around it.
func Compile(cfg *ChannelConfig) (*Compiled, error) {
	out := &Compiled{
		Cfg:       cfg,
		allowlist: make(map[string]bool, len(cfg.LinkAllowlist)),
	}
	for _, v := range cfg.LinkAllowlist {
		out.allowlist[strings.ToLower(v)] = true
	}
	for i := range cfg.Blocklist {
		entry := &cfg.Blocklist[i]
		pattern := entry.Pattern
		if !entry.IsRegex {
			pattern = `(?i)` + regexp.QuoteMeta(entry.Pattern)
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("blocklist[%d]: invalid pattern: %w", i, err)
		}
		out.Blocklist = append(out.Blocklist, BlocklistMatcher{Entry: entry, re: re})
	}
	return out, nil
}

// AllowsLink indicates whether a link comparison value is covered by the
// channel allowlist. Matching is case-insensitive.
func (c *Compiled) AllowsLink(value string) bool {
	return c.allowlist[strings.ToLower(value)]
}

var disabledConfig = Compiled{Cfg: &ChannelConfig{}}

// Disabled returns the shared all-categories-disabled config, used when a
// channel has never been configured or its config cannot be fetched.
func Disabled() *Compiled {
	return &disabledConfig
}
