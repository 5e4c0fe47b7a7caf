package rules

import (
	"strings"

	"github.com/chanops/skimmer/chatmod/engine"
	"github.com/chanops/skimmer/chatmod/textscan"
)

// shared set consulted for links allowed across all channels, on top of each
// channel's own allowlist
const LinkAllowlistSetName = "link-allowlist"

// LinkDetector fires when the message carries a link whose comparison value
// is covered by neither the channel allowlist nor the shared allowlist set.
type LinkDetector struct{}

var _ engine.Detector = (*LinkDetector)(nil)

func (d *LinkDetector) Name() string { return "links" }

func (d *LinkDetector) Evaluate(c *engine.MessageContext) *engine.Verdict {
	f := c.Config.Cfg.Links
	return evaluateFilter(c, d.Name(), f.FilterBase, func() bool {
		matches := textscan.ExtractLinks(c.Msg.Text)
		if len(matches) == 0 {
			return false
		}
		for _, match := range matches {
			value := textscan.LinkComparisonValue(match)
			if c.Config.AllowsLink(value) {
				continue
			}
			if c.InSet(LinkAllowlistSetName, strings.ToLower(value)) {
				continue
			}
			return true
		}
		return false
	})
}

// UncoveredLinks returns the comparison values of the given link matches not
// covered case-insensitively by the allowlist. Order is preserved.
func UncoveredLinks(matches []string, allowlist []string) []string {
	allowed := make(map[string]bool, len(allowlist))
	for _, v := range allowlist {
		allowed[strings.ToLower(v)] = true
	}
	var out []string
	for _, match := range matches {
		value := textscan.LinkComparisonValue(match)
		if !allowed[strings.ToLower(value)] {
			out = append(out, value)
		}
	}
	return out
}
