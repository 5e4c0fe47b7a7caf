package rules

import (
	"github.com/chanops/skimmer/chatmod/engine"
	"github.com/chanops/skimmer/chatmod/textscan"
)

// SymbolFloodDetector fires on symbol-heavy messages, by overall ratio or by
// one long run of a repeated symbol. Both measures use the raw text: emotes
// still take up screen space, so they stay in the denominator.
type SymbolFloodDetector struct{}

var _ engine.Detector = (*SymbolFloodDetector)(nil)

func (d *SymbolFloodDetector) Name() string { return "symbols" }

func (d *SymbolFloodDetector) Evaluate(c *engine.MessageContext) *engine.Verdict {
	f := c.Config.Cfg.Symbols
	return evaluateFilter(c, d.Name(), f.FilterBase, func() bool {
		raw := c.Msg.Text
		if f.MaxPercent > 0 && textscan.SymbolRatio(raw) >= f.MaxPercent {
			return true
		}
		return f.MaxGrouped > 0 && textscan.LongestSymbolRun(raw) >= f.MaxGrouped
	})
}
