package rules

import (
	"github.com/chanops/skimmer/chatmod/engine"
)

// DefaultDetectors returns every detector in the canonical evaluation order.
// Order matters twice: blocklist entries should win ties (they carry explicit
// operator intent), and aggregation breaks severity ties toward the earlier
// detector.
func DefaultDetectors() []engine.Detector {
	return []engine.Detector{
		&BlocklistDetector{},
		&LinkDetector{},
		&CapsDetector{},
		&SymbolFloodDetector{},
		&RepetitionDetector{},
		&ZalgoDetector{},
		&EmoteFloodDetector{},
		&LongMessageDetector{},
		&FakePurgeDetector{},
		&ActionDetector{},
		&OneManSpamDetector{},
	}
}
