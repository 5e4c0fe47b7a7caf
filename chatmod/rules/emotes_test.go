package rules

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chanops/skimmer/chatmod/config"
	"github.com/chanops/skimmer/chatmod/engine"
	"github.com/chanops/skimmer/chatmod/textscan"
)

// builds a message of n distinct emote codes and the spans covering them
func emoteWall(n int) (string, []textscan.Span) {
	var b strings.Builder
	var spans []textscan.Span
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		start := b.Len()
		code := fmt.Sprintf("E%02d", i)
		b.WriteString(code)
		spans = append(spans, textscan.Span{Start: start, End: start + len(code)})
	}
	return b.String(), spans
}

func TestEmoteDetectorCount(t *testing.T) {
	assert := assert.New(t)

	eng := engineFixture(config.DefaultConfig())
	msg := engine.NewTestMessage("")
	msg.Text, msg.Emotes = emoteWall(15) // the default limit
	decision := process(eng, msg)
	if assert.NotNil(decision.Final) {
		assert.Equal("emotes", decision.Final.Category)
		assert.Equal(engine.TierWarning, decision.Final.Tier)
	}

	eng = engineFixture(config.DefaultConfig())
	msg = engine.NewTestMessage("")
	msg.Text, msg.Emotes = emoteWall(14)
	assert.Nil(process(eng, msg).Final)
}

func TestEmoteDetectorOnlyEmotes(t *testing.T) {
	assert := assert.New(t)
	cfg := config.DefaultConfig()
	cfg.Emotes.FlagOnlyEmotes = true
	eng := engineFixture(cfg)

	// two emotes and nothing else
	msg := engine.NewTestMessage("")
	msg.Text, msg.Emotes = emoteWall(2)
	decision := process(eng, msg)
	if assert.NotNil(decision.Final) {
		assert.Equal("emotes", decision.Final.Category)
	}

	// any words alongside are enough
	msg = engine.NewTestMessage("E00 hello")
	msg.Emotes = []textscan.Span{{Start: 0, End: 3}}
	assert.Nil(process(eng, msg).Final)

	// a blank message with no emotes is not an emote-only message
	assert.Nil(processText(eng, "   ").Final)
}
