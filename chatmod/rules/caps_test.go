package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chanops/skimmer/chatmod/config"
	"github.com/chanops/skimmer/chatmod/engine"
	"github.com/chanops/skimmer/chatmod/perms"
	"github.com/chanops/skimmer/chatmod/textscan"
)

func TestCapsDetector(t *testing.T) {
	assert := assert.New(t)

	clean := []string{
		"hello there, how is everyone doing",
		"HI", // loud, but shorter than minLength
		"WOW this is A Fairly Normal message",
		"AAAAAAAAAAAAAA", // one rune short of minLength
	}
	eng := engineFixture(config.DefaultConfig())
	for _, text := range clean {
		decision := processText(eng, text)
		assert.Nil(decision.Final, "text: %q", text)
	}

	loud := []string{
		"AAAAAAAAAAAAAAA", // exactly minLength
		"STOP DOING THAT RIGHT NOW",
		"AAAAAAAAaaaaaaaa", // exactly the ratio threshold
	}
	for _, text := range loud {
		// fresh engine per case so the warning mark from one firing does not
		// escalate the next
		eng := engineFixture(config.DefaultConfig())
		decision := processText(eng, text)
		if assert.NotNil(decision.Final, "text: %q", text) {
			assert.Equal("caps", decision.Final.Category)
			assert.Equal(engine.TierWarning, decision.Final.Tier)
			assert.Equal(config.PunishWarning, decision.Final.Punishment.Kind)
		}
	}
}

func TestCapsDetectorExemptions(t *testing.T) {
	assert := assert.New(t)

	// loud without tripping any other category
	const shouting = "STOP DOING THAT RIGHT NOW"

	for _, level := range []perms.Level{perms.Broadcaster, perms.Moderator} {
		eng := engineFixture(config.DefaultConfig())
		msg := engine.NewTestMessage(shouting)
		msg.Levels = level
		assert.Nil(process(eng, msg).Final, "level: %v", level)
	}

	// subscribers are not exempt unless the channel excludes them
	eng := engineFixture(config.DefaultConfig())
	msg := engine.NewTestMessage(shouting)
	msg.Levels = perms.Subscriber
	assert.NotNil(process(eng, msg).Final)

	cfg := config.DefaultConfig()
	cfg.Caps.ExcludedLevels = perms.Subscriber
	eng = engineFixture(cfg)
	msg = engine.NewTestMessage(shouting)
	msg.Levels = perms.Subscriber
	assert.Nil(process(eng, msg).Final)
}

func TestCapsDetectorIgnoresEmotes(t *testing.T) {
	assert := assert.New(t)
	eng := engineFixture(config.DefaultConfig())

	// raw text is long and loud, but most of it is emote codes; the stripped
	// text is too short to measure
	msg := engine.NewTestMessage("AAAAA Kappa Kappa")
	msg.Emotes = []textscan.Span{{Start: 6, End: 11}, {Start: 12, End: 17}}
	assert.Nil(process(eng, msg).Final)
}

func TestCapsDetectorDisabled(t *testing.T) {
	assert := assert.New(t)
	cfg := config.DefaultConfig()
	cfg.Caps.Enabled = false
	eng := engineFixture(cfg)
	assert.Nil(processText(eng, "STOP DOING THAT RIGHT NOW").Final)
}
