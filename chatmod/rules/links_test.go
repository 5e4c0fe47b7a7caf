package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chanops/skimmer/chatmod/config"
	"github.com/chanops/skimmer/chatmod/engine"
)

func TestLinkDetector(t *testing.T) {
	assert := assert.New(t)
	eng := engineFixture(config.DefaultConfig())

	decision := processText(eng, "check out google.com")
	if assert.NotNil(decision.Final) {
		assert.Equal("links", decision.Final.Category)
		assert.Equal(engine.TierWarning, decision.Final.Tier)
	}

	assert.Nil(processText(eng, "no links in here").Final)
}

func TestLinkDetectorChannelAllowlist(t *testing.T) {
	assert := assert.New(t)
	cfg := config.DefaultConfig()
	cfg.LinkAllowlist = []string{"google.com"}
	eng := engineFixture(cfg)

	assert.Nil(processText(eng, "try google.com").Final)
	assert.Nil(processText(eng, "try GOOGLE.COM").Final)

	// one uncovered link is enough
	decision := processText(eng, "google.com and evil.com")
	if assert.NotNil(decision.Final) {
		assert.Equal("links", decision.Final.Category)
	}
}

func TestLinkDetectorSharedSet(t *testing.T) {
	assert := assert.New(t)

	// the fixture set allows clips.twitch.tv for every channel
	eng := engineFixture(config.DefaultConfig())
	assert.Nil(processText(eng, "watch clips.twitch.tv later").Final)

	// a path changes the comparison value out from under the set entry
	assert.NotNil(processText(eng, "watch clips.twitch.tv/StrangeClip later").Final)
}

func TestLinkDetectorComparisonValue(t *testing.T) {
	assert := assert.New(t)

	// from the first `?` on, only the query matters for allowlisting
	cfg := config.DefaultConfig()
	cfg.LinkAllowlist = []string{"?ref=chat"}
	eng := engineFixture(cfg)

	assert.Nil(processText(eng, "see evil.com?ref=chat").Final)
	assert.NotNil(processText(eng, "see evil.com?ref=elsewhere").Final)
}

func TestUncoveredLinks(t *testing.T) {
	assert := assert.New(t)

	matches := []string{"google.com", "evil.com?track=1", "CLIPS.twitch.tv"}
	uncovered := UncoveredLinks(matches, []string{"google.com", "clips.twitch.tv"})
	assert.Equal([]string{"?track=1"}, uncovered)

	assert.Empty(UncoveredLinks(nil, []string{"google.com"}))
	assert.Equal([]string{"evil.com"}, UncoveredLinks([]string{"evil.com"}, nil))
}
