package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chanops/skimmer/chatmod/config"
	"github.com/chanops/skimmer/chatmod/engine"
	"github.com/chanops/skimmer/chatmod/textscan"
)

func TestSymbolDetectorRatio(t *testing.T) {
	assert := assert.New(t)

	eng := engineFixture(config.DefaultConfig())
	decision := processText(eng, "?!?!?!")
	if assert.NotNil(decision.Final) {
		assert.Equal("symbols", decision.Final.Category)
	}

	assert.Nil(processText(eng, "just a normal sentence!").Final)
}

func TestSymbolDetectorGroupedRun(t *testing.T) {
	assert := assert.New(t)
	eng := engineFixture(config.DefaultConfig())

	// ratio stays low; the run alone is past the default limit of 8
	decision := processText(eng, "this line just goes --------- nowhere at all")
	if assert.NotNil(decision.Final) {
		assert.Equal("symbols", decision.Final.Category)
	}

	eng = engineFixture(config.DefaultConfig())
	assert.Nil(processText(eng, "this line just goes ------- nowhere at all").Final)
}

func TestSymbolDetectorCountsRawLength(t *testing.T) {
	assert := assert.New(t)
	eng := engineFixture(config.DefaultConfig())

	// emote codes stay in the denominator, so a few symbols next to a wall of
	// emotes is not a flood
	msg := engine.NewTestMessage("Kappa Kappa Kappa !!!")
	msg.Emotes = []textscan.Span{
		{Start: 0, End: 5},
		{Start: 6, End: 11},
		{Start: 12, End: 17},
	}
	assert.Nil(process(eng, msg).Final)
}
