package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chanops/skimmer/chatmod/config"
)

func TestActionDetector(t *testing.T) {
	assert := assert.New(t)
	cfg := config.DefaultConfig()
	cfg.Action.Enabled = true

	eng := engineFixture(cfg)
	decision := processText(eng, "\x01ACTION waves at chat\x01")
	if assert.NotNil(decision.Final) {
		assert.Equal("action", decision.Final.Category)
	}

	eng = engineFixture(cfg)
	assert.NotNil(processText(eng, "\x01action sneaky lowercase\x01").Final)

	// without the CTCP framing it is an ordinary message
	eng = engineFixture(cfg)
	assert.Nil(processText(eng, "ACTION stations everyone").Final)
}

func TestActionDetectorDisabledByDefault(t *testing.T) {
	assert := assert.New(t)
	eng := engineFixture(config.DefaultConfig())
	assert.Nil(processText(eng, "\x01ACTION waves at chat\x01").Final)
}
