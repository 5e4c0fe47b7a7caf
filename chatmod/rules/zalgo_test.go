package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chanops/skimmer/chatmod/config"
)

func TestZalgoDetector(t *testing.T) {
	assert := assert.New(t)

	eng := engineFixture(config.DefaultConfig())
	decision := processText(eng, "ḧ̶́e͑l͓l͜o͠ chat")
	if assert.NotNil(decision.Final) {
		assert.Equal("zalgo", decision.Final.Category)
	}

	clean := []string{
		"howdy chat",
		"café time",       // precomposed accents are fine
		"nice clip \U0001F525", // emoji are symbols, not marks
		"1️⃣ first",  // keycap sequence rides the allowance
	}
	eng = engineFixture(config.DefaultConfig())
	for _, text := range clean {
		assert.Nil(processText(eng, text).Final, "text: %q", text)
	}
}
