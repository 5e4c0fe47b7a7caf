package textscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasDisruptiveGlyphs(t *testing.T) {
	assert := assert.New(t)

	clean := []string{
		"",
		"regular chat message!",
		"punctuation, \"quotes\" & (parens)",
		"accented létters and ümlauts",
		"日本語のチャット",
		"emoji are fine \U0001F525\U0001F4AF",
		"keycap 1️⃣ sequence",
		"family \U0001F468‍\U0001F469‍\U0001F467",
		"\x01ACTION waves\x01",
	}
	for _, text := range clean {
		assert.False(HasDisruptiveGlyphs(text), "text: %q", text)
	}

	disruptive := []string{
		"h̵̡e͈l͍l͓o̐",
		"z̀ál̂g̃ō",
		"hidden​space",
		"bell\x07char",
		"lone mark ́",
	}
	for _, text := range disruptive {
		assert.True(HasDisruptiveGlyphs(text), "text: %q", text)
	}
}

func TestFold(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		in  string
		out string
	}{
		{"PLAIN", "plain"},
		{"Crème Brûlée", "creme brulee"},
		{"ZÄLGO", "zalgo"},
		{"already folded", "already folded"},
	}
	for _, fix := range fixtures {
		assert.Equal(fix.out, Fold(fix.in), "input: %q", fix.in)
	}
}

func TestHashOfString(t *testing.T) {
	assert := assert.New(t)

	h := HashOfString("some message text")
	assert.Len(h, 16)
	assert.Equal(h, HashOfString("some message text"))
	assert.NotEqual(h, HashOfString("other message text"))
}
