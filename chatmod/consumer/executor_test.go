package consumer

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chanops/skimmer/chatmod/config"
	"github.com/chanops/skimmer/chatmod/engine"
)

type fakeSender struct {
	sent []string
}

func (f *fakeSender) SendChat(ctx context.Context, channel string, text string) error {
	f.sent = append(f.sent, channel+": "+text)
	return nil
}

func warningDecision(template string) *engine.Decision {
	msg := engine.NewTestMessage("STOP DOING THAT RIGHT NOW")
	return &engine.Decision{
		Message: &msg,
		Final: &engine.Verdict{
			Category: "caps",
			Tier:     engine.TierWarning,
			Punishment: config.Punishment{
				Kind:    config.PunishWarning,
				Reason:  "caps",
				Message: template,
			},
		},
	}
}

func TestRenderTemplate(t *testing.T) {
	assert := assert.New(t)

	msg := engine.NewTestMessage("hi")
	assert.Equal("SomeViewer, please keep caps under control",
		RenderTemplate("(user), please keep caps under control", &msg))

	msg.DisplayName = ""
	assert.Equal("someviewer, stop", RenderTemplate("(user), stop", &msg))

	assert.Equal("", RenderTemplate("", &msg))
}

func TestChatExecutor(t *testing.T) {
	assert := assert.New(t)

	sender := &fakeSender{}
	x := NewChatExecutor(slog.Default(), sender, 2)

	decision := warningDecision("(user), please keep caps under control")
	assert.NoError(x.Execute(context.Background(), decision))
	assert.Equal([]string{"somestreamer: SomeViewer, please keep caps under control"}, sender.sent)

	// templateless punishments send nothing and burn no budget
	assert.NoError(x.Execute(context.Background(), warningDecision("")))
	assert.Len(sender.sent, 1)

	// the third templated send in the window trips the limiter
	assert.NoError(x.Execute(context.Background(), warningDecision("(user), two")))
	assert.NoError(x.Execute(context.Background(), warningDecision("(user), three")))
	assert.Len(sender.sent, 2)
}

func TestLogExecutor(t *testing.T) {
	assert := assert.New(t)
	x := &LogExecutor{Logger: slog.Default()}
	assert.NoError(x.Execute(context.Background(), warningDecision("(user), easy")))
}
