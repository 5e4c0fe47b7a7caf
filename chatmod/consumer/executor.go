package consumer

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/RussellLuo/slidingwindow"

	"github.com/chanops/skimmer/chatmod/engine"
)

// Executor is the enforcement boundary: it receives every decision whose
// final verdict fired and carries out (or just records) the outcome. Acting
// against the Twitch moderation APIs is left to implementations outside this
// repo.
type Executor interface {
	Execute(ctx context.Context, decision *engine.Decision) error
}

// LogExecutor records decisions without acting on them. Useful for dry runs
// against live chat.
type LogExecutor struct {
	Logger *slog.Logger
}

var _ Executor = (*LogExecutor)(nil)

func (x *LogExecutor) Execute(ctx context.Context, decision *engine.Decision) error {
	final := decision.Final
	x.Logger.Info("moderation verdict",
		"channel", decision.Message.Channel,
		"login", decision.Message.Login,
		"category", final.Category,
		"tier", final.Tier,
		"punishment", final.Punishment.Kind,
		"durationSeconds", final.Punishment.DurationSeconds,
	)
	return nil
}

// ChatSender is the outbound half of a chat connection.
type ChatSender interface {
	SendChat(ctx context.Context, channel string, text string) error
}

// ChatExecutor answers verdicts in chat with the punishment's configured
// message template. Outbound lines run through a sliding window limiter so a
// spam wave cannot turn the bot itself into a spammer.
type ChatExecutor struct {
	Logger *slog.Logger
	Sender ChatSender

	lim *slidingwindow.Limiter
}

var _ Executor = (*ChatExecutor)(nil)

// NewChatExecutor builds a chat executor sending at most perWindow lines per
// 30 seconds, which is the Twitch limit window for ordinary bot accounts.
func NewChatExecutor(logger *slog.Logger, sender ChatSender, perWindow int64) *ChatExecutor {
	lim, _ := slidingwindow.NewLimiter(30*time.Second, perWindow, func() (slidingwindow.Window, slidingwindow.StopFunc) {
		return slidingwindow.NewLocalWindow()
	})
	return &ChatExecutor{
		Logger: logger,
		Sender: sender,
		lim:    lim,
	}
}

func (x *ChatExecutor) Execute(ctx context.Context, decision *engine.Decision) error {
	text := RenderTemplate(decision.Final.Punishment.Message, decision.Message)
	if text == "" {
		return nil
	}
	if !x.lim.Allow() {
		chatSendDroppedCount.Inc()
		x.Logger.Warn("chat response dropped by outbound rate limit",
			"channel", decision.Message.Channel, "category", decision.Final.Category)
		return nil
	}
	chatSendCount.Inc()
	return x.Sender.SendChat(ctx, decision.Message.Channel, text)
}

// RenderTemplate fills the (user) placeholder in a punishment message
// template with the sender's display name.
func RenderTemplate(tmpl string, msg *engine.Message) string {
	name := msg.DisplayName
	if name == "" {
		name = msg.Login
	}
	return strings.ReplaceAll(tmpl, "(user)", name)
}
