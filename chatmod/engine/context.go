package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/chanops/skimmer/chatmod/config"
	"github.com/chanops/skimmer/chatmod/perms"
	"github.com/chanops/skimmer/chatmod/textscan"
)

// The primary interface exposed to detectors: one message, the channel config
// in force, and indirect access to engine state.
//
// Store accessors on this type fail open: any error is rolled up in the Err
// field and the accessor returns the answer that does not punish the sender.
// Moderation state being unavailable must never cause punishment.
type MessageContext struct {
	// Actual golang "context.Context", if needed for timeouts etc
	Ctx context.Context
	// Any errors encountered while processing methods on this struct get rolled up in this nullable field
	Err error
	// slog logger handle, with message-specific structured fields pre-populated
	Logger *slog.Logger

	Msg    Message
	Config *config.Compiled

	engine  *Engine // NOTE: pointer, but expected never to be nil
	effects *Effects

	plainSet bool
	plain    string
}

func NewMessageContext(ctx context.Context, eng *Engine, msg Message, cfg *config.Compiled) MessageContext {
	return MessageContext{
		Ctx:     ctx,
		Logger:  eng.Logger.With("channel", msg.Channel, "user", msg.Login),
		Msg:     msg,
		Config:  cfg,
		engine:  eng,
		effects: &Effects{},
	}
}

// PlainText returns the message text with emote spans stripped, computed once
// per message no matter how many detectors ask.
func (c *MessageContext) PlainText() string {
	if !c.plainSet {
		c.plain = textscan.Strip(c.Msg.Text, c.Msg.Emotes)
		c.plainSet = true
	}
	return c.plain
}

// HasAnyLevel reports whether the sender holds any of the masked levels,
// merging badge-derived levels with bot-managed grants. A grant-store failure
// counts as exempt: missing permission state must not get anyone timed out.
func (c *MessageContext) HasAnyLevel(mask perms.Level) bool {
	if c.Msg.Levels.HasAny(mask) {
		return true
	}
	if c.engine.Permissions == nil {
		return false
	}
	out, err := c.engine.Permissions.HasAnyLevel(c.Ctx, c.Msg.ChannelID, c.Msg.UserID, mask)
	if err != nil {
		if nil == c.Err {
			c.Err = err
		}
		return true
	}
	return out
}

// InSet checks membership of `val` in the named shared set. Sets gate
// exemptions (link allowlists, known bots), so a store failure reads as a
// member.
func (c *MessageContext) InSet(name, val string) bool {
	out, err := c.engine.Sets.InSet(c.Ctx, name, val)
	if err != nil {
		if nil == c.Err {
			c.Err = err
		}
		return true
	}
	return out
}

// RecentMessageCount returns how many messages the sender has sent in this
// channel within the window ending at this message, the current message
// included. Zero on store failure.
func (c *MessageContext) RecentMessageCount(window time.Duration) int {
	count, err := c.engine.Rates.CountSince(c.Ctx, c.Msg.ChannelID, c.Msg.UserID, c.Msg.At.Add(-window))
	if err != nil {
		if nil == c.Err {
			c.Err = err
		}
		return 0
	}
	return count
}

// RecentlyWarned reports whether the sender has a warning on record within
// the window ending at this message. False on store failure, so a broken
// warning store downgrades repeat offenses to warnings rather than escalating
// on guesswork.
func (c *MessageContext) RecentlyWarned(window time.Duration) bool {
	last, found, err := c.engine.Warnings.LastWarning(c.Ctx, c.Msg.ChannelID, c.Msg.UserID)
	if err != nil {
		if nil == c.Err {
			c.Err = err
		}
		return false
	}
	if !found {
		return false
	}
	return !c.Msg.At.After(last.Add(window))
}

// update effects (indirect) ======

func (c *MessageContext) MarkWarned() {
	c.effects.MarkWarned()
}

func (c *MessageContext) Notify(srv string) {
	c.effects.Notify(srv)
}
