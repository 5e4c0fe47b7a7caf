package engine

import (
	"time"

	"github.com/chanops/skimmer/chatmod/perms"
	"github.com/chanops/skimmer/chatmod/textscan"
)

// Message is one chat line as handed to the engine, already decoded from the
// wire. Text is the raw message body, including the CTCP wrapper for /me
// actions; Emotes are rune spans into Text covering emote codes, as reported
// by the platform.
type Message struct {
	// platform message id, used for dedupe and logging
	ID        string
	ChannelID string
	// channel display name, for logs; ChannelID is the stable key
	Channel     string
	UserID      string
	Login       string
	DisplayName string
	Text        string
	Emotes      []textscan.Span
	// badge-derived permission levels of the sender
	Levels perms.Level
	// platform timestamp of the message; zero means "now"
	At time.Time
}
