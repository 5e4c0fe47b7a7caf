// Package ratestore counts recent messages per user per channel, feeding the
// message-rate spam check. Every processed message is observed first, then
// counted, so the triggering message itself is part of its own window.
package ratestore

import (
	"context"
	"time"
)

// observations older than this are dropped; rate windows are configured in
// seconds to minutes, so an hour of history is already generous
const rateRetention = time.Hour

type RateStore interface {
	// Observe records one message from a user at the given time.
	Observe(ctx context.Context, channelID, userID string, at time.Time) error

	// CountSince reports how many observed messages from a user have a time
	// at or after since.
	CountSince(ctx context.Context, channelID, userID string, since time.Time) (int, error)
}

func rateKey(channelID, userID string) string {
	return channelID + "/" + userID
}
