// Package warnstore tracks when each user in a channel was last warned.
//
// The evaluation engine reads this to decide whether a fresh violation
// escalates from a warning to a timeout, so the one invariant that matters is
// that a recorded warning time never moves backwards: concurrent writers for
// the same user must converge on the latest timestamp.
package warnstore

import (
	"context"
	"time"
)

type WarningStore interface {
	// LastWarning returns the most recent warning time on record for a user
	// in a channel. The bool reports whether any warning is on record.
	LastWarning(ctx context.Context, channelID, userID string) (time.Time, bool, error)

	// RecordWarning stores a warning issued at the given time. Stale writes
	// (older than the stored time) are ignored.
	RecordWarning(ctx context.Context, channelID, userID string, at time.Time) error
}
