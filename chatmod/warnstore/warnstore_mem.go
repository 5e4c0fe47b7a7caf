package warnstore

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

type MemWarningStore struct {
	warnings *xsync.MapOf[string, int64]
}

var _ WarningStore = (*MemWarningStore)(nil)

func NewMemWarningStore() *MemWarningStore {
	return &MemWarningStore{
		warnings: xsync.NewMapOf[string, int64](),
	}
}

func warningKey(channelID, userID string) string {
	return channelID + "/" + userID
}

func (s *MemWarningStore) LastWarning(ctx context.Context, channelID, userID string) (time.Time, bool, error) {
	ms, ok := s.warnings.Load(warningKey(channelID, userID))
	if !ok {
		return time.Time{}, false, nil
	}
	return time.UnixMilli(ms), true, nil
}

func (s *MemWarningStore) RecordWarning(ctx context.Context, channelID, userID string, at time.Time) error {
	ms := at.UnixMilli()
	s.warnings.Compute(warningKey(channelID, userID), func(old int64, loaded bool) (int64, bool) {
		if loaded && old > ms {
			return old, false
		}
		return ms, false
	})
	return nil
}
