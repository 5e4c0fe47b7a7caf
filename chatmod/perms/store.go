package perms

import (
	"context"

	"github.com/puzpuzpuz/xsync/v3"
)

// Store looks up permission grants managed outside of Twitch badges (eg,
// "regular" viewers promoted through bot commands). Grants are merged with
// badge-derived levels by the caller; a store only answers membership.
type Store interface {
	HasAnyLevel(ctx context.Context, channelID, userID string, mask Level) (bool, error)
}

type MemStore struct {
	grants *xsync.MapOf[string, Level]
}

func NewMemStore() *MemStore {
	return &MemStore{
		grants: xsync.NewMapOf[string, Level](),
	}
}

func grantKey(channelID, userID string) string {
	return channelID + "/" + userID
}

// Grant adds levels to the user's grant set in the given channel.
func (s *MemStore) Grant(channelID, userID string, levels Level) {
	s.grants.Compute(grantKey(channelID, userID), func(old Level, _ bool) (Level, bool) {
		return old | levels, false
	})
}

// Revoke removes levels from the user's grant set in the given channel.
func (s *MemStore) Revoke(channelID, userID string, levels Level) {
	s.grants.Compute(grantKey(channelID, userID), func(old Level, loaded bool) (Level, bool) {
		next := old &^ levels
		return next, loaded && next == 0
	})
}

func (s *MemStore) HasAnyLevel(ctx context.Context, channelID, userID string, mask Level) (bool, error) {
	levels, ok := s.grants.Load(grantKey(channelID, userID))
	if !ok {
		return false, nil
	}
	return levels.HasAny(mask), nil
}
