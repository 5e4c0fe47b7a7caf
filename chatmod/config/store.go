package config

import (
	"context"
	"errors"
	"slices"

	"github.com/puzpuzpuz/xsync/v3"
)

var ErrNotFound = errors.New("channel moderation config not found")

// Source is the read side consumed by the evaluation engine.
type Source interface {
	// GetConfig returns the compiled config for a channel, or ErrNotFound if
	// the channel has never been configured.
	GetConfig(ctx context.Context, channelID string) (*Compiled, error)
}

// Store adds the write side used by the admin API. Writes validate before
// persisting, so evaluation never sees a config that fails to compile.
type Store interface {
	Source
	PutConfig(ctx context.Context, channelID string, cfg *ChannelConfig) error
	DeleteConfig(ctx context.Context, channelID string) error
	ListChannels(ctx context.Context) ([]string, error)
}

type MemStore struct {
	configs *xsync.MapOf[string, *Compiled]
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		configs: xsync.NewMapOf[string, *Compiled](),
	}
}

func (s *MemStore) GetConfig(ctx context.Context, channelID string) (*Compiled, error) {
	compiled, ok := s.configs.Load(channelID)
	if !ok {
		return nil, ErrNotFound
	}
	return compiled, nil
}

func (s *MemStore) PutConfig(ctx context.Context, channelID string, cfg *ChannelConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	compiled, err := Compile(cfg)
	if err != nil {
		return err
	}
	s.configs.Store(channelID, compiled)
	return nil
}

func (s *MemStore) DeleteConfig(ctx context.Context, channelID string) error {
	if _, ok := s.configs.LoadAndDelete(channelID); !ok {
		return ErrNotFound
	}
	return nil
}

func (s *MemStore) ListChannels(ctx context.Context) ([]string, error) {
	var out []string
	s.configs.Range(func(channelID string, _ *Compiled) bool {
		out = append(out, channelID)
		return true
	})
	slices.Sort(out)
	return out, nil
}
