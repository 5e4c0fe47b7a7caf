package config

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/chanops/skimmer/chatmod/cachestore"
)

const cacheName = "modcfg"

// marker cached in the shared tier for channels with no stored config; real
// entries are JSON objects, so this can never collide
const negativeEntry = "!"

// Cached wraps a Store with a process-local compiled-config cache and an
// optional shared string cache (Redis in production). The engine reads a
// config for every chat line; without this layer each line would cost a
// database read plus a regex compile.
type Cached struct {
	Inner  Store
	Shared cachestore.CacheStore

	local *expirable.LRU[string, *Compiled]
}

var _ Store = (*Cached)(nil)

// NewCached builds the caching decorator. shared may be nil in
// single-process deployments; the local tier always applies.
func NewCached(inner Store, shared cachestore.CacheStore, capacity int, ttl time.Duration) *Cached {
	return &Cached{
		Inner:  inner,
		Shared: shared,
		local:  expirable.NewLRU[string, *Compiled](capacity, nil, ttl),
	}
}

func (s *Cached) GetConfig(ctx context.Context, channelID string) (*Compiled, error) {
	if compiled, ok := s.local.Get(channelID); ok {
		if compiled == nil {
			return nil, ErrNotFound
		}
		return compiled, nil
	}

	if s.Shared != nil {
		raw, err := s.Shared.Get(ctx, cacheName, channelID)
		if err == nil {
			if raw == negativeEntry {
				s.local.Add(channelID, nil)
				return nil, ErrNotFound
			}
			var cfg ChannelConfig
			if jerr := json.Unmarshal([]byte(raw), &cfg); jerr == nil {
				if compiled, cerr := Compile(&cfg); cerr == nil {
					s.local.Add(channelID, compiled)
					return compiled, nil
				}
			}
			// corrupt entry: drop it and fall through to the inner store
			slog.Warn("discarding corrupt cached moderation config", "channelID", channelID)
			_ = s.Shared.Purge(ctx, cacheName, channelID)
		} else if !errors.Is(err, cachestore.ErrNotFound) {
			// shared cache down: keep serving from the inner store
			slog.Warn("shared config cache read failed", "channelID", channelID, "err", err)
		}
	}

	compiled, err := s.Inner.GetConfig(ctx, channelID)
	if errors.Is(err, ErrNotFound) {
		s.local.Add(channelID, nil)
		if s.Shared != nil {
			_ = s.Shared.Set(ctx, cacheName, channelID, negativeEntry)
		}
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.local.Add(channelID, compiled)
	if s.Shared != nil {
		if blob, jerr := json.Marshal(compiled.Cfg); jerr == nil {
			_ = s.Shared.Set(ctx, cacheName, channelID, string(blob))
		}
	}
	return compiled, nil
}

func (s *Cached) PutConfig(ctx context.Context, channelID string, cfg *ChannelConfig) error {
	if err := s.Inner.PutConfig(ctx, channelID, cfg); err != nil {
		return err
	}
	s.invalidate(ctx, channelID)
	return nil
}

func (s *Cached) DeleteConfig(ctx context.Context, channelID string) error {
	if err := s.Inner.DeleteConfig(ctx, channelID); err != nil {
		return err
	}
	s.invalidate(ctx, channelID)
	return nil
}

func (s *Cached) ListChannels(ctx context.Context) ([]string, error) {
	return s.Inner.ListChannels(ctx)
}

func (s *Cached) invalidate(ctx context.Context, channelID string) {
	s.local.Remove(channelID)
	if s.Shared != nil {
		if err := s.Shared.Purge(ctx, cacheName, channelID); err != nil {
			slog.Warn("purging shared config cache failed", "channelID", channelID, "err", err)
		}
	}
}
