package cachestore

import (
	"context"
	"errors"
)

// ErrNotFound distinguishes a cache miss from a cached empty value. Callers
// caching negative lookups depend on the distinction.
var ErrNotFound = errors.New("cache entry not found")

type CacheStore interface {
	Get(ctx context.Context, name, key string) (string, error)
	Set(ctx context.Context, name, key string, val string) error
	Purge(ctx context.Context, name, key string) error
}
