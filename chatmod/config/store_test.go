package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chanops/skimmer/chatmod/cachestore"
)

func testStoreBasics(t *testing.T, store Store) {
	assert := assert.New(t)
	ctx := context.Background()

	_, err := store.GetConfig(ctx, "chan-1")
	assert.ErrorIs(err, ErrNotFound)

	cfg := DefaultConfig()
	cfg.Caps.MaxPercent = 72
	assert.NoError(store.PutConfig(ctx, "chan-1", cfg))

	compiled, err := store.GetConfig(ctx, "chan-1")
	assert.NoError(err)
	assert.Equal(72.0, compiled.Cfg.Caps.MaxPercent)

	// writes replace, not merge
	cfg2 := DefaultConfig()
	cfg2.Caps.MaxPercent = 31
	assert.NoError(store.PutConfig(ctx, "chan-1", cfg2))
	compiled, err = store.GetConfig(ctx, "chan-1")
	assert.NoError(err)
	assert.Equal(31.0, compiled.Cfg.Caps.MaxPercent)

	assert.NoError(store.PutConfig(ctx, "chan-0", DefaultConfig()))
	channels, err := store.ListChannels(ctx)
	assert.NoError(err)
	assert.Equal([]string{"chan-0", "chan-1"}, channels)

	bad := DefaultConfig()
	bad.Blocklist = []BlocklistEntry{
		{Pattern: "[unclosed", IsRegex: true, Scope: ScopeMessage, Punishment: Punishment{Kind: PunishBan}},
	}
	assert.Error(store.PutConfig(ctx, "chan-1", bad))

	assert.NoError(store.DeleteConfig(ctx, "chan-1"))
	_, err = store.GetConfig(ctx, "chan-1")
	assert.ErrorIs(err, ErrNotFound)
	assert.ErrorIs(store.DeleteConfig(ctx, "chan-1"), ErrNotFound)
}

func TestMemStore(t *testing.T) {
	testStoreBasics(t, NewMemStore())
}

func TestGormStore(t *testing.T) {
	db, err := OpenDatabase("sqlite://:memory:", 1)
	require.NoError(t, err)

	store, err := NewGormStore(db)
	require.NoError(t, err)

	testStoreBasics(t, store)
}

type countingStore struct {
	*MemStore
	gets int
}

func (s *countingStore) GetConfig(ctx context.Context, channelID string) (*Compiled, error) {
	s.gets++
	return s.MemStore.GetConfig(ctx, channelID)
}

func TestCachedStoreContract(t *testing.T) {
	testStoreBasics(t, NewCached(NewMemStore(), nil, 100, time.Minute))
}

func TestCachedStore(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	inner := &countingStore{MemStore: NewMemStore()}
	cached := NewCached(inner, nil, 100, time.Minute)

	assert.NoError(cached.PutConfig(ctx, "chan-1", DefaultConfig()))

	inner.gets = 0
	_, err := cached.GetConfig(ctx, "chan-1")
	assert.NoError(err)
	_, err = cached.GetConfig(ctx, "chan-1")
	assert.NoError(err)
	assert.Equal(1, inner.gets)

	// not-found results are cached too
	inner.gets = 0
	_, err = cached.GetConfig(ctx, "chan-missing")
	assert.ErrorIs(err, ErrNotFound)
	_, err = cached.GetConfig(ctx, "chan-missing")
	assert.ErrorIs(err, ErrNotFound)
	assert.Equal(1, inner.gets)

	// a write invalidates, and the next read sees the new config
	cfg := DefaultConfig()
	cfg.LongMessage.MaxLength = 123
	assert.NoError(cached.PutConfig(ctx, "chan-1", cfg))
	compiled, err := cached.GetConfig(ctx, "chan-1")
	assert.NoError(err)
	assert.Equal(123, compiled.Cfg.LongMessage.MaxLength)
}

func TestCachedStoreSharedTier(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	inner := &countingStore{MemStore: NewMemStore()}
	shared := cachestore.NewMemCacheStore(100, time.Minute)

	writer := NewCached(inner, shared, 100, time.Minute)
	assert.NoError(writer.PutConfig(ctx, "chan-1", DefaultConfig()))

	// first reader populates the shared tier from the inner store
	readerA := NewCached(inner, shared, 100, time.Minute)
	inner.gets = 0
	_, err := readerA.GetConfig(ctx, "chan-1")
	assert.NoError(err)
	assert.Equal(1, inner.gets)

	// a second process-local cache is cold, but the shared tier is warm
	readerB := NewCached(inner, shared, 100, time.Minute)
	_, err = readerB.GetConfig(ctx, "chan-1")
	assert.NoError(err)
	assert.Equal(1, inner.gets)

	// negative entries propagate through the shared tier as well
	_, err = readerA.GetConfig(ctx, "chan-missing")
	assert.ErrorIs(err, ErrNotFound)
	inner.gets = 0
	_, err = readerB.GetConfig(ctx, "chan-missing")
	assert.ErrorIs(err, ErrNotFound)
	assert.Equal(0, inner.gets)

	// deletes purge the shared tier; readers with a cold local cache see it
	// immediately, warm ones on local TTL expiry
	assert.NoError(writer.DeleteConfig(ctx, "chan-1"))
	readerC := NewCached(inner, shared, 100, time.Minute)
	_, err = readerC.GetConfig(ctx, "chan-1")
	assert.ErrorIs(err, ErrNotFound)
}
