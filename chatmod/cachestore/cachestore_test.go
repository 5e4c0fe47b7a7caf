package cachestore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemCacheStoreBasics(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cs := NewMemCacheStore(10, time.Hour)

	_, err := cs.Get(ctx, "test1", "key1")
	assert.ErrorIs(err, ErrNotFound)

	assert.NoError(cs.Set(ctx, "test1", "key1", "value1"))
	v, err := cs.Get(ctx, "test1", "key1")
	assert.NoError(err)
	assert.Equal("value1", v)

	// an empty cached value is not a miss
	assert.NoError(cs.Set(ctx, "test1", "key2", ""))
	v, err = cs.Get(ctx, "test1", "key2")
	assert.NoError(err)
	assert.Equal("", v)

	// names partition the key space
	_, err = cs.Get(ctx, "test2", "key1")
	assert.ErrorIs(err, ErrNotFound)

	assert.NoError(cs.Purge(ctx, "test1", "key1"))
	_, err = cs.Get(ctx, "test1", "key1")
	assert.ErrorIs(err, ErrNotFound)

	// purging an absent key is not an error
	assert.NoError(cs.Purge(ctx, "test1", "gone"))
}

func TestMemCacheStoreExpiry(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cs := NewMemCacheStore(10, 50*time.Millisecond)
	assert.NoError(cs.Set(ctx, "test1", "key1", "value1"))

	v, err := cs.Get(ctx, "test1", "key1")
	assert.NoError(err)
	assert.Equal("value1", v)

	time.Sleep(100 * time.Millisecond)
	_, err = cs.Get(ctx, "test1", "key1")
	assert.ErrorIs(err, ErrNotFound)
}
