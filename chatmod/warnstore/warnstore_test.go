package warnstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemWarningStoreBasics(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := NewMemWarningStore()

	_, found, err := store.LastWarning(ctx, "chan-1", "user-1")
	assert.NoError(err)
	assert.False(found)

	t1 := time.UnixMilli(1_700_000_000_000)
	assert.NoError(store.RecordWarning(ctx, "chan-1", "user-1", t1))

	at, found, err := store.LastWarning(ctx, "chan-1", "user-1")
	assert.NoError(err)
	assert.True(found)
	assert.True(at.Equal(t1))

	// same user in another channel is a separate record
	_, found, err = store.LastWarning(ctx, "chan-2", "user-1")
	assert.NoError(err)
	assert.False(found)
}

func TestMemWarningStoreNeverRegresses(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := NewMemWarningStore()
	t1 := time.UnixMilli(1_700_000_000_000)
	t2 := t1.Add(30 * time.Second)

	assert.NoError(store.RecordWarning(ctx, "chan-1", "user-1", t2))
	// an out-of-order write from a second evaluator must not win
	assert.NoError(store.RecordWarning(ctx, "chan-1", "user-1", t1))

	at, found, err := store.LastWarning(ctx, "chan-1", "user-1")
	assert.NoError(err)
	assert.True(found)
	assert.True(at.Equal(t2))
}

func TestMemWarningStoreConcurrent(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := NewMemWarningStore()
	base := time.UnixMilli(1_700_000_000_000)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			_ = store.RecordWarning(ctx, "chan-1", "user-1", base.Add(time.Duration(offset)*time.Second))
		}(i)
	}
	wg.Wait()

	at, found, err := store.LastWarning(ctx, "chan-1", "user-1")
	assert.NoError(err)
	assert.True(found)
	assert.True(at.Equal(base.Add(49 * time.Second)))
}
