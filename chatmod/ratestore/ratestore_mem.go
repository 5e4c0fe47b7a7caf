package ratestore

import (
	"context"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

type rateWindow struct {
	lk    sync.Mutex
	times []int64
}

type MemRateStore struct {
	windows *xsync.MapOf[string, *rateWindow]
}

var _ RateStore = (*MemRateStore)(nil)

func NewMemRateStore() *MemRateStore {
	return &MemRateStore{
		windows: xsync.NewMapOf[string, *rateWindow](),
	}
}

func (s *MemRateStore) Observe(ctx context.Context, channelID, userID string, at time.Time) error {
	w, _ := s.windows.LoadOrCompute(rateKey(channelID, userID), func() *rateWindow {
		return &rateWindow{}
	})
	w.lk.Lock()
	defer w.lk.Unlock()

	// prune as we go so a chatty user's window never grows unbounded
	horizon := at.Add(-rateRetention).UnixMilli()
	kept := w.times[:0]
	for _, ms := range w.times {
		if ms >= horizon {
			kept = append(kept, ms)
		}
	}
	w.times = append(kept, at.UnixMilli())
	return nil
}

func (s *MemRateStore) CountSince(ctx context.Context, channelID, userID string, since time.Time) (int, error) {
	w, ok := s.windows.Load(rateKey(channelID, userID))
	if !ok {
		return 0, nil
	}
	w.lk.Lock()
	defer w.lk.Unlock()

	cutoff := since.UnixMilli()
	count := 0
	for _, ms := range w.times {
		if ms >= cutoff {
			count++
		}
	}
	return count, nil
}
