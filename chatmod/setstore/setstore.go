package setstore

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
)

// SetStore answers membership queries against named string sets. The link
// detector consults it for the shared cross-channel allowlist; sets are small
// and read-heavy.
type SetStore interface {
	InSet(ctx context.Context, name, val string) (bool, error)
}

type MemSetStore struct {
	lk   sync.RWMutex
	sets map[string]map[string]bool
}

func NewMemSetStore() *MemSetStore {
	return &MemSetStore{
		sets: make(map[string]map[string]bool),
	}
}

func (s *MemSetStore) InSet(ctx context.Context, name, val string) (bool, error) {
	s.lk.RLock()
	defer s.lk.RUnlock()
	set, ok := s.sets[name]
	if !ok {
		// an unknown set is empty, not an error
		return false, nil
	}
	return set[val], nil
}

func (s *MemSetStore) AddToSet(ctx context.Context, name string, vals ...string) error {
	s.lk.Lock()
	defer s.lk.Unlock()
	set, ok := s.sets[name]
	if !ok {
		set = make(map[string]bool, len(vals))
		s.sets[name] = set
	}
	for _, val := range vals {
		set[val] = true
	}
	return nil
}

// LoadFromFileJSON reads sets from a JSON file shaped {"name": ["val", ...]}.
// Each named set in the file replaces the stored set wholesale; sets absent
// from the file are left alone, so loads from multiple files compose.
func (s *MemSetStore) LoadFromFileJSON(p string) error {
	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	raw, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	var sets map[string][]string
	if err := json.Unmarshal(raw, &sets); err != nil {
		return err
	}

	s.lk.Lock()
	defer s.lk.Unlock()
	for name, l := range sets {
		m := make(map[string]bool, len(l))
		for _, val := range l {
			m[val] = true
		}
		s.sets[name] = m
	}
	return nil
}
