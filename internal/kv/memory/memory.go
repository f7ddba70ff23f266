package memory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"splitter/internal/kv"
)

var _ kv.Store = (*Store)(nil)

// Store keeps values in a map. A positive quota caps the combined size of
// keys and values the way browser local storage does.
type Store struct {
	mu    sync.Mutex
	quota int
	used  int
	items map[string][]byte
}

func New(quota int) *Store {
	return &Store{quota: quota, items: map[string][]byte{}}
}

// NewFromFiles seeds the store from <base>/<key>.json for every known key.
// Missing or empty files are skipped; unreadable files and seeds that do not
// fit the quota are errors.
func NewFromFiles(base string, quota int) (*Store, error) {
	s := New(quota)
	for _, key := range []string{kv.KeyExpenses, kv.KeySavedFriends} {
		path := filepath.Join(base, key+".json")
		b, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) || (err == nil && len(b) == 0) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read seed %s: %w", path, err)
		}
		if err := s.Set(context.Background(), key, b); err != nil {
			return nil, fmt.Errorf("seed %s (%d bytes): %w", path, len(b), err)
		}
	}
	return s, nil
}

// Get returns a copy of the stored value.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores value under key. When the write would exceed the quota the
// previous value is kept and kv.ErrQuotaExceeded is returned.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	used := s.used
	if old, ok := s.items[key]; ok {
		used -= len(key) + len(old)
	}
	used += len(key) + len(value)
	if s.quota > 0 && used > s.quota {
		return kv.ErrQuotaExceeded
	}
	s.items[key] = append([]byte(nil), value...)
	s.used = used
	return nil
}

// Used returns the number of bytes counted against the quota.
func (s *Store) Used() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.used
}

func (s *Store) Close() error { return nil }
