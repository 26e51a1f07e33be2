package querycache

import (
	"context"
	"sync"
	"time"
)

// memoryStore is a process-local Store for single-instance deployments and
// tests. Entries expire lazily on read.
type memoryStore struct {
	mu    sync.RWMutex
	items map[Key]memoryEntry
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryStore creates an in-process Store
func NewMemoryStore() Store {
	return &memoryStore{
		items: make(map[Key]memoryEntry),
	}
}

func (s *memoryStore) Get(_ context.Context, key Key) ([]byte, bool, error) {
	s.mu.RLock()
	entry, ok := s.items[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.items, key)
		s.mu.Unlock()
		return nil, false, nil
	}

	return entry.value, true, nil
}

func (s *memoryStore) Set(_ context.Context, key Key, value []byte, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	s.mu.Lock()
	s.items[key] = entry
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Delete(_ context.Context, keys ...Key) error {
	s.mu.Lock()
	for _, key := range keys {
		delete(s.items, key)
	}
	s.mu.Unlock()
	return nil
}
