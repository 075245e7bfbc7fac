package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time // zero => no TTL
}

// MemoryStorage is the session-scoped Storage. Expired entries are removed lazily on read.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: make(map[string]memoryEntry)}
}

var (
	sessionOnce    sync.Once
	sessionStorage *MemoryStorage
)

// SessionStorage returns the process-wide storage shared by all session-scoped caches.
func SessionStorage() *MemoryStorage {
	sessionOnce.Do(func() {
		sessionStorage = NewMemoryStorage()
	})
	return sessionStorage
}

func (s *MemoryStorage) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	ent, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if !ent.expiresAt.IsZero() && time.Now().After(ent.expiresAt) {
		s.mu.Lock()
		// Re-check: a writer may have replaced the entry in between.
		if cur, ok := s.entries[key]; ok && cur.expiresAt.Equal(ent.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}

	return ent.value, true, nil
}

func (s *MemoryStorage) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	ent := memoryEntry{value: value}
	if ttl > 0 {
		ent.expiresAt = time.Now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = ent
	s.mu.Unlock()
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included until they are read.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
