// Package cache provides Store implementations backed by process memory
// and by the filesystem.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultCleanupInterval controls how often the memory store purges
// expired entries.
const DefaultCleanupInterval = 30 * time.Minute

// MemoryStore is an in-process Store with per-entry TTL.
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore returns an empty memory store. defaultTTL applies to
// entries saved with a non-positive TTL.
func NewMemoryStore(defaultTTL, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{cache: gocache.New(defaultTTL, cleanupInterval)}
}

// Fetch returns the value stored under key, or false if absent or expired.
func (s *MemoryStore) Fetch(key string) ([]byte, bool) {
	v, found := s.cache.Get(key)
	if !found {
		return nil, false
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false
	}
	return b, true
}

// Save stores value under key for ttl.
func (s *MemoryStore) Save(key string, value []byte, ttl time.Duration) error {
	s.cache.Set(key, value, ttl)
	return nil
}

// Flush drops every entry.
func (s *MemoryStore) Flush() {
	s.cache.Flush()
}
