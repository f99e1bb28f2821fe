// Package cache defines the key/value store contract shared by the
// resolution cache and constructed clients, plus the cache layer used to
// persist resolved tables between runs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/clientry/clientry/core/logger"
	"github.com/clientry/clientry/core/metrics"
	"github.com/clientry/clientry/core/resolve"
)

// DefaultTTL applies whenever a caller supplies a non-positive TTL.
const DefaultTTL = 24 * time.Hour

// Store is the backend capability consumed here and handed to constructed
// clients. Implementations are expected to be safe for concurrent use; a
// miss is reported via the bool, never an error.
type Store interface {
	Fetch(key string) ([]byte, bool)
	Save(key string, value []byte, ttl time.Duration) error
}

// Key derives the deterministic cache key for a source identifier. The same
// source hits the same slot across runs and processes.
func Key(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// TableCache persists resolved tables in a Store. Failures in either
// direction are soft: a broken load is a miss, a broken save is logged and
// ignored. Caching is an optimization, never a correctness requirement.
type TableCache struct {
	store Store
	log   logger.Logger
	sink  metrics.Sink
}

// NewTableCache wraps store. log and sink may be nil.
func NewTableCache(store Store, log logger.Logger, sink metrics.Sink) *TableCache {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &TableCache{store: store, log: log, sink: sink}
}

// Load fetches and decodes a previously stored table. Decode failures count
// as misses so that cache corruption can never break a build.
func (c *TableCache) Load(key string) (resolve.Table, bool) {
	raw, ok := c.store.Fetch(key)
	if !ok {
		c.sink.RecordCacheLookup(false)
		return nil, false
	}
	var table resolve.Table
	if err := json.Unmarshal(raw, &table); err != nil {
		if c.log != nil {
			c.log.Warnf("discarding undecodable cached table for key %s: %v", key, err)
		}
		c.sink.RecordCacheLookup(false)
		return nil, false
	}
	c.sink.RecordCacheLookup(true)
	return table, true
}

// Store encodes and persists table under key with the given TTL.
// Best effort only.
func (c *TableCache) Store(key string, table resolve.Table, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	raw, err := json.Marshal(table)
	if err != nil {
		if c.log != nil {
			c.log.Errorf("encode resolved table: %v", err)
		}
		return
	}
	if err := c.store.Save(key, raw, ttl); err != nil && c.log != nil {
		c.log.Warnf("persist resolved table for key %s: %v", key, err)
	}
}
