// Package registry hands out constructed clients by name. A Registry owns
// an immutable resolution table and memoizes the instances it builds;
// construction is delegated to the factory registered for the entry's
// implementation identifier.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/clientry/clientry/core/cache"
	"github.com/clientry/clientry/core/factory"
	"github.com/clientry/clientry/core/logger"
	"github.com/clientry/clientry/core/metrics"
	"github.com/clientry/clientry/core/resolve"
)

// ErrUnknownClient is returned by Get and GetTransient when the requested
// name is absent from the resolution table.
var ErrUnknownClient = errors.New("registry: unknown client")

// Registry holds resolved client definitions and their memoized instances.
// Safe for concurrent use; concurrent first Gets for the same name construct
// exactly once.
type Registry struct {
	table     resolve.Table
	factories *factory.Registry[any]
	log       logger.Logger
	sink      metrics.Sink

	mu        sync.RWMutex
	instances map[string]any
	group     singleflight.Group

	bindMu sync.RWMutex
	store  cache.Store
	ttl    time.Duration
}

// New builds a Registry over table. factories may be nil, in which case the
// process-wide client registry is used. log and sink may be nil.
func New(table resolve.Table, factories *factory.Registry[any], log logger.Logger, sink metrics.Sink) *Registry {
	if factories == nil {
		factories = factory.Clients
	}
	if log == nil {
		log = nopLogger{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Registry{
		table:     table,
		factories: factories,
		log:       log,
		sink:      sink,
		instances: make(map[string]any),
	}
}

// SetCache replaces the cache binding handed to factories on subsequent
// constructions. A non-positive ttl falls back to the default. The registry
// shares the store by reference and never manages its lifecycle.
func (r *Registry) SetCache(store cache.Store, ttl time.Duration) {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	r.bindMu.Lock()
	r.store = store
	r.ttl = ttl
	r.bindMu.Unlock()
}

// Get returns the client registered under name, constructing it on first
// use and memoizing the result. Repeated calls return the identical
// instance. Construction errors are propagated unmodified and nothing is
// memoized for the name.
func (r *Registry) Get(name string) (any, error) {
	entry, ok := r.table[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClient, name)
	}

	r.mu.RLock()
	inst, hit := r.instances[name]
	r.mu.RUnlock()
	if hit {
		return inst, nil
	}

	inst, err, _ := r.group.Do(name, func() (any, error) {
		// A racing call may have completed while this one waited.
		r.mu.RLock()
		inst, hit := r.instances[name]
		r.mu.RUnlock()
		if hit {
			return inst, nil
		}
		inst, err := r.construct(name, entry)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.instances[name] = inst
		r.mu.Unlock()
		return inst, nil
	})
	return inst, err
}

// GetTransient constructs a fresh client for name. The instance cache is
// neither consulted nor populated; every call yields a new instance.
func (r *Registry) GetTransient(name string) (any, error) {
	entry, ok := r.table[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClient, name)
	}
	return r.construct(name, entry)
}

func (r *Registry) construct(name string, entry resolve.Entry) (any, error) {
	bc := factory.BuildContext{
		Name:   name,
		Params: entry.Params,
		Log:    r.log,
	}
	r.bindMu.RLock()
	bc.Cache, bc.TTL = r.store, r.ttl
	r.bindMu.RUnlock()

	inst, err := r.factories.Create(entry.Impl, bc)
	r.sink.RecordConstruction(name, err)
	if err != nil {
		return nil, err
	}
	r.log.Debugw("constructed client", map[string]any{"client": name, "impl": entry.Impl})
	return inst, nil
}

// Names returns the sorted client names of the resolution table.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.table))
	for name := range r.table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of resolved entries.
func (r *Registry) Len() int { return len(r.table) }

// Table returns a copy of the resolution table. The registry's own table is
// never exposed for mutation.
func (r *Registry) Table() resolve.Table { return r.table.Clone() }

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
