// Package clientry wires declarative client definitions into a ready
// registry. A definition file declares named clients, each with an
// implementation identifier and parameters; entries may extend earlier
// entries. Build reads the file (or a cached resolution of it), resolves
// inheritance and returns a Registry that constructs clients lazily.
package clientry

import (
	"time"

	"github.com/clientry/clientry/config"
	"github.com/clientry/clientry/core/cache"
	"github.com/clientry/clientry/core/factory"
	"github.com/clientry/clientry/core/logger"
	"github.com/clientry/clientry/core/metrics"
	"github.com/clientry/clientry/core/registry"
	"github.com/clientry/clientry/core/resolve"
	infralogger "github.com/clientry/clientry/infra/logger"
)

type options struct {
	store     cache.Store
	ttl       time.Duration
	factories *factory.Registry[any]
	log       logger.Logger
	sink      metrics.Sink
}

// Option customizes Build.
type Option func(*options)

// WithCache binds a cache backend. Resolved tables are persisted in it and
// the same store is handed to every constructed client. A non-positive ttl
// falls back to the default of 24 hours.
func WithCache(store cache.Store, ttl time.Duration) Option {
	return func(o *options) {
		o.store = store
		if ttl <= 0 {
			ttl = cache.DefaultTTL
		}
		o.ttl = ttl
	}
}

// WithFactories selects the factory registry clients are constructed from
// instead of the process-wide one.
func WithFactories(f *factory.Registry[any]) Option {
	return func(o *options) { o.factories = f }
}

// WithLogger replaces the default component logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records resolution and construction events in sink.
func WithMetrics(sink metrics.Sink) Option {
	return func(o *options) { o.sink = sink }
}

// Build resolves the client document at source and returns a Registry over
// it. When a cache backend is bound and holds a table for the source, the
// document is not read at all; on a miss the freshly resolved table is
// persisted best-effort. Either a complete registry is returned or an error
// is, never a partial one.
func Build(source string, opts ...Option) (*registry.Registry, error) {
	o := options{sink: metrics.NopSink{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = infralogger.New("clientry")
	}

	var table resolve.Table
	if o.store != nil {
		tc := cache.NewTableCache(o.store, o.log, o.sink)
		key := cache.Key(source)
		if cached, ok := tc.Load(key); ok {
			o.log.Debugw("using cached resolution table", map[string]any{"source": source, "entries": len(cached)})
			table = cached
		} else {
			var err error
			if table, err = readAndResolve(source, o); err != nil {
				return nil, err
			}
			tc.Store(key, table, o.ttl)
		}
	} else {
		var err error
		if table, err = readAndResolve(source, o); err != nil {
			return nil, err
		}
	}

	reg := registry.New(table, o.factories, o.log, o.sink)
	if o.store != nil {
		reg.SetCache(o.store, o.ttl)
	}
	return reg, nil
}

func readAndResolve(source string, o options) (resolve.Table, error) {
	entries, err := config.Load(source)
	if err != nil {
		return nil, err
	}
	table, err := resolve.Resolve(entries)
	if err != nil {
		return nil, err
	}
	o.sink.RecordResolution(len(table))
	return table, nil
}
