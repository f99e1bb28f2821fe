package factory

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/clientry/clientry/core/cache"
	"github.com/clientry/clientry/core/logger"
)

// BuildContext carries everything a factory may need to construct a client.
type BuildContext struct {
	// Name is the client name from the resolution table, not the
	// implementation identifier. Useful for logging and cache key prefixes.
	Name string
	// Params is the resolved parameter map for the entry.
	Params map[string]string
	// Cache is the shared cache backend of the owning registry, or nil when
	// no cache is bound.
	Cache cache.Store
	// TTL is the cache binding's time-to-live. Zero when Cache is nil.
	TTL time.Duration
	// Log is never nil.
	Log logger.Logger
}

// Factory constructs an implementation of T from a build context.
type Factory[T any] func(BuildContext) (T, error)

// Registry stores factories keyed by implementation identifier.
type Registry[T any] struct {
	mu        sync.RWMutex
	factories map[string]Factory[T]
}

// NewRegistry returns an empty factory registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{factories: make(map[string]Factory[T])}
}

// Register adds a factory for the given identifier.
func (r *Registry[T]) Register(id string, f Factory[T]) error {
	if f == nil {
		return fmt.Errorf("factory nil for %s", id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[id]; ok {
		return fmt.Errorf("factory already registered for %s", id)
	}
	r.factories[id] = f
	return nil
}

// MustRegister registers f and panics on error. Intended for package init
// blocks where a duplicate identifier is a programming error.
func (r *Registry[T]) MustRegister(id string, f Factory[T]) {
	if err := r.Register(id, f); err != nil {
		panic(err)
	}
}

// Create instantiates a client through the factory registered for id.
func (r *Registry[T]) Create(id string, bc BuildContext) (T, error) {
	r.mu.RLock()
	f, ok := r.factories[id]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, fmt.Errorf("unknown implementation %s", id)
	}
	return f(bc)
}

// Known reports whether a factory is registered for id.
func (r *Registry[T]) Known(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[id]
	return ok
}

// IDs returns the registered identifiers in unspecified order.
func (r *Registry[T]) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	return ids
}

// Clients is the process-wide registry the builtin client factories attach
// to and that Build uses unless an explicit registry is supplied.
var Clients = NewRegistry[any]()

// Decode fills out the provided struct from a string parameter map using
// json tags. Values are converted weakly, so "5" satisfies an int field and
// "true" a bool field.
func Decode(params map[string]string, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(params)
}
