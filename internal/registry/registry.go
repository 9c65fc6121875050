package registry

import (
	"fmt"
	"sync"

	"github.com/mwhitaker/blenny/internal/config"
)

// Key names a shared service and carries its type. Use a "module.Service"
// style string so keys from different modules cannot collide.
type Key[T any] string

// Registry lets modules publish services during Boot and look up what other
// modules published, without compile-time coupling between them. Safe for
// concurrent use.
type Registry struct {
	services sync.Map
	cfg      config.Provider
}

// New creates a registry carrying the application's configuration provider.
func New(cfg config.Provider) *Registry {
	return &Registry{
		cfg: cfg,
	}
}

// Config returns the configuration provider every module can rely on.
func (r *Registry) Config() config.Provider {
	return r.cfg
}

// Set publishes a service under its key, replacing any previous value.
func Set[T any](r *Registry, key Key[T], value T) {
	r.services.Store(string(key), value)
}

// Get looks up a service by key. The second return is false when the key was
// never published or holds a value of a different type.
func Get[T any](r *Registry, key Key[T]) (T, bool) {
	val, ok := r.services.Load(string(key))
	if !ok {
		var zero T
		return zero, false
	}

	result, ok := val.(T)
	if !ok {
		var zero T
		return zero, false
	}

	return result, true
}

// MustGet is Get for wiring-time lookups that cannot reasonably be absent.
// It panics on a miss so a broken boot order fails at startup, not on the
// first request.
func MustGet[T any](r *Registry, key Key[T]) T {
	val, ok := Get(r, key)
	if !ok {
		panic(fmt.Sprintf("service not found for key: %v", key))
	}
	return val
}
