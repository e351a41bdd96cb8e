package storage

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotRegistered is returned by Resolve when no mechanism is registered
// under the requested name. This is a configuration error on the caller's
// side, not a runtime condition.
var ErrNotRegistered = errors.New("storage mechanism not registered")

// Factory constructs a Mechanism instance from backend-specific options.
type Factory func(opts map[string]string) (Mechanism, error)

// Registry maps mechanism names to factories. The built-in backends are
// registered lazily on first Resolve; applications may bind additional names
// with Register at any time. A Registry is safe for concurrent use, including
// concurrent first use from multiple sessions.
type Registry struct {
	mu        sync.RWMutex
	builtins  sync.Once
	factories map[string]Factory
}

// Default is the process-wide registry used by the package-level Register and
// Resolve functions.
var Default = NewRegistry()

// NewRegistry creates an empty registry. The built-in mechanisms are added on
// first Resolve.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register binds a mechanism name to a factory. An existing binding under the
// same name is silently replaced, last registration wins.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	r.factories[name] = factory
	r.mu.Unlock()
}

// Resolve constructs a new Mechanism instance registered under name, passing
// opts to its factory. Resolving a name with no binding returns an error
// wrapping ErrNotRegistered.
func (r *Registry) Resolve(name string, opts map[string]string) (Mechanism, error) {
	r.builtins.Do(func() {
		r.Register("cache", newCacheMechanism)
		r.Register("file", newFileMechanism)
		r.Register("sqlite", newSQLiteMechanism)
	})

	r.mu.RLock()
	factory := r.factories[name]
	r.mu.RUnlock()

	if factory == nil {
		return nil, fmt.Errorf("%q: %w", name, ErrNotRegistered)
	}
	return factory(opts)
}

// Register binds a mechanism name to a factory in the Default registry.
func Register(name string, factory Factory) {
	Default.Register(name, factory)
}

// Resolve constructs a mechanism by name from the Default registry.
func Resolve(name string, opts map[string]string) (Mechanism, error) {
	return Default.Resolve(name, opts)
}
