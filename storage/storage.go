// Package storage provides pluggable key-value persistence for SSE event
// handlers.
//
// Handlers use a Mechanism to remember state across client reconnects, for
// example the cursor that defines what "new data" means since the last poll.
// Concrete backends are selected by name through a Registry, so the choice of
// backend is a deployment decision rather than a handler concern. The
// built-in backends cover an in-process cache, plain files and a sqlite
// database; additional backends can be registered by the application.
package storage

// Mechanism is a key-value persistence backend. Durability, expiration and
// concurrency semantics are defined by the concrete backend; callers get a
// uniform three-operation contract regardless of which one is behind it.
type Mechanism interface {
	// Get returns the value stored under key. The second return value is
	// false if the key is absent.
	Get(key string) ([]byte, bool, error)

	// Set stores value under key, overwriting any previous value.
	Set(key string, value []byte) error

	// Delete removes the value stored under key. Deleting an absent key
	// is not an error.
	Delete(key string) error
}
