package ssepoll

import (
	"errors"
	"fmt"
	"time"
)

// Recognized configuration keys. Values for time keys are numbers of seconds,
// sleep_time additionally accepts fractions.
const (
	KeySleepTime          = "sleep_time"
	KeyExecLimit          = "exec_limit"
	KeyClientReconnect    = "client_reconnect"
	KeyAllowCORS          = "allow_cors"
	KeyKeepAliveTime      = "keep_alive_time"
	KeyIsReconnect        = "is_reconnect"
	KeyUseChunkedEncoding = "use_chunked_encoding"
)

// ErrReadOnlyKey is returned by Config.Set for the is_reconnect key. The
// reconnect flag is derived from the inbound request at session construction
// and can not be overwritten.
var ErrReadOnlyKey = errors.New("config key is read-only")

// ErrProtectedKey is returned by Config.Remove for any of the built-in
// configuration keys. Built-in keys always hold a value; only custom keys can
// be removed.
var ErrProtectedKey = errors.New("config key is protected")

// protectedKeys is the closed set of built-in keys that can never be removed.
var protectedKeys = map[string]struct{}{
	KeySleepTime:          {},
	KeyExecLimit:          {},
	KeyClientReconnect:    {},
	KeyAllowCORS:          {},
	KeyKeepAliveTime:      {},
	KeyIsReconnect:        {},
	KeyUseChunkedEncoding: {},
}

// Config holds per-session SSE stream configuration. It is a key-value store
// with a fixed set of recognized keys plus arbitrary custom keys a caller may
// use to pass state to handlers. A Config belongs to a single session and is
// not safe for concurrent use.
type Config struct {
	values map[string]interface{}
}

// newConfig creates a configuration populated with default values for all
// built-in keys. The reconnect flag is fixed for the lifetime of the config.
func newConfig(isReconnect bool) *Config {
	return &Config{
		values: map[string]interface{}{
			KeySleepTime:          0.5,
			KeyExecLimit:          600,
			KeyClientReconnect:    1,
			KeyAllowCORS:          false,
			KeyKeepAliveTime:      300,
			KeyIsReconnect:        isReconnect,
			KeyUseChunkedEncoding: false,
		},
	}
}

// Get returns the value stored under key. Second return value is false if the
// key is not set.
func (c *Config) Get(key string) (interface{}, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Set stores value under key. Setting the is_reconnect key returns
// ErrReadOnlyKey. Keys outside the recognized set are stored as-is for use by
// handlers.
func (c *Config) Set(key string, value interface{}) error {
	if key == KeyIsReconnect {
		return fmt.Errorf("%q: %w", key, ErrReadOnlyKey)
	}
	c.values[key] = value
	return nil
}

// Remove deletes a custom key. Removing any of the built-in keys returns
// ErrProtectedKey. Removing an absent custom key is a no-op.
func (c *Config) Remove(key string) error {
	if _, ok := protectedKeys[key]; ok {
		return fmt.Errorf("%q: %w", key, ErrProtectedKey)
	}
	delete(c.values, key)
	return nil
}

// seconds converts a stored numeric value to a duration. Returns fallback for
// values of unexpected type.
func (c *Config) seconds(key string, fallback time.Duration) time.Duration {
	switch v := c.values[key].(type) {
	case int:
		return time.Duration(v) * time.Second
	case int64:
		return time.Duration(v) * time.Second
	case float64:
		return time.Duration(v * float64(time.Second))
	case time.Duration:
		return v
	default:
		return fallback
	}
}

func (c *Config) boolean(key string) bool {
	v, _ := c.values[key].(bool)
	return v
}

func (c *Config) sleepTime() time.Duration {
	return c.seconds(KeySleepTime, 500*time.Millisecond)
}

func (c *Config) execLimit() time.Duration {
	return c.seconds(KeyExecLimit, 600*time.Second)
}

func (c *Config) clientReconnect() time.Duration {
	return c.seconds(KeyClientReconnect, time.Second)
}

func (c *Config) keepAliveTime() time.Duration {
	return c.seconds(KeyKeepAliveTime, 300*time.Second)
}
