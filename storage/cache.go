package storage

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// cacheMechanism is the in-process "cache" backend. State survives client
// reconnects for as long as the process lives and the entry has not expired.
type cacheMechanism struct {
	c *gocache.Cache
}

// newCacheMechanism creates the "cache" backend. Recognized options:
//
//	ttl               entry lifetime, Go duration string, default 1h,
//	                  "0" keeps entries forever
//	cleanup_interval  how often expired entries are purged, default 10m
func newCacheMechanism(opts map[string]string) (Mechanism, error) {
	ttl := time.Hour
	cleanup := 10 * time.Minute

	if raw, ok := opts["ttl"]; ok {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("cache mechanism: invalid ttl %q: %w", raw, err)
		}
		ttl = d
	}
	if raw, ok := opts["cleanup_interval"]; ok {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("cache mechanism: invalid cleanup_interval %q: %w", raw, err)
		}
		cleanup = d
	}

	if ttl == 0 {
		ttl = gocache.NoExpiration
	}
	return &cacheMechanism{c: gocache.New(ttl, cleanup)}, nil
}

func (m *cacheMechanism) Get(key string) ([]byte, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	return v.([]byte), true, nil
}

func (m *cacheMechanism) Set(key string, value []byte) error {
	m.c.SetDefault(key, append([]byte(nil), value...))
	return nil
}

func (m *cacheMechanism) Delete(key string) error {
	m.c.Delete(key)
	return nil
}
