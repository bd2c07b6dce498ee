// Package memcache provides a process-local Cache implementation, used in
// tests and when no Redis address is configured.
package memcache

import (
	"context"
	"sync"
	"time"

	"github.com/newsdeck/newsdeck/internal/datasources"
)

var _ datasources.Cache = (*Cache)(nil)

type entry struct {
	value     []byte
	counter   int64
	expiresAt time.Time
}

type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry

	// now is swappable for tests.
	now func() time.Time
}

func New() *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.live(key)
	if e == nil {
		return nil, false, nil
	}
	return e.value, true, nil
}

func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &entry{value: value, expiresAt: c.now().Add(ttl)}
	return nil
}

func (c *Cache) Increment(_ context.Context, key string, ttl time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.live(key)
	if e == nil {
		e = &entry{expiresAt: c.now().Add(ttl)}
		c.entries[key] = e
	}
	e.counter++
	return e.counter, nil
}

// live returns the entry for key if present and unexpired, dropping expired
// entries as a side effect. Callers hold the mutex.
func (c *Cache) live(key string) *entry {
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil
	}
	return e
}
