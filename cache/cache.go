// ABOUTME: In-memory TTL cache for recipe details and catalog listings
// ABOUTME: sync.Map storage, background expiry sweep and singleflight-coalesced loads

package cache

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const sweepInterval = time.Minute

type entry struct {
	data      interface{}
	expiresAt time.Time
}

// Cache maps string keys to values that expire after a TTL
type Cache struct {
	store   sync.Map
	ttl     time.Duration
	loads   singleflight.Group
	stop    chan struct{}
	stopped sync.Once
}

// New creates a cache and starts its expiry sweep. Call Close to stop it.
func New(ttl time.Duration) *Cache {
	c := &Cache{
		ttl:  ttl,
		stop: make(chan struct{}),
	}
	go c.sweep()
	return c
}

func (c *Cache) Get(key string) (interface{}, bool) {
	val, ok := c.store.Load(key)
	if !ok {
		slog.Debug("Cache miss", "key", key)
		return nil, false
	}

	e := val.(entry)
	if time.Now().After(e.expiresAt) {
		c.store.Delete(key)
		slog.Debug("Cache expired", "key", key)
		return nil, false
	}
	return e.data, true
}

// Set stores a value for the cache TTL
func (c *Cache) Set(key string, value interface{}) {
	c.store.Store(key, entry{data: value, expiresAt: time.Now().Add(c.ttl)})
	slog.Debug("Cache set", "key", key, "ttl", c.ttl)
}

// GetOrLoad returns the cached value for key or calls load once for all
// concurrent callers and caches its result. Errors are not cached.
func (c *Cache) GetOrLoad(key string, load func() (interface{}, error)) (interface{}, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err, _ := c.loads.Do(key, func() (interface{}, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := load()
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	return v, err
}

func (c *Cache) Clear(key string) {
	c.store.Delete(key)
}

// Purge removes every entry
func (c *Cache) Purge() {
	c.store.Range(func(key, _ interface{}) bool {
		c.store.Delete(key)
		return true
	})
}

// Len counts live and not yet swept entries
func (c *Cache) Len() int {
	n := 0
	c.store.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

// Close stops the expiry sweep
func (c *Cache) Close() {
	c.stopped.Do(func() { close(c.stop) })
}

func (c *Cache) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.store.Range(func(key, val interface{}) bool {
				if now.After(val.(entry).expiresAt) {
					c.store.Delete(key)
				}
				return true
			})
		}
	}
}
