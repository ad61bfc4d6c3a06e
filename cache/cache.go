// ABOUTME: Generic in-memory cache with per-entry TTL expiration
// ABOUTME: Backs login sessions and computed audit reports

package cache

import (
	"log/slog"
	"strings"
	"sync"
	"time"
)

type entry[V any] struct {
	data      V
	expiresAt time.Time
}

// Cache is a thread-safe TTL map. Expired entries are dropped on read and
// swept periodically until Close is called.
type Cache[V any] struct {
	name  string
	store sync.Map
	ttl   time.Duration
	done  chan struct{}
	once  sync.Once
}

// New creates a cache whose entries live for ttl unless set with SetWithTTL.
// The name only labels debug logs.
func New[V any](name string, ttl time.Duration) *Cache[V] {
	c := &Cache[V]{
		name: name,
		ttl:  ttl,
		done: make(chan struct{}),
	}
	go c.startCleanup(time.Minute)
	return c
}

func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	val, ok := c.store.Load(key)
	if !ok {
		slog.Debug("Cache miss", "cache", c.name, "key", key)
		return zero, false
	}

	e := val.(entry[V])
	if time.Now().After(e.expiresAt) {
		c.store.Delete(key)
		slog.Debug("Cache expired", "cache", c.name, "key", key)
		return zero, false
	}

	slog.Debug("Cache hit", "cache", c.name, "key", key)
	return e.data, true
}

func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.store.Store(key, entry[V]{
		data:      value,
		expiresAt: time.Now().Add(ttl),
	})
	slog.Debug("Cache set", "cache", c.name, "key", key, "ttl", ttl)
}

func (c *Cache[V]) Clear(key string) {
	c.store.Delete(key)
}

// ClearMatching removes every entry whose key has the prefix and whose value satisfies match.
// A nil match removes all entries with the prefix. Returns the number removed.
func (c *Cache[V]) ClearMatching(prefix string, match func(V) bool) int {
	removed := 0
	c.store.Range(func(key, val any) bool {
		k := key.(string)
		if !strings.HasPrefix(k, prefix) {
			return true
		}
		if match == nil || match(val.(entry[V]).data) {
			c.store.Delete(k)
			removed++
		}
		return true
	})
	return removed
}

// Len counts live entries
func (c *Cache[V]) Len() int {
	now := time.Now()
	n := 0
	c.store.Range(func(_, val any) bool {
		if !now.After(val.(entry[V]).expiresAt) {
			n++
		}
		return true
	})
	return n
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (c *Cache[V]) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *Cache[V]) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.sweep(time.Now())
		}
	}
}

func (c *Cache[V]) sweep(now time.Time) {
	c.store.Range(func(key, val any) bool {
		if now.After(val.(entry[V]).expiresAt) {
			c.store.Delete(key)
		}
		return true
	})
}
