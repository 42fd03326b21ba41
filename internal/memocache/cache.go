// Package memocache provides a small TTL+LRU cache used to share expensive
// probe results (editor liveness, editor context) between concurrent callers.
package memocache

import (
	"container/list"
	"sync"
	"time"
)

// Cache stores values for a limited time with LRU eviction.
type Cache[V any] struct {
	mu         sync.Mutex
	items      map[string]*list.Element
	order      *list.List
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

type cacheEntry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// New creates a cache with the given ttl and max entries.
func New[V any](ttl time.Duration, maxEntries int) *Cache[V] {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if maxEntries <= 0 {
		maxEntries = 128
	}
	return &Cache[V]{
		items:      make(map[string]*list.Element),
		order:      list.New(),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get retrieves a cached value if present and not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil || key == "" {
		return zero, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}
	entry := elem.Value.(*cacheEntry[V])
	if c.now().After(entry.expiresAt) {
		c.order.Remove(elem)
		delete(c.items, key)
		return zero, false
	}
	c.order.MoveToFront(elem)
	return entry.value, true
}

// Set stores a value under key.
func (c *Cache[V]) Set(key string, value V) {
	if c == nil || key == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*cacheEntry[V])
		entry.value = value
		entry.expiresAt = c.now().Add(c.ttl)
		c.order.MoveToFront(elem)
		return
	}

	elem := c.order.PushFront(&cacheEntry[V]{
		key:       key,
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	})
	c.items[key] = elem
	c.trim()
}

// Invalidate drops a key if present.
func (c *Cache[V]) Invalidate(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.Remove(elem)
		delete(c.items, key)
	}
}

func (c *Cache[V]) trim() {
	for len(c.items) > c.maxEntries {
		elem := c.order.Back()
		if elem == nil {
			return
		}
		entry := elem.Value.(*cacheEntry[V])
		delete(c.items, entry.key)
		c.order.Remove(elem)
	}
}
