package utils

import (
	"sync"
)

// Cache memoizes values computed from a key. A value is computed at most
// once per key until it is deleted.
type Cache[K comparable, V any] struct {
	items map[K]V
	mutex sync.RWMutex
}

// NewCache creates a new generic cache
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]V),
	}
}

// Get retrieves an item from the cache
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	value, exists := c.items[key]
	return value, exists
}

// GetOrCompute returns the cached value for key, computing and storing it on
// a miss. compute runs without the lock held and may itself use the cache;
// if two callers race, the first stored value wins.
func (c *Cache[K, V]) GetOrCompute(key K, compute func() V) V {
	if value, ok := c.Get(key); ok {
		return value
	}

	value := compute()

	c.mutex.Lock()
	defer c.mutex.Unlock()
	if existing, ok := c.items[key]; ok {
		return existing
	}
	c.items[key] = value
	return value
}

// Delete removes an item from the cache
func (c *Cache[K, V]) Delete(key K) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.items, key)
}
