package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity is the capacity used when none is configured.
const DefaultCapacity = 50

// BoundedCache is a fixed-capacity cache that evicts the least recently used
// entry once a Set pushes it over capacity. Both Get and Set count as a use;
// Has does not.
//
// A capacity of 0 stores nothing: every Set is immediately evicted.
type BoundedCache[V any] struct {
	// nil when capacity is 0.
	items    *lru.Cache[string, V]
	capacity int
}

// NewBoundedCache constructs a cache holding at most capacity entries.
// Negative capacities are treated as 0.
func NewBoundedCache[V any](capacity int) *BoundedCache[V] {
	if capacity <= 0 {
		return &BoundedCache[V]{}
	}
	items, err := lru.New[string, V](capacity)
	if err != nil {
		// lru.New only fails for non-positive sizes.
		panic(err)
	}
	return &BoundedCache[V]{items: items, capacity: capacity}
}

// Capacity returns the configured maximum size.
func (c *BoundedCache[V]) Capacity() int {
	return c.capacity
}

// Get implements Cache.Get and promotes the key to most recently used.
func (c *BoundedCache[V]) Get(key string) (V, bool) {
	if c.items == nil {
		var zero V
		return zero, false
	}
	return c.items.Get(key)
}

// Set implements Cache.Set. Overwriting a key moves it to the most recently
// used position without growing the cache. Eviction happens before Set returns.
func (c *BoundedCache[V]) Set(key string, value V) {
	if c.items == nil {
		return
	}
	c.items.Add(key, value)
}

// Has implements Cache.Has. It never changes eviction order.
func (c *BoundedCache[V]) Has(key string) bool {
	if c.items == nil {
		return false
	}
	return c.items.Contains(key)
}

// Len implements Cache.Len.
func (c *BoundedCache[V]) Len() int {
	if c.items == nil {
		return 0
	}
	return c.items.Len()
}

// Clear implements Cache.Clear.
func (c *BoundedCache[V]) Clear() {
	if c.items == nil {
		return
	}
	c.items.Purge()
}

// Keys returns the cached keys from least to most recently used.
func (c *BoundedCache[V]) Keys() []string {
	if c.items == nil {
		return nil
	}
	return c.items.Keys()
}

// Ensure BoundedCache implements Cache at compile time.
var _ Cache[any] = (*BoundedCache[any])(nil)
