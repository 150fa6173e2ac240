// Package cache provides a small size-bounded LRU used to memoize
// presentation helpers. Nothing stored here may affect game outcomes.
package cache

import (
	"container/list"
	"sync"
)

// LRU is a size-bounded least-recently-used cache, safe for concurrent use.
type LRU[T any] struct {
	mu      sync.Mutex
	maxSize int
	items   map[string]*list.Element
	order   *list.List
}

type entry[T any] struct {
	key  string
	data T
}

// NewLRU creates a cache holding at most maxSize entries (minimum 1).
func NewLRU[T any](maxSize int) *LRU[T] {
	if maxSize < 1 {
		maxSize = 1
	}
	return &LRU[T]{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		order:   list.New(),
	}
}

// Get returns the cached value and marks it most recently used.
func (c *LRU[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		var zero T
		return zero, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*entry[T]).data, true
}

// Set stores a value, evicting the least recently used entry when full.
func (c *LRU[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(key, data)
}

// GetOrCreate returns the cached value or builds, stores and returns it.
// Failed builds are not cached.
func (c *LRU[T]) GetOrCreate(key string, build func() (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*entry[T]).data, nil
	}
	data, err := build()
	if err != nil {
		var zero T
		return zero, err
	}
	c.set(key, data)
	return data, nil
}

func (c *LRU[T]) set(key string, data T) {
	if elem, ok := c.items[key]; ok {
		elem.Value.(*entry[T]).data = data
		c.order.MoveToFront(elem)
		return
	}
	c.items[key] = c.order.PushFront(&entry[T]{key: key, data: data})
	if c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		delete(c.items, oldest.Value.(*entry[T]).key)
		c.order.Remove(oldest)
	}
}

// Len returns the number of cached entries.
func (c *LRU[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
