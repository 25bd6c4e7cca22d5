package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize bounds the number of product references remembered per run.
const DefaultSize = 10000

// Key identifies a product reference: either its related link or a
// "type:id" pair.
type Key string

func LinkKey(link string) Key { return Key(link) }

func TypedKey(typ, id string) Key { return Key(typ + ":" + id) }

// Cache memoizes product lookups. A nil value is a remembered failure, so a
// reference that could not be resolved is not fetched again in the same run.
type Cache[V any] struct {
	size int
	lru  *lru.Cache[Key, *V]
}

func New[V any](size int) (*Cache[V], error) {
	if size <= 0 {
		size = DefaultSize
	}
	c, err := lru.New[Key, *V](size)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{
		size: size,
		lru:  c,
	}, nil
}

// Get returns the cached value and whether the key was seen. A seen key with
// a nil value is a negative entry.
func (c *Cache[V]) Get(key Key) (*V, bool) {
	return c.lru.Get(key)
}

func (c *Cache[V]) Set(key Key, v *V) {
	c.lru.Add(key, v)
}

func (c *Cache[V]) Len() int { return c.lru.Len() }

// Purge forgets everything; called at the start of each ingestion run.
func (c *Cache[V]) Purge() {
	c.lru.Purge()
}
