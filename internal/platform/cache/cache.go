// Package cache provides a process-local TTL cache with bounded LRU
// eviction, used to memoize the expensive community aggregate queries.
// Expired entries are dropped lazily on the next read; there is no
// background sweeper. State lives for the server process lifetime only.
package cache

import (
	"container/list"
	"sync"
	"time"
)

type entry struct {
	key      string
	value    any
	storedAt time.Time
}

type Cache struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	ll         *list.List
	items      map[string]*list.Element

	now func() time.Time // overridable in tests
}

func New(ttl time.Duration, maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &Cache{
		ttl:        ttl,
		maxEntries: maxEntries,
		ll:         list.New(),
		items:      make(map[string]*list.Element),
		now:        time.Now,
	}
}

// Get returns the cached value for key if it was stored less than one TTL
// ago. A hit refreshes the entry's LRU position, not its expiry.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	ent := elem.Value.(*entry)
	if c.now().Sub(ent.storedAt) >= c.ttl {
		c.removeElement(elem)
		return nil, false
	}
	c.ll.MoveToFront(elem)
	return ent.value, true
}

// Set stores value under key, overwriting any previous entry and evicting
// the least recently used entry when the bound is exceeded.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.ll.MoveToFront(elem)
		ent := elem.Value.(*entry)
		ent.value = value
		ent.storedAt = c.now()
		return
	}

	elem := c.ll.PushFront(&entry{key: key, value: value, storedAt: c.now()})
	c.items[key] = elem
	if c.ll.Len() > c.maxEntries {
		if oldest := c.ll.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

func (c *Cache) removeElement(elem *list.Element) {
	c.ll.Remove(elem)
	delete(c.items, elem.Value.(*entry).key)
}
