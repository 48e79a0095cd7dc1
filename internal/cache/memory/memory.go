// Package memory provides a bounded in-process response cache with LRU
// eviction and per-entry TTL.
package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"advisor/internal/domain"
)

const (
	defaultCapacity = 256
	defaultTTL      = time.Hour
)

type entry struct {
	key      string
	resp     *domain.Response
	deadline time.Time
}

// Cache memoizes responses by normalized query text. Capacity- and
// TTL-bounded so a long-running process never grows without limit.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	order    *list.List
	entries  map[string]*list.Element
	now      func() time.Time
}

// NewCache creates a cache with the given capacity and TTL. Non-positive
// values fall back to 256 entries and one hour.
func NewCache(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
		now:      time.Now,
	}
}

// Get returns the cached response for key, if present and not expired.
func (c *Cache) Get(_ context.Context, key string) (*domain.Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	ent := elem.Value.(*entry)
	if c.now().After(ent.deadline) {
		c.order.Remove(elem)
		delete(c.entries, key)
		return nil, false
	}
	c.order.MoveToFront(elem)
	return ent.resp, true
}

// Set stores resp under key, evicting the least recently used entry when
// the cache is full.
func (c *Cache) Set(_ context.Context, key string, resp *domain.Response) {
	c.mu.Lock()
	defer c.mu.Unlock()
	deadline := c.now().Add(c.ttl)
	if elem, ok := c.entries[key]; ok {
		ent := elem.Value.(*entry)
		ent.resp = resp
		ent.deadline = deadline
		c.order.MoveToFront(elem)
		return
	}
	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*entry).key)
		}
	}
	c.entries[key] = c.order.PushFront(&entry{key: key, resp: resp, deadline: deadline})
}

// Purge drops every entry.
func (c *Cache) Purge(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.entries = make(map[string]*list.Element)
}

// Len reports the number of live entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
