package assets

import (
	"container/list"
	"sync"
)

// Cache is an in-memory cache for raw asset bytes with a total size budget.
// When the budget is exceeded the least recently used entries are dropped.
type Cache struct {
	budget int64
	size   int64
	order  *list.List
	items  map[string]*list.Element
	mu     sync.Mutex

	// Stats
	hits   int
	misses int
}

type cacheItem struct {
	key  string
	data []byte
}

// NewCache creates a cache holding at most budget bytes. A budget of zero or
// less disables caching.
func NewCache(budget int64) *Cache {
	return &Cache{
		budget: budget,
		order:  list.New(),
		items:  make(map[string]*list.Element),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.order.MoveToFront(el)
	return el.Value.(*cacheItem).data, true
}

// Set stores an item in cache. Items larger than the whole budget are not kept.
func (c *Cache) Set(key string, data []byte) {
	n := int64(len(data))
	if n > c.budget {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.size -= int64(len(el.Value.(*cacheItem).data))
		c.order.Remove(el)
		delete(c.items, key)
	}

	for c.size+n > c.budget {
		oldest := c.order.Back()
		item := oldest.Value.(*cacheItem)
		c.order.Remove(oldest)
		delete(c.items, item.key)
		c.size -= int64(len(item.data))
	}

	c.items[key] = c.order.PushFront(&cacheItem{key: key, data: data})
	c.size += n
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.items = make(map[string]*list.Element)
	c.size = 0
	c.hits = 0
	c.misses = 0
}

// Len returns the number of cached items.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Size returns the cached bytes.
func (c *Cache) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
