package trends

import (
	"sync"
	"time"

	"github.com/thinkscotty/trendstory/internal/models"
)

// Cache is a TTL cache of normalized topic lists keyed by "source:limit".
// Entries are replaced wholesale; a stored slice is never mutated.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	topics    []models.Topic
	fetchedAt time.Time
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached topics for key if a live entry exists.
// Expired entries are dropped on access.
func (c *Cache) Get(key string) ([]models.Topic, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.fetchedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.topics, true
}

// Set stores topics under key with a fresh timestamp.
func (c *Cache) Set(key string, topics []models.Topic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{topics: topics, fetchedAt: c.now()}
}

// Len reports the number of stored entries, live or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
