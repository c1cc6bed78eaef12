package compute_heatmap

import (
	"context"
	"sync"
	"time"
)

// MemoryCache кеш в памяти процесса с TTL. Записи изолированы по sessionID.
type MemoryCache struct {
	mu    sync.Mutex
	items map[string]memoryItem
	ttl   time.Duration
	now   func() time.Time
}

type memoryItem struct {
	entry     *Entry
	expiresAt time.Time
}

// NewMemoryCache создает кеш в памяти
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		items: make(map[string]memoryItem),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Load возвращает копию записи сессии или ErrCacheMiss
func (c *MemoryCache) Load(_ context.Context, sessionID string) (*Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[sessionID]
	if !ok {
		return nil, ErrCacheMiss
	}
	if c.ttl > 0 && c.now().After(item.expiresAt) {
		delete(c.items, sessionID)
		return nil, ErrCacheMiss
	}
	return cloneEntry(item.entry), nil
}

// Store сохраняет копию записи и продлевает TTL
func (c *MemoryCache) Store(_ context.Context, sessionID string, entry *Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictExpired()
	c.items[sessionID] = memoryItem{entry: cloneEntry(entry), expiresAt: c.now().Add(c.ttl)}
	return nil
}

func (c *MemoryCache) evictExpired() {
	if c.ttl <= 0 {
		return
	}
	now := c.now()
	for id, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, id)
		}
	}
}

func cloneEntry(e *Entry) *Entry {
	clone := &Entry{Days: make(map[string]bool, len(e.Days))}
	if e.LocationID != nil {
		loc := *e.LocationID
		clone.LocationID = &loc
	}
	for d, v := range e.Days {
		clone.Days[d] = v
	}
	return clone
}
