package cache

import (
	"context"
	"sync"
	"time"

	"github.com/partsight/backend/internal/domain"
)

// cacheItem represents a single cached record with expiration
type cacheItem struct {
	record     *domain.ProductRecord
	expiration time.Time
}

// MemoryCache is a thread-safe in-memory record cache with TTL support.
// Records are immutable once fetched, so Get hands out the stored pointer.
type MemoryCache struct {
	data  map[domain.ProductKey]cacheItem
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory record cache
func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		data: make(map[domain.ProductKey]cacheItem),
	}

	// Cleanup goroutine removes expired entries every 10 minutes
	go cache.cleanupExpired()

	return cache
}

// Get retrieves a record from the cache
func (c *MemoryCache) Get(ctx context.Context, key domain.ProductKey) (*domain.ProductRecord, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists || time.Now().After(item.expiration) {
		return nil, domain.ErrCacheMiss
	}

	return item.record, nil
}

// Set stores a record in the cache with TTL
func (c *MemoryCache) Set(ctx context.Context, key domain.ProductKey, record *domain.ProductRecord, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		record:     record,
		expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a record from the cache
func (c *MemoryCache) Delete(ctx context.Context, key domain.ProductKey) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// cleanupExpired removes expired entries from the cache periodically
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, item := range c.data {
			if now.After(item.expiration) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}

// Size returns the current number of cached records (for debugging/monitoring)
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all records from the cache
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[domain.ProductKey]cacheItem)
}
