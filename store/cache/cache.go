// Package cache provides a small in-memory TTL cache used by the store for
// hot, rarely-changing rows such as user settings.
package cache

import (
	"sync"
	"time"
)

// Config holds the cache configuration.
type Config struct {
	DefaultTTL      time.Duration // zero → 10 minutes
	CleanupInterval time.Duration // zero → DefaultTTL / 2
	MaxItems        int           // zero → unbounded
	OnEviction      func(key string, value any)
}

type item struct {
	value     any
	expiresAt time.Time
}

// Cache is a TTL cache safe for concurrent use.
type Cache struct {
	mu     sync.RWMutex
	items  map[string]item
	config Config
	done   chan struct{}
	once   sync.Once
}

// New creates a cache and starts its cleanup goroutine.
func New(config Config) *Cache {
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = 10 * time.Minute
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = config.DefaultTTL / 2
	}

	c := &Cache{
		items:  make(map[string]item),
		config: config,
		done:   make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Get returns the cached value for key if present and not expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(it.expiresAt) {
		return nil, false
	}
	return it.value, true
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value any) {
	c.SetWithTTL(key, value, c.config.DefaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL.
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.config.MaxItems > 0 && len(c.items) >= c.config.MaxItems {
		if _, exists := c.items[key]; !exists {
			c.evictOneLocked()
		}
	}
	c.items[key] = item{value: value, expiresAt: time.Now().Add(ttl)}
}

// Delete removes key from the cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if it, ok := c.items[key]; ok {
		delete(c.items, key)
		if c.config.OnEviction != nil {
			c.config.OnEviction(key, it.value)
		}
	}
}

// Close stops the cleanup goroutine.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *Cache) removeExpired() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, it := range c.items {
		if now.After(it.expiresAt) {
			delete(c.items, key)
			if c.config.OnEviction != nil {
				c.config.OnEviction(key, it.value)
			}
		}
	}
}

// evictOneLocked drops the entry closest to expiry to make room.
func (c *Cache) evictOneLocked() {
	var victim string
	var earliest time.Time
	for key, it := range c.items {
		if victim == "" || it.expiresAt.Before(earliest) {
			victim = key
			earliest = it.expiresAt
		}
	}
	if victim != "" {
		it := c.items[victim]
		delete(c.items, victim)
		if c.config.OnEviction != nil {
			c.config.OnEviction(victim, it.value)
		}
	}
}
