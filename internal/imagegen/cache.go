package imagegen

import (
	"sync"

	"github.com/lox/inmetdash/internal/metrics"
)

// Cache holds rendered PNGs keyed by figure, selection and palette. The
// underlying data never changes after startup, so entries never go stale;
// once full, new renders are simply not cached.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]byte
	max     int
}

// NewCache creates a cache holding at most max images.
func NewCache(max int) *Cache {
	return &Cache{
		entries: make(map[string][]byte),
		max:     max,
	}
}

// Get returns the cached image for key.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, ok := c.entries[key]
	if ok {
		metrics.ImageCacheHits.Inc()
	} else {
		metrics.ImageCacheMisses.Inc()
	}
	return data, ok
}

// Set stores an image. It is a no-op once the cache is full.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.max {
		return
	}
	c.entries[key] = data
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetOrRender returns the cached image for key, rendering and storing it
// on a miss.
func (c *Cache) GetOrRender(key string, render func() ([]byte, error)) ([]byte, error) {
	if data, ok := c.Get(key); ok {
		return data, nil
	}
	data, err := render()
	if err != nil {
		return nil, err
	}
	c.Set(key, data)
	return data, nil
}
