package cache

import (
	"context"
	"sync"
	"time"

	"StockPulse/internal/model"
)

type memoryEntry struct {
	history   model.PriceHistory
	expiresAt time.Time
}

// MemoryCache is an in-process PriceCache.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache creates an empty cache using the wall clock.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*model.PriceHistory, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	h := e.history
	h.Points = append([]model.PricePoint(nil), e.history.Points...)
	return &h, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, h *model.PriceHistory, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := *h
	stored.Points = append([]model.PricePoint(nil), h.Points...)
	c.entries[key] = memoryEntry{history: stored, expiresAt: c.now().Add(ttl)}
	return nil
}

// Len returns the number of entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
