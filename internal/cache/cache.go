// Package cache stores recently fetched price histories so repeated analyses
// of the same symbol do not hit the upstream data source.
package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"StockPulse/internal/model"
)

// PriceCache stores price histories by key with a time-to-live.
type PriceCache interface {
	Get(ctx context.Context, key string) (*model.PriceHistory, bool, error)
	Set(ctx context.Context, key string, h *model.PriceHistory, ttl time.Duration) error
}

// Open returns the cache for backend together with a func that releases it.
// An unreachable Redis falls back to a MemoryCache.
func Open(ctx context.Context, backend, addr, password string, db int) (PriceCache, func() error) {
	if backend != "redis" {
		return NewMemoryCache(), func() error { return nil }
	}
	rc, err := NewRedisCache(ctx, addr, password, db)
	if err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("redis unavailable, using memory cache")
		return NewMemoryCache(), func() error { return nil }
	}
	return rc, rc.Close
}
