package collector

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"StockPulse/internal/cache"
	"StockPulse/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// It is safe for concurrent use.
type MockFetcher struct {
	Price  float64
	Points []model.PricePoint
	Err    error

	mu    sync.Mutex
	calls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_ context.Context, _ string, days int) ([]model.PricePoint, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Points != nil {
		return m.Points, nil
	}
	return generateMockPoints(m.Price, days), nil
}

// Calls returns how many history fetches were made.
func (m *MockFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockFetcher) FetchCurrentPrice(_ context.Context, _ string) (float64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Price, nil
}

// generateMockPoints produces a gently oscillating daily series ending yesterday.
func generateMockPoints(basePrice float64, count int) []model.PricePoint {
	if count < 1 {
		return []model.PricePoint{}
	}
	end := time.Now().UTC().AddDate(0, 0, -1)
	points := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + 0.02*math.Sin(float64(i)/4) + float64(i-count/2)*0.001)
		points[i] = model.NewPricePoint(end.AddDate(0, 0, i-count+1), p)
	}
	return points
}

// Collector fetches price history through a read-through cache.
type Collector struct {
	Fetcher Fetcher
	Cache   cache.PriceCache
	Days    int
	TTL     time.Duration
	Now     func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, c cache.PriceCache, days int, ttl time.Duration) *Collector {
	return &Collector{Fetcher: fetcher, Cache: c, Days: days, TTL: ttl, Now: time.Now}
}

func cacheKey(symbol string, days int) string {
	return fmt.Sprintf("prices:%s:%d", symbol, days)
}

// Collect returns the price history for symbol, from cache when fresh.
func (c *Collector) Collect(ctx context.Context, symbol string) (*model.PriceHistory, error) {
	sym, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if c.Days < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDays, c.Days)
	}
	key := cacheKey(sym, c.Days)

	if c.Cache != nil {
		h, ok, err := c.Cache.Get(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("symbol", sym).Msg("price cache read failed")
		} else if ok {
			log.Debug().Str("symbol", sym).Msg("price cache hit")
			return h, nil
		}
	}

	points, err := c.Fetcher.FetchHistory(ctx, sym, c.Days)
	if err != nil {
		return nil, fmt.Errorf("fetch history %s: %w", sym, err)
	}

	h := &model.PriceHistory{
		Symbol:    sym,
		Points:    points,
		Source:    c.Fetcher.Name(),
		FetchedAt: c.Now(),
	}

	if price, err := c.Fetcher.FetchCurrentPrice(ctx, sym); err != nil {
		log.Warn().Err(err).Str("symbol", sym).Msg("current price unavailable, using last close")
		if len(points) > 0 {
			h.CurrentPrice = points[len(points)-1].Price
		}
	} else {
		h.CurrentPrice = price
	}

	if c.Cache != nil {
		if err := c.Cache.Set(ctx, key, h, c.TTL); err != nil {
			log.Warn().Err(err).Str("symbol", sym).Msg("price cache write failed")
		}
	}
	log.Info().Str("symbol", sym).Str("source", h.Source).Int("points", len(points)).Msg("price history fetched")
	return h, nil
}
