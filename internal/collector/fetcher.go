package collector

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"StockPulse/internal/httpclient"
	"StockPulse/internal/model"
)

// ErrInvalidSymbol is returned for symbols that no data source would accept.
var ErrInvalidSymbol = errors.New("invalid symbol")

// ErrInvalidDays is returned when fewer than one day of history is requested.
var ErrInvalidDays = errors.New("history days must be positive")

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.^=-]{1,12}$`)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchHistory(ctx context.Context, symbol string, days int) ([]model.PricePoint, error)
	FetchCurrentPrice(ctx context.Context, symbol string) (float64, error)
	Name() string
}

// NormalizeSymbol upper-cases and validates a ticker.
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if !symbolPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}
	return s, nil
}

// NewFetcher builds the fetcher for a configured provider name.
func NewFetcher(provider string, client *httpclient.Client, apiKey string) (Fetcher, error) {
	switch provider {
	case "yahoo":
		return NewYahooFetcher(client), nil
	case "alphavantage":
		return NewAlphaVantageFetcher(client, apiKey), nil
	case "mock":
		return &MockFetcher{Price: 100}, nil
	default:
		return nil, fmt.Errorf("unknown data provider %q", provider)
	}
}
