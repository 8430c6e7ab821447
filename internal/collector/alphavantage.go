package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"StockPulse/internal/httpclient"
	"StockPulse/internal/model"
)

// DefaultAlphaVantageBaseURL is the Alpha Vantage API host.
const DefaultAlphaVantageBaseURL = "https://www.alphavantage.co"

// AlphaVantageFetcher implements Fetcher using the Alpha Vantage REST API.
type AlphaVantageFetcher struct {
	Client  *httpclient.Client
	BaseURL string
	APIKey  string
}

// NewAlphaVantageFetcher creates a new fetcher.
func NewAlphaVantageFetcher(client *httpclient.Client, apiKey string) *AlphaVantageFetcher {
	return &AlphaVantageFetcher{Client: client, BaseURL: DefaultAlphaVantageBaseURL, APIKey: apiKey}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

// avEnvelope carries the fields Alpha Vantage uses to report problems with a 200 status.
type avEnvelope struct {
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

func (e avEnvelope) err() error {
	switch {
	case e.ErrorMessage != "":
		return fmt.Errorf("alphavantage error: %s", e.ErrorMessage)
	case e.Note != "":
		return fmt.Errorf("alphavantage throttled: %s", e.Note)
	case e.Information != "":
		return fmt.Errorf("alphavantage: %s", e.Information)
	}
	return nil
}

func (f *AlphaVantageFetcher) query(ctx context.Context, params url.Values, dest any) error {
	params.Set("apikey", f.APIKey)
	body, err := f.Client.Get(ctx, f.BaseURL+"/query?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("alphavantage fetch: %w", err)
	}
	var env avEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("alphavantage decode: %w", err)
	}
	if err := env.err(); err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("alphavantage decode: %w", err)
	}
	return nil
}

func (f *AlphaVantageFetcher) FetchHistory(ctx context.Context, symbol string, days int) ([]model.PricePoint, error) {
	if days < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDays, days)
	}
	outputSize := "compact" // last 100 sessions
	if days > 100 {
		outputSize = "full"
	}
	var result struct {
		Series map[string]struct {
			Close string `json:"4. close"`
		} `json:"Time Series (Daily)"`
	}
	params := url.Values{
		"function":   {"TIME_SERIES_DAILY"},
		"symbol":     {symbol},
		"outputsize": {outputSize},
	}
	if err := f.query(ctx, params, &result); err != nil {
		return nil, err
	}

	points := make([]model.PricePoint, 0, len(result.Series))
	for date, bar := range result.Series {
		t, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, fmt.Errorf("alphavantage date %q: %w", date, err)
		}
		price, err := strconv.ParseFloat(bar.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("alphavantage close %q: %w", bar.Close, err)
		}
		points = append(points, model.NewPricePoint(t, price))
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("alphavantage: no prices for %s", symbol)
	}

	// Ensure chronological order
	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp < points[j].Timestamp })
	if len(points) > days {
		points = points[len(points)-days:]
	}
	return points, nil
}

func (f *AlphaVantageFetcher) FetchCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	var result struct {
		Quote struct {
			Price string `json:"05. price"`
		} `json:"Global Quote"`
	}
	params := url.Values{"function": {"GLOBAL_QUOTE"}, "symbol": {symbol}}
	if err := f.query(ctx, params, &result); err != nil {
		return 0, err
	}
	if result.Quote.Price == "" {
		return 0, fmt.Errorf("alphavantage: no quote for %s", symbol)
	}
	price, err := strconv.ParseFloat(result.Quote.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("alphavantage price %q: %w", result.Quote.Price, err)
	}
	return price, nil
}
