package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"StockPulse/internal/collector"
	"StockPulse/internal/httpclient"
	"StockPulse/internal/model"
	"StockPulse/internal/strategy"
)

func main() {
	provider := flag.String("provider", "yahoo", "data provider: yahoo, alphavantage or mock")
	days := flag.Int("days", 180, "days of history to analyze")
	apiKey := flag.String("api-key", os.Getenv("ALPHAVANTAGE_API_KEY"), "Alpha Vantage API key")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(level)

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: analyze [flags] SYMBOL...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if *days < 1 {
		fmt.Fprintln(os.Stderr, "analyze: -days must be at least 1")
		os.Exit(2)
	}

	client := httpclient.New(httpclient.Options{Proxy: os.Getenv("HTTPS_PROXY")})
	fetcher, err := collector.NewFetcher(*provider, client, *apiKey)
	if err != nil {
		log.Fatal().Err(err).Msg("init fetcher")
	}
	col := collector.NewCollector(fetcher, nil, *days, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	recs := make([]*model.Recommendation, 0, flag.NArg())
	failed := 0
	for _, sym := range flag.Args() {
		h, err := col.Collect(ctx, sym)
		if err != nil {
			log.Error().Err(err).Str("symbol", sym).Msg("collect")
			failed++
			continue
		}
		recs = append(recs, strategy.Recommend(h, time.Now()))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recs); err != nil {
		log.Fatal().Err(err).Msg("encode output")
	}
	if failed > 0 {
		os.Exit(1)
	}
}
