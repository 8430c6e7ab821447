package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"StockPulse/internal/cache"
	"StockPulse/internal/collector"
	"StockPulse/internal/config"
	"StockPulse/internal/httpclient"
	"StockPulse/internal/notifier"
	"StockPulse/internal/portfolio"
	"StockPulse/internal/recorder"
	"StockPulse/internal/scheduler"
)

func main() {
	setupLogging("info")
	log.Info().Msg("StockPulse starting...")

	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	setupLogging(cfg.Log.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := httpclient.New(httpclient.Options{
		RequestsPerSec: cfg.DataSource.RequestsPerSec,
		Proxy:          cfg.Proxy,
	})

	fetcher, err := collector.NewFetcher(cfg.DataSource.Provider, client, cfg.DataSource.APIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("init fetcher")
	}
	log.Info().Str("source", fetcher.Name()).Msg("data source ready")

	priceCache, closeCache := cache.Open(ctx, cfg.Cache.Backend, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
	defer closeCache()
	col := collector.NewCollector(fetcher, priceCache, cfg.DataSource.HistoryDays, cfg.Cache.TTL)

	pm, err := portfolio.NewManager(portfolio.NewFileRepository(cfg.Portfolio.StateFile))
	if err != nil {
		log.Fatal().Err(err).Msg("init portfolio")
	}

	var rec recorder.Recorder
	if sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath); err != nil {
		log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		rec = recorder.NewNoopRecorder()
	} else {
		rec = sr
	}
	defer rec.Close()

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, client)

	sched := scheduler.NewScheduler(ctx, col, pm, tn, rec)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.ReportCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Info().Msg("telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, sending report now")
		go sched.RunReportNow()
	}

	log.Info().Int("holdings", len(pm.Symbols())).Msg("StockPulse is running, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping...")
	cancel()
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(lvl)
}
