package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"StockPulse/internal/collector"
	"StockPulse/internal/model"
	"StockPulse/internal/notifier"
	"StockPulse/internal/portfolio"
	"StockPulse/internal/recorder"
	"StockPulse/internal/strategy"
)

const historyLimit = 5

// Scheduler manages all cron tasks and bot commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Portfolio *portfolio.Manager
	Notifier  notifier.Notifier
	Recorder  recorder.Recorder
	Ctx       context.Context
	Now       func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, pm *portfolio.Manager, n notifier.Notifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Portfolio: pm,
		Notifier:  n,
		Recorder:  rec,
		Ctx:       ctx,
		Now:       time.Now,
	}
}

// RegisterAll registers the refresh and report tasks.
func (s *Scheduler) RegisterAll(refreshCron, reportCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := s.Cron.AddFunc(reportCron, s.reportTask); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunReportNow executes the report task immediately (for RUN_ON_START).
func (s *Scheduler) RunReportNow() {
	s.reportTask()
}

// Analyze collects prices for symbol, builds a recommendation and records it.
func (s *Scheduler) Analyze(ctx context.Context, symbol string) (*model.Recommendation, error) {
	h, err := s.Collector.Collect(ctx, symbol)
	if err != nil {
		return nil, err
	}
	rec := strategy.Recommend(h, s.Now())
	if err := s.Recorder.RecordAnalysis(recorder.SnapshotFromRecommendation(rec, h.Source)); err != nil {
		log.Error().Err(err).Str("symbol", rec.Symbol).Msg("record analysis")
	}
	return rec, nil
}

// analyzePortfolio analyzes every held symbol; failures are returned by name.
func (s *Scheduler) analyzePortfolio() (recs []*model.Recommendation, failed []string) {
	for _, sym := range s.Portfolio.Symbols() {
		rec, err := s.Analyze(s.Ctx, sym)
		if err != nil {
			log.Error().Err(err).Str("symbol", sym).Msg("analyze symbol")
			failed = append(failed, sym)
			continue
		}
		recs = append(recs, rec)
	}
	return recs, failed
}

func (s *Scheduler) refreshTask() {
	log.Info().Msg("running refresh task")
	recs, failed := s.analyzePortfolio()
	log.Info().Int("analyzed", len(recs)).Int("failed", len(failed)).Msg("refresh done")
}

func (s *Scheduler) reportTask() {
	log.Info().Msg("running report task")
	recs, failed := s.analyzePortfolio()
	s.trySend(notifier.FormatDigest(recs, failed, s.Now()))

	prices := make(map[string]float64, len(recs))
	for _, r := range recs {
		prices[r.Symbol] = r.Price
	}
	if len(s.Portfolio.Symbols()) > 0 {
		s.trySend(notifier.FormatPortfolio(s.Portfolio.Valuate(prices)))
	}
}

const helpText = "Commands:\n" +
	"• /analyze SYMBOL\n" +
	"• /portfolio\n" +
	"• /history SYMBOL\n" +
	"• /add SYMBOL SHARES PRICE\n" +
	"• /remove SYMBOL"

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}

	switch strings.ToLower(fields[0]) {
	case "/analyze":
		if len(fields) != 2 {
			return "Usage: /analyze SYMBOL"
		}
		rec, err := s.Analyze(s.Ctx, fields[1])
		if err != nil {
			return userError(err)
		}
		return notifier.FormatRecommendation(rec)

	case "/portfolio":
		prices := make(map[string]float64)
		for _, sym := range s.Portfolio.Symbols() {
			if h, err := s.Collector.Collect(s.Ctx, sym); err == nil {
				prices[sym] = h.CurrentPrice
			}
		}
		return notifier.FormatPortfolio(s.Portfolio.Valuate(prices))

	case "/history":
		if len(fields) != 2 {
			return "Usage: /history SYMBOL"
		}
		sym, err := collector.NormalizeSymbol(fields[1])
		if err != nil {
			return userError(err)
		}
		snaps, err := s.Recorder.RecentAnalyses(sym, historyLimit)
		if err != nil {
			log.Error().Err(err).Str("symbol", sym).Msg("load history")
			return "❌ Could not load history."
		}
		return notifier.FormatHistory(sym, snaps, s.Now())

	case "/add":
		if len(fields) != 4 {
			return "Usage: /add SYMBOL SHARES PRICE"
		}
		sym, err := collector.NormalizeSymbol(fields[1])
		if err != nil {
			return userError(err)
		}
		shares, err1 := decimal.NewFromString(fields[2])
		price, err2 := decimal.NewFromString(fields[3])
		if err := errors.Join(err1, err2); err != nil {
			return "❌ SHARES and PRICE must be numbers."
		}
		h, err := s.Portfolio.Add(sym, shares, price)
		if err != nil {
			return userError(err)
		}
		return fmt.Sprintf("✅ %s: %s shares, avg cost %s", h.Symbol, h.Shares.String(), h.CostBasis.StringFixed(2))

	case "/remove":
		if len(fields) != 2 {
			return "Usage: /remove SYMBOL"
		}
		sym, err := collector.NormalizeSymbol(fields[1])
		if err != nil {
			return userError(err)
		}
		if err := s.Portfolio.Remove(sym); err != nil {
			return userError(err)
		}
		return fmt.Sprintf("✅ %s removed", sym)

	default:
		return helpText
	}
}

func userError(err error) string {
	switch {
	case errors.Is(err, collector.ErrInvalidSymbol):
		return "❌ Invalid symbol."
	case errors.Is(err, portfolio.ErrNotFound):
		return "❌ Not in portfolio."
	default:
		return fmt.Sprintf("❌ %v", err)
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.Send(s.Ctx, text); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
