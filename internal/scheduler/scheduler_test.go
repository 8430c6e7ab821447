package scheduler

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockPulse/internal/cache"
	"StockPulse/internal/collector"
	"StockPulse/internal/portfolio"
	"StockPulse/internal/recorder"
)

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) Send(_ context.Context, text string) error {
	f.sent = append(f.sent, text)
	return f.err
}

func newTestScheduler(t *testing.T, fetcher collector.Fetcher) (*Scheduler, *fakeNotifier) {
	t.Helper()
	dir := t.TempDir()
	pm, err := portfolio.NewManager(portfolio.NewFileRepository(filepath.Join(dir, "portfolio.json")))
	require.NoError(t, err)
	rec, err := recorder.NewSQLiteRecorder(filepath.Join(dir, "pulse.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rec.Close() })

	col := collector.NewCollector(fetcher, cache.NewMemoryCache(), 120, time.Hour)
	n := &fakeNotifier{}
	s := NewScheduler(context.Background(), col, pm, n, rec)
	s.Now = func() time.Time { return time.Date(2025, 6, 2, 22, 0, 0, 0, time.UTC) }
	return s, n
}

func TestHandleCommand_Analyze(t *testing.T) {
	s, _ := newTestScheduler(t, &collector.MockFetcher{Price: 100})

	reply := s.HandleCommand("/analyze msft")
	assert.Contains(t, reply, "<b>MSFT</b>")
	assert.Contains(t, reply, "score")

	history := s.HandleCommand("/history MSFT")
	assert.Contains(t, history, "MSFT history")
	assert.Contains(t, history, "RSI")

	assert.Equal(t, "Usage: /analyze SYMBOL", s.HandleCommand("/analyze"))
	assert.Equal(t, "❌ Invalid symbol.", s.HandleCommand("/analyze $$$"))
}

func TestHandleCommand_PortfolioLifecycle(t *testing.T) {
	s, _ := newTestScheduler(t, &collector.MockFetcher{Price: 100})

	assert.Equal(t, "✅ AAPL: 10 shares, avg cost 90.00", s.HandleCommand("/add aapl 10 90"))
	assert.Equal(t, "❌ SHARES and PRICE must be numbers.", s.HandleCommand("/add AAPL ten 90"))
	assert.Contains(t, s.HandleCommand("/add AAPL -1 90"), "shares must be positive")

	reply := s.HandleCommand("/portfolio")
	assert.Contains(t, reply, "AAPL: 10 sh @ 90.00 = $1,000")
	assert.Contains(t, reply, "+$100")

	assert.Equal(t, "✅ AAPL removed", s.HandleCommand("/remove AAPL"))
	assert.Equal(t, "❌ Not in portfolio.", s.HandleCommand("/remove AAPL"))
	assert.Contains(t, s.HandleCommand("/portfolio"), "No holdings")
}

func TestHandleCommand_Help(t *testing.T) {
	s, _ := newTestScheduler(t, &collector.MockFetcher{Price: 100})
	assert.Equal(t, helpText, s.HandleCommand("hello"))
	assert.Equal(t, helpText, s.HandleCommand(""))
}

func TestReportTask(t *testing.T) {
	s, n := newTestScheduler(t, &collector.MockFetcher{Price: 50})
	_, err := s.Portfolio.Add("AMD", d("3"), d("40"))
	require.NoError(t, err)

	s.RunReportNow()
	require.Len(t, n.sent, 2)
	assert.Contains(t, n.sent[0], "StockPulse digest")
	assert.Contains(t, n.sent[0], "AMD")
	assert.Contains(t, n.sent[1], "AMD: 3 sh @ 40.00")

	snaps, err := s.Recorder.RecentAnalyses("AMD", 5)
	require.NoError(t, err)
	assert.Len(t, snaps, 1)
}

func TestReportTask_FetchFailure(t *testing.T) {
	s, n := newTestScheduler(t, &collector.MockFetcher{Err: errors.New("upstream down")})
	_, err := s.Portfolio.Add("AMD", d("1"), d("40"))
	require.NoError(t, err)

	s.RunReportNow()
	require.NotEmpty(t, n.sent)
	assert.Contains(t, n.sent[0], "No data: AMD")
}

func TestRegisterAll(t *testing.T) {
	s, _ := newTestScheduler(t, &collector.MockFetcher{Price: 50})
	require.NoError(t, s.RegisterAll("0 */30 9-16 * * 1-5", "0 0 22 * * 1-5"))
	assert.Len(t, s.Cron.Entries(), 2)
	assert.Error(t, s.RegisterAll("not a cron", "0 0 22 * * 1-5"))
}
