package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockPulse/internal/model"
)

func newTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "pulse.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	r := newTestRecorder(t)
	base := time.Date(2025, 2, 3, 14, 30, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		rec := &model.Recommendation{
			Symbol: "NVDA",
			Price:  700 + float64(i),
			Indicators: model.TechnicalIndicators{
				RSI:        55 + float64(i),
				MACD:       model.MACD{MACD: 1.5, Signal: 1.35, Histogram: 0.15},
				Momentum:   3.2,
				Trend:      model.TrendNeutral,
				Confidence: 80,
				SupportResistance: &model.SupportResistance{
					Support:    []float64{690, 680},
					Resistance: []float64{720},
				},
			},
			Score:       65 + i,
			Action:      model.ActionBuy,
			DataPoints:  120,
			GeneratedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, r.RecordAnalysis(SnapshotFromRecommendation(rec, "yahoo")))
	}
	require.NoError(t, r.RecordAnalysis(&AnalysisSnapshot{Symbol: "AMD", Score: 40}))

	got, err := r.RecentAnalyses("NVDA", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	latest := got[0]
	assert.NotEmpty(t, latest.ID)
	assert.Equal(t, 67, latest.Score)
	assert.Equal(t, 702.0, latest.Price)
	assert.Equal(t, model.TrendNeutral, latest.Trend)
	assert.Equal(t, model.ActionBuy, latest.Action)
	assert.Equal(t, []float64{690, 680}, latest.Support)
	assert.Equal(t, []float64{720}, latest.Resistance)
	assert.Equal(t, "yahoo", latest.Source)
	assert.True(t, base.Add(2*time.Hour).Equal(latest.GeneratedAt))
	assert.Equal(t, 66, got[1].Score)

	amd, err := r.RecentAnalyses("AMD", 10)
	require.NoError(t, err)
	require.Len(t, amd, 1)
	assert.Empty(t, amd[0].Support)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordAnalysis(&AnalysisSnapshot{}))
	got, err := r.RecentAnalyses("X", 5)
	assert.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, r.Close())
}
