package strategy

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockPulse/internal/model"
)

func seriesOf(prices ...float64) []model.PricePoint {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, len(prices))
	for i, p := range prices {
		points[i] = model.NewPricePoint(start.AddDate(0, 0, i), p)
	}
	return points
}

func linear(from, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = from + step*float64(i)
	}
	return out
}

func wave(n int, amp float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + amp*math.Sin(float64(i)*0.45) + 0.05*float64(i)
	}
	return out
}

func TestAnalyze_ShortRisingSeriesIsNeutral(t *testing.T) {
	// 100..114: RSI is 100 and momentum positive, but MACD needs 26 points.
	ind := Analyze(seriesOf(linear(100, 1, 15)...))

	assert.Equal(t, 100.0, ind.RSI)
	assert.Equal(t, model.MACD{}, ind.MACD)
	assert.InDelta(t, (114.0-105.0)/105.0*100, ind.Momentum, 1e-9)
	assert.Equal(t, model.TrendNeutral, ind.Trend)
	assert.InDelta(t, 55+25.0/3, ind.Confidence, 1e-9)
}

func TestAnalyze_FlatSeries(t *testing.T) {
	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = 100
	}
	ind := Analyze(seriesOf(prices...))

	assert.Equal(t, 50.0, ind.RSI)
	assert.Equal(t, 0.0, ind.Momentum)
	assert.Equal(t, model.TrendNeutral, ind.Trend)
	assert.Equal(t, 80.0, ind.Confidence)
	require.NotNil(t, ind.SupportResistance)
	assert.False(t, math.IsNaN(*ind.SupportResistance.PivotPoint))
}

func TestAnalyze_BullAndBear(t *testing.T) {
	bull := Analyze(seriesOf(linear(100, 1, 40)...))
	assert.Equal(t, model.TrendBullish, bull.Trend)
	assert.Equal(t, 90.0, bull.Confidence)

	bear := Analyze(seriesOf(linear(200, -1, 40)...))
	assert.Equal(t, model.TrendBearish, bear.Trend)
	assert.Equal(t, 90.0, bear.Confidence)

	long := Analyze(seriesOf(linear(100, 1, 120)...))
	assert.Equal(t, 95.0, long.Confidence, "confidence is capped")
}

func TestAnalyze_Empty(t *testing.T) {
	ind := Analyze(nil)
	assert.Equal(t, 50.0, ind.RSI)
	assert.Nil(t, ind.SupportResistance)
	assert.Equal(t, model.TrendNeutral, ind.Trend)
	assert.GreaterOrEqual(t, ind.Confidence, 30.0)
}

func TestAnalyze_OutputsBounded(t *testing.T) {
	for n := 0; n <= 120; n += 7 {
		for _, amp := range []float64{0.5, 5, 25} {
			points := seriesOf(wave(n, amp)...)
			ind := Analyze(points)
			assert.GreaterOrEqual(t, ind.Confidence, 30.0)
			assert.LessOrEqual(t, ind.Confidence, 95.0)

			price := 0.0
			if n > 0 {
				price = points[n-1].Price
			}
			score := TechnicalScore(&ind, price)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}

func TestAnalyze_ConcurrentCallsAgree(t *testing.T) {
	points := seriesOf(wave(90, 8)...)
	want := Analyze(points)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, Analyze(points))
		}()
	}
	wg.Wait()
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		rsi, hist, mom float64
		want           model.Trend
	}{
		{65, 0.1, 1, model.TrendBullish},
		{60, 0.1, 1, model.TrendNeutral},
		{65, 0, 1, model.TrendNeutral},
		{65, 0.1, 0, model.TrendNeutral},
		{35, -0.1, -1, model.TrendBearish},
		{40, -0.1, -1, model.TrendNeutral},
		{35, 0.1, -1, model.TrendNeutral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyTrend(tt.rsi, tt.hist, tt.mom), "rsi=%v hist=%v mom=%v", tt.rsi, tt.hist, tt.mom)
	}
}

func TestCalculateConfidence_VolumeBonus(t *testing.T) {
	// Neutral with no aligned signals: only the volume bonus moves the value.
	ind := &model.TechnicalIndicators{RSI: 70, MACD: model.MACD{Histogram: 1}, Momentum: 5, Trend: model.TrendNeutral}
	tests := []struct {
		points int
		want   float64
	}{
		{10, 55}, {29, 55}, {30, 65}, {59, 65}, {60, 70}, {89, 70}, {90, 75}, {500, 75},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateConfidence(tt.points, ind), "points=%d", tt.points)
	}
}
