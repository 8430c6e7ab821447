package calculator

import (
	"testing"

	"github.com/markcheno/go-talib"
	"github.com/stretchr/testify/assert"

	"StockPulse/internal/model"
)

func TestCalculateEMA(t *testing.T) {
	assert.Equal(t, 0.0, CalculateEMA(nil, 3))
	assert.Equal(t, 7.0, CalculateEMA([]float64{5, 7}, 3), "short input degrades to last price")
	assert.InDelta(t, 2.0, CalculateEMA([]float64{1, 2, 3}, 3), 1e-12)
	assert.InDelta(t, 3.0, CalculateEMA([]float64{1, 2, 3, 4}, 3), 1e-12)
}

func TestCalculateEMA_MatchesTalib(t *testing.T) {
	prices := wave(50)
	for _, period := range []int{MACDFastPeriod, MACDSlowPeriod} {
		ref := talib.Ema(prices, period)
		assert.InDelta(t, ref[len(ref)-1], CalculateEMA(prices, period), 1e-6, "period %d", period)
	}
}

func TestCalculateMACD(t *testing.T) {
	t.Run("insufficient data", func(t *testing.T) {
		assert.Equal(t, model.MACD{}, CalculateMACD(linear(100, 1, 25)))
	})

	t.Run("flat prices", func(t *testing.T) {
		m := CalculateMACD(constant(50, 30))
		assert.InDelta(t, 0, m.MACD, 1e-12)
		assert.InDelta(t, 0, m.Histogram, 1e-12)
	})

	t.Run("rising prices", func(t *testing.T) {
		prices := linear(100, 1, 40)
		m := CalculateMACD(prices)
		expected := CalculateEMA(prices, 12) - CalculateEMA(prices, 26)
		assert.Greater(t, m.MACD, 0.0)
		assert.InDelta(t, expected, m.MACD, 1e-12)
		assert.InDelta(t, m.MACD*0.9, m.Signal, 1e-12)
		assert.InDelta(t, m.MACD*0.1, m.Histogram, 1e-12)
	})

	t.Run("falling prices", func(t *testing.T) {
		m := CalculateMACD(linear(200, -1, 40))
		assert.Less(t, m.Histogram, 0.0)
	})
}
