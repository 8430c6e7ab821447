package calculator

import "StockPulse/internal/model"

// MACD periods. The signal line is derived from the MACD line by a fixed ratio
// rather than a 9-period EMA of the MACD history.
const (
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
	MACDSignalRatio  = 0.9
)

// CalculateEMA returns the exponential moving average of prices, seeded with the
// simple mean of the first `period` prices. With fewer than `period` prices it
// returns the last price (0 for an empty slice).
func CalculateEMA(prices []float64, period int) float64 {
	if len(prices) == 0 {
		return 0
	}
	if period <= 0 || len(prices) < period {
		return prices[len(prices)-1]
	}

	ema := mean(prices[:period])
	k := 2.0 / float64(period+1)
	for _, p := range prices[period:] {
		ema = (p-ema)*k + ema
	}
	return ema
}

// CalculateMACD computes the 12/26 MACD line. Fewer than 26 prices yields zeros.
func CalculateMACD(prices []float64) model.MACD {
	if len(prices) < MACDSlowPeriod {
		return model.MACD{}
	}
	macd := CalculateEMA(prices, MACDFastPeriod) - CalculateEMA(prices, MACDSlowPeriod)
	signal := macd * MACDSignalRatio
	return model.MACD{
		MACD:      macd,
		Signal:    signal,
		Histogram: macd - signal,
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
