package calculator

import (
	"math"
	"time"

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

func constant(v float64, n int) []float64 {
	return linear(v, 0, n)
}

// wave is a drifting sine so that both gains and losses occur.
func wave(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + 5*math.Sin(float64(i)*0.7) + 0.1*float64(i)
	}
	return out
}
