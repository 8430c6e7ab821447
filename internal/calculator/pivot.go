package calculator

import (
	"math"

	"StockPulse/internal/model"
)

// PivotWindow is the number of most recent points used for pivot levels.
const PivotWindow = 20

// PivotLevels holds the classic pivot and the positive levels derived from it.
type PivotLevels struct {
	Pivot      float64
	Support    []float64 // S1, S2
	Resistance []float64 // R1, R2
}

// CalculatePivotPoints derives classic floor-trader pivots from the high, low
// and last close of the most recent PivotWindow points.
func CalculatePivotPoints(points []model.PricePoint) PivotLevels {
	levels := PivotLevels{Support: []float64{}, Resistance: []float64{}}
	if len(points) == 0 {
		return levels
	}

	high, low := windowRange(points, PivotWindow)
	last := points[len(points)-1].Price
	pivot := (high + low + last) / 3
	spread := high - low
	levels.Pivot = pivot

	for _, s := range []float64{2*pivot - high, pivot - spread} {
		if s > 0 {
			levels.Support = append(levels.Support, s)
		}
	}
	for _, r := range []float64{2*pivot - low, pivot + spread} {
		if r > 0 {
			levels.Resistance = append(levels.Resistance, r)
		}
	}
	return levels
}

// windowRange scans the last n points and returns the highest and lowest price.
func windowRange(points []model.PricePoint, n int) (high, low float64) {
	start := len(points) - n
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < len(points); i++ {
		if points[i].Price > high {
			high = points[i].Price
		}
		if points[i].Price < low {
			low = points[i].Price
		}
	}
	return high, low
}
