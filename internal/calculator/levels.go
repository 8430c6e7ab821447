package calculator

import (
	"sort"

	"StockPulse/internal/model"
)

// CalculateSupportResistance merges pivot levels with local-extrema levels.
// Returns nil for an empty series.
func CalculateSupportResistance(points []model.PricePoint) *model.SupportResistance {
	if len(points) == 0 {
		return nil
	}
	pivots := CalculatePivotPoints(points)
	lows, highs := FindLocalExtrema(points, DefaultExtremaWindow)
	return MergeLevels(pivots, lows, highs)
}

// MergeLevels combines pivot and extrema levels per side, drops exact
// duplicates, orders support descending and resistance ascending, and keeps
// MaxLevels of each.
func MergeLevels(pivots PivotLevels, lows, highs []float64) *model.SupportResistance {
	support := dedupe(append(append([]float64{}, pivots.Support...), lows...))
	resistance := dedupe(append(append([]float64{}, pivots.Resistance...), highs...))

	sort.Sort(sort.Reverse(sort.Float64Slice(support)))
	sort.Float64s(resistance)

	if len(support) > MaxLevels {
		support = support[:MaxLevels]
	}
	if len(resistance) > MaxLevels {
		resistance = resistance[:MaxLevels]
	}

	pivot := pivots.Pivot
	return &model.SupportResistance{
		Support:    support,
		Resistance: resistance,
		PivotPoint: &pivot,
	}
}

func dedupe(levels []float64) []float64 {
	seen := make(map[float64]struct{}, len(levels))
	out := make([]float64, 0, len(levels))
	for _, l := range levels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
