package calculator

import (
	"math"
	"sort"

	"StockPulse/internal/model"
)

const (
	// DefaultExtremaWindow is the number of neighbours required on each side of a local extremum.
	DefaultExtremaWindow = 5
	// ClusterTolerance is the relative distance under which adjacent levels merge.
	ClusterTolerance = 0.02
	// MaxLevels caps the number of levels reported per side.
	MaxLevels = 3
)

// FindLocalExtrema returns clustered support levels (local minima) and
// resistance levels (local maxima). Both slices are ascending.
func FindLocalExtrema(points []model.PricePoint, window int) (support, resistance []float64) {
	if window <= 0 {
		window = DefaultExtremaWindow
	}
	if len(points) < 2*window {
		return []float64{}, []float64{}
	}

	var lows, highs []float64
	for i := window; i < len(points)-window; i++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for j := i - window; j <= i+window; j++ {
			lo = math.Min(lo, points[j].Price)
			hi = math.Max(hi, points[j].Price)
		}
		price := points[i].Price
		if price == lo {
			lows = append(lows, price)
		}
		if price == hi {
			highs = append(highs, price)
		}
	}
	return ClusterLevels(lows), ClusterLevels(highs)
}

// ClusterLevels sorts levels ascending, merges neighbours closer than
// ClusterTolerance into their mean and keeps the highest MaxLevels clusters.
func ClusterLevels(levels []float64) []float64 {
	if len(levels) == 0 {
		return []float64{}
	}
	sorted := append([]float64(nil), levels...)
	sort.Float64s(sorted)

	var clusters []float64
	current := []float64{sorted[0]}
	for i := 1; i < len(sorted); i++ {
		if withinTolerance(sorted[i], sorted[i-1], ClusterTolerance) {
			current = append(current, sorted[i])
			continue
		}
		clusters = append(clusters, mean(current))
		current = []float64{sorted[i]}
	}
	clusters = append(clusters, mean(current))

	if len(clusters) > MaxLevels {
		clusters = clusters[len(clusters)-MaxLevels:]
	}
	return clusters
}

// withinTolerance reports whether |a-b|/b < tol. A zero reference only matches zero.
func withinTolerance(a, b, tol float64) bool {
	if b == 0 {
		return a == 0
	}
	return math.Abs(a-b)/math.Abs(b) < tol
}
