package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePivotPoints_Empty(t *testing.T) {
	levels := CalculatePivotPoints(nil)
	assert.Equal(t, 0.0, levels.Pivot)
	assert.Equal(t, []float64{}, levels.Support)
	assert.Equal(t, []float64{}, levels.Resistance)
}

func TestCalculatePivotPoints_Classic(t *testing.T) {
	levels := CalculatePivotPoints(seriesOf(10, 12, 8, 11))
	p := 31.0 / 3
	assert.InDelta(t, p, levels.Pivot, 1e-9)
	if assert.Len(t, levels.Support, 2) {
		assert.InDelta(t, 2*p-12, levels.Support[0], 1e-9)
		assert.InDelta(t, p-4, levels.Support[1], 1e-9)
	}
	if assert.Len(t, levels.Resistance, 2) {
		assert.InDelta(t, 2*p-8, levels.Resistance[0], 1e-9)
		assert.InDelta(t, p+4, levels.Resistance[1], 1e-9)
	}
}

func TestCalculatePivotPoints_DropsNonPositive(t *testing.T) {
	levels := CalculatePivotPoints(seriesOf(100, 10, 10))
	assert.InDelta(t, 40, levels.Pivot, 1e-9)
	assert.Empty(t, levels.Support)
	assert.Equal(t, []float64{70, 130}, levels.Resistance)
	for _, r := range levels.Resistance {
		assert.Greater(t, r, 0.0)
	}
}

func TestCalculatePivotPoints_UsesRecentWindow(t *testing.T) {
	prices := append(constant(1000, 5), constant(50, 20)...)
	levels := CalculatePivotPoints(seriesOf(prices...))
	assert.InDelta(t, 50, levels.Pivot, 1e-9)
	assert.Equal(t, []float64{50, 50}, levels.Support)
	assert.Equal(t, []float64{50, 50}, levels.Resistance)
}
