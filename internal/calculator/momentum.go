package calculator

// DefaultMomentumPeriod is the lookback used when callers pass a non-positive period.
const DefaultMomentumPeriod = 10

// CalculateMomentum returns the percent change between the last price and the
// price `period` positions back. Returns 0 when data is insufficient or the
// reference price is zero.
func CalculateMomentum(prices []float64, period int) float64 {
	if period <= 0 {
		period = DefaultMomentumPeriod
	}
	if len(prices) < period {
		return 0
	}
	ref := prices[len(prices)-period]
	if ref == 0 {
		return 0
	}
	return (prices[len(prices)-1] - ref) / ref * 100
}
