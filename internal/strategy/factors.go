package strategy

import (
	"fmt"
	"math"

	"StockPulse/internal/model"
)

// Score thresholds.
const (
	nearLevelPct    = 0.03
	breakLevelPct   = 0.05
	momentumStrong  = 5.0
	rsiOverbought   = 70.0
	rsiOversold     = 30.0
	rsiHealthyLow   = 50.0
	rsiHealthyHigh  = 60.0
	trendRSIBullish = 60.0
	trendRSIBearish = 40.0
)

// ClassifyTrend requires RSI, MACD histogram and momentum to all agree.
func ClassifyTrend(rsi, histogram, momentum float64) model.Trend {
	switch {
	case rsi > trendRSIBullish && histogram > 0 && momentum > 0:
		return model.TrendBullish
	case rsi < trendRSIBearish && histogram < 0 && momentum < 0:
		return model.TrendBearish
	default:
		return model.TrendNeutral
	}
}

// CalculateConfidence scores how much the analysis can be trusted, from the
// amount of data and how many indicators agree with the trend. Range [30, 95].
func CalculateConfidence(dataPoints int, ind *model.TechnicalIndicators) float64 {
	confidence := 50.0

	switch {
	case dataPoints >= 90:
		confidence += 25
	case dataPoints >= 60:
		confidence += 20
	case dataPoints >= 30:
		confidence += 15
	default:
		confidence += 5
	}

	aligned := alignedSignals(ind)
	confidence += float64(aligned) / 3 * 25

	return math.Max(30, math.Min(95, confidence))
}

// alignedSignals counts the indicators pointing the same way as the trend.
// For a neutral trend, flat readings count as agreement.
func alignedSignals(ind *model.TechnicalIndicators) int {
	var checks [3]bool
	switch ind.Trend {
	case model.TrendBullish:
		checks = [3]bool{ind.RSI > 50, ind.MACD.Histogram > 0, ind.Momentum > 0}
	case model.TrendBearish:
		checks = [3]bool{ind.RSI < 50, ind.MACD.Histogram < 0, ind.Momentum < 0}
	default:
		checks = [3]bool{
			ind.RSI >= 40 && ind.RSI <= 60,
			ind.MACD.Histogram == 0,
			math.Abs(ind.Momentum) <= 2,
		}
	}
	n := 0
	for _, ok := range checks {
		if ok {
			n++
		}
	}
	return n
}

// scoreRSI: overbought sells off, oversold bounces, 50-60 is healthy.
func scoreRSI(ind *model.TechnicalIndicators) (model.FactorScore, bool) {
	rsi := ind.RSI
	switch {
	case rsi > rsiOverbought:
		return model.FactorScore{Name: "RSI", Delta: -20, Commentary: fmt.Sprintf("overbought (%.0f)", rsi)}, true
	case rsi < rsiOversold:
		return model.FactorScore{Name: "RSI", Delta: 20, Commentary: fmt.Sprintf("oversold (%.0f)", rsi)}, true
	case rsi >= rsiHealthyLow && rsi <= rsiHealthyHigh:
		return model.FactorScore{Name: "RSI", Delta: 15, Commentary: fmt.Sprintf("healthy (%.0f)", rsi)}, true
	}
	return model.FactorScore{}, false
}

func scoreMACD(ind *model.TechnicalIndicators) model.FactorScore {
	if ind.MACD.Histogram > 0 {
		return model.FactorScore{Name: "MACD", Delta: 15, Commentary: "histogram positive"}
	}
	return model.FactorScore{Name: "MACD", Delta: -15, Commentary: "histogram not positive"}
}

func scoreMomentum(ind *model.TechnicalIndicators) (model.FactorScore, bool) {
	switch {
	case ind.Momentum > momentumStrong:
		return model.FactorScore{Name: "Momentum", Delta: 15, Commentary: fmt.Sprintf("%+.1f%%", ind.Momentum)}, true
	case ind.Momentum < -momentumStrong:
		return model.FactorScore{Name: "Momentum", Delta: -15, Commentary: fmt.Sprintf("%+.1f%%", ind.Momentum)}, true
	}
	return model.FactorScore{}, false
}

// scoreLevels adjusts for the current price's position against support and resistance.
func scoreLevels(sr *model.SupportResistance, price float64) []model.FactorScore {
	if sr == nil || price <= 0 {
		return nil
	}

	nearSupport := anyLevel(sr.Support, func(l float64) bool { return math.Abs(price-l)/l < nearLevelPct })
	nearResistance := anyLevel(sr.Resistance, func(l float64) bool { return math.Abs(price-l)/l < nearLevelPct })
	breakout := anyLevel(sr.Resistance, func(l float64) bool { return price > l && (price-l)/l < breakLevelPct })
	breakdown := anyLevel(sr.Support, func(l float64) bool { return price < l && (l-price)/l < breakLevelPct })

	var factors []model.FactorScore
	switch {
	case nearSupport && !nearResistance:
		factors = append(factors, model.FactorScore{Name: "Support", Delta: 10, Commentary: "trading near support"})
	case nearResistance && !nearSupport:
		factors = append(factors, model.FactorScore{Name: "Resistance", Delta: -10, Commentary: "trading near resistance"})
	}
	if breakout {
		factors = append(factors, model.FactorScore{Name: "Breakout", Delta: 15, Commentary: "just above resistance"})
	}
	if breakdown {
		factors = append(factors, model.FactorScore{Name: "Breakdown", Delta: -15, Commentary: "just below support"})
	}
	return factors
}

// anyLevel skips non-positive levels so relative distances stay finite.
func anyLevel(levels []float64, match func(float64) bool) bool {
	for _, l := range levels {
		if l > 0 && match(l) {
			return true
		}
	}
	return false
}
