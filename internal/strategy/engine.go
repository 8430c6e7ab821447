package strategy

import (
	"math"

	"StockPulse/internal/calculator"
	"StockPulse/internal/model"
)

// Analyze runs every indicator over the series and returns a fresh result.
// It never fails: short or empty input yields the documented neutral values.
func Analyze(points []model.PricePoint) model.TechnicalIndicators {
	prices := model.Closes(points)

	ind := model.TechnicalIndicators{
		RSI:               calculator.CalculateRSI(prices, calculator.DefaultRSIPeriod),
		MACD:              calculator.CalculateMACD(prices),
		Momentum:          calculator.CalculateMomentum(prices, calculator.DefaultMomentumPeriod),
		SupportResistance: calculator.CalculateSupportResistance(points),
	}
	ind.Trend = ClassifyTrend(ind.RSI, ind.MACD.Histogram, ind.Momentum)
	ind.Confidence = CalculateConfidence(len(points), &ind)
	return ind
}

// ExplainScore lists every adjustment TechnicalScore applies, in order.
// currentPrice <= 0 means no price is available.
func ExplainScore(ind *model.TechnicalIndicators, currentPrice float64) []model.FactorScore {
	var factors []model.FactorScore
	if f, ok := scoreRSI(ind); ok {
		factors = append(factors, f)
	}
	factors = append(factors, scoreMACD(ind))
	if f, ok := scoreMomentum(ind); ok {
		factors = append(factors, f)
	}
	factors = append(factors, scoreLevels(ind.SupportResistance, currentPrice)...)
	return factors
}

// TechnicalScore is the composite 0-100 score; 50 is neutral.
func TechnicalScore(ind *model.TechnicalIndicators, currentPrice float64) int {
	return scoreFromFactors(ExplainScore(ind, currentPrice))
}

func scoreFromFactors(factors []model.FactorScore) int {
	score := 50
	for _, f := range factors {
		score += f.Delta
	}
	return int(math.Max(0, math.Min(100, float64(score))))
}
