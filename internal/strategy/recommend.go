package strategy

import (
	"fmt"
	"time"

	"StockPulse/internal/model"
)

// Tiers maps a technical score to an action, highest first.
var Tiers = []struct {
	MinScore int
	Action   model.Action
}{
	{75, model.ActionStrongBuy},
	{60, model.ActionBuy},
	{40, model.ActionHold},
	{25, model.ActionSell},
}

// DefaultAction applies below the lowest tier.
var DefaultAction = model.ActionStrongSell

func mapAction(score int) model.Action {
	for _, t := range Tiers {
		if score >= t.MinScore {
			return t.Action
		}
	}
	return DefaultAction
}

// Recommend analyzes a price history and turns it into an actionable recommendation.
func Recommend(h *model.PriceHistory, now time.Time) *model.Recommendation {
	ind := Analyze(h.Points)

	price := h.CurrentPrice
	if price <= 0 && len(h.Points) > 0 {
		price = h.Points[len(h.Points)-1].Price
	}

	factors := ExplainScore(&ind, price)
	score := scoreFromFactors(factors)

	rec := &model.Recommendation{
		Symbol:      h.Symbol,
		Price:       price,
		Indicators:  ind,
		Score:       score,
		Factors:     factors,
		Action:      mapAction(score),
		DataPoints:  len(h.Points),
		GeneratedAt: now,
	}

	switch {
	case ind.RSI > 80:
		rec.Warning = fmt.Sprintf("RSI %.0f: heavily overbought, consider taking profit", ind.RSI)
	case ind.RSI < 20:
		rec.Warning = fmt.Sprintf("RSI %.0f: heavily oversold, watch for capitulation", ind.RSI)
	}
	return rec
}
