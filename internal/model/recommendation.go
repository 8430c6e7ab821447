package model

import "time"

// Action is the recommendation shown to the user.
type Action string

const (
	ActionStrongBuy  Action = "STRONG_BUY"
	ActionBuy        Action = "BUY"
	ActionHold       Action = "HOLD"
	ActionSell       Action = "SELL"
	ActionStrongSell Action = "STRONG_SELL"
)

// FactorScore is one adjustment applied to the technical score.
type FactorScore struct {
	Name       string `json:"name"`
	Delta      int    `json:"delta"`
	Commentary string `json:"commentary"`
}

// Recommendation is the final output for a symbol.
type Recommendation struct {
	Symbol      string              `json:"symbol"`
	Price       float64             `json:"price"`
	Indicators  TechnicalIndicators `json:"indicators"`
	Score       int                 `json:"score"`
	Factors     []FactorScore       `json:"factors"`
	Action      Action              `json:"action"`
	Warning     string              `json:"warning,omitempty"`
	DataPoints  int                 `json:"data_points"`
	GeneratedAt time.Time           `json:"generated_at"`
}
