package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is one position in the portfolio.
type Holding struct {
	Symbol    string          `json:"symbol"`
	Shares    decimal.Decimal `json:"shares"`
	CostBasis decimal.Decimal `json:"cost_basis"` // average price per share
	AddedAt   time.Time       `json:"added_at"`
}

// Portfolio is the persisted list of holdings.
type Portfolio struct {
	Holdings  []Holding `json:"holdings"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HoldingValue is a holding priced at the latest market price.
type HoldingValue struct {
	Holding
	Price         decimal.Decimal `json:"price"`
	MarketValue   decimal.Decimal `json:"market_value"`
	UnrealizedPnL decimal.Decimal `json:"unrealized_pnl"`
	PnLPercent    decimal.Decimal `json:"pnl_percent"`
}

// Valuation sums holding values.
type Valuation struct {
	Holdings   []HoldingValue  `json:"holdings"`
	TotalValue decimal.Decimal `json:"total_value"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	TotalPnL   decimal.Decimal `json:"total_pnl"`
}
