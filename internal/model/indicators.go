package model

// Trend is the direction implied by the combined indicators.
type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
	TrendNeutral Trend = "neutral"
)

// MACD holds the MACD line, its signal line and the histogram.
type MACD struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

// SupportResistance lists support levels (descending) and resistance levels (ascending).
type SupportResistance struct {
	Support    []float64 `json:"support"`
	Resistance []float64 `json:"resistance"`
	PivotPoint *float64  `json:"pivotPoint,omitempty"`
}

// TechnicalIndicators is the output of one technical analysis run.
type TechnicalIndicators struct {
	RSI               float64            `json:"rsi"`
	MACD              MACD               `json:"macd"`
	Momentum          float64            `json:"momentum"` // percent
	Trend             Trend              `json:"trend"`
	SupportResistance *SupportResistance `json:"supportResistance,omitempty"`
	Confidence        float64            `json:"confidence"`
}
