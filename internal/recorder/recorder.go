package recorder

import (
	"time"

	"StockPulse/internal/model"
)

// AnalysisSnapshot is one persisted recommendation.
type AnalysisSnapshot struct {
	ID          string
	Symbol      string
	Price       float64
	RSI         float64
	MACD        float64
	Histogram   float64
	Momentum    float64
	Trend       model.Trend
	Confidence  float64
	Score       int
	Action      model.Action
	Support     []float64
	Resistance  []float64
	DataPoints  int
	Source      string
	GeneratedAt time.Time
}

// SnapshotFromRecommendation flattens a recommendation for storage.
func SnapshotFromRecommendation(rec *model.Recommendation, source string) *AnalysisSnapshot {
	snap := &AnalysisSnapshot{
		Symbol:      rec.Symbol,
		Price:       rec.Price,
		RSI:         rec.Indicators.RSI,
		MACD:        rec.Indicators.MACD.MACD,
		Histogram:   rec.Indicators.MACD.Histogram,
		Momentum:    rec.Indicators.Momentum,
		Trend:       rec.Indicators.Trend,
		Confidence:  rec.Indicators.Confidence,
		Score:       rec.Score,
		Action:      rec.Action,
		DataPoints:  rec.DataPoints,
		Source:      source,
		GeneratedAt: rec.GeneratedAt,
	}
	if sr := rec.Indicators.SupportResistance; sr != nil {
		snap.Support = sr.Support
		snap.Resistance = sr.Resistance
	}
	return snap
}

// Recorder persists analysis history.
type Recorder interface {
	RecordAnalysis(snap *AnalysisSnapshot) error
	RecentAnalyses(symbol string, limit int) ([]AnalysisSnapshot, error)
	Close() error
}
