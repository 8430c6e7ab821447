package model

import "time"

// PricePoint is a single daily closing price.
type PricePoint struct {
	Date      time.Time `json:"date"`
	Price     float64   `json:"price"`
	Timestamp int64     `json:"timestamp"` // epoch milliseconds
}

// NewPricePoint builds a point from a bar time, truncating the date to the UTC calendar day.
func NewPricePoint(t time.Time, price float64) PricePoint {
	u := t.UTC()
	return PricePoint{
		Date:      time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC),
		Price:     price,
		Timestamp: t.UnixMilli(),
	}
}

// PriceHistory holds an ordered price series for one symbol as returned by a fetcher.
type PriceHistory struct {
	Symbol       string       `json:"symbol"`
	Points       []PricePoint `json:"points"`
	CurrentPrice float64      `json:"current_price"`
	Source       string       `json:"source"`
	FetchedAt    time.Time    `json:"fetched_at"`
}

// Closes returns the prices of the series in order.
func Closes(points []PricePoint) []float64 {
	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p.Price
	}
	return closes
}
