// Package models defines data structures for Folium
package models

import (
	"fmt"
	"time"
)

// Holding represents a single purchase lot of an asset within a portfolio.
// Immutable once recorded, except CurrentPrice which is refreshed from the
// market-data provider.
type Holding struct {
	ID            string    `json:"id" badgerhold:"key"`
	PortfolioID   string    `json:"portfolio_id" badgerhold:"index"`
	AssetID       string    `json:"asset_id"` // market-data provider slug, e.g. "bitcoin"
	Amount        float64   `json:"amount"`
	InvestedValue float64   `json:"invested_value"` // capital put in, base currency (USD)
	CurrentPrice  float64   `json:"current_price"`  // latest known unit price, base currency
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Profit returns the lot's unrealized profit at the current price.
func (h Holding) Profit() float64 {
	return h.Amount*h.CurrentPrice - h.InvestedValue
}

// Validate checks the lot's accounting invariants. A zero amount would make
// the average price undefined downstream, so it is rejected here.
func (h Holding) Validate() error {
	if h.AssetID == "" {
		return fmt.Errorf("holding: asset id is required")
	}
	if h.Amount <= 0 {
		return fmt.Errorf("holding %s: amount must be positive, got %g", h.AssetID, h.Amount)
	}
	if h.InvestedValue < 0 {
		return fmt.Errorf("holding %s: invested value must not be negative, got %g", h.AssetID, h.InvestedValue)
	}
	return nil
}

// Position is the aggregate of all lots of one asset within a portfolio.
// Derived per request, never persisted.
type Position struct {
	AssetID       string  `json:"asset_id"`
	TotalAmount   float64 `json:"total_amount"`
	TotalInvested float64 `json:"total_invested"`
	AveragePrice  float64 `json:"average_price"` // TotalInvested / TotalAmount (weighted)
	CurrentPrice  float64 `json:"current_price"`
	TotalProfit   float64 `json:"total_profit"`
	Lots          int     `json:"lots"`
}

// MarketValue returns the position's value at the current price.
func (p Position) MarketValue() float64 {
	return p.TotalAmount * p.CurrentPrice
}

// ValuePoint is one point of the merged portfolio value series.
type ValuePoint struct {
	Timestamp int64   `json:"timestamp"` // epoch millis
	Value     float64 `json:"value"`
	Invested  float64 `json:"invested"`
	Profit    float64 `json:"profit"`
}

// Time returns the point's timestamp as a time.Time.
func (p ValuePoint) Time() time.Time {
	return time.UnixMilli(p.Timestamp)
}

// Valuation is the engine's output: the merged, currency-converted value
// series plus scalar summaries. Labels, Values, Invested and Profits are
// parallel arrays of equal length.
type Valuation struct {
	PortfolioID      string    `json:"portfolio_id,omitempty"`
	Window           Window    `json:"window"`
	Currency         string    `json:"currency"`
	Labels           []string  `json:"labels"`
	Values           []float64 `json:"values"`
	Invested         []float64 `json:"invested"`
	Profits          []float64 `json:"profits"`
	PercentageChange float64   `json:"percentage_change"`
	CurrentValue     float64   `json:"current_value"`
	TotalInvested    float64   `json:"total_invested"`
	TotalProfit      float64   `json:"total_profit"`
	StaleRate        bool      `json:"stale_rate"` // fallback FX rate used, figures approximate
	GeneratedAt      time.Time `json:"generated_at"`
}

// Distribution describes the current per-asset weighting of a portfolio.
type Distribution struct {
	PortfolioID string        `json:"portfolio_id"`
	TotalValue  float64       `json:"total_value"`
	Assets      []AssetWeight `json:"assets"`
}

// AssetWeight is one asset's share of the portfolio's current value.
type AssetWeight struct {
	AssetID string  `json:"asset_id"`
	Value   float64 `json:"value"`
	Weight  float64 `json:"weight"` // percent of total, 0-100
}
