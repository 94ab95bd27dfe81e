// Package interfaces defines service contracts for Folium
package interfaces

import (
	"context"

	"github.com/bencarver/folium/internal/models"
)

// MarketDataClient provides access to the market-data provider (CoinGecko API).
type MarketDataClient interface {
	// GetMarketChart retrieves the price history for an asset over a window,
	// priced in the given currency. Sampling granularity is provider-chosen
	// and grows coarser with the window.
	GetMarketChart(ctx context.Context, assetID string, currency string, window models.Window) ([]models.PriceSample, error)

	// GetSimplePrices retrieves the current unit price for each asset,
	// priced in the given currency.
	GetSimplePrices(ctx context.Context, assetIDs []string, currency string) (map[string]float64, error)
}

// ExchangeRateClient provides a single current conversion rate between two
// currencies.
type ExchangeRateClient interface {
	// GetRate returns the scalar rate converting one unit of base into quote.
	GetRate(ctx context.Context, base, quote string) (float64, error)
}
