package interfaces

import (
	"context"

	"github.com/bencarver/folium/internal/models"
)

// ValuationService computes portfolio valuations and merged value series.
type ValuationService interface {
	// GetValuation loads a portfolio's holdings and valuates them over the window.
	GetValuation(ctx context.Context, portfolioID string, window models.Window) (*models.Valuation, error)

	// Valuate runs the valuation pipeline over a pre-fetched holdings list.
	Valuate(ctx context.Context, portfolioID string, holdings []models.Holding, window models.Window) (*models.Valuation, error)

	// RenderValuationChart renders the merged series as a PNG line chart.
	RenderValuationChart(ctx context.Context, portfolioID string, window models.Window) ([]byte, error)
}

// PortfolioService manages portfolio holdings (purchase lots).
type PortfolioService interface {
	// AddHolding records a new purchase lot after validating it.
	AddHolding(ctx context.Context, holding models.Holding) (*models.Holding, error)

	// GetHoldings returns all lots of a portfolio.
	GetHoldings(ctx context.Context, portfolioID string) ([]models.Holding, error)

	// DeleteHolding removes a lot by id.
	DeleteHolding(ctx context.Context, portfolioID, holdingID string) error

	// RefreshPrices updates CurrentPrice on every lot from the market-data
	// provider and returns the refreshed list.
	RefreshPrices(ctx context.Context, portfolioID string) ([]models.Holding, error)

	// GetDistribution returns the per-asset weighting of the portfolio's
	// current value.
	GetDistribution(ctx context.Context, portfolioID string) (*models.Distribution, error)
}
