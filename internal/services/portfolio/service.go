// Package portfolio manages portfolio holdings (purchase lots).
package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bencarver/folium/internal/common"
	"github.com/bencarver/folium/internal/interfaces"
	"github.com/bencarver/folium/internal/models"
)

// Service implements PortfolioService
type Service struct {
	storage      interfaces.StorageManager
	market       interfaces.MarketDataClient
	baseCurrency string
	logger       *common.Logger
}

// NewService creates a new portfolio service
func NewService(
	storage interfaces.StorageManager,
	market interfaces.MarketDataClient,
	baseCurrency string,
	logger *common.Logger,
) *Service {
	return &Service{
		storage:      storage,
		market:       market,
		baseCurrency: baseCurrency,
		logger:       logger,
	}
}

// AddHolding records a new purchase lot after validating it. The current
// price defaults to the lot's implied unit cost until the next refresh.
func (s *Service) AddHolding(ctx context.Context, holding models.Holding) (*models.Holding, error) {
	if holding.PortfolioID == "" {
		return nil, fmt.Errorf("portfolio id is required")
	}
	if err := holding.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	holding.ID = uuid.NewString()
	holding.CreatedAt = now
	holding.UpdatedAt = now
	if holding.CurrentPrice <= 0 {
		holding.CurrentPrice = holding.InvestedValue / holding.Amount
	}

	if err := s.storage.PortfolioStore().SaveHolding(ctx, &holding); err != nil {
		return nil, fmt.Errorf("failed to save holding: %w", err)
	}

	s.logger.Info().
		Str("portfolio", holding.PortfolioID).
		Str("asset", holding.AssetID).
		Float64("amount", holding.Amount).
		Msg("Holding recorded")

	return &holding, nil
}

// GetHoldings returns all lots of a portfolio.
func (s *Service) GetHoldings(ctx context.Context, portfolioID string) ([]models.Holding, error) {
	if portfolioID == "" {
		return nil, fmt.Errorf("portfolio id is required")
	}
	return s.storage.PortfolioStore().ListHoldings(ctx, portfolioID)
}

// DeleteHolding removes a lot by id after checking it belongs to the portfolio.
func (s *Service) DeleteHolding(ctx context.Context, portfolioID, holdingID string) error {
	holding, err := s.storage.PortfolioStore().GetHolding(ctx, holdingID)
	if err != nil {
		return err
	}
	if holding.PortfolioID != portfolioID {
		return fmt.Errorf("holding '%s' does not belong to portfolio '%s'", holdingID, portfolioID)
	}
	return s.storage.PortfolioStore().DeleteHolding(ctx, holdingID)
}

// RefreshPrices updates CurrentPrice on every lot from the market-data
// provider's simple-price endpoint and returns the refreshed list. Assets the
// provider does not return keep their last known price.
func (s *Service) RefreshPrices(ctx context.Context, portfolioID string) ([]models.Holding, error) {
	holdings, err := s.GetHoldings(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	if len(holdings) == 0 {
		return holdings, nil
	}

	seen := make(map[string]bool)
	assetIDs := make([]string, 0, len(holdings))
	for _, h := range holdings {
		if !seen[h.AssetID] {
			seen[h.AssetID] = true
			assetIDs = append(assetIDs, h.AssetID)
		}
	}

	prices, err := s.market.GetSimplePrices(ctx, assetIDs, s.baseCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current prices: %w", err)
	}

	now := time.Now()
	updated := 0
	for i := range holdings {
		price, ok := prices[holdings[i].AssetID]
		if !ok || price <= 0 {
			continue
		}
		holdings[i].CurrentPrice = price
		holdings[i].UpdatedAt = now
		if err := s.storage.PortfolioStore().SaveHolding(ctx, &holdings[i]); err != nil {
			return nil, fmt.Errorf("failed to save refreshed holding %s: %w", holdings[i].ID, err)
		}
		updated++
	}

	s.logger.Info().
		Str("portfolio", portfolioID).
		Int("holdings", len(holdings)).
		Int("updated", updated).
		Msg("Prices refreshed")

	return holdings, nil
}

// GetDistribution returns the per-asset weighting of the portfolio's current
// value.
func (s *Service) GetDistribution(ctx context.Context, portfolioID string) (*models.Distribution, error) {
	holdings, err := s.GetHoldings(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	valueByAsset := make(map[string]float64)
	order := make([]string, 0)
	total := 0.0
	for _, h := range holdings {
		if _, ok := valueByAsset[h.AssetID]; !ok {
			order = append(order, h.AssetID)
		}
		value := h.Amount * h.CurrentPrice
		valueByAsset[h.AssetID] += value
		total += value
	}

	dist := &models.Distribution{
		PortfolioID: portfolioID,
		TotalValue:  total,
		Assets:      make([]models.AssetWeight, 0, len(order)),
	}
	for _, assetID := range order {
		weight := 0.0
		if total > 0 {
			weight = valueByAsset[assetID] / total * 100
		}
		dist.Assets = append(dist.Assets, models.AssetWeight{
			AssetID: assetID,
			Value:   valueByAsset[assetID],
			Weight:  weight,
		})
	}

	return dist, nil
}

// Ensure Service implements PortfolioService
var _ interfaces.PortfolioService = (*Service)(nil)
