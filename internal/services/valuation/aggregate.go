// Package valuation implements the portfolio valuation and time-series
// aggregation engine.
package valuation

import (
	"fmt"
	"sort"

	"github.com/bencarver/folium/internal/models"
)

// AggregatePositions collapses purchase lots into one Position per asset id.
// The average price is the weighted average TotalInvested / TotalAmount, so a
// later lot at a different price shifts the blended cost basis. Accumulation
// is commutative: lot order never changes the result.
func AggregatePositions(holdings []models.Holding) ([]models.Position, error) {
	for _, h := range holdings {
		if err := h.Validate(); err != nil {
			return nil, err
		}
	}

	byAsset := make(map[string]*models.Position)
	for _, h := range holdings {
		pos, ok := byAsset[h.AssetID]
		if !ok {
			pos = &models.Position{AssetID: h.AssetID}
			byAsset[h.AssetID] = pos
		}
		pos.TotalAmount += h.Amount
		pos.TotalInvested += h.InvestedValue
		pos.TotalProfit += h.Profit()
		pos.CurrentPrice = h.CurrentPrice
		pos.Lots++
	}

	positions := make([]models.Position, 0, len(byAsset))
	for _, pos := range byAsset {
		if pos.TotalAmount <= 0 {
			// Validate rejects zero-amount lots, so a sum this low means bad input
			// slipped through the caller; refuse to divide.
			return nil, fmt.Errorf("position %s: total amount must be positive, got %g", pos.AssetID, pos.TotalAmount)
		}
		pos.AveragePrice = pos.TotalInvested / pos.TotalAmount
		positions = append(positions, *pos)
	}

	// Stable output order for deterministic valuations.
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].AssetID < positions[j].AssetID
	})

	return positions, nil
}
