package interfaces

import (
	"context"

	"github.com/bencarver/folium/internal/models"
)

// PortfolioStore persists portfolio holdings (purchase lots).
type PortfolioStore interface {
	// SaveHolding inserts or updates a lot.
	SaveHolding(ctx context.Context, holding *models.Holding) error

	// GetHolding retrieves a lot by id.
	GetHolding(ctx context.Context, id string) (*models.Holding, error)

	// ListHoldings returns all lots of a portfolio, oldest first.
	ListHoldings(ctx context.Context, portfolioID string) ([]models.Holding, error)

	// DeleteHolding removes a lot by id.
	DeleteHolding(ctx context.Context, id string) error

	// ListPortfolios returns the distinct portfolio ids present in the store.
	ListPortfolios(ctx context.Context) ([]string, error)

	// Close releases the underlying database.
	Close() error
}

// StorageManager coordinates the storage areas.
type StorageManager interface {
	PortfolioStore() PortfolioStore
	Close() error
}
