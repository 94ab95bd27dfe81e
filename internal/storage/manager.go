// Package storage provides the top-level StorageManager coordinating the
// storage areas.
package storage

import (
	"fmt"

	"github.com/bencarver/folium/internal/common"
	"github.com/bencarver/folium/internal/interfaces"
	"github.com/bencarver/folium/internal/storage/portfoliodb"
)

// Manager implements interfaces.StorageManager.
type Manager struct {
	portfolio *portfoliodb.Store
	logger    *common.Logger
}

// NewManager creates a new StorageManager.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	portfolioStore, err := portfoliodb.NewStore(logger, config.Storage.Portfolio.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create portfolio store: %w", err)
	}

	logger.Info().
		Str("portfolio", config.Storage.Portfolio.Path).
		Msg("Storage manager initialized")

	return &Manager{
		portfolio: portfolioStore,
		logger:    logger,
	}, nil
}

func (m *Manager) PortfolioStore() interfaces.PortfolioStore {
	return m.portfolio
}

// Close releases all storage areas.
func (m *Manager) Close() error {
	return m.portfolio.Close()
}

// Ensure Manager implements StorageManager
var _ interfaces.StorageManager = (*Manager)(nil)
