// Package portfoliodb implements PortfolioStore using BadgerHold.
// It stores purchase lots keyed by lot id, indexed by portfolio.
package portfoliodb

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bencarver/folium/internal/common"
	"github.com/bencarver/folium/internal/interfaces"
	"github.com/bencarver/folium/internal/models"
)

// Store implements interfaces.PortfolioStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore creates a new PortfolioStore backed by BadgerHold.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create portfoliodb path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open portfoliodb at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("PortfolioDB opened")
	return &Store{db: db, logger: logger}, nil
}

// SaveHolding inserts or updates a lot.
func (s *Store) SaveHolding(_ context.Context, holding *models.Holding) error {
	if holding.ID == "" {
		return fmt.Errorf("holding id is required")
	}
	if err := s.db.Upsert(holding.ID, holding); err != nil {
		return fmt.Errorf("failed to save holding %s: %w", holding.ID, err)
	}
	return nil
}

// GetHolding retrieves a lot by id.
func (s *Store) GetHolding(_ context.Context, id string) (*models.Holding, error) {
	var h models.Holding
	if err := s.db.Get(id, &h); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("holding '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get holding %s: %w", id, err)
	}
	return &h, nil
}

// ListHoldings returns all lots of a portfolio, oldest first.
func (s *Store) ListHoldings(_ context.Context, portfolioID string) ([]models.Holding, error) {
	var holdings []models.Holding
	query := badgerhold.Where("PortfolioID").Eq(portfolioID).Index("PortfolioID")
	if err := s.db.Find(&holdings, query); err != nil {
		return nil, fmt.Errorf("failed to list holdings for portfolio %s: %w", portfolioID, err)
	}
	sort.Slice(holdings, func(i, j int) bool {
		return holdings[i].CreatedAt.Before(holdings[j].CreatedAt)
	})
	return holdings, nil
}

// DeleteHolding removes a lot by id. Deleting a missing lot is not an error.
func (s *Store) DeleteHolding(_ context.Context, id string) error {
	if err := s.db.Delete(id, models.Holding{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete holding %s: %w", id, err)
	}
	return nil
}

// ListPortfolios returns the distinct portfolio ids present in the store.
func (s *Store) ListPortfolios(_ context.Context) ([]string, error) {
	var holdings []models.Holding
	if err := s.db.Find(&holdings, nil); err != nil {
		return nil, fmt.Errorf("failed to scan holdings: %w", err)
	}
	seen := make(map[string]bool)
	var ids []string
	for _, h := range holdings {
		if !seen[h.PortfolioID] {
			seen[h.PortfolioID] = true
			ids = append(ids, h.PortfolioID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ensure Store implements PortfolioStore
var _ interfaces.PortfolioStore = (*Store)(nil)
