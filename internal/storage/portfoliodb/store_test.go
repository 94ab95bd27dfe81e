package portfoliodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bencarver/folium/internal/common"
	"github.com/bencarver/folium/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(common.NewSilentLogger(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndGetHolding(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	h := &models.Holding{
		ID:            "lot-1",
		PortfolioID:   "main",
		AssetID:       "bitcoin",
		Amount:        0.5,
		InvestedValue: 20000,
		CurrentPrice:  42000,
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, store.SaveHolding(ctx, h))

	got, err := store.GetHolding(ctx, "lot-1")
	require.NoError(t, err)
	assert.Equal(t, "bitcoin", got.AssetID)
	assert.Equal(t, 0.5, got.Amount)
	assert.Equal(t, 20000.0, got.InvestedValue)
}

func TestSaveHoldingRequiresID(t *testing.T) {
	store := newTestStore(t)

	err := store.SaveHolding(context.Background(), &models.Holding{PortfolioID: "main"})
	assert.Error(t, err)
}

func TestGetHoldingNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetHolding(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListHoldingsByPortfolio(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	lots := []models.Holding{
		{ID: "b", PortfolioID: "main", AssetID: "ethereum", Amount: 2, CreatedAt: base.Add(time.Hour)},
		{ID: "a", PortfolioID: "main", AssetID: "bitcoin", Amount: 1, CreatedAt: base},
		{ID: "c", PortfolioID: "other", AssetID: "solana", Amount: 10, CreatedAt: base},
	}
	for i := range lots {
		require.NoError(t, store.SaveHolding(ctx, &lots[i]))
	}

	holdings, err := store.ListHoldings(ctx, "main")
	require.NoError(t, err)
	require.Len(t, holdings, 2)

	// Oldest first.
	assert.Equal(t, "a", holdings[0].ID)
	assert.Equal(t, "b", holdings[1].ID)
}

func TestListHoldingsEmptyPortfolio(t *testing.T) {
	store := newTestStore(t)

	holdings, err := store.ListHoldings(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, holdings)
}

func TestDeleteHolding(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	h := &models.Holding{ID: "lot-1", PortfolioID: "main", AssetID: "bitcoin", Amount: 1}
	require.NoError(t, store.SaveHolding(ctx, h))
	require.NoError(t, store.DeleteHolding(ctx, "lot-1"))

	_, err := store.GetHolding(ctx, "lot-1")
	assert.Error(t, err)

	// Deleting again is not an error.
	assert.NoError(t, store.DeleteHolding(ctx, "lot-1"))
}

func TestListPortfolios(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	lots := []models.Holding{
		{ID: "1", PortfolioID: "main", AssetID: "bitcoin", Amount: 1},
		{ID: "2", PortfolioID: "main", AssetID: "ethereum", Amount: 1},
		{ID: "3", PortfolioID: "savings", AssetID: "bitcoin", Amount: 1},
	}
	for i := range lots {
		require.NoError(t, store.SaveHolding(ctx, &lots[i]))
	}

	ids, err := store.ListPortfolios(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "savings"}, ids)
}

func TestUpsertOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	h := &models.Holding{ID: "lot-1", PortfolioID: "main", AssetID: "bitcoin", Amount: 1, CurrentPrice: 40000}
	require.NoError(t, store.SaveHolding(ctx, h))

	h.CurrentPrice = 45000
	require.NoError(t, store.SaveHolding(ctx, h))

	got, err := store.GetHolding(ctx, "lot-1")
	require.NoError(t, err)
	assert.Equal(t, 45000.0, got.CurrentPrice)
}
