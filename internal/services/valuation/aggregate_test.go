package valuation

import (
	"math"
	"testing"

	"github.com/bencarver/folium/internal/models"
)

func TestAggregatePositionsWeightedAverage(t *testing.T) {
	// Two lots of the same asset: 1 unit for 100, 1 unit for 200.
	holdings := []models.Holding{
		{AssetID: "bitcoin", Amount: 1, InvestedValue: 100, CurrentPrice: 150},
		{AssetID: "bitcoin", Amount: 1, InvestedValue: 200, CurrentPrice: 150},
	}

	positions, err := AggregatePositions(holdings)
	if err != nil {
		t.Fatalf("AggregatePositions: %v", err)
	}
	if len(positions) != 1 {
		t.Fatalf("got %d positions, want 1", len(positions))
	}

	pos := positions[0]
	if pos.TotalAmount != 2 {
		t.Errorf("TotalAmount = %g, want 2", pos.TotalAmount)
	}
	if pos.TotalInvested != 300 {
		t.Errorf("TotalInvested = %g, want 300", pos.TotalInvested)
	}
	if pos.AveragePrice != 150 {
		t.Errorf("AveragePrice = %g, want 150", pos.AveragePrice)
	}
	if pos.Lots != 2 {
		t.Errorf("Lots = %d, want 2", pos.Lots)
	}
}

func TestAggregatePositionsShiftsCostBasis(t *testing.T) {
	// A later lot at a different price must shift the blended cost basis,
	// not be averaged against the first lot's per-unit price.
	holdings := []models.Holding{
		{AssetID: "ethereum", Amount: 2, InvestedValue: 200, CurrentPrice: 120}, // 100/unit
		{AssetID: "ethereum", Amount: 8, InvestedValue: 400, CurrentPrice: 120}, // 50/unit
	}

	positions, err := AggregatePositions(holdings)
	if err != nil {
		t.Fatalf("AggregatePositions: %v", err)
	}

	// Weighted: 600 / 10 = 60. A naive mean of per-lot prices would be 75.
	if got := positions[0].AveragePrice; got != 60 {
		t.Errorf("AveragePrice = %g, want 60 (weighted)", got)
	}
}

func TestAggregatePositionsOrderInvariant(t *testing.T) {
	lots := []models.Holding{
		{AssetID: "bitcoin", Amount: 0.5, InvestedValue: 10000, CurrentPrice: 30000},
		{AssetID: "ethereum", Amount: 3, InvestedValue: 4500, CurrentPrice: 2000},
		{AssetID: "bitcoin", Amount: 0.25, InvestedValue: 7000, CurrentPrice: 30000},
		{AssetID: "ethereum", Amount: 1, InvestedValue: 1800, CurrentPrice: 2000},
		{AssetID: "bitcoin", Amount: 1, InvestedValue: 22000, CurrentPrice: 30000},
	}

	reference, err := AggregatePositions(lots)
	if err != nil {
		t.Fatalf("AggregatePositions: %v", err)
	}

	permutations := [][]int{
		{4, 3, 2, 1, 0},
		{2, 0, 4, 1, 3},
		{1, 4, 0, 3, 2},
	}

	for _, perm := range permutations {
		shuffled := make([]models.Holding, len(lots))
		for i, j := range perm {
			shuffled[i] = lots[j]
		}

		got, err := AggregatePositions(shuffled)
		if err != nil {
			t.Fatalf("AggregatePositions(perm %v): %v", perm, err)
		}
		if len(got) != len(reference) {
			t.Fatalf("perm %v: got %d positions, want %d", perm, len(got), len(reference))
		}
		for i := range got {
			if got[i].AssetID != reference[i].AssetID {
				t.Errorf("perm %v: position %d asset = %s, want %s", perm, i, got[i].AssetID, reference[i].AssetID)
			}
			if math.Abs(got[i].TotalAmount-reference[i].TotalAmount) > 1e-9 {
				t.Errorf("perm %v: %s TotalAmount = %g, want %g", perm, got[i].AssetID, got[i].TotalAmount, reference[i].TotalAmount)
			}
			if math.Abs(got[i].TotalInvested-reference[i].TotalInvested) > 1e-9 {
				t.Errorf("perm %v: %s TotalInvested = %g, want %g", perm, got[i].AssetID, got[i].TotalInvested, reference[i].TotalInvested)
			}
			if math.Abs(got[i].AveragePrice-reference[i].AveragePrice) > 1e-9 {
				t.Errorf("perm %v: %s AveragePrice = %g, want %g", perm, got[i].AssetID, got[i].AveragePrice, reference[i].AveragePrice)
			}
		}
	}
}

func TestAggregatePositionsAveragePriceIdentity(t *testing.T) {
	holdings := []models.Holding{
		{AssetID: "solana", Amount: 12.5, InvestedValue: 937.5, CurrentPrice: 100},
		{AssetID: "solana", Amount: 7.25, InvestedValue: 600, CurrentPrice: 100},
		{AssetID: "solana", Amount: 0.1, InvestedValue: 11, CurrentPrice: 100},
	}

	positions, err := AggregatePositions(holdings)
	if err != nil {
		t.Fatalf("AggregatePositions: %v", err)
	}

	pos := positions[0]
	want := pos.TotalInvested / pos.TotalAmount
	if math.Abs(pos.AveragePrice-want) > 1e-12 {
		t.Errorf("AveragePrice = %v, want TotalInvested/TotalAmount = %v", pos.AveragePrice, want)
	}
}

func TestAggregatePositionsRejectsZeroAmount(t *testing.T) {
	holdings := []models.Holding{
		{AssetID: "bitcoin", Amount: 1, InvestedValue: 100},
		{AssetID: "bitcoin", Amount: 0, InvestedValue: 50},
	}

	if _, err := AggregatePositions(holdings); err == nil {
		t.Fatal("expected error for zero-amount lot, got nil")
	}
}

func TestAggregatePositionsRejectsNegativeAmount(t *testing.T) {
	holdings := []models.Holding{
		{AssetID: "bitcoin", Amount: -2, InvestedValue: 100},
	}

	if _, err := AggregatePositions(holdings); err == nil {
		t.Fatal("expected error for negative-amount lot, got nil")
	}
}

func TestAggregatePositionsEmpty(t *testing.T) {
	positions, err := AggregatePositions(nil)
	if err != nil {
		t.Fatalf("AggregatePositions(nil): %v", err)
	}
	if len(positions) != 0 {
		t.Fatalf("got %d positions for empty input, want 0", len(positions))
	}
}
