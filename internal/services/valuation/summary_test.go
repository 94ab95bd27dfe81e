package valuation

import (
	"testing"

	"github.com/bencarver/folium/internal/models"
)

func TestSummarize(t *testing.T) {
	positions := []models.Position{
		{AssetID: "bitcoin", TotalAmount: 2, TotalInvested: 100, CurrentPrice: 75},
		{AssetID: "ethereum", TotalAmount: 10, TotalInvested: 60, CurrentPrice: 5},
	}

	s := summarize(positions)

	if s.CurrentValue != 200 {
		t.Errorf("CurrentValue = %g, want 200", s.CurrentValue)
	}
	if s.TotalInvested != 160 {
		t.Errorf("TotalInvested = %g, want 160", s.TotalInvested)
	}
	if s.TotalProfit != 40 {
		t.Errorf("TotalProfit = %g, want 40", s.TotalProfit)
	}
}

func TestPercentageChange(t *testing.T) {
	points := []models.ValuePoint{
		{Value: 100},
		{Value: 80},
		{Value: 150},
	}

	if got := percentageChange(points); got != 50 {
		t.Errorf("percentageChange = %g, want 50", got)
	}
}

func TestPercentageChangeZeroFirstValue(t *testing.T) {
	// Never divide by zero: a zero first value means 0% change, not Inf/NaN.
	points := []models.ValuePoint{
		{Value: 0},
		{Value: 120},
	}

	if got := percentageChange(points); got != 0 {
		t.Errorf("percentageChange = %g, want 0", got)
	}
}

func TestPercentageChangeEmptyAndSinglePoint(t *testing.T) {
	if got := percentageChange(nil); got != 0 {
		t.Errorf("percentageChange(nil) = %g, want 0", got)
	}

	// A single point compares against itself: 0% change.
	single := []models.ValuePoint{{Value: 42}}
	if got := percentageChange(single); got != 0 {
		t.Errorf("percentageChange(single) = %g, want 0", got)
	}
}

func TestPercentageChangeNegative(t *testing.T) {
	points := []models.ValuePoint{
		{Value: 200},
		{Value: 150},
	}

	if got := percentageChange(points); got != -25 {
		t.Errorf("percentageChange = %g, want -25", got)
	}
}
