package models

import "testing"

func TestHoldingValidate(t *testing.T) {
	valid := Holding{AssetID: "bitcoin", Amount: 0.5, InvestedValue: 20000}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid holding rejected: %v", err)
	}

	cases := []struct {
		name    string
		holding Holding
	}{
		{"empty asset id", Holding{Amount: 1, InvestedValue: 10}},
		{"zero amount", Holding{AssetID: "bitcoin", Amount: 0, InvestedValue: 10}},
		{"negative amount", Holding{AssetID: "bitcoin", Amount: -0.1, InvestedValue: 10}},
		{"negative invested", Holding{AssetID: "bitcoin", Amount: 1, InvestedValue: -10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.holding.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestHoldingProfit(t *testing.T) {
	h := Holding{AssetID: "bitcoin", Amount: 2, InvestedValue: 100, CurrentPrice: 75}
	if got := h.Profit(); got != 50 {
		t.Errorf("Profit() = %g, want 50", got)
	}

	loss := Holding{AssetID: "bitcoin", Amount: 1, InvestedValue: 100, CurrentPrice: 60}
	if got := loss.Profit(); got != -40 {
		t.Errorf("Profit() = %g, want -40", got)
	}
}

func TestPositionMarketValue(t *testing.T) {
	p := Position{AssetID: "ethereum", TotalAmount: 4, CurrentPrice: 2500}
	if got := p.MarketValue(); got != 10000 {
		t.Errorf("MarketValue() = %g, want 10000", got)
	}
}

func TestValuePointTime(t *testing.T) {
	p := ValuePoint{Timestamp: 1700000000000}
	if got := p.Time().UnixMilli(); got != 1700000000000 {
		t.Errorf("Time().UnixMilli() = %d, want 1700000000000", got)
	}
}
