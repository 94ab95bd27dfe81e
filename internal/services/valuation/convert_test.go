package valuation

import (
	"testing"

	"github.com/bencarver/folium/internal/models"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.0},  // float64 representation of 1.005 is just below the midpoint
		{1.015, 1.01}, // same
		{2.675, 2.67}, // 2.675*100 sits just under 267.5 in float64
		{100, 100},
		{0.004, 0},
		{-1.555, -1.55},
	}
	for _, c := range cases {
		if got := round2(c.in); got != c.want {
			t.Errorf("round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestConvertPointsScalesAndRounds(t *testing.T) {
	points := []models.ValuePoint{
		{Timestamp: 1000, Value: 100.123, Invested: 50.456, Profit: 49.667},
		{Timestamp: 2000, Value: 200, Invested: 50.456, Profit: 149.544},
	}

	converted := convertPoints(points, 0.9)

	if converted[0].Value != 90.11 {
		t.Errorf("Value = %v, want 90.11", converted[0].Value)
	}
	if converted[0].Invested != 45.41 {
		t.Errorf("Invested = %v, want 45.41", converted[0].Invested)
	}
	if converted[1].Value != 180 {
		t.Errorf("Value = %v, want 180", converted[1].Value)
	}

	// Input must not be mutated (pure transform).
	if points[0].Value != 100.123 {
		t.Errorf("input mutated: Value = %v", points[0].Value)
	}
}

func TestConvertPointsIdentityRateStillRounds(t *testing.T) {
	points := []models.ValuePoint{
		{Timestamp: 1000, Value: 10.129, Invested: 5.001, Profit: 5.128},
	}

	converted := convertPoints(points, 1.0)

	if converted[0].Value != 10.13 {
		t.Errorf("Value = %v, want 10.13", converted[0].Value)
	}
	if converted[0].Invested != 5.0 {
		t.Errorf("Invested = %v, want 5.0", converted[0].Invested)
	}
}
