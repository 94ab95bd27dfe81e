package valuation

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bencarver/folium/internal/models"
)

// RenderValuationChart valuates the portfolio and renders the merged series
// as a PNG line chart: portfolio value (blue solid) against invested capital
// (gray dashed).
func (s *Service) RenderValuationChart(ctx context.Context, portfolioID string, window models.Window) ([]byte, error) {
	if portfolioID == "" {
		return nil, fmt.Errorf("portfolio id is required")
	}

	holdings, err := s.storage.PortfolioStore().ListHoldings(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings for portfolio %s: %w", portfolioID, err)
	}

	v, points, err := s.valuate(ctx, portfolioID, holdings, window)
	if err != nil {
		return nil, err
	}

	return renderSeriesChart(v, points)
}

func renderSeriesChart(v *models.Valuation, points []models.ValuePoint) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(points))
	}

	xValues := make([]time.Time, len(points))
	valueY := make([]float64, len(points))
	investedY := make([]float64, len(points))
	for i, p := range points {
		xValues[i] = p.Time()
		valueY[i] = p.Value
		investedY[i] = p.Invested
	}

	valueSeries := chart.TimeSeries{
		Name: "Portfolio Value",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"),
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: valueY,
	}

	investedSeries := chart.TimeSeries{
		Name: "Invested",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("9ca3af"),
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: xValues,
		YValues: investedY,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Portfolio Value (%s, %s)", v.Window, v.Currency),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(val interface{}) string {
				if f, ok := val.(float64); ok {
					return chart.TimeFromFloat64(f).Format("Jan 2")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(val interface{}) string {
				if f, ok := val.(float64); ok {
					return fmt.Sprintf("%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			valueSeries,
			investedSeries,
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
