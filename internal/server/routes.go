package server

import (
	"net/http"
	"strings"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Portfolios
	mux.HandleFunc("/api/portfolios/", s.routePortfolios)
	mux.HandleFunc("/api/portfolios", s.handlePortfolioList)
}

// routePortfolios dispatches /api/portfolios/{id}/* to the appropriate handler.
func (s *Server) routePortfolios(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/portfolios/")
	if path == "" {
		WriteError(w, http.StatusBadRequest, "portfolio id is required in path")
		return
	}

	parts := strings.Split(path, "/")
	portfolioID := parts[0]

	switch {
	case len(parts) == 1:
		s.handlePortfolioSummary(w, r, portfolioID)
	case parts[1] == "holdings" && len(parts) == 2:
		s.handleHoldings(w, r, portfolioID)
	case parts[1] == "holdings" && len(parts) == 3:
		s.handleHoldingByID(w, r, portfolioID, parts[2])
	case parts[1] == "valuation" && len(parts) == 2:
		s.handleValuation(w, r, portfolioID)
	case parts[1] == "valuation" && len(parts) == 3 && parts[2] == "chart.png":
		s.handleValuationChart(w, r, portfolioID)
	case parts[1] == "refresh" && len(parts) == 2:
		s.handleRefreshPrices(w, r, portfolioID)
	case parts[1] == "distribution" && len(parts) == 2:
		s.handleDistribution(w, r, portfolioID)
	default:
		WriteError(w, http.StatusNotFound, "Unknown portfolio endpoint")
	}
}
