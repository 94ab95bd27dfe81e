package server

import (
	"net/http"
	"strings"

	"github.com/bencarver/folium/internal/models"
)

// handlePortfolioList handles GET /api/portfolios.
func (s *Server) handlePortfolioList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ids, err := s.app.Storage.PortfolioStore().ListPortfolios(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if ids == nil {
		ids = []string{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"portfolios": ids})
}

// handlePortfolioSummary handles GET /api/portfolios/{id} — the live
// valuation over the full history window.
func (s *Server) handlePortfolioSummary(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	v, err := s.app.ValuationService.GetValuation(r.Context(), portfolioID, models.WindowAll)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, v)
}

// handleHoldings handles GET (list) and POST (create) on
// /api/portfolios/{id}/holdings.
func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request, portfolioID string) {
	switch r.Method {
	case http.MethodGet:
		holdings, err := s.app.PortfolioService.GetHoldings(r.Context(), portfolioID)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if holdings == nil {
			holdings = []models.Holding{}
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"holdings": holdings})

	case http.MethodPost:
		var req struct {
			AssetID       string  `json:"asset_id"`
			Amount        float64 `json:"amount"`
			InvestedValue float64 `json:"invested_value"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}

		holding, err := s.app.PortfolioService.AddHolding(r.Context(), models.Holding{
			PortfolioID:   portfolioID,
			AssetID:       strings.TrimSpace(strings.ToLower(req.AssetID)),
			Amount:        req.Amount,
			InvestedValue: req.InvestedValue,
		})
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusCreated, holding)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleHoldingByID handles DELETE /api/portfolios/{id}/holdings/{holdingID}.
func (s *Server) handleHoldingByID(w http.ResponseWriter, r *http.Request, portfolioID, holdingID string) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	if err := s.app.PortfolioService.DeleteHolding(r.Context(), portfolioID, holdingID); err != nil {
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "does not belong") {
			status = http.StatusNotFound
		}
		WriteError(w, status, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleValuation handles GET /api/portfolios/{id}/valuation?window=1w.
func (s *Server) handleValuation(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	window, err := models.ParseWindow(r.URL.Query().Get("window"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	v, err := s.app.ValuationService.GetValuation(r.Context(), portfolioID, window)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, v)
}

// handleValuationChart handles GET /api/portfolios/{id}/valuation/chart.png.
func (s *Server) handleValuationChart(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	window, err := models.ParseWindow(r.URL.Query().Get("window"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	png, err := s.app.ValuationService.RenderValuationChart(r.Context(), portfolioID, window)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleRefreshPrices handles POST /api/portfolios/{id}/refresh.
func (s *Server) handleRefreshPrices(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	holdings, err := s.app.PortfolioService.RefreshPrices(r.Context(), portfolioID)
	if err != nil {
		WriteError(w, http.StatusBadGateway, err.Error())
		return
	}
	if holdings == nil {
		holdings = []models.Holding{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"holdings": holdings})
}

// handleDistribution handles GET /api/portfolios/{id}/distribution.
func (s *Server) handleDistribution(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	dist, err := s.app.PortfolioService.GetDistribution(r.Context(), portfolioID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, dist)
}
