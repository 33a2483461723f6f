package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/service"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/validation"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Portfolios lists all portfolios of the calling tenant
func (h *PortfolioHandler) Portfolios(w http.ResponseWriter, r *http.Request) {
	portfolios, err := h.portfolioService.GetAllPortfolios(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve portfolios")
		return
	}
	respondJSON(w, http.StatusOK, portfolios)
}

// Portfolio returns a single portfolio by id
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	portfolio, err := h.portfolioService.GetPortfolio(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve portfolio")
		return
	}
	respondJSON(w, http.StatusOK, portfolio)
}

// CreatePortfolio creates a new portfolio
func (h *PortfolioHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePortfolioRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validation.ValidateCreatePortfolio(req); err != nil {
		respondServiceError(w, err, "Invalid portfolio")
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "Failed to create portfolio")
		return
	}
	respondJSON(w, http.StatusCreated, portfolio)
}

// UpdatePortfolio applies a partial update to a portfolio
func (h *PortfolioHandler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	var req request.UpdatePortfolioRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validation.ValidateUpdatePortfolio(req); err != nil {
		respondServiceError(w, err, "Invalid portfolio update")
		return
	}

	portfolio, err := h.portfolioService.UpdatePortfolio(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err, "Failed to update portfolio")
		return
	}
	respondJSON(w, http.StatusOK, portfolio)
}

// DeletePortfolio removes a portfolio and everything it owns
func (h *PortfolioHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	if err := h.portfolioService.DeletePortfolio(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete portfolio")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
