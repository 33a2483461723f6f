package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// AnalyticsHandler handles analytics HTTP requests
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// Metrics returns the performance metrics of one portfolio
func (h *AnalyticsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	metrics, err := h.analyticsService.GetPerformanceMetrics(r.Context(), portfolioID)
	if err != nil {
		respondServiceError(w, err, "Failed to compute performance metrics")
		return
	}
	respondJSON(w, http.StatusOK, metrics)
}

// Allocations returns the per-wallet breakdown of the latest snapshot
func (h *AnalyticsHandler) Allocations(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	allocations, err := h.analyticsService.GetWalletAllocations(r.Context(), portfolioID)
	if err != nil {
		respondServiceError(w, err, "Failed to compute allocations")
		return
	}
	respondJSON(w, http.StatusOK, allocations)
}

// MonthlySeries returns twelve month buckets for the requested year.
// Without a year parameter the current year is used.
func (h *AnalyticsHandler) MonthlySeries(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	year := time.Now().UTC().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid year parameter", raw)
			return
		}
		year = parsed
	}

	series, err := h.analyticsService.GetMonthlySeries(r.Context(), portfolioID, year)
	if err != nil {
		respondServiceError(w, err, "Failed to compute monthly series")
		return
	}
	respondJSON(w, http.StatusOK, series)
}

// Chart returns the daily series as chart points, optionally limited to
// the trailing N entries
func (h *AnalyticsHandler) Chart(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid limit parameter", raw)
			return
		}
		limit = parsed
	}

	points, err := h.analyticsService.GetChartData(r.Context(), portfolioID, limit)
	if err != nil {
		respondServiceError(w, err, "Failed to build chart data")
		return
	}
	respondJSON(w, http.StatusOK, points)
}

// Sparkline returns the short trailing window of the daily series
func (h *AnalyticsHandler) Sparkline(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	points, err := h.analyticsService.GetSparklineData(r.Context(), portfolioID)
	if err != nil {
		respondServiceError(w, err, "Failed to build sparkline data")
		return
	}
	respondJSON(w, http.StatusOK, points)
}
