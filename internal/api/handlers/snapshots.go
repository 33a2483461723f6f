package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/service"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/validation"
)

// SnapshotHandler handles daily and monthly snapshot HTTP requests
type SnapshotHandler struct {
	snapshotService *service.SnapshotService
}

// NewSnapshotHandler creates a new SnapshotHandler
func NewSnapshotHandler(snapshotService *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: snapshotService,
	}
}

// DailySnapshots lists the daily series of one portfolio
func (h *SnapshotHandler) DailySnapshots(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	snapshots, err := h.snapshotService.GetDailySnapshots(r.Context(), portfolioID)
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve daily snapshots")
		return
	}
	respondJSON(w, http.StatusOK, snapshots)
}

// UpsertDailySnapshot creates or replaces the snapshot for one date
func (h *SnapshotHandler) UpsertDailySnapshot(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	var req request.UpsertDailySnapshotRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.PortfolioID = portfolioID

	if err := validation.ValidateUpsertDailySnapshot(req); err != nil {
		respondServiceError(w, err, "Invalid daily snapshot")
		return
	}

	snapshot, err := h.snapshotService.UpsertDailySnapshot(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "Failed to save daily snapshot")
		return
	}
	respondJSON(w, http.StatusOK, snapshot)
}

// UpdateDailySnapshot applies a partial update to a daily snapshot
func (h *SnapshotHandler) UpdateDailySnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	var req request.UpdateDailySnapshotRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validation.ValidateUpdateDailySnapshot(req); err != nil {
		respondServiceError(w, err, "Invalid daily snapshot update")
		return
	}

	snapshot, err := h.snapshotService.UpdateDailySnapshot(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err, "Failed to update daily snapshot")
		return
	}
	respondJSON(w, http.StatusOK, snapshot)
}

// DeleteDailySnapshot removes one daily snapshot
func (h *SnapshotHandler) DeleteDailySnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	if err := h.snapshotService.DeleteDailySnapshot(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete daily snapshot")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// MonthlySnapshots lists the monthly series of one portfolio
func (h *SnapshotHandler) MonthlySnapshots(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	snapshots, err := h.snapshotService.GetMonthlySnapshots(r.Context(), portfolioID)
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve monthly snapshots")
		return
	}
	respondJSON(w, http.StatusOK, snapshots)
}

// UpsertMonthlySnapshot creates or replaces the snapshot for one month
func (h *SnapshotHandler) UpsertMonthlySnapshot(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	var req request.UpsertMonthlySnapshotRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.PortfolioID = portfolioID

	if err := validation.ValidateUpsertMonthlySnapshot(req); err != nil {
		respondServiceError(w, err, "Invalid monthly snapshot")
		return
	}

	snapshot, err := h.snapshotService.UpsertMonthlySnapshot(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "Failed to save monthly snapshot")
		return
	}
	respondJSON(w, http.StatusOK, snapshot)
}

// UpdateMonthlySnapshot applies a partial update to a monthly snapshot
func (h *SnapshotHandler) UpdateMonthlySnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	var req request.UpdateMonthlySnapshotRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validation.ValidateUpdateMonthlySnapshot(req); err != nil {
		respondServiceError(w, err, "Invalid monthly snapshot update")
		return
	}

	snapshot, err := h.snapshotService.UpdateMonthlySnapshot(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err, "Failed to update monthly snapshot")
		return
	}
	respondJSON(w, http.StatusOK, snapshot)
}

// DeleteMonthlySnapshot removes one monthly snapshot
func (h *SnapshotHandler) DeleteMonthlySnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	if err := h.snapshotService.DeleteMonthlySnapshot(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete monthly snapshot")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
