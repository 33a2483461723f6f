package handlers

import (
	"fmt"
	"net/http"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health checks the health of the system and database connectivity
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.systemService.CheckHealth(); err != nil {
		response := HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		}
		respondJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	response := HealthResponse{
		Status:   "healthy",
		Database: "connected",
	}
	respondJSON(w, http.StatusOK, response)
}

// VersionResponse represents the version check response
type VersionResponse struct {
	AppVersion string `json:"app_version"`
}

// Version returns the running application version
//
// Endpoint: GET /api/system/version
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, VersionResponse{
		AppVersion: h.systemService.CheckVersion(),
	})
}

// Prices returns the current reference BTC/ETH prices
//
// Endpoint: GET /api/system/prices
func (h *SystemHandler) Prices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.systemService.GetPrices(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve reference prices")
		return
	}
	respondJSON(w, http.StatusOK, prices)
}

// RemoteDSNResponse carries the stored remote backend connection string.
type RemoteDSNResponse struct {
	Dsn string `json:"dsn"`
}

// RemoteDSN returns the stored remote backend connection string, decrypted
//
// Endpoint: GET /api/system/remote-dsn
func (h *SystemHandler) RemoteDSN(w http.ResponseWriter, r *http.Request) {
	dsn, err := h.systemService.GetRemoteDSN(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve remote DSN")
		return
	}
	respondJSON(w, http.StatusOK, RemoteDSNResponse{Dsn: dsn})
}

// SetRemoteDSN stores the remote backend connection string, encrypted at
// rest in the local settings table
//
// Endpoint: PUT /api/system/remote-dsn
func (h *SystemHandler) SetRemoteDSN(w http.ResponseWriter, r *http.Request) {
	var req RemoteDSNResponse
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Dsn == "" {
		respondServiceError(w, fmt.Errorf("%w: dsn is required", apperrors.ErrValidation), "Invalid remote DSN")
		return
	}

	if err := h.systemService.SetRemoteDSN(r.Context(), req.Dsn); err != nil {
		respondServiceError(w, err, "Failed to store remote DSN")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
