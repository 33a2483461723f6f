package handlers

import (
	"net/http"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/service"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/validation"
)

// BackupHandler handles export and import HTTP requests
type BackupHandler struct {
	backupService *service.BackupService
}

// NewBackupHandler creates a new BackupHandler
func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{
		backupService: backupService,
	}
}

// Export returns the full backup payload for the calling tenant
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	backup, err := h.backupService.ExportAll(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to export data")
		return
	}
	respondJSON(w, http.StatusOK, backup)
}

// ImportBackup restores entities from a backup payload, skipping ids that
// already exist
func (h *BackupHandler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	var backup model.Backup
	if !decodeJSON(w, r, &backup) {
		return
	}

	counts, err := h.backupService.ImportBackup(r.Context(), backup)
	if err != nil {
		respondServiceError(w, err, "Failed to import backup")
		return
	}
	respondJSON(w, http.StatusOK, counts)
}

// ImportRows validates and imports tabular snapshot rows, reporting
// partial success per row
func (h *BackupHandler) ImportRows(w http.ResponseWriter, r *http.Request) {
	var req request.ImportRowsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validation.ValidateUUID(req.PortfolioID); err != nil {
		respondServiceError(w, err, "Invalid portfolio id")
		return
	}
	if req.Data == "" {
		response.RespondError(w, http.StatusBadRequest, "data is required", "")
		return
	}

	result, err := h.backupService.ImportRows(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "Failed to import rows")
		return
	}
	respondJSON(w, http.StatusOK, result)
}
