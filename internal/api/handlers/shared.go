package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/response"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/validation"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	response.RespondJSON(w, status, data)
}

// decodeJSON parses the request body into dst, responding with 400 on
// malformed input. Returns false when the response has been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	return true
}

// respondServiceError translates the error taxonomy into HTTP statuses:
// unauthenticated 401, not found 404, conflict 409, validation 400,
// storage unavailable 503, anything else 500.
func respondServiceError(w http.ResponseWriter, err error, message string) {
	var validationErr *validation.Error

	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		response.RespondError(w, http.StatusUnauthorized, "authentication required", err.Error())
	case errors.Is(err, apperrors.ErrPortfolioNotFound),
		errors.Is(err, apperrors.ErrWalletNotFound),
		errors.Is(err, apperrors.ErrSnapshotNotFound),
		errors.Is(err, apperrors.ErrGoalNotFound),
		errors.Is(err, apperrors.ErrJournalEntryNotFound),
		errors.Is(err, apperrors.ErrMarketEventNotFound),
		errors.Is(err, apperrors.ErrSettingNotFound):
		response.RespondError(w, http.StatusNotFound, message, err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		response.RespondError(w, http.StatusConflict, message, err.Error())
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, validation.ErrInvalidUUID),
		errors.As(err, &validationErr):
		response.RespondError(w, http.StatusBadRequest, message, err.Error())
	case errors.Is(err, apperrors.ErrStorageUnavailable),
		errors.Is(err, apperrors.ErrSecretsNotConfigured):
		response.RespondError(w, http.StatusServiceUnavailable, message, err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, message, err.Error())
	}
}
