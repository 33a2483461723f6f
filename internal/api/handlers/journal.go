package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/service"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/validation"
)

// JournalHandler handles journal entry HTTP requests
type JournalHandler struct {
	journalService *service.JournalService
}

// NewJournalHandler creates a new JournalHandler
func NewJournalHandler(journalService *service.JournalService) *JournalHandler {
	return &JournalHandler{
		journalService: journalService,
	}
}

// JournalEntries lists the journal entries of one portfolio
func (h *JournalHandler) JournalEntries(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	entries, err := h.journalService.GetJournalEntries(r.Context(), portfolioID)
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve journal entries")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// CreateJournalEntry creates an entry under the portfolio in the URL
func (h *JournalHandler) CreateJournalEntry(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	var req request.CreateJournalEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.PortfolioID = portfolioID

	if err := validation.ValidateCreateJournalEntry(req); err != nil {
		respondServiceError(w, err, "Invalid journal entry")
		return
	}

	entry, err := h.journalService.CreateJournalEntry(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "Failed to create journal entry")
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

// UpdateJournalEntry applies a partial update to a journal entry
func (h *JournalHandler) UpdateJournalEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	var req request.UpdateJournalEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validation.ValidateUpdateJournalEntry(req); err != nil {
		respondServiceError(w, err, "Invalid journal entry update")
		return
	}

	entry, err := h.journalService.UpdateJournalEntry(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err, "Failed to update journal entry")
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// DeleteJournalEntry removes a journal entry
func (h *JournalHandler) DeleteJournalEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	if err := h.journalService.DeleteJournalEntry(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete journal entry")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
