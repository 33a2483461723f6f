package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/service"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/validation"
)

// EventHandler handles market event HTTP requests
type EventHandler struct {
	eventService *service.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// MarketEvents lists all market events of the calling tenant
func (h *EventHandler) MarketEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.GetMarketEvents(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve market events")
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// CreateMarketEvent creates a new market event
func (h *EventHandler) CreateMarketEvent(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMarketEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validation.ValidateCreateMarketEvent(req); err != nil {
		respondServiceError(w, err, "Invalid market event")
		return
	}

	event, err := h.eventService.CreateMarketEvent(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "Failed to create market event")
		return
	}
	respondJSON(w, http.StatusCreated, event)
}

// UpdateMarketEvent applies a partial update to a market event
func (h *EventHandler) UpdateMarketEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	var req request.UpdateMarketEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validation.ValidateUpdateMarketEvent(req); err != nil {
		respondServiceError(w, err, "Invalid market event update")
		return
	}

	event, err := h.eventService.UpdateMarketEvent(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err, "Failed to update market event")
		return
	}
	respondJSON(w, http.StatusOK, event)
}

// DeleteMarketEvent removes a market event
func (h *EventHandler) DeleteMarketEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	if err := h.eventService.DeleteMarketEvent(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete market event")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
