package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/service"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/validation"
)

// GoalHandler handles goal-related HTTP requests
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// Goals lists the goals of one portfolio
func (h *GoalHandler) Goals(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	goals, err := h.goalService.GetGoals(r.Context(), portfolioID)
	if err != nil {
		respondServiceError(w, err, "Failed to retrieve goals")
		return
	}
	respondJSON(w, http.StatusOK, goals)
}

// CreateGoal creates a goal under the portfolio in the URL
func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	var req request.CreateGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.PortfolioID = portfolioID

	if err := validation.ValidateCreateGoal(req); err != nil {
		respondServiceError(w, err, "Invalid goal")
		return
	}

	goal, err := h.goalService.CreateGoal(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "Failed to create goal")
		return
	}
	respondJSON(w, http.StatusCreated, goal)
}

// UpdateGoal applies a partial update to a goal
func (h *GoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	var req request.UpdateGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validation.ValidateUpdateGoal(req); err != nil {
		respondServiceError(w, err, "Invalid goal update")
		return
	}

	goal, err := h.goalService.UpdateGoal(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err, "Failed to update goal")
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// CompleteGoal marks a goal as reached
func (h *GoalHandler) CompleteGoal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	goal, err := h.goalService.CompleteGoal(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to complete goal")
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// DeleteGoal removes a goal
func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	if err := h.goalService.DeleteGoal(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete goal")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
