package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/api/request"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/identity"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/store"
)

// GoalService handles goal business logic. Completion is a one-way action:
// the first completion timestamp sticks and later value drops never clear it.
type GoalService struct {
	entities store.EntityStore
}

// NewGoalService creates a new GoalService over the given store.
func NewGoalService(entities store.EntityStore) *GoalService {
	return &GoalService{entities: entities}
}

// GetGoals retrieves the goals of one portfolio.
func (s *GoalService) GetGoals(ctx context.Context, portfolioID string) ([]model.Goal, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.entities.ListGoals(ctx, tenantID, portfolioID)
}

// GetGoal retrieves a single goal by id.
func (s *GoalService) GetGoal(ctx context.Context, id string) (model.Goal, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.Goal{}, err
	}
	return s.entities.GetGoal(ctx, tenantID, id)
}

// CreateGoal creates a goal under an existing portfolio.
func (s *GoalService) CreateGoal(ctx context.Context, req request.CreateGoalRequest) (model.Goal, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.Goal{}, err
	}

	if _, err := s.entities.GetPortfolio(ctx, tenantID, req.PortfolioID); err != nil {
		return model.Goal{}, err
	}

	g := model.Goal{
		ID:          uuid.NewString(),
		PortfolioID: req.PortfolioID,
		Name:        req.Name,
		TargetValue: req.TargetValue,
		Deadline:    req.Deadline,
		Color:       req.Color,
		Icon:        req.Icon,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.entities.CreateGoal(ctx, tenantID, g); err != nil {
		return model.Goal{}, err
	}
	return g, nil
}

// UpdateGoal applies the provided fields and returns the updated goal.
// Completion state cannot be changed through update.
func (s *GoalService) UpdateGoal(ctx context.Context, id string, req request.UpdateGoalRequest) (model.Goal, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.Goal{}, err
	}

	patch := model.GoalPatch{
		Name:        req.Name,
		TargetValue: req.TargetValue,
		Deadline:    req.Deadline,
		Color:       req.Color,
		Icon:        req.Icon,
	}
	if err := s.entities.UpdateGoal(ctx, tenantID, id, patch); err != nil {
		return model.Goal{}, err
	}
	return s.entities.GetGoal(ctx, tenantID, id)
}

// CompleteGoal marks a goal as reached. Completing it again returns the
// original completion timestamp unchanged.
func (s *GoalService) CompleteGoal(ctx context.Context, id string) (model.Goal, error) {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return model.Goal{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.entities.CompleteGoal(ctx, tenantID, id, now); err != nil {
		return model.Goal{}, err
	}
	return s.entities.GetGoal(ctx, tenantID, id)
}

// DeleteGoal removes a goal. Deleting an unknown id is a no-op.
func (s *GoalService) DeleteGoal(ctx context.Context, id string) error {
	tenantID, err := identity.TenantFromContext(ctx)
	if err != nil {
		return err
	}
	return s.entities.DeleteGoal(ctx, tenantID, id)
}
