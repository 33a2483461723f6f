package remote

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
)

func scanGoal(scan func(dest ...any) error) (model.Goal, error) {
	var g model.Goal
	var deadline, icon *string
	var createdAt time.Time
	var completedAt *time.Time

	if err := scan(
		&g.ID, &g.PortfolioID, &g.Name, &g.TargetValue,
		&deadline, &g.Color, &icon, &createdAt, &completedAt,
	); err != nil {
		return model.Goal{}, err
	}

	if deadline != nil {
		g.Deadline = *deadline
	}
	if icon != nil {
		g.Icon = *icon
	}
	g.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	if completedAt != nil {
		g.CompletedAt = completedAt.UTC().Format(time.RFC3339)
	}
	return g, nil
}

// ListGoals retrieves the goals of a portfolio owned by the tenant.
func (s *Store) ListGoals(ctx context.Context, tenantID, portfolioID string) ([]model.Goal, error) {
	query := `
	  SELECT id, portfolio_id, name, target_value, deadline, color, icon, created_at, completed_at
	  FROM goal
	  WHERE user_id = $1 AND portfolio_id = $2
	  ORDER BY created_at ASC
	`

	rows, err := s.pool.Query(ctx, query, tenantID, portfolioID)
	if err != nil {
		return nil, wrapErr("failed to query goal table", err)
	}
	defer rows.Close()

	goals := []model.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows.Scan)
		if err != nil {
			return nil, wrapErr("failed to scan goal row", err)
		}
		goals = append(goals, g)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapErr("error iterating goal table", err)
	}

	return goals, nil
}

// GetGoal retrieves a single goal owned by the tenant.
func (s *Store) GetGoal(ctx context.Context, tenantID, id string) (model.Goal, error) {
	query := `
	  SELECT id, portfolio_id, name, target_value, deadline, color, icon, created_at, completed_at
	  FROM goal
	  WHERE user_id = $1 AND id = $2
	`

	g, err := scanGoal(s.pool.QueryRow(ctx, query, tenantID, id).Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Goal{}, apperrors.ErrGoalNotFound
	}
	if err != nil {
		return model.Goal{}, wrapErr("failed to query goal", err)
	}

	return g, nil
}

// CreateGoal inserts a new goal row for the tenant.
func (s *Store) CreateGoal(ctx context.Context, tenantID string, g model.Goal) error {
	createdAt, err := parseTimestamp(g.CreatedAt)
	if err != nil {
		return err
	}

	var completedAt *time.Time
	if g.CompletedAt != "" {
		t, err := parseTimestamp(g.CompletedAt)
		if err != nil {
			return err
		}
		completedAt = &t
	}

	query := `
	  INSERT INTO goal (id, user_id, portfolio_id, name, target_value, deadline, color, icon, created_at, completed_at)
	  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if _, err := s.pool.Exec(ctx, query,
		g.ID, tenantID, g.PortfolioID, g.Name, g.TargetValue,
		nullable(g.Deadline), g.Color, nullable(g.Icon), createdAt, completedAt,
	); err != nil {
		return wrapErr("failed to insert goal", err)
	}
	return nil
}

// UpdateGoal applies non-nil patch fields to a goal owned by the tenant.
// Completion state is managed by CompleteGoal, never by patch.
func (s *Store) UpdateGoal(ctx context.Context, tenantID, id string, patch model.GoalPatch) error {
	g, err := s.GetGoal(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if patch.Name != nil {
		g.Name = *patch.Name
	}
	if patch.TargetValue != nil {
		g.TargetValue = *patch.TargetValue
	}
	if patch.Deadline != nil {
		g.Deadline = *patch.Deadline
	}
	if patch.Color != nil {
		g.Color = *patch.Color
	}
	if patch.Icon != nil {
		g.Icon = *patch.Icon
	}

	query := `
	  UPDATE goal SET name = $1, target_value = $2, deadline = $3, color = $4, icon = $5
	  WHERE user_id = $6 AND id = $7
	`
	if _, err := s.pool.Exec(ctx, query,
		g.Name, g.TargetValue, nullable(g.Deadline), g.Color, nullable(g.Icon), tenantID, id,
	); err != nil {
		return wrapErr("failed to update goal", err)
	}
	return nil
}

// CompleteGoal stamps completedAt exactly once using a conditional update,
// then reads back the effective timestamp. A goal that is already complete
// keeps its original timestamp.
func (s *Store) CompleteGoal(ctx context.Context, tenantID, id, completedAt string) (string, error) {
	stamp, err := parseTimestamp(completedAt)
	if err != nil {
		return "", err
	}

	query := `
	  UPDATE goal SET completed_at = $1
	  WHERE user_id = $2 AND id = $3 AND completed_at IS NULL
	`
	if _, err := s.pool.Exec(ctx, query, stamp, tenantID, id); err != nil {
		return "", wrapErr("failed to complete goal", err)
	}

	g, err := s.GetGoal(ctx, tenantID, id)
	if err != nil {
		return "", err
	}
	return g.CompletedAt, nil
}

// DeleteGoal removes a goal owned by the tenant. Deleting a non-existent
// id is a no-op.
func (s *Store) DeleteGoal(ctx context.Context, tenantID, id string) error {
	query := `DELETE FROM goal WHERE user_id = $1 AND id = $2`
	if _, err := s.pool.Exec(ctx, query, tenantID, id); err != nil {
		return wrapErr("failed to delete goal", err)
	}
	return nil
}
