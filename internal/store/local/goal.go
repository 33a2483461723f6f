package local

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
)

func scanGoal(scan func(dest ...any) error) (model.Goal, error) {
	var g model.Goal
	var deadline, icon, completedAt sql.NullString

	if err := scan(
		&g.ID, &g.PortfolioID, &g.Name, &g.TargetValue,
		&deadline, &g.Color, &icon, &g.CreatedAt, &completedAt,
	); err != nil {
		return model.Goal{}, err
	}
	g.Deadline = deadline.String
	g.Icon = icon.String
	g.CompletedAt = completedAt.String
	return g, nil
}

// ListGoals retrieves all goals of a portfolio ordered by creation time.
func (s *Store) ListGoals(ctx context.Context, tenantID, portfolioID string) ([]model.Goal, error) {
	query := `
	  SELECT id, portfolio_id, name, target_value, deadline, color, icon, created_at, completed_at
	  FROM goal
	  WHERE portfolio_id = ?
	  ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goal table: %w", err)
	}
	defer rows.Close()

	goals := []model.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal table results: %w", err)
		}
		goals = append(goals, g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goal table: %w", err)
	}

	return goals, nil
}

// GetGoal retrieves a single goal by id.
func (s *Store) GetGoal(ctx context.Context, tenantID, id string) (model.Goal, error) {
	query := `
	  SELECT id, portfolio_id, name, target_value, deadline, color, icon, created_at, completed_at
	  FROM goal
	  WHERE id = ?
	`

	g, err := scanGoal(s.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return model.Goal{}, apperrors.ErrGoalNotFound
	}
	if err != nil {
		return model.Goal{}, fmt.Errorf("failed to query goal: %w", err)
	}

	return g, nil
}

// CreateGoal inserts a new goal row.
func (s *Store) CreateGoal(ctx context.Context, tenantID string, g model.Goal) error {
	query := `
	  INSERT INTO goal (id, portfolio_id, name, target_value, deadline, color, icon, created_at, completed_at)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if _, err := s.db.ExecContext(ctx, query,
		g.ID, g.PortfolioID, g.Name, g.TargetValue,
		nullable(g.Deadline), g.Color, nullable(g.Icon), g.CreatedAt, nullable(g.CompletedAt),
	); err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}
	return nil
}

// UpdateGoal applies non-nil patch fields to an existing goal.
// Completion state is managed by CompleteGoal, never by patch.
func (s *Store) UpdateGoal(ctx context.Context, tenantID, id string, patch model.GoalPatch) error {
	return s.inTx(func(tx *sql.Tx) error {
		g, err := scanGoal(tx.QueryRowContext(ctx,
			`SELECT id, portfolio_id, name, target_value, deadline, color, icon, created_at, completed_at
			 FROM goal WHERE id = ?`, id,
		).Scan)
		if err == sql.ErrNoRows {
			return apperrors.ErrGoalNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to query goal: %w", err)
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

		if _, err := tx.ExecContext(ctx,
			`UPDATE goal SET name = ?, target_value = ?, deadline = ?, color = ?, icon = ? WHERE id = ?`,
			g.Name, g.TargetValue, nullable(g.Deadline), g.Color, nullable(g.Icon), id,
		); err != nil {
			return fmt.Errorf("failed to update goal: %w", err)
		}
		return nil
	})
}

// CompleteGoal stamps completedAt exactly once. Completing a goal that is
// already completed returns the original timestamp without overwriting it.
func (s *Store) CompleteGoal(ctx context.Context, tenantID, id, completedAt string) (string, error) {
	effective := completedAt
	err := s.inTx(func(tx *sql.Tx) error {
		var existing sql.NullString
		err := tx.QueryRowContext(ctx, `SELECT completed_at FROM goal WHERE id = ?`, id).Scan(&existing)
		if err == sql.ErrNoRows {
			return apperrors.ErrGoalNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to query goal: %w", err)
		}

		if existing.Valid && existing.String != "" {
			effective = existing.String
			return nil
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE goal SET completed_at = ? WHERE id = ?`, completedAt, id,
		); err != nil {
			return fmt.Errorf("failed to complete goal: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return effective, nil
}

// DeleteGoal removes a goal. Deleting a non-existent id is a no-op.
func (s *Store) DeleteGoal(ctx context.Context, tenantID, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM goal WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}
