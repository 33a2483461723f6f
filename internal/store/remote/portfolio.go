package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// parseTimestamp converts a model RFC3339 string into a time value for a
// timestamptz column.
func parseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid timestamp %q", apperrors.ErrValidation, value)
	}
	return t, nil
}

// ListPortfolios retrieves the tenant's portfolios ordered by creation time.
func (s *Store) ListPortfolios(ctx context.Context, tenantID string) ([]model.Portfolio, error) {
	query := `
	  SELECT id, name, color, created_at
	  FROM portfolio
	  WHERE user_id = $1
	  ORDER BY created_at ASC
	`

	rows, err := s.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, wrapErr("failed to query portfolio table", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}
	for rows.Next() {
		var p model.Portfolio
		var createdAt time.Time
		if err := rows.Scan(&p.ID, &p.Name, &p.Color, &createdAt); err != nil {
			return nil, wrapErr("failed to scan portfolio row", err)
		}
		p.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		portfolios = append(portfolios, p)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapErr("error iterating portfolio table", err)
	}

	return portfolios, nil
}

// GetPortfolio retrieves a single portfolio owned by the tenant.
func (s *Store) GetPortfolio(ctx context.Context, tenantID, id string) (model.Portfolio, error) {
	query := `
	  SELECT id, name, color, created_at
	  FROM portfolio
	  WHERE user_id = $1 AND id = $2
	`

	var p model.Portfolio
	var createdAt time.Time
	err := s.pool.QueryRow(ctx, query, tenantID, id).Scan(&p.ID, &p.Name, &p.Color, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, wrapErr("failed to query portfolio", err)
	}
	p.CreatedAt = createdAt.UTC().Format(time.RFC3339)

	return p, nil
}

// CreatePortfolio inserts a new portfolio row for the tenant.
func (s *Store) CreatePortfolio(ctx context.Context, tenantID string, p model.Portfolio) error {
	createdAt, err := parseTimestamp(p.CreatedAt)
	if err != nil {
		return err
	}

	query := `
	  INSERT INTO portfolio (id, user_id, name, color, created_at)
	  VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := s.pool.Exec(ctx, query, p.ID, tenantID, p.Name, p.Color, createdAt); err != nil {
		return wrapErr("failed to insert portfolio", err)
	}
	return nil
}

// UpdatePortfolio applies non-nil patch fields to a portfolio owned by the
// tenant.
func (s *Store) UpdatePortfolio(ctx context.Context, tenantID, id string, patch model.PortfolioPatch) error {
	p, err := s.GetPortfolio(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Color != nil {
		p.Color = *patch.Color
	}

	query := `UPDATE portfolio SET name = $1, color = $2 WHERE user_id = $3 AND id = $4`
	if _, err := s.pool.Exec(ctx, query, p.Name, p.Color, tenantID, id); err != nil {
		return wrapErr("failed to update portfolio", err)
	}
	return nil
}

// DeletePortfolio removes a portfolio and everything it owns in one
// transaction. Dependents are deleted first and the portfolio row last.
// Deleting a non-existent id is a no-op.
func (s *Store) DeletePortfolio(ctx context.Context, tenantID, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return wrapErr("failed to begin portfolio delete", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	dependents := []string{
		`DELETE FROM wallet WHERE user_id = $1 AND portfolio_id = $2`,
		`DELETE FROM daily_snapshot WHERE user_id = $1 AND portfolio_id = $2`,
		`DELETE FROM monthly_snapshot WHERE user_id = $1 AND portfolio_id = $2`,
		`DELETE FROM goal WHERE user_id = $1 AND portfolio_id = $2`,
		`DELETE FROM journal_entry WHERE user_id = $1 AND portfolio_id = $2`,
	}
	for _, query := range dependents {
		if _, err := tx.Exec(ctx, query, tenantID, id); err != nil {
			return wrapErr("failed to cascade portfolio delete", err)
		}
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM portfolio WHERE user_id = $1 AND id = $2`, tenantID, id,
	); err != nil {
		return wrapErr("failed to delete portfolio", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return wrapErr("failed to commit portfolio delete", err)
	}
	return nil
}
