package local

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// ListPortfolios retrieves all portfolios ordered by creation time.
func (s *Store) ListPortfolios(ctx context.Context, tenantID string) ([]model.Portfolio, error) {
	query := `
	  SELECT id, name, color, created_at
	  FROM portfolio
	  ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}
	for rows.Next() {
		var p model.Portfolio
		if err := rows.Scan(&p.ID, &p.Name, &p.Color, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio table results: %w", err)
		}
		portfolios = append(portfolios, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	return portfolios, nil
}

// GetPortfolio retrieves a single portfolio by id.
func (s *Store) GetPortfolio(ctx context.Context, tenantID, id string) (model.Portfolio, error) {
	query := `
	  SELECT id, name, color, created_at
	  FROM portfolio
	  WHERE id = ?
	`

	var p model.Portfolio
	err := s.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Color, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio: %w", err)
	}

	return p, nil
}

// CreatePortfolio inserts a new portfolio row.
func (s *Store) CreatePortfolio(ctx context.Context, tenantID string, p model.Portfolio) error {
	query := `
	  INSERT INTO portfolio (id, name, color, created_at)
	  VALUES (?, ?, ?, ?)
	`

	if _, err := s.db.ExecContext(ctx, query, p.ID, p.Name, p.Color, p.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}
	return nil
}

// UpdatePortfolio applies non-nil patch fields to an existing portfolio.
// Portfolio identity (id, createdAt) is immutable once created.
func (s *Store) UpdatePortfolio(ctx context.Context, tenantID, id string, patch model.PortfolioPatch) error {
	return s.inTx(func(tx *sql.Tx) error {
		var p model.Portfolio
		err := tx.QueryRowContext(ctx,
			`SELECT id, name, color, created_at FROM portfolio WHERE id = ?`, id,
		).Scan(&p.ID, &p.Name, &p.Color, &p.CreatedAt)
		if err == sql.ErrNoRows {
			return apperrors.ErrPortfolioNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to query portfolio: %w", err)
		}

		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Color != nil {
			p.Color = *patch.Color
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE portfolio SET name = ?, color = ? WHERE id = ?`,
			p.Name, p.Color, id,
		); err != nil {
			return fmt.Errorf("failed to update portfolio: %w", err)
		}
		return nil
	})
}

// DeletePortfolio removes a portfolio and everything it owns in a single
// transaction. Dependents go first and the portfolio row last, so an
// interrupted cascade never leaves orphans without a discoverable root.
// Deleting a non-existent id is a no-op.
func (s *Store) DeletePortfolio(ctx context.Context, tenantID, id string) error {
	return s.inTx(func(tx *sql.Tx) error {
		dependents := []string{
			`DELETE FROM wallet WHERE portfolio_id = ?`,
			`DELETE FROM daily_snapshot WHERE portfolio_id = ?`,
			`DELETE FROM monthly_snapshot WHERE portfolio_id = ?`,
			`DELETE FROM goal WHERE portfolio_id = ?`,
			`DELETE FROM journal_entry WHERE portfolio_id = ?`,
		}
		for _, query := range dependents {
			if _, err := tx.ExecContext(ctx, query, id); err != nil {
				return fmt.Errorf("failed to cascade portfolio delete: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM portfolio WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete portfolio: %w", err)
		}
		return nil
	})
}
