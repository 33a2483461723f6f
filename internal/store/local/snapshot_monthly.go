package local

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
)

func scanMonthlySnapshot(scan func(dest ...any) error) (model.MonthlySnapshot, error) {
	var snap model.MonthlySnapshot
	err := scan(
		&snap.ID, &snap.PortfolioID, &snap.Month, &snap.Year,
		&snap.TotalUsd, &snap.DeltaUsd, &snap.DeltaPercent,
		&snap.BtcPrice, &snap.EthPrice,
	)
	return snap, err
}

// ListMonthly retrieves all monthly snapshots of a portfolio sorted
// ascending by month.
func (s *Store) ListMonthly(ctx context.Context, tenantID, portfolioID string) ([]model.MonthlySnapshot, error) {
	query := `
	  SELECT id, portfolio_id, month, year, total_usd, delta_usd, delta_percent, btc_price, eth_price
	  FROM monthly_snapshot
	  WHERE portfolio_id = ?
	  ORDER BY month ASC
	`

	rows, err := s.db.QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.MonthlySnapshot{}
	for rows.Next() {
		snap, err := scanMonthlySnapshot(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monthly_snapshot table results: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly_snapshot table: %w", err)
	}

	return snapshots, nil
}

// GetMonthly retrieves a single monthly snapshot by id.
func (s *Store) GetMonthly(ctx context.Context, tenantID, id string) (model.MonthlySnapshot, error) {
	query := `
	  SELECT id, portfolio_id, month, year, total_usd, delta_usd, delta_percent, btc_price, eth_price
	  FROM monthly_snapshot
	  WHERE id = ?
	`

	snap, err := scanMonthlySnapshot(s.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return model.MonthlySnapshot{}, apperrors.ErrSnapshotNotFound
	}
	if err != nil {
		return model.MonthlySnapshot{}, fmt.Errorf("failed to query monthly_snapshot: %w", err)
	}

	return snap, nil
}

// UpsertMonthly writes a snapshot keyed on (portfolioId, month), following
// the same id-preserving rule as UpsertDaily.
func (s *Store) UpsertMonthly(ctx context.Context, tenantID string, snapshot model.MonthlySnapshot) (string, error) {
	effectiveID := snapshot.ID
	err := s.inTx(func(tx *sql.Tx) error {
		var existingID string
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM monthly_snapshot WHERE portfolio_id = ? AND month = ?`,
			snapshot.PortfolioID, snapshot.Month,
		).Scan(&existingID)

		switch {
		case err == sql.ErrNoRows:
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO monthly_snapshot (id, portfolio_id, month, year, total_usd, delta_usd, delta_percent, btc_price, eth_price)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				snapshot.ID, snapshot.PortfolioID, snapshot.Month, snapshot.Year,
				snapshot.TotalUsd, snapshot.DeltaUsd, snapshot.DeltaPercent,
				snapshot.BtcPrice, snapshot.EthPrice,
			); err != nil {
				return fmt.Errorf("failed to insert monthly_snapshot: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to query monthly_snapshot natural key: %w", err)
		default:
			effectiveID = existingID
			if _, err := tx.ExecContext(ctx,
				`UPDATE monthly_snapshot SET year = ?, total_usd = ?, delta_usd = ?, delta_percent = ?, btc_price = ?, eth_price = ?
				 WHERE id = ?`,
				snapshot.Year, snapshot.TotalUsd, snapshot.DeltaUsd, snapshot.DeltaPercent,
				snapshot.BtcPrice, snapshot.EthPrice, existingID,
			); err != nil {
				return fmt.Errorf("failed to update monthly_snapshot: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return effectiveID, nil
}

// UpdateMonthly applies non-nil patch fields to a snapshot row by id.
// Moving the snapshot onto a month held by another snapshot of the same
// portfolio is a conflict.
func (s *Store) UpdateMonthly(ctx context.Context, tenantID, id string, patch model.MonthlySnapshotPatch) error {
	return s.inTx(func(tx *sql.Tx) error {
		snap, err := scanMonthlySnapshot(tx.QueryRowContext(ctx,
			`SELECT id, portfolio_id, month, year, total_usd, delta_usd, delta_percent, btc_price, eth_price
			 FROM monthly_snapshot WHERE id = ?`, id,
		).Scan)
		if err == sql.ErrNoRows {
			return apperrors.ErrSnapshotNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to query monthly_snapshot: %w", err)
		}

		if patch.Month != nil {
			snap.Month = *patch.Month
		}
		if patch.Year != nil {
			snap.Year = *patch.Year
		}
		if patch.TotalUsd != nil {
			snap.TotalUsd = *patch.TotalUsd
		}
		if patch.DeltaUsd != nil {
			snap.DeltaUsd = *patch.DeltaUsd
		}
		if patch.DeltaPercent != nil {
			snap.DeltaPercent = *patch.DeltaPercent
		}
		if patch.BtcPrice != nil {
			snap.BtcPrice = *patch.BtcPrice
		}
		if patch.EthPrice != nil {
			snap.EthPrice = *patch.EthPrice
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE monthly_snapshot SET month = ?, year = ?, total_usd = ?, delta_usd = ?, delta_percent = ?, btc_price = ?, eth_price = ?
			 WHERE id = ?`,
			snap.Month, snap.Year, snap.TotalUsd, snap.DeltaUsd, snap.DeltaPercent,
			snap.BtcPrice, snap.EthPrice, id,
		)
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: monthly snapshot for %s already exists", apperrors.ErrConflict, snap.Month)
		}
		if err != nil {
			return fmt.Errorf("failed to update monthly_snapshot: %w", err)
		}
		return nil
	})
}

// DeleteMonthly removes a monthly snapshot. Deleting a non-existent id is
// a no-op.
func (s *Store) DeleteMonthly(ctx context.Context, tenantID, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM monthly_snapshot WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete monthly_snapshot: %w", err)
	}
	return nil
}
