package local

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
)

func scanDailySnapshot(scan func(dest ...any) error) (model.DailySnapshot, error) {
	var snap model.DailySnapshot
	var balances string

	if err := scan(
		&snap.ID, &snap.PortfolioID, &snap.Date, &balances,
		&snap.TotalUsd, &snap.VariationUsd, &snap.VariationPercent,
	); err != nil {
		return model.DailySnapshot{}, err
	}

	decoded, err := unmarshalBalances(balances)
	if err != nil {
		return model.DailySnapshot{}, err
	}
	snap.WalletBalances = decoded
	return snap, nil
}

// ListDaily retrieves all daily snapshots of a portfolio sorted ascending
// by date.
func (s *Store) ListDaily(ctx context.Context, tenantID, portfolioID string) ([]model.DailySnapshot, error) {
	query := `
	  SELECT id, portfolio_id, date, wallet_balances, total_usd, variation_usd, variation_percent
	  FROM daily_snapshot
	  WHERE portfolio_id = ?
	  ORDER BY date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.DailySnapshot{}
	for rows.Next() {
		snap, err := scanDailySnapshot(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily_snapshot table results: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily_snapshot table: %w", err)
	}

	return snapshots, nil
}

// GetDaily retrieves a single daily snapshot by id.
func (s *Store) GetDaily(ctx context.Context, tenantID, id string) (model.DailySnapshot, error) {
	query := `
	  SELECT id, portfolio_id, date, wallet_balances, total_usd, variation_usd, variation_percent
	  FROM daily_snapshot
	  WHERE id = ?
	`

	snap, err := scanDailySnapshot(s.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return model.DailySnapshot{}, apperrors.ErrSnapshotNotFound
	}
	if err != nil {
		return model.DailySnapshot{}, fmt.Errorf("failed to query daily_snapshot: %w", err)
	}

	return snap, nil
}

// UpsertDaily writes a snapshot keyed on (portfolioId, date). An existing
// row for that date has all its fields overwritten and keeps its original
// id; otherwise the snapshot is inserted under its own id. Returns the
// effective id.
//
// The check-then-write sequence runs in one transaction. A single writer
// per portfolio is assumed for the embedded backend; concurrent writers to
// the same key need the remote backend's atomic upsert.
func (s *Store) UpsertDaily(ctx context.Context, tenantID string, snapshot model.DailySnapshot) (string, error) {
	balances, err := marshalJSON(snapshot.WalletBalances)
	if err != nil {
		return "", err
	}

	effectiveID := snapshot.ID
	err = s.inTx(func(tx *sql.Tx) error {
		var existingID string
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM daily_snapshot WHERE portfolio_id = ? AND date = ?`,
			snapshot.PortfolioID, snapshot.Date,
		).Scan(&existingID)

		switch {
		case err == sql.ErrNoRows:
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO daily_snapshot (id, portfolio_id, date, wallet_balances, total_usd, variation_usd, variation_percent)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				snapshot.ID, snapshot.PortfolioID, snapshot.Date, balances,
				snapshot.TotalUsd, snapshot.VariationUsd, snapshot.VariationPercent,
			); err != nil {
				return fmt.Errorf("failed to insert daily_snapshot: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to query daily_snapshot natural key: %w", err)
		default:
			effectiveID = existingID
			if _, err := tx.ExecContext(ctx,
				`UPDATE daily_snapshot SET wallet_balances = ?, total_usd = ?, variation_usd = ?, variation_percent = ?
				 WHERE id = ?`,
				balances, snapshot.TotalUsd, snapshot.VariationUsd, snapshot.VariationPercent, existingID,
			); err != nil {
				return fmt.Errorf("failed to update daily_snapshot: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return effectiveID, nil
}

// UpdateDaily applies non-nil patch fields to a snapshot row by id.
// Moving the snapshot onto a date held by another snapshot of the same
// portfolio is a conflict, not an upsert.
func (s *Store) UpdateDaily(ctx context.Context, tenantID, id string, patch model.DailySnapshotPatch) error {
	return s.inTx(func(tx *sql.Tx) error {
		snap, err := scanDailySnapshot(tx.QueryRowContext(ctx,
			`SELECT id, portfolio_id, date, wallet_balances, total_usd, variation_usd, variation_percent
			 FROM daily_snapshot WHERE id = ?`, id,
		).Scan)
		if err == sql.ErrNoRows {
			return apperrors.ErrSnapshotNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to query daily_snapshot: %w", err)
		}

		if patch.Date != nil {
			snap.Date = *patch.Date
		}
		if patch.WalletBalances != nil {
			snap.WalletBalances = *patch.WalletBalances
		}
		if patch.TotalUsd != nil {
			snap.TotalUsd = *patch.TotalUsd
		}
		if patch.VariationUsd != nil {
			snap.VariationUsd = *patch.VariationUsd
		}
		if patch.VariationPercent != nil {
			snap.VariationPercent = *patch.VariationPercent
		}

		balances, err := marshalJSON(snap.WalletBalances)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE daily_snapshot SET date = ?, wallet_balances = ?, total_usd = ?, variation_usd = ?, variation_percent = ?
			 WHERE id = ?`,
			snap.Date, balances, snap.TotalUsd, snap.VariationUsd, snap.VariationPercent, id,
		)
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: daily snapshot for %s already exists", apperrors.ErrConflict, snap.Date)
		}
		if err != nil {
			return fmt.Errorf("failed to update daily_snapshot: %w", err)
		}
		return nil
	})
}

// DeleteDaily removes a daily snapshot. Deleting a non-existent id is a
// no-op.
func (s *Store) DeleteDaily(ctx context.Context, tenantID, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM daily_snapshot WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete daily_snapshot: %w", err)
	}
	return nil
}
