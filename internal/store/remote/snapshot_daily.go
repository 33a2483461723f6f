package remote

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
)

func scanDailySnapshot(scan func(dest ...any) error) (model.DailySnapshot, error) {
	var snap model.DailySnapshot
	var balances []byte

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

// ListDaily retrieves a portfolio's daily snapshots sorted ascending by
// date, scoped to the tenant.
func (s *Store) ListDaily(ctx context.Context, tenantID, portfolioID string) ([]model.DailySnapshot, error) {
	query := `
	  SELECT id, portfolio_id, date, wallet_balances, total_usd, variation_usd, variation_percent
	  FROM daily_snapshot
	  WHERE user_id = $1 AND portfolio_id = $2
	  ORDER BY date ASC
	`

	rows, err := s.pool.Query(ctx, query, tenantID, portfolioID)
	if err != nil {
		return nil, wrapErr("failed to query daily_snapshot table", err)
	}
	defer rows.Close()

	snapshots := []model.DailySnapshot{}
	for rows.Next() {
		snap, err := scanDailySnapshot(rows.Scan)
		if err != nil {
			return nil, wrapErr("failed to scan daily_snapshot row", err)
		}
		snapshots = append(snapshots, snap)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapErr("error iterating daily_snapshot table", err)
	}

	return snapshots, nil
}

// GetDaily retrieves a single daily snapshot owned by the tenant.
func (s *Store) GetDaily(ctx context.Context, tenantID, id string) (model.DailySnapshot, error) {
	query := `
	  SELECT id, portfolio_id, date, wallet_balances, total_usd, variation_usd, variation_percent
	  FROM daily_snapshot
	  WHERE user_id = $1 AND id = $2
	`

	snap, err := scanDailySnapshot(s.pool.QueryRow(ctx, query, tenantID, id).Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.DailySnapshot{}, apperrors.ErrSnapshotNotFound
	}
	if err != nil {
		return model.DailySnapshot{}, wrapErr("failed to query daily_snapshot", err)
	}

	return snap, nil
}

// UpsertDaily writes a snapshot keyed on (portfolioId, date) as one atomic
// statement. The id column is not part of the conflict update, so an
// existing row keeps its original id; RETURNING reports the effective id
// either way. Concurrent writers for the same key cannot produce a
// duplicate row on this backend.
func (s *Store) UpsertDaily(ctx context.Context, tenantID string, snapshot model.DailySnapshot) (string, error) {
	balances, err := marshalJSON(snapshot.WalletBalances)
	if err != nil {
		return "", err
	}

	query := `
	  INSERT INTO daily_snapshot (id, user_id, portfolio_id, date, wallet_balances, total_usd, variation_usd, variation_percent)
	  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	  ON CONFLICT (portfolio_id, date)
	  DO UPDATE SET
	    wallet_balances = EXCLUDED.wallet_balances,
	    total_usd = EXCLUDED.total_usd,
	    variation_usd = EXCLUDED.variation_usd,
	    variation_percent = EXCLUDED.variation_percent
	  WHERE daily_snapshot.user_id = EXCLUDED.user_id
	  RETURNING id
	`

	var effectiveID string
	err = s.pool.QueryRow(ctx, query,
		snapshot.ID, tenantID, snapshot.PortfolioID, snapshot.Date, balances,
		snapshot.TotalUsd, snapshot.VariationUsd, snapshot.VariationPercent,
	).Scan(&effectiveID)
	if err != nil {
		return "", wrapErr("failed to upsert daily_snapshot", err)
	}

	return effectiveID, nil
}

// UpdateDaily applies non-nil patch fields to a snapshot row by id.
// Moving the snapshot onto a date held by another snapshot of the same
// portfolio surfaces the unique violation as a conflict.
func (s *Store) UpdateDaily(ctx context.Context, tenantID, id string, patch model.DailySnapshotPatch) error {
	snap, err := s.GetDaily(ctx, tenantID, id)
	if err != nil {
		return err
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

	query := `
	  UPDATE daily_snapshot
	  SET date = $1, wallet_balances = $2, total_usd = $3, variation_usd = $4, variation_percent = $5
	  WHERE user_id = $6 AND id = $7
	`
	if _, err := s.pool.Exec(ctx, query,
		snap.Date, balances, snap.TotalUsd, snap.VariationUsd, snap.VariationPercent, tenantID, id,
	); err != nil {
		return wrapErr("failed to update daily_snapshot", err)
	}
	return nil
}

// DeleteDaily removes a daily snapshot owned by the tenant. Deleting a
// non-existent id is a no-op.
func (s *Store) DeleteDaily(ctx context.Context, tenantID, id string) error {
	query := `DELETE FROM daily_snapshot WHERE user_id = $1 AND id = $2`
	if _, err := s.pool.Exec(ctx, query, tenantID, id); err != nil {
		return wrapErr("failed to delete daily_snapshot", err)
	}
	return nil
}
