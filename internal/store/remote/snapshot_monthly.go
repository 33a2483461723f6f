package remote

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

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

// ListMonthly retrieves a portfolio's monthly snapshots sorted ascending
// by month, scoped to the tenant.
func (s *Store) ListMonthly(ctx context.Context, tenantID, portfolioID string) ([]model.MonthlySnapshot, error) {
	query := `
	  SELECT id, portfolio_id, month, year, total_usd, delta_usd, delta_percent, btc_price, eth_price
	  FROM monthly_snapshot
	  WHERE user_id = $1 AND portfolio_id = $2
	  ORDER BY month ASC
	`

	rows, err := s.pool.Query(ctx, query, tenantID, portfolioID)
	if err != nil {
		return nil, wrapErr("failed to query monthly_snapshot table", err)
	}
	defer rows.Close()

	snapshots := []model.MonthlySnapshot{}
	for rows.Next() {
		snap, err := scanMonthlySnapshot(rows.Scan)
		if err != nil {
			return nil, wrapErr("failed to scan monthly_snapshot row", err)
		}
		snapshots = append(snapshots, snap)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapErr("error iterating monthly_snapshot table", err)
	}

	return snapshots, nil
}

// GetMonthly retrieves a single monthly snapshot owned by the tenant.
func (s *Store) GetMonthly(ctx context.Context, tenantID, id string) (model.MonthlySnapshot, error) {
	query := `
	  SELECT id, portfolio_id, month, year, total_usd, delta_usd, delta_percent, btc_price, eth_price
	  FROM monthly_snapshot
	  WHERE user_id = $1 AND id = $2
	`

	snap, err := scanMonthlySnapshot(s.pool.QueryRow(ctx, query, tenantID, id).Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.MonthlySnapshot{}, apperrors.ErrSnapshotNotFound
	}
	if err != nil {
		return model.MonthlySnapshot{}, wrapErr("failed to query monthly_snapshot", err)
	}

	return snap, nil
}

// UpsertMonthly writes a snapshot keyed on (portfolioId, month) as one
// atomic statement, preserving the existing row's id on update.
func (s *Store) UpsertMonthly(ctx context.Context, tenantID string, snapshot model.MonthlySnapshot) (string, error) {
	query := `
	  INSERT INTO monthly_snapshot (id, user_id, portfolio_id, month, year, total_usd, delta_usd, delta_percent, btc_price, eth_price)
	  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	  ON CONFLICT (portfolio_id, month)
	  DO UPDATE SET
	    year = EXCLUDED.year,
	    total_usd = EXCLUDED.total_usd,
	    delta_usd = EXCLUDED.delta_usd,
	    delta_percent = EXCLUDED.delta_percent,
	    btc_price = EXCLUDED.btc_price,
	    eth_price = EXCLUDED.eth_price
	  WHERE monthly_snapshot.user_id = EXCLUDED.user_id
	  RETURNING id
	`

	var effectiveID string
	err := s.pool.QueryRow(ctx, query,
		snapshot.ID, tenantID, snapshot.PortfolioID, snapshot.Month, snapshot.Year,
		snapshot.TotalUsd, snapshot.DeltaUsd, snapshot.DeltaPercent,
		snapshot.BtcPrice, snapshot.EthPrice,
	).Scan(&effectiveID)
	if err != nil {
		return "", wrapErr("failed to upsert monthly_snapshot", err)
	}

	return effectiveID, nil
}

// UpdateMonthly applies non-nil patch fields to a snapshot row by id.
// A month collision with another snapshot of the same portfolio surfaces
// as a conflict.
func (s *Store) UpdateMonthly(ctx context.Context, tenantID, id string, patch model.MonthlySnapshotPatch) error {
	snap, err := s.GetMonthly(ctx, tenantID, id)
	if err != nil {
		return err
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

	query := `
	  UPDATE monthly_snapshot
	  SET month = $1, year = $2, total_usd = $3, delta_usd = $4, delta_percent = $5, btc_price = $6, eth_price = $7
	  WHERE user_id = $8 AND id = $9
	`
	if _, err := s.pool.Exec(ctx, query,
		snap.Month, snap.Year, snap.TotalUsd, snap.DeltaUsd, snap.DeltaPercent,
		snap.BtcPrice, snap.EthPrice, tenantID, id,
	); err != nil {
		return wrapErr("failed to update monthly_snapshot", err)
	}
	return nil
}

// DeleteMonthly removes a monthly snapshot owned by the tenant. Deleting
// a non-existent id is a no-op.
func (s *Store) DeleteMonthly(ctx context.Context, tenantID, id string) error {
	query := `DELETE FROM monthly_snapshot WHERE user_id = $1 AND id = $2`
	if _, err := s.pool.Exec(ctx, query, tenantID, id); err != nil {
		return wrapErr("failed to delete monthly_snapshot", err)
	}
	return nil
}
