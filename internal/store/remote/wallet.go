package remote

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
)

func scanWallet(scan func(dest ...any) error) (model.Wallet, error) {
	var w model.Wallet
	var address, chain *string

	if err := scan(&w.ID, &w.PortfolioID, &w.Name, &address, &chain, &w.Color); err != nil {
		return model.Wallet{}, err
	}
	if address != nil {
		w.Address = *address
	}
	if chain != nil {
		w.Chain = *chain
	}
	return w, nil
}

// ListWallets retrieves the wallets of a portfolio owned by the tenant.
func (s *Store) ListWallets(ctx context.Context, tenantID, portfolioID string) ([]model.Wallet, error) {
	query := `
	  SELECT id, portfolio_id, name, address, chain, color
	  FROM wallet
	  WHERE user_id = $1 AND portfolio_id = $2
	  ORDER BY name ASC
	`

	rows, err := s.pool.Query(ctx, query, tenantID, portfolioID)
	if err != nil {
		return nil, wrapErr("failed to query wallet table", err)
	}
	defer rows.Close()

	wallets := []model.Wallet{}
	for rows.Next() {
		w, err := scanWallet(rows.Scan)
		if err != nil {
			return nil, wrapErr("failed to scan wallet row", err)
		}
		wallets = append(wallets, w)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapErr("error iterating wallet table", err)
	}

	return wallets, nil
}

// GetWallet retrieves a single wallet owned by the tenant.
func (s *Store) GetWallet(ctx context.Context, tenantID, id string) (model.Wallet, error) {
	query := `
	  SELECT id, portfolio_id, name, address, chain, color
	  FROM wallet
	  WHERE user_id = $1 AND id = $2
	`

	w, err := scanWallet(s.pool.QueryRow(ctx, query, tenantID, id).Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Wallet{}, apperrors.ErrWalletNotFound
	}
	if err != nil {
		return model.Wallet{}, wrapErr("failed to query wallet", err)
	}

	return w, nil
}

// CreateWallet inserts a new wallet row for the tenant.
func (s *Store) CreateWallet(ctx context.Context, tenantID string, w model.Wallet) error {
	query := `
	  INSERT INTO wallet (id, user_id, portfolio_id, name, address, chain, color)
	  VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if _, err := s.pool.Exec(ctx, query,
		w.ID, tenantID, w.PortfolioID, w.Name, nullable(w.Address), nullable(w.Chain), w.Color,
	); err != nil {
		return wrapErr("failed to insert wallet", err)
	}
	return nil
}

// UpdateWallet applies non-nil patch fields to a wallet owned by the tenant.
func (s *Store) UpdateWallet(ctx context.Context, tenantID, id string, patch model.WalletPatch) error {
	w, err := s.GetWallet(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if patch.Name != nil {
		w.Name = *patch.Name
	}
	if patch.Address != nil {
		w.Address = *patch.Address
	}
	if patch.Chain != nil {
		w.Chain = *patch.Chain
	}
	if patch.Color != nil {
		w.Color = *patch.Color
	}

	query := `
	  UPDATE wallet SET name = $1, address = $2, chain = $3, color = $4
	  WHERE user_id = $5 AND id = $6
	`
	if _, err := s.pool.Exec(ctx, query,
		w.Name, nullable(w.Address), nullable(w.Chain), w.Color, tenantID, id,
	); err != nil {
		return wrapErr("failed to update wallet", err)
	}
	return nil
}

// DeleteWallet removes a wallet owned by the tenant. Snapshot balances
// referencing it stay untouched. Deleting a non-existent id is a no-op.
func (s *Store) DeleteWallet(ctx context.Context, tenantID, id string) error {
	query := `DELETE FROM wallet WHERE user_id = $1 AND id = $2`
	if _, err := s.pool.Exec(ctx, query, tenantID, id); err != nil {
		return wrapErr("failed to delete wallet", err)
	}
	return nil
}

// nullable converts an empty string to NULL for optional columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
