package local

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
)

func scanWallet(scan func(dest ...any) error) (model.Wallet, error) {
	var w model.Wallet
	var address, chain sql.NullString

	if err := scan(&w.ID, &w.PortfolioID, &w.Name, &address, &chain, &w.Color); err != nil {
		return model.Wallet{}, err
	}
	w.Address = address.String
	w.Chain = chain.String
	return w, nil
}

// ListWallets retrieves all wallets of a portfolio ordered by name.
func (s *Store) ListWallets(ctx context.Context, tenantID, portfolioID string) ([]model.Wallet, error) {
	query := `
	  SELECT id, portfolio_id, name, address, chain, color
	  FROM wallet
	  WHERE portfolio_id = ?
	  ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet table: %w", err)
	}
	defer rows.Close()

	wallets := []model.Wallet{}
	for rows.Next() {
		w, err := scanWallet(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet table results: %w", err)
		}
		wallets = append(wallets, w)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallet table: %w", err)
	}

	return wallets, nil
}

// GetWallet retrieves a single wallet by id.
func (s *Store) GetWallet(ctx context.Context, tenantID, id string) (model.Wallet, error) {
	query := `
	  SELECT id, portfolio_id, name, address, chain, color
	  FROM wallet
	  WHERE id = ?
	`

	w, err := scanWallet(s.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return model.Wallet{}, apperrors.ErrWalletNotFound
	}
	if err != nil {
		return model.Wallet{}, fmt.Errorf("failed to query wallet: %w", err)
	}

	return w, nil
}

// CreateWallet inserts a new wallet row.
func (s *Store) CreateWallet(ctx context.Context, tenantID string, w model.Wallet) error {
	query := `
	  INSERT INTO wallet (id, portfolio_id, name, address, chain, color)
	  VALUES (?, ?, ?, ?, ?, ?)
	`

	if _, err := s.db.ExecContext(ctx, query,
		w.ID, w.PortfolioID, w.Name, nullable(w.Address), nullable(w.Chain), w.Color,
	); err != nil {
		return fmt.Errorf("failed to insert wallet: %w", err)
	}
	return nil
}

// UpdateWallet applies non-nil patch fields to an existing wallet.
func (s *Store) UpdateWallet(ctx context.Context, tenantID, id string, patch model.WalletPatch) error {
	return s.inTx(func(tx *sql.Tx) error {
		w, err := scanWallet(tx.QueryRowContext(ctx,
			`SELECT id, portfolio_id, name, address, chain, color FROM wallet WHERE id = ?`, id,
		).Scan)
		if err == sql.ErrNoRows {
			return apperrors.ErrWalletNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to query wallet: %w", err)
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

		if _, err := tx.ExecContext(ctx,
			`UPDATE wallet SET name = ?, address = ?, chain = ?, color = ? WHERE id = ?`,
			w.Name, nullable(w.Address), nullable(w.Chain), w.Color, id,
		); err != nil {
			return fmt.Errorf("failed to update wallet: %w", err)
		}
		return nil
	})
}

// DeleteWallet removes a wallet. Snapshot balances referencing the wallet
// stay untouched; analytics resolves them to a sentinel name instead.
// Deleting a non-existent id is a no-op.
func (s *Store) DeleteWallet(ctx context.Context, tenantID, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM wallet WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete wallet: %w", err)
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
