// Package local implements the store interfaces on the embedded SQLite
// database. The database file belongs to exactly one user, so the file
// itself is the tenant boundary: tenantID parameters are accepted for
// interface parity and not used in queries. Tenant presence is enforced
// before any store call by the API middleware.
package local

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// Store provides data access against the embedded SQLite database.
// It implements store.SnapshotStore and store.EntityStore.
type Store struct {
	db *sql.DB
}

// New creates a Store over an open SQLite connection.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// isUniqueViolation reports whether err is a SQLite unique constraint
// failure. modernc.org/sqlite surfaces these as plain error strings.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// marshalJSON encodes embedded collections (wallet balances, tags, coins)
// for storage in a TEXT column.
func marshalJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal embedded value: %w", err)
	}
	return string(data), nil
}

func unmarshalBalances(data string) ([]model.WalletBalance, error) {
	balances := []model.WalletBalance{}
	if data == "" {
		return balances, nil
	}
	if err := json.Unmarshal([]byte(data), &balances); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet balances: %w", err)
	}
	return balances, nil
}

func unmarshalStrings(data string) ([]string, error) {
	values := []string{}
	if data == "" {
		return values, nil
	}
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil, fmt.Errorf("failed to unmarshal string list: %w", err)
	}
	return values, nil
}

// inTx runs fn inside a transaction, rolling back on error.
func (s *Store) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", apperrors.ErrStorageUnavailable, err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %v", apperrors.ErrStorageUnavailable, err)
	}
	return nil
}
