// Package remote implements the store interfaces on a multi-tenant
// PostgreSQL database accessed through a pgx pool. Every table carries a
// user_id column and every query filters on the active tenant, so
// cross-tenant access is impossible regardless of the ids a caller holds.
//
// Unlike the embedded backend, snapshot upserts here are atomic
// INSERT ... ON CONFLICT statements: a racing second writer for the same
// natural key can never produce a duplicate row.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// PostgreSQL error code for unique constraint violations.
const codeUniqueViolation = "23505"

// Store provides data access against the remote PostgreSQL database.
// It implements store.SnapshotStore and store.EntityStore.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store over an open pgx pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// wrapErr classifies a pgx error. Network and timeout failures become the
// retryable ErrStorageUnavailable; unique violations become ErrConflict.
func wrapErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, op)
	}

	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		pgconn.Timeout(err) {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrStorageUnavailable, op, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}

func marshalJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embedded value: %w", err)
	}
	return data, nil
}

func unmarshalBalances(data []byte) ([]model.WalletBalance, error) {
	balances := []model.WalletBalance{}
	if len(data) == 0 {
		return balances, nil
	}
	if err := json.Unmarshal(data, &balances); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet balances: %w", err)
	}
	return balances, nil
}

func unmarshalStrings(data []byte) ([]string, error) {
	values := []string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to unmarshal string list: %w", err)
	}
	return values, nil
}
