package local

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
)

// Setting keys stored in the local system_setting table.
const (
	// SettingRemoteDSN holds the fernet-encrypted PostgreSQL DSN used when
	// the deployment is migrated to remote mode.
	SettingRemoteDSN = "remote_dsn"
)

// GetSetting retrieves a system setting value by key.
func (s *Store) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM system_setting WHERE "key" = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query system_setting: %w", err)
	}
	return value, nil
}

// SetSetting stores a system setting, overwriting any existing value.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	return s.inTx(func(tx *sql.Tx) error {
		updatedAt := time.Now().UTC().Format(time.RFC3339)

		result, err := tx.ExecContext(ctx,
			`UPDATE system_setting SET value = ?, updated_at = ? WHERE "key" = ?`,
			value, updatedAt, key,
		)
		if err != nil {
			return fmt.Errorf("failed to update system_setting: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read system_setting update result: %w", err)
		}
		if affected > 0 {
			return nil
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO system_setting (id, "key", value, updated_at) VALUES (?, ?, ?, ?)`,
			uuid.NewString(), key, value, updatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert system_setting: %w", err)
		}
		return nil
	})
}
