package service

import (
	"context"
	"database/sql"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/database"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/prices"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/secrets"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/store/local"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/version"
)

// SystemService handles system-level operations: health, version, reference
// prices and the stored remote backend credential. The remote DSN lives in
// the local settings table encrypted at rest, so a copied database file does
// not leak it.
type SystemService struct {
	db        *sql.DB
	feed      *prices.Feed
	settings  *local.Store
	encryptor *secrets.Encryptor
}

// NewSystemService creates a new SystemService. db may be nil in remote
// mode, in which case health reporting is limited to process liveness.
// settings and encryptor may be nil when no local settings store or fernet
// key is configured.
func NewSystemService(db *sql.DB, feed *prices.Feed, settings *local.Store, encryptor *secrets.Encryptor) *SystemService {
	return &SystemService{
		db:        db,
		feed:      feed,
		settings:  settings,
		encryptor: encryptor,
	}
}

// CheckHealth checks the health of the system.
func (s *SystemService) CheckHealth() error {
	if s.db == nil {
		return nil
	}
	return database.HealthCheck(s.db)
}

// CheckVersion reports the running application version.
func (s *SystemService) CheckVersion() string {
	return version.Version
}

// GetPrices returns the current reference prices, served from cache when
// fresh.
func (s *SystemService) GetPrices(ctx context.Context) (prices.Prices, error) {
	return s.feed.Current(ctx)
}

// SetRemoteDSN stores the remote backend connection string encrypted in
// the local settings table.
func (s *SystemService) SetRemoteDSN(ctx context.Context, dsn string) error {
	if s.settings == nil || s.encryptor == nil {
		return apperrors.ErrSecretsNotConfigured
	}
	token, err := s.encryptor.Encrypt(dsn)
	if err != nil {
		return err
	}
	return s.settings.SetSetting(ctx, local.SettingRemoteDSN, token)
}

// GetRemoteDSN retrieves and decrypts the stored remote backend connection
// string.
func (s *SystemService) GetRemoteDSN(ctx context.Context) (string, error) {
	if s.settings == nil || s.encryptor == nil {
		return "", apperrors.ErrSecretsNotConfigured
	}
	token, err := s.settings.GetSetting(ctx, local.SettingRemoteDSN)
	if err != nil {
		return "", err
	}
	return s.encryptor.Decrypt(token)
}
