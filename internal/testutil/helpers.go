package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/identity"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/service"
	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/store/local"
)

// TestTenantID is the tenant all testutil helpers operate under.
const TestTenantID = "local"

// TenantContext returns a context carrying the test tenant, as the tenant
// middleware would have set it.
func TenantContext() context.Context {
	return identity.WithTenant(context.Background(), TestTenantID)
}

// NewTestPortfolioService creates a PortfolioService backed by the given test database.
func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()
	return service.NewPortfolioService(local.New(db))
}

// NewTestWalletService creates a WalletService backed by the given test database.
func NewTestWalletService(t *testing.T, db *sql.DB) *service.WalletService {
	t.Helper()
	return service.NewWalletService(local.New(db))
}

// NewTestSnapshotService creates a SnapshotService backed by the given test database.
func NewTestSnapshotService(t *testing.T, db *sql.DB) *service.SnapshotService {
	t.Helper()
	s := local.New(db)
	return service.NewSnapshotService(s, s)
}

// NewTestAnalyticsService creates an AnalyticsService backed by the given test database.
func NewTestAnalyticsService(t *testing.T, db *sql.DB) *service.AnalyticsService {
	t.Helper()
	s := local.New(db)
	return service.NewAnalyticsService(s, s)
}

// NewTestGoalService creates a GoalService backed by the given test database.
func NewTestGoalService(t *testing.T, db *sql.DB) *service.GoalService {
	t.Helper()
	return service.NewGoalService(local.New(db))
}

// NewTestJournalService creates a JournalService backed by the given test database.
func NewTestJournalService(t *testing.T, db *sql.DB) *service.JournalService {
	t.Helper()
	return service.NewJournalService(local.New(db))
}

// NewTestEventService creates an EventService backed by the given test database.
func NewTestEventService(t *testing.T, db *sql.DB) *service.EventService {
	t.Helper()
	return service.NewEventService(local.New(db))
}

// NewTestBackupService creates a BackupService backed by the given test database.
func NewTestBackupService(t *testing.T, db *sql.DB) *service.BackupService {
	t.Helper()
	s := local.New(db)
	return service.NewBackupService(s, s, service.NewSnapshotService(s, s))
}
