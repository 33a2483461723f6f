package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
// These errors indicate that a requested resource does not exist.
// Deletes treat a missing id as a no-op; reads and updates surface it.
var (
	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrWalletNotFound indicates that a wallet with the given ID does not exist.
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrSnapshotNotFound indicates that a daily or monthly snapshot does not exist.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrGoalNotFound indicates that a goal with the given ID does not exist.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrJournalEntryNotFound indicates that a journal entry with the given ID does not exist.
	ErrJournalEntryNotFound = errors.New("journal entry not found")

	// ErrMarketEventNotFound indicates that a market event with the given ID does not exist.
	ErrMarketEventNotFound = errors.New("market event not found")

	// ErrSettingNotFound indicates that a system setting key has not been stored.
	ErrSettingNotFound = errors.New("setting not found")
)

// Access and availability errors.
var (
	// ErrUnauthenticated indicates that no tenant is active for the call.
	// Every store operation requires a tenant.
	ErrUnauthenticated = errors.New("no active tenant")

	// ErrStorageUnavailable indicates a backend I/O failure. Each store
	// operation is a single-row transaction, so the caller may safely retry
	// the whole operation.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrSecretsNotConfigured indicates that credential storage was requested
	// but the deployment has no local settings store or no FERNET_KEY.
	ErrSecretsNotConfigured = errors.New("secrets not configured")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrConflict indicates a natural-key collision on a non-upsert update,
	// e.g. moving a snapshot onto a date already taken by another snapshot
	// of the same portfolio.
	ErrConflict = errors.New("natural key conflict")

	// ErrValidation indicates malformed input such as an unparseable date or
	// amount in an imported row.
	ErrValidation = errors.New("validation failed")
)
