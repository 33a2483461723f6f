// Package store defines the backend-agnostic persistence contract. Two
// implementations exist: the embedded single-tenant SQLite store (local)
// and the multi-tenant PostgreSQL store (remote). Services and handlers
// depend only on these interfaces and never branch on backend type.
package store

import (
	"context"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// SnapshotStore persists the daily and monthly valuation series.
//
// Upserts are keyed on the natural key: (portfolioID, date) for daily,
// (portfolioID, month) for monthly. When a row already exists for the key,
// all of its fields are overwritten in place and its original id is kept;
// otherwise a new row is inserted under the snapshot's id. The effective id
// is returned either way.
//
// Updates are keyed on the row id instead. Moving a snapshot onto a natural
// key held by another row of the same portfolio is a conflict
// (apperrors.ErrConflict), never a silent merge.
//
// Deletes of a non-existent id are a no-op, not an error. Backend I/O
// failures surface as apperrors.ErrStorageUnavailable and the whole
// operation may be retried.
type SnapshotStore interface {
	ListDaily(ctx context.Context, tenantID, portfolioID string) ([]model.DailySnapshot, error)
	GetDaily(ctx context.Context, tenantID, id string) (model.DailySnapshot, error)
	UpsertDaily(ctx context.Context, tenantID string, snapshot model.DailySnapshot) (string, error)
	UpdateDaily(ctx context.Context, tenantID, id string, patch model.DailySnapshotPatch) error
	DeleteDaily(ctx context.Context, tenantID, id string) error

	ListMonthly(ctx context.Context, tenantID, portfolioID string) ([]model.MonthlySnapshot, error)
	GetMonthly(ctx context.Context, tenantID, id string) (model.MonthlySnapshot, error)
	UpsertMonthly(ctx context.Context, tenantID string, snapshot model.MonthlySnapshot) (string, error)
	UpdateMonthly(ctx context.Context, tenantID, id string, patch model.MonthlySnapshotPatch) error
	DeleteMonthly(ctx context.Context, tenantID, id string) error
}

// EntityStore persists portfolios, wallets, goals, journal entries and
// market events. DeletePortfolio cascades to every dependent entity inside
// one transaction: children are deleted first and the portfolio row last,
// so an interrupted cascade always leaves the portfolio discoverable for a
// retry rather than orphaning its dependents.
type EntityStore interface {
	ListPortfolios(ctx context.Context, tenantID string) ([]model.Portfolio, error)
	GetPortfolio(ctx context.Context, tenantID, id string) (model.Portfolio, error)
	CreatePortfolio(ctx context.Context, tenantID string, p model.Portfolio) error
	UpdatePortfolio(ctx context.Context, tenantID, id string, patch model.PortfolioPatch) error
	DeletePortfolio(ctx context.Context, tenantID, id string) error

	ListWallets(ctx context.Context, tenantID, portfolioID string) ([]model.Wallet, error)
	GetWallet(ctx context.Context, tenantID, id string) (model.Wallet, error)
	CreateWallet(ctx context.Context, tenantID string, w model.Wallet) error
	UpdateWallet(ctx context.Context, tenantID, id string, patch model.WalletPatch) error
	DeleteWallet(ctx context.Context, tenantID, id string) error

	ListGoals(ctx context.Context, tenantID, portfolioID string) ([]model.Goal, error)
	GetGoal(ctx context.Context, tenantID, id string) (model.Goal, error)
	CreateGoal(ctx context.Context, tenantID string, g model.Goal) error
	UpdateGoal(ctx context.Context, tenantID, id string, patch model.GoalPatch) error
	// CompleteGoal stamps completedAt once and returns it. Completing an
	// already-completed goal returns the original timestamp unchanged.
	CompleteGoal(ctx context.Context, tenantID, id string, completedAt string) (string, error)
	DeleteGoal(ctx context.Context, tenantID, id string) error

	ListJournalEntries(ctx context.Context, tenantID, portfolioID string) ([]model.JournalEntry, error)
	GetJournalEntry(ctx context.Context, tenantID, id string) (model.JournalEntry, error)
	CreateJournalEntry(ctx context.Context, tenantID string, e model.JournalEntry) error
	UpdateJournalEntry(ctx context.Context, tenantID, id string, patch model.JournalEntryPatch) error
	DeleteJournalEntry(ctx context.Context, tenantID, id string) error

	ListMarketEvents(ctx context.Context, tenantID string) ([]model.MarketEvent, error)
	GetMarketEvent(ctx context.Context, tenantID, id string) (model.MarketEvent, error)
	CreateMarketEvent(ctx context.Context, tenantID string, e model.MarketEvent) error
	UpdateMarketEvent(ctx context.Context, tenantID, id string, patch model.MarketEventPatch) error
	DeleteMarketEvent(ctx context.Context, tenantID, id string) error
}
