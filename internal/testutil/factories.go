package testutil

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hdewit/Crypto-Portfolio-Tracker-Backend/internal/model"
)

// MakeID generates a fresh UUID for test entities.
func MakeID() string {
	return uuid.NewString()
}

// PortfolioBuilder provides a fluent interface for creating test portfolios.
//
// Example usage:
//
//	// Simple creation with defaults
//	portfolio := testutil.NewPortfolio().Build(t, db)
//
//	// Customized portfolio
//	portfolio := testutil.NewPortfolio().
//	    WithName("Main").
//	    WithColor("#3b82f6").
//	    Build(t, db)
type PortfolioBuilder struct {
	ID    string
	Name  string
	Color string
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio() *PortfolioBuilder {
	return &PortfolioBuilder{
		ID:    MakeID(),
		Name:  "Test Portfolio",
		Color: "#3b82f6",
	}
}

// WithID sets a custom ID.
func (b *PortfolioBuilder) WithID(id string) *PortfolioBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// WithColor sets a custom color.
func (b *PortfolioBuilder) WithColor(color string) *PortfolioBuilder {
	b.Color = color
	return b
}

// Build creates the portfolio in the database and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	createdAt := time.Now().UTC().Format(time.RFC3339)
	query := `INSERT INTO portfolio (id, name, color, created_at) VALUES (?, ?, ?, ?)`
	if _, err := db.Exec(query, b.ID, b.Name, b.Color, createdAt); err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}

	return model.Portfolio{
		ID:        b.ID,
		Name:      b.Name,
		Color:     b.Color,
		CreatedAt: createdAt,
	}
}

// WalletBuilder provides a fluent interface for creating test wallets.
type WalletBuilder struct {
	ID          string
	PortfolioID string
	Name        string
	Address     string
	Chain       string
	Color       string
}

// NewWallet creates a WalletBuilder under the given portfolio.
func NewWallet(portfolioID string) *WalletBuilder {
	return &WalletBuilder{
		ID:          MakeID(),
		PortfolioID: portfolioID,
		Name:        "Test Wallet",
		Color:       "#f59e0b",
	}
}

// WithName sets a custom name.
func (b *WalletBuilder) WithName(name string) *WalletBuilder {
	b.Name = name
	return b
}

// WithAddress sets the on-chain address.
func (b *WalletBuilder) WithAddress(address string) *WalletBuilder {
	b.Address = address
	return b
}

// WithChain sets the chain label.
func (b *WalletBuilder) WithChain(chain string) *WalletBuilder {
	b.Chain = chain
	return b
}

// Build creates the wallet in the database and returns it.
func (b *WalletBuilder) Build(t *testing.T, db *sql.DB) model.Wallet {
	t.Helper()

	query := `INSERT INTO wallet (id, portfolio_id, name, address, chain, color) VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := db.Exec(query, b.ID, b.PortfolioID, b.Name, nullIfEmpty(b.Address), nullIfEmpty(b.Chain), b.Color); err != nil {
		t.Fatalf("Failed to create test wallet: %v", err)
	}

	return model.Wallet{
		ID:          b.ID,
		PortfolioID: b.PortfolioID,
		Name:        b.Name,
		Address:     b.Address,
		Chain:       b.Chain,
		Color:       b.Color,
	}
}

// CreateDailySnapshot inserts a daily snapshot row directly.
func CreateDailySnapshot(t *testing.T, db *sql.DB, snap model.DailySnapshot) model.DailySnapshot {
	t.Helper()

	if snap.ID == "" {
		snap.ID = MakeID()
	}
	balances, err := json.Marshal(snap.WalletBalances)
	if err != nil {
		t.Fatalf("Failed to marshal wallet balances: %v", err)
	}

	query := `
		INSERT INTO daily_snapshot (id, portfolio_id, date, wallet_balances, total_usd, variation_usd, variation_percent)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := db.Exec(query, snap.ID, snap.PortfolioID, snap.Date, string(balances),
		snap.TotalUsd, snap.VariationUsd, snap.VariationPercent); err != nil {
		t.Fatalf("Failed to create test daily snapshot: %v", err)
	}
	return snap
}

// CreateMonthlySnapshot inserts a monthly snapshot row directly.
func CreateMonthlySnapshot(t *testing.T, db *sql.DB, snap model.MonthlySnapshot) model.MonthlySnapshot {
	t.Helper()

	if snap.ID == "" {
		snap.ID = MakeID()
	}

	query := `
		INSERT INTO monthly_snapshot (id, portfolio_id, month, year, total_usd, delta_usd, delta_percent, btc_price, eth_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := db.Exec(query, snap.ID, snap.PortfolioID, snap.Month, snap.Year,
		snap.TotalUsd, snap.DeltaUsd, snap.DeltaPercent, snap.BtcPrice, snap.EthPrice); err != nil {
		t.Fatalf("Failed to create test monthly snapshot: %v", err)
	}
	return snap
}

// CreateGoal inserts a goal row directly.
func CreateGoal(t *testing.T, db *sql.DB, goal model.Goal) model.Goal {
	t.Helper()

	if goal.ID == "" {
		goal.ID = MakeID()
	}
	if goal.CreatedAt == "" {
		goal.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	query := `
		INSERT INTO goal (id, portfolio_id, name, target_value, deadline, color, icon, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := db.Exec(query, goal.ID, goal.PortfolioID, goal.Name, goal.TargetValue,
		nullIfEmpty(goal.Deadline), goal.Color, nullIfEmpty(goal.Icon), goal.CreatedAt,
		nullIfEmpty(goal.CompletedAt)); err != nil {
		t.Fatalf("Failed to create test goal: %v", err)
	}
	return goal
}

// CreateJournalEntry inserts a journal entry row directly.
func CreateJournalEntry(t *testing.T, db *sql.DB, entry model.JournalEntry) model.JournalEntry {
	t.Helper()

	if entry.ID == "" {
		entry.ID = MakeID()
	}
	if entry.CreatedAt == "" {
		entry.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	tags, err := json.Marshal(entry.Tags)
	if err != nil {
		t.Fatalf("Failed to marshal tags: %v", err)
	}

	query := `
		INSERT INTO journal_entry (id, portfolio_id, date, title, content, mood, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := db.Exec(query, entry.ID, entry.PortfolioID, entry.Date, entry.Title,
		entry.Content, entry.Mood, string(tags), entry.CreatedAt, nullIfEmpty(entry.UpdatedAt)); err != nil {
		t.Fatalf("Failed to create test journal entry: %v", err)
	}
	return entry
}

// CreateMarketEvent inserts a market event row directly.
func CreateMarketEvent(t *testing.T, db *sql.DB, event model.MarketEvent) model.MarketEvent {
	t.Helper()

	if event.ID == "" {
		event.ID = MakeID()
	}
	if event.CreatedAt == "" {
		event.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if event.Coins == nil {
		event.Coins = []string{}
	}
	coins, err := json.Marshal(event.Coins)
	if err != nil {
		t.Fatalf("Failed to marshal coins: %v", err)
	}

	query := `
		INSERT INTO market_event (id, date, title, description, type, impact, coins, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := db.Exec(query, event.ID, event.Date, event.Title, nullIfEmpty(event.Description),
		event.Type, event.Impact, string(coins), nullIfEmpty(event.Source), event.CreatedAt); err != nil {
		t.Fatalf("Failed to create test market event: %v", err)
	}
	return event
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
