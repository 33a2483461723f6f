package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the embedded migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE portfolio (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			color VARCHAR(7) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL
		);

		CREATE TABLE wallet (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL,
			name VARCHAR(100) NOT NULL,
			address VARCHAR(255),
			chain VARCHAR(50),
			color VARCHAR(7) NOT NULL,
			FOREIGN KEY(portfolio_id) REFERENCES portfolio(id) ON DELETE CASCADE
		);

		CREATE TABLE daily_snapshot (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL,
			date VARCHAR(10) NOT NULL,
			wallet_balances TEXT NOT NULL,
			total_usd FLOAT NOT NULL,
			variation_usd FLOAT NOT NULL,
			variation_percent FLOAT NOT NULL,
			FOREIGN KEY(portfolio_id) REFERENCES portfolio(id) ON DELETE CASCADE,
			CONSTRAINT unique_daily_snapshot UNIQUE (portfolio_id, date)
		);

		CREATE TABLE monthly_snapshot (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL,
			month VARCHAR(7) NOT NULL,
			year INTEGER NOT NULL,
			total_usd FLOAT NOT NULL,
			delta_usd FLOAT NOT NULL,
			delta_percent FLOAT NOT NULL,
			btc_price FLOAT NOT NULL,
			eth_price FLOAT NOT NULL,
			FOREIGN KEY(portfolio_id) REFERENCES portfolio(id) ON DELETE CASCADE,
			CONSTRAINT unique_monthly_snapshot UNIQUE (portfolio_id, month)
		);

		CREATE TABLE goal (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL,
			name VARCHAR(100) NOT NULL,
			target_value FLOAT NOT NULL,
			deadline VARCHAR(10),
			color VARCHAR(7) NOT NULL,
			icon VARCHAR(50),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			completed_at DATETIME,
			FOREIGN KEY(portfolio_id) REFERENCES portfolio(id) ON DELETE CASCADE
		);

		CREATE TABLE journal_entry (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL,
			date VARCHAR(10) NOT NULL,
			title VARCHAR(255) NOT NULL,
			content TEXT NOT NULL,
			mood VARCHAR(10) NOT NULL,
			tags TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			updated_at DATETIME,
			FOREIGN KEY(portfolio_id) REFERENCES portfolio(id) ON DELETE CASCADE,
			CONSTRAINT unique_journal_entry UNIQUE (portfolio_id, date)
		);

		CREATE TABLE market_event (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			date VARCHAR(10) NOT NULL,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			type VARCHAR(10) NOT NULL,
			impact VARCHAR(8) NOT NULL,
			coins TEXT,
			source VARCHAR(255),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL
		);

		CREATE TABLE system_setting (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			"key" VARCHAR(50) NOT NULL UNIQUE,
			value TEXT NOT NULL,
			updated_at DATETIME
		);
	`

	_, err := db.Exec(schema)
	return err
}
