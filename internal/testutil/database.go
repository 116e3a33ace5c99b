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
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE trade (
		id VARCHAR(36) PRIMARY KEY,
		stock_name TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		price NUMERIC NOT NULL DEFAULT 0,
		market_value NUMERIC NOT NULL DEFAULT 0,
		cost_basis NUMERIC NOT NULL DEFAULT 0,
		gain_loss NUMERIC NOT NULL DEFAULT 0,
		account_id INTEGER NOT NULL
	);
	CREATE INDEX idx_trade_account_id ON trade(account_id);

	CREATE TABLE trade_history (
		id VARCHAR(36) PRIMARY KEY,
		symbol TEXT NOT NULL,
		date DATE NOT NULL,
		quantity INTEGER NOT NULL,
		t_price NUMERIC NOT NULL DEFAULT 0,
		c_price NUMERIC NOT NULL DEFAULT 0,
		proceeds NUMERIC NOT NULL DEFAULT 0,
		commissions NUMERIC NOT NULL DEFAULT 0,
		basis NUMERIC NOT NULL DEFAULT 0,
		realized_profit_loss NUMERIC NOT NULL DEFAULT 0,
		mtm_profit_loss NUMERIC NOT NULL DEFAULT 0,
		code TEXT NOT NULL DEFAULT '',
		account_id INTEGER NOT NULL
	);
	CREATE INDEX idx_trade_history_account_id ON trade_history(account_id);
	CREATE INDEX idx_trade_history_date ON trade_history(date);

	CREATE TABLE ath_submission (
		id VARCHAR(36) PRIMARY KEY,
		account_id INTEGER NOT NULL,
		portfolio_ath_value NUMERIC NOT NULL,
		portfolio_ath_date DATE NOT NULL,
		current_nav_value NUMERIC NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	CREATE INDEX idx_ath_submission_account_id ON ath_submission(account_id);
	`

	_, err := db.Exec(schema)
	return err
}
