package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/traderisk/trade-risk-backend/internal/model"
)

// TradeRepository provides data access methods for the trade table: the
// current open positions per account.
type TradeRepository struct {
	db *sql.DB
}

// NewTradeRepository creates a new TradeRepository with the provided
// database connection.
func NewTradeRepository(db *sql.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// GetByAccount retrieves all positions for one account.
func (r *TradeRepository) GetByAccount(accountID int64) ([]model.Trade, error) {
	rows, err := r.db.Query(`
		SELECT id, stock_name, quantity, price, market_value, cost_basis, gain_loss, account_id
		FROM trade
		WHERE account_id = ?
		ORDER BY id
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	return scanTrades(rows)
}

// GetAll retrieves every position across all accounts.
func (r *TradeRepository) GetAll() ([]model.Trade, error) {
	rows, err := r.db.Query(`
		SELECT id, stock_name, quantity, price, market_value, cost_basis, gain_loss, account_id
		FROM trade
		ORDER BY account_id, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	return scanTrades(rows)
}

func scanTrades(rows *sql.Rows) ([]model.Trade, error) {
	var trades []model.Trade
	for rows.Next() {
		var t model.Trade
		err := rows.Scan(
			&t.ID,
			&t.StockName,
			&t.Quantity,
			&t.Price,
			&t.MarketValue,
			&t.CostBasis,
			&t.GainLoss,
			&t.AccountID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade table results: %w", err)
		}
		trades = append(trades, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade table: %w", err)
	}

	return trades, nil
}

// DistinctAccounts returns the account IDs that currently hold positions.
func (r *TradeRepository) DistinctAccounts() ([]int64, error) {
	rows, err := r.db.Query(`SELECT DISTINCT account_id FROM trade ORDER BY account_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade accounts: %w", err)
	}
	defer rows.Close()

	var accounts []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan account id: %w", err)
		}
		accounts = append(accounts, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade accounts: %w", err)
	}

	return accounts, nil
}

// DistinctStockNames returns every distinct instrument label currently held.
// Used by the scheduled price warm-up to know which instruments need fresh
// prices.
func (r *TradeRepository) DistinctStockNames() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT stock_name FROM trade`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan stock name: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock names: %w", err)
	}

	return names, nil
}

// InsertTrades inserts a batch of positions inside one transaction,
// assigning each a fresh ID. Row failures are collected and the remaining
// rows continue; the transaction commits as long as at least one row made
// it in, otherwise it rolls back.
func (r *TradeRepository) InsertTrades(trades []model.Trade) (int, []error, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO trade (id, stock_name, quantity, price, market_value, cost_basis, gain_loss, account_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return 0, nil, fmt.Errorf("failed to prepare trade insert: %w", err)
	}
	defer stmt.Close()

	imported := 0
	var rowErrs []error
	for _, t := range trades {
		_, err := stmt.Exec(
			uuid.NewString(),
			t.StockName,
			t.Quantity,
			t.Price,
			t.MarketValue,
			t.CostBasis,
			t.GainLoss,
			t.AccountID,
		)
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("error importing trade %s: %w", t.StockName, err))
			continue
		}
		imported++
	}

	if imported == 0 && len(rowErrs) > 0 {
		tx.Rollback()
		return 0, rowErrs, fmt.Errorf("no trades were imported successfully")
	}

	if err := tx.Commit(); err != nil {
		return 0, rowErrs, fmt.Errorf("failed to commit trade import: %w", err)
	}

	return imported, rowErrs, nil
}
