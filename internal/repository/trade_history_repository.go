package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/traderisk/trade-risk-backend/internal/model"
)

// TradeHistoryRepository provides data access methods for executed trade
// records.
type TradeHistoryRepository struct {
	db *sql.DB
}

// NewTradeHistoryRepository creates a new TradeHistoryRepository with the
// provided database connection.
func NewTradeHistoryRepository(db *sql.DB) *TradeHistoryRepository {
	return &TradeHistoryRepository{db: db}
}

// GetByAccount retrieves all executed trades for one account, oldest first.
func (r *TradeHistoryRepository) GetByAccount(accountID int64) ([]model.TradeHistory, error) {
	rows, err := r.db.Query(`
		SELECT id, symbol, date, quantity, t_price, c_price, proceeds, commissions,
		       basis, realized_profit_loss, mtm_profit_loss, code, account_id
		FROM trade_history
		WHERE account_id = ?
		ORDER BY date, id
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade history: %w", err)
	}
	defer rows.Close()

	return scanTradeHistory(rows)
}

// DistinctAccounts returns the account IDs that have executed trades.
func (r *TradeHistoryRepository) DistinctAccounts() ([]int64, error) {
	rows, err := r.db.Query(`SELECT DISTINCT account_id FROM trade_history ORDER BY account_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade history accounts: %w", err)
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
		return nil, fmt.Errorf("error iterating trade history accounts: %w", err)
	}

	return accounts, nil
}

func scanTradeHistory(rows *sql.Rows) ([]model.TradeHistory, error) {
	var records []model.TradeHistory
	for rows.Next() {
		var rec model.TradeHistory
		var date string
		err := rows.Scan(
			&rec.ID,
			&rec.Symbol,
			&date,
			&rec.Quantity,
			&rec.TPrice,
			&rec.CPrice,
			&rec.Proceeds,
			&rec.Commissions,
			&rec.Basis,
			&rec.RealizedProfitLoss,
			&rec.MTMProfitLoss,
			&rec.Code,
			&rec.AccountID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade history results: %w", err)
		}

		rec.Date, err = ParseTime(date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse trade history date: %w", err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade history: %w", err)
	}

	return records, nil
}

// InsertTradeHistory inserts a batch of executed trades inside one
// transaction. Row failures are collected and the remaining rows continue;
// the transaction commits as long as at least one row made it in.
func (r *TradeHistoryRepository) InsertTradeHistory(records []model.TradeHistory) (int, []error, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO trade_history (id, symbol, date, quantity, t_price, c_price, proceeds,
		                           commissions, basis, realized_profit_loss, mtm_profit_loss, code, account_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return 0, nil, fmt.Errorf("failed to prepare trade history insert: %w", err)
	}
	defer stmt.Close()

	imported := 0
	var rowErrs []error
	for _, rec := range records {
		_, err := stmt.Exec(
			uuid.NewString(),
			rec.Symbol,
			rec.Date.Format("2006-01-02"),
			rec.Quantity,
			rec.TPrice,
			rec.CPrice,
			rec.Proceeds,
			rec.Commissions,
			rec.Basis,
			rec.RealizedProfitLoss,
			rec.MTMProfitLoss,
			rec.Code,
			rec.AccountID,
		)
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("error importing trade history row %s: %w", rec.Symbol, err))
			continue
		}
		imported++
	}

	if imported == 0 && len(rowErrs) > 0 {
		tx.Rollback()
		return 0, rowErrs, fmt.Errorf("no trade history rows were imported successfully")
	}

	if err := tx.Commit(); err != nil {
		return 0, rowErrs, fmt.Errorf("failed to commit trade history import: %w", err)
	}

	return imported, rowErrs, nil
}
