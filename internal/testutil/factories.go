package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/traderisk/trade-risk-backend/internal/model"
)

// MakeID generates a unique ID for test entities.
func MakeID() string {
	return uuid.NewString()
}

// TradeBuilder provides a fluent interface for creating test positions.
//
// Example usage:
//
//	// Simple creation with defaults
//	trade := testutil.NewTrade().Build(t, db)
//
//	// Customized position
//	trade := testutil.NewTrade().
//	    WithStockName("MES 20JUN25 5300 P").
//	    WithQuantity(-2).
//	    WithAccount(7).
//	    Build(t, db)
type TradeBuilder struct {
	trade model.Trade
}

// NewTrade creates a TradeBuilder with sensible defaults.
func NewTrade() *TradeBuilder {
	return &TradeBuilder{
		trade: model.Trade{
			ID:          MakeID(),
			StockName:   "AAPL",
			Quantity:    100,
			Price:       decimal.NewFromInt(150),
			MarketValue: decimal.NewFromInt(15000),
			CostBasis:   decimal.NewFromInt(14000),
			GainLoss:    decimal.NewFromInt(1000),
			AccountID:   1,
		},
	}
}

// WithStockName sets the instrument label.
func (b *TradeBuilder) WithStockName(name string) *TradeBuilder {
	b.trade.StockName = name
	return b
}

// WithQuantity sets the position quantity.
func (b *TradeBuilder) WithQuantity(qty int64) *TradeBuilder {
	b.trade.Quantity = qty
	return b
}

// WithPrice sets the trade price.
func (b *TradeBuilder) WithPrice(price float64) *TradeBuilder {
	b.trade.Price = decimal.NewFromFloat(price)
	return b
}

// WithMarketValue sets the current market value.
func (b *TradeBuilder) WithMarketValue(mv float64) *TradeBuilder {
	b.trade.MarketValue = decimal.NewFromFloat(mv)
	return b
}

// WithCostBasis sets the cost basis.
func (b *TradeBuilder) WithCostBasis(cb float64) *TradeBuilder {
	b.trade.CostBasis = decimal.NewFromFloat(cb)
	return b
}

// WithAccount sets the owning account.
func (b *TradeBuilder) WithAccount(accountID int64) *TradeBuilder {
	b.trade.AccountID = accountID
	return b
}

// Value returns the built position without persisting it.
func (b *TradeBuilder) Value() model.Trade {
	return b.trade
}

// Build persists the position and returns it.
func (b *TradeBuilder) Build(t *testing.T, db *sql.DB) model.Trade {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO trade (id, stock_name, quantity, price, market_value, cost_basis, gain_loss, account_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.trade.ID,
		b.trade.StockName,
		b.trade.Quantity,
		b.trade.Price,
		b.trade.MarketValue,
		b.trade.CostBasis,
		b.trade.GainLoss,
		b.trade.AccountID,
	)
	if err != nil {
		t.Fatalf("Failed to insert test trade: %v", err)
	}

	return b.trade
}

// TradeHistoryBuilder provides a fluent interface for creating executed
// trade records.
type TradeHistoryBuilder struct {
	rec model.TradeHistory
}

// NewTradeHistory creates a TradeHistoryBuilder with sensible defaults:
// one opened option contract.
func NewTradeHistory() *TradeHistoryBuilder {
	return &TradeHistoryBuilder{
		rec: model.TradeHistory{
			ID:       MakeID(),
			Symbol:   "AAPL 21Mar25 150 P",
			Date:     time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			Quantity: -1,
			TPrice:   decimal.NewFromFloat(2.5),
			Proceeds: decimal.NewFromInt(250),
			Code:     model.CodeOpened,

			AccountID: 1,
		},
	}
}

// WithSymbol sets the instrument label.
func (b *TradeHistoryBuilder) WithSymbol(symbol string) *TradeHistoryBuilder {
	b.rec.Symbol = symbol
	return b
}

// WithDate sets the execution date.
func (b *TradeHistoryBuilder) WithDate(date time.Time) *TradeHistoryBuilder {
	b.rec.Date = date
	return b
}

// WithCode sets the execution code.
func (b *TradeHistoryBuilder) WithCode(code string) *TradeHistoryBuilder {
	b.rec.Code = code
	return b
}

// WithRealizedPnL sets the realized profit and loss.
func (b *TradeHistoryBuilder) WithRealizedPnL(pnl float64) *TradeHistoryBuilder {
	b.rec.RealizedProfitLoss = decimal.NewFromFloat(pnl)
	return b
}

// WithMTMPnL sets the mark-to-market profit and loss.
func (b *TradeHistoryBuilder) WithMTMPnL(pnl float64) *TradeHistoryBuilder {
	b.rec.MTMProfitLoss = decimal.NewFromFloat(pnl)
	return b
}

// WithAccount sets the owning account.
func (b *TradeHistoryBuilder) WithAccount(accountID int64) *TradeHistoryBuilder {
	b.rec.AccountID = accountID
	return b
}

// Value returns the built record without persisting it.
func (b *TradeHistoryBuilder) Value() model.TradeHistory {
	return b.rec
}

// Build persists the record and returns it.
func (b *TradeHistoryBuilder) Build(t *testing.T, db *sql.DB) model.TradeHistory {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO trade_history (id, symbol, date, quantity, t_price, c_price, proceeds,
		                           commissions, basis, realized_profit_loss, mtm_profit_loss, code, account_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.rec.ID,
		b.rec.Symbol,
		b.rec.Date.Format("2006-01-02"),
		b.rec.Quantity,
		b.rec.TPrice,
		b.rec.CPrice,
		b.rec.Proceeds,
		b.rec.Commissions,
		b.rec.Basis,
		b.rec.RealizedProfitLoss,
		b.rec.MTMProfitLoss,
		b.rec.Code,
		b.rec.AccountID,
	)
	if err != nil {
		t.Fatalf("Failed to insert test trade history: %v", err)
	}

	return b.rec
}

// ATHSubmissionBuilder provides a fluent interface for creating all-time-high
// submissions.
type ATHSubmissionBuilder struct {
	sub model.ATHSubmission
}

// NewATHSubmission creates an ATHSubmissionBuilder with sensible defaults.
func NewATHSubmission() *ATHSubmissionBuilder {
	return &ATHSubmissionBuilder{
		sub: model.ATHSubmission{
			ID:                MakeID(),
			AccountID:         1,
			PortfolioATHValue: decimal.NewFromInt(100000),
			PortfolioATHDate:  time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC),
			CurrentNAVValue:   decimal.NewFromInt(95000),
			CreatedAt:         time.Date(2025, 2, 15, 10, 0, 0, 0, time.UTC),
			UpdatedAt:         time.Date(2025, 2, 15, 10, 0, 0, 0, time.UTC),
		},
	}
}

// WithAccount sets the owning account.
func (b *ATHSubmissionBuilder) WithAccount(accountID int64) *ATHSubmissionBuilder {
	b.sub.AccountID = accountID
	return b
}

// WithATHValue sets the submitted high-water mark.
func (b *ATHSubmissionBuilder) WithATHValue(v float64) *ATHSubmissionBuilder {
	b.sub.PortfolioATHValue = decimal.NewFromFloat(v)
	return b
}

// WithATHDate sets the snapshot date.
func (b *ATHSubmissionBuilder) WithATHDate(date time.Time) *ATHSubmissionBuilder {
	b.sub.PortfolioATHDate = date
	return b
}

// WithNAVValue sets the current net asset value.
func (b *ATHSubmissionBuilder) WithNAVValue(v float64) *ATHSubmissionBuilder {
	b.sub.CurrentNAVValue = decimal.NewFromFloat(v)
	return b
}

// WithCreatedAt sets the submission timestamp.
func (b *ATHSubmissionBuilder) WithCreatedAt(ts time.Time) *ATHSubmissionBuilder {
	b.sub.CreatedAt = ts
	b.sub.UpdatedAt = ts
	return b
}

// Value returns the built submission without persisting it.
func (b *ATHSubmissionBuilder) Value() model.ATHSubmission {
	return b.sub
}

// Build persists the submission and returns it.
func (b *ATHSubmissionBuilder) Build(t *testing.T, db *sql.DB) model.ATHSubmission {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO ath_submission (id, account_id, portfolio_ath_value, portfolio_ath_date,
		                            current_nav_value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		b.sub.ID,
		b.sub.AccountID,
		b.sub.PortfolioATHValue,
		b.sub.PortfolioATHDate.Format("2006-01-02"),
		b.sub.CurrentNAVValue,
		b.sub.CreatedAt.Format(time.RFC3339),
		b.sub.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to insert test ath submission: %v", err)
	}

	return b.sub
}
