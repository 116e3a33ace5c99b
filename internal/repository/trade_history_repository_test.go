package repository_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/traderisk/trade-risk-backend/internal/model"
	"github.com/traderisk/trade-risk-backend/internal/repository"
	"github.com/traderisk/trade-risk-backend/internal/testutil"
)

// TestTradeHistoryRepository tests executed-trade storage.
func TestTradeHistoryRepository(t *testing.T) {
	t.Run("GetByAccount round-trips dates and decimals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTradeHistoryRepository(db)

		want := testutil.NewTradeHistory().
			WithSymbol("AAPL 21Mar25 150 P").
			WithDate(time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC)).
			WithCode("C;EP").
			WithRealizedPnL(148.95).
			WithAccount(3).
			Build(t, db)

		records, err := repo.GetByAccount(3)

		if err != nil {
			t.Fatalf("GetByAccount() error = %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("len(records) = %d, want 1", len(records))
		}

		got := records[0]
		if got.Symbol != want.Symbol {
			t.Errorf("Symbol = %q, want %q", got.Symbol, want.Symbol)
		}
		if !got.Date.Equal(want.Date) {
			t.Errorf("Date = %v, want %v", got.Date, want.Date)
		}
		if got.Code != "C;EP" {
			t.Errorf("Code = %q, want C;EP", got.Code)
		}
		if !got.RealizedProfitLoss.Equal(decimal.RequireFromString("148.95")) {
			t.Errorf("RealizedProfitLoss = %s, want 148.95", got.RealizedProfitLoss)
		}
	})

	t.Run("InsertTradeHistory commits a valid batch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTradeHistoryRepository(db)

		batch := []model.TradeHistory{
			testutil.NewTradeHistory().WithAccount(1).Value(),
			testutil.NewTradeHistory().WithCode("C").WithAccount(1).Value(),
		}

		imported, rowErrs, err := repo.InsertTradeHistory(batch)

		if err != nil {
			t.Fatalf("InsertTradeHistory() error = %v", err)
		}
		if imported != 2 || len(rowErrs) != 0 {
			t.Fatalf("imported = %d, rowErrs = %v, want 2 and none", imported, rowErrs)
		}

		records, err := repo.GetByAccount(1)
		if err != nil {
			t.Fatalf("GetByAccount() error = %v", err)
		}
		if len(records) != 2 {
			t.Errorf("len(records) = %d, want 2", len(records))
		}
	})

	t.Run("DistinctAccounts covers history-only accounts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTradeHistoryRepository(db)

		testutil.NewTradeHistory().WithAccount(5).Build(t, db)
		testutil.NewTradeHistory().WithAccount(5).Build(t, db)
		testutil.NewTradeHistory().WithAccount(9).Build(t, db)

		accounts, err := repo.DistinctAccounts()

		if err != nil {
			t.Fatalf("DistinctAccounts() error = %v", err)
		}
		if len(accounts) != 2 || accounts[0] != 5 || accounts[1] != 9 {
			t.Errorf("accounts = %v, want [5 9]", accounts)
		}
	})
}
