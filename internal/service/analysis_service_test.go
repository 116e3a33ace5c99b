package service_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/traderisk/trade-risk-backend/internal/apperrors"
	"github.com/traderisk/trade-risk-backend/internal/testutil"
)

// TestAnalysisService_AccountExposure tests the service boundary around the
// exposure calculation.
//
// WHY: Accounts are implicit (they exist when they hold data), so "not
// found" is defined at the service layer as an account with no positions
// and must surface as the sentinel the handlers map to a 404.
func TestAnalysisService_AccountExposure(t *testing.T) {
	t.Run("returns the calculation for an account with positions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		prices := testutil.NewFakePriceSource().WithPrice("AAPL", 100)
		svc := testutil.NewTestAnalysisService(t, db, prices)

		testutil.NewTrade().
			WithStockName("AAPL").
			WithQuantity(10).
			WithPrice(150).
			WithAccount(1).
			Build(t, db)

		result, err := svc.AccountExposure(1, decimal.NewFromInt(10), decimal.NewFromInt(10), 5)

		if err != nil {
			t.Fatalf("AccountExposure() error = %v", err)
		}
		if result.AccountID != 1 {
			t.Errorf("AccountID = %d, want 1", result.AccountID)
		}
		if !result.TotalEquityValue.Equal(decimal.NewFromInt(1500)) {
			t.Errorf("TotalEquityValue = %s, want 1500", result.TotalEquityValue)
		}
	})

	t.Run("returns ErrAccountNotFound for an account without positions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalysisService(t, db, testutil.NewFakePriceSource())

		_, err := svc.AccountExposure(99, decimal.NewFromInt(10), decimal.NewFromInt(10), 5)

		if !errors.Is(err, apperrors.ErrAccountNotFound) {
			t.Errorf("error = %v, want ErrAccountNotFound", err)
		}
	})
}

// TestAnalysisService_PortfolioExposure tests the all-accounts aggregation.
func TestAnalysisService_PortfolioExposure(t *testing.T) {
	t.Run("computes one result per account holding positions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		prices := testutil.NewFakePriceSource().
			WithPrice("AAPL", 100).
			WithPrice("MSFT", 400)
		svc := testutil.NewTestAnalysisService(t, db, prices)

		testutil.NewTrade().WithStockName("AAPL").WithAccount(1).Build(t, db)
		testutil.NewTrade().WithStockName("MSFT").WithAccount(2).Build(t, db)

		results, err := svc.PortfolioExposure(decimal.NewFromInt(10), decimal.NewFromInt(10), 5)

		if err != nil {
			t.Fatalf("PortfolioExposure() error = %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("len(results) = %d, want 2", len(results))
		}
		if results[0].AccountID != 1 || results[1].AccountID != 2 {
			t.Errorf("account order = %d, %d, want 1, 2", results[0].AccountID, results[1].AccountID)
		}
	})

	t.Run("an empty database yields an empty result set", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalysisService(t, db, testutil.NewFakePriceSource())

		results, err := svc.PortfolioExposure(decimal.NewFromInt(10), decimal.NewFromInt(10), 5)

		if err != nil {
			t.Fatalf("PortfolioExposure() error = %v", err)
		}
		if len(results) != 0 {
			t.Errorf("len(results) = %d, want 0", len(results))
		}
	})
}

// TestAnalysisService_Premiums tests the premium aggregation boundary.
func TestAnalysisService_Premiums(t *testing.T) {
	t.Run("aggregates premiums per account with history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalysisService(t, db, testutil.NewFakePriceSource())

		testutil.NewTradeHistory().WithCode("O").WithAccount(1).Build(t, db)
		testutil.NewTradeHistory().WithCode("C;EP").WithRealizedPnL(80).WithAccount(1).Build(t, db)

		results, err := svc.OptionsPremiums()

		if err != nil {
			t.Fatalf("OptionsPremiums() error = %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("len(results) = %d, want 1", len(results))
		}
		if results[0].TotalContractsSold != 1 || results[0].ExpiredPuts != 1 {
			t.Errorf("summary = %+v, want 1 sold and 1 expired put", results[0])
		}
	})

	t.Run("returns ErrAccountNotFound for an account without history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAnalysisService(t, db, testutil.NewFakePriceSource())

		_, err := svc.AccountOptionsPremiums(99)

		if !errors.Is(err, apperrors.ErrAccountNotFound) {
			t.Errorf("error = %v, want ErrAccountNotFound", err)
		}
	})
}
