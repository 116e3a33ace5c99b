package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/traderisk/trade-risk-backend/internal/apperrors"
	"github.com/traderisk/trade-risk-backend/internal/service"
	"github.com/traderisk/trade-risk-backend/internal/testutil"
)

const ibkrPositionsCSV = `Open Positions,Header,DataDiscriminator,Asset Category,Currency,Symbol,Quantity,Mult,Cost Price,Cost Basis,Close Price,Value,Open Price,Unrealized P/L
Open Positions,Data,Summary,Stocks,USD,AAPL,100,1,145.00,14500.00,150.25,15025.00,145.00,525.00
Open Positions,Data,Summary,Stocks,USD,MSFT,50,1,400.00,20000.00,410.00,20500.00,400.00,500.00`

// TestImportService_ImportPositions tests the positions upload flow.
//
// WHY: Imports are row-isolated, so partial files must land what they can
// and a file yielding nothing must fail the batch. Every stored row is
// tagged with the uploading account.
func TestImportService_ImportPositions(t *testing.T) {
	t.Run("imports parsed rows under the given account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)
		analysisSvc := testutil.NewTestAnalysisService(t, db, testutil.NewFakePriceSource())

		result, err := svc.ImportPositions(strings.NewReader(ibkrPositionsCSV), service.BrokerIBKR, 7)

		if err != nil {
			t.Fatalf("ImportPositions() error = %v", err)
		}
		if result.Imported != 2 {
			t.Errorf("Imported = %d, want 2", result.Imported)
		}
		if len(result.Errors) != 0 {
			t.Errorf("Errors = %v, want none", result.Errors)
		}

		positions, err := analysisSvc.Positions(7)
		if err != nil {
			t.Fatalf("Positions() error = %v", err)
		}
		if len(positions) != 2 {
			t.Fatalf("len(positions) = %d, want 2", len(positions))
		}
		for _, p := range positions {
			if p.AccountID != 7 {
				t.Errorf("AccountID = %d, want 7", p.AccountID)
			}
		}
	})

	t.Run("a malformed row is reported but does not fail the batch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)

		input := strings.Join([]string{
			`Open Positions,Header,DataDiscriminator,Asset Category,Currency,Symbol,Quantity,Mult,Cost Price,Cost Basis,Close Price,Value,Open Price,Unrealized P/L`,
			`Open Positions,Data,Summary,Stocks,USD,AAPL,bad-quantity,1,145.00,14500.00,150.25,15025.00,145.00,525.00`,
			`Open Positions,Data,Summary,Stocks,USD,MSFT,50,1,400.00,20000.00,410.00,20500.00,400.00,500.00`,
		}, "\n")

		result, err := svc.ImportPositions(strings.NewReader(input), service.BrokerIBKR, 1)

		if err != nil {
			t.Fatalf("ImportPositions() error = %v", err)
		}
		if result.Imported != 1 {
			t.Errorf("Imported = %d, want 1", result.Imported)
		}
		if len(result.Errors) != 1 {
			t.Errorf("Errors = %v, want exactly one", result.Errors)
		}
	})

	t.Run("a file with no parseable rows fails the import", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)

		_, err := svc.ImportPositions(strings.NewReader("nothing,useful,here"), service.BrokerIBKR, 1)

		if !errors.Is(err, apperrors.ErrFailedToImportPositions) {
			t.Errorf("error = %v, want ErrFailedToImportPositions", err)
		}
	})

	t.Run("an unknown broker format is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)

		_, err := svc.ImportPositions(strings.NewReader(ibkrPositionsCSV), service.Broker("etrade"), 1)

		if !errors.Is(err, apperrors.ErrInvalidCSVFormat) {
			t.Errorf("error = %v, want ErrInvalidCSVFormat", err)
		}
	})
}

// TestImportService_ImportTradeHistory tests the trade report upload flow.
func TestImportService_ImportTradeHistory(t *testing.T) {
	t.Run("imports order rows under the given account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)
		analysisSvc := testutil.NewTestAnalysisService(t, db, testutil.NewFakePriceSource())

		input := strings.Join([]string{
			`Trades,Header,DataDiscriminator,Asset Category,Currency,Symbol,Date/Time,Quantity,T. Price,C. Price,Proceeds,Comm/Fee,Basis,Realized P/L,MTM P/L,Code`,
			`Trades,Data,Order,Equity and Index Options,USD,AAPL 21MAR25 150 P,"2025-03-21, 09:30:00",-1,1.50,0.00,150.00,-1.05,0.00,148.95,0.00,O`,
		}, "\n")

		result, err := svc.ImportTradeHistory(strings.NewReader(input), 3)

		if err != nil {
			t.Fatalf("ImportTradeHistory() error = %v", err)
		}
		if result.Imported != 1 {
			t.Errorf("Imported = %d, want 1", result.Imported)
		}

		history, err := analysisSvc.TradeHistory(3)
		if err != nil {
			t.Fatalf("TradeHistory() error = %v", err)
		}
		if len(history) != 1 || history[0].Code != "O" {
			t.Fatalf("history = %+v, want one opened record", history)
		}
	})

	t.Run("an empty report fails the import", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestImportService(t, db)

		_, err := svc.ImportTradeHistory(strings.NewReader(""), 1)

		if !errors.Is(err, apperrors.ErrFailedToImportTradeHistory) {
			t.Errorf("error = %v, want ErrFailedToImportTradeHistory", err)
		}
	})
}
