package csvimport_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/traderisk/trade-risk-backend/internal/csvimport"
)

// TestParseIBKRPositions tests extraction of the Open Positions section
// from an IBKR activity statement.
//
// WHY: IBKR statements interleave many sections with varying column
// counts, and a single malformed row must not poison the rest of the
// import.
func TestParseIBKRPositions(t *testing.T) {
	t.Run("parses summary rows after the section header", func(t *testing.T) {
		input := strings.Join([]string{
			`Statement,Header,Field Name,Field Value`,
			`Statement,Data,BrokerName,Interactive Brokers`,
			`Open Positions,Header,DataDiscriminator,Asset Category,Currency,Symbol,Quantity,Mult,Cost Price,Cost Basis,Close Price,Value,Open Price,Unrealized P/L`,
			`Open Positions,Data,Summary,Stocks,USD,AAPL,100,1,145.00,"14,500.00",150.25,"15,025.00",145.00,525.00`,
			`Open Positions,Data,Summary,Equity and Index Options,USD,AAPL 21MAR25 150 P,-1,100,1.50,-150.00,1.20,-120.00,1.50,30.00`,
			`Open Positions,Total,,,USD,,,,,"14,350.00",,"14,905.00",,555.00`,
		}, "\n")

		trades, errs := csvimport.ParseIBKRPositions(strings.NewReader(input))

		if len(errs) != 0 {
			t.Fatalf("errs = %v, want none", errs)
		}
		if len(trades) != 2 {
			t.Fatalf("len(trades) = %d, want 2", len(trades))
		}

		first := trades[0]
		if first.StockName != "AAPL" {
			t.Errorf("StockName = %q, want AAPL", first.StockName)
		}
		if first.Quantity != 100 {
			t.Errorf("Quantity = %d, want 100", first.Quantity)
		}
		if !first.Price.Equal(decimal.RequireFromString("150.25")) {
			t.Errorf("Price = %s, want 150.25", first.Price)
		}
		if !first.MarketValue.Equal(decimal.RequireFromString("15025.00")) {
			t.Errorf("MarketValue = %s, want 15025.00", first.MarketValue)
		}
		if !first.CostBasis.Equal(decimal.RequireFromString("14500.00")) {
			t.Errorf("CostBasis = %s, want 14500.00", first.CostBasis)
		}
		if !first.GainLoss.Equal(decimal.RequireFromString("525.00")) {
			t.Errorf("GainLoss = %s, want 525.00", first.GainLoss)
		}

		if trades[1].StockName != "AAPL 21MAR25 150 P" {
			t.Errorf("StockName = %q, want the option label", trades[1].StockName)
		}
		if trades[1].Quantity != -1 {
			t.Errorf("Quantity = %d, want -1", trades[1].Quantity)
		}
	})

	t.Run("a malformed row is collected without aborting the file", func(t *testing.T) {
		input := strings.Join([]string{
			`Open Positions,Header,DataDiscriminator,Asset Category,Currency,Symbol,Quantity,Mult,Cost Price,Cost Basis,Close Price,Value,Open Price,Unrealized P/L`,
			`Open Positions,Data,Summary,Stocks,USD,AAPL,not-a-number,1,145.00,14500.00,150.25,15025.00,145.00,525.00`,
			`Open Positions,Data,Summary,Stocks,USD,MSFT,50,1,400.00,20000.00,410.00,20500.00,400.00,500.00`,
		}, "\n")

		trades, errs := csvimport.ParseIBKRPositions(strings.NewReader(input))

		if len(errs) != 1 {
			t.Fatalf("len(errs) = %d, want 1: %v", len(errs), errs)
		}
		if len(trades) != 1 || trades[0].StockName != "MSFT" {
			t.Fatalf("trades = %+v, want only MSFT", trades)
		}
	})

	t.Run("rows before the section header are ignored", func(t *testing.T) {
		input := `Open Positions,Data,Summary,Stocks,USD,AAPL,100,1,145.00,14500.00,150.25,15025.00,145.00,525.00`

		trades, errs := csvimport.ParseIBKRPositions(strings.NewReader(input))

		if len(trades) != 0 || len(errs) != 0 {
			t.Errorf("trades = %v, errs = %v, want none", trades, errs)
		}
	})
}

// TestParseSchwabPositions tests the Schwab positions export parser.
//
// WHY: Schwab files open with free-form preamble lines and encode cash as
// a pseudo-position. The cash row has to survive under its canonical name
// so downstream calculations recognize it.
func TestParseSchwabPositions(t *testing.T) {
	t.Run("scans past the preamble and parses positions", func(t *testing.T) {
		input := strings.Join([]string{
			`"Positions for account Individual ...123 as of 09:30 PM ET, 2025/03/10"`,
			``,
			`"Symbol","Description","Qty (Quantity)","Price","Price Chng $","Price Chng %","Mkt Val (Market Value)","Day Chng $","Day Chng %","Cost Basis","Gain $ (Gain/Loss $)"`,
			`"AAPL","APPLE INC","100","$150.25","$1.10","0.74%","$15,025.00","$110.00","0.74%","$14,500.00","$525.00"`,
			`"Cash & Cash Investments","--","--","--","--","--","$5,000.00","--","--","--","--"`,
		}, "\n")

		trades, errs := csvimport.ParseSchwabPositions(strings.NewReader(input))

		if len(errs) != 0 {
			t.Fatalf("errs = %v, want none", errs)
		}
		if len(trades) != 2 {
			t.Fatalf("len(trades) = %d, want 2", len(trades))
		}

		aapl := trades[0]
		if aapl.StockName != "AAPL" || aapl.Quantity != 100 {
			t.Errorf("trade = %+v, want AAPL qty 100", aapl)
		}
		if !aapl.Price.Equal(decimal.RequireFromString("150.25")) {
			t.Errorf("Price = %s, want 150.25", aapl.Price)
		}
		if !aapl.CostBasis.Equal(decimal.RequireFromString("14500.00")) {
			t.Errorf("CostBasis = %s, want 14500.00", aapl.CostBasis)
		}

		cash := trades[1]
		if cash.StockName != csvimport.CashPositionName {
			t.Errorf("StockName = %q, want %q", cash.StockName, csvimport.CashPositionName)
		}
		if !cash.MarketValue.Equal(decimal.RequireFromString("5000.00")) {
			t.Errorf("MarketValue = %s, want 5000.00", cash.MarketValue)
		}
	})

	t.Run("a file without the header row fails", func(t *testing.T) {
		input := `"Positions for account","no header here"`

		trades, errs := csvimport.ParseSchwabPositions(strings.NewReader(input))

		if len(trades) != 0 {
			t.Errorf("trades = %v, want none", trades)
		}
		if len(errs) != 1 {
			t.Errorf("errs = %v, want exactly one", errs)
		}
	})
}

// TestParseIBKRTradeHistory tests the Trades order-row parser.
func TestParseIBKRTradeHistory(t *testing.T) {
	t.Run("parses order rows with their code tag", func(t *testing.T) {
		input := strings.Join([]string{
			`Trades,Header,DataDiscriminator,Asset Category,Currency,Symbol,Date/Time,Quantity,T. Price,C. Price,Proceeds,Comm/Fee,Basis,Realized P/L,MTM P/L,Code`,
			`Trades,Data,Order,Equity and Index Options,USD,AAPL 21MAR25 150 P,"2025-03-21, 09:30:00",-1,1.50,0.00,150.00,-1.05,0.00,148.95,0.00,O`,
			`Trades,Data,Order,Equity and Index Options,USD,AAPL 21MAR25 150 P,"2025-03-25, 10:00:00",1,0.30,0.00,-30.00,-1.05,0.00,117.90,0.00,C;EP`,
			`Trades,SubTotal,,Equity and Index Options,USD,,,0,,,120.00,-2.10,,266.85,0.00,`,
		}, "\n")

		records, errs := csvimport.ParseIBKRTradeHistory(strings.NewReader(input))

		if len(errs) != 0 {
			t.Fatalf("errs = %v, want none", errs)
		}
		if len(records) != 2 {
			t.Fatalf("len(records) = %d, want 2", len(records))
		}

		first := records[0]
		if first.Symbol != "AAPL 21MAR25 150 P" {
			t.Errorf("Symbol = %q", first.Symbol)
		}
		if got := first.Date.Format("2006-01-02"); got != "2025-03-21" {
			t.Errorf("Date = %s, want 2025-03-21", got)
		}
		if first.Quantity != -1 {
			t.Errorf("Quantity = %d, want -1", first.Quantity)
		}
		if first.Code != "O" {
			t.Errorf("Code = %q, want O", first.Code)
		}
		if !first.RealizedProfitLoss.Equal(decimal.RequireFromString("148.95")) {
			t.Errorf("RealizedProfitLoss = %s, want 148.95", first.RealizedProfitLoss)
		}

		if records[1].Code != "C;EP" {
			t.Errorf("Code = %q, want C;EP", records[1].Code)
		}
	})

	t.Run("a row without the code column parses with an empty code", func(t *testing.T) {
		input := strings.Join([]string{
			`Trades,Header,DataDiscriminator,Asset Category,Currency,Symbol,Date/Time,Quantity,T. Price,C. Price,Proceeds,Comm/Fee,Basis,Realized P/L,MTM P/L`,
			`Trades,Data,Order,Stocks,USD,AAPL,"2025-03-21, 09:30:00",100,150.00,0.00,-15000.00,-1.00,15001.00,0.00,25.00`,
		}, "\n")

		records, errs := csvimport.ParseIBKRTradeHistory(strings.NewReader(input))

		if len(errs) != 0 {
			t.Fatalf("errs = %v, want none", errs)
		}
		if len(records) != 1 {
			t.Fatalf("len(records) = %d, want 1", len(records))
		}
		if records[0].Code != "" {
			t.Errorf("Code = %q, want empty", records[0].Code)
		}
	})

	t.Run("an unparseable date is isolated to its row", func(t *testing.T) {
		input := strings.Join([]string{
			`Trades,Header,DataDiscriminator,Asset Category,Currency,Symbol,Date/Time,Quantity,T. Price,C. Price,Proceeds,Comm/Fee,Basis,Realized P/L,MTM P/L,Code`,
			`Trades,Data,Order,Stocks,USD,AAPL,not a date,100,150.00,0.00,-15000.00,-1.00,15001.00,0.00,25.00,O`,
			`Trades,Data,Order,Stocks,USD,MSFT,"2025-03-21, 09:30:00",50,400.00,0.00,-20000.00,-1.00,20001.00,0.00,10.00,O`,
		}, "\n")

		records, errs := csvimport.ParseIBKRTradeHistory(strings.NewReader(input))

		if len(errs) != 1 {
			t.Fatalf("len(errs) = %d, want 1: %v", len(errs), errs)
		}
		if len(records) != 1 || records[0].Symbol != "MSFT" {
			t.Fatalf("records = %+v, want only MSFT", records)
		}
	})
}
