package testutil

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FakePriceSource is a scripted implementation of analysis.PriceSource.
// Tickers not present in its maps fail the lookup, which the calculators
// degrade to a zero price.
type FakePriceSource struct {
	// Tickers maps underlying symbols to quotable tickers. Symbols absent
	// from the map resolve to themselves.
	Tickers map[string]string

	// Prices maps tickers to current prices.
	Prices map[string]decimal.Decimal

	// Historical maps "ticker@YYYY-MM-DD" keys to closing prices.
	Historical map[string]decimal.Decimal

	// CurrentCalls counts CurrentPrice invocations per ticker.
	CurrentCalls map[string]int

	// HistoricalCalls counts HistoricalPrice invocations per "ticker@day"
	// key.
	HistoricalCalls map[string]int
}

// NewFakePriceSource creates an empty FakePriceSource.
func NewFakePriceSource() *FakePriceSource {
	return &FakePriceSource{
		Tickers:         make(map[string]string),
		Prices:          make(map[string]decimal.Decimal),
		Historical:      make(map[string]decimal.Decimal),
		CurrentCalls:    make(map[string]int),
		HistoricalCalls: make(map[string]int),
	}
}

// WithPrice scripts a current price for a ticker.
func (f *FakePriceSource) WithPrice(ticker string, price float64) *FakePriceSource {
	f.Prices[ticker] = decimal.NewFromFloat(price)
	return f
}

// WithTicker scripts a symbol-to-ticker resolution.
func (f *FakePriceSource) WithTicker(symbol, ticker string) *FakePriceSource {
	f.Tickers[symbol] = ticker
	return f
}

// WithHistoricalPrice scripts a closing price for a ticker on a day.
func (f *FakePriceSource) WithHistoricalPrice(ticker, day string, price float64) *FakePriceSource {
	f.Historical[ticker+"@"+day] = decimal.NewFromFloat(price)
	return f
}

// ResolveTicker maps a symbol through the scripted resolution table,
// defaulting to the symbol itself.
func (f *FakePriceSource) ResolveTicker(symbol string) (string, bool) {
	if ticker, ok := f.Tickers[symbol]; ok {
		return ticker, true
	}
	return symbol, true
}

// CurrentPrice returns the scripted price for a ticker.
func (f *FakePriceSource) CurrentPrice(ticker string) (decimal.Decimal, error) {
	f.CurrentCalls[ticker]++
	price, ok := f.Prices[ticker]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("no scripted price for %s", ticker)
	}
	return price, nil
}

// HistoricalPrice returns the scripted closing price for a ticker and day.
func (f *FakePriceSource) HistoricalPrice(ticker string, day string) (decimal.Decimal, error) {
	f.HistoricalCalls[ticker+"@"+day]++
	price, ok := f.Historical[ticker+"@"+day]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("no scripted price for %s on %s", ticker, day)
	}
	return price, nil
}
