// Package analysis implements the portfolio risk calculations: current
// market exposure, what-if exposure under hypothetical price moves,
// downside-equity valuation, expiration-bucketed put downside, options
// premium aggregation and all-time-high re-verification.
//
// Every entry point is a function of its input records and the injected
// price source. Per-item failures never abort a calculation: unparseable
// labels degrade to the plain-equity path and failed price lookups degrade
// to a zero price (logged), per the batch-isolation policy.
package analysis

import (
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/traderisk/trade-risk-backend/internal/futures"
	"github.com/traderisk/trade-risk-backend/internal/instrument"
)

// PriceSource supplies market prices and ticker resolution. The production
// implementation is marketdata.Service; tests inject a scripted source.
type PriceSource interface {
	// ResolveTicker maps a free-text underlying symbol to a quotable
	// ticker, applying the ignore list and index alias table.
	ResolveTicker(symbol string) (string, bool)

	// CurrentPrice returns the latest closing price for a ticker.
	CurrentPrice(ticker string) (decimal.Decimal, error)

	// HistoricalPrice returns the closing price for a ticker on a day given
	// as "YYYY-MM-DD".
	HistoricalPrice(ticker string, day string) (decimal.Decimal, error)
}

// Direction selects the sign of a what-if price shock.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// Calculator evaluates the risk calculations against a price source. The
// clock is injectable so expiration bucketing can be tested against a fixed
// date.
type Calculator struct {
	prices PriceSource
	now    func() time.Time
}

// NewCalculator creates a Calculator backed by the given price source.
func NewCalculator(prices PriceSource) *Calculator {
	return &Calculator{prices: prices, now: time.Now}
}

// WithClock overrides the calculator's time source. Used by tests to pin
// "now" for day-count calculations.
func (c *Calculator) WithClock(now func() time.Time) *Calculator {
	c.now = now
	return c
}

// IsShortTerm reports whether strictly fewer than thresholdDays whole days
// remain until expiry. Exactly thresholdDays remaining counts as long-term.
func (c *Calculator) IsShortTerm(expiry time.Time, thresholdDays int) bool {
	days := int(expiry.Sub(c.now()) / (24 * time.Hour))
	return days < thresholdDays
}

// resolveTicker turns a parsed instrument into a quotable ticker. Labels
// carrying an expiration try the quarterly futures-contract mapping first;
// everything else goes through the plain resolver. Labels with no symbol
// (cash line items, unparseable rows) resolve to nothing.
func (c *Calculator) resolveTicker(inst instrument.Instrument) (string, bool) {
	if inst.Symbol == "" {
		return "", false
	}
	if !inst.Expiry.IsZero() {
		if ticker, ok := futures.ContractTicker(inst.Symbol, inst.Expiry); ok {
			return ticker, true
		}
	}
	return c.prices.ResolveTicker(inst.Symbol)
}

// currentPrice fetches the current price for a resolved ticker, degrading
// to zero on an unresolved ticker or a failed lookup.
func (c *Calculator) currentPrice(ticker string, ok bool) decimal.Decimal {
	if !ok {
		return decimal.Decimal{}
	}
	price, err := c.prices.CurrentPrice(ticker)
	if err != nil {
		log.Printf("price lookup failed for %s: %v", ticker, err)
		return decimal.Decimal{}
	}
	return price
}

var (
	hundred    = decimal.NewFromInt(100)
	negHundred = decimal.NewFromInt(-100)
	two        = decimal.NewFromInt(2)
	one        = decimal.NewFromInt(1)
)

// leveragedTickers are the 2x-leveraged ETFs whose what-if percentage delta
// is doubled before forming the shock ratio.
var leveragedTickers = map[string]bool{
	"SSO": true,
	"QLD": true,
}

// shockRatio returns (100 ± percent)/100.
func shockRatio(percent decimal.Decimal, direction Direction) decimal.Decimal {
	if direction == Up {
		return hundred.Add(percent).Div(hundred)
	}
	return hundred.Sub(percent).Div(hundred)
}

// adjustedRatio returns the shock ratio for a specific ticker: leveraged
// ETFs double the percentage delta (the delta, not the resulting ratio).
func adjustedRatio(ticker string, percent decimal.Decimal, direction Direction) decimal.Decimal {
	if leveragedTickers[ticker] {
		return shockRatio(percent.Mul(two), direction)
	}
	return shockRatio(percent, direction)
}
