// Package marketdata resolves free-text underlying symbols to quotable
// tickers and serves current and historical prices from Yahoo Finance
// through short-lived in-process caches.
package marketdata

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/traderisk/trade-risk-backend/internal/yahoo"
)

// indexTickers aliases index and index-futures roots to their Yahoo symbols.
var indexTickers = map[string]string{
	"XND": "^XND",
	"MYM": "MYM=F",
	"YM":  "YM=F",
	"ES":  "ES=F",
	"SPX": "^SPX",
	"XSP": "^XSP",
	"DJX": "^DJX",
}

// ignoreList holds symbols known to be unquotable (delisted, OTC, or search
// collisions with foreign listings). Lookups for these resolve to nothing
// rather than to a wrong instrument.
var ignoreList = map[string]bool{
	"ESHIX":   true,
	"ESMAX":   true,
	"MSKE.TA": true,
	"ESM.TO":  true,
	"NQMLF":   true,
	"ESUD.L":  true,
}

// Service resolves tickers and fetches prices. Current prices, by-date
// prices and resolved tickers are each cached with their own TTL; all three
// caches are safe for concurrent use.
type Service struct {
	client yahoo.Client

	prices     *PriceCache
	datePrices *PriceCache

	mu      sync.Mutex
	tickers map[string]tickerEntry
	ttl     time.Duration
	now     func() time.Time
}

type tickerEntry struct {
	ticker string
	expiry time.Time
}

// NewService creates a market-data service backed by the given Yahoo
// client. priceTTL bounds how long a current price is reused; datePriceTTL
// bounds by-date (historical) prices, which can be cached much longer since
// they never change.
func NewService(client yahoo.Client, priceTTL, datePriceTTL time.Duration) *Service {
	return &Service{
		client:     client,
		prices:     NewPriceCache(priceTTL),
		datePrices: NewPriceCache(datePriceTTL),
		tickers:    make(map[string]tickerEntry),
		ttl:        priceTTL,
		now:        time.Now,
	}
}

// ResolveTicker maps a free-text underlying symbol to a quotable Yahoo
// ticker. Symbols on the ignore list resolve to nothing; index roots resolve
// through the alias table; anything else goes through the Yahoo symbol
// search, with the result cached.
func (s *Service) ResolveTicker(symbol string) (string, bool) {
	if ignoreList[symbol] {
		return "", false
	}
	if alias, ok := indexTickers[symbol]; ok {
		return alias, true
	}

	s.mu.Lock()
	if entry, ok := s.tickers[symbol]; ok && s.now().Before(entry.expiry) {
		s.mu.Unlock()
		return entry.ticker, entry.ticker != ""
	}
	s.mu.Unlock()

	result, err := s.client.SearchSymbol(symbol)
	if err != nil || len(result.Quotes) == 0 {
		return "", false
	}
	ticker := result.Quotes[0].Symbol

	s.mu.Lock()
	s.tickers[symbol] = tickerEntry{ticker: ticker, expiry: s.now().Add(s.ttl)}
	s.mu.Unlock()

	return ticker, true
}

// CurrentPrice returns the most recent closing price for a ticker. The
// five-day chart query picks up Friday's close on weekends. Results are
// cached; fetch failures are returned as errors and not cached.
func (s *Service) CurrentPrice(ticker string) (decimal.Decimal, error) {
	return s.prices.Get(ticker, func() (decimal.Decimal, error) {
		response, err := s.client.QueryFiveDaySymbol(ticker)
		if err != nil {
			return decimal.Decimal{}, err
		}
		chart, err := s.client.ParseChart(response)
		if err != nil {
			return decimal.Decimal{}, err
		}
		latest := chart.Indicators[len(chart.Indicators)-1]
		return decimal.NewFromFloat(latest.PriceClose), nil
	})
}

// HistoricalPrice returns the closing price for a ticker on a specific day,
// given as "YYYY-MM-DD".
func (s *Service) HistoricalPrice(ticker string, day string) (decimal.Decimal, error) {
	date, err := time.Parse("2006-01-02", day)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid date %q: %w", day, err)
	}

	key := ticker + "@" + day
	return s.datePrices.Get(key, func() (decimal.Decimal, error) {
		// End date is exclusive on the Yahoo side, so request one extra day.
		response, err := s.client.QuerySymbolByDateRange(ticker, date, date.AddDate(0, 0, 1))
		if err != nil {
			return decimal.Decimal{}, err
		}
		chart, err := s.client.ParseChart(response)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return decimal.NewFromFloat(chart.Indicators[0].PriceClose), nil
	})
}
