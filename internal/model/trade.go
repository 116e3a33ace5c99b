package model

import "github.com/shopspring/decimal"

// Trade represents a single open brokerage position as imported from a
// positions CSV. The StockName field is the broker's free-text instrument
// label; for options it encodes the underlying, expiration, strike and
// option letter (e.g. "AAPL 21MAR25 150 C").
//
// Multiple trades share an AccountID and there is no uniqueness constraint
// on StockName: the same instrument can appear in several lots.
type Trade struct {
	ID          string          `json:"id"`
	StockName   string          `json:"stockName"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	MarketValue decimal.Decimal `json:"marketValue"`
	CostBasis   decimal.Decimal `json:"costBasis"`
	GainLoss    decimal.Decimal `json:"gainLoss"`
	AccountID   int64           `json:"accountId"`
}
