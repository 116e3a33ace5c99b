// Package multiplier holds the static per-symbol scaling tables that convert
// price deltas into dollar exposure: futures tick values, leveraged-ETF
// factors and the net-loss scaling used by scenario calculations.
//
// The tables are one registry keyed by (Kind, symbol). Lookup order matters
// for the substring fallback, so each table is an ordered slice rather than
// a map.
package multiplier

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Kind selects one of the multiplier tables.
type Kind int

const (
	// PutFutures holds the signed (negative) multipliers applied to put
	// exposure on futures-tracked and 2x-leveraged underlyings.
	PutFutures Kind = iota
	// EquityFutures scales quantity*price into notional for futures-tracked
	// equities and 2x-leveraged ETFs.
	EquityFutures
	// CallFutures is the positive-valued table used when calls go in the
	// money in an up-move scenario.
	CallFutures
	// Futures covers only the plain index-futures roots. Its values double
	// as net-loss multipliers and as the futures-style equity multipliers in
	// the downside-equity calculation.
	Futures
)

type entry struct {
	symbol string
	value  decimal.Decimal
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var tables = map[Kind][]entry{
	PutFutures: {
		{"MES", d("-5")}, {"YM", d("-5")}, {"ES", d("-50")}, {"RTY", d("-50")},
		{"MNQ", d("-2")}, {"NQ", d("-20")}, {"MYM", d("-0.5")},
		{"SSO", d("-200")}, {"QLD", d("-200")},
	},
	EquityFutures: {
		{"MES", d("5")}, {"ES", d("50")}, {"RTY", d("50")}, {"MNQ", d("2")},
		{"NQ", d("20")}, {"MYM", d("0.5")}, {"YM", d("5")},
		{"SSO", d("2")}, {"QLD", d("2")},
	},
	CallFutures: {
		{"MES", d("5")}, {"ES", d("50")}, {"RTY", d("50")}, {"MNQ", d("2")},
		{"NQ", d("20")}, {"MYM", d("0.5")},
		{"SSO", d("200")}, {"QLD", d("200")},
	},
	Futures: {
		{"MES", d("5")}, {"ES", d("50")}, {"RTY", d("50")}, {"MNQ", d("2")},
		{"NQ", d("20")}, {"MYM", d("0.5")}, {"YM", d("5")},
	},
}

// defaultNetLoss is the net-loss multiplier applied when a symbol has no
// entry in the Futures table: one equity option contract covers 100 shares.
var defaultNetLoss = decimal.NewFromInt(100)

// Lookup returns the multiplier for a symbol in the given table. Exact key
// match wins; otherwise the first table entry whose key is a substring of
// the queried symbol is returned, so a dated contract code like
// "MES250620P" still resolves to the MES multiplier.
func Lookup(kind Kind, symbol string) (decimal.Decimal, bool) {
	table := tables[kind]
	for _, e := range table {
		if e.symbol == symbol {
			return e.value, true
		}
	}
	for _, e := range table {
		if strings.Contains(symbol, e.symbol) {
			return e.value, true
		}
	}
	return decimal.Decimal{}, false
}

// NetLoss returns the net-loss multiplier for a symbol: the exact Futures
// table value, or 100 when the symbol has no entry. Unlike Lookup this is an
// exact match only.
func NetLoss(symbol string) decimal.Decimal {
	for _, e := range tables[Futures] {
		if e.symbol == symbol {
			return e.value
		}
	}
	return defaultNetLoss
}
