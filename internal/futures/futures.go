// Package futures maps index-futures symbols to dated, exchange-qualified
// contract tickers using the CME quarterly cycle. Quarterly contracts expire
// on the third Friday of March (H), June (M), September (U) and December (Z);
// after the third Friday a position is considered rolled into the next
// quarterly contract.
package futures

import (
	"fmt"
	"strings"
	"time"
)

// roots are the recognized index-futures root symbols.
var roots = []string{"ES", "MES", "MYM", "YM", "NQ", "MNQ", "RTY"}

// monthLetters maps a quarterly expiration month to its contract letter and
// the letter of the following quarterly contract (used after the roll
// cutoff).
var monthLetters = map[time.Month][2]string{
	time.March:     {"H", "M"},
	time.June:      {"M", "U"},
	time.September: {"U", "Z"},
}

// Normalize trims a raw symbol, strips a leading "$" and upper-cases it.
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(symbol), "$"))
}

// IsFuturesRoot reports whether the normalized symbol starts with one of the
// recognized index-futures roots.
func IsFuturesRoot(symbol string) bool {
	sym := Normalize(symbol)
	for _, r := range roots {
		if strings.HasPrefix(sym, r) {
			return true
		}
	}
	return false
}

// ThirdFriday returns the third Friday of the given month: the roll cutoff
// for a quarterly contract expiring that month.
func ThirdFriday(year int, month time.Month) time.Time {
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Friday {
		d = d.AddDate(0, 0, 1)
	}
	return d.AddDate(0, 0, 14)
}

// ContractTicker resolves a futures root symbol plus an expiration date to a
// dated contract ticker such as "ESM25.CME".
//
// It returns ok=false when the symbol is not a recognized futures root or the
// expiration month is not quarterly (March/June/September/December); callers
// fall back to the plain ticker-lookup path in that case.
//
// For March, June and September the contract letter rolls forward one step
// when the expiration date falls after the third Friday of that month.
// December always resolves to Z. The two-digit contract year is derived from
// the expiration year.
func ContractTicker(symbol string, expiry time.Time) (string, bool) {
	sym := Normalize(symbol)
	if !IsFuturesRoot(sym) {
		return "", false
	}

	var letter string
	switch expiry.Month() {
	case time.March, time.June, time.September:
		letters := monthLetters[expiry.Month()]
		cutoff := ThirdFriday(expiry.Year(), expiry.Month())
		if expiry.After(cutoff) {
			letter = letters[1]
		} else {
			letter = letters[0]
		}
	case time.December:
		letter = "Z"
	default:
		return "", false
	}

	return contractCode(sym+letter, expiry.Year()), true
}

// NormalizeContract normalizes a symbol and, when it is a bare contract key
// (root plus quarterly month letter, e.g. "MESM"), expands it to the dated
// contract ticker for the given year. Non-contract symbols are returned
// normalized but otherwise unchanged.
func NormalizeContract(symbol string, year int) string {
	sym := Normalize(symbol)
	if isContractKey(sym) {
		return contractCode(sym, year)
	}
	return sym
}

func isContractKey(sym string) bool {
	if len(sym) < 3 {
		return false
	}
	last := sym[len(sym)-1:]
	if last != "H" && last != "M" && last != "U" && last != "Z" {
		return false
	}
	root := sym[:len(sym)-1]
	for _, r := range roots {
		if root == r {
			return true
		}
	}
	return false
}

// contractCode builds the exchange-qualified contract code. Micro Dow
// contracts trade on CBT; everything else here is CME.
func contractCode(key string, year int) string {
	exchange := "CME"
	if strings.HasPrefix(key, "MYM") {
		exchange = "CBT"
	}
	return fmt.Sprintf("%s%02d.%s", key, year%100, exchange)
}
