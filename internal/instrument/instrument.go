// Package instrument parses broker free-text instrument labels into a typed
// classification. A label such as "AAPL 21MAR25 150 C" carries the underlying
// symbol, the expiration date, the strike and the option letter; a plain
// equity label carries only the symbol. Parsing happens once per label and
// the resulting Instrument is matched downstream instead of re-scanning the
// label in every calculator.
package instrument

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies an instrument label.
type Kind int

const (
	// Equity is the default classification: plain stock, futures position,
	// cash line item, or any label that does not parse as an option.
	Equity Kind = iota
	Call
	Put
)

// IsOption reports whether the kind is Call or Put.
func (k Kind) IsOption() bool {
	return k == Call || k == Put
}

func (k Kind) String() string {
	switch k {
	case Call:
		return "call"
	case Put:
		return "put"
	default:
		return "equity"
	}
}

// Instrument is the parsed form of a broker instrument label.
type Instrument struct {
	// Symbol is the underlying symbol: the leading run of uppercase letters,
	// ampersands and spaces, trimmed. Empty when the label starts with a
	// digit or punctuation (e.g. a cash line item); callers must route such
	// labels to the plain-equity path rather than fail.
	Symbol string

	Kind Kind

	// Strike is the option strike price. Only meaningful when Kind is Call
	// or Put.
	Strike decimal.Decimal

	// Expiry is the expiration date extracted from the label, or the zero
	// time when none was found. Extraction is independent of option
	// detection: a bare futures label can carry an expiration without an
	// option letter.
	Expiry time.Time
}

// optionPattern matches "<date-token> <strike> <C|P>" where the date token is
// DDMMMYY, MM/DD/YYYY or MMDDYYYY.
var optionPattern = regexp.MustCompile(`(\d{2}[A-Z]{3}\d{2}|\d{2}/\d{2}/\d{4}|\d{8})\s+(\d+\.*\d*)\s*([CP])`)

// symbolPattern matches the leading underlying-symbol run. Anchored: a label
// starting with digits or punctuation has no symbol.
var symbolPattern = regexp.MustCompile(`^[A-Z&\s]+`)

var (
	slashDatePattern   = regexp.MustCompile(`\b(\d{2}/\d{2}/\d{4})\b`)
	compactDatePattern = regexp.MustCompile(`\b(\d{2}[A-Z]{3}\d{2})\b`)
)

// Parse extracts the symbol, option classification and expiration date from
// a free-text instrument label. It never fails: anything unrecognizable
// degrades to Kind Equity with whatever fields could be recovered.
func Parse(label string) Instrument {
	inst := Instrument{Kind: Equity}

	if m := symbolPattern.FindString(label); m != "" {
		inst.Symbol = strings.TrimSpace(m)
	}

	if m := optionPattern.FindStringSubmatch(label); m != nil {
		strike, err := decimal.NewFromString(m[2])
		if err == nil {
			inst.Strike = strike
			if m[3] == "C" {
				inst.Kind = Call
			} else {
				inst.Kind = Put
			}
		}
	}

	inst.Expiry = extractExpiry(label)

	return inst
}

// extractExpiry searches the label for an MM/DD/YYYY date first, then a
// DDMMMYY date. Returns the zero time when neither matches or parsing fails.
func extractExpiry(label string) time.Time {
	if m := slashDatePattern.FindStringSubmatch(label); m != nil {
		if t, err := time.Parse("01/02/2006", m[1]); err == nil {
			return t
		}
	}
	if m := compactDatePattern.FindStringSubmatch(label); m != nil {
		// Month abbreviations in labels are uppercase ("21MAR25");
		// time.Parse wants "21Mar25".
		s := m[1][:3] + strings.ToLower(m[1][3:5]) + m[1][5:]
		if t, err := time.Parse("02Jan06", s); err == nil {
			return t
		}
	}
	return time.Time{}
}
