package analysis

import (
	"log"

	"github.com/shopspring/decimal"

	"github.com/traderisk/trade-risk-backend/internal/futures"
	"github.com/traderisk/trade-risk-backend/internal/instrument"
	"github.com/traderisk/trade-risk-backend/internal/model"
	"github.com/traderisk/trade-risk-backend/internal/multiplier"
)

// ATHResult is the outcome of re-verifying a submitted all-time-high
// snapshot against the account's current positions priced at the snapshot
// date.
type ATHResult struct {
	AccountID int64 `json:"accountId"`

	// NewATHValue is the NAV adjusted by the difference between marking the
	// positions at the snapshot date's prices and at their original trade
	// prices. Zero when the account holds no positions.
	NewATHValue decimal.Decimal `json:"newAthValue"`

	// ATHDifference is NewATHValue minus the submitted high-water mark. For
	// an account with no positions it is the negated submission, flagging
	// the snapshot as unverifiable against current holdings.
	ATHDifference decimal.Decimal `json:"athDifference"`

	// TotalOptionsValue is the summed market value of option positions,
	// passed through unpriced.
	TotalOptionsValue decimal.Decimal `json:"totalOptionsValue"`
}

// RecalculateATH recomputes what a submitted ATH snapshot would be if the
// account's current non-option positions were marked at the snapshot date's
// closing prices.
//
// Futures-tracked positions (those with a net-loss multiplier) compare
// historical price × quantity × multiplier against original trade price ×
// quantity × multiplier; plain equity compares without the multiplier. A
// failed historical price lookup degrades that symbol to a zero price.
func (c *Calculator) RecalculateATH(sub model.ATHSubmission, positions []model.Trade) ATHResult {
	result := ATHResult{AccountID: sub.AccountID}

	if len(positions) == 0 {
		result.ATHDifference = sub.PortfolioATHValue.Neg()
		return result
	}

	day := sub.PortfolioATHDate.Format("2006-01-02")
	contractYear := sub.PortfolioATHDate.Year()

	var equityNew, equityOriginal decimal.Decimal
	var futuresNew, futuresOriginal decimal.Decimal

	// One historical fetch per distinct normalized symbol.
	priceBySymbol := make(map[string]decimal.Decimal)

	for _, t := range positions {
		inst := instrument.Parse(t.StockName)

		if inst.Kind.IsOption() {
			result.TotalOptionsValue = result.TotalOptionsValue.Add(t.MarketValue)
			continue
		}
		if inst.Symbol == "" {
			continue
		}

		symbol := futures.NormalizeContract(inst.Symbol, contractYear)
		price, seen := priceBySymbol[symbol]
		if !seen {
			price = c.historicalPrice(symbol, day)
			priceBySymbol[symbol] = price
		}

		qty := decimal.NewFromInt(t.Quantity)
		if mult, found := multiplier.Lookup(multiplier.Futures, symbol); found {
			futuresNew = futuresNew.Add(price.Mul(qty).Mul(mult))
			futuresOriginal = futuresOriginal.Add(qty.Mul(mult).Mul(t.Price))
		} else {
			equityNew = equityNew.Add(price.Mul(qty))
			equityOriginal = equityOriginal.Add(qty.Mul(t.Price))
		}
	}

	result.NewATHValue = sub.CurrentNAVValue.
		Add(equityNew.Sub(equityOriginal)).
		Add(futuresNew.Sub(futuresOriginal))
	result.ATHDifference = result.NewATHValue.Sub(sub.PortfolioATHValue)

	return result
}

// historicalPrice resolves a normalized symbol and fetches its closing price
// on the given day, degrading to zero on any failure.
func (c *Calculator) historicalPrice(symbol, day string) decimal.Decimal {
	ticker, ok := c.prices.ResolveTicker(symbol)
	if !ok {
		return decimal.Decimal{}
	}
	price, err := c.prices.HistoricalPrice(ticker, day)
	if err != nil {
		log.Printf("historical price lookup failed for %s on %s: %v", ticker, day, err)
		return decimal.Decimal{}
	}
	return price
}
