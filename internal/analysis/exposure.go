package analysis

import (
	"github.com/shopspring/decimal"

	"github.com/traderisk/trade-risk-backend/internal/instrument"
	"github.com/traderisk/trade-risk-backend/internal/model"
	"github.com/traderisk/trade-risk-backend/internal/multiplier"
)

// ExposureResult aggregates an account's current directional exposure.
type ExposureResult struct {
	// TotalEquityValue is the cost-basis notional of equity and futures
	// positions plus the retained value of in-the-money short options.
	TotalEquityValue decimal.Decimal `json:"totalEquityValue"`

	// TotalOptionsValue collects out-of-the-money put notional on
	// underlyings without a futures-style multiplier.
	TotalOptionsValue decimal.Decimal `json:"totalOptionsValue"`

	// TotalFuturesContractsValue collects out-of-the-money put notional on
	// futures-tracked underlyings.
	TotalFuturesContractsValue decimal.Decimal `json:"totalFuturesContractsValue"`

	// TotalExposureValue is the sum of the equity, options and futures
	// buckets.
	TotalExposureValue decimal.Decimal `json:"totalExposureValue"`

	// DailyPositionsValue marks non-option positions at current prices,
	// rounded to cents.
	DailyPositionsValue decimal.Decimal `json:"dailyPositionsValue"`

	// CurrentAccountValue is the raw market value summed across every
	// position regardless of classification.
	CurrentAccountValue decimal.Decimal `json:"currentAccountValue"`
}

// Exposure classifies each position from its instrument label and
// accumulates the account's equity, options and futures exposure at current
// market prices.
//
// Classification rules:
//   - Put: in the money (strike above current price) the strike notional is
//     assumed retained and flows into equity; out of the money it flows into
//     the futures or options bucket depending on whether the underlying has
//     a put-futures multiplier.
//   - Call: only when in the money from the short seller's perspective
//     (strike below current price) its notional is subtracted from equity;
//     otherwise it contributes nothing at this stage.
//   - Anything else, including unparseable labels, is valued at cost basis
//     into equity and at the current price into the daily positions value,
//     scaled by the equity-futures multiplier when one matches.
func (c *Calculator) Exposure(positions []model.Trade) ExposureResult {
	var r ExposureResult

	for _, t := range positions {
		inst := instrument.Parse(t.StockName)
		ticker, ok := c.resolveTicker(inst)
		price := c.currentPrice(ticker, ok)
		qty := decimal.NewFromInt(t.Quantity)

		r.CurrentAccountValue = r.CurrentAccountValue.Add(t.MarketValue)

		switch inst.Kind {
		case instrument.Put:
			c.applyPutExposure(&r, inst, qty, price)
		case instrument.Call:
			if inst.Strike.LessThan(price) {
				c.applyCallExposure(&r, inst, qty)
			}
		default:
			if mult, found := multiplier.Lookup(multiplier.EquityFutures, inst.Symbol); found {
				r.TotalEquityValue = r.TotalEquityValue.Add(qty.Mul(t.Price).Mul(mult))
				r.DailyPositionsValue = r.DailyPositionsValue.Add(qty.Mul(price).Mul(mult))
			} else {
				r.TotalEquityValue = r.TotalEquityValue.Add(qty.Mul(t.Price))
				r.DailyPositionsValue = r.DailyPositionsValue.Add(qty.Mul(price))
			}
		}
	}

	r.TotalExposureValue = r.TotalEquityValue.
		Add(r.TotalFuturesContractsValue).
		Add(r.TotalOptionsValue)
	r.DailyPositionsValue = r.DailyPositionsValue.Round(2)

	return r
}

// applyPutExposure routes a put's strike notional. The notional is signed
// negative (short put convention), so an in-the-money put reduces equity.
func (c *Calculator) applyPutExposure(r *ExposureResult, inst instrument.Instrument, qty, price decimal.Decimal) {
	if mult, found := multiplier.Lookup(multiplier.PutFutures, inst.Symbol); found {
		notional := inst.Strike.Mul(mult).Mul(qty)
		if inst.Strike.GreaterThan(price) {
			r.TotalEquityValue = r.TotalEquityValue.Add(notional)
		} else {
			r.TotalFuturesContractsValue = r.TotalFuturesContractsValue.Add(notional)
		}
		return
	}

	notional := inst.Strike.Mul(negHundred).Mul(qty)
	if inst.Strike.GreaterThan(price) {
		r.TotalEquityValue = r.TotalEquityValue.Add(notional)
	} else {
		r.TotalOptionsValue = r.TotalOptionsValue.Add(notional)
	}
}

// applyCallExposure subtracts an in-the-money call's notional from equity.
// The put-futures multipliers are negative, so the subtraction nets out to
// an addition for futures-tracked underlyings; same for the -100 equity
// contract factor.
func (c *Calculator) applyCallExposure(r *ExposureResult, inst instrument.Instrument, qty decimal.Decimal) {
	mult, found := multiplier.Lookup(multiplier.PutFutures, inst.Symbol)
	if !found {
		mult = negHundred
	}
	r.TotalEquityValue = r.TotalEquityValue.Sub(inst.Strike.Mul(mult).Mul(qty))
}
