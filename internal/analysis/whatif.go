package analysis

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/traderisk/trade-risk-backend/internal/instrument"
	"github.com/traderisk/trade-risk-backend/internal/model"
	"github.com/traderisk/trade-risk-backend/internal/multiplier"
)

// WhatIfResult aggregates simulated exposure under a hypothetical uniform
// price move.
type WhatIfResult struct {
	// TotalWhatIfExposure is the sum of the scenario's futures exposure,
	// equity value, options value and net loss.
	TotalWhatIfExposure decimal.Decimal `json:"totalWhatIfExposure"`

	// NetLoss is the simulated loss on options that end up in the money
	// under the shocked price.
	NetLoss decimal.Decimal `json:"netLoss"`
}

// WhatIf recomputes exposure under a hypothetical percentage price move.
// percent must be non-negative; direction selects the sign of the shock.
//
// Only puts participate in a down-move and only calls in an up-move, and
// only when the shocked price puts them in the money. Non-option positions
// scale their cost-basis notional by the shock ratio directly. For the
// 2x-leveraged ETFs the percentage delta is doubled before forming the
// ratio.
func (c *Calculator) WhatIf(positions []model.Trade, percent decimal.Decimal, direction Direction) WhatIfResult {
	var exposure, optionsValue, equityValue, netLoss decimal.Decimal

	for _, t := range positions {
		inst := instrument.Parse(t.StockName)
		ticker, ok := c.resolveTicker(inst)
		price := c.currentPrice(ticker, ok)
		qty := decimal.NewFromInt(t.Quantity)

		adj := adjustedRatio(ticker, percent, direction)
		shockedPrice := price.Mul(adj)

		switch {
		case direction == Down && inst.Kind == instrument.Put:
			if inst.Strike.GreaterThan(shockedPrice) {
				putDownMove(inst.Symbol, inst.Strike, qty, shockedPrice, &exposure, &optionsValue, &netLoss)
			}
		case direction == Up && inst.Kind == instrument.Call:
			if inst.Strike.LessThan(shockedPrice) {
				callUpMove(inst.Symbol, inst.Strike, qty, shockedPrice, &exposure, &optionsValue, &netLoss)
			}
		case !inst.Kind.IsOption():
			mult, found := multiplier.Lookup(multiplier.EquityFutures, inst.Symbol)
			if !found {
				mult = one
			}
			equityValue = equityValue.Add(qty.Mul(t.Price).Mul(mult).Mul(adj))
		}
	}

	return WhatIfResult{
		TotalWhatIfExposure: exposure.Add(equityValue).Add(optionsValue).Add(netLoss),
		NetLoss:             netLoss,
	}
}

// putDownMove accumulates one in-the-money put under a down shock: strike
// notional into the futures or options leg, and the intrinsic loss versus
// the shocked price into netLoss. Shared by WhatIf and the expiration
// bucketing.
func putDownMove(symbol string, strike, qty, shockedPrice decimal.Decimal, exposure, optionsValue, netLoss *decimal.Decimal) {
	if mult, found := multiplier.Lookup(multiplier.PutFutures, symbol); found {
		*exposure = exposure.Add(strike.Mul(mult).Mul(qty))
	} else {
		*optionsValue = optionsValue.Add(strike.Mul(negHundred).Mul(qty))
	}
	*netLoss = netLoss.Add(strike.Sub(shockedPrice).Mul(multiplier.NetLoss(symbol)).Mul(qty))
}

// callUpMove mirrors putDownMove for calls under an up shock, using the
// positive call-futures table.
func callUpMove(symbol string, strike, qty, shockedPrice decimal.Decimal, exposure, optionsValue, netLoss *decimal.Decimal) {
	if mult, found := multiplier.Lookup(multiplier.CallFutures, symbol); found {
		*exposure = exposure.Add(strike.Mul(mult).Mul(qty))
	} else {
		*optionsValue = optionsValue.Add(strike.Mul(hundred).Mul(qty))
	}
	*netLoss = netLoss.Add(shockedPrice.Sub(strike).Mul(multiplier.NetLoss(symbol)).Mul(qty))
}

// DownEquity values the account under a downside shock applied to equity
// only. Option positions pass their raw market value through unchanged (the
// scenario calculator already prices their downside), cash line items keep
// ratio 1, leveraged ETFs double the downside percentage, and futures-style
// positions scale cost basis by their multiplier while plain equity scales
// market value.
func (c *Calculator) DownEquity(positions []model.Trade, percentDown decimal.Decimal) decimal.Decimal {
	var total decimal.Decimal

	for _, t := range positions {
		inst := instrument.Parse(t.StockName)
		resolved, ok := c.resolveTicker(inst)
		qty := decimal.NewFromInt(t.Quantity)

		var adj decimal.Decimal
		switch {
		case ok && leveragedTickers[resolved]:
			adj = shockRatio(percentDown.Mul(two), Down)
		case strings.Contains(strings.ToLower(t.StockName), "cash"):
			adj = one
		default:
			adj = shockRatio(percentDown, Down)
		}

		if inst.Kind.IsOption() {
			total = total.Add(t.MarketValue)
			continue
		}

		// The multiplier is keyed on the resolved ticker here, not the raw
		// underlying, so dated contract codes still match their root.
		if mult, found := multiplier.Lookup(multiplier.Futures, resolved); found {
			total = total.Add(qty.Mul(t.Price).Mul(adj).Mul(mult))
		} else {
			total = total.Add(t.MarketValue.Mul(adj))
		}
	}

	return total
}
