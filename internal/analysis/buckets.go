package analysis

import (
	"github.com/shopspring/decimal"

	"github.com/traderisk/trade-risk-backend/internal/instrument"
	"github.com/traderisk/trade-risk-backend/internal/model"
)

// Bucket counts in-the-money put contracts and their accumulated downside
// exposure for one expiration horizon.
type Bucket struct {
	Contracts int             `json:"contracts"`
	Exposure  decimal.Decimal `json:"exposure"`
}

// PutDownsideResult splits downside put exposure into short-term and
// long-term buckets by days to expiration.
type PutDownsideResult struct {
	ShortTerm Bucket `json:"shortTerm"`
	LongTerm  Bucket `json:"longTerm"`
}

// PutDownsideBuckets applies a downside shock and buckets every put that
// ends up in the money by whether its expiration falls within
// thresholdDays. Puts without a resolvable expiration are skipped; the
// per-bucket exposure is the accumulated futures exposure plus options
// value plus net loss, mirroring the down-move scenario accumulation.
func (c *Calculator) PutDownsideBuckets(positions []model.Trade, percentDown decimal.Decimal, thresholdDays int) PutDownsideResult {
	var shortExposure, shortOptions, shortNetLoss decimal.Decimal
	var longExposure, longOptions, longNetLoss decimal.Decimal
	var shortContracts, longContracts int

	for _, t := range positions {
		inst := instrument.Parse(t.StockName)
		ticker, ok := c.resolveTicker(inst)
		price := c.currentPrice(ticker, ok)

		adj := adjustedRatio(ticker, percentDown, Down)
		shockedPrice := price.Mul(adj)

		if inst.Kind != instrument.Put {
			continue
		}
		if inst.Expiry.IsZero() {
			continue
		}
		if !inst.Strike.GreaterThan(shockedPrice) {
			continue
		}

		qty := decimal.NewFromInt(t.Quantity)
		if c.IsShortTerm(inst.Expiry, thresholdDays) {
			shortContracts++
			putDownMove(inst.Symbol, inst.Strike, qty, shockedPrice, &shortExposure, &shortOptions, &shortNetLoss)
		} else {
			longContracts++
			putDownMove(inst.Symbol, inst.Strike, qty, shockedPrice, &longExposure, &longOptions, &longNetLoss)
		}
	}

	return PutDownsideResult{
		ShortTerm: Bucket{
			Contracts: shortContracts,
			Exposure:  shortExposure.Add(shortOptions).Add(shortNetLoss),
		},
		LongTerm: Bucket{
			Contracts: longContracts,
			Exposure:  longExposure.Add(longOptions).Add(longNetLoss),
		},
	}
}
