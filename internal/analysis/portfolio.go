package analysis

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/traderisk/trade-risk-backend/internal/model"
)

// PortfolioExposure is the full per-account risk picture: current exposure,
// both what-if scenarios, downside equity and the expiration-bucketed put
// downside.
type PortfolioExposure struct {
	AccountID           int64           `json:"accountId"`
	TotalExposureValue  decimal.Decimal `json:"totalExposureValue"`
	DailyPositionsValue decimal.Decimal `json:"dailyPositionsValue"`
	TotalEquityValue    decimal.Decimal `json:"totalEquityValue"`
	CurrentAccountValue decimal.Decimal `json:"currentAccountValue"`

	WhatIfDownExposure decimal.Decimal `json:"whatIfDownExposure"`
	WhatIfUpExposure   decimal.Decimal `json:"whatIfUpExposure"`
	WhatIfDownEquity   decimal.Decimal `json:"whatIfDownEquity"`

	// Leverage ratios are nil when their denominator is zero.
	CurrentLeverage    *decimal.Decimal `json:"currentLeverage"`
	WhatIfDownLeverage *decimal.Decimal `json:"whatIfDownLeverage"`

	ShortTermPutsITM      int             `json:"shortTermPutsItm"`
	ShortTermPutsExposure decimal.Decimal `json:"shortTermPutsExposure"`
	LongTermPutsITM       int             `json:"longTermPutsItm"`
	LongTermPutsExposure  decimal.Decimal `json:"longTermPutsExposure"`
}

// AccountExposure runs every exposure calculation for one account's
// positions. The downside-equity figure includes the down-scenario net loss;
// leverage ratios are left nil when their denominator is zero rather than
// failing the calculation.
func (c *Calculator) AccountExposure(accountID int64, positions []model.Trade, percentUp, percentDown decimal.Decimal, expirationThreshold int) PortfolioExposure {
	exposure := c.Exposure(positions)
	down := c.WhatIf(positions, percentDown, Down)
	up := c.WhatIf(positions, percentUp, Up)
	downEquity := c.DownEquity(positions, percentDown).Add(down.NetLoss)
	buckets := c.PutDownsideBuckets(positions, percentDown, expirationThreshold)

	p := PortfolioExposure{
		AccountID:           accountID,
		TotalExposureValue:  exposure.TotalExposureValue,
		DailyPositionsValue: exposure.DailyPositionsValue,
		TotalEquityValue:    exposure.TotalEquityValue,
		CurrentAccountValue: exposure.CurrentAccountValue,

		WhatIfDownExposure: down.TotalWhatIfExposure,
		WhatIfUpExposure:   up.TotalWhatIfExposure,
		WhatIfDownEquity:   downEquity,

		ShortTermPutsITM:      buckets.ShortTerm.Contracts,
		ShortTermPutsExposure: buckets.ShortTerm.Exposure,
		LongTermPutsITM:       buckets.LongTerm.Contracts,
		LongTermPutsExposure:  buckets.LongTerm.Exposure,
	}

	if !downEquity.IsZero() {
		leverage := down.TotalWhatIfExposure.Div(downEquity)
		p.WhatIfDownLeverage = &leverage
	}
	if !exposure.CurrentAccountValue.IsZero() {
		leverage := exposure.TotalEquityValue.Div(exposure.CurrentAccountValue)
		p.CurrentLeverage = &leverage
	}

	return p
}

// AccountPremiums is a premium summary plus the account's trading window.
type AccountPremiums struct {
	AccountID int64 `json:"accountId"`
	PremiumSummary
	FirstDate time.Time `json:"firstDate"`
	LastDate  time.Time `json:"lastDate"`
}

// AccountOptionsPremiums aggregates one account's trade history and attaches
// the earliest and latest trade dates.
func AccountOptionsPremiums(accountID int64, history []model.TradeHistory) AccountPremiums {
	p := AccountPremiums{
		AccountID:      accountID,
		PremiumSummary: OptionsPremiums(history),
	}

	for _, h := range history {
		if p.FirstDate.IsZero() || h.Date.Before(p.FirstDate) {
			p.FirstDate = h.Date
		}
		if p.LastDate.IsZero() || h.Date.After(p.LastDate) {
			p.LastDate = h.Date
		}
	}

	return p
}
