package analysis

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/traderisk/trade-risk-backend/internal/instrument"
	"github.com/traderisk/trade-risk-backend/internal/model"
)

// PremiumSummary classifies closed trade-history rows and sums realized
// profit and loss per closure category.
type PremiumSummary struct {
	TotalContractsSold int `json:"totalContractsSold"`

	ExpiredCalls        int             `json:"expiredCalls"`
	ExpiredCallPremiums decimal.Decimal `json:"expiredCallPremiums"`
	ExpiredPuts         int             `json:"expiredPuts"`
	ExpiredPutPremiums  decimal.Decimal `json:"expiredPutPremiums"`

	CallsBoughtBack    int             `json:"callsBoughtBack"`
	PnLCallsBoughtBack decimal.Decimal `json:"pnlCallsBoughtBack"`
	PutsBoughtBack     int             `json:"putsBoughtBack"`
	PnLPutsBoughtBack  decimal.Decimal `json:"pnlPutsBoughtBack"`

	AssignedClosedCount       int             `json:"assignedClosedCount"`
	AssignedClosedRealizedPnL decimal.Decimal `json:"assignedClosedRealizedPnl"`
	AssignedOpenedCount       int             `json:"assignedOpenedCount"`
	AssignedOpenedMTMPnL      decimal.Decimal `json:"assignedOpenedMtmPnl"`

	// Aggregates across the three closure categories.
	ExpiredContractsPremiums decimal.Decimal `json:"expiredContractsPremiums"`
	BoughtBackContractsPnL   decimal.Decimal `json:"boughtBackContractsPnl"`
	AssignedContractsPnL     decimal.Decimal `json:"assignedContractsPnl"`
	TotalPremiums            decimal.Decimal `json:"totalPremiums"`
}

// OptionsPremiums aggregates an account's trade history into premium
// categories.
//
// Rows whose symbol parses as an option are classified by code: "O" counts
// as a contract sold, "C;EP" as expired (realized P&L summed per option
// letter), and a bare "C" as bought back (realized P&L summed per letter,
// expirations excluded by the exact-code match). Non-option rows classify
// assignments: "A;C" sums realized P&L, "A;O" sums mark-to-market P&L.
// Codes compare case-insensitively.
func OptionsPremiums(history []model.TradeHistory) PremiumSummary {
	var s PremiumSummary

	for _, h := range history {
		inst := instrument.Parse(h.Symbol)
		code := strings.ToUpper(h.Code)

		if inst.Kind.IsOption() {
			switch code {
			case model.CodeOpened:
				s.TotalContractsSold++
			case model.CodeExpired:
				if inst.Kind == instrument.Call {
					s.ExpiredCalls++
					s.ExpiredCallPremiums = s.ExpiredCallPremiums.Add(h.RealizedProfitLoss)
				} else {
					s.ExpiredPuts++
					s.ExpiredPutPremiums = s.ExpiredPutPremiums.Add(h.RealizedProfitLoss)
				}
			case model.CodeClosed:
				if inst.Kind == instrument.Call {
					s.CallsBoughtBack++
					s.PnLCallsBoughtBack = s.PnLCallsBoughtBack.Add(h.RealizedProfitLoss)
				} else {
					s.PutsBoughtBack++
					s.PnLPutsBoughtBack = s.PnLPutsBoughtBack.Add(h.RealizedProfitLoss)
				}
			}
			continue
		}

		switch code {
		case model.CodeAssignedClosed:
			s.AssignedClosedCount++
			s.AssignedClosedRealizedPnL = s.AssignedClosedRealizedPnL.Add(h.RealizedProfitLoss)
		case model.CodeAssignedOpened:
			s.AssignedOpenedCount++
			s.AssignedOpenedMTMPnL = s.AssignedOpenedMTMPnL.Add(h.MTMProfitLoss)
		}
	}

	s.ExpiredContractsPremiums = s.ExpiredCallPremiums.Add(s.ExpiredPutPremiums)
	s.BoughtBackContractsPnL = s.PnLCallsBoughtBack.Add(s.PnLPutsBoughtBack)
	s.AssignedContractsPnL = s.AssignedClosedRealizedPnL.Add(s.AssignedOpenedMTMPnL)
	s.TotalPremiums = s.ExpiredContractsPremiums.
		Add(s.BoughtBackContractsPnL).
		Add(s.AssignedContractsPnL)

	return s
}
