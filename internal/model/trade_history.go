package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade history code tags as reported by the broker. A row's Code drives its
// classification in the premium aggregation:
//
//	"O"    position opened (contract sold)
//	"C"    position closed by an offsetting trade (bought back)
//	"C;EP" position closed via expiration
//	"A;O"  opened through assignment
//	"A;C"  closed through assignment
const (
	CodeOpened         = "O"
	CodeClosed         = "C"
	CodeExpired        = "C;EP"
	CodeAssignedOpened = "A;O"
	CodeAssignedClosed = "A;C"
)

// TradeHistory represents one executed-trade row from a raw IBKR trade
// report. Symbol uses the same free-text instrument encoding as
// Trade.StockName.
type TradeHistory struct {
	ID                 string          `json:"id"`
	Symbol             string          `json:"symbol"`
	Date               time.Time       `json:"date"`
	Quantity           int64           `json:"quantity"`
	TPrice             decimal.Decimal `json:"tPrice"`
	CPrice             decimal.Decimal `json:"cPrice"`
	Proceeds           decimal.Decimal `json:"proceeds"`
	Commissions        decimal.Decimal `json:"commissions"`
	Basis              decimal.Decimal `json:"basis"`
	RealizedProfitLoss decimal.Decimal `json:"realizedProfitLoss"`
	MTMProfitLoss      decimal.Decimal `json:"mtmProfitLoss"`
	Code               string          `json:"code"`
	AccountID          int64           `json:"accountId"`
}
