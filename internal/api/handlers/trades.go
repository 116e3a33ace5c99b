package handlers

import (
	"net/http"

	"github.com/traderisk/trade-risk-backend/internal/model"
	"github.com/traderisk/trade-risk-backend/internal/service"
	"github.com/traderisk/trade-risk-backend/internal/validation"
)

// TradesHandler handles position and trade-history HTTP requests
type TradesHandler struct {
	analysisService *service.AnalysisService
}

// NewTradesHandler creates a new TradesHandler
func NewTradesHandler(analysisService *service.AnalysisService) *TradesHandler {
	return &TradesHandler{
		analysisService: analysisService,
	}
}

// TradeResponse is one open position.
type TradeResponse struct {
	ID          string  `json:"id"`
	StockName   string  `json:"stock_name"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
	MarketValue float64 `json:"market_value"`
	CostBasis   float64 `json:"cost_basis"`
	GainLoss    float64 `json:"gain_loss"`
	AccountID   int64   `json:"account_id"`
}

// Positions handles GET requests for an account's open positions.
//
// Endpoint: GET /api/trades
// Query parameters:
//   - account_id: required
func (h *TradesHandler) Positions(w http.ResponseWriter, r *http.Request) {
	accountID, err := validation.ParseAccountID(r.URL.Query().Get("account_id"))
	if err != nil {
		respondError(w, err)
		return
	}

	positions, err := h.analysisService.Positions(accountID)
	if err != nil {
		respondError(w, err)
		return
	}

	responses := make([]TradeResponse, len(positions))
	for i, t := range positions {
		responses[i] = TradeResponse{
			ID:          t.ID,
			StockName:   t.StockName,
			Quantity:    t.Quantity,
			Price:       t.Price.InexactFloat64(),
			MarketValue: t.MarketValue.InexactFloat64(),
			CostBasis:   t.CostBasis.InexactFloat64(),
			GainLoss:    t.GainLoss.InexactFloat64(),
			AccountID:   t.AccountID,
		}
	}
	respondJSON(w, http.StatusOK, responses)
}

// TradeHistoryResponse is one executed trade.
type TradeHistoryResponse struct {
	ID                 string  `json:"id"`
	Symbol             string  `json:"symbol"`
	Date               string  `json:"date"`
	Quantity           int64   `json:"quantity"`
	TPrice             float64 `json:"t_price"`
	CPrice             float64 `json:"c_price"`
	Proceeds           float64 `json:"proceeds"`
	Commissions        float64 `json:"commissions"`
	Basis              float64 `json:"basis"`
	RealizedProfitLoss float64 `json:"realized_pl"`
	MTMProfitLoss      float64 `json:"mtm_pl"`
	Code               string  `json:"code"`
	AccountID          int64   `json:"account_id"`
}

// History handles GET requests for an account's executed trades.
//
// Endpoint: GET /api/trades/history
// Query parameters:
//   - account_id: required
func (h *TradesHandler) History(w http.ResponseWriter, r *http.Request) {
	accountID, err := validation.ParseAccountID(r.URL.Query().Get("account_id"))
	if err != nil {
		respondError(w, err)
		return
	}

	history, err := h.analysisService.TradeHistory(accountID)
	if err != nil {
		respondError(w, err)
		return
	}

	responses := make([]TradeHistoryResponse, len(history))
	for i, rec := range history {
		responses[i] = toTradeHistoryResponse(rec)
	}
	respondJSON(w, http.StatusOK, responses)
}

func toTradeHistoryResponse(rec model.TradeHistory) TradeHistoryResponse {
	return TradeHistoryResponse{
		ID:                 rec.ID,
		Symbol:             rec.Symbol,
		Date:               rec.Date.Format("2006-01-02"),
		Quantity:           rec.Quantity,
		TPrice:             rec.TPrice.InexactFloat64(),
		CPrice:             rec.CPrice.InexactFloat64(),
		Proceeds:           rec.Proceeds.InexactFloat64(),
		Commissions:        rec.Commissions.InexactFloat64(),
		Basis:              rec.Basis.InexactFloat64(),
		RealizedProfitLoss: rec.RealizedProfitLoss.InexactFloat64(),
		MTMProfitLoss:      rec.MTMProfitLoss.InexactFloat64(),
		Code:               rec.Code,
		AccountID:          rec.AccountID,
	}
}
