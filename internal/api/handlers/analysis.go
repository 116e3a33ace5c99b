package handlers

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/traderisk/trade-risk-backend/internal/analysis"
	"github.com/traderisk/trade-risk-backend/internal/service"
	"github.com/traderisk/trade-risk-backend/internal/validation"
)

// Scenario defaults applied when the query omits them.
var (
	defaultPercentUp   = decimal.NewFromInt(10)
	defaultPercentDown = decimal.NewFromInt(10)
)

const defaultExpirationThreshold = 5

// AnalysisHandler handles risk-analysis HTTP requests
type AnalysisHandler struct {
	analysisService *service.AnalysisService
	athService      *service.ATHService
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(analysisService *service.AnalysisService, athService *service.ATHService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		athService:      athService,
	}
}

// PortfolioExposureResponse is the per-account exposure payload.
type PortfolioExposureResponse struct {
	AccountID           int64   `json:"account_id"`
	TotalExposureValue  float64 `json:"total_exposure_value"`
	DailyPositionsValue float64 `json:"daily_positions_value"`
	TotalEquityValue    float64 `json:"total_equity_value"`
	CurrentAccountValue float64 `json:"current_account_value"`

	WhatIfDownExposure float64 `json:"what_if_down_exposure"`
	WhatIfUpExposure   float64 `json:"what_if_up_exposure"`
	WhatIfDownEquity   float64 `json:"what_if_down_equity"`

	CurrentLeverage    *float64 `json:"current_leverage"`
	WhatIfDownLeverage *float64 `json:"what_if_down_leverage"`

	ShortTermPutsITM      int     `json:"short_term_puts_itm"`
	ShortTermPutsExposure float64 `json:"short_term_puts_exposure"`
	LongTermPutsITM       int     `json:"long_term_puts_itm"`
	LongTermPutsExposure  float64 `json:"long_term_puts_exposure"`
}

func toExposureResponse(p analysis.PortfolioExposure) PortfolioExposureResponse {
	resp := PortfolioExposureResponse{
		AccountID:           p.AccountID,
		TotalExposureValue:  p.TotalExposureValue.InexactFloat64(),
		DailyPositionsValue: p.DailyPositionsValue.InexactFloat64(),
		TotalEquityValue:    p.TotalEquityValue.InexactFloat64(),
		CurrentAccountValue: p.CurrentAccountValue.InexactFloat64(),

		WhatIfDownExposure: p.WhatIfDownExposure.InexactFloat64(),
		WhatIfUpExposure:   p.WhatIfUpExposure.InexactFloat64(),
		WhatIfDownEquity:   p.WhatIfDownEquity.InexactFloat64(),

		ShortTermPutsITM:      p.ShortTermPutsITM,
		ShortTermPutsExposure: p.ShortTermPutsExposure.InexactFloat64(),
		LongTermPutsITM:       p.LongTermPutsITM,
		LongTermPutsExposure:  p.LongTermPutsExposure.InexactFloat64(),
	}
	if p.CurrentLeverage != nil {
		v := p.CurrentLeverage.InexactFloat64()
		resp.CurrentLeverage = &v
	}
	if p.WhatIfDownLeverage != nil {
		v := p.WhatIfDownLeverage.InexactFloat64()
		resp.WhatIfDownLeverage = &v
	}
	return resp
}

// Exposure handles GET requests for the full per-account risk picture.
//
// Endpoint: GET /api/analysis/exposure
// Query parameters:
//   - account_id: optional, restrict to one account
//   - percent_up: up-move shock percentage, default 10
//   - percent_down: down-move shock percentage, default 10
//   - expiration_threshold: short-term bucket boundary in days, default 5
func (h *AnalysisHandler) Exposure(w http.ResponseWriter, r *http.Request) {
	percentUp, err := validation.ParseDecimal(r.URL.Query().Get("percent_up"), defaultPercentUp)
	if err != nil {
		respondError(w, err)
		return
	}
	percentDown, err := validation.ParseDecimal(r.URL.Query().Get("percent_down"), defaultPercentDown)
	if err != nil {
		respondError(w, err)
		return
	}

	threshold := defaultExpirationThreshold
	if raw := r.URL.Query().Get("expiration_threshold"); raw != "" {
		threshold, err = strconv.Atoi(raw)
		if err != nil {
			respondError(w, validation.ErrInvalidNumber)
			return
		}
	}

	if raw := r.URL.Query().Get("account_id"); raw != "" {
		accountID, err := validation.ParseAccountID(raw)
		if err != nil {
			respondError(w, err)
			return
		}
		result, err := h.analysisService.AccountExposure(accountID, percentUp, percentDown, threshold)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, toExposureResponse(result))
		return
	}

	results, err := h.analysisService.PortfolioExposure(percentUp, percentDown, threshold)
	if err != nil {
		respondError(w, err)
		return
	}

	responses := make([]PortfolioExposureResponse, len(results))
	for i, result := range results {
		responses[i] = toExposureResponse(result)
	}
	respondJSON(w, http.StatusOK, responses)
}

// PremiumsResponse is the per-account options premium payload.
type PremiumsResponse struct {
	AccountID int64 `json:"account_id"`

	TotalContractsSold int `json:"total_contracts_sold"`

	ExpiredCalls        int     `json:"expired_calls"`
	ExpiredCallPremiums float64 `json:"expired_call_premiums"`
	ExpiredPuts         int     `json:"expired_puts"`
	ExpiredPutPremiums  float64 `json:"expired_put_premiums"`

	CallsBoughtBack    int     `json:"calls_bought_back"`
	PnLCallsBoughtBack float64 `json:"pnl_calls_bought_back"`
	PutsBoughtBack     int     `json:"puts_bought_back"`
	PnLPutsBoughtBack  float64 `json:"pnl_puts_bought_back"`

	AssignedClosedCount       int     `json:"assigned_closed_count"`
	AssignedClosedRealizedPnL float64 `json:"assigned_closed_realized_pnl"`
	AssignedOpenedCount       int     `json:"assigned_opened_count"`
	AssignedOpenedMTMPnL      float64 `json:"assigned_opened_mtm_pnl"`

	ExpiredContractsPremiums float64 `json:"expired_contracts_premiums"`
	BoughtBackContractsPnL   float64 `json:"bought_back_contracts_pnl"`
	AssignedContractsPnL     float64 `json:"assigned_contracts_pnl"`
	TotalPremiums            float64 `json:"total_premiums"`

	FirstDate string `json:"first_date"`
	LastDate  string `json:"last_date"`
}

// Premiums handles GET requests for options premium aggregation.
//
// Endpoint: GET /api/analysis/premiums
// Query parameters:
//   - account_id: optional, restrict to one account
func (h *AnalysisHandler) Premiums(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("account_id"); raw != "" {
		accountID, err := validation.ParseAccountID(raw)
		if err != nil {
			respondError(w, err)
			return
		}
		result, err := h.analysisService.AccountOptionsPremiums(accountID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, toPremiumsResponse(result))
		return
	}

	results, err := h.analysisService.OptionsPremiums()
	if err != nil {
		respondError(w, err)
		return
	}

	responses := make([]PremiumsResponse, len(results))
	for i, result := range results {
		responses[i] = toPremiumsResponse(result)
	}
	respondJSON(w, http.StatusOK, responses)
}

func toPremiumsResponse(p analysis.AccountPremiums) PremiumsResponse {
	return PremiumsResponse{
		AccountID: p.AccountID,

		TotalContractsSold: p.TotalContractsSold,

		ExpiredCalls:        p.ExpiredCalls,
		ExpiredCallPremiums: p.ExpiredCallPremiums.InexactFloat64(),
		ExpiredPuts:         p.ExpiredPuts,
		ExpiredPutPremiums:  p.ExpiredPutPremiums.InexactFloat64(),

		CallsBoughtBack:    p.CallsBoughtBack,
		PnLCallsBoughtBack: p.PnLCallsBoughtBack.InexactFloat64(),
		PutsBoughtBack:     p.PutsBoughtBack,
		PnLPutsBoughtBack:  p.PnLPutsBoughtBack.InexactFloat64(),

		AssignedClosedCount:       p.AssignedClosedCount,
		AssignedClosedRealizedPnL: p.AssignedClosedRealizedPnL.InexactFloat64(),
		AssignedOpenedCount:       p.AssignedOpenedCount,
		AssignedOpenedMTMPnL:      p.AssignedOpenedMTMPnL.InexactFloat64(),

		ExpiredContractsPremiums: p.ExpiredContractsPremiums.InexactFloat64(),
		BoughtBackContractsPnL:   p.BoughtBackContractsPnL.InexactFloat64(),
		AssignedContractsPnL:     p.AssignedContractsPnL.InexactFloat64(),
		TotalPremiums:            p.TotalPremiums.InexactFloat64(),

		FirstDate: p.FirstDate.Format("2006-01-02"),
		LastDate:  p.LastDate.Format("2006-01-02"),
	}
}

// ATHResponse is the per-account all-time-high recalculation payload.
type ATHResponse struct {
	AccountID         int64   `json:"account_id"`
	NewATHValue       float64 `json:"new_ath_value"`
	ATHDifference     float64 `json:"ath_difference"`
	TotalOptionsValue float64 `json:"total_options_value"`
}

// ATH handles GET requests recalculating each account's most recent
// all-time-high submission against its current positions.
//
// Endpoint: GET /api/analysis/ath
func (h *AnalysisHandler) ATH(w http.ResponseWriter, r *http.Request) {
	results, err := h.athService.RecalculateAll()
	if err != nil {
		respondError(w, err)
		return
	}

	responses := make([]ATHResponse, len(results))
	for i, result := range results {
		responses[i] = toATHResponse(result)
	}
	respondJSON(w, http.StatusOK, responses)
}

func toATHResponse(r analysis.ATHResult) ATHResponse {
	return ATHResponse{
		AccountID:         r.AccountID,
		NewATHValue:       r.NewATHValue.InexactFloat64(),
		ATHDifference:     r.ATHDifference.InexactFloat64(),
		TotalOptionsValue: r.TotalOptionsValue.InexactFloat64(),
	}
}
