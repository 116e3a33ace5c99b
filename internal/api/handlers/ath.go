package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/traderisk/trade-risk-backend/internal/model"
	"github.com/traderisk/trade-risk-backend/internal/service"
	"github.com/traderisk/trade-risk-backend/internal/validation"
)

// ATHHandler handles all-time-high submission HTTP requests
type ATHHandler struct {
	athService *service.ATHService
}

// NewATHHandler creates a new ATHHandler
func NewATHHandler(athService *service.ATHService) *ATHHandler {
	return &ATHHandler{
		athService: athService,
	}
}

// ATHSubmissionRequest is the submission payload.
type ATHSubmissionRequest struct {
	AccountID         int64   `json:"account_id"`
	PortfolioATHValue float64 `json:"portfolio_ath_value"`
	PortfolioATHDate  string  `json:"portfolio_ath_date"`
	CurrentNAVValue   float64 `json:"current_nav_value"`
}

// ATHSubmissionResponse is a stored submission plus its recalculation.
type ATHSubmissionResponse struct {
	ID                string  `json:"id"`
	AccountID         int64   `json:"account_id"`
	PortfolioATHValue float64 `json:"portfolio_ath_value"`
	PortfolioATHDate  string  `json:"portfolio_ath_date"`
	CurrentNAVValue   float64 `json:"current_nav_value"`
	CreatedAt         string  `json:"created_at"`

	Recalculation *ATHResponse `json:"recalculation,omitempty"`
}

// Submit handles POST requests storing a new all-time-high snapshot and
// returning its recalculation against current positions.
//
// Endpoint: POST /api/ath
func (h *ATHHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ATHSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.AccountID <= 0 {
		respondError(w, validation.ErrInvalidAccountID)
		return
	}
	athDate, err := validation.ParseDate(req.PortfolioATHDate)
	if err != nil {
		respondError(w, err)
		return
	}

	sub := model.ATHSubmission{
		AccountID:         req.AccountID,
		PortfolioATHValue: decimal.NewFromFloat(req.PortfolioATHValue),
		PortfolioATHDate:  athDate,
		CurrentNAVValue:   decimal.NewFromFloat(req.CurrentNAVValue),
	}

	stored, recalc, err := h.athService.Submit(sub)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := toSubmissionResponse(stored)
	athResp := toATHResponse(recalc)
	resp.Recalculation = &athResp
	respondJSON(w, http.StatusCreated, resp)
}

// List handles GET requests for stored submissions, newest first.
//
// Endpoint: GET /api/ath
func (h *ATHHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.athService.List()
	if err != nil {
		respondError(w, err)
		return
	}

	responses := make([]ATHSubmissionResponse, len(subs))
	for i, sub := range subs {
		responses[i] = toSubmissionResponse(sub)
	}
	respondJSON(w, http.StatusOK, responses)
}

func toSubmissionResponse(sub model.ATHSubmission) ATHSubmissionResponse {
	return ATHSubmissionResponse{
		ID:                sub.ID,
		AccountID:         sub.AccountID,
		PortfolioATHValue: sub.PortfolioATHValue.InexactFloat64(),
		PortfolioATHDate:  sub.PortfolioATHDate.Format("2006-01-02"),
		CurrentNAVValue:   sub.CurrentNAVValue.InexactFloat64(),
		CreatedAt:         sub.CreatedAt.Format(time.RFC3339),
	}
}
