package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/traderisk/trade-risk-backend/internal/apperrors"
	"github.com/traderisk/trade-risk-backend/internal/service"
	"github.com/traderisk/trade-risk-backend/internal/validation"
)

// maxUploadSize caps CSV uploads at 10 MB.
const maxUploadSize = 10 << 20

// ImportHandler handles CSV upload HTTP requests
type ImportHandler struct {
	importService *service.ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// Positions handles POST requests importing a positions CSV.
//
// Endpoint: POST /api/import/positions
// Form fields:
//   - file: the CSV export
//   - account_id: required
//   - format: "ibkr" (default) or "schwab"
func (h *ImportHandler) Positions(w http.ResponseWriter, r *http.Request) {
	accountID, file, err := h.uploadParams(r)
	if err != nil {
		respondError(w, err)
		return
	}
	defer file.Close()

	broker := service.BrokerIBKR
	if format := r.FormValue("format"); format != "" {
		broker = service.Broker(format)
	}

	result, err := h.importService.ImportPositions(file, broker, accountID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// History handles POST requests importing an IBKR trade report CSV.
//
// Endpoint: POST /api/import/history
// Form fields:
//   - file: the CSV export
//   - account_id: required
func (h *ImportHandler) History(w http.ResponseWriter, r *http.Request) {
	accountID, file, err := h.uploadParams(r)
	if err != nil {
		respondError(w, err)
		return
	}
	defer file.Close()

	result, err := h.importService.ImportTradeHistory(file, accountID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *ImportHandler) uploadParams(r *http.Request) (int64, multipart.File, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidCSVFormat, err)
	}

	accountID, err := validation.ParseAccountID(r.FormValue("account_id"))
	if err != nil {
		return 0, nil, err
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return 0, nil, apperrors.ErrMissingFile
	}

	return accountID, file, nil
}
