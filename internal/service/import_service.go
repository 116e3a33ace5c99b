package service

import (
	"fmt"
	"io"

	"github.com/traderisk/trade-risk-backend/internal/apperrors"
	"github.com/traderisk/trade-risk-backend/internal/csvimport"
	"github.com/traderisk/trade-risk-backend/internal/model"
	"github.com/traderisk/trade-risk-backend/internal/repository"
)

// Broker identifies the CSV export format of an uploaded positions file.
type Broker string

const (
	BrokerIBKR   Broker = "ibkr"
	BrokerSchwab Broker = "schwab"
)

// ImportResult reports how a CSV upload went: how many rows made it in and
// the per-row errors for those that did not.
type ImportResult struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportService handles CSV uploads of positions and trade history.
type ImportService struct {
	tradeRepo   *repository.TradeRepository
	historyRepo *repository.TradeHistoryRepository
}

// NewImportService creates a new ImportService.
func NewImportService(tradeRepo *repository.TradeRepository, historyRepo *repository.TradeHistoryRepository) *ImportService {
	return &ImportService{
		tradeRepo:   tradeRepo,
		historyRepo: historyRepo,
	}
}

// ImportPositions parses a positions CSV in the given broker's format and
// stores the rows under the given account. Malformed rows are skipped and
// reported; the import only fails outright when no row could be parsed or
// stored.
func (s *ImportService) ImportPositions(r io.Reader, broker Broker, accountID int64) (ImportResult, error) {
	var trades []model.Trade
	var parseErrs []error

	switch broker {
	case BrokerIBKR:
		trades, parseErrs = csvimport.ParseIBKRPositions(r)
	case BrokerSchwab:
		trades, parseErrs = csvimport.ParseSchwabPositions(r)
	default:
		return ImportResult{}, fmt.Errorf("%w: unknown broker %q", apperrors.ErrInvalidCSVFormat, broker)
	}

	if len(trades) == 0 {
		return ImportResult{Errors: errorStrings(parseErrs)},
			fmt.Errorf("%w: no rows parsed", apperrors.ErrFailedToImportPositions)
	}

	for i := range trades {
		trades[i].AccountID = accountID
	}

	imported, insertErrs, err := s.tradeRepo.InsertTrades(trades)
	allErrs := append(parseErrs, insertErrs...)
	if err != nil {
		return ImportResult{Errors: errorStrings(allErrs)},
			fmt.Errorf("%w: %v", apperrors.ErrFailedToImportPositions, err)
	}

	return ImportResult{Imported: imported, Errors: errorStrings(allErrs)}, nil
}

// ImportTradeHistory parses an IBKR trade report CSV and stores the executed
// trades under the given account. Same row-isolation semantics as
// ImportPositions.
func (s *ImportService) ImportTradeHistory(r io.Reader, accountID int64) (ImportResult, error) {
	records, parseErrs := csvimport.ParseIBKRTradeHistory(r)

	if len(records) == 0 {
		return ImportResult{Errors: errorStrings(parseErrs)},
			fmt.Errorf("%w: no rows parsed", apperrors.ErrFailedToImportTradeHistory)
	}

	for i := range records {
		records[i].AccountID = accountID
	}

	imported, insertErrs, err := s.historyRepo.InsertTradeHistory(records)
	allErrs := append(parseErrs, insertErrs...)
	if err != nil {
		return ImportResult{Errors: errorStrings(allErrs)},
			fmt.Errorf("%w: %v", apperrors.ErrFailedToImportTradeHistory, err)
	}

	return ImportResult{Imported: imported, Errors: errorStrings(allErrs)}, nil
}

func errorStrings(errs []error) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Error()
	}
	return out
}
