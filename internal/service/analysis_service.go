package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/traderisk/trade-risk-backend/internal/analysis"
	"github.com/traderisk/trade-risk-backend/internal/apperrors"
	"github.com/traderisk/trade-risk-backend/internal/model"
	"github.com/traderisk/trade-risk-backend/internal/repository"
)

// AnalysisService orchestrates the risk calculations over stored positions
// and trade history.
type AnalysisService struct {
	tradeRepo   *repository.TradeRepository
	historyRepo *repository.TradeHistoryRepository
	calc        *analysis.Calculator
}

// NewAnalysisService creates a new AnalysisService.
//
// Parameters:
//   - tradeRepo: repository for current open positions
//   - historyRepo: repository for executed trades
//   - calc: the risk calculator, backed by a live or fake price source
func NewAnalysisService(tradeRepo *repository.TradeRepository, historyRepo *repository.TradeHistoryRepository, calc *analysis.Calculator) *AnalysisService {
	return &AnalysisService{
		tradeRepo:   tradeRepo,
		historyRepo: historyRepo,
		calc:        calc,
	}
}

// PortfolioExposure computes the full risk picture for every account that
// currently holds positions.
//
// Parameters:
//   - percentUp: up-move shock percentage for the what-if scenario
//   - percentDown: down-move shock percentage
//   - expirationThreshold: days-to-expiry boundary between the short-term
//     and long-term put buckets
//
// Returns one PortfolioExposure per account, in ascending account order.
func (s *AnalysisService) PortfolioExposure(percentUp, percentDown decimal.Decimal, expirationThreshold int) ([]analysis.PortfolioExposure, error) {
	accounts, err := s.tradeRepo.DistinctAccounts()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveAccounts, err)
	}

	results := make([]analysis.PortfolioExposure, 0, len(accounts))
	for _, accountID := range accounts {
		result, err := s.AccountExposure(accountID, percentUp, percentDown, expirationThreshold)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

// AccountExposure computes the full risk picture for a single account.
// Returns apperrors.ErrAccountNotFound when the account has no positions.
func (s *AnalysisService) AccountExposure(accountID int64, percentUp, percentDown decimal.Decimal, expirationThreshold int) (analysis.PortfolioExposure, error) {
	positions, err := s.tradeRepo.GetByAccount(accountID)
	if err != nil {
		return analysis.PortfolioExposure{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveTrades, err)
	}
	if len(positions) == 0 {
		return analysis.PortfolioExposure{}, fmt.Errorf("%w: account %d", apperrors.ErrAccountNotFound, accountID)
	}

	return s.calc.AccountExposure(accountID, positions, percentUp, percentDown, expirationThreshold), nil
}

// Positions retrieves the current open positions for one account.
func (s *AnalysisService) Positions(accountID int64) ([]model.Trade, error) {
	positions, err := s.tradeRepo.GetByAccount(accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveTrades, err)
	}
	return positions, nil
}

// TradeHistory retrieves the executed trades for one account, oldest first.
func (s *AnalysisService) TradeHistory(accountID int64) ([]model.TradeHistory, error) {
	history, err := s.historyRepo.GetByAccount(accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveTradeHistory, err)
	}
	return history, nil
}

// OptionsPremiums aggregates options premium totals for every account with
// trade history.
func (s *AnalysisService) OptionsPremiums() ([]analysis.AccountPremiums, error) {
	accounts, err := s.historyRepo.DistinctAccounts()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveAccounts, err)
	}

	results := make([]analysis.AccountPremiums, 0, len(accounts))
	for _, accountID := range accounts {
		summary, err := s.AccountOptionsPremiums(accountID)
		if err != nil {
			return nil, err
		}
		results = append(results, summary)
	}

	return results, nil
}

// AccountOptionsPremiums aggregates options premium totals for one account.
// Returns apperrors.ErrAccountNotFound when the account has no trade history.
func (s *AnalysisService) AccountOptionsPremiums(accountID int64) (analysis.AccountPremiums, error) {
	history, err := s.historyRepo.GetByAccount(accountID)
	if err != nil {
		return analysis.AccountPremiums{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveTradeHistory, err)
	}
	if len(history) == 0 {
		return analysis.AccountPremiums{}, fmt.Errorf("%w: account %d", apperrors.ErrAccountNotFound, accountID)
	}

	return analysis.AccountOptionsPremiums(accountID, history), nil
}
