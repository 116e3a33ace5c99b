package service

import (
	"fmt"

	"github.com/traderisk/trade-risk-backend/internal/analysis"
	"github.com/traderisk/trade-risk-backend/internal/apperrors"
	"github.com/traderisk/trade-risk-backend/internal/model"
	"github.com/traderisk/trade-risk-backend/internal/repository"
)

// ATHService handles all-time-high submissions and their re-verification
// against current positions.
type ATHService struct {
	athRepo   *repository.ATHRepository
	tradeRepo *repository.TradeRepository
	calc      *analysis.Calculator
}

// NewATHService creates a new ATHService.
func NewATHService(athRepo *repository.ATHRepository, tradeRepo *repository.TradeRepository, calc *analysis.Calculator) *ATHService {
	return &ATHService{
		athRepo:   athRepo,
		tradeRepo: tradeRepo,
		calc:      calc,
	}
}

// Submit stores an all-time-high submission and recalculates it against the
// account's current positions marked at the snapshot date's prices.
//
// Parameters:
//   - sub: the submission, without ID or timestamps
//
// Returns the stored submission and the recalculation result.
func (s *ATHService) Submit(sub model.ATHSubmission) (model.ATHSubmission, analysis.ATHResult, error) {
	if sub.PortfolioATHValue.IsNegative() || sub.CurrentNAVValue.IsNegative() {
		return model.ATHSubmission{}, analysis.ATHResult{}, apperrors.ErrNegativeAmount
	}

	stored, err := s.athRepo.Create(sub)
	if err != nil {
		return model.ATHSubmission{}, analysis.ATHResult{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToStoreSubmission, err)
	}

	positions, err := s.tradeRepo.GetByAccount(sub.AccountID)
	if err != nil {
		return model.ATHSubmission{}, analysis.ATHResult{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToRecalculateATH, err)
	}

	return stored, s.calc.RecalculateATH(stored, positions), nil
}

// RecalculateAll re-verifies the most recent submission of every account
// against that account's current positions.
func (s *ATHService) RecalculateAll() ([]analysis.ATHResult, error) {
	subs, err := s.athRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveSubmissions, err)
	}

	// GetAll returns newest first, so the first submission seen per account
	// is its latest.
	seen := make(map[int64]bool)
	var results []analysis.ATHResult
	for _, sub := range subs {
		if seen[sub.AccountID] {
			continue
		}
		seen[sub.AccountID] = true

		positions, err := s.tradeRepo.GetByAccount(sub.AccountID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRecalculateATH, err)
		}
		results = append(results, s.calc.RecalculateATH(sub, positions))
	}

	return results, nil
}

// List retrieves every stored submission, newest first.
func (s *ATHService) List() ([]model.ATHSubmission, error) {
	subs, err := s.athRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveSubmissions, err)
	}
	return subs, nil
}
