package testutil

import (
	"database/sql"
	"testing"

	"github.com/traderisk/trade-risk-backend/internal/analysis"
	"github.com/traderisk/trade-risk-backend/internal/repository"
	"github.com/traderisk/trade-risk-backend/internal/service"
)

// NewTestAnalysisService wires an AnalysisService over the given test
// database and price source.
func NewTestAnalysisService(t *testing.T, db *sql.DB, prices analysis.PriceSource) *service.AnalysisService {
	t.Helper()

	return service.NewAnalysisService(
		repository.NewTradeRepository(db),
		repository.NewTradeHistoryRepository(db),
		analysis.NewCalculator(prices),
	)
}

// NewTestATHService wires an ATHService over the given test database and
// price source.
func NewTestATHService(t *testing.T, db *sql.DB, prices analysis.PriceSource) *service.ATHService {
	t.Helper()

	return service.NewATHService(
		repository.NewATHRepository(db),
		repository.NewTradeRepository(db),
		analysis.NewCalculator(prices),
	)
}

// NewTestImportService wires an ImportService over the given test database.
func NewTestImportService(t *testing.T, db *sql.DB) *service.ImportService {
	t.Helper()

	return service.NewImportService(
		repository.NewTradeRepository(db),
		repository.NewTradeHistoryRepository(db),
	)
}
