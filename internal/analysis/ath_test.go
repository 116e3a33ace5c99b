package analysis_test

import (
	"testing"
	"time"

	"github.com/traderisk/trade-risk-backend/internal/analysis"
	"github.com/traderisk/trade-risk-backend/internal/model"
	"github.com/traderisk/trade-risk-backend/internal/testutil"
)

// TestCalculator_RecalculateATH tests re-verification of a submitted
// all-time-high snapshot against current positions.
//
// WHY: The recalculation reprices non-option positions at the snapshot
// date and shifts the NAV by the repricing delta. Futures positions carry
// their contract multiplier on both sides of the delta, and every distinct
// symbol must be priced exactly once.
func TestCalculator_RecalculateATH(t *testing.T) {
	athDate := time.Date(2025, time.February, 14, 0, 0, 0, 0, time.UTC)

	t.Run("no positions negates the submitted value", func(t *testing.T) {
		calc := analysis.NewCalculator(testutil.NewFakePriceSource())
		sub := testutil.NewATHSubmission().WithATHValue(100000).Value()

		r := calc.RecalculateATH(sub, nil)

		assertDecimal(t, "NewATHValue", r.NewATHValue, 0)
		assertDecimal(t, "ATHDifference", r.ATHDifference, -100000)
	})

	t.Run("options pass market value through without pricing", func(t *testing.T) {
		prices := testutil.NewFakePriceSource()
		calc := analysis.NewCalculator(prices)
		sub := testutil.NewATHSubmission().
			WithATHValue(100000).WithATHDate(athDate).WithNAVValue(95000).Value()

		positions := []model.Trade{
			testutil.NewTrade().
				WithStockName("AAPL 21MAR25 100 P").
				WithMarketValue(-450).
				Value(),
		}

		r := calc.RecalculateATH(sub, positions)

		assertDecimal(t, "TotalOptionsValue", r.TotalOptionsValue, -450)
		assertDecimal(t, "NewATHValue", r.NewATHValue, 95000)
		assertDecimal(t, "ATHDifference", r.ATHDifference, -5000)
		if len(prices.HistoricalCalls) != 0 {
			t.Errorf("HistoricalCalls = %v, want none", prices.HistoricalCalls)
		}
	})

	t.Run("equity repricing shifts the NAV by the delta", func(t *testing.T) {
		prices := testutil.NewFakePriceSource().
			WithHistoricalPrice("AAPL", "2025-02-14", 140)
		calc := analysis.NewCalculator(prices)
		sub := testutil.NewATHSubmission().
			WithATHValue(100000).WithATHDate(athDate).WithNAVValue(95000).Value()

		positions := []model.Trade{
			testutil.NewTrade().
				WithStockName("AAPL").
				WithQuantity(10).
				WithPrice(150).
				Value(),
		}

		r := calc.RecalculateATH(sub, positions)

		// 95000 + (10*140 - 10*150).
		assertDecimal(t, "NewATHValue", r.NewATHValue, 94900)
		assertDecimal(t, "ATHDifference", r.ATHDifference, -5100)
	})

	t.Run("bare contract keys expand and carry the futures multiplier", func(t *testing.T) {
		prices := testutil.NewFakePriceSource().
			WithHistoricalPrice("MESM25.CME", "2025-02-14", 5100)
		calc := analysis.NewCalculator(prices)
		sub := testutil.NewATHSubmission().
			WithATHValue(100000).WithATHDate(athDate).WithNAVValue(95000).Value()

		positions := []model.Trade{
			testutil.NewTrade().
				WithStockName("MESM").
				WithQuantity(2).
				WithPrice(5000).
				Value(),
		}

		r := calc.RecalculateATH(sub, positions)

		// 95000 + (2*5100*5 - 2*5000*5).
		assertDecimal(t, "NewATHValue", r.NewATHValue, 96000)
		assertDecimal(t, "ATHDifference", r.ATHDifference, -4000)
	})

	t.Run("each distinct symbol is priced once", func(t *testing.T) {
		prices := testutil.NewFakePriceSource().
			WithHistoricalPrice("AAPL", "2025-02-14", 140)
		calc := analysis.NewCalculator(prices)
		sub := testutil.NewATHSubmission().WithATHDate(athDate).Value()

		positions := []model.Trade{
			testutil.NewTrade().WithStockName("AAPL").WithQuantity(10).WithPrice(150).Value(),
			testutil.NewTrade().WithStockName("AAPL").WithQuantity(5).WithPrice(150).Value(),
		}

		calc.RecalculateATH(sub, positions)

		if got := prices.HistoricalCalls["AAPL@2025-02-14"]; got != 1 {
			t.Errorf("HistoricalCalls[AAPL@2025-02-14] = %d, want 1", got)
		}
	})

	t.Run("failed price lookup degrades the symbol to zero", func(t *testing.T) {
		calc := analysis.NewCalculator(testutil.NewFakePriceSource())
		sub := testutil.NewATHSubmission().
			WithATHValue(100000).WithATHDate(athDate).WithNAVValue(95000).Value()

		positions := []model.Trade{
			testutil.NewTrade().
				WithStockName("AAPL").
				WithQuantity(10).
				WithPrice(150).
				Value(),
		}

		r := calc.RecalculateATH(sub, positions)

		// The unpriced leg values at zero: 95000 + (0 - 1500).
		assertDecimal(t, "NewATHValue", r.NewATHValue, 93500)
	})
}
