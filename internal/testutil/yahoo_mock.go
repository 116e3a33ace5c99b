package testutil

import (
	"time"

	"github.com/traderisk/trade-risk-backend/internal/yahoo"
)

// MockYahooClient is a mock implementation of yahoo.Client for testing.
// It returns predefined test data instead of making actual API calls.
type MockYahooClient struct {
	// MockChart is the response to return from chart query methods
	MockChart yahoo.ChartResponse
	// MockSearch is the response to return from SearchSymbol
	MockSearch yahoo.SearchResponse
	// MockError is the error to return from query methods
	MockError error
	// QueryCount tracks how many times a query method was called
	QueryCount int
}

// NewMockYahooClient creates a new mock Yahoo client with default test data.
// The default data includes 5 days of closing prices suitable for testing.
func NewMockYahooClient() *MockYahooClient {
	return &MockYahooClient{
		MockChart: CreateMockChartResponse("AAPL", 5, 150.0),
	}
}

// CreateMockChartResponse builds a chart response for a symbol with the
// given number of daily data points, ending today. Every close carries the
// same price.
func CreateMockChartResponse(symbol string, days int, closePrice float64) yahoo.ChartResponse {
	var response yahoo.ChartResponse

	timestamps := make([]int64, days)
	opens := make([]float64, days)
	closes := make([]float64, days)
	highs := make([]float64, days)
	lows := make([]float64, days)
	volumes := make([]int64, days)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	for i := 0; i < days; i++ {
		timestamps[i] = today.AddDate(0, 0, i-days+1).Unix()
		opens[i] = closePrice
		closes[i] = closePrice
		highs[i] = closePrice
		lows[i] = closePrice
		volumes[i] = 1000
	}

	result := struct {
		Meta struct {
			Currency     string `json:"currency"`
			Symbol       string `json:"symbol"`
			ExchangeName string `json:"exchangeName"`
			LongName     string `json:"longName"`
			ShortName    string `json:"shortName"`
		} `json:"meta"`
		Timestamp  []int64 `json:"timestamp"`
		Indicators struct {
			Quote []struct {
				Open   []float64 `json:"open"`
				Close  []float64 `json:"close"`
				Volume []int64   `json:"volume"`
				High   []float64 `json:"high"`
				Low    []float64 `json:"low"`
			} `json:"quote"`
		} `json:"indicators"`
	}{}

	result.Meta.Symbol = symbol
	result.Meta.Currency = "USD"
	result.Timestamp = timestamps
	result.Indicators.Quote = append(result.Indicators.Quote, struct {
		Open   []float64 `json:"open"`
		Close  []float64 `json:"close"`
		Volume []int64   `json:"volume"`
		High   []float64 `json:"high"`
		Low    []float64 `json:"low"`
	}{Open: opens, Close: closes, Volume: volumes, High: highs, Low: lows})

	response.Chart.Result = append(response.Chart.Result, result)
	return response
}

// QueryFiveDaySymbol mocks the 5-day chart query.
func (m *MockYahooClient) QueryFiveDaySymbol(_ string) (yahoo.ChartResponse, error) {
	m.QueryCount++
	if m.MockError != nil {
		return yahoo.ChartResponse{}, m.MockError
	}
	return m.MockChart, nil
}

// QuerySymbolByDateRange mocks the date range chart query.
func (m *MockYahooClient) QuerySymbolByDateRange(_ string, _, _ time.Time) (yahoo.ChartResponse, error) {
	m.QueryCount++
	if m.MockError != nil {
		return yahoo.ChartResponse{}, m.MockError
	}
	return m.MockChart, nil
}

// SearchSymbol mocks the symbol search query.
func (m *MockYahooClient) SearchSymbol(_ string) (yahoo.SearchResponse, error) {
	m.QueryCount++
	if m.MockError != nil {
		return yahoo.SearchResponse{}, m.MockError
	}
	return m.MockSearch, nil
}

// ParseChart delegates to the real ParseChart method since it's pure logic with no side effects.
func (m *MockYahooClient) ParseChart(result yahoo.ChartResponse) (yahoo.PriceChart, error) {
	// Use the real implementation for parsing since it's deterministic
	client := yahoo.NewFinanceClient()
	return client.ParseChart(result)
}

// WithError configures the mock to return the specified error.
func (m *MockYahooClient) WithError(err error) *MockYahooClient {
	m.MockError = err
	return m
}
