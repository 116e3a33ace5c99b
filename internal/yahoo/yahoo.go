// Package yahoo is a thin client for the public Yahoo Finance chart and
// search endpoints. It knows nothing about instruments or caching; the
// marketdata package layers ticker resolution and price caching on top.
package yahoo

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client defines the Yahoo Finance operations consumed by the marketdata
// layer. The interface enables dependency injection and testing with mock
// implementations.
type Client interface {
	QueryFiveDaySymbol(symbol string) (ChartResponse, error)
	QuerySymbolByDateRange(symbol string, startDate, endDate time.Time) (ChartResponse, error)
	SearchSymbol(query string) (SearchResponse, error)
	ParseChart(result ChartResponse) (PriceChart, error)
}

// FinanceClient provides methods for fetching financial data from Yahoo
// Finance. It wraps a standard http.Client for making requests to the
// chart and search endpoints.
type FinanceClient struct {
	httpClient *http.Client
}

// NewFinanceClient creates a new Yahoo Finance client with default HTTP
// settings.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{},
	}
}

// ParseChart converts a raw chart API response into a structured price
// chart, validating that timestamps and close prices are present and that
// the data arrays have matching lengths.
func (c *FinanceClient) ParseChart(chartResult ChartResponse) (PriceChart, error) {
	if len(chartResult.Chart.Result) == 0 {
		return PriceChart{}, fmt.Errorf("empty chart result")
	}
	result := chartResult.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return PriceChart{}, fmt.Errorf("no price data returned")
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return PriceChart{}, fmt.Errorf("no close prices returned")
	}
	if len(result.Indicators.Quote[0].Close) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths")
	}

	indicators := make([]Indicators, len(result.Timestamp))
	for i, v := range result.Timestamp {
		indicators[i].Date = time.Unix(v, 0).UTC()
		indicators[i].PriceOpen = result.Indicators.Quote[0].Open[i]
		indicators[i].PriceClose = result.Indicators.Quote[0].Close[i]
		indicators[i].Volume = result.Indicators.Quote[0].Volume[i]
		indicators[i].PriceHigh = result.Indicators.Quote[0].High[i]
		indicators[i].PriceLow = result.Indicators.Quote[0].Low[i]
	}

	return PriceChart{
		Symbol:       result.Meta.Symbol,
		Currency:     result.Meta.Currency,
		ExchangeName: result.Meta.ExchangeName,
		LongName:     result.Meta.LongName,
		ShortName:    result.Meta.ShortName,
		Indicators:   indicators,
	}, nil
}

// GetIndicatorForDate searches the chart for price data matching a specific
// date. Comparison is date-only: both sides are truncated to midnight UTC.
func (c PriceChart) GetIndicatorForDate(target time.Time) (Indicators, bool) {
	targetDay := target.UTC().Truncate(24 * time.Hour)
	for _, ind := range c.Indicators {
		if ind.Date.UTC().Truncate(24 * time.Hour).Equal(targetDay) {
			return ind, true
		}
	}
	return Indicators{}, false
}

// QueryFiveDaySymbol fetches the last 5 trading days of daily price data for
// a symbol. Five days rather than one so that a weekend request still picks
// up Friday's close.
func (c *FinanceClient) QueryFiveDaySymbol(symbol string) (ChartResponse, error) {
	chartURL := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=5d", url.PathEscape(symbol))
	result, err := c.queryChart(chartURL)
	if err != nil {
		return ChartResponse{}, err
	}
	if len(result.Chart.Result) == 0 {
		return ChartResponse{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return result, nil
}

// QuerySymbolByDateRange fetches daily price data for a symbol within a
// date range (inclusive on both ends), using Yahoo's Unix-timestamp period
// query format.
func (c *FinanceClient) QuerySymbolByDateRange(symbol string, startDate, endDate time.Time) (ChartResponse, error) {
	chartURL := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		url.PathEscape(symbol),
		startDate.Unix(),
		endDate.Unix(),
	)
	result, err := c.queryChart(chartURL)
	if err != nil {
		return ChartResponse{}, err
	}
	if len(result.Chart.Result) == 0 {
		return ChartResponse{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return result, nil
}

// SearchSymbol queries the Yahoo symbol-search endpoint with a free-text
// underlying label and returns the candidate quotes.
func (c *FinanceClient) SearchSymbol(query string) (SearchResponse, error) {
	searchURL := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v1/finance/search?q=%s&quotesCount=5&newsCount=0",
		url.QueryEscape(query),
	)

	data, err := c.get(searchURL)
	if err != nil {
		return SearchResponse{}, err
	}

	var response SearchResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return SearchResponse{}, err
	}

	return response, nil
}

// queryChart executes a chart request and checks for an API-level error in
// the response body.
func (c *FinanceClient) queryChart(chartURL string) (ChartResponse, error) {
	data, err := c.get(chartURL)
	if err != nil {
		return ChartResponse{}, err
	}

	var response ChartResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return ChartResponse{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s", *response.Chart.Error)
	}

	return response, nil
}

// get performs a GET request with the headers Yahoo expects. The User-Agent
// mimics a browser; Yahoo blocks the default Go client string.
func (c *FinanceClient) get(requestURL string) ([]byte, error) {
	req, err := http.NewRequest("GET", requestURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}
