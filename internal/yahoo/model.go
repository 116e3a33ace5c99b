package yahoo

import "time"

// ChartResponse represents the raw JSON response from the Yahoo Finance
// chart API. The structure maps the nested Yahoo format directly:
//   - Chart.Result: array of result objects (typically one element)
//   - Chart.Result[].Meta: symbol metadata (name, currency, exchange)
//   - Chart.Result[].Timestamp: Unix timestamps for each data point
//   - Chart.Result[].Indicators: price arrays (open, close, high, low, volume)
//   - Chart.Error: optional error message from the Yahoo API
type ChartResponse struct {
	Chart struct {
		Result []struct {
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
		} `json:"result"`
		Error *string `json:"error"`
	} `json:"chart"`
}

// SearchResponse represents the raw JSON response from the Yahoo Finance
// symbol-search API. Quotes are ordered by relevance; the first quote's
// Symbol is what a free-text underlying lookup resolves to.
type SearchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		QuoteType string `json:"quoteType"`
		Exchange  string `json:"exchange"`
	} `json:"quotes"`
}

// PriceChart is the parsed, application-internal form of a chart response:
// symbol metadata plus a time series of daily price points.
type PriceChart struct {
	Currency     string       `json:"currency"`
	Symbol       string       `json:"symbol"`
	ExchangeName string       `json:"exchangeName"`
	LongName     string       `json:"longName"`
	ShortName    string       `json:"shortName"`
	Indicators   []Indicators `json:"indicators"`
}

// Indicators is a single trading day's OHLCV data. Date carries midnight UTC.
type Indicators struct {
	Date       time.Time
	PriceOpen  float64
	PriceClose float64
	Volume     int64
	PriceHigh  float64
	PriceLow   float64
}
