// Package csvimport parses brokerage CSV exports into domain records:
// IBKR open-positions reports, Schwab positions exports and raw IBKR trade
// reports.
//
// Parsing is row-isolated: a malformed row is skipped and collected as an
// error, and the rest of the file continues to import. Only a file that
// yields zero records is treated as a batch failure, by the caller.
package csvimport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/traderisk/trade-risk-backend/internal/model"
)

// CashPositionName is the canonical label stored for Schwab cash rows.
// It deliberately contains "cash" so the downside-equity calculation leaves
// it unshocked.
const CashPositionName = "Cash & Cash Investments"

// ParseIBKRPositions parses an IBKR activity-statement CSV, extracting the
// "Open Positions" summary section. Rows before the section header are
// ignored.
func ParseIBKRPositions(r io.Reader) ([]model.Trade, []error) {
	reader, err := newSectionReader(r)
	if err != nil {
		return nil, []error{err}
	}

	var trades []model.Trade
	var errs []error
	headerFound := false
	line := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		if len(row) < 3 {
			continue
		}

		if row[0] == "Open Positions" && row[1] == "Header" && row[2] == "DataDiscriminator" {
			headerFound = true
			continue
		}
		if !headerFound || row[0] != "Open Positions" || row[1] != "Data" || row[2] != "Summary" {
			continue
		}

		trade, err := parseIBKRPositionRow(row)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		trades = append(trades, trade)
	}

	return trades, errs
}

func parseIBKRPositionRow(row []string) (model.Trade, error) {
	if len(row) < 14 {
		return model.Trade{}, fmt.Errorf("expected at least 14 columns, got %d", len(row))
	}

	quantity, err := parseQuantity(row[6])
	if err != nil {
		return model.Trade{}, fmt.Errorf("quantity: %w", err)
	}

	price, err := parseAmount(row[10])
	if err != nil {
		return model.Trade{}, fmt.Errorf("price: %w", err)
	}
	marketValue, err := parseAmount(row[11])
	if err != nil {
		return model.Trade{}, fmt.Errorf("market value: %w", err)
	}
	costBasis, err := parseAmount(row[9])
	if err != nil {
		return model.Trade{}, fmt.Errorf("cost basis: %w", err)
	}
	gainLoss, err := parseAmount(row[13])
	if err != nil {
		return model.Trade{}, fmt.Errorf("gain/loss: %w", err)
	}

	return model.Trade{
		StockName:   strings.TrimSpace(row[5]),
		Quantity:    quantity,
		Price:       price,
		MarketValue: marketValue,
		CostBasis:   costBasis,
		GainLoss:    gainLoss,
	}, nil
}

// ParseSchwabPositions parses a Schwab positions export. Schwab files carry
// free-form preamble lines before the quoted header row, so the parser
// first scans for the line starting with "Symbol".
func ParseSchwabPositions(r io.Reader) ([]model.Trade, []error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, []error{err}
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	lines := strings.Split(string(data), "\n")
	headerIndex := -1
	for i, l := range lines {
		if strings.HasPrefix(l, `"Symbol"`) {
			headerIndex = i
			break
		}
	}
	if headerIndex == -1 {
		return nil, []error{fmt.Errorf("no header row found in Schwab file")}
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(lines[headerIndex:], "\n")))
	reader.FieldsPerRecord = -1

	var trades []model.Trade
	var errs []error
	line := headerIndex

	// Skip the header row itself.
	if _, err := reader.Read(); err != nil {
		return nil, []error{fmt.Errorf("reading Schwab header: %w", err)}
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		if len(row) < 11 {
			continue
		}

		symbol := strings.TrimSpace(row[0])
		if symbol == "" {
			continue
		}

		if strings.Contains(symbol, "Cash & Cash Investments") {
			marketValue, err := parseAmount(row[6])
			if err != nil {
				errs = append(errs, fmt.Errorf("line %d: cash market value: %w", line, err))
				continue
			}
			trades = append(trades, model.Trade{
				StockName:   CashPositionName,
				MarketValue: marketValue,
			})
			continue
		}

		trade, err := parseSchwabPositionRow(symbol, row)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		trades = append(trades, trade)
	}

	return trades, errs
}

func parseSchwabPositionRow(symbol string, row []string) (model.Trade, error) {
	quantity, err := parseQuantity(row[2])
	if err != nil {
		return model.Trade{}, fmt.Errorf("quantity: %w", err)
	}
	price, err := parseAmount(row[3])
	if err != nil {
		return model.Trade{}, fmt.Errorf("price: %w", err)
	}
	marketValue, err := parseAmount(row[6])
	if err != nil {
		return model.Trade{}, fmt.Errorf("market value: %w", err)
	}
	costBasis, err := parseAmount(row[9])
	if err != nil {
		return model.Trade{}, fmt.Errorf("cost basis: %w", err)
	}
	gainLoss, err := parseAmount(row[10])
	if err != nil {
		return model.Trade{}, fmt.Errorf("gain/loss: %w", err)
	}

	return model.Trade{
		StockName:   symbol,
		Quantity:    quantity,
		Price:       price,
		MarketValue: marketValue,
		CostBasis:   costBasis,
		GainLoss:    gainLoss,
	}, nil
}

// ParseIBKRTradeHistory parses the "Trades" order rows of a raw IBKR trade
// report into trade-history records.
func ParseIBKRTradeHistory(r io.Reader) ([]model.TradeHistory, []error) {
	reader, err := newSectionReader(r)
	if err != nil {
		return nil, []error{err}
	}

	var records []model.TradeHistory
	var errs []error
	headerFound := false
	line := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		if len(row) < 3 {
			continue
		}

		if row[0] == "Trades" && row[1] == "Header" && row[2] == "DataDiscriminator" {
			headerFound = true
			continue
		}
		if !headerFound || row[0] != "Trades" || row[1] != "Data" || row[2] != "Order" {
			continue
		}

		record, err := parseTradeHistoryRow(row)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		records = append(records, record)
	}

	return records, errs
}

func parseTradeHistoryRow(row []string) (model.TradeHistory, error) {
	if len(row) < 15 {
		return model.TradeHistory{}, fmt.Errorf("expected at least 15 columns, got %d", len(row))
	}

	// The date/time column reads "2025-03-21, 09:30:00"; only the date part
	// is kept.
	dateStr := strings.TrimSpace(strings.SplitN(row[6], ",", 2)[0])
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return model.TradeHistory{}, fmt.Errorf("date: %w", err)
	}

	quantity, err := parseQuantity(row[7])
	if err != nil {
		return model.TradeHistory{}, fmt.Errorf("quantity: %w", err)
	}

	amounts := make([]decimal.Decimal, 7)
	names := []string{"t_price", "c_price", "proceeds", "commissions", "basis", "realized p/l", "mtm p/l"}
	for i := 0; i < 7; i++ {
		amounts[i], err = parseAmount(row[8+i])
		if err != nil {
			return model.TradeHistory{}, fmt.Errorf("%s: %w", names[i], err)
		}
	}

	code := ""
	if len(row) > 15 {
		code = strings.TrimSpace(row[15])
	}

	return model.TradeHistory{
		Symbol:             strings.TrimSpace(row[5]),
		Date:               date,
		Quantity:           quantity,
		TPrice:             amounts[0],
		CPrice:             amounts[1],
		Proceeds:           amounts[2],
		Commissions:        amounts[3],
		Basis:              amounts[4],
		RealizedProfitLoss: amounts[5],
		MTMProfitLoss:      amounts[6],
		Code:               code,
	}, nil
}

// newSectionReader wraps raw CSV bytes in a reader tolerant of the variable
// column counts IBKR statements use, stripping a UTF-8 BOM if present.
func newSectionReader(r io.Reader) (*csv.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	return reader, nil
}

// parseAmount parses a monetary field, tolerating thousands separators,
// dollar signs and empty values (empty parses to zero).
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	if s == "" {
		return decimal.Decimal{}, nil
	}
	return decimal.NewFromString(s)
}

// parseQuantity parses a share/contract count. Brokers export quantities as
// decimals ("100.0"); the fractional part is truncated.
func parseQuantity(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}
