package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/traderisk/trade-risk-backend/internal/api/handlers"
	"github.com/traderisk/trade-risk-backend/internal/service"
	"github.com/traderisk/trade-risk-backend/internal/testutil"
)

const ibkrPositionsUpload = `Open Positions,Header,DataDiscriminator,Asset Category,Currency,Symbol,Quantity,Mult,Cost Price,Cost Basis,Close Price,Value,Open Price,Unrealized P/L
Open Positions,Data,Summary,Stocks,USD,AAPL,100,1,145.00,14500.00,150.25,15025.00,145.00,525.00`

// multipartUpload builds a multipart request body with a CSV file plus form
// fields.
func multipartUpload(t *testing.T, csvBody string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", "upload.csv")
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := fw.Write([]byte(csvBody)); err != nil {
		t.Fatalf("writing form file: %v", err)
	}

	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("writing field %s: %v", key, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	return &buf, mw.FormDataContentType()
}

// TestImportHandler_Positions tests the positions upload endpoint.
//
// WHY: Uploads arrive as multipart forms; the handler must pull the file
// and account out of the form and report how many rows landed.
func TestImportHandler_Positions(t *testing.T) {
	newHandler := func(t *testing.T) (*handlers.ImportHandler, *service.AnalysisService) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		h := handlers.NewImportHandler(testutil.NewTestImportService(t, db))
		svc := testutil.NewTestAnalysisService(t, db, testutil.NewFakePriceSource())
		return h, svc
	}

	t.Run("imports an uploaded IBKR file", func(t *testing.T) {
		h, svc := newHandler(t)

		body, contentType := multipartUpload(t, ibkrPositionsUpload, map[string]string{
			"account_id": "7",
			"format":     "ibkr",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/import/positions", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.Positions(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
		}

		var result service.ImportResult
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if result.Imported != 1 {
			t.Errorf("Imported = %d, want 1", result.Imported)
		}

		positions, err := svc.Positions(7)
		if err != nil {
			t.Fatalf("Positions() error = %v", err)
		}
		if len(positions) != 1 || positions[0].StockName != "AAPL" {
			t.Fatalf("positions = %+v, want one AAPL row", positions)
		}
	})

	t.Run("defaults to the IBKR format when none is given", func(t *testing.T) {
		h, _ := newHandler(t)

		body, contentType := multipartUpload(t, ibkrPositionsUpload, map[string]string{
			"account_id": "1",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/import/positions", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.Positions(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
		}
	})

	t.Run("rejects a missing account_id", func(t *testing.T) {
		h, _ := newHandler(t)

		body, contentType := multipartUpload(t, ibkrPositionsUpload, nil)
		req := httptest.NewRequest(http.MethodPost, "/api/import/positions", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.Positions(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("rejects a form without a file", func(t *testing.T) {
		h, _ := newHandler(t)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		if err := mw.WriteField("account_id", "1"); err != nil {
			t.Fatalf("writing field: %v", err)
		}
		if err := mw.Close(); err != nil {
			t.Fatalf("closing multipart writer: %v", err)
		}

		req := httptest.NewRequest(http.MethodPost, "/api/import/positions", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()

		h.Positions(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

// TestImportHandler_History tests the trade report upload endpoint.
func TestImportHandler_History(t *testing.T) {
	t.Run("imports an uploaded trade report", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		h := handlers.NewImportHandler(testutil.NewTestImportService(t, db))

		csvBody := `Trades,Header,DataDiscriminator,Asset Category,Currency,Symbol,Date/Time,Quantity,T. Price,C. Price,Proceeds,Comm/Fee,Basis,Realized P/L,MTM P/L,Code
Trades,Data,Order,Equity and Index Options,USD,AAPL 21MAR25 150 P,"2025-03-21, 09:30:00",-1,1.50,0.00,150.00,-1.05,0.00,148.95,0.00,O`

		body, contentType := multipartUpload(t, csvBody, map[string]string{
			"account_id": "3",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/import/history", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		h.History(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body)
		}

		var result service.ImportResult
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if result.Imported != 1 {
			t.Errorf("Imported = %d, want 1", result.Imported)
		}
	})
}
