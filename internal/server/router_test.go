package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/racunko/racunko/internal/models"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Company{}, &models.Client{}, &models.Invoice{}, &models.InvoiceItem{}, &models.TaxRule{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db)
}

func TestHealth(t *testing.T) {
	h := setupRouter(t)

	for _, path := range []string{"/health", "/healthz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, w.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: decode: %v", path, err)
		}
		if resp["status"] != "ok" {
			t.Fatalf("%s: status %q", path, resp["status"])
		}
	}
}

func TestRequestIDHeader(t *testing.T) {
	h := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing X-Request-ID header")
	}
}

// End-to-end through the mux: create a company and a client, issue an
// invoice, read it back, render the PDF.
func TestRoutes(t *testing.T) {
	h := setupRouter(t)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodPost, "/api/companies", `{"name":"Računko d.o.o.","oib":"12345678901"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create company: %d body=%s", w.Code, w.Body.String())
	}
	var company models.Company
	_ = json.Unmarshal(w.Body.Bytes(), &company)

	w = do(http.MethodPost, "/api/clients", fmt.Sprintf(`{"name":"Klijent d.o.o.","companyId":%d}`, company.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("create client: %d body=%s", w.Code, w.Body.String())
	}
	var client models.Client
	_ = json.Unmarshal(w.Body.Bytes(), &client)

	invoiceBody := fmt.Sprintf(`{
		"invoiceNumber": "2024-001",
		"issueDate": "2024-03-01",
		"companyId": %d,
		"clientId": %d,
		"items": [{"description": "Usluga", "quantity": 2, "unitPrice": 100, "vatRate": 25}]
	}`, company.ID, client.ID)
	w = do(http.MethodPost, "/api/invoices", invoiceBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("create invoice: %d body=%s", w.Code, w.Body.String())
	}
	var invoice models.Invoice
	_ = json.Unmarshal(w.Body.Bytes(), &invoice)
	if invoice.Total != 250 {
		t.Fatalf("invoice total: %v", invoice.Total)
	}

	w = do(http.MethodGet, fmt.Sprintf("/api/invoices/%d", invoice.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("get invoice: %d", w.Code)
	}

	w = do(http.MethodGet, "/api/tax/rules", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list tax rules: %d", w.Code)
	}

	w = do(http.MethodPost, fmt.Sprintf("/api/pdf/invoice/%d", invoice.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("render pdf: %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("pdf content type: %q", ct)
	}

	// Unknown API path
	w = do(http.MethodGet, "/api/unknown", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown path: %d", w.Code)
	}
}
