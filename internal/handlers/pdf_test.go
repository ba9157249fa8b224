package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

func TestPDFInvoice(t *testing.T) {
	db := setupTestDB(t)
	company, client := seedParties(t, db)
	inv := seedInvoice(t, db, company, client, "2024-100")
	h := NewPDFHandler(db)

	id := strconv.Itoa(int(inv.ID))
	req := httptest.NewRequest(http.MethodPost, "/api/pdf/invoice/"+id, nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	h.Invoice(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type: %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "invoice-2024-100.pdf") {
		t.Fatalf("content disposition: %q", cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("response is not a PDF document")
	}
}

func TestPDFInvoiceNotFound(t *testing.T) {
	db := setupTestDB(t)
	h := NewPDFHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/api/pdf/invoice/7", nil)
	req.SetPathValue("id", "7")
	w := httptest.NewRecorder()
	h.Invoice(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}
