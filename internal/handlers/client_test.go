package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/racunko/racunko/internal/models"
)

func TestClientCreate(t *testing.T) {
	db := setupTestDB(t)
	company, _ := seedParties(t, db)
	h := NewClientHandler(db)

	body := fmt.Sprintf(`{"name":"Novi Klijent","email":"novi@example.com","oib":"12345678903","companyId":%d}`, company.ID)
	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var client models.Client
	if err := json.Unmarshal(w.Body.Bytes(), &client); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if client.ID == 0 || client.Name != "Novi Klijent" || client.CompanyID != company.ID {
		t.Fatalf("unexpected client: %+v", client)
	}
	if client.Company.ID != company.ID {
		t.Fatalf("company relation not resolved: %+v", client.Company)
	}
}

func TestClientCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	h := NewClientHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(`{"email":"not-an-email"}`))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	var resp struct {
		Details map[string]string `json:"details"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Details["name"] != "required" || resp.Details["companyId"] != "required" || resp.Details["email"] != "invalid_email" {
		t.Fatalf("unexpected details: %#v", resp.Details)
	}
}

func TestClientCreateUnknownCompany(t *testing.T) {
	db := setupTestDB(t)
	h := NewClientHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(`{"name":"X","companyId":999}`))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	var resp struct {
		Details map[string]string `json:"details"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Details["companyId"] != "unknown_company" {
		t.Fatalf("unexpected details: %#v", resp.Details)
	}
}

func TestClientUpdatePartial(t *testing.T) {
	db := setupTestDB(t)
	_, client := seedParties(t, db)
	h := NewClientHandler(db)

	id := strconv.Itoa(int(client.ID))
	req := httptest.NewRequest(http.MethodPut, "/api/clients/"+id, strings.NewReader(`{"city":"Rijeka"}`))
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var updated models.Client
	_ = json.Unmarshal(w.Body.Bytes(), &updated)
	if updated.City != "Rijeka" {
		t.Fatalf("city not updated: %+v", updated)
	}
	if updated.Name != client.Name {
		t.Fatalf("name should survive a partial update: %+v", updated)
	}
}

func TestClientUpdateUnknownCompany(t *testing.T) {
	db := setupTestDB(t)
	_, client := seedParties(t, db)
	h := NewClientHandler(db)

	id := strconv.Itoa(int(client.ID))
	req := httptest.NewRequest(http.MethodPut, "/api/clients/"+id, strings.NewReader(`{"companyId":999}`))
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestClientGetNotFound(t *testing.T) {
	db := setupTestDB(t)
	h := NewClientHandler(db)

	req := httptest.NewRequest(http.MethodGet, "/api/clients/42", nil)
	req.SetPathValue("id", "42")
	w := httptest.NewRecorder()
	h.Get(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestClientDelete(t *testing.T) {
	db := setupTestDB(t)
	_, client := seedParties(t, db)
	h := NewClientHandler(db)

	id := strconv.Itoa(int(client.ID))
	req := httptest.NewRequest(http.MethodDelete, "/api/clients/"+id, nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	h.Delete(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", w.Code)
	}
	var count int64
	db.Model(&models.Client{}).Where("id = ?", client.ID).Count(&count)
	if count != 0 {
		t.Fatalf("client still present")
	}
}
