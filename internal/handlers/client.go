package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/racunko/racunko/internal/httpx"
	"github.com/racunko/racunko/internal/models"
	"github.com/racunko/racunko/internal/validation"
)

type ClientHandler struct {
	DB *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler { return &ClientHandler{DB: db} }

type clientInput struct {
	Name       *string `json:"name"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postalCode"`
	Country    *string `json:"country"`
	OIB        *string `json:"oib"`
	VATNumber  *string `json:"vatNumber"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Website    *string `json:"website"`
	CompanyID  *uint   `json:"companyId"`
}

func (in *clientInput) apply(c *models.Client) {
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	if in.City != nil {
		c.City = *in.City
	}
	if in.PostalCode != nil {
		c.PostalCode = *in.PostalCode
	}
	if in.Country != nil {
		c.Country = *in.Country
	}
	if in.OIB != nil {
		c.OIB = *in.OIB
	}
	if in.VATNumber != nil {
		c.VATNumber = *in.VATNumber
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Website != nil {
		c.Website = *in.Website
	}
	if in.CompanyID != nil {
		c.CompanyID = *in.CompanyID
	}
}

// List: GET /api/clients – company relation is always resolved.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	var clients []models.Client
	if err := h.DB.Preload("Company").Order("created_at desc").Find(&clients).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_clients", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, clients)
}

// Get: GET /api/clients/{id}
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var client models.Client
	if err := h.DB.Preload("Company").Preload("Invoices").First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_client", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Create: POST /api/clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in clientInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := make(validation.Violations)
	name := ""
	if in.Name != nil {
		name = *in.Name
	}
	validation.Required("name", name, v)
	var companyID uint
	if in.CompanyID != nil {
		companyID = *in.CompanyID
	}
	validation.RequiredID("companyId", companyID, v)
	if in.Email != nil {
		validation.Email("email", *in.Email, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_data", v)
		return
	}
	var company models.Company
	if err := h.DB.First(&company, companyID).Error; err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_data", map[string]string{"companyId": "unknown_company"})
		return
	}
	var client models.Client
	in.apply(&client)
	if err := h.DB.Create(&client).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_client", nil)
		return
	}
	client.Company = company
	httpx.JSON(w, http.StatusCreated, client)
}

// Update: PUT /api/clients/{id}
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var client models.Client
	if err := h.DB.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_client", nil)
		return
	}
	var in clientInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := make(validation.Violations)
	if in.Name != nil {
		validation.Required("name", *in.Name, v)
	}
	if in.Email != nil {
		validation.Email("email", *in.Email, v)
	}
	if in.CompanyID != nil {
		var company models.Company
		if err := h.DB.First(&company, *in.CompanyID).Error; err != nil {
			v["companyId"] = "unknown_company"
		}
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_data", v)
		return
	}
	in.apply(&client)
	if err := h.DB.Save(&client).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_client", nil)
		return
	}
	if err := h.DB.Preload("Company").First(&client, client.ID).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_client", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Delete: DELETE /api/clients/{id}
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var client models.Client
	if err := h.DB.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_client", nil)
		return
	}
	if err := h.DB.Delete(&client).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_client", nil)
		return
	}
	httpx.NoContent(w)
}
