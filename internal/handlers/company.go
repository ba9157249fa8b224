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

type CompanyHandler struct {
	DB *gorm.DB
}

func NewCompanyHandler(db *gorm.DB) *CompanyHandler { return &CompanyHandler{DB: db} }

// companyInput uses pointers so PUT can distinguish omitted from empty fields.
type companyInput struct {
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
	Logo       *string `json:"logo"`
}

func (in *companyInput) apply(c *models.Company) {
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
	if in.Logo != nil {
		c.Logo = *in.Logo
	}
}

func (in *companyInput) validate(requireAll bool) validation.Violations {
	v := make(validation.Violations)
	if requireAll || in.Name != nil {
		name := ""
		if in.Name != nil {
			name = *in.Name
		}
		validation.Required("name", name, v)
	}
	if in.Email != nil {
		validation.Email("email", *in.Email, v)
	}
	return v
}

// List: GET /api/companies
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	var companies []models.Company
	if err := h.DB.Order("created_at desc").Find(&companies).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_companies", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, companies)
}

// Get: GET /api/companies/{id} – eager-loads owned clients and invoices.
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var company models.Company
	if err := h.DB.Preload("Clients").Preload("Invoices").First(&company, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_company", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, company)
}

// Create: POST /api/companies
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in companyInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := in.validate(true); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_data", v)
		return
	}
	var company models.Company
	in.apply(&company)
	if company.Country == "" {
		company.Country = "Croatia"
	}
	if err := h.DB.Create(&company).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_company", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, company)
}

// Update: PUT /api/companies/{id} – partial update, only supplied fields change.
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var company models.Company
	if err := h.DB.First(&company, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_company", nil)
		return
	}
	var in companyInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := in.validate(false); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_data", v)
		return
	}
	in.apply(&company)
	if err := h.DB.Save(&company).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_company", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, company)
}

// Delete: DELETE /api/companies/{id} – rejected while clients or invoices
// still reference the company.
func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var company models.Company
	if err := h.DB.First(&company, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_company", nil)
		return
	}
	var clientCount, invoiceCount int64
	h.DB.Model(&models.Client{}).Where("company_id = ?", id).Count(&clientCount)
	h.DB.Model(&models.Invoice{}).Where("company_id = ?", id).Count(&invoiceCount)
	if clientCount > 0 || invoiceCount > 0 {
		httpx.JSONError(w, http.StatusConflict, "company_has_dependents", map[string]int64{
			"clients":  clientCount,
			"invoices": invoiceCount,
		})
		return
	}
	if err := h.DB.Delete(&company).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_company", nil)
		return
	}
	httpx.NoContent(w)
}
