package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/racunko/racunko/internal/httpx"
	"github.com/racunko/racunko/internal/models"
	"github.com/racunko/racunko/internal/services"
	"github.com/racunko/racunko/internal/validation"
)

type TaxRuleHandler struct {
	DB *gorm.DB
}

func NewTaxRuleHandler(db *gorm.DB) *TaxRuleHandler { return &TaxRuleHandler{DB: db} }

type taxRuleInput struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	VATRate       *float64 `json:"vatRate"`
	Category      *string  `json:"category"`
	EffectiveFrom *string  `json:"effectiveFrom"`
	EffectiveTo   *string  `json:"effectiveTo"`
	Source        *string  `json:"source"`
	IsActive      *bool    `json:"isActive"`
}

// List: GET /api/tax/rules – active rules, newest effective date first. An
// optional asOf date narrows the result to rules whose effective window
// covers that day.
func (h *TaxRuleHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		rules []models.TaxRule
		err   error
	)
	if raw := r.URL.Query().Get("asOf"); raw != "" {
		asOf, perr := parseDate(raw)
		if perr != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_data", map[string]string{"asOf": "invalid_date"})
			return
		}
		rules, err = services.ActiveRulesAsOf(h.DB, asOf)
	} else {
		rules, err = services.ActiveRules(h.DB)
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_tax_rules", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, rules)
}

// Get: GET /api/tax/rules/{id}
func (h *TaxRuleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var rule models.TaxRule
	if err := h.DB.First(&rule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_tax_rule", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, rule)
}

// Create: POST /api/tax/rules
func (h *TaxRuleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in taxRuleInput
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
	if in.VATRate == nil {
		v["vatRate"] = "required"
	} else {
		validation.NonNegativeFloat("vatRate", *in.VATRate, v)
	}
	if in.EffectiveFrom == nil {
		v["effectiveFrom"] = "required"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_data", v)
		return
	}

	rule := models.TaxRule{Name: name, VATRate: *in.VATRate, IsActive: true}
	from, err := parseDate(*in.EffectiveFrom)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_data", map[string]string{"effectiveFrom": "invalid_date"})
		return
	}
	rule.EffectiveFrom = from
	if in.EffectiveTo != nil {
		to, err := parseDate(*in.EffectiveTo)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_data", map[string]string{"effectiveTo": "invalid_date"})
			return
		}
		rule.EffectiveTo = &to
	}
	if in.Description != nil {
		rule.Description = *in.Description
	}
	if in.Category != nil {
		rule.Category = *in.Category
	}
	if in.Source != nil {
		rule.Source = *in.Source
	}
	if in.IsActive != nil {
		rule.IsActive = *in.IsActive
	}
	if err := h.DB.Create(&rule).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_tax_rule", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, rule)
}

// Update: PUT /api/tax/rules/{id}
func (h *TaxRuleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var rule models.TaxRule
	if err := h.DB.First(&rule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_tax_rule", nil)
		return
	}
	var in taxRuleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := make(validation.Violations)
	if in.Name != nil {
		validation.Required("name", *in.Name, v)
	}
	if in.VATRate != nil {
		validation.NonNegativeFloat("vatRate", *in.VATRate, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_data", v)
		return
	}
	if in.Name != nil {
		rule.Name = *in.Name
	}
	if in.Description != nil {
		rule.Description = *in.Description
	}
	if in.VATRate != nil {
		rule.VATRate = *in.VATRate
	}
	if in.Category != nil {
		rule.Category = *in.Category
	}
	if in.EffectiveFrom != nil {
		from, err := parseDate(*in.EffectiveFrom)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_data", map[string]string{"effectiveFrom": "invalid_date"})
			return
		}
		rule.EffectiveFrom = from
	}
	if in.EffectiveTo != nil {
		to, err := parseDate(*in.EffectiveTo)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_data", map[string]string{"effectiveTo": "invalid_date"})
			return
		}
		rule.EffectiveTo = &to
	}
	if in.Source != nil {
		rule.Source = *in.Source
	}
	if in.IsActive != nil {
		rule.IsActive = *in.IsActive
	}
	if err := h.DB.Save(&rule).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_tax_rule", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, rule)
}

// Delete: DELETE /api/tax/rules/{id}
func (h *TaxRuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var rule models.TaxRule
	if err := h.DB.First(&rule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_tax_rule", nil)
		return
	}
	if err := h.DB.Delete(&rule).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_tax_rule", nil)
		return
	}
	httpx.NoContent(w)
}
