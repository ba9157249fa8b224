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

type InvoiceHandler struct {
	DB *gorm.DB
}

func NewInvoiceHandler(db *gorm.DB) *InvoiceHandler { return &InvoiceHandler{DB: db} }

type invoiceItemInput struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	VATRate     float64 `json:"vatRate"`
}

type invoiceInput struct {
	InvoiceNumber *string             `json:"invoiceNumber"`
	IssueDate     *string             `json:"issueDate"`
	DueDate       *string             `json:"dueDate"`
	Status        *string             `json:"status"`
	VATRate       *float64            `json:"vatRate"`
	Currency      *string             `json:"currency"`
	Notes         *string             `json:"notes"`
	PaymentTerms  *string             `json:"paymentTerms"`
	CompanyID     *uint               `json:"companyId"`
	ClientID      *uint               `json:"clientId"`
	Items         *[]invoiceItemInput `json:"items"`
}

// buildItems converts line inputs into normalized model rows with derived
// totals and defaulted VAT rates.
func buildItems(inputs []invoiceItemInput, v validation.Violations) []models.InvoiceItem {
	items := make([]models.InvoiceItem, 0, len(inputs))
	for _, in := range inputs {
		validation.Required("items.description", in.Description, v)
		validation.PositiveFloat("items.quantity", in.Quantity, v)
		validation.NonNegativeFloat("items.unitPrice", in.UnitPrice, v)
		items = append(items, models.InvoiceItem{
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			VATRate:     in.VATRate,
		})
	}
	services.NormalizeItems(items)
	return items
}

// withRelations applies the eager loading every invoice response carries:
// issuer, recipient, and lines in creation order.
func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Company").Preload("Client").
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("invoice_items.id") })
}

// List: GET /api/invoices – newest first, fully resolved.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	var invoices []models.Invoice
	if err := withRelations(h.DB).Order("created_at desc").Find(&invoices).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_invoices", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, invoices)
}

// Get: GET /api/invoices/{id}
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var invoice models.Invoice
	if err := withRelations(h.DB).First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, invoice)
}

// Create: POST /api/invoices – money fields are derived server-side from the
// items; caller-supplied totals are ignored so that total always equals
// subtotal + vatAmount.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in invoiceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := make(validation.Violations)
	if in.InvoiceNumber == nil || *in.InvoiceNumber == "" {
		v["invoiceNumber"] = "required"
	}
	if in.IssueDate == nil {
		v["issueDate"] = "required"
	}
	if in.CompanyID == nil || *in.CompanyID == 0 {
		v["companyId"] = "required"
	}
	if in.ClientID == nil || *in.ClientID == 0 {
		v["clientId"] = "required"
	}
	if in.Items == nil {
		v["items"] = "required"
	}
	if in.Status != nil {
		validation.OneOf("status", *in.Status, models.Statuses, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_data", v)
		return
	}

	invoice := models.Invoice{
		InvoiceNumber: *in.InvoiceNumber,
		Status:        models.StatusDraft,
		VATRate:       services.DefaultVATRate,
		Currency:      "EUR",
		CompanyID:     *in.CompanyID,
		ClientID:      *in.ClientID,
	}
	issueDate, err := parseDate(*in.IssueDate)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_data", map[string]string{"issueDate": "invalid_date"})
		return
	}
	invoice.IssueDate = issueDate
	if in.DueDate != nil {
		due, err := parseDate(*in.DueDate)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_data", map[string]string{"dueDate": "invalid_date"})
			return
		}
		invoice.DueDate = &due
	}
	if in.Status != nil {
		invoice.Status = *in.Status
	}
	if in.VATRate != nil {
		invoice.VATRate = *in.VATRate
	}
	if in.Currency != nil && *in.Currency != "" {
		invoice.Currency = *in.Currency
	}
	if in.Notes != nil {
		invoice.Notes = *in.Notes
	}
	if in.PaymentTerms != nil {
		invoice.PaymentTerms = *in.PaymentTerms
	}

	if err := h.DB.First(&models.Company{}, invoice.CompanyID).Error; err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_data", map[string]string{"companyId": "unknown_company"})
		return
	}
	if err := h.DB.First(&models.Client{}, invoice.ClientID).Error; err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_data", map[string]string{"clientId": "unknown_client"})
		return
	}

	items := buildItems(*in.Items, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_data", v)
		return
	}
	services.ApplyTotals(&invoice, services.InvoiceTotals(items))

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].InvoiceID = invoice.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_data", map[string]string{"invoiceNumber": "duplicate_for_company"})
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_invoice", nil)
		return
	}

	if err := withRelations(h.DB).First(&invoice, invoice.ID).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, invoice)
}

// Update: PUT /api/invoices/{id} – header fields update in place; when an
// items array is supplied the lines are replaced wholesale inside one
// transaction. Totals are recomputed from the resulting lines either way.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var invoice models.Invoice
	if err := h.DB.First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_invoice", nil)
		return
	}
	var in invoiceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := make(validation.Violations)
	if in.InvoiceNumber != nil {
		validation.Required("invoiceNumber", *in.InvoiceNumber, v)
	}
	if in.Status != nil {
		validation.OneOf("status", *in.Status, models.Statuses, v)
	}
	if in.CompanyID != nil {
		if err := h.DB.First(&models.Company{}, *in.CompanyID).Error; err != nil {
			v["companyId"] = "unknown_company"
		}
	}
	if in.ClientID != nil {
		if err := h.DB.First(&models.Client{}, *in.ClientID).Error; err != nil {
			v["clientId"] = "unknown_client"
		}
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_data", v)
		return
	}

	if in.InvoiceNumber != nil {
		invoice.InvoiceNumber = *in.InvoiceNumber
	}
	if in.IssueDate != nil {
		d, err := parseDate(*in.IssueDate)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_data", map[string]string{"issueDate": "invalid_date"})
			return
		}
		invoice.IssueDate = d
	}
	if in.DueDate != nil {
		d, err := parseDate(*in.DueDate)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_data", map[string]string{"dueDate": "invalid_date"})
			return
		}
		invoice.DueDate = &d
	}
	if in.Status != nil {
		invoice.Status = *in.Status
	}
	if in.VATRate != nil {
		invoice.VATRate = *in.VATRate
	}
	if in.Currency != nil && *in.Currency != "" {
		invoice.Currency = *in.Currency
	}
	if in.Notes != nil {
		invoice.Notes = *in.Notes
	}
	if in.PaymentTerms != nil {
		invoice.PaymentTerms = *in.PaymentTerms
	}
	if in.CompanyID != nil {
		invoice.CompanyID = *in.CompanyID
	}
	if in.ClientID != nil {
		invoice.ClientID = *in.ClientID
	}

	var items []models.InvoiceItem
	replaceItems := in.Items != nil
	if replaceItems {
		items = buildItems(*in.Items, v)
		if !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_data", v)
			return
		}
	} else {
		if err := h.DB.Where("invoice_id = ?", invoice.ID).Order("id").Find(&items).Error; err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_invoice", nil)
			return
		}
	}
	services.ApplyTotals(&invoice, services.InvoiceTotals(items))

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if replaceItems {
			if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
				return err
			}
			for i := range items {
				items[i].ID = 0
				items[i].InvoiceID = invoice.ID
			}
			if len(items) > 0 {
				if err := tx.Create(&items).Error; err != nil {
					return err
				}
			}
		}
		return tx.Save(&invoice).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_data", map[string]string{"invoiceNumber": "duplicate_for_company"})
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_invoice", nil)
		return
	}

	if err := withRelations(h.DB).First(&invoice, invoice.ID).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, invoice)
}

// Delete: DELETE /api/invoices/{id} – removes the invoice and its lines.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var invoice models.Invoice
	if err := h.DB.First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_fetch_invoice", nil)
		return
	}
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&invoice).Error
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_invoice", nil)
		return
	}
	httpx.NoContent(w)
}
