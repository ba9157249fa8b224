package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/racunko/racunko/internal/httpx"
	"github.com/racunko/racunko/internal/models"
	pdfgen "github.com/racunko/racunko/internal/pdf"
)

type PDFHandler struct {
	DB *gorm.DB
}

func NewPDFHandler(db *gorm.DB) *PDFHandler { return &PDFHandler{DB: db} }

// Invoice: POST /api/pdf/invoice/{id} – resolves the invoice aggregate and
// streams the rendered document.
func (h *PDFHandler) Invoice(w http.ResponseWriter, r *http.Request) {
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

	data, genErr := pdfgen.InvoicePDF(invoiceData(invoice))
	if genErr != nil {
		log.Error().Err(genErr).Uint("invoice_id", invoice.ID).Msg("pdf generation failed")
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "invoice-"+invoice.InvoiceNumber+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// invoiceData maps the persisted aggregate to the renderer's input.
func invoiceData(inv models.Invoice) pdfgen.InvoiceData {
	items := make([]pdfgen.ItemData, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, pdfgen.ItemData{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			VATRate:     it.VATRate,
			Total:       it.Total,
		})
	}
	return pdfgen.InvoiceData{
		InvoiceNumber: inv.InvoiceNumber,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Status:        inv.Status,
		Subtotal:      inv.Subtotal,
		VATRate:       inv.VATRate,
		VATAmount:     inv.VATAmount,
		Total:         inv.Total,
		Currency:      inv.Currency,
		Notes:         inv.Notes,
		PaymentTerms:  inv.PaymentTerms,
		Company: pdfgen.PartyData{
			Name:       inv.Company.Name,
			Address:    inv.Company.Address,
			City:       inv.Company.City,
			PostalCode: inv.Company.PostalCode,
			Country:    inv.Company.Country,
			OIB:        inv.Company.OIB,
			Email:      inv.Company.Email,
			Phone:      inv.Company.Phone,
		},
		Client: pdfgen.PartyData{
			Name:       inv.Client.Name,
			Address:    inv.Client.Address,
			City:       inv.Client.City,
			PostalCode: inv.Client.PostalCode,
			Country:    inv.Client.Country,
			OIB:        inv.Client.OIB,
			Email:      inv.Client.Email,
			Phone:      inv.Client.Phone,
		},
		Items: items,
	}
}
