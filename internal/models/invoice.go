package models

import "time"

// Invoice statuses. No transition graph is enforced: any status may be set
// at any time via update, matching the permissive lifecycle of the app.
const (
	StatusDraft     = "DRAFT"
	StatusSent      = "SENT"
	StatusPaid      = "PAID"
	StatusOverdue   = "OVERDUE"
	StatusCancelled = "CANCELLED"
)

// Statuses lists every settable invoice status.
var Statuses = []string{StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled}

// Invoice is the invoice aggregate root. Money fields are plain float64;
// amounts are recomputed from the items by services.InvoiceTotals whenever
// items are written, so Total == Subtotal + VATAmount always holds for
// server-written rows. The header VATRate is informational: per-item rates
// are authoritative for the VAT amount.
type Invoice struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Invoice numbers are unique per issuing company, not globally.
	InvoiceNumber string     `gorm:"not null;index:idx_company_invoice_number,unique,priority:2" json:"invoiceNumber"`
	CompanyID     uint       `gorm:"not null;index:idx_company_invoice_number,priority:1" json:"companyId"`
	IssueDate     time.Time  `gorm:"not null" json:"issueDate"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	Status        string     `gorm:"not null;default:'DRAFT'" json:"status"`
	Subtotal      float64    `gorm:"not null" json:"subtotal"`
	VATRate       float64    `gorm:"not null;default:25" json:"vatRate"`
	VATAmount     float64    `gorm:"not null" json:"vatAmount"`
	Total         float64    `gorm:"not null" json:"total"`
	Currency      string     `gorm:"not null;default:'EUR'" json:"currency"`
	Notes         string     `json:"notes,omitempty"`
	PaymentTerms  string     `json:"paymentTerms,omitempty"`
	ClientID      uint       `gorm:"not null;index" json:"clientId"`

	Company Company       `gorm:"foreignKey:CompanyID" json:"company,omitzero"`
	Client  Client        `gorm:"foreignKey:ClientID" json:"client,omitzero"`
	Items   []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InvoiceItem is one billable line. Items carry their own VAT rate (defaulted
// to the standard rate when omitted) and are replaced wholesale on invoice
// update; ordering is creation order (ascending id).
type InvoiceItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	InvoiceID   uint    `gorm:"not null;index" json:"invoiceId"`
	Description string  `gorm:"not null" json:"description"`
	Quantity    float64 `gorm:"not null" json:"quantity"`
	UnitPrice   float64 `gorm:"not null" json:"unitPrice"`
	Total       float64 `gorm:"not null" json:"total"`
	VATRate     float64 `gorm:"not null;default:25" json:"vatRate"`
}
