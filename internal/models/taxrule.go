package models

import "time"

// TaxRule is a versioned VAT rate record with an applicability window.
// Rules are reference data maintained independently of invoices: invoice
// lines copy the rate at creation time rather than referencing a rule.
type TaxRule struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"not null" json:"name"`
	Description   string     `json:"description,omitempty"`
	VATRate       float64    `gorm:"not null" json:"vatRate"`
	Category      string     `gorm:"index" json:"category,omitempty"`
	EffectiveFrom time.Time  `gorm:"not null;index" json:"effectiveFrom"`
	EffectiveTo   *time.Time `json:"effectiveTo,omitempty"`
	Source        string     `json:"source,omitempty"`
	IsActive      bool       `gorm:"not null;default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
