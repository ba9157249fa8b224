package models

import "time"

// Company is the invoice issuer. Fields mirror the billing identity printed
// on invoices (OIB is the Croatian tax identification number).
type Company struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"not null;index" json:"name"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `gorm:"not null;default:'Croatia'" json:"country"`
	OIB        string `gorm:"index" json:"oib,omitempty"`
	VATNumber  string `json:"vatNumber,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Website    string `json:"website,omitempty"`
	Logo       string `json:"logo,omitempty"`

	Clients  []Client  `gorm:"foreignKey:CompanyID" json:"clients,omitempty"`
	Invoices []Invoice `gorm:"foreignKey:CompanyID" json:"invoices,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
