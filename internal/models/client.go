package models

import "time"

// Client is an invoice recipient. Every client belongs to exactly one company.
type Client struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"not null;index" json:"name"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
	OIB        string `gorm:"index" json:"oib,omitempty"`
	VATNumber  string `json:"vatNumber,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Website    string `json:"website,omitempty"`

	CompanyID uint    `gorm:"not null;index" json:"companyId"`
	Company   Company `gorm:"foreignKey:CompanyID" json:"company,omitzero"`

	Invoices []Invoice `gorm:"foreignKey:ClientID" json:"invoices,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
