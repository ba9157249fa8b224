package handlers

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/racunko/racunko/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Company{}, &models.Client{}, &models.Invoice{}, &models.InvoiceItem{}, &models.TaxRule{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedParties inserts one company and one client owned by it.
func seedParties(t *testing.T, db *gorm.DB) (models.Company, models.Client) {
	t.Helper()
	company := models.Company{Name: "Računko d.o.o.", City: "Zagreb", Country: "Croatia", OIB: "12345678901"}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("company: %v", err)
	}
	client := models.Client{Name: "Klijent d.o.o.", City: "Split", OIB: "98765432109", CompanyID: company.ID}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	return company, client
}

// seedInvoice inserts an invoice with two lines, totals precomputed.
func seedInvoice(t *testing.T, db *gorm.DB, company models.Company, client models.Client, number string) models.Invoice {
	t.Helper()
	inv := models.Invoice{
		InvoiceNumber: number,
		CompanyID:     company.ID,
		ClientID:      client.ID,
		IssueDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:        models.StatusDraft,
		Subtotal:      250,
		VATRate:       25,
		VATAmount:     56.5,
		Total:         306.5,
		Currency:      "EUR",
	}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("invoice: %v", err)
	}
	items := []models.InvoiceItem{
		{InvoiceID: inv.ID, Description: "Usluga A", Quantity: 2, UnitPrice: 100, VATRate: 25, Total: 200},
		{InvoiceID: inv.ID, Description: "Usluga B", Quantity: 1, UnitPrice: 50, VATRate: 13, Total: 50},
	}
	if err := db.Create(&items).Error; err != nil {
		t.Fatalf("items: %v", err)
	}
	return inv
}
