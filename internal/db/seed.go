package db

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/racunko/racunko/internal/models"
)

// Seed inserts the default company, a sample client, and the baseline
// Croatian tax rules. It is idempotent: existing rows are left untouched.
func Seed(db *gorm.DB) error {
	var company models.Company
	err := db.Where("name = ?", "Računko Company").First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		company = models.Company{
			Name:      "Računko Company",
			Address:   "Zagreb, Croatia",
			Email:     "info@racunko.com",
			OIB:       "12345678901",
			VATNumber: "HR12345678901",
		}
		if err = db.Create(&company).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	var client models.Client
	err = db.Where("name = ? AND company_id = ?", "Sample Client", company.ID).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		client = models.Client{
			Name:      "Sample Client",
			Address:   "Zagreb, Croatia",
			Email:     "client@example.com",
			OIB:       "98765432109",
			CompanyID: company.ID,
		}
		if err = db.Create(&client).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	effective := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	baseRules := []models.TaxRule{
		{Name: "Standard VAT Rate", Description: "Standard VAT rate for Croatia", VATRate: 25.0, Category: "standard", EffectiveFrom: effective, Source: "Porezna uprava", IsActive: true},
		{Name: "Reduced VAT Rate", Description: "Reduced VAT rate for Croatia", VATRate: 13.0, Category: "reduced", EffectiveFrom: effective, Source: "Porezna uprava", IsActive: true},
	}
	for _, rule := range baseRules {
		var existing models.TaxRule
		err = db.Where("category = ?", rule.Category).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err = db.Create(&rule).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}
