package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/racunko/racunko/internal/models"
)

// ActiveRules returns every active tax rule, newest effective date first.
// Only the isActive flag is consulted; the effective window is informational
// here, matching the behavior the invoice creation UI always had.
func ActiveRules(db *gorm.DB) ([]models.TaxRule, error) {
	var rules []models.TaxRule
	err := db.Where("is_active = ?", true).Order("effective_from desc").Find(&rules).Error
	return rules, err
}

// ActiveRulesAsOf narrows ActiveRules to rules whose effective window covers
// the given date: effectiveFrom <= asOf and effectiveTo unset or >= asOf.
func ActiveRulesAsOf(db *gorm.DB, asOf time.Time) ([]models.TaxRule, error) {
	var rules []models.TaxRule
	err := db.Where("is_active = ?", true).
		Where("effective_from <= ?", asOf).
		Where("effective_to IS NULL OR effective_to >= ?", asOf).
		Order("effective_from desc").
		Find(&rules).Error
	return rules, err
}
