package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/racunko/racunko/internal/models"
)

func setupTaxDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.TaxRule{}))

	to := time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC)
	rules := []models.TaxRule{
		{Name: "Standardna stopa PDV-a", VATRate: 25, Category: "standard", EffectiveFrom: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), IsActive: true},
		{Name: "Snižena stopa PDV-a", VATRate: 13, Category: "reduced", EffectiveFrom: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), IsActive: true},
		{Name: "Povijesna stopa", VATRate: 22, Category: "standard", EffectiveFrom: time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC), EffectiveTo: &to, IsActive: true},
		{Name: "Isključena stopa", VATRate: 10, Category: "reduced", EffectiveFrom: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), IsActive: true},
	}
	require.NoError(t, db.Create(&rules).Error)
	// A false zero value would be dropped on insert in favor of the column default.
	require.NoError(t, db.Model(&models.TaxRule{}).Where("name = ?", "Isključena stopa").Update("is_active", false).Error)
	return db
}

func TestActiveRules(t *testing.T) {
	db := setupTaxDB(t)

	rules, err := ActiveRules(db)
	require.NoError(t, err)
	assert.Len(t, rules, 3)
	for _, r := range rules {
		assert.True(t, r.IsActive)
	}
	// Newest effective date first.
	assert.Equal(t, "Povijesna stopa", rules[len(rules)-1].Name)
}

func TestActiveRulesAsOf(t *testing.T) {
	db := setupTaxDB(t)

	rules, err := ActiveRulesAsOf(db, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, rules, 2)
	for _, r := range rules {
		assert.NotEqual(t, "Povijesna stopa", r.Name)
	}

	// A date inside the historical window sees only the old standard rate.
	rules, err = ActiveRulesAsOf(db, time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, rules, 1)
	assert.Equal(t, 22.0, rules[0].VATRate)
}
