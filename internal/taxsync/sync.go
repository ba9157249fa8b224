// Package taxsync keeps the tax rule store current with the external
// tax-data source. One rule is maintained per rate category; refreshed rates
// update the existing rule in place rather than appending versions.
package taxsync

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/racunko/racunko/internal/models"
)

type Syncer struct {
	DB      *gorm.DB
	Fetcher Fetcher
	Log     zerolog.Logger
}

func NewSyncer(db *gorm.DB, fetcher Fetcher, log zerolog.Logger) *Syncer {
	return &Syncer{DB: db, Fetcher: fetcher, Log: log}
}

// Run performs one refresh: fetch the current rates and upsert one TaxRule
// per category.
func (s *Syncer) Run(ctx context.Context) error {
	quotes, err := s.Fetcher.FetchRates(ctx)
	if err != nil {
		return fmt.Errorf("fetch rates: %w", err)
	}
	for _, q := range quotes {
		if err := s.upsert(q); err != nil {
			return fmt.Errorf("upsert %s rate: %w", q.Category, err)
		}
	}
	s.Log.Info().Int("rules", len(quotes)).Msg("tax rules refreshed")
	return nil
}

func (s *Syncer) upsert(q RateQuote) error {
	var rule models.TaxRule
	err := s.DB.Where("category = ?", q.Category).First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rule = models.TaxRule{
			Name:          q.Name,
			Description:   q.Description,
			VATRate:       q.Rate,
			Category:      q.Category,
			EffectiveFrom: q.Effective,
			Source:        q.Source,
			IsActive:      true,
		}
		return s.DB.Create(&rule).Error
	}
	if err != nil {
		return err
	}
	rule.VATRate = q.Rate
	rule.EffectiveFrom = q.Effective
	rule.Source = q.Source
	return s.DB.Save(&rule).Error
}
