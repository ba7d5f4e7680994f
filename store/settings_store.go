package store

import (
	"context"
	"errors"

	"allure-backend/models"

	"gorm.io/gorm"
)

type SettingsStore struct {
	db *gorm.DB
}

func NewSettingsStore(db *gorm.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

func (s *SettingsStore) Get(ctx context.Context) (*models.BoutiqueSettings, error) {
	var settings models.BoutiqueSettings
	if err := s.db.WithContext(ctx).Order("created_at ASC").First(&settings).Error; err != nil {
		return nil, translate(err)
	}
	return &settings, nil
}

// Save overwrites the existing row, or creates it on first use.
func (s *SettingsStore) Save(ctx context.Context, settings *models.BoutiqueSettings) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.BoutiqueSettings
		err := tx.Order("created_at ASC").First(&current).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(settings).Error
		case err != nil:
			return err
		}
		settings.ID = current.ID
		settings.CreatedAt = current.CreatedAt
		return tx.Save(settings).Error
	})
}
