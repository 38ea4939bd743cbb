package repository

import (
	"errors"

	"photostudio-backend/internal/models"

	"gorm.io/gorm"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the singleton settings row, or nil when none has been seeded.
func (r *SettingsRepository) Get() (*models.WebsiteSettings, error) {
	var row models.WebsiteSettings
	err := r.db.Order("id").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Upsert updates the singleton row or inserts it when missing.
func (r *SettingsRepository) Upsert(settings *models.WebsiteSettings) error {
	existing, err := r.Get()
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(settings).Error
	}
	settings.ID = existing.ID
	return r.db.Model(existing).Updates(map[string]interface{}{
		"site_name":     settings.SiteName,
		"hero_text":     settings.HeroText,
		"hero_subtext":  settings.HeroSubtext,
		"about_text":    settings.AboutText,
		"contact_phone": settings.ContactPhone,
		"contact_email": settings.ContactEmail,
		"address":       settings.Address,
	}).Error
}

func (r *SettingsRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.WebsiteSettings{}).Count(&count).Error
	return count, err
}
