package repository

import (
	"photostudio-backend/internal/models"

	"gorm.io/gorm"
)

type PricingRepository struct {
	db *gorm.DB
}

func NewPricingRepository(db *gorm.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

func (r *PricingRepository) All() ([]models.PricingPackage, error) {
	var rows []models.PricingPackage
	err := r.db.Order("display_order, id").Find(&rows).Error
	return rows, err
}

func (r *PricingRepository) Active() ([]models.PricingPackage, error) {
	var rows []models.PricingPackage
	err := r.db.Where("is_active = ?", true).Order("display_order, id").Find(&rows).Error
	return rows, err
}

func (r *PricingRepository) Get(id uint) (*models.PricingPackage, error) {
	var row models.PricingPackage
	if err := r.db.First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *PricingRepository) Create(row *models.PricingPackage) error {
	return r.db.Create(row).Error
}

func (r *PricingRepository) Update(row *models.PricingPackage) error {
	return r.db.Model(row).Updates(map[string]interface{}{
		"name":          row.Name,
		"description":   row.Description,
		"price":         row.Price,
		"price_label":   row.PriceLabel,
		"icon":          row.Icon,
		"features":      row.Features,
		"is_featured":   row.IsFeatured,
		"display_order": row.DisplayOrder,
	}).Error
}

func (r *PricingRepository) Delete(id uint) error {
	result := r.db.Delete(&models.PricingPackage{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PricingRepository) ToggleActive(id uint) (*models.PricingPackage, error) {
	row, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	row.IsActive = !row.IsActive
	if err := r.db.Model(row).Update("is_active", row.IsActive).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *PricingRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.PricingPackage{}).Count(&count).Error
	return count, err
}
