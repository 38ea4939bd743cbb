package repository

import (
	"photostudio-backend/internal/models"

	"gorm.io/gorm"
)

type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) All() ([]models.Asset, error) {
	var rows []models.Asset
	err := r.db.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *AssetRepository) Create(row *models.Asset) error {
	return r.db.Create(row).Error
}

// Delete removes the asset row. Assets are a register, not a ledger, so
// deletion is hard.
func (r *AssetRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Asset{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AssetRepository) TotalValue() (float64, error) {
	var total float64
	err := r.db.Model(&models.Asset{}).
		Select("COALESCE(SUM(value), 0)").
		Scan(&total).Error
	return total, err
}
