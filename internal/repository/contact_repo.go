package repository

import (
	"photostudio-backend/internal/models"

	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) All() ([]models.ContactMessage, error) {
	var rows []models.ContactMessage
	err := r.db.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *ContactRepository) UnreadCount() (int64, error) {
	var count int64
	err := r.db.Model(&models.ContactMessage{}).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}

func (r *ContactRepository) Create(row *models.ContactMessage) error {
	return r.db.Create(row).Error
}

func (r *ContactRepository) MarkRead(id uint) error {
	result := r.db.Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ContactRepository) Delete(id uint) error {
	result := r.db.Delete(&models.ContactMessage{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
