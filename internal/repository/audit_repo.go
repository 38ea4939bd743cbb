package repository

import (
	"photostudio-backend/internal/models"

	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(entry *models.AuditLog) error {
	return r.db.Create(entry).Error
}

func (r *AuditRepository) Recent(limit int) ([]models.AuditLog, error) {
	var rows []models.AuditLog
	err := r.db.Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}
