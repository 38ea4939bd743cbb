package repository

import (
	"time"

	"photostudio-backend/internal/models"

	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// InvoiceListing is an invoice row joined with its customer's name.
type InvoiceListing struct {
	models.Invoice
	CustomerName string `json:"customer_name"`
}

func (r *InvoiceRepository) All() ([]InvoiceListing, error) {
	var rows []InvoiceListing
	err := r.db.Model(&models.Invoice{}).
		Select("invoices.*, customers.name AS customer_name").
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Where("invoices.is_deleted = ?", false).
		Order("invoices.date DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *InvoiceRepository) GetByID(id uint) (*models.Invoice, error) {
	var row models.Invoice
	if err := r.db.First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts the invoice; a duplicate invoice_number surfaces as
// gorm.ErrDuplicatedKey (TranslateError is on).
func (r *InvoiceRepository) Create(row *models.Invoice) error {
	return r.db.Create(row).Error
}

func (r *InvoiceRepository) NumberExists(number string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Invoice{}).
		Where("invoice_number = ?", number).
		Count(&count).Error
	return count > 0, err
}

func (r *InvoiceRepository) UpdateStatus(id uint, status string) error {
	result := r.db.Model(&models.Invoice{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *InvoiceRepository) SoftDelete(id uint) error {
	result := r.db.Model(&models.Invoice{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{"is_deleted": true, "deleted_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *InvoiceRepository) Restore(id uint) error {
	result := r.db.Model(&models.Invoice{}).
		Where("id = ? AND is_deleted = ?", id, true).
		Updates(map[string]interface{}{"is_deleted": false, "deleted_at": nil})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
