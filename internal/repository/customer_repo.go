package repository

import (
	"time"

	"photostudio-backend/internal/models"

	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) All() ([]models.Customer, error) {
	var rows []models.Customer
	err := r.db.Where("is_deleted = ?", false).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// Get returns a non-deleted customer by id.
func (r *CustomerRepository) Get(id uint) (*models.Customer, error) {
	var row models.Customer
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *CustomerRepository) Create(row *models.Customer) error {
	return r.db.Create(row).Error
}

func (r *CustomerRepository) UpdatePayment(id uint, amountPaid float64) error {
	result := r.db.Model(&models.Customer{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("amount_paid", amountPaid)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDelete marks the customer and all of its invoices deleted in one
// transaction.
func (r *CustomerRepository) SoftDelete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		result := tx.Model(&models.Customer{}).
			Where("id = ? AND is_deleted = ?", id, false).
			Updates(map[string]interface{}{"is_deleted": true, "deleted_at": now})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.Invoice{}).
			Where("customer_id = ? AND is_deleted = ?", id, false).
			Updates(map[string]interface{}{"is_deleted": true, "deleted_at": now}).Error
	})
}

// Restore brings back the customer row only; invoices are restored
// individually.
func (r *CustomerRepository) Restore(id uint) error {
	result := r.db.Model(&models.Customer{}).
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

// TotalPendingBalance sums total_amount - amount_paid over non-deleted rows.
func (r *CustomerRepository) TotalPendingBalance() (float64, error) {
	var total float64
	err := r.db.Model(&models.Customer{}).
		Where("is_deleted = ?", false).
		Select("COALESCE(SUM(total_amount - amount_paid), 0)").
		Scan(&total).Error
	return total, err
}
