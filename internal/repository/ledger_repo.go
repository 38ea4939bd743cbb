package repository

import (
	"sort"
	"time"

	"photostudio-backend/internal/models"

	"gorm.io/gorm"
)

// LedgerRepository covers the income and expense tables. The two tables are
// twins; soft-deleted rows are excluded from every listing and total.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Transaction is a unified view over income and expense rows, used by the
// dashboard recent-activity feed.
type Transaction struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"` // "income" or "expense"
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
}

func (r *LedgerRepository) AllIncome() ([]models.Income, error) {
	var rows []models.Income
	err := r.db.Where("is_deleted = ?", false).Order("date DESC").Find(&rows).Error
	return rows, err
}

func (r *LedgerRepository) CreateIncome(row *models.Income) error {
	return r.db.Create(row).Error
}

func (r *LedgerRepository) GetIncome(id uint) (*models.Income, error) {
	var row models.Income
	if err := r.db.First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *LedgerRepository) SoftDeleteIncome(id uint) error {
	return r.softDelete(&models.Income{}, id)
}

func (r *LedgerRepository) RestoreIncome(id uint) error {
	return r.restore(&models.Income{}, id)
}

func (r *LedgerRepository) TotalIncome() (float64, error) {
	return r.sumAmount(&models.Income{})
}

func (r *LedgerRepository) IncomeBetween(start, end time.Time) ([]models.Income, error) {
	var rows []models.Income
	err := r.db.
		Where("is_deleted = ? AND date BETWEEN ? AND ?", false, start, end).
		Order("date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *LedgerRepository) AllExpenses() ([]models.Expense, error) {
	var rows []models.Expense
	err := r.db.Where("is_deleted = ?", false).Order("date DESC").Find(&rows).Error
	return rows, err
}

func (r *LedgerRepository) CreateExpense(row *models.Expense) error {
	return r.db.Create(row).Error
}

func (r *LedgerRepository) GetExpense(id uint) (*models.Expense, error) {
	var row models.Expense
	if err := r.db.First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *LedgerRepository) SoftDeleteExpense(id uint) error {
	return r.softDelete(&models.Expense{}, id)
}

func (r *LedgerRepository) RestoreExpense(id uint) error {
	return r.restore(&models.Expense{}, id)
}

func (r *LedgerRepository) TotalExpenses() (float64, error) {
	return r.sumAmount(&models.Expense{})
}

func (r *LedgerRepository) ExpensesBetween(start, end time.Time) ([]models.Expense, error) {
	var rows []models.Expense
	err := r.db.
		Where("is_deleted = ? AND date BETWEEN ? AND ?", false, start, end).
		Order("date DESC").
		Find(&rows).Error
	return rows, err
}

// RecentTransactions merges the newest income and expense rows, sorted by
// date descending, limited.
func (r *LedgerRepository) RecentTransactions(limit int) ([]Transaction, error) {
	var income []models.Income
	if err := r.db.Where("is_deleted = ?", false).Order("date DESC").Limit(limit).Find(&income).Error; err != nil {
		return nil, err
	}
	var expenses []models.Expense
	if err := r.db.Where("is_deleted = ?", false).Order("date DESC").Limit(limit).Find(&expenses).Error; err != nil {
		return nil, err
	}

	txs := make([]Transaction, 0, len(income)+len(expenses))
	for _, row := range income {
		txs = append(txs, Transaction{
			ID: row.ID, Type: "income", Date: row.Date,
			Description: row.Description, Category: row.Category, Amount: row.Amount,
		})
	}
	for _, row := range expenses {
		txs = append(txs, Transaction{
			ID: row.ID, Type: "expense", Date: row.Date,
			Description: row.Description, Category: row.Category, Amount: row.Amount,
		})
	}

	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.After(txs[j].Date) })
	if len(txs) > limit {
		txs = txs[:limit]
	}
	return txs, nil
}

func (r *LedgerRepository) softDelete(model interface{}, id uint) error {
	result := r.db.Model(model).
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

func (r *LedgerRepository) restore(model interface{}, id uint) error {
	result := r.db.Model(model).
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

func (r *LedgerRepository) sumAmount(model interface{}) (float64, error) {
	var total float64
	err := r.db.Model(model).
		Where("is_deleted = ?", false).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
