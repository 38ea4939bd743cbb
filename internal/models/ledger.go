package models

import "time"

// Income is a dated ledger entry for money coming in. Rows are soft-deleted
// so they stay available for restore and stay out of totals.
type Income struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Date        time.Time  `gorm:"type:date;not null;index" json:"date"`
	Description string     `gorm:"not null" json:"description"`
	Category    string     `gorm:"size:100;not null" json:"category"`
	Amount      float64    `gorm:"not null" json:"amount"`
	CreatedAt   time.Time  `json:"created_at"`
	IsDeleted   bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

func (Income) TableName() string { return "income" }

// Expense mirrors Income for money going out.
type Expense struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Date        time.Time  `gorm:"type:date;not null;index" json:"date"`
	Description string     `gorm:"not null" json:"description"`
	Category    string     `gorm:"size:100;not null" json:"category"`
	Amount      float64    `gorm:"not null" json:"amount"`
	CreatedAt   time.Time  `json:"created_at"`
	IsDeleted   bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

func (Expense) TableName() string { return "expenses" }
