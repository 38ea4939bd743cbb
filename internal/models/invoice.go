package models

import "time"

// Invoice statuses. Lowercase is canonical.
const (
	InvoiceStatusPending   = "pending"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

type Invoice struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	InvoiceNumber string     `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`
	CustomerID    uint       `gorm:"not null;index" json:"customer_id"`
	Date          time.Time  `gorm:"type:date;not null;index" json:"date"`
	Amount        float64    `gorm:"not null" json:"amount"`
	Status        string     `gorm:"size:50;not null;default:pending;index" json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	IsDeleted     bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

func (Invoice) TableName() string { return "invoices" }
