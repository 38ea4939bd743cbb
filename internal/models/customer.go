package models

import "time"

// Customer tracks a client engagement. Balance is TotalAmount - AmountPaid;
// AmountPaid may never exceed TotalAmount.
type Customer struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null;index" json:"name"`
	Service     string     `gorm:"size:255;not null" json:"service"`
	AmountPaid  float64    `gorm:"not null;default:0" json:"amount_paid"`
	TotalAmount float64    `gorm:"not null" json:"total_amount"`
	Contact     string     `gorm:"size:255" json:"contact"`
	CreatedAt   time.Time  `json:"created_at"`
	IsDeleted   bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`

	Invoices []Invoice `gorm:"foreignKey:CustomerID" json:"-"`
}

func (Customer) TableName() string { return "customers" }

// Balance returns the outstanding amount for the customer.
func (c *Customer) Balance() float64 {
	return c.TotalAmount - c.AmountPaid
}
