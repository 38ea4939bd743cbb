package models

import "time"

// ContactMessage is an inbound inquiry from the public contact form.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Phone     string    `gorm:"size:100" json:"phone"`
	Service   string    `gorm:"size:255" json:"service"`
	Message   string    `gorm:"not null" json:"message"`
	IsRead    bool      `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (ContactMessage) TableName() string { return "contact_messages" }
