package models

import "time"

// Asset is a fixed-asset register entry (cameras, lenses, lighting).
type Asset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Category  string    `gorm:"size:100;not null" json:"category"`
	Value     float64   `gorm:"not null" json:"value"`
	Supplier  string    `gorm:"size:255" json:"supplier"`
	CreatedAt time.Time `json:"created_at"`
}

func (Asset) TableName() string { return "assets" }
