package models

import "time"

// PricingPackage is a public service tier. Features is a pipe-separated list
// (e.g. "2 Hours Coverage|50+ Edited Photos").
type PricingPackage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Description  string    `json:"description"`
	Price        int       `gorm:"not null" json:"price"`
	PriceLabel   string    `gorm:"size:50;not null;default:/session" json:"price_label"`
	Icon         string    `gorm:"size:100;not null;default:fa-camera" json:"icon"`
	Features     string    `json:"features"`
	IsFeatured   bool      `gorm:"not null;default:false" json:"is_featured"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func (PricingPackage) TableName() string { return "pricing_packages" }
