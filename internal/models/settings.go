package models

import "time"

// WebsiteSettings is a singleton content row; updates upsert it.
type WebsiteSettings struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SiteName     string    `gorm:"size:255;not null" json:"site_name"`
	HeroText     string    `json:"hero_text"`
	HeroSubtext  string    `json:"hero_subtext"`
	AboutText    string    `json:"about_text"`
	ContactPhone string    `gorm:"size:100" json:"contact_phone"`
	ContactEmail string    `gorm:"size:255" json:"contact_email"`
	Address      string    `json:"address"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (WebsiteSettings) TableName() string { return "website_settings" }
