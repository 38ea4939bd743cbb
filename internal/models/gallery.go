package models

import "time"

// GalleryImage is the metadata row for an uploaded portfolio image. The file
// itself lives under the upload directory; soft delete keeps the file on disk
// so a restored record points at an existing file.
type GalleryImage struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Filename   string     `gorm:"size:255;not null" json:"filename"`
	Album      string     `gorm:"size:100;not null;index" json:"album"`
	Caption    string     `json:"caption"`
	Published  bool       `gorm:"not null;default:true" json:"published"`
	UploadedAt time.Time  `gorm:"autoCreateTime" json:"uploaded_at"`
	IsDeleted  bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

func (GalleryImage) TableName() string { return "gallery" }

// HeroImage is a homepage slider image. Hard-deleted together with its file.
type HeroImage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Filename     string    `gorm:"size:255;not null" json:"filename"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (HeroImage) TableName() string { return "hero_images" }
