package repository

import (
	"time"

	"photostudio-backend/internal/models"

	"gorm.io/gorm"
)

// GalleryRepository covers gallery images and homepage hero images.
type GalleryRepository struct {
	db *gorm.DB
}

func NewGalleryRepository(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

func (r *GalleryRepository) All() ([]models.GalleryImage, error) {
	var rows []models.GalleryImage
	err := r.db.Where("is_deleted = ?", false).Order("uploaded_at DESC").Find(&rows).Error
	return rows, err
}

// Published returns published, non-deleted images, optionally filtered by
// album.
func (r *GalleryRepository) Published(album string) ([]models.GalleryImage, error) {
	query := r.db.Where("published = ? AND is_deleted = ?", true, false)
	if album != "" {
		query = query.Where("album = ?", album)
	}
	var rows []models.GalleryImage
	err := query.Order("uploaded_at DESC").Find(&rows).Error
	return rows, err
}

func (r *GalleryRepository) Create(row *models.GalleryImage) error {
	return r.db.Create(row).Error
}

func (r *GalleryRepository) Get(id uint) (*models.GalleryImage, error) {
	var row models.GalleryImage
	if err := r.db.First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GalleryRepository) TogglePublished(id uint) (*models.GalleryImage, error) {
	row, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	row.Published = !row.Published
	if err := r.db.Model(row).Update("published", row.Published).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// SoftDelete marks the record deleted and returns it so the caller knows the
// filename/album. The file stays on disk for restore.
func (r *GalleryRepository) SoftDelete(id uint) (*models.GalleryImage, error) {
	row, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if row.IsDeleted {
		return nil, gorm.ErrRecordNotFound
	}
	now := time.Now()
	err = r.db.Model(row).
		Updates(map[string]interface{}{"is_deleted": true, "deleted_at": now}).Error
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *GalleryRepository) Restore(id uint) error {
	result := r.db.Model(&models.GalleryImage{}).
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

func (r *GalleryRepository) AllHeroImages() ([]models.HeroImage, error) {
	var rows []models.HeroImage
	err := r.db.Order("display_order, id").Find(&rows).Error
	return rows, err
}

func (r *GalleryRepository) CreateHeroImage(row *models.HeroImage) error {
	return r.db.Create(row).Error
}

// DeleteHeroImage removes the row and returns it so the caller can unlink the
// file.
func (r *GalleryRepository) DeleteHeroImage(id uint) (*models.HeroImage, error) {
	var row models.HeroImage
	if err := r.db.First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := r.db.Delete(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
