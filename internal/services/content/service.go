package content

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"photostudio-backend/internal/models"
	"photostudio-backend/internal/repository"
	"photostudio-backend/internal/services/audit"
)

// ErrInvalidInput wraps every validation failure; handlers map it to 400.
var ErrInvalidInput = errors.New("invalid input")

// Albums the gallery accepts, matching the upload sub-directories.
var Albums = []string{"weddings", "kukyala", "birthdays", "baby", "other"}

var (
	iconRe  = regexp.MustCompile(`^fa-[a-z0-9-]+$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Service manages the public-facing content: gallery and hero images, website
// settings, pricing packages and contact messages.
type Service struct {
	gallery  *repository.GalleryRepository
	settings *repository.SettingsRepository
	pricing  *repository.PricingRepository
	messages *repository.ContactRepository
	audit    *audit.Recorder
}

func NewService(
	gallery *repository.GalleryRepository,
	settings *repository.SettingsRepository,
	pricing *repository.PricingRepository,
	messages *repository.ContactRepository,
	recorder *audit.Recorder,
) *Service {
	return &Service{
		gallery:  gallery,
		settings: settings,
		pricing:  pricing,
		messages: messages,
		audit:    recorder,
	}
}

// SettingsInput updates the singleton website settings row.
type SettingsInput struct {
	SiteName     string `form:"site_name"`
	HeroText     string `form:"hero_text"`
	HeroSubtext  string `form:"hero_subtext"`
	AboutText    string `form:"about_text"`
	ContactPhone string `form:"contact_phone"`
	ContactEmail string `form:"contact_email"`
	Address      string `form:"address"`
}

// PricingInput creates or updates a pricing package.
type PricingInput struct {
	Name         string `form:"name"`
	Description  string `form:"description"`
	Price        int    `form:"price"`
	PriceLabel   string `form:"price_label"`
	Icon         string `form:"icon"`
	Features     string `form:"features"`
	IsFeatured   bool   `form:"is_featured"`
	DisplayOrder int    `form:"display_order"`
}

// MessageInput is a public contact-form submission.
type MessageInput struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Phone   string `form:"phone"`
	Service string `form:"service"`
	Message string `form:"message"`
}

// ValidAlbum reports whether album is one of the known gallery albums.
func ValidAlbum(album string) bool {
	for _, a := range Albums {
		if a == album {
			return true
		}
	}
	return false
}

func (s *Service) GalleryImages() ([]models.GalleryImage, error) {
	return s.gallery.All()
}

func (s *Service) PublishedImages(album string) ([]models.GalleryImage, error) {
	if album != "" && !ValidAlbum(album) {
		return nil, fmt.Errorf("%w: invalid album selected", ErrInvalidInput)
	}
	return s.gallery.Published(album)
}

// AddGalleryImage records an uploaded file. The handler owns the file write;
// this only persists the metadata.
func (s *Service) AddGalleryImage(filename, album, caption, actor string) (*models.GalleryImage, error) {
	if !ValidAlbum(album) {
		return nil, fmt.Errorf("%w: invalid album selected", ErrInvalidInput)
	}
	row := &models.GalleryImage{
		Filename:  filename,
		Album:     album,
		Caption:   strings.TrimSpace(caption),
		Published: true,
	}
	if err := s.gallery.Create(row); err != nil {
		return nil, err
	}
	s.audit.Record(actor, "create", "gallery_image", row.ID, map[string]interface{}{
		"filename": filename, "album": album,
	})
	return row, nil
}

func (s *Service) ToggleGalleryPublished(id uint, actor string) (*models.GalleryImage, error) {
	row, err := s.gallery.TogglePublished(id)
	if err != nil {
		return nil, err
	}
	s.audit.Record(actor, "update", "gallery_image", id, map[string]interface{}{
		"published": row.Published,
	})
	return row, nil
}

// DeleteGalleryImage soft-deletes the record. The file stays on disk so a
// later restore still points at an existing file.
func (s *Service) DeleteGalleryImage(id uint, actor string) (*models.GalleryImage, error) {
	row, err := s.gallery.SoftDelete(id)
	if err != nil {
		return nil, err
	}
	s.audit.Record(actor, "delete", "gallery_image", id, nil)
	return row, nil
}

func (s *Service) RestoreGalleryImage(id uint, actor string) error {
	if err := s.gallery.Restore(id); err != nil {
		return err
	}
	s.audit.Record(actor, "restore", "gallery_image", id, nil)
	return nil
}

func (s *Service) HeroImages() ([]models.HeroImage, error) {
	return s.gallery.AllHeroImages()
}

func (s *Service) AddHeroImage(filename string, displayOrder int, actor string) (*models.HeroImage, error) {
	if displayOrder < 0 {
		return nil, fmt.Errorf("%w: display order must be a non-negative number", ErrInvalidInput)
	}
	row := &models.HeroImage{Filename: filename, DisplayOrder: displayOrder}
	if err := s.gallery.CreateHeroImage(row); err != nil {
		return nil, err
	}
	s.audit.Record(actor, "create", "hero_image", row.ID, map[string]interface{}{
		"filename": filename,
	})
	return row, nil
}

// DeleteHeroImage removes the row and hands the filename back so the handler
// can unlink the file.
func (s *Service) DeleteHeroImage(id uint, actor string) (*models.HeroImage, error) {
	row, err := s.gallery.DeleteHeroImage(id)
	if err != nil {
		return nil, err
	}
	s.audit.Record(actor, "delete", "hero_image", id, nil)
	return row, nil
}

// Settings returns the singleton settings row, seeding the default when the
// table is empty.
func (s *Service) Settings() (*models.WebsiteSettings, error) {
	row, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	if row == nil {
		if err := s.seedSettings(); err != nil {
			return nil, err
		}
		return s.settings.Get()
	}
	return row, nil
}

func (s *Service) UpdateSettings(in SettingsInput, actor string) (*models.WebsiteSettings, error) {
	siteName := strings.TrimSpace(in.SiteName)
	if siteName == "" {
		return nil, fmt.Errorf("%w: site name is required", ErrInvalidInput)
	}
	contactEmail := strings.TrimSpace(in.ContactEmail)
	if contactEmail != "" && !emailRe.MatchString(contactEmail) {
		return nil, fmt.Errorf("%w: please provide a valid contact email address", ErrInvalidInput)
	}

	row := &models.WebsiteSettings{
		SiteName:     siteName,
		HeroText:     strings.TrimSpace(in.HeroText),
		HeroSubtext:  strings.TrimSpace(in.HeroSubtext),
		AboutText:    strings.TrimSpace(in.AboutText),
		ContactPhone: strings.TrimSpace(in.ContactPhone),
		ContactEmail: contactEmail,
		Address:      strings.TrimSpace(in.Address),
	}
	if err := s.settings.Upsert(row); err != nil {
		return nil, err
	}
	s.audit.Record(actor, "update", "website_settings", row.ID, nil)
	return row, nil
}

func (s *Service) PricingPackages() ([]models.PricingPackage, error) {
	return s.pricing.All()
}

func (s *Service) ActivePricingPackages() ([]models.PricingPackage, error) {
	return s.pricing.Active()
}

func (s *Service) PricingPackage(id uint) (*models.PricingPackage, error) {
	return s.pricing.Get(id)
}

func (s *Service) AddPricingPackage(in PricingInput, actor string) (*models.PricingPackage, error) {
	row, err := pricingFromInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.pricing.Create(row); err != nil {
		return nil, err
	}
	s.audit.Record(actor, "create", "pricing_package", row.ID, map[string]interface{}{
		"name": row.Name, "price": row.Price,
	})
	return row, nil
}

func (s *Service) UpdatePricingPackage(id uint, in PricingInput, actor string) (*models.PricingPackage, error) {
	existing, err := s.pricing.Get(id)
	if err != nil {
		return nil, err
	}
	row, err := pricingFromInput(in)
	if err != nil {
		return nil, err
	}
	row.ID = existing.ID
	if err := s.pricing.Update(row); err != nil {
		return nil, err
	}
	s.audit.Record(actor, "update", "pricing_package", id, map[string]interface{}{
		"name": row.Name, "price": row.Price,
	})
	return row, nil
}

func (s *Service) DeletePricingPackage(id uint, actor string) error {
	if err := s.pricing.Delete(id); err != nil {
		return err
	}
	s.audit.Record(actor, "delete", "pricing_package", id, nil)
	return nil
}

func (s *Service) TogglePricingPackage(id uint, actor string) (*models.PricingPackage, error) {
	row, err := s.pricing.ToggleActive(id)
	if err != nil {
		return nil, err
	}
	s.audit.Record(actor, "update", "pricing_package", id, map[string]interface{}{
		"is_active": row.IsActive,
	})
	return row, nil
}

func (s *Service) Messages() ([]models.ContactMessage, int64, error) {
	rows, err := s.messages.All()
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.messages.UnreadCount()
	if err != nil {
		return nil, 0, err
	}
	return rows, unread, nil
}

// AddMessage stores a contact-form inquiry. Phone and service are optional.
func (s *Service) AddMessage(in MessageInput) (*models.ContactMessage, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	message := strings.TrimSpace(in.Message)
	if name == "" || email == "" || message == "" {
		return nil, fmt.Errorf("%w: please fill in all required fields", ErrInvalidInput)
	}

	row := &models.ContactMessage{
		Name:    name,
		Email:   email,
		Phone:   strings.TrimSpace(in.Phone),
		Service: strings.TrimSpace(in.Service),
		Message: message,
	}
	if err := s.messages.Create(row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) MarkMessageRead(id uint, actor string) error {
	if err := s.messages.MarkRead(id); err != nil {
		return err
	}
	s.audit.Record(actor, "update", "contact_message", id, map[string]interface{}{
		"is_read": true,
	})
	return nil
}

func (s *Service) DeleteMessage(id uint, actor string) error {
	if err := s.messages.Delete(id); err != nil {
		return err
	}
	s.audit.Record(actor, "delete", "contact_message", id, nil)
	return nil
}

// EnsureDefaults seeds the settings singleton and the default pricing
// packages when the tables are empty. Called once at startup.
func (s *Service) EnsureDefaults() error {
	count, err := s.settings.Count()
	if err != nil {
		return err
	}
	if count == 0 {
		if err := s.seedSettings(); err != nil {
			return err
		}
	}

	pricingCount, err := s.pricing.Count()
	if err != nil {
		return err
	}
	if pricingCount == 0 {
		if err := s.seedPricing(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) seedSettings() error {
	return s.settings.Upsert(&models.WebsiteSettings{
		SiteName:     "Benjo Moments",
		HeroText:     "Capturing Your Precious Moments",
		HeroSubtext:  "Professional Photography for Weddings, Events & Portraits",
		AboutText:    "Benjo Moments is a professional photography studio dedicated to capturing life's most precious moments. With years of experience in wedding, portrait, and event photography, we bring creativity and passion to every shoot.",
		ContactPhone: "0759989861 / 0778728089",
		ContactEmail: "info@benjomoments.com",
		Address:      "Carol House, Plot 40, next to Bible House, along Bombo Road, Wandegeya",
	})
}

func (s *Service) seedPricing() error {
	defaults := []models.PricingPackage{
		{
			Name:         "Basic",
			Description:  "Perfect for portraits & small events",
			Price:        300000,
			PriceLabel:   "/session",
			Icon:         "fa-camera",
			Features:     "2 Hours Coverage|50+ Edited Photos|Digital Download|1 Location|Basic Retouching",
			DisplayOrder: 1,
			IsActive:     true,
		},
		{
			Name:         "Premium",
			Description:  "Best for weddings & kukyala",
			Price:        1500000,
			PriceLabel:   "/event",
			Icon:         "fa-heart",
			Features:     "Full Day Coverage|300+ Edited Photos|Photo Album Included|Multiple Locations|2 Photographers|Premium Retouching",
			IsFeatured:   true,
			DisplayOrder: 2,
			IsActive:     true,
		},
		{
			Name:         "Full Package",
			Description:  "Photo + Video combo deal",
			Price:        2500000,
			PriceLabel:   "/event",
			Icon:         "fa-video",
			Features:     "Photography + Videography|500+ Photos & Full Video|Highlight Reel|Premium Album + USB|Same Day Edit Preview|Drone Coverage",
			DisplayOrder: 3,
			IsActive:     true,
		},
	}
	for i := range defaults {
		if err := s.pricing.Create(&defaults[i]); err != nil {
			return err
		}
	}
	return nil
}

func pricingFromInput(in PricingInput) (*models.PricingPackage, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: package name is required", ErrInvalidInput)
	}
	if in.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be a positive number", ErrInvalidInput)
	}
	if in.DisplayOrder < 0 {
		return nil, fmt.Errorf("%w: display order must be a non-negative number", ErrInvalidInput)
	}
	icon := in.Icon
	if icon == "" {
		icon = "fa-camera"
	}
	if !iconRe.MatchString(icon) {
		return nil, fmt.Errorf("%w: icon must be a valid Font Awesome class (example: fa-camera)", ErrInvalidInput)
	}
	priceLabel := in.PriceLabel
	if priceLabel == "" {
		priceLabel = "/session"
	}

	// Drop blank feature segments.
	var features []string
	for _, item := range strings.Split(in.Features, "|") {
		if item = strings.TrimSpace(item); item != "" {
			features = append(features, item)
		}
	}

	return &models.PricingPackage{
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		Price:        in.Price,
		PriceLabel:   priceLabel,
		Icon:         icon,
		Features:     strings.Join(features, "|"),
		IsFeatured:   in.IsFeatured,
		DisplayOrder: in.DisplayOrder,
		IsActive:     true,
	}, nil
}
