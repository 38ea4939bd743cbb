package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"photostudio-backend/internal/logger"
	service "photostudio-backend/internal/services/content"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var allowedExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true, "webp": true,
}

// heroFolder is the upload sub-directory for homepage slider images.
const heroFolder = "hero"

type ContentHandler struct {
	service   *service.Service
	uploadDir string
}

func NewContentHandler(s *service.Service, uploadDir string) *ContentHandler {
	return &ContentHandler{service: s, uploadDir: uploadDir}
}

func (h *ContentHandler) ListGallery(c *gin.Context) {
	images, err := h.service.GalleryImages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images, "albums": service.Albums})
}

// UploadGalleryImage stores the file under uploads/<album>/<uuid>.<ext> and
// records the metadata row.
func (h *ContentHandler) UploadGalleryImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no image file provided"})
		return
	}
	album := c.PostForm("album")
	if !service.ValidAlbum(album) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid album selected"})
		return
	}
	filename, ok := storedFilename(file.Filename)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file type, allowed: png, jpg, jpeg, gif, webp"})
		return
	}

	dir := filepath.Join(h.uploadDir, album)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
		return
	}
	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
		return
	}

	image, err := h.service.AddGalleryImage(filename, album, c.PostForm("caption"), actor(c))
	if err != nil {
		respondContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "image uploaded successfully", "image": image})
}

func (h *ContentHandler) ToggleGalleryImage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	image, err := h.service.ToggleGalleryPublished(id, actor(c))
	if err != nil {
		respondContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "image status updated", "image": image})
}

// DeleteGalleryImage soft-deletes the record; the file stays on disk so the
// image can be restored.
func (h *ContentHandler) DeleteGalleryImage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := h.service.DeleteGalleryImage(id, actor(c)); err != nil {
		respondContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "image deleted"})
}

func (h *ContentHandler) RestoreGalleryImage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.RestoreGalleryImage(id, actor(c)); err != nil {
		respondContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "image restored"})
}

// GetSettings returns the website settings together with the hero slider.
func (h *ContentHandler) GetSettings(c *gin.Context) {
	settings, err := h.service.Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	heroImages, err := h.service.HeroImages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings, "hero_images": heroImages})
}

func (h *ContentHandler) UpdateSettings(c *gin.Context) {
	var in service.SettingsInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	settings, err := h.service.UpdateSettings(in, actor(c))
	if err != nil {
		respondContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "website settings updated successfully", "settings": settings})
}

func (h *ContentHandler) UploadHeroImage(c *gin.Context) {
	file, err := c.FormFile("hero_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no image file provided"})
		return
	}
	filename, ok := storedFilename(file.Filename)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file type, allowed: png, jpg, jpeg, gif, webp"})
		return
	}
	displayOrder, _ := strconv.Atoi(c.PostForm("display_order"))

	dir := filepath.Join(h.uploadDir, heroFolder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
		return
	}
	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
		return
	}

	image, err := h.service.AddHeroImage(filename, displayOrder, actor(c))
	if err != nil {
		respondContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "hero image uploaded successfully", "image": image})
}

// DeleteHeroImage removes the record and the file; a missing file is
// non-fatal.
func (h *ContentHandler) DeleteHeroImage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	image, err := h.service.DeleteHeroImage(id, actor(c))
	if err != nil {
		respondContentError(c, err)
		return
	}

	path := filepath.Join(h.uploadDir, heroFolder, image.Filename)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Get().Warn("hero image file not removed", zap.String("path", path), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"message": "hero image deleted"})
}

func (h *ContentHandler) ListPricing(c *gin.Context) {
	packages, err := h.service.PricingPackages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": packages})
}

func (h *ContentHandler) GetPricing(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	pkg, err := h.service.PricingPackage(id)
	if err != nil {
		respondContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"package": pkg})
}

func (h *ContentHandler) AddPricing(c *gin.Context) {
	var in service.PricingInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	pkg, err := h.service.AddPricingPackage(in, actor(c))
	if err != nil {
		respondContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pricing package added successfully", "package": pkg})
}

func (h *ContentHandler) UpdatePricing(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.PricingInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	pkg, err := h.service.UpdatePricingPackage(id, in, actor(c))
	if err != nil {
		respondContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pricing package updated successfully", "package": pkg})
}

func (h *ContentHandler) DeletePricing(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeletePricingPackage(id, actor(c)); err != nil {
		respondContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pricing package deleted"})
}

func (h *ContentHandler) TogglePricing(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	pkg, err := h.service.TogglePricingPackage(id, actor(c))
	if err != nil {
		respondContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "package status updated", "package": pkg})
}

func (h *ContentHandler) ListMessages(c *gin.Context) {
	messages, unread, err := h.service.Messages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages, "unread_count": unread})
}

func (h *ContentHandler) MarkMessageRead(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.MarkMessageRead(id, actor(c)); err != nil {
		respondContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "message marked as read"})
}

func (h *ContentHandler) DeleteMessage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteMessage(id, actor(c)); err != nil {
		respondContentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "message deleted"})
}

// storedFilename validates the extension and returns a random on-disk name so
// uploads can never collide or traverse paths.
func storedFilename(original string) (string, bool) {
	idx := strings.LastIndex(original, ".")
	if idx < 0 {
		return "", false
	}
	ext := strings.ToLower(original[idx+1:])
	if !allowedExtensions[ext] {
		return "", false
	}
	return strings.ReplaceAll(uuid.New().String(), "-", "") + "." + ext, true
}

func respondContentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
