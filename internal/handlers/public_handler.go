package handlers

import (
	"errors"
	"net/http"

	service "photostudio-backend/internal/services/content"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the unauthenticated website endpoints.
type PublicHandler struct {
	service *service.Service
}

func NewPublicHandler(s *service.Service) *PublicHandler {
	return &PublicHandler{service: s}
}

// Home bundles everything the landing page needs in one response.
func (h *PublicHandler) Home(c *gin.Context) {
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
	images, err := h.service.PublishedImages("")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	packages, err := h.service.ActivePricingPackages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"settings":    settings,
		"hero_images": heroImages,
		"gallery":     images,
		"packages":    packages,
	})
}

// Gallery lists published images, optionally filtered by ?album=.
func (h *PublicHandler) Gallery(c *gin.Context) {
	album := c.Query("album")
	if album != "" && !service.ValidAlbum(album) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid album selected"})
		return
	}
	images, err := h.service.PublishedImages(album)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"images": images, "albums": service.Albums, "album": album})
}

func (h *PublicHandler) Pricing(c *gin.Context) {
	packages, err := h.service.ActivePricingPackages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": packages})
}

func (h *PublicHandler) Settings(c *gin.Context) {
	settings, err := h.service.Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// Contact accepts a contact-form submission from the public site.
func (h *PublicHandler) Contact(c *gin.Context) {
	var in service.MessageInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if _, err := h.service.AddMessage(in); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "thank you for your message, we will get back to you soon"})
}

func (h *PublicHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
