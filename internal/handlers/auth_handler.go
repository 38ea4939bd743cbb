package handlers

import (
	"errors"
	"net/http"

	"photostudio-backend/internal/auth"
	"photostudio-backend/internal/logger"
	"photostudio-backend/internal/middleware"
	"photostudio-backend/internal/repository"
	"photostudio-backend/internal/services/audit"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthHandler struct {
	users        *repository.UserRepository
	sessions     *auth.SessionManager
	audit        *audit.Recorder
	cookieName   string
	cookieSecure bool
}

func NewAuthHandler(
	users *repository.UserRepository,
	sessions *auth.SessionManager,
	recorder *audit.Recorder,
	cookieName string,
	cookieSecure bool,
) *AuthHandler {
	return &AuthHandler{
		users:        users,
		sessions:     sessions,
		audit:        recorder,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
	}
}

// Login validates credentials and sets the session cookie. The CSRF token for
// subsequent mutating requests is returned in the body.
func (h *AuthHandler) Login(c *gin.Context) {
	var form struct {
		Email    string `form:"email"`
		Password string `form:"password"`
	}
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if form.Email == "" || form.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please enter both email and password"})
		return
	}

	user, err := h.users.GetByEmail(form.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}
		logger.Get().Warn("failed login attempt", zap.String("email", form.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, form.Password); err != nil {
		logger.Get().Warn("failed login attempt", zap.String("email", form.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, claims, err := h.sessions.Issue(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.SetCookie(h.cookieName, token, int(h.sessions.TTL().Seconds()), "/", "", h.cookieSecure, true)
	h.audit.Record(user.Email, "login", "user", user.ID, nil)

	c.JSON(http.StatusOK, gin.H{
		"message":    "welcome back, " + user.Name,
		"user":       user,
		"csrf_token": claims.CSRFToken,
	})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.CurrentSession(c)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.cookieSecure, true)
	if claims != nil {
		h.audit.Record(claims.Email, "logout", "user", claims.UserID, nil)
	}
	c.JSON(http.StatusOK, gin.H{"message": "you have been logged out"})
}

// Me returns the authenticated user behind the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.CurrentSession(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "please log in to access this page"})
		return
	}
	user, err := h.users.GetByID(claims.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "csrf_token": claims.CSRFToken})
}
