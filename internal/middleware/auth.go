package middleware

import (
	"net/http"
	"strings"

	"photostudio-backend/internal/auth"
	"photostudio-backend/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionKey is the gin context key for the validated session claims.
const SessionKey = "session"

// RequireSession validates the session cookie (or a Bearer token for API
// clients) and stores the claims in the request context.
func RequireSession(sessions *auth.SessionManager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c, cookieName)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please log in to access this page"})
			return
		}

		claims, err := sessions.Validate(token)
		if err != nil {
			logger.Get().Warn("session validation failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set(SessionKey, claims)
		c.Next()
	}
}

// CurrentSession returns the claims stored by RequireSession, or nil.
func CurrentSession(c *gin.Context) *auth.Claims {
	value, exists := c.Get(SessionKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

func tokenFromRequest(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if parts := strings.Split(header, " "); len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
