package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CSRFTokenField is the form field carrying the CSRF token; the
// X-CSRF-Token header is accepted as an alternative.
const CSRFTokenField = "csrf_token"

var mutatingMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// CSRFGuard rejects mutating requests whose token does not match the one in
// the session claims. Must run after RequireSession.
func CSRFGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !mutatingMethods[c.Request.Method] {
			c.Next()
			return
		}

		claims := CurrentSession(c)
		if claims == nil || claims.CSRFToken == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid CSRF token, refresh the page and try again"})
			return
		}

		token := c.PostForm(CSRFTokenField)
		if token == "" {
			token = c.GetHeader("X-CSRF-Token")
		}
		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(claims.CSRFToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid CSRF token, refresh the page and try again"})
			return
		}

		c.Next()
	}
}
