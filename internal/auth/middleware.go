package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CookieName is the session cookie the gate reads.
const CookieName = "token"

const identityKey = "auth_email"

// RequireAuth verifies the session cookie before the handler runs.
// Missing or invalid tokens abort the request with 401; the handler is
// never reached on a failed verification.
func RequireAuth(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		claims, err := m.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		c.Set(identityKey, claims.Email)
		c.Next()
	}
}

// RequireOwner layers authorization on top of RequireAuth: the decoded
// identity must match the :email path parameter.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(identityKey) != c.Param("email") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			return
		}
		c.Next()
	}
}

// EmailFromContext returns the identity attached by RequireAuth.
func EmailFromContext(c *gin.Context) string {
	return c.GetString(identityKey)
}
