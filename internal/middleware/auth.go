package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"transit/internal/auth"
	"transit/internal/domain"
)

// Context keys set by Authenticate.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// Authenticate verifies the bearer token and injects the (user_id, role)
// pair into the request context. Requests without a valid token get 401.
func Authenticate(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := auth.ParseAccessToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole rejects requests whose verified role differs from the one the
// route group is scoped to.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, exists := c.Get(ContextRole)
		if !exists || got.(domain.Role) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

// UserID extracts the authenticated user id from the context. Returns 0 for
// unauthenticated requests.
func UserID(c *gin.Context) int64 {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return 0
	}
	id, _ := value.(int64)
	return id
}
