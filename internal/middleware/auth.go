package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/careerlens/backend/internal/models"
	"github.com/careerlens/backend/internal/service"
)

// Context keys populated by Auth.
const (
	ContextUserID = "user_id"
	ContextClaims = "claims"
)

// TokenValidator verifies a raw bearer token and returns its claims.
type TokenValidator interface {
	Validate(token string) (*service.Claims, error)
}

// Auth validates the Authorization bearer token and stashes the verified
// identity in the request context. Requests failing verification never
// reach the handler.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := validator.Validate(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// AdminOnly rejects verified requests whose role claim is not admin. It must
// run after Auth; the ordering (verify token, then check role) is what makes
// 401 and 403 distinct.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := c.Get(ContextClaims)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			c.Abort()
			return
		}
		if claims.(*service.Claims).Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the verified user id stashed by Auth.
func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// ClaimsFrom returns the verified claims stashed by Auth.
func ClaimsFrom(c *gin.Context) (*service.Claims, bool) {
	v, exists := c.Get(ContextClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*service.Claims)
	return claims, ok
}
