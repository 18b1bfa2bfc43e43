package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/harnesslab/wiremes/internal/auth/jwt"
	"github.com/harnesslab/wiremes/internal/common/cnst"
	"github.com/harnesslab/wiremes/internal/i18n"
)

// JWTAuthMiddleware creates a middleware that validates JWT tokens
func JWTAuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get the Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			i18n.RespondWithError(c, i18n.ErrUnauthorized)
			c.Abort()
			return
		}

		// Check if the header has the Bearer prefix
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			i18n.RespondWithError(c, i18n.ErrUnauthorized)
			c.Abort()
			return
		}

		// Validate the token
		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			i18n.RespondWithError(c, i18n.ErrUnauthorized)
			c.Abort()
			return
		}

		// Add the claims to the context
		c.Set("claims", claims)
		c.Next()
	}
}

// AdminOnlyMiddleware rejects requests whose token does not carry the
// administrator role code. Must run after JWTAuthMiddleware.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil || claims.RoleCode != cnst.AdminRoleCode {
			i18n.RespondWithError(c, i18n.ErrAdminRequired)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ClaimsFromContext returns the validated claims set by JWTAuthMiddleware,
// or nil when the request is unauthenticated.
func ClaimsFromContext(c *gin.Context) *jwt.Claims {
	v, exists := c.Get("claims")
	if !exists {
		return nil
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		return nil
	}
	return claims
}
