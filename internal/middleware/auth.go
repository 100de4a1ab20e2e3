package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/promptgate/console/internal/service"
)

// AuthServiceInterface is the slice of AuthService the middleware needs
type AuthServiceInterface interface {
	ValidateToken(tokenString string) (*service.Claims, error)
}

// AuthMiddleware validates JWT bearer tokens and places the caller
// identity on both the gin context and the request context, where the
// service layer's IdentityProvider reads it
func AuthMiddleware(authService AuthServiceInterface, allowAnonymous bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if allowAnonymous {
				setIdentity(c, "default")
				c.Next()
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Missing authorization header",
				"code":  "UNAUTHORIZED",
			})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format. Use: Bearer <token>",
				"code":  "INVALID_AUTH_FORMAT",
			})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
				"code":  "INVALID_TOKEN",
			})
			c.Abort()
			return
		}

		setIdentity(c, claims.UserID)
		c.Set("email", claims.Email)
		c.Set("is_admin", claims.IsAdmin)

		c.Next()
	}
}

func setIdentity(c *gin.Context, userID string) {
	c.Set("user_id", userID)
	ctx := service.ContextWithIdentity(c.Request.Context(), userID)
	c.Request = c.Request.WithContext(ctx)
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("user_id")
	if !exists {
		return ""
	}
	return userID.(string)
}
