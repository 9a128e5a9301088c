package middleware

import (
	"github.com/gin-gonic/gin"

	"agency-support-chat/internal/auth"
	"agency-support-chat/internal/config"
	"agency-support-chat/utils"
)

type AuthMiddleware struct {
	config *config.Config
}

func NewAuthMiddleware(cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{config: cfg}
}

// RequireAdmin guards the corpus-management endpoints with the operator's
// bearer token.
func (a *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := utils.ExtractBearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			utils.RespondWithUnauthorized(c, "Authentication token is required")
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(tokenString, a.config.JWTSecret)
		if err != nil {
			utils.RespondWithUnauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("admin_user", claims.Username)
		c.Next()
	}
}
