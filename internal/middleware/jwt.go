package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nccf-fellowship/portal-backend/internal/auth"
	"github.com/nccf-fellowship/portal-backend/pkg/response"
)

// JWT returns a middleware that validates the bearer token, rejects revoked
// tokens, and sets the profile claims in the gin context.
func JWT(jwtService *auth.JWTService, denylist *auth.TokenDenylist, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}
		claims, err := jwtService.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		if denylist != nil {
			revoked, err := denylist.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// Denylist unavailable: reject rather than accept a
				// possibly signed-out token.
				logger.Warn("denylist check failed", zap.Error(err))
				response.Unauthorized(c, "session check failed")
				c.Abort()
				return
			}
			if revoked {
				response.Unauthorized(c, "token revoked")
				c.Abort()
				return
			}
		}
		c.Set(auth.ContextProfileID, claims.ProfileID)
		c.Set(auth.ContextEmail, claims.Email)
		c.Next()
	}
}
