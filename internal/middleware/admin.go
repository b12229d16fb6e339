package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nccf-fellowship/portal-backend/internal/auth"
	"github.com/nccf-fellowship/portal-backend/pkg/response"
)

// AdminChecker reports whether a profile currently holds an admin grant.
type AdminChecker interface {
	IsAdmin(ctx context.Context, profileID uuid.UUID) (bool, error)
}

// RequireAdmin returns a middleware that allows only profiles with an admin
// grant. The grant is looked up per request; a lookup failure degrades to
// least privilege instead of failing the request pipeline.
func RequireAdmin(checker AdminChecker, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		idVal, ok := c.Get(auth.ContextProfileID)
		if !ok {
			response.Unauthorized(c, "missing user context")
			c.Abort()
			return
		}
		profileID, _ := idVal.(uuid.UUID)
		isAdmin, err := checker.IsAdmin(c.Request.Context(), profileID)
		if err != nil {
			logger.Warn("admin lookup failed, treating as non-admin",
				zap.String("profile_id", profileID.String()), zap.Error(err))
			isAdmin = false
		}
		if !isAdmin {
			response.Forbidden(c, "admin privilege required")
			c.Abort()
			return
		}
		c.Next()
	}
}
