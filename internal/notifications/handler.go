package notifications

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nccf-fellowship/portal-backend/internal/auth"
	"github.com/nccf-fellowship/portal-backend/pkg/response"
)

// Handler handles notification HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a notifications handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// ListMine handles GET /notifications/mine.
func (h *Handler) ListMine(c *gin.Context) {
	profileID := c.MustGet(auth.ContextProfileID).(uuid.UUID)
	list, err := h.repo.ListByProfile(c.Request.Context(), profileID)
	if err != nil {
		response.Internal(c, "failed to load notifications")
		return
	}
	response.OK(c, list)
}
