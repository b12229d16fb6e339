package admins

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nccf-fellowship/portal-backend/pkg/response"
)

// PromoteRequest is the body for POST /admins.
type PromoteRequest struct {
	ProfileID uuid.UUID `json:"profile_id" binding:"required"`
}

// ProfileDirectory checks that a grant target exists. *profiles.Repository
// implements it.
type ProfileDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Handler handles admin grant HTTP endpoints.
type Handler struct {
	repo     *Repository
	profiles ProfileDirectory
	logger   *zap.Logger
}

// NewHandler creates an admins handler.
func NewHandler(repo *Repository, profiles ProfileDirectory, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, profiles: profiles, logger: logger}
}

// Promote handles POST /admins (admin only). Grants admin privilege to a
// profile.
func (h *Handler) Promote(c *gin.Context) {
	var req PromoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "profile_id required")
		return
	}
	exists, err := h.profiles.Exists(c.Request.Context(), req.ProfileID)
	if err != nil {
		h.logger.Error("profile lookup", zap.Error(err), zap.String("profile_id", req.ProfileID.String()))
		response.Internal(c, "failed to promote profile")
		return
	}
	if !exists {
		response.NotFound(c, "profile not found")
		return
	}
	granted, err := h.repo.Grant(c.Request.Context(), req.ProfileID)
	if err != nil {
		h.logger.Error("grant admin", zap.Error(err), zap.String("profile_id", req.ProfileID.String()))
		response.Internal(c, "failed to promote profile")
		return
	}
	if !granted {
		response.Conflict(c, "profile is already an admin")
		return
	}
	response.Created(c, gin.H{"profile_id": req.ProfileID, "role": "admin"})
}

// List handles GET /admins (admin only).
func (h *Handler) List(c *gin.Context) {
	grants, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to load admins")
		return
	}
	response.OK(c, grants)
}
