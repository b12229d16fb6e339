package rooms

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nccf-fellowship/portal-backend/internal/access"
	"github.com/nccf-fellowship/portal-backend/internal/auth"
	"github.com/nccf-fellowship/portal-backend/internal/models"
	"github.com/nccf-fellowship/portal-backend/pkg/response"
)

// CreateRoomRequest is the body for POST /rooms.
type CreateRoomRequest struct {
	Name string `json:"name" binding:"required"`
}

// AssignMemberRequest is the body for PUT /rooms/:id/members.
type AssignMemberRequest struct {
	ProfileID uuid.UUID `json:"profile_id" binding:"required"`
}

// ProfileDirectory checks that an assignment target exists.
// *profiles.Repository implements it.
type ProfileDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Handler handles room HTTP endpoints.
type Handler struct {
	repo     *Repository
	resolver *access.Resolver
	profiles ProfileDirectory
	logger   *zap.Logger
}

// NewHandler creates a rooms handler.
func NewHandler(repo *Repository, resolver *access.Resolver, profiles ProfileDirectory, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, resolver: resolver, profiles: profiles, logger: logger}
}

// List handles GET /rooms. Returns the rooms visible to the caller: all of
// them for admins, only membership rooms otherwise.
func (h *Handler) List(c *gin.Context) {
	profileID := c.MustGet(auth.ContextProfileID).(uuid.UUID)

	all, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to load rooms")
		return
	}
	grant := h.resolver.Resolve(c.Request.Context(), profileID)
	response.OK(c, gin.H{
		"rooms":    grant.VisibleRooms(all),
		"is_admin": grant.IsAdmin,
	})
}

// GetByID handles GET /rooms/:id. Visible to admins and members of the room.
func (h *Handler) GetByID(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room id")
		return
	}
	profileID := c.MustGet(auth.ContextProfileID).(uuid.UUID)

	grant := h.resolver.Resolve(c.Request.Context(), profileID)
	if !grant.CanViewRoom(roomID) {
		response.Forbidden(c, "not a member of this room")
		return
	}

	room, err := h.repo.GetByID(c.Request.Context(), roomID)
	if err != nil {
		response.Internal(c, "failed to load room")
		return
	}
	if room == nil {
		response.NotFound(c, "room not found")
		return
	}
	members, err := h.repo.ListMembers(c.Request.Context(), roomID)
	if err != nil {
		response.Internal(c, "failed to load members")
		return
	}
	response.OK(c, gin.H{"room": room, "members": members})
}

// Create handles POST /rooms (admin only).
func (h *Handler) Create(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "room name required")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 120 {
		response.BadRequest(c, "room name must be 1-120 characters")
		return
	}
	room := &models.Room{Name: name}
	if err := h.repo.Create(c.Request.Context(), room); err != nil {
		h.logger.Error("create room", zap.Error(err))
		response.Internal(c, "failed to create room")
		return
	}
	response.Created(c, room)
}

// AssignMember handles PUT /rooms/:id/members (admin only). Moves the
// profile into the room, replacing any previous assignment.
func (h *Handler) AssignMember(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room id")
		return
	}
	var req AssignMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "profile_id required")
		return
	}

	room, err := h.repo.GetByID(c.Request.Context(), roomID)
	if err != nil {
		response.Internal(c, "failed to load room")
		return
	}
	if room == nil {
		response.NotFound(c, "room not found")
		return
	}
	exists, err := h.profiles.Exists(c.Request.Context(), req.ProfileID)
	if err != nil {
		response.Internal(c, "failed to check profile")
		return
	}
	if !exists {
		response.NotFound(c, "profile not found")
		return
	}

	if err := h.repo.Assign(c.Request.Context(), req.ProfileID, roomID); err != nil {
		h.logger.Error("assign member", zap.Error(err),
			zap.String("profile_id", req.ProfileID.String()), zap.String("room_id", roomID.String()))
		response.Internal(c, "failed to assign member")
		return
	}
	response.OK(c, gin.H{"room_id": roomID, "profile_id": req.ProfileID})
}
