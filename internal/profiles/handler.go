package profiles

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nccf-fellowship/portal-backend/internal/auth"
	"github.com/nccf-fellowship/portal-backend/pkg/response"
	"github.com/nccf-fellowship/portal-backend/pkg/storage"
)

// UpdateProfileRequest is the body for PUT /profiles/me.
type UpdateProfileRequest struct {
	Name      string `json:"name" binding:"required"`
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Gender    string `json:"gender"`
	Batch     string `json:"batch"`
	StateCode string `json:"state_code"`
	Location  string `json:"location"`
	Phone     string `json:"phone"`
}

// Handler handles profile HTTP endpoints.
type Handler struct {
	repo        *Repository
	s3          *storage.S3
	maxFileSize int64
	logger      *zap.Logger
}

// NewHandler creates a profiles handler.
func NewHandler(repo *Repository, s3 *storage.S3, maxFileSizeMB int, logger *zap.Logger) *Handler {
	return &Handler{
		repo:        repo,
		s3:          s3,
		maxFileSize: int64(maxFileSizeMB) * 1024 * 1024,
		logger:      logger,
	}
}

// Me handles GET /profiles/me.
func (h *Handler) Me(c *gin.Context) {
	profileID := c.MustGet(auth.ContextProfileID).(uuid.UUID)
	profile, err := h.repo.GetByID(c.Request.Context(), profileID)
	if err != nil {
		response.NotFound(c, "profile not found")
		return
	}
	response.OK(c, profile)
}

// UpdateMe handles PUT /profiles/me.
func (h *Handler) UpdateMe(c *gin.Context) {
	profileID := c.MustGet(auth.ContextProfileID).(uuid.UUID)
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		response.BadRequest(c, "name required")
		return
	}
	profile, err := h.repo.Update(c.Request.Context(), profileID, UpdateParams{
		Name:      name,
		Username:  strings.TrimSpace(req.Username),
		Bio:       strings.TrimSpace(req.Bio),
		Gender:    strings.TrimSpace(req.Gender),
		Batch:     strings.TrimSpace(req.Batch),
		StateCode: strings.TrimSpace(req.StateCode),
		Location:  strings.TrimSpace(req.Location),
		Phone:     strings.TrimSpace(req.Phone),
	})
	if err != nil {
		h.logger.Error("update profile", zap.Error(err), zap.String("profile_id", profileID.String()))
		response.Internal(c, "failed to update profile")
		return
	}
	if profile == nil {
		response.NotFound(c, "profile not found")
		return
	}
	response.OK(c, profile)
}

// UploadAvatar handles POST /profiles/me/avatar (multipart, field "file").
// The image is stored first; the profile row then points at its URL.
func (h *Handler) UploadAvatar(c *gin.Context) {
	if h.s3 == nil {
		response.ServiceUnavailable(c, "file storage not configured")
		return
	}
	profileID := c.MustGet(auth.ContextProfileID).(uuid.UUID)

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file (form field: file)")
		return
	}
	if file.Size > h.maxFileSize {
		response.BadRequest(c, "file too large")
		return
	}
	if !storage.ValidAvatarFileType(file.Header.Get("Content-Type"), file.Filename) {
		response.BadRequest(c, "avatar must be an image")
		return
	}

	rc, err := file.Open()
	if err != nil {
		response.Internal(c, "failed to read file")
		return
	}
	defer rc.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = storage.ContentTypeForFilename(file.Filename)
	}
	key := storage.AvatarKey(profileID.String(), time.Now(), file.Filename)
	url, err := h.s3.Upload(c.Request.Context(), key, contentType, rc, file.Size)
	if err != nil {
		h.logger.Error("avatar upload", zap.Error(err), zap.String("key", key))
		response.Internal(c, "failed to upload avatar")
		return
	}

	if err := h.repo.SetAvatarURL(c.Request.Context(), profileID, url); err != nil {
		h.logger.Error("set avatar url", zap.Error(err), zap.String("profile_id", profileID.String()))
		response.Internal(c, "failed to save avatar")
		return
	}
	response.OK(c, gin.H{"avatar_url": url})
}

// List handles GET /profiles (admin only). The admin user list.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list profiles")
		return
	}
	response.OK(c, list)
}
