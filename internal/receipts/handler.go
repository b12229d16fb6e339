package receipts

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nccf-fellowship/portal-backend/internal/auth"
	"github.com/nccf-fellowship/portal-backend/internal/models"
	"github.com/nccf-fellowship/portal-backend/pkg/queue"
	"github.com/nccf-fellowship/portal-backend/pkg/response"
	"github.com/nccf-fellowship/portal-backend/pkg/storage"
)

// Store persists receipt claims. *Repository implements it; tests use an
// in-memory stand-in.
type Store interface {
	Create(ctx context.Context, rec *models.Receipt) error
	List(ctx context.Context, status string) ([]models.Receipt, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]models.Receipt, error)
	Decide(ctx context.Context, id uuid.UUID, status string) (*models.Receipt, error)
}

// MembershipSource resolves a member's room assignment. *rooms.Repository
// implements it.
type MembershipSource interface {
	MembershipFor(ctx context.Context, profileID uuid.UUID) (*models.RoomMember, error)
}

// Uploader stores receipt documents. *storage.S3 implements it.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, contentLength int64) (string, error)
}

// DecisionNotifier enqueues adjudication outcomes for the notification
// worker. *queue.Queue implements it.
type DecisionNotifier interface {
	EnqueueReceiptDecision(ctx context.Context, payload queue.ReceiptDecisionPayload) error
}

// Handler handles payment receipt HTTP endpoints.
type Handler struct {
	store       Store
	memberships MembershipSource
	uploader    Uploader
	notifier    DecisionNotifier
	maxFileSize int64
	logger      *zap.Logger
}

// NewHandler creates a receipts handler.
func NewHandler(store Store, memberships MembershipSource, uploader Uploader, notifier DecisionNotifier, maxFileSizeMB int, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		store:       store,
		memberships: memberships,
		uploader:    uploader,
		notifier:    notifier,
		maxFileSize: int64(maxFileSizeMB) * 1024 * 1024,
		logger:      logger,
	}
}

// Submit handles POST /receipts. Multipart form: amount, payment_type,
// transaction_number, note, file. The document is uploaded first; the claim
// row is only inserted once the upload succeeded. If the insert then fails
// the stored object is left orphaned; that leak is accepted and logged, no
// compensating delete.
func (h *Handler) Submit(c *gin.Context) {
	if h.uploader == nil {
		response.ServiceUnavailable(c, "file storage not configured")
		return
	}
	profileID := c.MustGet(auth.ContextProfileID).(uuid.UUID)

	input := SubmissionInput{
		Amount:            c.PostForm("amount"),
		PaymentType:       c.PostForm("payment_type"),
		TransactionNumber: c.PostForm("transaction_number"),
		Note:              c.PostForm("note"),
	}
	file, err := c.FormFile("file")
	if err == nil {
		input.HasFile = true
		input.FileName = file.Filename
		input.ContentType = file.Header.Get("Content-Type")
		input.FileSize = file.Size
	}

	amount, err := input.Validate(h.maxFileSize)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	membership, err := h.memberships.MembershipFor(c.Request.Context(), profileID)
	if err != nil {
		h.logger.Error("membership lookup", zap.Error(err), zap.String("profile_id", profileID.String()))
		response.Internal(c, "failed to check room assignment")
		return
	}
	if membership == nil {
		response.BadRequest(c, "you must be assigned to a room before submitting a payment")
		return
	}

	rc, err := file.Open()
	if err != nil {
		response.Internal(c, "failed to read file")
		return
	}
	defer rc.Close()

	contentType := input.ContentType
	if contentType == "" {
		contentType = storage.ContentTypeForFilename(input.FileName)
	}
	key := storage.ReceiptKey(time.Now(), input.FileName)
	receiptURL, err := h.uploader.Upload(c.Request.Context(), key, contentType, rc, file.Size)
	if err != nil {
		h.logger.Error("receipt upload", zap.Error(err), zap.String("key", key))
		response.Internal(c, "failed to upload receipt")
		return
	}

	rec := &models.Receipt{
		ProfileID:         profileID,
		RoomID:            membership.RoomID,
		Amount:            amount,
		PaymentType:       input.PaymentType,
		TransactionNumber: strings.TrimSpace(input.TransactionNumber),
		Note:              strings.TrimSpace(input.Note),
		ReceiptURL:        receiptURL,
	}
	if err := h.store.Create(c.Request.Context(), rec); err != nil {
		h.logger.Error("create receipt, stored document orphaned",
			zap.Error(err), zap.String("key", key), zap.String("profile_id", profileID.String()))
		response.Internal(c, "failed to record payment claim")
		return
	}
	response.Created(c, rec)
}

// List handles GET /receipts (admin only). Newest first, optional ?status=
// filter.
func (h *Handler) List(c *gin.Context) {
	status := c.Query("status")
	switch status {
	case "", models.ReceiptStatusPending, models.ReceiptStatusVerified, models.ReceiptStatusRejected:
	default:
		response.BadRequest(c, "invalid status filter")
		return
	}
	list, err := h.store.List(c.Request.Context(), status)
	if err != nil {
		response.Internal(c, "failed to load receipts")
		return
	}
	response.OK(c, list)
}

// ListMine handles GET /receipts/mine. A member's own claims.
func (h *Handler) ListMine(c *gin.Context) {
	profileID := c.MustGet(auth.ContextProfileID).(uuid.UUID)
	list, err := h.store.ListByProfile(c.Request.Context(), profileID)
	if err != nil {
		response.Internal(c, "failed to load receipts")
		return
	}
	response.OK(c, list)
}

// Verify handles PATCH /receipts/:id/verify (admin only).
func (h *Handler) Verify(c *gin.Context) {
	h.decide(c, models.ReceiptStatusVerified)
}

// Reject handles PATCH /receipts/:id/reject (admin only).
func (h *Handler) Reject(c *gin.Context) {
	h.decide(c, models.ReceiptStatusRejected)
}

func (h *Handler) decide(c *gin.Context, status string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid receipt id")
		return
	}

	rec, err := h.store.Decide(c.Request.Context(), id, status)
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "receipt not found")
		return
	case errors.Is(err, ErrAlreadyDecided):
		response.Conflict(c, "receipt has already been decided")
		return
	case err != nil:
		h.logger.Error("decide receipt", zap.Error(err), zap.String("receipt_id", id.String()))
		response.Internal(c, "failed to update receipt")
		return
	}

	if h.notifier != nil {
		payload := queue.ReceiptDecisionPayload{
			ReceiptID: rec.ID,
			ProfileID: rec.ProfileID,
			Status:    rec.Status,
		}
		if err := h.notifier.EnqueueReceiptDecision(c.Request.Context(), payload); err != nil {
			// The decision already committed; notification is best effort.
			h.logger.Warn("enqueue decision notification", zap.Error(err), zap.String("receipt_id", rec.ID.String()))
		}
	}
	response.OK(c, rec)
}
