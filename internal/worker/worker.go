package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nccf-fellowship/portal-backend/internal/models"
	"github.com/nccf-fellowship/portal-backend/pkg/queue"
)

// NotificationStore persists notifications. *notifications.Repository
// implements it.
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
}

// DecisionProcessor consumes receipt adjudication jobs and records a
// notification for the claim owner.
type DecisionProcessor struct {
	notifRepo NotificationStore
	queue     *queue.Queue
	logger    *zap.Logger
}

// NewDecisionProcessor creates a receipt decision processor.
func NewDecisionProcessor(notifRepo NotificationStore, q *queue.Queue, logger *zap.Logger) *DecisionProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DecisionProcessor{notifRepo: notifRepo, queue: q, logger: logger}
}

// Process executes one receipt decision job.
func (p *DecisionProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeReceiptDecision {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.ReceiptDecisionPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	kind := models.NotificationReceiptVerified
	message := "Your payment receipt has been verified."
	if payload.Status == models.ReceiptStatusRejected {
		kind = models.NotificationReceiptRejected
		message = "Your payment receipt was rejected. Please resubmit with a valid document."
	}

	n := &models.Notification{
		ProfileID: payload.ProfileID,
		ReceiptID: payload.ReceiptID,
		Kind:      kind,
		Message:   message,
	}
	if err := p.notifRepo.Create(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	p.logger.Info("receipt decision recorded",
		zap.String("receipt_id", payload.ReceiptID.String()),
		zap.String("profile_id", payload.ProfileID.String()),
		zap.String("status", payload.Status),
	)
	return nil
}

// Run starts the worker loop: dequeue, process, retry on error.
func (p *DecisionProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("notification worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			p.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			time.Sleep(queue.RetryBackoff)
			continue
		}
	}
}
