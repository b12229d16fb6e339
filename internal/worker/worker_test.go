package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nccf-fellowship/portal-backend/internal/models"
	"github.com/nccf-fellowship/portal-backend/pkg/queue"
)

type fakeNotificationStore struct {
	created []*models.Notification
	err     error
}

func (f *fakeNotificationStore) Create(_ context.Context, n *models.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, n)
	return nil
}

func decisionJob(t *testing.T, payload queue.ReceiptDecisionPayload) *queue.Job {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return &queue.Job{ID: uuid.New().String(), Type: queue.JobTypeReceiptDecision, Payload: raw}
}

func TestProcessRecordsVerifiedNotification(t *testing.T) {
	store := &fakeNotificationStore{}
	p := NewDecisionProcessor(store, nil, nil)

	payload := queue.ReceiptDecisionPayload{
		ReceiptID: uuid.New(),
		ProfileID: uuid.New(),
		Status:    models.ReceiptStatusVerified,
	}
	require.NoError(t, p.Process(context.Background(), decisionJob(t, payload)))

	require.Len(t, store.created, 1)
	n := store.created[0]
	assert.Equal(t, payload.ProfileID, n.ProfileID)
	assert.Equal(t, payload.ReceiptID, n.ReceiptID)
	assert.Equal(t, models.NotificationReceiptVerified, n.Kind)
	assert.NotEmpty(t, n.Message)
}

func TestProcessRecordsRejectedNotification(t *testing.T) {
	store := &fakeNotificationStore{}
	p := NewDecisionProcessor(store, nil, nil)

	payload := queue.ReceiptDecisionPayload{
		ReceiptID: uuid.New(),
		ProfileID: uuid.New(),
		Status:    models.ReceiptStatusRejected,
	}
	require.NoError(t, p.Process(context.Background(), decisionJob(t, payload)))

	require.Len(t, store.created, 1)
	assert.Equal(t, models.NotificationReceiptRejected, store.created[0].Kind)
}

func TestProcessRejectsUnknownJobType(t *testing.T) {
	p := NewDecisionProcessor(&fakeNotificationStore{}, nil, nil)
	err := p.Process(context.Background(), &queue.Job{ID: "x", Type: "mystery"})
	assert.Error(t, err)
}

func TestProcessPropagatesStoreFailure(t *testing.T) {
	store := &fakeNotificationStore{err: errors.New("db down")}
	p := NewDecisionProcessor(store, nil, nil)

	err := p.Process(context.Background(), decisionJob(t, queue.ReceiptDecisionPayload{
		ReceiptID: uuid.New(), ProfileID: uuid.New(), Status: models.ReceiptStatusVerified,
	}))
	assert.Error(t, err, "failed jobs must surface so the queue can retry them")
}
