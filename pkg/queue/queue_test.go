package queue

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T) (*Queue, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewQueue(client, nil), client
}

func TestEnqueueDequeueRoundTrip(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	payload := ReceiptDecisionPayload{
		ReceiptID: uuid.New(),
		ProfileID: uuid.New(),
		Status:    "verified",
	}
	require.NoError(t, q.EnqueueReceiptDecision(ctx, payload))

	job, err := q.Dequeue(ctx)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, JobTypeReceiptDecision, job.Type)
	assert.Zero(t, job.Attempt)

	var got ReceiptDecisionPayload
	require.NoError(t, json.Unmarshal(job.Payload, &got))
	assert.Equal(t, payload, got)
}

func TestRetryRequeuesUntilMaxThenDLQ(t *testing.T) {
	q, client := newTestQueue(t)
	ctx := context.Background()

	require.NoError(t, q.EnqueueReceiptDecision(ctx, ReceiptDecisionPayload{
		ReceiptID: uuid.New(), ProfileID: uuid.New(), Status: "rejected",
	}))

	job, err := q.Dequeue(ctx)
	require.NoError(t, err)
	require.NotNil(t, job)

	for attempt := 1; attempt < MaxRetries; attempt++ {
		require.NoError(t, q.Retry(ctx, job))
		assert.Equal(t, attempt, job.Attempt)

		job, err = q.Dequeue(ctx)
		require.NoError(t, err)
		require.NotNil(t, job, "retried job goes back on the work queue")
	}

	// Final failure lands in the DLQ, not the work queue.
	require.NoError(t, q.Retry(ctx, job))
	assert.Equal(t, int64(0), client.LLen(ctx, QueueNotifications).Val())
	assert.Equal(t, int64(1), client.LLen(ctx, QueueDLQ).Val())
}
