package shared

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutboxEntry(t *testing.T) {
	event := &testEvent{BaseDomainEvent: NewBaseDomainEvent("DonationReceived", "Donation", uuid.New())}
	payload := []byte(`{"amount":"500"}`)

	entry := NewOutboxEntry(event, payload)

	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.Equal(t, event.EventID(), entry.EventID)
	assert.Equal(t, "DonationReceived", entry.EventType)
	assert.Equal(t, event.AggregateID(), entry.AggregateID)
	assert.Equal(t, "Donation", entry.AggregateType)
	assert.Equal(t, payload, entry.Payload)
	assert.Equal(t, OutboxStatusPending, entry.Status)
	assert.Equal(t, DefaultMaxRetries, entry.MaxRetries)
	assert.Zero(t, entry.RetryCount)
}

func TestOutboxEntry_MarkProcessing(t *testing.T) {
	t.Run("allows pending and failed entries", func(t *testing.T) {
		for _, status := range []OutboxStatus{OutboxStatusPending, OutboxStatusFailed} {
			entry := &OutboxEntry{ID: uuid.New(), Status: status}
			require.NoError(t, entry.MarkProcessing())
			assert.Equal(t, OutboxStatusProcessing, entry.Status)
		}
	})

	t.Run("rejects other statuses", func(t *testing.T) {
		for _, status := range []OutboxStatus{OutboxStatusProcessing, OutboxStatusSent, OutboxStatusDead} {
			entry := &OutboxEntry{ID: uuid.New(), Status: status}
			assert.Error(t, entry.MarkProcessing())
		}
	})
}

func TestOutboxEntry_MarkSent(t *testing.T) {
	entry := &OutboxEntry{ID: uuid.New(), Status: OutboxStatusProcessing}

	entry.MarkSent()

	assert.Equal(t, OutboxStatusSent, entry.Status)
	require.NotNil(t, entry.ProcessedAt)
	assert.WithinDuration(t, time.Now(), *entry.ProcessedAt, time.Second)
}

func TestOutboxEntry_MarkFailed_ExponentialBackoff(t *testing.T) {
	entry := &OutboxEntry{
		ID:         uuid.New(),
		Status:     OutboxStatusProcessing,
		MaxRetries: 5,
	}

	entry.MarkFailed("collector unreachable")
	assert.Equal(t, OutboxStatusFailed, entry.Status)
	assert.Equal(t, 1, entry.RetryCount)
	assert.Equal(t, "collector unreachable", entry.LastError)
	require.NotNil(t, entry.NextRetryAt)
	first := time.Until(*entry.NextRetryAt)
	assert.True(t, first > 0 && first <= 2*time.Second)

	entry.Status = OutboxStatusProcessing
	entry.MarkFailed("still unreachable")
	assert.Equal(t, 2, entry.RetryCount)
	second := time.Until(*entry.NextRetryAt)
	assert.True(t, second > time.Second && second <= 3*time.Second)

	entry.Status = OutboxStatusProcessing
	entry.MarkFailed("still unreachable")
	assert.Equal(t, 3, entry.RetryCount)
	third := time.Until(*entry.NextRetryAt)
	assert.True(t, third > 3*time.Second && third <= 5*time.Second)
}

func TestOutboxEntry_MarkFailed_MovesToDeadAfterMaxRetries(t *testing.T) {
	entry := &OutboxEntry{
		ID:         uuid.New(),
		Status:     OutboxStatusProcessing,
		RetryCount: 4,
		MaxRetries: 5,
	}

	entry.MarkFailed("final error")

	assert.Equal(t, OutboxStatusDead, entry.Status)
	assert.Equal(t, 5, entry.RetryCount)
	assert.True(t, entry.IsDead())
	assert.False(t, entry.CanRetry())
}

func TestOutboxEntry_ResetForRetry(t *testing.T) {
	t.Run("resets dead letter entry", func(t *testing.T) {
		entry := &OutboxEntry{
			ID:         uuid.New(),
			Status:     OutboxStatusDead,
			RetryCount: 5,
			MaxRetries: 5,
			LastError:  "some error",
		}

		require.NoError(t, entry.ResetForRetry())
		assert.Equal(t, OutboxStatusPending, entry.Status)
		assert.Zero(t, entry.RetryCount)
		assert.Empty(t, entry.LastError)
		assert.Nil(t, entry.NextRetryAt)
	})

	t.Run("fails for non-dead entries", func(t *testing.T) {
		for _, status := range []OutboxStatus{OutboxStatusPending, OutboxStatusProcessing, OutboxStatusSent, OutboxStatusFailed} {
			entry := &OutboxEntry{ID: uuid.New(), Status: status}
			assert.Error(t, entry.ResetForRetry())
		}
	})
}

// testEvent is a minimal DomainEvent for outbox tests
type testEvent struct {
	BaseDomainEvent
}
