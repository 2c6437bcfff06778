package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/madadgar/backend/internal/domain/giving"
	"github.com/madadgar/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockOutboxRepository is an in-memory OutboxRepository for processor tests
type mockOutboxRepository struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*shared.OutboxEntry
}

func newMockOutboxRepository() *mockOutboxRepository {
	return &mockOutboxRepository{entries: make(map[uuid.UUID]*shared.OutboxEntry)}
}

func (r *mockOutboxRepository) Save(_ context.Context, entries ...*shared.OutboxEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range entries {
		r.entries[e.ID] = e
	}
	return nil
}

func (r *mockOutboxRepository) FindPending(_ context.Context, limit int) ([]*shared.OutboxEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*shared.OutboxEntry
	for _, e := range r.entries {
		if e.Status == shared.OutboxStatusPending {
			result = append(result, e)
			if len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

func (r *mockOutboxRepository) FindRetryable(_ context.Context, before time.Time, limit int) ([]*shared.OutboxEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*shared.OutboxEntry
	for _, e := range r.entries {
		if e.Status == shared.OutboxStatusFailed && e.NextRetryAt != nil && e.NextRetryAt.Before(before) {
			result = append(result, e)
			if len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

func (r *mockOutboxRepository) FindDead(_ context.Context, page, pageSize int) ([]*shared.OutboxEntry, int64, error) {
	return nil, 0, nil
}

func (r *mockOutboxRepository) FindByID(_ context.Context, id uuid.UUID) (*shared.OutboxEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[id]; ok {
		return e, nil
	}
	return nil, errors.New("not found")
}

func (r *mockOutboxRepository) MarkProcessing(_ context.Context, ids []uuid.UUID) ([]*shared.OutboxEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*shared.OutboxEntry
	for _, id := range ids {
		if e, ok := r.entries[id]; ok {
			e.Status = shared.OutboxStatusProcessing
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *mockOutboxRepository) Update(_ context.Context, entry *shared.OutboxEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.ID] = entry
	return nil
}

func (r *mockOutboxRepository) DeleteOlderThan(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, e := range r.entries {
		if e.Status == shared.OutboxStatusSent && e.ProcessedAt != nil && e.ProcessedAt.Before(before) {
			delete(r.entries, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *mockOutboxRepository) CountByStatus(_ context.Context) (map[shared.OutboxStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[shared.OutboxStatus]int64)
	for _, e := range r.entries {
		counts[e.Status]++
	}
	return counts, nil
}

func (r *mockOutboxRepository) status(id uuid.UUID) shared.OutboxStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[id].Status
}

func newProcessorFixture(t *testing.T) (*OutboxProcessor, *mockOutboxRepository, *InMemoryEventBus, *EventSerializer) {
	t.Helper()
	repo := newMockOutboxRepository()
	bus := NewInMemoryEventBus(zap.NewNop())
	serializer := NewEventSerializer()
	RegisterAllEvents(serializer)

	cfg := DefaultOutboxProcessorConfig()
	cfg.PollInterval = 10 * time.Millisecond
	cfg.CleanupEnabled = false

	return NewOutboxProcessor(repo, bus, serializer, cfg, zap.NewNop()), repo, bus, serializer
}

func TestOutboxProcessor_DeliversPendingEntry(t *testing.T) {
	processor, repo, bus, serializer := newProcessorFixture(t)
	ctx := context.Background()

	handler := &recordingHandler{types: []string{giving.EventTypeDonationReceived}}
	bus.Subscribe(handler)

	event := newDonationEvent()
	payload, err := serializer.Serialize(event)
	require.NoError(t, err)
	entry := shared.NewOutboxEntry(event, payload)
	require.NoError(t, repo.Save(ctx, entry))

	processor.processBatch(ctx)

	require.Equal(t, 1, handler.count())
	assert.Equal(t, event.EventID(), handler.received[0].EventID())
	assert.Equal(t, shared.OutboxStatusSent, repo.status(entry.ID))
}

func TestOutboxProcessor_UnknownEventTypeFails(t *testing.T) {
	processor, repo, _, _ := newProcessorFixture(t)
	ctx := context.Background()

	event := newDonationEvent()
	entry := shared.NewOutboxEntry(event, []byte(`{}`))
	entry.EventType = "NeverRegistered"
	require.NoError(t, repo.Save(ctx, entry))

	processor.processBatch(ctx)

	assert.Equal(t, shared.OutboxStatusFailed, repo.status(entry.ID))
	got, err := repo.FindByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.RetryCount)
	assert.Contains(t, got.LastError, "unknown event type")
}

func TestOutboxProcessor_RetriesFailedEntryWhenDue(t *testing.T) {
	processor, repo, bus, serializer := newProcessorFixture(t)
	ctx := context.Background()

	handler := &recordingHandler{types: []string{giving.EventTypeDonationReceived}}
	bus.Subscribe(handler)

	event := newDonationEvent()
	payload, err := serializer.Serialize(event)
	require.NoError(t, err)
	entry := shared.NewOutboxEntry(event, payload)
	entry.Status = shared.OutboxStatusFailed
	entry.RetryCount = 1
	past := time.Now().Add(-time.Minute)
	entry.NextRetryAt = &past
	require.NoError(t, repo.Save(ctx, entry))

	processor.processBatch(ctx)

	assert.Equal(t, 1, handler.count())
	assert.Equal(t, shared.OutboxStatusSent, repo.status(entry.ID))
}

func TestOutboxProcessor_ExhaustedEntryGoesDead(t *testing.T) {
	processor, repo, _, _ := newProcessorFixture(t)
	ctx := context.Background()

	entry := shared.NewOutboxEntry(newDonationEvent(), []byte(`{}`))
	entry.EventType = "NeverRegistered"
	entry.Status = shared.OutboxStatusFailed
	entry.RetryCount = shared.DefaultMaxRetries - 1
	past := time.Now().Add(-time.Minute)
	entry.NextRetryAt = &past
	require.NoError(t, repo.Save(ctx, entry))

	processor.processBatch(ctx)

	assert.Equal(t, shared.OutboxStatusDead, repo.status(entry.ID))
}

func TestOutboxProcessor_StartStop(t *testing.T) {
	processor, repo, bus, serializer := newProcessorFixture(t)
	ctx := context.Background()

	handler := &recordingHandler{types: []string{giving.EventTypeDonationReceived}}
	bus.Subscribe(handler)

	event := newDonationEvent()
	payload, err := serializer.Serialize(event)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, shared.NewOutboxEntry(event, payload)))

	require.NoError(t, processor.Start(ctx))

	assert.Eventually(t, func() bool {
		return handler.count() == 1
	}, time.Second, 10*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, processor.Stop(stopCtx))
}

func TestOutboxProcessor_Cleanup(t *testing.T) {
	processor, repo, _, serializer := newProcessorFixture(t)
	ctx := context.Background()

	event := newDonationEvent()
	payload, err := serializer.Serialize(event)
	require.NoError(t, err)
	entry := shared.NewOutboxEntry(event, payload)
	entry.Status = shared.OutboxStatusSent
	old := time.Now().Add(-14 * 24 * time.Hour)
	entry.ProcessedAt = &old
	require.NoError(t, repo.Save(ctx, entry))

	processor.cleanup(ctx)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts[shared.OutboxStatusSent])
}
