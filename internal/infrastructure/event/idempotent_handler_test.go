package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/madadgar/backend/internal/domain/giving"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// failingStore always errors on MarkProcessed
type failingStore struct{}

func (failingStore) MarkProcessed(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("store unavailable")
}

func TestIdempotentHandler_ProcessesFirstDelivery(t *testing.T) {
	inner := &recordingHandler{types: []string{giving.EventTypeDonationReceived}}
	handler := NewIdempotentHandler(inner, NewInMemoryProcessedEventStore(), zap.NewNop())

	require.NoError(t, handler.Handle(context.Background(), newDonationEvent()))

	assert.Equal(t, 1, inner.count())
}

func TestIdempotentHandler_SkipsRedelivery(t *testing.T) {
	inner := &recordingHandler{types: []string{giving.EventTypeDonationReceived}}
	handler := NewIdempotentHandler(inner, NewInMemoryProcessedEventStore(), zap.NewNop())
	ctx := context.Background()

	event := newDonationEvent()
	require.NoError(t, handler.Handle(ctx, event))
	require.NoError(t, handler.Handle(ctx, event))

	assert.Equal(t, 1, inner.count())
}

func TestIdempotentHandler_DistinctEventsBothProcessed(t *testing.T) {
	inner := &recordingHandler{types: []string{giving.EventTypeDonationReceived}}
	handler := NewIdempotentHandler(inner, NewInMemoryProcessedEventStore(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, handler.Handle(ctx, newDonationEvent()))
	require.NoError(t, handler.Handle(ctx, newDonationEvent()))

	assert.Equal(t, 2, inner.count())
}

func TestIdempotentHandler_StoreErrorFailsOpen(t *testing.T) {
	inner := &recordingHandler{types: []string{giving.EventTypeDonationReceived}}
	handler := NewIdempotentHandler(inner, failingStore{}, zap.NewNop())

	require.NoError(t, handler.Handle(context.Background(), newDonationEvent()))

	assert.Equal(t, 1, inner.count())
}

func TestIdempotentHandler_PropagatesHandlerError(t *testing.T) {
	inner := &recordingHandler{types: []string{giving.EventTypeDonationReceived}, err: errors.New("boom")}
	handler := NewIdempotentHandler(inner, NewInMemoryProcessedEventStore(), zap.NewNop())

	assert.Error(t, handler.Handle(context.Background(), newDonationEvent()))
}

func TestIdempotentHandler_ExposesWrappedEventTypes(t *testing.T) {
	inner := &recordingHandler{types: []string{giving.EventTypeDonationReceived}}
	handler := NewIdempotentHandler(inner, NewInMemoryProcessedEventStore(), zap.NewNop())

	assert.Equal(t, []string{giving.EventTypeDonationReceived}, handler.EventTypes())
}

func TestInMemoryProcessedEventStore_ExpiresEntries(t *testing.T) {
	store := NewInMemoryProcessedEventStore()
	ctx := context.Background()

	isNew, err := store.MarkProcessed(ctx, "evt-1", 10*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = store.MarkProcessed(ctx, "evt-1", 10*time.Millisecond)
	require.NoError(t, err)
	assert.False(t, isNew)

	time.Sleep(20 * time.Millisecond)

	isNew, err = store.MarkProcessed(ctx, "evt-1", 10*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, isNew)
}
