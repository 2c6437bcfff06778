package event

import (
	"context"
	"sync"
	"time"

	"github.com/madadgar/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProcessedEventStore tracks which event IDs a consumer has already
// handled. MarkProcessed must be an atomic check-and-set: it returns
// true only for the first caller with a given event ID.
type ProcessedEventStore interface {
	MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
}

// InMemoryProcessedEventStore is a ProcessedEventStore for single-process
// deployments and tests
type InMemoryProcessedEventStore struct {
	mu      sync.Mutex
	entries map[string]time.Time // eventID -> expiry
}

// NewInMemoryProcessedEventStore creates a new in-memory store
func NewInMemoryProcessedEventStore() *InMemoryProcessedEventStore {
	return &InMemoryProcessedEventStore{
		entries: make(map[string]time.Time),
	}
}

// MarkProcessed records the event ID, returning true if it was new
func (s *InMemoryProcessedEventStore) MarkProcessed(_ context.Context, eventID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if expiry, ok := s.entries[eventID]; ok && expiry.After(now) {
		return false, nil
	}

	// Opportunistic sweep of expired entries
	for id, expiry := range s.entries {
		if expiry.Before(now) {
			delete(s.entries, id)
		}
	}

	s.entries[eventID] = now.Add(ttl)
	return true, nil
}

// DefaultProcessedEventTTL is how long handled event IDs are remembered.
// Outbox redelivery happens within seconds, so a day is generous.
const DefaultProcessedEventTTL = 24 * time.Hour

// IdempotentHandler wraps an EventHandler so each event is handled at
// most once even when the outbox redelivers it. Redelivery happens when
// an entry fails after some handlers already ran.
type IdempotentHandler struct {
	handler shared.EventHandler
	store   ProcessedEventStore
	ttl     time.Duration
	logger  *zap.Logger
}

// NewIdempotentHandler creates a new idempotent handler wrapper
func NewIdempotentHandler(handler shared.EventHandler, store ProcessedEventStore, logger *zap.Logger) *IdempotentHandler {
	return &IdempotentHandler{
		handler: handler,
		store:   store,
		ttl:     DefaultProcessedEventTTL,
		logger:  logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *IdempotentHandler) EventTypes() []string {
	return h.handler.EventTypes()
}

// Handle processes the event unless it was already handled
func (h *IdempotentHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	eventID := event.EventID().String()

	isNew, err := h.store.MarkProcessed(ctx, eventID, h.ttl)
	if err != nil {
		// Better to risk a duplicate than to drop the event
		h.logger.Warn("failed to check processed events, handling anyway",
			zap.String("event_id", eventID),
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	} else if !isNew {
		h.logger.Debug("duplicate event skipped",
			zap.String("event_id", eventID),
			zap.String("event_type", event.EventType()),
		)
		return nil
	}

	return h.handler.Handle(ctx, event)
}

// Ensure IdempotentHandler implements EventHandler
var _ shared.EventHandler = (*IdempotentHandler)(nil)
