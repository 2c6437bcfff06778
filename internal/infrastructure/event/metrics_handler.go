package event

import (
	"context"

	"github.com/madadgar/backend/internal/domain/fundraising"
	"github.com/madadgar/backend/internal/domain/giving"
	"github.com/madadgar/backend/internal/domain/shared"
	"github.com/madadgar/backend/internal/infrastructure/telemetry"
)

// BusinessMetricsHandler feeds domain events into the business-level
// metric instruments. Subscribe it behind an IdempotentHandler so
// outbox redelivery does not double-count.
type BusinessMetricsHandler struct {
	metrics *telemetry.BusinessMetrics
}

// NewBusinessMetricsHandler creates a new BusinessMetricsHandler
func NewBusinessMetricsHandler(metrics *telemetry.BusinessMetrics) *BusinessMetricsHandler {
	return &BusinessMetricsHandler{metrics: metrics}
}

// EventTypes returns the event types this handler records
func (h *BusinessMetricsHandler) EventTypes() []string {
	return []string{
		giving.EventTypeDonationReceived,
		fundraising.EventTypeFundraiserPublished,
		fundraising.EventTypeFundraiserClosed,
	}
}

// Handle records the metric matching the event type
func (h *BusinessMetricsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *giving.DonationReceivedEvent:
		h.metrics.RecordDonation(ctx, string(e.Method), e.Amount, e.TipAmount)
	case *fundraising.FundraiserPublishedEvent:
		h.metrics.RecordFundraiserPublished(ctx, e.Category, string(e.Purpose))
	case *fundraising.FundraiserClosedEvent:
		h.metrics.RecordFundraiserClosed(ctx, e.Category)
	}
	return nil
}

// Ensure BusinessMetricsHandler implements EventHandler
var _ shared.EventHandler = (*BusinessMetricsHandler)(nil)
