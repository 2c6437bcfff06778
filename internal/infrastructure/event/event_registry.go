package event

import (
	"github.com/madadgar/backend/internal/domain/fundraising"
	"github.com/madadgar/backend/internal/domain/giving"
)

// RegisterAllEvents registers all domain event types with the serializer.
// The OutboxProcessor needs every type registered to deserialize payloads
// from the outbox table; an unregistered event dead-letters after its
// retries are exhausted.
func RegisterAllEvents(serializer *EventSerializer) {
	// Fundraising domain events
	serializer.Register(fundraising.EventTypeFundraiserCreated, &fundraising.FundraiserCreatedEvent{})
	serializer.Register(fundraising.EventTypeFundraiserPublished, &fundraising.FundraiserPublishedEvent{})
	serializer.Register(fundraising.EventTypeFundraiserClosed, &fundraising.FundraiserClosedEvent{})
	serializer.Register(fundraising.EventTypeFundraiserLinked, &fundraising.FundraiserLinkedEvent{})

	// Giving domain events
	serializer.Register(giving.EventTypeDonationReceived, &giving.DonationReceivedEvent{})
}
