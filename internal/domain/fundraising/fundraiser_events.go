package fundraising

import (
	"time"

	"github.com/google/uuid"
	"github.com/madadgar/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeFundraiser = "Fundraiser"

// Event type constants
const (
	EventTypeFundraiserCreated   = "FundraiserCreated"
	EventTypeFundraiserPublished = "FundraiserPublished"
	EventTypeFundraiserClosed    = "FundraiserClosed"
	EventTypeFundraiserLinked    = "FundraiserLinked"
)

// FundraiserCreatedEvent is raised when a new draft fundraiser is created
type FundraiserCreatedEvent struct {
	shared.BaseDomainEvent
	FundraiserID uuid.UUID `json:"fundraiser_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Purpose      Purpose   `json:"purpose"`
}

// NewFundraiserCreatedEvent creates a new FundraiserCreatedEvent
func NewFundraiserCreatedEvent(f *Fundraiser) *FundraiserCreatedEvent {
	return &FundraiserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFundraiserCreated, AggregateTypeFundraiser, f.ID),
		FundraiserID:    f.ID,
		OwnerID:         f.OwnerID,
		Purpose:         f.Purpose,
	}
}

// EventType returns the event type name
func (e *FundraiserCreatedEvent) EventType() string {
	return EventTypeFundraiserCreated
}

// FundraiserPublishedEvent is raised when a draft goes live
type FundraiserPublishedEvent struct {
	shared.BaseDomainEvent
	FundraiserID uuid.UUID       `json:"fundraiser_id"`
	OwnerID      uuid.UUID       `json:"owner_id"`
	Title        string          `json:"title"`
	Category     string          `json:"category"`
	Purpose      Purpose         `json:"purpose"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Deadline     *time.Time      `json:"deadline,omitempty"`
}

// NewFundraiserPublishedEvent creates a new FundraiserPublishedEvent
func NewFundraiserPublishedEvent(f *Fundraiser) *FundraiserPublishedEvent {
	return &FundraiserPublishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFundraiserPublished, AggregateTypeFundraiser, f.ID),
		FundraiserID:    f.ID,
		OwnerID:         f.OwnerID,
		Title:           f.Title,
		Category:        f.Category,
		Purpose:         f.Purpose,
		TargetAmount:    f.TargetAmount,
		Deadline:        f.Deadline,
	}
}

// EventType returns the event type name
func (e *FundraiserPublishedEvent) EventType() string {
	return EventTypeFundraiserPublished
}

// FundraiserClosedEvent is raised when an active fundraiser is closed
type FundraiserClosedEvent struct {
	shared.BaseDomainEvent
	FundraiserID uuid.UUID `json:"fundraiser_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
}

// NewFundraiserClosedEvent creates a new FundraiserClosedEvent
func NewFundraiserClosedEvent(f *Fundraiser) *FundraiserClosedEvent {
	return &FundraiserClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFundraiserClosed, AggregateTypeFundraiser, f.ID),
		FundraiserID:    f.ID,
		OwnerID:         f.OwnerID,
		Title:           f.Title,
		Category:        f.Category,
	}
}

// EventType returns the event type name
func (e *FundraiserClosedEvent) EventType() string {
	return EventTypeFundraiserClosed
}

// FundraiserLinkedEvent is raised when a continuation pointer is set
type FundraiserLinkedEvent struct {
	shared.BaseDomainEvent
	FundraiserID       uuid.UUID `json:"fundraiser_id"`
	LinkedFundraiserID uuid.UUID `json:"linked_fundraiser_id"`
}

// NewFundraiserLinkedEvent creates a new FundraiserLinkedEvent
func NewFundraiserLinkedEvent(f *Fundraiser, targetID uuid.UUID) *FundraiserLinkedEvent {
	return &FundraiserLinkedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeFundraiserLinked, AggregateTypeFundraiser, f.ID),
		FundraiserID:       f.ID,
		LinkedFundraiserID: targetID,
	}
}

// EventType returns the event type name
func (e *FundraiserLinkedEvent) EventType() string {
	return EventTypeFundraiserLinked
}
