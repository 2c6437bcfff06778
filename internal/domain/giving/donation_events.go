package giving

import (
	"github.com/google/uuid"
	"github.com/madadgar/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeDonation = "Donation"

// Event type constants
const (
	EventTypeDonationReceived = "DonationReceived"
)

// DonationReceivedEvent is raised when a donation lands on the ledger
type DonationReceivedEvent struct {
	shared.BaseDomainEvent
	DonationID   uuid.UUID       `json:"donation_id"`
	FundraiserID *uuid.UUID      `json:"fundraiser_id,omitempty"`
	RecipientID  uuid.UUID       `json:"recipient_id"`
	Amount       decimal.Decimal `json:"amount"`
	TipAmount    decimal.Decimal `json:"tip_amount"`
	Method       PaymentMethod   `json:"method"`
	Anonymous    bool            `json:"anonymous"`
}

// NewDonationReceivedEvent creates a new DonationReceivedEvent
func NewDonationReceivedEvent(d *Donation) *DonationReceivedEvent {
	return &DonationReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDonationReceived, AggregateTypeDonation, d.ID),
		DonationID:      d.ID,
		FundraiserID:    d.FundraiserID,
		RecipientID:     d.RecipientID,
		Amount:          d.Amount,
		TipAmount:       d.TipAmount,
		Method:          d.Method,
		Anonymous:       d.Anonymous,
	}
}

// EventType returns the event type name
func (e *DonationReceivedEvent) EventType() string {
	return EventTypeDonationReceived
}
