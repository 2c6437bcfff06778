package giving

import (
	"context"

	"github.com/google/uuid"
	"github.com/madadgar/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DonationRepository defines the interface for donation ledger persistence.
// The ledger is append-only: there is no update or delete surface.
type DonationRepository interface {
	// Append writes a new donation row, re-checking inside the same
	// transaction that the target fundraiser is still active. Returns a
	// state conflict if it is not.
	Append(ctx context.Context, d *Donation) error

	// FindByID finds a donation by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Donation, error)

	// TotalsByFundraiserIDs computes collected amount and supporter count
	// for a batch of fundraisers in one query. Fundraisers with no
	// donations are absent from the result map.
	TotalsByFundraiserIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Totals, error)

	// RecentByFundraiser lists the newest received donations for one
	// campaign, newest first
	RecentByFundraiser(ctx context.Context, fundraiserID uuid.UUID, limit int) ([]Donation, error)

	// ListByDonor lists one donor's received donations, newest first
	ListByDonor(ctx context.Context, donorID uuid.UUID, filter shared.Filter) ([]Donation, error)

	// CountByDonor counts one donor's received donations
	CountByDonor(ctx context.Context, donorID uuid.UUID) (int64, error)

	// ListByRecipient lists the newest donations received by an owner
	// across all their campaigns, including rows whose fundraiser pointer
	// has been cleared
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int) ([]Donation, error)

	// TotalReceivedByRecipient sums everything an owner has received
	TotalReceivedByRecipient(ctx context.Context, recipientID uuid.UUID) (decimal.Decimal, error)

	// TotalDonatedByDonor sums everything a donor has given
	TotalDonatedByDonor(ctx context.Context, donorID uuid.UUID) (decimal.Decimal, error)
}
