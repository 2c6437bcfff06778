package fundraising

import (
	"context"

	"github.com/google/uuid"
	"github.com/madadgar/backend/internal/domain/shared"
)

// FundraiserRepository defines the interface for fundraiser persistence
type FundraiserRepository interface {
	// FindByID finds a fundraiser by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Fundraiser, error)

	// FindByIDForOwner finds a fundraiser by ID scoped to its owner
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Fundraiser, error)

	// FindActiveByID finds a fundraiser by ID only if it is active.
	// Used by the public detail page, which never serves drafts.
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Fundraiser, error)

	// FindAllForOwner finds all fundraisers for an owner with filtering
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Fundraiser, error)

	// CountForOwner counts fundraisers for an owner with optional filters
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)

	// CountForOwnerByStatus counts an owner's fundraisers in one status
	CountForOwnerByStatus(ctx context.Context, ownerID uuid.UUID, status Status) (int64, error)

	// FindActive finds active fundraisers for public discovery with filtering
	FindActive(ctx context.Context, filter shared.Filter) ([]Fundraiser, error)

	// CountActive counts active fundraisers matching the discovery filter
	CountActive(ctx context.Context, filter shared.Filter) (int64, error)

	// FindFeatured finds up to limit active fundraisers ranked by total
	// received amount, computed from the donation ledger at read time
	FindFeatured(ctx context.Context, limit int) ([]Fundraiser, error)

	// Save creates or updates a fundraiser
	Save(ctx context.Context, f *Fundraiser) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, f *Fundraiser) error

	// Delete deletes a fundraiser and its documents
	Delete(ctx context.Context, id uuid.UUID) error
}

// PayoutMethodConfigRepository defines the interface for payout channel
// persistence
type PayoutMethodConfigRepository interface {
	// ListByFundraiser lists all configured channels for a fundraiser
	ListByFundraiser(ctx context.Context, fundraiserID uuid.UUID) ([]PayoutMethodConfig, error)

	// FindByMethod finds the channel row for one method, if configured
	FindByMethod(ctx context.Context, fundraiserID uuid.UUID, method PayoutMethod) (*PayoutMethodConfig, error)

	// ReplaceAll upserts a batch of channels for a fundraiser in one
	// transaction. Each row lands on the (fundraiser, method) slot,
	// replacing whatever was stored there.
	ReplaceAll(ctx context.Context, fundraiserID uuid.UUID, configs []PayoutMethodConfig) error

	// HasEnabled reports whether at least one enabled channel exists
	HasEnabled(ctx context.Context, fundraiserID uuid.UUID) (bool, error)

	// DeleteByFundraiser removes all channels for a fundraiser
	DeleteByFundraiser(ctx context.Context, fundraiserID uuid.UUID) error
}
