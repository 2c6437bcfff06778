package fundraising

import (
	"context"

	"github.com/google/uuid"
	"github.com/madadgar/backend/internal/domain/fundraising"
	"github.com/madadgar/backend/internal/domain/giving"
	"github.com/madadgar/backend/internal/domain/shared"
)

const (
	defaultFeaturedLimit = 12
	maxFeaturedLimit     = 50
	recentDonorLimit     = 30
)

// Category catalog served to campaign creation and discovery filters
var categories = []CategoryResponse{
	{Slug: "education", Label: "Education"},
	{Slug: "medical", Label: "Medical"},
	{Slug: "emergency", Label: "Emergency Relief"},
	{Slug: "orphan_care", Label: "Orphan Care"},
	{Slug: "food", Label: "Food & Water"},
	{Slug: "shelter", Label: "Shelter"},
	{Slug: "community", Label: "Community"},
	{Slug: "other", Label: "Other"},
}

// DiscoveryService serves the public, unauthenticated read surface
type DiscoveryService struct {
	fundraiserRepo fundraising.FundraiserRepository
	donationRepo   giving.DonationRepository
}

// NewDiscoveryService creates a new DiscoveryService
func NewDiscoveryService(
	fundraiserRepo fundraising.FundraiserRepository,
	donationRepo giving.DonationRepository,
) *DiscoveryService {
	return &DiscoveryService{
		fundraiserRepo: fundraiserRepo,
		donationRepo:   donationRepo,
	}
}

// GetPublicDetail returns the public page of an active fundraiser with
// derived totals and its most recent donors. Drafts, closed campaigns and
// unknown IDs all read as not found.
func (s *DiscoveryService) GetPublicDetail(ctx context.Context, fundraiserID uuid.UUID) (*PublicFundraiserResponse, error) {
	f, err := s.fundraiserRepo.FindByID(ctx, fundraiserID)
	if err != nil {
		return nil, err
	}
	if !f.IsActive() {
		return nil, shared.ErrNotFound
	}

	totals, err := s.donationRepo.TotalsByFundraiserIDs(ctx, []uuid.UUID{f.ID})
	if err != nil {
		return nil, err
	}

	donors, err := s.donationRepo.RecentByFundraiser(ctx, f.ID, recentDonorLimit)
	if err != nil {
		return nil, err
	}

	response := ToPublicFundraiserResponse(f, totals[f.ID], donors)
	return &response, nil
}

// ListFeatured returns the active campaigns that have collected the most,
// capped at limit
func (s *DiscoveryService) ListFeatured(ctx context.Context, limit int) ([]FundraiserListItemResponse, error) {
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}
	if limit > maxFeaturedLimit {
		limit = maxFeaturedLimit
	}

	fundraisers, err := s.fundraiserRepo.FindFeatured(ctx, limit)
	if err != nil {
		return nil, err
	}

	return s.toListItems(ctx, fundraisers)
}

// Discover lists active campaigns with search, category and location
// filtering
func (s *DiscoveryService) Discover(ctx context.Context, filter FundraiserListFilter) ([]FundraiserListItemResponse, int64, error) {
	domainFilter := toDomainFilter(filter)
	// Discovery never filters on status; it only ever sees active rows.
	delete(domainFilter.Filters, "status")

	fundraisers, err := s.fundraiserRepo.FindActive(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.fundraiserRepo.CountActive(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	items, err := s.toListItems(ctx, fundraisers)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Categories returns the category catalog
func (s *DiscoveryService) Categories() []CategoryResponse {
	return categories
}

func (s *DiscoveryService) toListItems(ctx context.Context, fundraisers []fundraising.Fundraiser) ([]FundraiserListItemResponse, error) {
	ids := make([]uuid.UUID, len(fundraisers))
	for i := range fundraisers {
		ids[i] = fundraisers[i].ID
	}

	totals := map[uuid.UUID]giving.Totals{}
	if len(ids) > 0 {
		var err error
		totals, err = s.donationRepo.TotalsByFundraiserIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	items := make([]FundraiserListItemResponse, len(fundraisers))
	for i := range fundraisers {
		items[i] = ToFundraiserListItemResponse(&fundraisers[i], totals[fundraisers[i].ID])
	}
	return items, nil
}
