package fundraising

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/madadgar/backend/internal/domain/fundraising"
	"github.com/madadgar/backend/internal/domain/giving"
	"github.com/madadgar/backend/internal/domain/shared"
	"github.com/madadgar/backend/internal/infrastructure/telemetry"
)

// FundraiserService handles campaign lifecycle operations for owners
type FundraiserService struct {
	fundraiserRepo fundraising.FundraiserRepository
	payoutRepo     fundraising.PayoutMethodConfigRepository
	donationRepo   giving.DonationRepository
	eventPublisher shared.EventPublisher
	metrics        *telemetry.BusinessMetrics
}

// NewFundraiserService creates a new FundraiserService
func NewFundraiserService(
	fundraiserRepo fundraising.FundraiserRepository,
	payoutRepo fundraising.PayoutMethodConfigRepository,
	donationRepo giving.DonationRepository,
) *FundraiserService {
	return &FundraiserService{
		fundraiserRepo: fundraiserRepo,
		payoutRepo:     payoutRepo,
		donationRepo:   donationRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *FundraiserService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetBusinessMetrics enables counters for outcomes that produce no domain
// event, such as a failed publish gate. A nil receiver stays a no-op.
func (s *FundraiserService) SetBusinessMetrics(metrics *telemetry.BusinessMetrics) {
	s.metrics = metrics
}

// CreateDraft creates a new draft fundraiser owned by the caller
func (s *FundraiserService) CreateDraft(ctx context.Context, ownerID uuid.UUID, req CreateFundraiserRequest) (*FundraiserResponse, error) {
	f, err := fundraising.NewFundraiser(ownerID, fundraising.Purpose(req.Purpose))
	if err != nil {
		return nil, err
	}

	if err := s.fundraiserRepo.Save(ctx, f); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, f)

	response := ToFundraiserResponse(f, giving.ZeroTotals())
	return &response, nil
}

// GetOwnerDetail retrieves one of the caller's fundraisers with derived
// totals
func (s *FundraiserService) GetOwnerDetail(ctx context.Context, ownerID, fundraiserID uuid.UUID) (*FundraiserResponse, error) {
	f, err := s.fundraiserRepo.FindByIDForOwner(ctx, ownerID, fundraiserID)
	if err != nil {
		return nil, err
	}

	totals, err := s.totalsFor(ctx, []uuid.UUID{f.ID})
	if err != nil {
		return nil, err
	}

	response := ToFundraiserResponse(f, totals[f.ID])
	return &response, nil
}

// ListOwner lists the caller's fundraisers across all statuses. Collected
// amounts and supporter counts come from one batched ledger query, not a
// per-row lookup.
func (s *FundraiserService) ListOwner(ctx context.Context, ownerID uuid.UUID, filter FundraiserListFilter) ([]FundraiserListItemResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	fundraisers, err := s.fundraiserRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.fundraiserRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	items, err := s.toListItems(ctx, fundraisers)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// UpdateBasics edits the core campaign fields of a caller's fundraiser
func (s *FundraiserService) UpdateBasics(ctx context.Context, ownerID, fundraiserID uuid.UUID, req UpdateBasicsRequest) (*FundraiserResponse, error) {
	f, err := s.fundraiserRepo.FindByIDForOwner(ctx, ownerID, fundraiserID)
	if err != nil {
		return nil, err
	}

	if err := f.UpdateBasics(req.Title, req.Location, req.Category, req.TargetAmount, req.Deadline); err != nil {
		return nil, err
	}
	if req.Description != nil {
		f.SetDescription(*req.Description)
	}

	if err := s.fundraiserRepo.SaveWithLock(ctx, f); err != nil {
		return nil, err
	}

	return s.GetOwnerDetail(ctx, ownerID, fundraiserID)
}

// SetStartDetails records the purpose classification of a caller's
// fundraiser
func (s *FundraiserService) SetStartDetails(ctx context.Context, ownerID, fundraiserID uuid.UUID, req StartDetailsRequest) (*FundraiserResponse, error) {
	f, err := s.fundraiserRepo.FindByIDForOwner(ctx, ownerID, fundraiserID)
	if err != nil {
		return nil, err
	}

	child := fundraising.ChildDetails{
		DoneeName:      req.DoneeName,
		Gender:         req.Gender,
		EducationLevel: req.EducationLevel,
	}
	institution := fundraising.InstitutionDetails{
		Name:               req.InstitutionName,
		Type:               req.InstitutionType,
		RegistrationNumber: req.InstitutionRegistrationNumber,
	}

	if err := f.SetStartDetails(fundraising.Purpose(req.Purpose), child, institution); err != nil {
		return nil, err
	}

	if err := s.fundraiserRepo.SaveWithLock(ctx, f); err != nil {
		return nil, err
	}

	return s.GetOwnerDetail(ctx, ownerID, fundraiserID)
}

// SetCoverImage records the cover image URL on a caller's fundraiser
func (s *FundraiserService) SetCoverImage(ctx context.Context, ownerID, fundraiserID uuid.UUID, req SetCoverImageRequest) (*FundraiserResponse, error) {
	f, err := s.fundraiserRepo.FindByIDForOwner(ctx, ownerID, fundraiserID)
	if err != nil {
		return nil, err
	}

	if err := f.SetCoverImage(req.URL); err != nil {
		return nil, err
	}

	if err := s.fundraiserRepo.SaveWithLock(ctx, f); err != nil {
		return nil, err
	}

	return s.GetOwnerDetail(ctx, ownerID, fundraiserID)
}

// AddDocument attaches a supporting document to a caller's fundraiser
func (s *FundraiserService) AddDocument(ctx context.Context, ownerID, fundraiserID uuid.UUID, req AddDocumentRequest) (*DocumentResponse, error) {
	f, err := s.fundraiserRepo.FindByIDForOwner(ctx, ownerID, fundraiserID)
	if err != nil {
		return nil, err
	}

	doc, err := f.AddDocument(req.Name, req.URL)
	if err != nil {
		return nil, err
	}

	if err := s.fundraiserRepo.SaveWithLock(ctx, f); err != nil {
		return nil, err
	}

	return &DocumentResponse{
		ID:         doc.ID,
		Name:       doc.Name,
		URL:        doc.URL,
		UploadedAt: doc.UploadedAt,
	}, nil
}

// RemoveDocument detaches a supporting document from a caller's fundraiser
func (s *FundraiserService) RemoveDocument(ctx context.Context, ownerID, fundraiserID, documentID uuid.UUID) error {
	f, err := s.fundraiserRepo.FindByIDForOwner(ctx, ownerID, fundraiserID)
	if err != nil {
		return err
	}

	if err := f.RemoveDocument(documentID); err != nil {
		return err
	}

	return s.fundraiserRepo.SaveWithLock(ctx, f)
}

// Publish takes a caller's draft live. The readiness checklist runs against
// current state; an already-active fundraiser publishes as a no-op.
func (s *FundraiserService) Publish(ctx context.Context, ownerID, fundraiserID uuid.UUID) (*FundraiserResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "fundraiser", "publish",
		telemetry.WithAttribute(telemetry.SpanAttrFundraiserID, fundraiserID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrOwnerID, ownerID.String()),
	)
	defer span.End()

	f, err := s.fundraiserRepo.FindByIDForOwner(ctx, ownerID, fundraiserID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCategory, f.Category,
		telemetry.SpanAttrPurpose, string(f.Purpose),
	)

	if !f.IsActive() {
		configs, err := s.payoutRepo.ListByFundraiser(ctx, f.ID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		if err := fundraising.CheckPublishGate(f, configs); err != nil {
			telemetry.RecordError(span, err)
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) {
				s.metrics.RecordPublishGateFailure(ctx, domainErr.Field)
			}
			return nil, err
		}
	}

	if err := f.Publish(); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.fundraiserRepo.SaveWithLock(ctx, f); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrFundraiserStatus, string(f.Status))
	s.publishEvents(ctx, f)

	return s.GetOwnerDetail(ctx, ownerID, fundraiserID)
}

// Close ends a caller's active fundraiser. Closing an already-closed one
// succeeds without change.
func (s *FundraiserService) Close(ctx context.Context, ownerID, fundraiserID uuid.UUID) (*FundraiserResponse, error) {
	f, err := s.fundraiserRepo.FindByIDForOwner(ctx, ownerID, fundraiserID)
	if err != nil {
		return nil, err
	}

	if err := f.Close(); err != nil {
		return nil, err
	}

	if err := s.fundraiserRepo.SaveWithLock(ctx, f); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, f)

	return s.GetOwnerDetail(ctx, ownerID, fundraiserID)
}

// SetLinkedFundraiser sets or clears the continuation pointer on a caller's
// fundraiser
func (s *FundraiserService) SetLinkedFundraiser(ctx context.Context, ownerID, fundraiserID uuid.UUID, req SetLinkedFundraiserRequest) (*FundraiserResponse, error) {
	f, err := s.fundraiserRepo.FindByIDForOwner(ctx, ownerID, fundraiserID)
	if err != nil {
		return nil, err
	}

	if req.LinkedFundraiserID == nil {
		f.ClearLink()
	} else {
		target, err := s.fundraiserRepo.FindByIDForOwner(ctx, ownerID, *req.LinkedFundraiserID)
		if err != nil {
			return nil, err
		}
		if err := f.LinkTo(target); err != nil {
			return nil, err
		}
	}

	if err := s.fundraiserRepo.SaveWithLock(ctx, f); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, f)

	return s.GetOwnerDetail(ctx, ownerID, fundraiserID)
}

// Dashboard summarizes the caller's account: money received across their
// campaigns, money they gave, and campaign counts per status
func (s *FundraiserService) Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardResponse, error) {
	totalReceived, err := s.donationRepo.TotalReceivedByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}
	totalDonated, err := s.donationRepo.TotalDonatedByDonor(ctx, userID)
	if err != nil {
		return nil, err
	}

	activeCount, err := s.fundraiserRepo.CountForOwnerByStatus(ctx, userID, fundraising.StatusActive)
	if err != nil {
		return nil, err
	}
	closedCount, err := s.fundraiserRepo.CountForOwnerByStatus(ctx, userID, fundraising.StatusClosed)
	if err != nil {
		return nil, err
	}
	draftCount, err := s.fundraiserRepo.CountForOwnerByStatus(ctx, userID, fundraising.StatusDraft)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		TotalReceived: totalReceived,
		TotalDonated:  totalDonated,
		ActiveCount:   activeCount,
		ClosedCount:   closedCount,
		DraftCount:    draftCount,
	}, nil
}

// totalsFor fetches derived totals for a batch of fundraisers
func (s *FundraiserService) totalsFor(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]giving.Totals, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]giving.Totals{}, nil
	}
	return s.donationRepo.TotalsByFundraiserIDs(ctx, ids)
}

func (s *FundraiserService) toListItems(ctx context.Context, fundraisers []fundraising.Fundraiser) ([]FundraiserListItemResponse, error) {
	ids := make([]uuid.UUID, len(fundraisers))
	for i := range fundraisers {
		ids[i] = fundraisers[i].ID
	}

	totals, err := s.totalsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]FundraiserListItemResponse, len(fundraisers))
	for i := range fundraisers {
		items[i] = ToFundraiserListItemResponse(&fundraisers[i], totals[fundraisers[i].ID])
	}
	return items, nil
}

func (s *FundraiserService) publishEvents(ctx context.Context, f *fundraising.Fundraiser) {
	if s.eventPublisher == nil {
		return
	}
	events := f.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Event delivery is best-effort; the state change already committed.
	_ = s.eventPublisher.Publish(ctx, events...)
	f.ClearDomainEvents()
}

func toDomainFilter(filter FundraiserListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}
	if filter.Category != nil {
		domainFilter.Filters["category"] = *filter.Category
	}
	if filter.Location != nil {
		domainFilter.Filters["location"] = *filter.Location
	}

	return domainFilter
}
