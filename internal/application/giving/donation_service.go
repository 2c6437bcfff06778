package giving

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/madadgar/backend/internal/domain/fundraising"
	"github.com/madadgar/backend/internal/domain/giving"
	"github.com/madadgar/backend/internal/domain/shared"
	"github.com/madadgar/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
)

const (
	balanceRecentLimit = 50
	donorHistoryLimit  = 1000
)

// IdempotencyStore remembers which intake keys already produced a donation,
// so a retried submission returns the original row instead of double
// charging
type IdempotencyStore interface {
	// Get returns the donation recorded under the key, if any
	Get(ctx context.Context, key string) (uuid.UUID, bool, error)
	// Set records the donation produced by the key
	Set(ctx context.Context, key string, donationID uuid.UUID) error
}

// DonationService handles donation intake and donor-facing reads
type DonationService struct {
	donationRepo   giving.DonationRepository
	fundraiserRepo fundraising.FundraiserRepository
	idempotency    IdempotencyStore
	eventPublisher shared.EventPublisher
	metrics        *telemetry.BusinessMetrics
}

// NewDonationService creates a new DonationService
func NewDonationService(
	donationRepo giving.DonationRepository,
	fundraiserRepo fundraising.FundraiserRepository,
) *DonationService {
	return &DonationService{
		donationRepo:   donationRepo,
		fundraiserRepo: fundraiserRepo,
	}
}

// SetBusinessMetrics enables counters for outcomes that produce no domain
// event, such as a submission answered from the idempotency store. A nil
// receiver stays a no-op.
func (s *DonationService) SetBusinessMetrics(metrics *telemetry.BusinessMetrics) {
	s.metrics = metrics
}

// SetIdempotencyStore enables intake deduplication by client key
func (s *DonationService) SetIdempotencyStore(store IdempotencyStore) {
	s.idempotency = store
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *DonationService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Submit records a donation against an active fundraiser. donorID is nil
// for guest donors. idempotencyKey may be empty; when present, a repeated
// key returns the donation the first submission produced.
func (s *DonationService) Submit(ctx context.Context, fundraiserID uuid.UUID, donorID *uuid.UUID, idempotencyKey string, req SubmitDonationRequest) (*DonationResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "donation", "submit",
		telemetry.WithAttribute(telemetry.SpanAttrFundraiserID, fundraiserID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrDonationMethod, req.PaymentMethod),
	)
	defer span.End()

	if s.idempotency != nil && idempotencyKey != "" {
		if existingID, ok, err := s.idempotency.Get(ctx, idempotencyKey); err == nil && ok {
			existing, err := s.donationRepo.FindByID(ctx, existingID)
			if err != nil {
				return nil, err
			}
			s.metrics.RecordDuplicateDonation(ctx, req.PaymentMethod)
			response := ToDonationResponse(existing)
			return &response, nil
		}
	}

	f, err := s.fundraiserRepo.FindByID(ctx, fundraiserID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if !f.AcceptsDonations() {
		err := shared.NewStateConflictError("Fundraiser is not accepting donations")
		telemetry.RecordError(span, err)
		return nil, err
	}

	donation, err := giving.NewDonation(f.ID, f.OwnerID, giving.IntakeParams{
		DonorID:        donorID,
		DonorName:      req.DonorName,
		Amount:         req.Amount,
		TipAmount:      req.TipAmount,
		FrequencyLabel: req.FrequencyLabel,
		Method:         giving.PaymentMethod(req.PaymentMethod),
		Card: giving.CardInput{
			HolderName: req.CardHolderName,
			Number:     req.CardNumber,
			CVC:        req.CardCVC,
			Expiry:     req.CardExpiry,
		},
		Wallet:    giving.WalletInput{PayerPhone: req.PayerPhone},
		Anonymous: req.IsAnonymous,
		Message:   req.Message,
	})
	if err != nil {
		return nil, err
	}

	// Append re-checks the campaign is still active inside the insert
	// transaction, closing the race with a concurrent close.
	if err := s.donationRepo.Append(ctx, donation); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.AddEvent(span, "donation_recorded",
		telemetry.SpanAttrDonationID, donation.ID.String(),
		telemetry.SpanAttrAmount, donation.Amount.InexactFloat64(),
		telemetry.SpanAttrTipAmount, donation.TipAmount.InexactFloat64(),
	)

	if s.idempotency != nil && idempotencyKey != "" {
		// A failed remember only costs dedup of a later retry.
		_ = s.idempotency.Set(ctx, idempotencyKey, donation.ID)
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, donation.GetDomainEvents()...)
		donation.ClearDomainEvents()
	}

	response := ToDonationResponse(donation)
	return &response, nil
}

// ListMyDonations returns the caller's giving history grouped per campaign,
// with each campaign's remaining-to-target computed from live ledger
// totals. The filter narrows groups by campaign title and picks the
// ordering; by default the most recently donated-to campaign comes first.
func (s *DonationService) ListMyDonations(ctx context.Context, donorID uuid.UUID, filter MyDonationsFilter) ([]DonationGroupResponse, error) {
	// Grouping needs the donor's full history, not one page of it.
	page := shared.DefaultFilter()
	page.PageSize = donorHistoryLimit
	donations, err := s.donationRepo.ListByDonor(ctx, donorID, page)
	if err != nil {
		return nil, err
	}

	groups := giving.GroupByFundraiser(donations)

	ids := make([]uuid.UUID, 0, len(groups))
	for _, g := range groups {
		if g.FundraiserID != nil {
			ids = append(ids, *g.FundraiserID)
		}
	}

	totals := map[uuid.UUID]giving.Totals{}
	if len(ids) > 0 {
		totals, err = s.donationRepo.TotalsByFundraiserIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	responses := make([]DonationGroupResponse, len(groups))
	for i, g := range groups {
		resp := DonationGroupResponse{
			FundraiserID:  g.FundraiserID,
			TotalDonated:  g.TotalDonated,
			DonationCount: g.DonationCount,
			LastDonatedAt: g.LastDonatedAt,
		}
		if g.FundraiserID != nil {
			f, err := s.fundraiserRepo.FindByID(ctx, *g.FundraiserID)
			if err == nil {
				resp.FundraiserTitle = f.Title
				resp.TargetAmount = f.TargetAmount
				resp.RemainingAmount = f.RemainingToTarget(totals[f.ID].Collected).Amount()
				resp.Status = f.Status.String()
			} else {
				resp.RemainingAmount = decimal.Zero
			}
		}
		responses[i] = resp
	}

	if q := strings.ToLower(strings.TrimSpace(filter.Search)); q != "" {
		matched := responses[:0]
		for _, r := range responses {
			if strings.Contains(strings.ToLower(r.FundraiserTitle), q) {
				matched = append(matched, r)
			}
		}
		responses = matched
	}

	switch filter.OrderBy {
	case "amount":
		sort.SliceStable(responses, func(i, j int) bool {
			return responses[i].TotalDonated.GreaterThan(responses[j].TotalDonated)
		})
	case "title":
		sort.SliceStable(responses, func(i, j int) bool {
			return responses[i].FundraiserTitle < responses[j].FundraiserTitle
		})
	}

	return responses, nil
}

// Balance returns the caller's received-money view: the lifetime total
// across all their campaigns plus the most recent rows, including
// donations whose campaign has since been deleted
func (s *DonationService) Balance(ctx context.Context, ownerID uuid.UUID) (*BalanceResponse, error) {
	total, err := s.donationRepo.TotalReceivedByRecipient(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	recent, err := s.donationRepo.ListByRecipient(ctx, ownerID, balanceRecentLimit)
	if err != nil {
		return nil, err
	}

	return &BalanceResponse{
		TotalReceived: total,
		Recent:        ToDonationResponses(recent),
	}, nil
}
