package fundraising

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/madadgar/backend/internal/domain/fundraising"
	"github.com/madadgar/backend/internal/domain/shared"
)

// PayoutService handles payout channel configuration for owners
type PayoutService struct {
	fundraiserRepo fundraising.FundraiserRepository
	payoutRepo     fundraising.PayoutMethodConfigRepository
}

// NewPayoutService creates a new PayoutService
func NewPayoutService(
	fundraiserRepo fundraising.FundraiserRepository,
	payoutRepo fundraising.PayoutMethodConfigRepository,
) *PayoutService {
	return &PayoutService{
		fundraiserRepo: fundraiserRepo,
		payoutRepo:     payoutRepo,
	}
}

// GetPayoutConfig returns the configured channels of the caller's
// fundraiser. Payout data is owner-only and never leaves this surface.
func (s *PayoutService) GetPayoutConfig(ctx context.Context, ownerID, fundraiserID uuid.UUID) (*PayoutConfigResponse, error) {
	f, err := s.fundraiserRepo.FindByIDForOwner(ctx, ownerID, fundraiserID)
	if err != nil {
		return nil, err
	}

	configs, err := s.payoutRepo.ListByFundraiser(ctx, f.ID)
	if err != nil {
		return nil, err
	}

	methods := make([]PayoutMethodResponse, len(configs))
	for i := range configs {
		methods[i] = ToPayoutMethodResponse(&configs[i])
	}

	return &PayoutConfigResponse{
		FundraiserID:        f.ID,
		ReimbursementPeriod: string(f.ReimbursementPeriod),
		PayoutMethods:       methods,
	}, nil
}

// SavePayoutConfig upserts the submitted channels onto the caller's
// fundraiser. Each channel lands on its (fundraiser, method) slot; channels
// not in the request are left untouched. A request naming the same method
// twice is rejected whole, and a validation failure on any channel saves
// nothing.
func (s *PayoutService) SavePayoutConfig(ctx context.Context, ownerID, fundraiserID uuid.UUID, req SavePayoutConfigRequest) (*PayoutConfigResponse, error) {
	f, err := s.fundraiserRepo.FindByIDForOwner(ctx, ownerID, fundraiserID)
	if err != nil {
		return nil, err
	}

	seen := make(map[fundraising.PayoutMethod]bool)
	configs := make([]fundraising.PayoutMethodConfig, 0, len(req.PayoutMethods))
	for _, input := range req.PayoutMethods {
		method := fundraising.PayoutMethod(input.Method)
		if seen[method] {
			return nil, shared.NewStateConflictError(fmt.Sprintf("Method %q appears more than once", input.Method))
		}
		seen[method] = true

		cfg, err := fundraising.NewPayoutMethodConfig(
			f.ID,
			method,
			input.IsEnabled,
			fundraising.BankDetails{
				AccountTitle:  input.BankAccountTitle,
				AccountNumber: input.BankAccountNumber,
				IBAN:          input.BankIBAN,
				RaastID:       input.BankRaastID,
			},
			fundraising.WalletDetails{PhoneNumber: input.PhoneNumber},
		)
		if err != nil {
			return nil, err
		}
		configs = append(configs, *cfg)
	}

	if req.ReimbursementPeriod != "" {
		if err := f.SetReimbursementPeriod(fundraising.ReimbursementPeriod(req.ReimbursementPeriod)); err != nil {
			return nil, err
		}
		if err := s.fundraiserRepo.SaveWithLock(ctx, f); err != nil {
			return nil, err
		}
	}

	if err := s.payoutRepo.ReplaceAll(ctx, f.ID, configs); err != nil {
		return nil, err
	}

	return s.GetPayoutConfig(ctx, ownerID, fundraiserID)
}
