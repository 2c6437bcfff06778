package fundraising

import (
	"context"
	"testing"

	"github.com/madadgar/backend/internal/domain/fundraising"
	"github.com/madadgar/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPayoutService() (*PayoutService, *MockFundraiserRepository, *MockPayoutMethodConfigRepository) {
	fundraiserRepo := new(MockFundraiserRepository)
	payoutRepo := new(MockPayoutMethodConfigRepository)
	return NewPayoutService(fundraiserRepo, payoutRepo), fundraiserRepo, payoutRepo
}

func TestPayoutService_GetPayoutConfig(t *testing.T) {
	service, fundraiserRepo, payoutRepo := newPayoutService()
	ctx := context.Background()
	f := draftFundraiser(t)

	fundraiserRepo.On("FindByIDForOwner", ctx, testOwnerID, f.ID).Return(f, nil)
	payoutRepo.On("ListByFundraiser", ctx, f.ID).Return([]fundraising.PayoutMethodConfig{enabledWalletConfig(t, f.ID)}, nil)

	resp, err := service.GetPayoutConfig(ctx, testOwnerID, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "7_days", resp.ReimbursementPeriod)
	require.Len(t, resp.PayoutMethods, 1)
	assert.Equal(t, "easypaisa", resp.PayoutMethods[0].Method)
	assert.True(t, resp.PayoutMethods[0].IsEnabled)
	assert.Equal(t, "03001234567", resp.PayoutMethods[0].PhoneNumber)
}

func TestPayoutService_SavePayoutConfig(t *testing.T) {
	t.Run("saves bank and wallet channels", func(t *testing.T) {
		service, fundraiserRepo, payoutRepo := newPayoutService()
		ctx := context.Background()
		f := draftFundraiser(t)

		fundraiserRepo.On("FindByIDForOwner", ctx, testOwnerID, f.ID).Return(f, nil)
		payoutRepo.On("ReplaceAll", ctx, f.ID, mock.AnythingOfType("[]fundraising.PayoutMethodConfig")).Return(nil)
		payoutRepo.On("ListByFundraiser", ctx, f.ID).Return([]fundraising.PayoutMethodConfig{}, nil)

		_, err := service.SavePayoutConfig(ctx, testOwnerID, f.ID, SavePayoutConfigRequest{
			PayoutMethods: []PayoutMethodInput{
				{Method: "bank", IsEnabled: true, BankAccountTitle: "Ali Khan", BankAccountNumber: "0101234567"},
				{Method: "nayapay", IsEnabled: true, PhoneNumber: "03001234567"},
			},
		})
		require.NoError(t, err)
		payoutRepo.AssertCalled(t, "ReplaceAll", ctx, f.ID, mock.MatchedBy(func(configs []fundraising.PayoutMethodConfig) bool {
			return len(configs) == 2
		}))
	})

	t.Run("rejects the same method twice in one request", func(t *testing.T) {
		service, fundraiserRepo, payoutRepo := newPayoutService()
		ctx := context.Background()
		f := draftFundraiser(t)

		fundraiserRepo.On("FindByIDForOwner", ctx, testOwnerID, f.ID).Return(f, nil)

		_, err := service.SavePayoutConfig(ctx, testOwnerID, f.ID, SavePayoutConfigRequest{
			PayoutMethods: []PayoutMethodInput{
				{Method: "raast", IsEnabled: true, PhoneNumber: "03001111111"},
				{Method: "raast", IsEnabled: true, PhoneNumber: "03002222222"},
			},
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "STATE_CONFLICT", domainErr.Code)
		payoutRepo.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("one invalid channel saves nothing", func(t *testing.T) {
		service, fundraiserRepo, payoutRepo := newPayoutService()
		ctx := context.Background()
		f := draftFundraiser(t)

		fundraiserRepo.On("FindByIDForOwner", ctx, testOwnerID, f.ID).Return(f, nil)

		_, err := service.SavePayoutConfig(ctx, testOwnerID, f.ID, SavePayoutConfigRequest{
			PayoutMethods: []PayoutMethodInput{
				{Method: "sadapay", IsEnabled: true, PhoneNumber: "03001111111"},
				{Method: "jazzcash", IsEnabled: true}, // no phone
			},
		})
		assert.Error(t, err)
		payoutRepo.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("updates the reimbursement period", func(t *testing.T) {
		service, fundraiserRepo, payoutRepo := newPayoutService()
		ctx := context.Background()
		f := draftFundraiser(t)

		fundraiserRepo.On("FindByIDForOwner", ctx, testOwnerID, f.ID).Return(f, nil)
		fundraiserRepo.On("SaveWithLock", ctx, f).Return(nil)
		payoutRepo.On("ReplaceAll", ctx, f.ID, mock.AnythingOfType("[]fundraising.PayoutMethodConfig")).Return(nil)
		payoutRepo.On("ListByFundraiser", ctx, f.ID).Return([]fundraising.PayoutMethodConfig{}, nil)

		resp, err := service.SavePayoutConfig(ctx, testOwnerID, f.ID, SavePayoutConfigRequest{
			ReimbursementPeriod: "30_days",
			PayoutMethods: []PayoutMethodInput{
				{Method: "raast", IsEnabled: true, PhoneNumber: "03001111111"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "30_days", resp.ReimbursementPeriod)
	})
}
