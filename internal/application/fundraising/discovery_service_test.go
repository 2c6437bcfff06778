package fundraising

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/madadgar/backend/internal/domain/fundraising"
	"github.com/madadgar/backend/internal/domain/giving"
	"github.com/madadgar/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDiscoveryService() (*DiscoveryService, *MockFundraiserRepository, *MockDonationRepository) {
	fundraiserRepo := new(MockFundraiserRepository)
	donationRepo := new(MockDonationRepository)
	return NewDiscoveryService(fundraiserRepo, donationRepo), fundraiserRepo, donationRepo
}

func donationRow(t *testing.T, fundraiserID uuid.UUID, amount int64, anonymous bool) giving.Donation {
	d, err := giving.NewDonation(fundraiserID, testOwnerID, giving.IntakeParams{
		DonorName: "Sara Ahmed",
		Amount:    decimal.NewFromInt(amount),
		TipAmount: decimal.Zero,
		Method:    giving.PaymentEasypaisa,
		Wallet:    giving.WalletInput{PayerPhone: "03001234567"},
		Anonymous: anonymous,
	})
	require.NoError(t, err)
	return *d
}

func TestDiscoveryService_GetPublicDetail(t *testing.T) {
	t.Run("returns totals and recent donors, never payout data", func(t *testing.T) {
		service, fundraiserRepo, donationRepo := newDiscoveryService()
		ctx := context.Background()
		f := readyDraft(t)
		require.NoError(t, f.Publish())

		fundraiserRepo.On("FindByID", ctx, f.ID).Return(f, nil)
		donationRepo.On("TotalsByFundraiserIDs", ctx, []uuid.UUID{f.ID}).Return(map[uuid.UUID]giving.Totals{
			f.ID: {Collected: decimal.NewFromInt(40000), Supporters: 4},
		}, nil)
		donationRepo.On("RecentByFundraiser", ctx, f.ID, 30).Return([]giving.Donation{
			donationRow(t, f.ID, 1000, false),
			donationRow(t, f.ID, 500, true),
		}, nil)

		resp, err := service.GetPublicDetail(ctx, f.ID)
		require.NoError(t, err)
		assert.True(t, resp.Raised.Equal(decimal.NewFromInt(40000)))
		assert.Equal(t, int64(4), resp.SupporterCount)
		assert.True(t, resp.RemainingAmount.Equal(decimal.NewFromInt(60000)))
		require.Len(t, resp.RecentDonors, 2)
		assert.Equal(t, "Sara Ahmed", resp.RecentDonors[0].Name)
		assert.Equal(t, "Anonymous", resp.RecentDonors[1].Name)
	})

	t.Run("a draft reads as not found", func(t *testing.T) {
		service, fundraiserRepo, _ := newDiscoveryService()
		ctx := context.Background()
		f := draftFundraiser(t)

		fundraiserRepo.On("FindByID", ctx, f.ID).Return(f, nil)

		_, err := service.GetPublicDetail(ctx, f.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("a closed fundraiser reads as not found", func(t *testing.T) {
		service, fundraiserRepo, _ := newDiscoveryService()
		ctx := context.Background()
		f := readyDraft(t)
		require.NoError(t, f.Publish())
		require.NoError(t, f.Close())

		fundraiserRepo.On("FindByID", ctx, f.ID).Return(f, nil)

		_, err := service.GetPublicDetail(ctx, f.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("overfunded campaign shows zero remaining", func(t *testing.T) {
		service, fundraiserRepo, donationRepo := newDiscoveryService()
		ctx := context.Background()
		f := readyDraft(t)
		require.NoError(t, f.Publish())

		fundraiserRepo.On("FindByID", ctx, f.ID).Return(f, nil)
		donationRepo.On("TotalsByFundraiserIDs", ctx, []uuid.UUID{f.ID}).Return(map[uuid.UUID]giving.Totals{
			f.ID: {Collected: decimal.NewFromInt(150000), Supporters: 10},
		}, nil)
		donationRepo.On("RecentByFundraiser", ctx, f.ID, 30).Return([]giving.Donation{}, nil)

		resp, err := service.GetPublicDetail(ctx, f.ID)
		require.NoError(t, err)
		assert.True(t, resp.RemainingAmount.IsZero())
	})
}

func TestDiscoveryService_ListFeatured(t *testing.T) {
	t.Run("defaults and caps the limit", func(t *testing.T) {
		service, fundraiserRepo, donationRepo := newDiscoveryService()
		ctx := context.Background()

		fundraiserRepo.On("FindFeatured", ctx, 12).Return([]fundraising.Fundraiser{}, nil)
		_, err := service.ListFeatured(ctx, 0)
		require.NoError(t, err)

		fundraiserRepo.On("FindFeatured", ctx, 50).Return([]fundraising.Fundraiser{}, nil)
		_, err = service.ListFeatured(ctx, 500)
		require.NoError(t, err)

		donationRepo.AssertNotCalled(t, "TotalsByFundraiserIDs", mock.Anything, mock.Anything)
	})
}

func TestDiscoveryService_Discover(t *testing.T) {
	service, fundraiserRepo, donationRepo := newDiscoveryService()
	ctx := context.Background()
	f := readyDraft(t)
	require.NoError(t, f.Publish())

	fundraiserRepo.On("FindActive", ctx, mock.AnythingOfType("shared.Filter")).Return([]fundraising.Fundraiser{*f}, nil)
	fundraiserRepo.On("CountActive", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)
	donationRepo.On("TotalsByFundraiserIDs", ctx, []uuid.UUID{f.ID}).Return(map[uuid.UUID]giving.Totals{}, nil)

	category := "education"
	items, total, err := service.Discover(ctx, FundraiserListFilter{Category: &category})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "education", items[0].Category)
}

func TestDiscoveryService_Categories(t *testing.T) {
	service, _, _ := newDiscoveryService()
	cats := service.Categories()
	require.NotEmpty(t, cats)
	assert.Equal(t, "education", cats[0].Slug)
}
