package giving

import (
	"context"

	"github.com/google/uuid"
	"github.com/madadgar/backend/internal/domain/fundraising"
	"github.com/madadgar/backend/internal/domain/giving"
	"github.com/madadgar/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockDonationRepository is a mock implementation of giving.DonationRepository
type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) Append(ctx context.Context, d *giving.Donation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDonationRepository) FindByID(ctx context.Context, id uuid.UUID) (*giving.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*giving.Donation), args.Error(1)
}

func (m *MockDonationRepository) TotalsByFundraiserIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]giving.Totals, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]giving.Totals), args.Error(1)
}

func (m *MockDonationRepository) RecentByFundraiser(ctx context.Context, fundraiserID uuid.UUID, limit int) ([]giving.Donation, error) {
	args := m.Called(ctx, fundraiserID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]giving.Donation), args.Error(1)
}

func (m *MockDonationRepository) ListByDonor(ctx context.Context, donorID uuid.UUID, filter shared.Filter) ([]giving.Donation, error) {
	args := m.Called(ctx, donorID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]giving.Donation), args.Error(1)
}

func (m *MockDonationRepository) CountByDonor(ctx context.Context, donorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, donorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDonationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int) ([]giving.Donation, error) {
	args := m.Called(ctx, recipientID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]giving.Donation), args.Error(1)
}

func (m *MockDonationRepository) TotalReceivedByRecipient(ctx context.Context, recipientID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockDonationRepository) TotalDonatedByDonor(ctx context.Context, donorID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, donorID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockFundraiserRepository is a mock implementation of
// fundraising.FundraiserRepository
type MockFundraiserRepository struct {
	mock.Mock
}

func (m *MockFundraiserRepository) FindByID(ctx context.Context, id uuid.UUID) (*fundraising.Fundraiser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fundraising.Fundraiser), args.Error(1)
}

func (m *MockFundraiserRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*fundraising.Fundraiser, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fundraising.Fundraiser), args.Error(1)
}

func (m *MockFundraiserRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*fundraising.Fundraiser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fundraising.Fundraiser), args.Error(1)
}

func (m *MockFundraiserRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]fundraising.Fundraiser, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fundraising.Fundraiser), args.Error(1)
}

func (m *MockFundraiserRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFundraiserRepository) CountForOwnerByStatus(ctx context.Context, ownerID uuid.UUID, status fundraising.Status) (int64, error) {
	args := m.Called(ctx, ownerID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFundraiserRepository) FindActive(ctx context.Context, filter shared.Filter) ([]fundraising.Fundraiser, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fundraising.Fundraiser), args.Error(1)
}

func (m *MockFundraiserRepository) CountActive(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFundraiserRepository) FindFeatured(ctx context.Context, limit int) ([]fundraising.Fundraiser, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fundraising.Fundraiser), args.Error(1)
}

func (m *MockFundraiserRepository) Save(ctx context.Context, f *fundraising.Fundraiser) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFundraiserRepository) SaveWithLock(ctx context.Context, f *fundraising.Fundraiser) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFundraiserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) Get(ctx context.Context, key string) (uuid.UUID, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(uuid.UUID), args.Bool(1), args.Error(2)
}

func (m *MockIdempotencyStore) Set(ctx context.Context, key string, donationID uuid.UUID) error {
	args := m.Called(ctx, key, donationID)
	return args.Error(0)
}
