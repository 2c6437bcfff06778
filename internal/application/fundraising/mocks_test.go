package fundraising

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/madadgar/backend/internal/domain/fundraising"
	"github.com/madadgar/backend/internal/domain/giving"
	"github.com/madadgar/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockFundraiserRepository is a mock implementation of FundraiserRepository
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

// MockPayoutMethodConfigRepository is a mock implementation of
// PayoutMethodConfigRepository
type MockPayoutMethodConfigRepository struct {
	mock.Mock
}

func (m *MockPayoutMethodConfigRepository) ListByFundraiser(ctx context.Context, fundraiserID uuid.UUID) ([]fundraising.PayoutMethodConfig, error) {
	args := m.Called(ctx, fundraiserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fundraising.PayoutMethodConfig), args.Error(1)
}

func (m *MockPayoutMethodConfigRepository) FindByMethod(ctx context.Context, fundraiserID uuid.UUID, method fundraising.PayoutMethod) (*fundraising.PayoutMethodConfig, error) {
	args := m.Called(ctx, fundraiserID, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fundraising.PayoutMethodConfig), args.Error(1)
}

func (m *MockPayoutMethodConfigRepository) ReplaceAll(ctx context.Context, fundraiserID uuid.UUID, configs []fundraising.PayoutMethodConfig) error {
	args := m.Called(ctx, fundraiserID, configs)
	return args.Error(0)
}

func (m *MockPayoutMethodConfigRepository) HasEnabled(ctx context.Context, fundraiserID uuid.UUID) (bool, error) {
	args := m.Called(ctx, fundraiserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPayoutMethodConfigRepository) DeleteByFundraiser(ctx context.Context, fundraiserID uuid.UUID) error {
	args := m.Called(ctx, fundraiserID)
	return args.Error(0)
}

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

// MockObjectStorageService is a mock implementation of ObjectStorageService
type MockObjectStorageService struct {
	mock.Mock
}

func (m *MockObjectStorageService) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorageService) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorageService) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorageService) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}
