package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/madadgar/backend/internal/domain/fundraising"
	"github.com/madadgar/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPayoutMethodConfigRepository implements PayoutMethodConfigRepository
// using GORM
type GormPayoutMethodConfigRepository struct {
	db *gorm.DB
}

// NewGormPayoutMethodConfigRepository creates a new GormPayoutMethodConfigRepository
func NewGormPayoutMethodConfigRepository(db *gorm.DB) *GormPayoutMethodConfigRepository {
	return &GormPayoutMethodConfigRepository{db: db}
}

// ListByFundraiser lists all configured channels for a fundraiser in a
// stable method order
func (r *GormPayoutMethodConfigRepository) ListByFundraiser(ctx context.Context, fundraiserID uuid.UUID) ([]fundraising.PayoutMethodConfig, error) {
	var configs []fundraising.PayoutMethodConfig
	if err := r.db.WithContext(ctx).
		Where("fundraiser_id = ?", fundraiserID).
		Order("method ASC").
		Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

// FindByMethod finds the channel row for one method, if configured
func (r *GormPayoutMethodConfigRepository) FindByMethod(ctx context.Context, fundraiserID uuid.UUID, method fundraising.PayoutMethod) (*fundraising.PayoutMethodConfig, error) {
	var config fundraising.PayoutMethodConfig
	if err := r.db.WithContext(ctx).
		Where("fundraiser_id = ? AND method = ?", fundraiserID, method).
		First(&config).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &config, nil
}

// ReplaceAll upserts a batch of channels for a fundraiser in one
// transaction. Each row lands on its (fundraiser, method) slot, replacing
// whatever was stored there.
func (r *GormPayoutMethodConfigRepository) ReplaceAll(ctx context.Context, fundraiserID uuid.UUID, configs []fundraising.PayoutMethodConfig) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range configs {
			configs[i].FundraiserID = fundraiserID

			var existing fundraising.PayoutMethodConfig
			err := tx.Where("fundraiser_id = ? AND method = ?", fundraiserID, configs[i].Method).
				First(&existing).Error
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				if err := tx.Create(&configs[i]).Error; err != nil {
					return err
				}
				continue
			}

			// Keep the slot's identity, replace its payload.
			configs[i].ID = existing.ID
			configs[i].CreatedAt = existing.CreatedAt
			configs[i].UpdatedAt = time.Now()
			if err := tx.Model(&fundraising.PayoutMethodConfig{}).
				Where("id = ?", existing.ID).
				Updates(map[string]interface{}{
					"enabled":             configs[i].Enabled,
					"bank_account_title":  configs[i].Bank.AccountTitle,
					"bank_account_number": configs[i].Bank.AccountNumber,
					"bank_iban":           configs[i].Bank.IBAN,
					"bank_raast_id":       configs[i].Bank.RaastID,
					"wallet_phone_number": configs[i].Wallet.PhoneNumber,
					"updated_at":          configs[i].UpdatedAt,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// HasEnabled reports whether at least one enabled channel exists
func (r *GormPayoutMethodConfigRepository) HasEnabled(ctx context.Context, fundraiserID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&fundraising.PayoutMethodConfig{}).
		Where("fundraiser_id = ? AND enabled = ?", fundraiserID, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteByFundraiser removes all channels for a fundraiser
func (r *GormPayoutMethodConfigRepository) DeleteByFundraiser(ctx context.Context, fundraiserID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("fundraiser_id = ?", fundraiserID).
		Delete(&fundraising.PayoutMethodConfig{}).Error
}

// Ensure GormPayoutMethodConfigRepository implements PayoutMethodConfigRepository
var _ fundraising.PayoutMethodConfigRepository = (*GormPayoutMethodConfigRepository)(nil)
