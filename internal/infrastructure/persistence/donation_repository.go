package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/madadgar/backend/internal/domain/fundraising"
	"github.com/madadgar/backend/internal/domain/giving"
	"github.com/madadgar/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDonationRepository implements DonationRepository using GORM. The
// donations table is append-only: this repository exposes no update or
// delete path.
type GormDonationRepository struct {
	db         *gorm.DB
	eventSaver shared.OutboxEventSaver
}

// NewGormDonationRepository creates a new GormDonationRepository
func NewGormDonationRepository(db *gorm.DB) *GormDonationRepository {
	return &GormDonationRepository{db: db}
}

// SetEventSaver enables the transactional outbox: pending domain events
// are written to the outbox table in the same transaction as the
// donation row and drained from the aggregate.
func (r *GormDonationRepository) SetEventSaver(saver shared.OutboxEventSaver) {
	r.eventSaver = saver
}

// Append writes a new donation row. The target fundraiser's status is
// re-read inside the same transaction, so a campaign closed between the
// service's check and the insert still rejects the row.
func (r *GormDonationRepository) Append(ctx context.Context, d *giving.Donation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if d.FundraiserID != nil {
			var status string
			err := tx.Model(&fundraising.Fundraiser{}).
				Where("id = ?", *d.FundraiserID).
				Select("status").
				Scan(&status).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return shared.ErrNotFound
				}
				return err
			}
			if status == "" {
				return shared.ErrNotFound
			}
			if status != fundraising.StatusActive.String() {
				return shared.NewStateConflictError("Fundraiser is not accepting donations")
			}
		}

		if err := tx.Create(d).Error; err != nil {
			return err
		}

		if r.eventSaver != nil {
			events := d.GetDomainEvents()
			if len(events) > 0 {
				if err := r.eventSaver.SaveEvents(ctx, tx, events...); err != nil {
					return err
				}
				d.ClearDomainEvents()
			}
		}

		return nil
	})
}

// FindByID finds a donation by its ID
func (r *GormDonationRepository) FindByID(ctx context.Context, id uuid.UUID) (*giving.Donation, error) {
	var d giving.Donation
	if err := r.db.WithContext(ctx).
		First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// fundraiserTotalsRow is the scan target for the grouped totals query
type fundraiserTotalsRow struct {
	FundraiserID uuid.UUID
	Collected    decimal.Decimal
	Supporters   int64
}

// TotalsByFundraiserIDs computes collected amount and supporter count for a
// batch of fundraisers in one grouped query. Fundraisers with no received
// donations are absent from the result map.
func (r *GormDonationRepository) TotalsByFundraiserIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]giving.Totals, error) {
	totals := make(map[uuid.UUID]giving.Totals)
	if len(ids) == 0 {
		return totals, nil
	}

	var rows []fundraiserTotalsRow
	if err := r.db.WithContext(ctx).
		Model(&giving.Donation{}).
		Select("fundraiser_id, COALESCE(SUM(amount), 0) AS collected, COUNT(*) AS supporters").
		Where("fundraiser_id IN ? AND status = ?", ids, giving.DonationReceived).
		Group("fundraiser_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		totals[row.FundraiserID] = giving.Totals{
			Collected:  row.Collected,
			Supporters: row.Supporters,
		}
	}
	return totals, nil
}

// RecentByFundraiser lists the newest received donations for one campaign
func (r *GormDonationRepository) RecentByFundraiser(ctx context.Context, fundraiserID uuid.UUID, limit int) ([]giving.Donation, error) {
	var donations []giving.Donation
	if err := r.db.WithContext(ctx).
		Where("fundraiser_id = ? AND status = ?", fundraiserID, giving.DonationReceived).
		Order("created_at DESC").
		Limit(limit).
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// ListByDonor lists one donor's received donations, newest first
func (r *GormDonationRepository) ListByDonor(ctx context.Context, donorID uuid.UUID, filter shared.Filter) ([]giving.Donation, error) {
	var donations []giving.Donation
	query := r.db.WithContext(ctx).
		Where("donor_id = ? AND status = ?", donorID, giving.DonationReceived)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, DonationSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// CountByDonor counts one donor's received donations
func (r *GormDonationRepository) CountByDonor(ctx context.Context, donorID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&giving.Donation{}).
		Where("donor_id = ? AND status = ?", donorID, giving.DonationReceived).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListByRecipient lists the newest donations received by an owner across all
// their campaigns. Rows whose fundraiser pointer has been cleared are
// included; the owner's money does not disappear with the campaign.
func (r *GormDonationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int) ([]giving.Donation, error) {
	var donations []giving.Donation
	if err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND status = ?", recipientID, giving.DonationReceived).
		Order("created_at DESC").
		Limit(limit).
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// TotalReceivedByRecipient sums everything an owner has received
func (r *GormDonationRepository) TotalReceivedByRecipient(ctx context.Context, recipientID uuid.UUID) (decimal.Decimal, error) {
	return r.sumAmount(ctx, "recipient_id = ?", recipientID)
}

// TotalDonatedByDonor sums everything a donor has given
func (r *GormDonationRepository) TotalDonatedByDonor(ctx context.Context, donorID uuid.UUID) (decimal.Decimal, error) {
	return r.sumAmount(ctx, "donor_id = ?", donorID)
}

func (r *GormDonationRepository) sumAmount(ctx context.Context, condition string, id uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&giving.Donation{}).
		Select("COALESCE(SUM(amount), 0)").
		Where(condition, id).
		Where("status = ?", giving.DonationReceived).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// Ensure GormDonationRepository implements DonationRepository
var _ giving.DonationRepository = (*GormDonationRepository)(nil)
