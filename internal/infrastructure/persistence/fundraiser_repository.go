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

// GormFundraiserRepository implements FundraiserRepository using GORM
type GormFundraiserRepository struct {
	db         *gorm.DB
	eventSaver shared.OutboxEventSaver
}

// NewGormFundraiserRepository creates a new GormFundraiserRepository
func NewGormFundraiserRepository(db *gorm.DB) *GormFundraiserRepository {
	return &GormFundraiserRepository{db: db}
}

// SetEventSaver enables the transactional outbox: pending domain events
// are written to the outbox table in the same transaction as the
// aggregate and drained from it, so the save and its events commit or
// roll back together.
func (r *GormFundraiserRepository) SetEventSaver(saver shared.OutboxEventSaver) {
	r.eventSaver = saver
}

// drainEvents writes the aggregate's pending events to the outbox
// within tx and clears them
func (r *GormFundraiserRepository) drainEvents(ctx context.Context, tx *gorm.DB, f *fundraising.Fundraiser) error {
	if r.eventSaver == nil {
		return nil
	}
	events := f.GetDomainEvents()
	if len(events) == 0 {
		return nil
	}
	if err := r.eventSaver.SaveEvents(ctx, tx, events...); err != nil {
		return err
	}
	f.ClearDomainEvents()
	return nil
}

// FindByID finds a fundraiser by its ID
func (r *GormFundraiserRepository) FindByID(ctx context.Context, id uuid.UUID) (*fundraising.Fundraiser, error) {
	var f fundraising.Fundraiser
	if err := r.db.WithContext(ctx).
		Preload("Documents").
		First(&f, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

// FindByIDForOwner finds a fundraiser by ID scoped to its owner
func (r *GormFundraiserRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*fundraising.Fundraiser, error) {
	var f fundraising.Fundraiser
	if err := r.db.WithContext(ctx).
		Preload("Documents").
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

// FindActiveByID finds a fundraiser by ID only if it is active
func (r *GormFundraiserRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*fundraising.Fundraiser, error) {
	var f fundraising.Fundraiser
	if err := r.db.WithContext(ctx).
		Preload("Documents").
		Where("id = ? AND status = ?", id, fundraising.StatusActive).
		First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

// FindAllForOwner finds all fundraisers for an owner with filtering
func (r *GormFundraiserRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]fundraising.Fundraiser, error) {
	var fundraisers []fundraising.Fundraiser
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&fundraising.Fundraiser{}).
			Preload("Documents").
			Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Find(&fundraisers).Error; err != nil {
		return nil, err
	}
	return fundraisers, nil
}

// CountForOwner counts fundraisers for an owner with optional filters
func (r *GormFundraiserRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&fundraising.Fundraiser{}).Where("owner_id = ?", ownerID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForOwnerByStatus counts an owner's fundraisers in one status
func (r *GormFundraiserRepository) CountForOwnerByStatus(ctx context.Context, ownerID uuid.UUID, status fundraising.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&fundraising.Fundraiser{}).
		Where("owner_id = ? AND status = ?", ownerID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindActive finds active fundraisers for public discovery with filtering
func (r *GormFundraiserRepository) FindActive(ctx context.Context, filter shared.Filter) ([]fundraising.Fundraiser, error) {
	var fundraisers []fundraising.Fundraiser
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&fundraising.Fundraiser{}).
			Where("status = ?", fundraising.StatusActive),
		filter,
	)

	if err := query.Find(&fundraisers).Error; err != nil {
		return nil, err
	}
	return fundraisers, nil
}

// CountActive counts active fundraisers matching the discovery filter
func (r *GormFundraiserRepository) CountActive(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&fundraising.Fundraiser{}).
		Where("status = ?", fundraising.StatusActive)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindFeatured finds up to limit active fundraisers ranked by total received
// amount. The ranking joins the donation ledger at read time; fundraisers
// with no donations rank last by recency.
func (r *GormFundraiserRepository) FindFeatured(ctx context.Context, limit int) ([]fundraising.Fundraiser, error) {
	var fundraisers []fundraising.Fundraiser
	if err := r.db.WithContext(ctx).
		Model(&fundraising.Fundraiser{}).
		Joins("LEFT JOIN donations ON donations.fundraiser_id = fundraisers.id AND donations.status = ?", "received").
		Where("fundraisers.status = ?", fundraising.StatusActive).
		Group("fundraisers.id").
		Order("COALESCE(SUM(donations.amount), 0) DESC, fundraisers.published_at DESC").
		Limit(limit).
		Find(&fundraisers).Error; err != nil {
		return nil, err
	}
	return fundraisers, nil
}

// Save creates or updates a fundraiser
func (r *GormFundraiserRepository) Save(ctx context.Context, f *fundraising.Fundraiser) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(f).Error; err != nil {
			return err
		}
		if err := r.syncDocuments(tx, f); err != nil {
			return err
		}
		return r.drainEvents(ctx, tx, f)
	})
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormFundraiserRepository) SaveWithLock(ctx context.Context, f *fundraising.Fundraiser) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Get current version from database
		var currentVersion int
		if err := tx.Model(&fundraising.Fundraiser{}).
			Where("id = ?", f.ID).
			Select("version").
			Scan(&currentVersion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		// Check version matches
		if currentVersion != f.Version {
			return shared.ErrConcurrencyConflict
		}

		// Increment version
		f.Version++
		f.UpdatedAt = time.Now()

		// Update fundraiser with version check
		result := tx.Model(&fundraising.Fundraiser{}).
			Where("id = ? AND version = ?", f.ID, currentVersion).
			Updates(map[string]interface{}{
				"title":                           f.Title,
				"description":                     f.Description,
				"location":                        f.Location,
				"category":                        f.Category,
				"cover_image_url":                 f.CoverImageURL,
				"target_amount":                   f.TargetAmount,
				"deadline":                        f.Deadline,
				"status":                          f.Status,
				"published_at":                    f.PublishedAt,
				"closed_at":                       f.ClosedAt,
				"purpose":                         f.Purpose,
				"child_donee_name":                f.Child.DoneeName,
				"child_gender":                    f.Child.Gender,
				"child_education_level":           f.Child.EducationLevel,
				"institution_name":                f.Institution.Name,
				"institution_type":                f.Institution.Type,
				"institution_registration_number": f.Institution.RegistrationNumber,
				"linked_fundraiser_id":            f.LinkedFundraiserID,
				"reimbursement_period":            f.ReimbursementPeriod,
				"version":                         f.Version,
				"updated_at":                      f.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		if err := r.syncDocuments(tx, f); err != nil {
			return err
		}
		return r.drainEvents(ctx, tx, f)
	})
}

// syncDocuments makes the stored document rows match the aggregate's list
func (r *GormFundraiserRepository) syncDocuments(tx *gorm.DB, f *fundraising.Fundraiser) error {
	if f.ID == uuid.Nil {
		return nil
	}

	currentIDs := make([]uuid.UUID, len(f.Documents))
	for i, doc := range f.Documents {
		currentIDs[i] = doc.ID
	}

	if len(currentIDs) > 0 {
		if err := tx.Where("fundraiser_id = ? AND id NOT IN ?", f.ID, currentIDs).
			Delete(&fundraising.Document{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("fundraiser_id = ?", f.ID).
			Delete(&fundraising.Document{}).Error; err != nil {
			return err
		}
	}

	for i := range f.Documents {
		f.Documents[i].FundraiserID = f.ID
		if err := tx.Save(&f.Documents[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

// Delete deletes a fundraiser and its documents. Donation rows keep their
// recipient and are detached from the campaign, not removed; the ledger is
// append-only and the owner's balance must survive the deletion.
func (r *GormFundraiserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("donations").
			Where("fundraiser_id = ?", id).
			Update("fundraiser_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Where("fundraiser_id = ?", id).
			Delete(&fundraising.Document{}).Error; err != nil {
			return err
		}

		if err := tx.Where("fundraiser_id = ?", id).
			Delete(&fundraising.PayoutMethodConfig{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&fundraising.Fundraiser{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// applyFilter applies filter options to the query
func (r *GormFundraiserRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering
	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, FundraiserSortFields, "created_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormFundraiserRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR location ILIKE ?",
			searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "location":
			if s, ok := value.(string); ok && s != "" {
				query = query.Where("location ILIKE ?", "%"+s+"%")
			}
		case "purpose":
			query = query.Where("purpose = ?", value)
		case "deadline_before":
			if t, ok := value.(time.Time); ok {
				query = query.Where("deadline <= ?", t)
			}
		case "published_after":
			if t, ok := value.(time.Time); ok {
				query = query.Where("published_at >= ?", t)
			}
		}
	}

	return query
}

// Ensure GormFundraiserRepository implements FundraiserRepository
var _ fundraising.FundraiserRepository = (*GormFundraiserRepository)(nil)
