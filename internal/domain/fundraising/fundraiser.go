package fundraising

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/madadgar/backend/internal/domain/shared"
	"github.com/madadgar/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status of a fundraiser
type Status string

const (
	StatusDraft  Status = "draft"
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusClosed:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusDraft:
		return target == StatusActive
	case StatusActive:
		return target == StatusClosed
	case StatusClosed:
		return false // Terminal state, no reopen path
	}
	return false
}

// Purpose classifies who a fundraiser is raising money for
type Purpose string

const (
	PurposeChildStudent Purpose = "child_student"
	PurposeInstitution  Purpose = "institution"
	PurposeOrganization Purpose = "organization"
)

// IsValid checks if the purpose is a valid Purpose
func (p Purpose) IsValid() bool {
	switch p {
	case PurposeChildStudent, PurposeInstitution, PurposeOrganization:
		return true
	}
	return false
}

// ReimbursementPeriod is the payout cadence an owner selects
type ReimbursementPeriod string

const (
	ReimbursementWeekly   ReimbursementPeriod = "7_days"
	ReimbursementBiweekly ReimbursementPeriod = "14_days"
	ReimbursementMonthly  ReimbursementPeriod = "30_days"
)

// IsValid checks if the period is a valid ReimbursementPeriod
func (r ReimbursementPeriod) IsValid() bool {
	switch r {
	case ReimbursementWeekly, ReimbursementBiweekly, ReimbursementMonthly:
		return true
	}
	return false
}

// Document is a supporting document attached to a fundraiser. The binary
// lives in external object storage; only the opaque URL is recorded here.
type Document struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FundraiserID uuid.UUID `gorm:"type:uuid;not null;index" json:"fundraiser_id"`
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// ChildDetails holds the purpose-specific fields for child/student campaigns
type ChildDetails struct {
	DoneeName      string `json:"donee_name"`
	Gender         string `json:"gender"`
	EducationLevel string `json:"education_level"`
}

// InstitutionDetails holds the purpose-specific fields for institution and
// organization campaigns
type InstitutionDetails struct {
	Name               string `json:"name"`
	Type               string `json:"type"`
	RegistrationNumber string `json:"registration_number"`
}

// Fundraiser is the campaign aggregate root. Collected totals are never
// stored on it - they are derived from the donation ledger on every read.
type Fundraiser struct {
	shared.OwnedAggregateRoot
	Title         string          `gorm:"size:200"`
	Description   string          `gorm:"type:text"`
	Location      string          `gorm:"size:120"`
	Category      string          `gorm:"size:80;index"`
	CoverImageURL string          `gorm:"size:512"`
	TargetAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Deadline      *time.Time
	Status        Status `gorm:"size:20;not null;default:draft;index"`
	PublishedAt   *time.Time
	ClosedAt      *time.Time

	Purpose     Purpose            `gorm:"size:30"`
	Child       ChildDetails       `gorm:"embedded;embeddedPrefix:child_"`
	Institution InstitutionDetails `gorm:"embedded;embeddedPrefix:institution_"`

	// Continuation pointer to another active campaign by the same owner.
	LinkedFundraiserID *uuid.UUID `gorm:"type:uuid"`

	ReimbursementPeriod ReimbursementPeriod `gorm:"size:20;default:7_days"`

	// Single-method payout fields from before the per-method store existed.
	// Kept so legacy rows keep reading; new writes go through
	// PayoutMethodConfig only.
	LegacyPayoutMethod string `gorm:"size:20"`
	LegacyPayoutPhone  string `gorm:"size:30"`

	Documents []Document `gorm:"foreignKey:FundraiserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the database table name
func (Fundraiser) TableName() string {
	return "fundraisers"
}

// NewFundraiser creates a new draft fundraiser for the given owner
func NewFundraiser(ownerID uuid.UUID, purpose Purpose) (*Fundraiser, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewValidationError("owner_id", "Owner is required")
	}
	if !purpose.IsValid() {
		return nil, shared.NewValidationError("fundraiser_purpose", fmt.Sprintf("Unknown fundraiser purpose %q", purpose))
	}

	f := &Fundraiser{
		OwnedAggregateRoot:  shared.NewOwnedAggregateRoot(ownerID),
		Status:              StatusDraft,
		Purpose:             purpose,
		TargetAmount:        decimal.Zero,
		ReimbursementPeriod: ReimbursementWeekly,
	}

	f.AddDomainEvent(NewFundraiserCreatedEvent(f))

	return f, nil
}

// UpdateBasics updates the descriptive fields of the campaign.
// Once published, the target amount and deadline are locked: donors gave
// against them, so changing them post-publish is rejected.
func (f *Fundraiser) UpdateBasics(title, location, category string, target decimal.Decimal, deadline *time.Time) error {
	title = strings.TrimSpace(title)
	location = strings.TrimSpace(location)
	category = strings.TrimSpace(category)

	if title == "" {
		return shared.NewValidationError("title", "Title cannot be empty")
	}
	if location == "" {
		return shared.NewValidationError("location", "Location cannot be empty")
	}
	if category == "" {
		return shared.NewValidationError("category", "Category cannot be empty")
	}
	if target.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("target_amount", "Target amount must be positive")
	}

	if f.Status != StatusDraft {
		if !target.Equal(f.TargetAmount) {
			return shared.NewStateConflictError("Target amount cannot change after publishing")
		}
		if !equalDeadline(f.Deadline, deadline) {
			return shared.NewStateConflictError("Deadline cannot change after publishing")
		}
	}

	f.Title = title
	f.Location = location
	f.Category = category
	f.TargetAmount = target
	f.Deadline = deadline
	f.UpdatedAt = time.Now()

	return nil
}

func equalDeadline(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// SetDescription updates the long-form story text
func (f *Fundraiser) SetDescription(description string) {
	f.Description = description
	f.UpdatedAt = time.Now()
}

// SetStartDetails records the purpose classification and its sub-fields.
// Switching purpose clears the fields of the variant it no longer is.
func (f *Fundraiser) SetStartDetails(purpose Purpose, child ChildDetails, institution InstitutionDetails) error {
	if f.Status == StatusClosed {
		return shared.NewStateConflictError("Cannot edit a closed fundraiser")
	}
	if !purpose.IsValid() {
		return shared.NewValidationError("fundraiser_purpose", fmt.Sprintf("Unknown fundraiser purpose %q", purpose))
	}

	switch purpose {
	case PurposeChildStudent:
		if strings.TrimSpace(child.DoneeName) == "" {
			return shared.NewValidationError("donee_name", "Donee name is required")
		}
		f.Child = child
		f.Institution = InstitutionDetails{}
	case PurposeInstitution, PurposeOrganization:
		if strings.TrimSpace(institution.Name) == "" {
			return shared.NewValidationError("institution_name", "Institution name is required")
		}
		if strings.TrimSpace(institution.Type) == "" {
			return shared.NewValidationError("institution_type", "Institution type is required")
		}
		f.Institution = institution
		f.Child = ChildDetails{}
	}

	f.Purpose = purpose
	f.UpdatedAt = time.Now()

	return nil
}

// SetCoverImage records the opaque URL of the uploaded cover image
func (f *Fundraiser) SetCoverImage(url string) error {
	if strings.TrimSpace(url) == "" {
		return shared.NewValidationError("cover_image", "Cover image URL cannot be empty")
	}
	f.CoverImageURL = url
	f.UpdatedAt = time.Now()
	return nil
}

// AddDocument attaches a supporting document
func (f *Fundraiser) AddDocument(name, url string) (*Document, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("name", "Document name cannot be empty")
	}
	if strings.TrimSpace(url) == "" {
		return nil, shared.NewValidationError("url", "Document URL cannot be empty")
	}

	doc := Document{
		ID:           uuid.New(),
		FundraiserID: f.ID,
		Name:         name,
		URL:          url,
		UploadedAt:   time.Now(),
	}
	f.Documents = append(f.Documents, doc)
	f.UpdatedAt = time.Now()

	return &doc, nil
}

// RemoveDocument detaches a supporting document
func (f *Fundraiser) RemoveDocument(docID uuid.UUID) error {
	for idx, doc := range f.Documents {
		if doc.ID == docID {
			f.Documents = append(f.Documents[:idx], f.Documents[idx+1:]...)
			f.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}

// SetReimbursementPeriod selects the payout cadence
func (f *Fundraiser) SetReimbursementPeriod(period ReimbursementPeriod) error {
	if !period.IsValid() {
		return shared.NewValidationError("reimbursement_period", fmt.Sprintf("Unknown reimbursement period %q", period))
	}
	f.ReimbursementPeriod = period
	f.UpdatedAt = time.Now()
	return nil
}

// Publish transitions the fundraiser from draft to active. The publish gate
// must have passed before this is called. Publishing an already-active
// fundraiser is a harmless no-op so concurrent duplicate attempts cannot
// corrupt published_at: the first activation wins.
func (f *Fundraiser) Publish() error {
	if f.Status == StatusActive {
		return nil
	}
	if !f.Status.CanTransitionTo(StatusActive) {
		return shared.NewStateConflictError(fmt.Sprintf("Cannot publish a %s fundraiser", f.Status))
	}

	now := time.Now()
	f.Status = StatusActive
	if f.PublishedAt == nil {
		f.PublishedAt = &now
	}
	f.UpdatedAt = now

	f.AddDomainEvent(NewFundraiserPublishedEvent(f))

	return nil
}

// Close transitions the fundraiser from active to closed. Closed is
// terminal; closing twice is a harmless no-op.
func (f *Fundraiser) Close() error {
	if f.Status == StatusClosed {
		return nil
	}
	if !f.Status.CanTransitionTo(StatusClosed) {
		return shared.NewStateConflictError(fmt.Sprintf("Cannot close a %s fundraiser", f.Status))
	}

	now := time.Now()
	f.Status = StatusClosed
	f.ClosedAt = &now
	f.UpdatedAt = now

	f.AddDomainEvent(NewFundraiserClosedEvent(f))

	return nil
}

// LinkTo points this fundraiser at a continuation target. The target must
// be a different, currently active campaign owned by the same user. The
// check runs on every write to the link; storage is not trusted to enforce
// it.
func (f *Fundraiser) LinkTo(target *Fundraiser) error {
	if err := ValidateLink(f, target); err != nil {
		return err
	}

	f.LinkedFundraiserID = &target.ID
	f.UpdatedAt = time.Now()

	f.AddDomainEvent(NewFundraiserLinkedEvent(f, target.ID))

	return nil
}

// ClearLink removes the continuation pointer. Always permitted, regardless
// of the previous target's state.
func (f *Fundraiser) ClearLink() {
	f.LinkedFundraiserID = nil
	f.UpdatedAt = time.Now()
}

// ValidateLink enforces the linked-fundraiser invariants: no self-link, same
// owner, target active.
func ValidateLink(f, target *Fundraiser) error {
	if target == nil {
		return shared.ErrNotFound
	}
	if target.ID == f.ID {
		return shared.NewStateConflictError("A fundraiser cannot be linked to itself")
	}
	if target.OwnerID != f.OwnerID {
		return shared.ErrNotFound
	}
	if target.Status != StatusActive {
		return shared.NewStateConflictError("Linked fundraiser must be active")
	}
	return nil
}

// RemainingToTarget returns max(target - collected, 0) for a given collected
// total
func (f *Fundraiser) RemainingToTarget(collected decimal.Decimal) valueobject.Money {
	return valueobject.NewMoneyPKR(f.TargetAmount.Sub(collected)).ClampFloor()
}

// TargetAmountMoney returns the target as Money
func (f *Fundraiser) TargetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyPKR(f.TargetAmount)
}

// IsDraft returns true if the fundraiser is in draft status
func (f *Fundraiser) IsDraft() bool {
	return f.Status == StatusDraft
}

// IsActive returns true if the fundraiser is active
func (f *Fundraiser) IsActive() bool {
	return f.Status == StatusActive
}

// IsClosed returns true if the fundraiser is closed
func (f *Fundraiser) IsClosed() bool {
	return f.Status == StatusClosed
}

// AcceptsDonations reports whether the donation intake may append to this
// campaign's ledger
func (f *Fundraiser) AcceptsDonations() bool {
	return f.Status == StatusActive
}
