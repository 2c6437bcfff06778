package fundraising

import (
	"time"

	"github.com/google/uuid"
	"github.com/madadgar/backend/internal/domain/fundraising"
	"github.com/madadgar/backend/internal/domain/giving"
	"github.com/shopspring/decimal"
)

// ==================== Fundraiser DTOs ====================

// CreateFundraiserRequest represents a request to create a draft fundraiser
type CreateFundraiserRequest struct {
	Purpose string `json:"fundraiser_purpose" binding:"required"`
}

// UpdateBasicsRequest represents a request to edit the core campaign fields
type UpdateBasicsRequest struct {
	Title        string          `json:"title" binding:"required,min=1,max=200"`
	Location     string          `json:"location" binding:"required,min=1,max=120"`
	Category     string          `json:"category" binding:"required,min=1,max=80"`
	TargetAmount decimal.Decimal `json:"target_amount" binding:"required"`
	Deadline     *time.Time      `json:"deadline"`
	Description  *string         `json:"description"`
}

// StartDetailsRequest represents the purpose classification step
type StartDetailsRequest struct {
	Purpose                       string `json:"fundraiser_purpose" binding:"required"`
	DoneeName                     string `json:"donee_name"`
	Gender                        string `json:"gender"`
	EducationLevel                string `json:"education_level"`
	InstitutionName               string `json:"institution_name"`
	InstitutionType               string `json:"institution_type"`
	InstitutionRegistrationNumber string `json:"institution_registration_number"`
}

// SetCoverImageRequest records the uploaded cover image URL
type SetCoverImageRequest struct {
	URL string `json:"url" binding:"required,max=512"`
}

// AddDocumentRequest attaches a supporting document
type AddDocumentRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
	URL  string `json:"url" binding:"required,max=512"`
}

// SetLinkedFundraiserRequest points a fundraiser at its continuation.
// A nil LinkedFundraiserID clears the pointer.
type SetLinkedFundraiserRequest struct {
	LinkedFundraiserID *uuid.UUID `json:"linked_fundraiser_id"`
}

// FundraiserListFilter represents filter options for owner and discovery
// listings
type FundraiserListFilter struct {
	Search   string  `form:"search"`
	Status   *string `form:"status"`
	Category *string `form:"category"`
	Location *string `form:"location"`
	Page     int     `form:"page" binding:"omitempty,min=1"`
	PageSize int     `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string  `form:"order_by"`
	OrderDir string  `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// DocumentResponse represents an attached document in API responses
type DocumentResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// FundraiserResponse represents a fundraiser in owner-facing API responses
type FundraiserResponse struct {
	ID                  uuid.UUID          `json:"id"`
	OwnerID             uuid.UUID          `json:"owner_id"`
	Title               string             `json:"title"`
	Description         string             `json:"description"`
	Location            string             `json:"location"`
	Category            string             `json:"category"`
	CoverImageURL       string             `json:"cover_image_url,omitempty"`
	Purpose             string             `json:"fundraiser_purpose"`
	DoneeName           string             `json:"donee_name,omitempty"`
	Gender              string             `json:"gender,omitempty"`
	EducationLevel      string             `json:"education_level,omitempty"`
	InstitutionName     string             `json:"institution_name,omitempty"`
	InstitutionType     string             `json:"institution_type,omitempty"`
	InstitutionRegNo    string             `json:"institution_registration_number,omitempty"`
	TargetAmount        decimal.Decimal    `json:"target_amount"`
	CollectedAmount     decimal.Decimal    `json:"collected_amount"`
	SupporterCount      int64              `json:"supporter_count"`
	RemainingAmount     decimal.Decimal    `json:"remaining_amount"`
	Deadline            *time.Time         `json:"deadline,omitempty"`
	Status              string             `json:"status"`
	PublishedAt         *time.Time         `json:"published_at,omitempty"`
	ClosedAt            *time.Time         `json:"closed_at,omitempty"`
	LinkedFundraiserID  *uuid.UUID         `json:"linked_fundraiser_id,omitempty"`
	ReimbursementPeriod string             `json:"reimbursement_period"`
	Documents           []DocumentResponse `json:"documents,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
	Version             int                `json:"version"`
}

// FundraiserListItemResponse represents a fundraiser in list responses
type FundraiserListItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Location        string          `json:"location"`
	Category        string          `json:"category"`
	CoverImageURL   string          `json:"cover_image_url,omitempty"`
	TargetAmount    decimal.Decimal `json:"target_amount"`
	CollectedAmount decimal.Decimal `json:"collected_amount"`
	SupporterCount  int64           `json:"supporter_count"`
	Deadline        *time.Time      `json:"deadline,omitempty"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// PublicDonorResponse represents a recent donor on the public page
type PublicDonorResponse struct {
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Message   string          `json:"message,omitempty"`
	DonatedAt time.Time       `json:"donated_at"`
}

// PublicFundraiserResponse represents a fundraiser on the public page.
// Owner and payout data never appear here.
type PublicFundraiserResponse struct {
	ID                 uuid.UUID             `json:"id"`
	Title              string                `json:"title"`
	Description        string                `json:"description"`
	Location           string                `json:"location"`
	Category           string                `json:"category"`
	CoverImageURL      string                `json:"cover_image_url,omitempty"`
	TargetAmount       decimal.Decimal       `json:"target_amount"`
	Raised             decimal.Decimal       `json:"raised"`
	SupporterCount     int64                 `json:"supporter_count"`
	RemainingAmount    decimal.Decimal       `json:"remaining_amount"`
	Deadline           *time.Time            `json:"deadline,omitempty"`
	Status             string                `json:"status"`
	PublishedAt        *time.Time            `json:"published_at,omitempty"`
	LinkedFundraiserID *uuid.UUID            `json:"linked_fundraiser_id,omitempty"`
	RecentDonors       []PublicDonorResponse `json:"recent_donors"`
}

// RequestUploadURLRequest asks for a presigned upload slot
type RequestUploadURLRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type" binding:"required"`
}

// UploadURLResponse carries a presigned upload URL and the storage key
// the client must upload to
type UploadURLResponse struct {
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// DashboardResponse summarizes an owner's account
type DashboardResponse struct {
	TotalReceived decimal.Decimal `json:"total_received"`
	TotalDonated  decimal.Decimal `json:"total_donated"`
	ActiveCount   int64           `json:"active_count"`
	ClosedCount   int64           `json:"closed_count"`
	DraftCount    int64           `json:"draft_count"`
}

// ==================== Payout DTOs ====================

// PayoutMethodInput is one channel in a save request
type PayoutMethodInput struct {
	Method            string `json:"method" binding:"required"`
	IsEnabled         bool   `json:"is_enabled"`
	BankAccountTitle  string `json:"bank_account_title"`
	BankAccountNumber string `json:"bank_account_number"`
	BankIBAN          string `json:"bank_iban"`
	BankRaastID       string `json:"bank_raast_id"`
	PhoneNumber       string `json:"phone_number"`
}

// SavePayoutConfigRequest replaces the submitted channels for a fundraiser
type SavePayoutConfigRequest struct {
	ReimbursementPeriod string              `json:"reimbursement_period"`
	PayoutMethods       []PayoutMethodInput `json:"payout_methods" binding:"required,min=1"`
}

// PayoutMethodResponse represents one configured channel
type PayoutMethodResponse struct {
	Method            string `json:"method"`
	IsEnabled         bool   `json:"is_enabled"`
	BankAccountTitle  string `json:"bank_account_title,omitempty"`
	BankAccountNumber string `json:"bank_account_number,omitempty"`
	BankIBAN          string `json:"bank_iban,omitempty"`
	BankRaastID       string `json:"bank_raast_id,omitempty"`
	PhoneNumber       string `json:"phone_number,omitempty"`
}

// PayoutConfigResponse is the full payout configuration of a fundraiser
type PayoutConfigResponse struct {
	FundraiserID        uuid.UUID              `json:"fundraiser_id"`
	ReimbursementPeriod string                 `json:"reimbursement_period"`
	PayoutMethods       []PayoutMethodResponse `json:"payout_methods"`
}

// CategoryResponse is one entry of the category catalog
type CategoryResponse struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

// ==================== Converters ====================

// ToFundraiserResponse converts a domain Fundraiser plus its derived totals
// to a response DTO
func ToFundraiserResponse(f *fundraising.Fundraiser, totals giving.Totals) FundraiserResponse {
	docs := make([]DocumentResponse, len(f.Documents))
	for i, d := range f.Documents {
		docs[i] = DocumentResponse{
			ID:         d.ID,
			Name:       d.Name,
			URL:        d.URL,
			UploadedAt: d.UploadedAt,
		}
	}

	return FundraiserResponse{
		ID:                  f.ID,
		OwnerID:             f.OwnerID,
		Title:               f.Title,
		Description:         f.Description,
		Location:            f.Location,
		Category:            f.Category,
		CoverImageURL:       f.CoverImageURL,
		Purpose:             string(f.Purpose),
		DoneeName:           f.Child.DoneeName,
		Gender:              f.Child.Gender,
		EducationLevel:      f.Child.EducationLevel,
		InstitutionName:     f.Institution.Name,
		InstitutionType:     f.Institution.Type,
		InstitutionRegNo:    f.Institution.RegistrationNumber,
		TargetAmount:        f.TargetAmount,
		CollectedAmount:     totals.Collected,
		SupporterCount:      totals.Supporters,
		RemainingAmount:     f.RemainingToTarget(totals.Collected).Amount(),
		Deadline:            f.Deadline,
		Status:              f.Status.String(),
		PublishedAt:         f.PublishedAt,
		ClosedAt:            f.ClosedAt,
		LinkedFundraiserID:  f.LinkedFundraiserID,
		ReimbursementPeriod: string(f.ReimbursementPeriod),
		Documents:           docs,
		CreatedAt:           f.CreatedAt,
		UpdatedAt:           f.UpdatedAt,
		Version:             f.Version,
	}
}

// ToFundraiserListItemResponse converts a fundraiser to a list item DTO
func ToFundraiserListItemResponse(f *fundraising.Fundraiser, totals giving.Totals) FundraiserListItemResponse {
	return FundraiserListItemResponse{
		ID:              f.ID,
		Title:           f.Title,
		Location:        f.Location,
		Category:        f.Category,
		CoverImageURL:   f.CoverImageURL,
		TargetAmount:    f.TargetAmount,
		CollectedAmount: totals.Collected,
		SupporterCount:  totals.Supporters,
		Deadline:        f.Deadline,
		Status:          f.Status.String(),
		CreatedAt:       f.CreatedAt,
	}
}

// ToPublicFundraiserResponse converts a fundraiser to the public page DTO
func ToPublicFundraiserResponse(f *fundraising.Fundraiser, totals giving.Totals, donors []giving.Donation) PublicFundraiserResponse {
	recent := make([]PublicDonorResponse, len(donors))
	for i, d := range donors {
		recent[i] = PublicDonorResponse{
			Name:      d.DisplayName(),
			Amount:    d.Amount,
			Message:   d.Message,
			DonatedAt: d.CreatedAt,
		}
	}

	return PublicFundraiserResponse{
		ID:                 f.ID,
		Title:              f.Title,
		Description:        f.Description,
		Location:           f.Location,
		Category:           f.Category,
		CoverImageURL:      f.CoverImageURL,
		TargetAmount:       f.TargetAmount,
		Raised:             totals.Collected,
		SupporterCount:     totals.Supporters,
		RemainingAmount:    f.RemainingToTarget(totals.Collected).Amount(),
		Deadline:           f.Deadline,
		Status:             f.Status.String(),
		PublishedAt:        f.PublishedAt,
		LinkedFundraiserID: f.LinkedFundraiserID,
		RecentDonors:       recent,
	}
}

// ToPayoutMethodResponse converts a configured channel to a response DTO
func ToPayoutMethodResponse(cfg *fundraising.PayoutMethodConfig) PayoutMethodResponse {
	return PayoutMethodResponse{
		Method:            cfg.Method.String(),
		IsEnabled:         cfg.Enabled,
		BankAccountTitle:  cfg.Bank.AccountTitle,
		BankAccountNumber: cfg.Bank.AccountNumber,
		BankIBAN:          cfg.Bank.IBAN,
		BankRaastID:       cfg.Bank.RaastID,
		PhoneNumber:       cfg.Wallet.PhoneNumber,
	}
}
