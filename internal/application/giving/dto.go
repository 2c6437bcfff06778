package giving

import (
	"time"

	"github.com/google/uuid"
	"github.com/madadgar/backend/internal/domain/giving"
	"github.com/shopspring/decimal"
)

// SubmitDonationRequest represents a donation intake submission
type SubmitDonationRequest struct {
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	TipAmount      decimal.Decimal `json:"tip_amount"`
	FrequencyLabel string          `json:"frequency_label" binding:"omitempty,max=40"`
	PaymentMethod  string          `json:"payment_method" binding:"required"`
	IsAnonymous    bool            `json:"is_anonymous"`
	DonorName      string          `json:"donor_name" binding:"omitempty,max=120"`
	Message        string          `json:"message" binding:"omitempty,max=2000"`
	PayerPhone     string          `json:"payer_phone"`
	CardHolderName string          `json:"card_holder_name"`
	CardNumber     string          `json:"card_number"`
	CardCVC        string          `json:"card_cvc"`
	CardExpiry     string          `json:"card_expiry"`
}

// DonationResponse represents a recorded donation. Only the masked card
// tail ever appears here.
type DonationResponse struct {
	ID             uuid.UUID       `json:"id"`
	FundraiserID   *uuid.UUID      `json:"fundraiser_id,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	TipAmount      decimal.Decimal `json:"tip_amount"`
	FrequencyLabel string          `json:"frequency_label,omitempty"`
	PaymentMethod  string          `json:"payment_method"`
	Status         string          `json:"status"`
	IsAnonymous    bool            `json:"is_anonymous"`
	DonorName      string          `json:"donor_name,omitempty"`
	Message        string          `json:"message,omitempty"`
	CardLast4      string          `json:"card_last4,omitempty"`
	PayerPhone     string          `json:"payer_phone,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// MyDonationsFilter narrows and orders the caller's grouped giving history.
// An empty OrderBy keeps most-recently-donated-to first.
type MyDonationsFilter struct {
	Search  string `form:"search"`
	OrderBy string `form:"order_by" binding:"omitempty,oneof=recent amount title"`
}

// DonationGroupResponse summarizes the caller's giving to one campaign
type DonationGroupResponse struct {
	FundraiserID    *uuid.UUID      `json:"fundraiser_id,omitempty"`
	FundraiserTitle string          `json:"fundraiser_title,omitempty"`
	TargetAmount    decimal.Decimal `json:"target_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Status          string          `json:"status,omitempty"`
	TotalDonated    decimal.Decimal `json:"total_donated"`
	DonationCount   int64           `json:"donation_count"`
	LastDonatedAt   time.Time       `json:"last_donated_at"`
}

// BalanceResponse is the owner's received-money view
type BalanceResponse struct {
	TotalReceived decimal.Decimal    `json:"total_received"`
	Recent        []DonationResponse `json:"recent"`
}

// ToDonationResponse converts a domain Donation to a response DTO
func ToDonationResponse(d *giving.Donation) DonationResponse {
	return DonationResponse{
		ID:             d.ID,
		FundraiserID:   d.FundraiserID,
		Amount:         d.Amount,
		TipAmount:      d.TipAmount,
		FrequencyLabel: d.FrequencyLabel,
		PaymentMethod:  d.Method.String(),
		Status:         d.Status.String(),
		IsAnonymous:    d.Anonymous,
		DonorName:      d.DonorName,
		Message:        d.Message,
		CardLast4:      d.CardLast4,
		PayerPhone:     d.PayerPhone,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDonationResponses converts a slice of donations
func ToDonationResponses(donations []giving.Donation) []DonationResponse {
	responses := make([]DonationResponse, len(donations))
	for i := range donations {
		responses[i] = ToDonationResponse(&donations[i])
	}
	return responses
}
