package giving

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/madadgar/backend/internal/domain/shared"
	"github.com/madadgar/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DonationStatus represents the settlement state of a donation
type DonationStatus string

const (
	// DonationReceived means the money is counted in campaign totals.
	// Received is terminal; the ledger has no update or refund path.
	DonationReceived DonationStatus = "received"
	DonationPending  DonationStatus = "pending"
)

// IsValid checks if the status is a valid DonationStatus
func (s DonationStatus) IsValid() bool {
	switch s {
	case DonationReceived, DonationPending:
		return true
	}
	return false
}

// String returns the string representation of DonationStatus
func (s DonationStatus) String() string {
	return string(s)
}

// PaymentMethod identifies how a donor paid
type PaymentMethod string

const (
	PaymentVisa       PaymentMethod = "visa"
	PaymentMastercard PaymentMethod = "mastercard"
	PaymentSadaPay    PaymentMethod = "sadapay"
	PaymentEasypaisa  PaymentMethod = "easypaisa"
	PaymentNayaPay    PaymentMethod = "nayapay"
	PaymentRaast      PaymentMethod = "raast"
)

// IsValid checks if the method is on the accepted list
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentVisa, PaymentMastercard, PaymentSadaPay, PaymentEasypaisa, PaymentNayaPay, PaymentRaast:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// IsCard reports whether the method is a card scheme requiring card details
func (m PaymentMethod) IsCard() bool {
	return m == PaymentVisa || m == PaymentMastercard
}

// CardInput is the card payload a donor submits. It exists only in memory
// during intake: the number is reduced to its last four digits and the CVC
// is discarded before anything is persisted.
type CardInput struct {
	HolderName string
	Number     string
	CVC        string
	Expiry     string
}

// WalletInput is the wallet payload a donor submits
type WalletInput struct {
	PayerPhone string
}

// IntakeParams carries everything needed to record a donation
type IntakeParams struct {
	DonorID        *uuid.UUID
	DonorName      string
	Amount         decimal.Decimal
	TipAmount      decimal.Decimal
	FrequencyLabel string
	Method         PaymentMethod
	Card           CardInput
	Wallet         WalletInput
	Anonymous      bool
	Message        string
}

// Donation is one append-only ledger row. Rows are immutable once written;
// campaign totals are always recomputed from them, never cached.
type Donation struct {
	shared.BaseAggregateRoot
	FundraiserID *uuid.UUID `gorm:"type:uuid;index:idx_donations_fundraiser_status"`
	// RecipientID is the fundraiser owner at the time of donation. It is
	// denormalized onto the row so the owner's balance survives the
	// fundraiser being deleted.
	RecipientID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	DonorID        *uuid.UUID      `gorm:"type:uuid;index"`
	DonorName      string          `gorm:"size:120"`
	Amount         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TipAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	FrequencyLabel string          `gorm:"size:40"`
	Method         PaymentMethod   `gorm:"size:20;not null"`
	Status         DonationStatus  `gorm:"size:20;not null;index:idx_donations_fundraiser_status"`
	Anonymous      bool            `gorm:"not null;default:false"`
	Message        string          `gorm:"type:text"`

	CardHolderName string `gorm:"size:120"`
	CardLast4      string `gorm:"size:4"`
	CardExpiry     string `gorm:"size:7"`
	PayerPhone     string `gorm:"size:30"`
}

// TableName returns the database table name
func (Donation) TableName() string {
	return "donations"
}

// NewDonation validates an intake submission and produces the ledger row.
// fundraiserID and recipientID identify the campaign and its owner; the
// caller has already confirmed the campaign is active.
func NewDonation(fundraiserID, recipientID uuid.UUID, p IntakeParams) (*Donation, error) {
	if fundraiserID == uuid.Nil {
		return nil, shared.NewValidationError("fundraiser_id", "Fundraiser is required")
	}
	if recipientID == uuid.Nil {
		return nil, shared.NewValidationError("recipient_id", "Recipient is required")
	}
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("amount", "Donation amount must be positive")
	}
	if p.TipAmount.IsNegative() {
		return nil, shared.NewValidationError("tip_amount", "Tip amount cannot be negative")
	}
	if !p.Method.IsValid() {
		return nil, shared.NewValidationError("payment_method", fmt.Sprintf("Payment method %q is not accepted", p.Method))
	}

	fid := fundraiserID
	d := &Donation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FundraiserID:      &fid,
		RecipientID:       recipientID,
		DonorID:           p.DonorID,
		Amount:            p.Amount,
		TipAmount:         p.TipAmount,
		FrequencyLabel:    p.FrequencyLabel,
		Method:            p.Method,
		Status:            DonationReceived,
		Anonymous:         p.Anonymous,
		Message:           p.Message,
	}

	// An anonymous donation never stores a display name, whatever the
	// donor typed.
	if !p.Anonymous {
		d.DonorName = strings.TrimSpace(p.DonorName)
	}

	if p.Method.IsCard() {
		if err := d.applyCard(p.Card); err != nil {
			return nil, err
		}
	} else {
		if err := d.applyWallet(p.Wallet); err != nil {
			return nil, err
		}
	}

	d.AddDomainEvent(NewDonationReceivedEvent(d))

	return d, nil
}

func (d *Donation) applyCard(card CardInput) error {
	if strings.TrimSpace(card.HolderName) == "" {
		return shared.NewValidationError("card_holder_name", "Card holder name is required")
	}
	digits := digitsOnly(card.Number)
	if len(digits) < 12 {
		return shared.NewValidationError("card_number", "Card number must have at least 12 digits")
	}
	if len(digitsOnly(card.CVC)) < 3 {
		return shared.NewValidationError("card_cvc", "Card CVC must have at least 3 digits")
	}
	if strings.TrimSpace(card.Expiry) == "" {
		return shared.NewValidationError("card_expiry", "Card expiry is required")
	}

	// Only the last four digits survive intake. The CVC is never stored.
	d.CardHolderName = strings.TrimSpace(card.HolderName)
	d.CardLast4 = digits[len(digits)-4:]
	d.CardExpiry = strings.TrimSpace(card.Expiry)
	d.PayerPhone = ""

	return nil
}

func (d *Donation) applyWallet(wallet WalletInput) error {
	if strings.TrimSpace(wallet.PayerPhone) == "" {
		return shared.NewValidationError("payer_phone", "Payer phone number is required")
	}

	d.PayerPhone = strings.TrimSpace(wallet.PayerPhone)
	d.CardHolderName = ""
	d.CardLast4 = ""
	d.CardExpiry = ""

	return nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DisplayName returns the donor name shown on public pages
func (d *Donation) DisplayName() string {
	if d.Anonymous || d.DonorName == "" {
		return "Anonymous"
	}
	return d.DonorName
}

// AmountMoney returns the donation amount as Money
func (d *Donation) AmountMoney() valueobject.Money {
	return valueobject.NewMoneyPKR(d.Amount)
}

// IsCounted reports whether this row contributes to campaign totals.
// Orphaned rows whose fundraiser pointer was cleared are excluded.
func (d *Donation) IsCounted() bool {
	return d.Status == DonationReceived && d.FundraiserID != nil
}
