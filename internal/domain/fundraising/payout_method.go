package fundraising

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/madadgar/backend/internal/domain/shared"
)

// PayoutMethod identifies a disbursement channel
type PayoutMethod string

const (
	PayoutBank      PayoutMethod = "bank"
	PayoutNayaPay   PayoutMethod = "nayapay"
	PayoutSadaPay   PayoutMethod = "sadapay"
	PayoutJazzCash  PayoutMethod = "jazzcash"
	PayoutEasypaisa PayoutMethod = "easypaisa"
	PayoutRaast     PayoutMethod = "raast"
)

// AllPayoutMethods lists every supported disbursement channel in display
// order
var AllPayoutMethods = []PayoutMethod{
	PayoutBank,
	PayoutNayaPay,
	PayoutSadaPay,
	PayoutJazzCash,
	PayoutEasypaisa,
	PayoutRaast,
}

// IsValid checks if the method is a valid PayoutMethod
func (m PayoutMethod) IsValid() bool {
	switch m {
	case PayoutBank, PayoutNayaPay, PayoutSadaPay, PayoutJazzCash, PayoutEasypaisa, PayoutRaast:
		return true
	}
	return false
}

// String returns the string representation of PayoutMethod
func (m PayoutMethod) String() string {
	return string(m)
}

// IsWallet reports whether the method is a mobile wallet identified by a
// phone number rather than bank coordinates
func (m PayoutMethod) IsWallet() bool {
	return m.IsValid() && m != PayoutBank
}

// BankDetails carries the destination for bank transfers
type BankDetails struct {
	AccountTitle  string `json:"account_title"`
	AccountNumber string `json:"account_number"`
	IBAN          string `json:"iban"`
	RaastID       string `json:"raast_id"`
}

func (b BankDetails) isEmpty() bool {
	return b.AccountTitle == "" && b.AccountNumber == "" && b.IBAN == "" && b.RaastID == ""
}

// WalletDetails carries the destination for mobile-wallet transfers
type WalletDetails struct {
	PhoneNumber string `json:"phone_number"`
}

// PayoutMethodConfig is one disbursement channel configured on a
// fundraiser. A fundraiser holds at most one row per method; saving the
// same method again replaces the existing row. The method acts as a tag:
// a bank row never carries wallet details and a wallet row never carries
// bank details.
type PayoutMethodConfig struct {
	shared.BaseEntity
	FundraiserID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_payout_fundraiser_method"`
	Method       PayoutMethod  `gorm:"size:20;not null;uniqueIndex:idx_payout_fundraiser_method"`
	Enabled      bool          `gorm:"not null;default:false"`
	Bank         BankDetails   `gorm:"embedded;embeddedPrefix:bank_"`
	Wallet       WalletDetails `gorm:"embedded;embeddedPrefix:wallet_"`
}

// TableName returns the database table name
func (PayoutMethodConfig) TableName() string {
	return "payout_method_configs"
}

// NewPayoutMethodConfig builds a configured channel for a fundraiser. The
// payload of the variant the method is not is discarded, so a row flipped
// from bank to wallet never keeps stale bank coordinates.
func NewPayoutMethodConfig(fundraiserID uuid.UUID, method PayoutMethod, enabled bool, bank BankDetails, wallet WalletDetails) (*PayoutMethodConfig, error) {
	if fundraiserID == uuid.Nil {
		return nil, shared.NewValidationError("fundraiser_id", "Fundraiser is required")
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError("method", fmt.Sprintf("Unknown payout method %q", method))
	}

	cfg := &PayoutMethodConfig{
		BaseEntity:   shared.NewBaseEntity(),
		FundraiserID: fundraiserID,
		Method:       method,
		Enabled:      enabled,
	}

	if method == PayoutBank {
		cfg.Bank = bank
	} else {
		cfg.Wallet = wallet
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Apply replaces the row's payload with a new submission for the same
// method, keeping the stored identity. Used on upsert when the row already
// exists.
func (c *PayoutMethodConfig) Apply(enabled bool, bank BankDetails, wallet WalletDetails) error {
	c.Enabled = enabled
	if c.Method == PayoutBank {
		c.Bank = bank
		c.Wallet = WalletDetails{}
	} else {
		c.Bank = BankDetails{}
		c.Wallet = wallet
	}
	return c.validate()
}

// validate checks the payload needed to actually pay out. A disabled row
// may be saved incomplete; enabling it demands usable coordinates.
func (c *PayoutMethodConfig) validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Method == PayoutBank {
		if strings.TrimSpace(c.Bank.AccountTitle) == "" {
			return shared.NewValidationError("bank_account_title", "Account title is required for an enabled bank payout")
		}
		if strings.TrimSpace(c.Bank.AccountNumber) == "" {
			return shared.NewValidationError("bank_account_number", "An account number is required for an enabled bank payout")
		}
		return nil
	}
	if strings.TrimSpace(c.Wallet.PhoneNumber) == "" {
		return shared.NewValidationError("phone_number", fmt.Sprintf("A phone number is required for an enabled %s payout", c.Method))
	}
	return nil
}
