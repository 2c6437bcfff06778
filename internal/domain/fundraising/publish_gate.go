package fundraising

import (
	"strings"

	"github.com/madadgar/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Publish gate condition identifiers, reported to the caller so the UI can
// point at the step that is still missing.
const (
	GatePayoutMethod = "payout_method"
	GateTitle        = "title"
	GateLocation     = "location"
	GateCategory     = "category"
	GateTarget       = "target_amount"
	GateDeadline     = "deadline"
)

// CheckPublishGate runs the readiness checklist a draft must pass before it
// goes live. Checks run in a fixed order and the first failure is returned,
// so the owner is always pointed at one concrete next step.
func CheckPublishGate(f *Fundraiser, payoutConfigs []PayoutMethodConfig) error {
	if !hasEnabledPayout(payoutConfigs) {
		return shared.NewGateFailureError(GatePayoutMethod, "Enable at least one payout method before publishing")
	}
	if strings.TrimSpace(f.Title) == "" {
		return shared.NewGateFailureError(GateTitle, "Add a title before publishing")
	}
	if strings.TrimSpace(f.Location) == "" {
		return shared.NewGateFailureError(GateLocation, "Add a location before publishing")
	}
	if strings.TrimSpace(f.Category) == "" {
		return shared.NewGateFailureError(GateCategory, "Pick a category before publishing")
	}
	if f.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return shared.NewGateFailureError(GateTarget, "Set a positive target amount before publishing")
	}
	if f.Deadline == nil {
		return shared.NewGateFailureError(GateDeadline, "Set a deadline before publishing")
	}
	return nil
}

func hasEnabledPayout(configs []PayoutMethodConfig) bool {
	for _, cfg := range configs {
		if cfg.Enabled {
			return true
		}
	}
	return false
}
