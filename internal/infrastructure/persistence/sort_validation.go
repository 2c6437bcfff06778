package persistence

import (
	"strings"
)

// Sort inputs come straight from query parameters, so ORDER BY clauses
// are only ever built from these whitelists. Anything not listed,
// including ledger-sensitive columns like payer_phone, falls back to
// the default.

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// FundraiserSortFields contains allowed sort fields for fundraisers
var FundraiserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"title":         true,
	"status":        true,
	"category":      true,
	"location":      true,
	"target_amount": true,
	"deadline":      true,
	"published_at":  true,
	"closed_at":     true,
}

// DonationSortFields contains allowed sort fields for donations
var DonationSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"amount":     true,
	"tip_amount": true,
	"method":     true,
	"status":     true,
}

// ValidateSortOrder normalizes a direction string to ASC or DESC,
// defaulting anything unrecognized to DESC.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "ASC") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField when the whitelist allows it and
// defaultField otherwise.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	if trimmed := strings.TrimSpace(sortField); allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}
