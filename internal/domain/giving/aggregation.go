package giving

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/madadgar/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Totals is the derived financial state of one campaign: how much has been
// received and from how many ledger rows. It is computed from donations on
// every read and never stored.
type Totals struct {
	Collected  decimal.Decimal `json:"collected"`
	Supporters int64           `json:"supporters"`
}

// ZeroTotals returns the totals of a campaign with no donations
func ZeroTotals() Totals {
	return Totals{Collected: decimal.Zero}
}

// CollectedMoney returns the collected total as Money
func (t Totals) CollectedMoney() valueobject.Money {
	return valueobject.NewMoneyPKR(t.Collected)
}

// AggregateLedger folds donation rows into per-fundraiser totals. Only
// received rows that still point at a fundraiser count; tips go to the
// platform and are excluded from campaign totals.
func AggregateLedger(donations []Donation) map[uuid.UUID]Totals {
	totals := make(map[uuid.UUID]Totals)
	for _, d := range donations {
		if !d.IsCounted() {
			continue
		}
		t := totals[*d.FundraiserID]
		t.Collected = t.Collected.Add(d.Amount)
		t.Supporters++
		totals[*d.FundraiserID] = t
	}
	return totals
}

// DonorGroup summarizes one donor's giving to one campaign, for the
// donor-facing history page
type DonorGroup struct {
	FundraiserID   *uuid.UUID      `json:"fundraiser_id"`
	TotalDonated   decimal.Decimal `json:"total_donated"`
	DonationCount  int64           `json:"donation_count"`
	LastDonatedAt  time.Time       `json:"last_donated_at"`
	FirstDonatedAt time.Time       `json:"first_donated_at"`
}

// GroupByFundraiser folds one donor's rows into per-campaign groups,
// ordered by most recent donation first
func GroupByFundraiser(donations []Donation) []DonorGroup {
	index := make(map[uuid.UUID]int)
	var orphan *DonorGroup
	groups := make([]DonorGroup, 0)

	for _, d := range donations {
		if d.Status != DonationReceived {
			continue
		}
		if d.FundraiserID == nil {
			if orphan == nil {
				orphan = &DonorGroup{TotalDonated: decimal.Zero, FirstDonatedAt: d.CreatedAt, LastDonatedAt: d.CreatedAt}
			}
			accumulate(orphan, d)
			continue
		}
		idx, ok := index[*d.FundraiserID]
		if !ok {
			fid := *d.FundraiserID
			groups = append(groups, DonorGroup{FundraiserID: &fid, TotalDonated: decimal.Zero, FirstDonatedAt: d.CreatedAt, LastDonatedAt: d.CreatedAt})
			idx = len(groups) - 1
			index[*d.FundraiserID] = idx
		}
		accumulate(&groups[idx], d)
	}

	if orphan != nil {
		groups = append(groups, *orphan)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].LastDonatedAt.After(groups[j].LastDonatedAt)
	})

	return groups
}

func accumulate(g *DonorGroup, d Donation) {
	g.TotalDonated = g.TotalDonated.Add(d.Amount)
	g.DonationCount++
	if d.CreatedAt.After(g.LastDonatedAt) {
		g.LastDonatedAt = d.CreatedAt
	}
	if d.CreatedAt.Before(g.FirstDonatedAt) {
		g.FirstDonatedAt = d.CreatedAt
	}
}
