package recurring

import (
	"strings"

	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
)

// SubscriptionFilters narrows a detection result after the fact. All
// dimensions are optional.
type SubscriptionFilters struct {
	DateRange   *ledger.DateRange `json:"date_range,omitempty"`
	Categories  []string          `json:"categories,omitempty"`
	Accounts    []string          `json:"accounts,omitempty"`
	Frequencies []string          `json:"frequencies,omitempty"`
}

// Summary holds the headline counts over a (possibly filtered)
// subscription set.
type Summary struct {
	TotalCount       int     `json:"total_count"`
	ActiveCount      int     `json:"active_count"`
	TotalAnnualCost  float64 `json:"total_annual_cost"`
	TotalMonthlyCost float64 `json:"total_monthly_cost"`
}

// FilterSubscriptions retains subscriptions matching every supplied
// dimension. A subscription passes the date filter when any underlying
// transaction falls inside the range.
func FilterSubscriptions(subs []Subscription, filters SubscriptionFilters) []Subscription {
	out := []Subscription{}
	for _, s := range subs {
		if filters.DateRange != nil && !anyTransactionIn(s, *filters.DateRange) {
			continue
		}
		if len(filters.Categories) > 0 && !containsFold(filters.Categories, s.Category) {
			continue
		}
		if len(filters.Accounts) > 0 && !containsFold(filters.Accounts, s.Account) {
			continue
		}
		if len(filters.Frequencies) > 0 && !containsFold(filters.Frequencies, string(s.Frequency)) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Summarize recomputes the headline counts over the given set.
func Summarize(subs []Subscription) Summary {
	var summary Summary
	summary.TotalCount = len(subs)
	for _, s := range subs {
		if s.IsActive {
			summary.ActiveCount++
		}
		summary.TotalAnnualCost += s.AnnualCost
	}
	summary.TotalMonthlyCost = summary.TotalAnnualCost / 12
	return summary
}

func anyTransactionIn(s Subscription, rng ledger.DateRange) bool {
	for _, t := range s.Transactions {
		if rng.Contains(t.Date) {
			return true
		}
	}
	return false
}

func containsFold(list []string, want string) bool {
	for _, s := range list {
		if strings.EqualFold(s, want) {
			return true
		}
	}
	return false
}
