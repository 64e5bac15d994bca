// Package ledger defines the shared transaction model consumed by the
// classifier, reporting, and recurring-payment detection packages.
//
// Transactions are treated as immutable inputs: the core never mutates a
// record it is handed, and derived results carry copies where needed.
package ledger

import (
	"math"
	"time"
)

// TransactionType is the user/rule-assigned type of a transaction.
// It is set by categorization and is independent of the amount sign,
// so the two can (and in real bank feeds do) disagree.
type TransactionType string

const (
	TypeIncome          TransactionType = "income"
	TypeExpense         TransactionType = "expense"
	TypeTransfer        TransactionType = "transfer"
	TypeAssetAllocation TransactionType = "asset-allocation"
)

// AllTypes lists every transaction type, in display order.
var AllTypes = []TransactionType{TypeIncome, TypeExpense, TypeTransfer, TypeAssetAllocation}

// Transaction is a single bank-exported transaction record.
//
// Amount is signed in the transaction's native currency: negative = outflow,
// positive = inflow. Source data does not always respect this convention
// (refunds can appear as positive amounts inside an expense category), which
// is why reporting uses the negation-sum convention rather than absolute sums.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory,omitempty"`
	Account     string          `json:"account"`
	Type        TransactionType `json:"type"`

	// OriginalCurrency is the ISO code of the native currency when it
	// differs from the reporting default. Empty means already in the
	// reporting currency.
	OriginalCurrency string `json:"original_currency,omitempty"`

	// Data-quality metadata from upstream categorization. Read-only here.
	IsVerified bool    `json:"is_verified,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Valid reports whether the record is usable by an aggregate: it needs a
// real date and a finite amount. Malformed records are skipped, never fatal.
func (t Transaction) Valid() bool {
	if t.Date.IsZero() {
		return false
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return false
	}
	return true
}

// DateRange is an inclusive [Start, End] window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether ts falls inside the range, bounds included.
// A zero Start or End leaves that side unbounded.
func (r DateRange) Contains(ts time.Time) bool {
	if !r.Start.IsZero() && ts.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && ts.After(r.End) {
		return false
	}
	return true
}

// Days returns the span of the range in whole days, bounds inclusive.
// Returns 0 when either bound is missing.
func (r DateRange) Days() int {
	if r.Start.IsZero() || r.End.IsZero() {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Preferences holds the user settings the core consults. Only
// IncludeInvestmentsInReports influences aggregation, and only when the
// caller did not supply an explicit type filter.
type Preferences struct {
	IncludeInvestmentsInReports bool   `json:"include_investments_in_reports"`
	DefaultCurrency             string `json:"default_currency"`
}
