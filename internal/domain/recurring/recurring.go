// Package recurring detects subscription-like payment patterns in a
// transaction set.
//
// Detection groups expense transactions into tolerant amount buckets,
// partitions each bucket by normalized description similarity, classifies
// each group's billing frequency from interval statistics, and accepts a
// group as a subscription only when it passes the count, stability, and
// span gates. Everyday habits (daily coffee, weekly groceries) are
// explicitly rejected even when their intervals look periodic.
//
// Detection is deterministic for a given transaction set and clock: the
// caller supplies now, and activity is recomputed from it on every run.
package recurring

import (
	"log/slog"
	"time"

	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
)

// Converter rewrites transaction amounts into the reporting default
// currency, one batch call per detection run.
type Converter interface {
	ConvertTransactionsBatch(txs []ledger.Transaction) ([]ledger.Transaction, error)
	DefaultCurrency() string
}

// Frequency is the detected billing cadence of a group.
type Frequency string

const (
	FrequencyWeekly    Frequency = "Weekly"
	FrequencyBiWeekly  Frequency = "Bi-weekly"
	FrequencyMonthly   Frequency = "Monthly"
	FrequencyQuarterly Frequency = "Quarterly"
	FrequencyAnnual    Frequency = "Annual"
	FrequencyIrregular Frequency = "Irregular"
	FrequencyOneTime   Frequency = "One-time"
)

// PriceChange records a detected change in the charged amount.
type PriceChange struct {
	PreviousAmount float64 `json:"previous_amount"`
	CurrentAmount  float64 `json:"current_amount"`
	Increased      bool    `json:"increased"`
}

// Subscription is a detected recurring payment. It is derived state,
// recomputed on every detection run and never persisted.
type Subscription struct {
	Name                  string               `json:"name"`
	Amount                float64              `json:"amount"` // mean charge, positive
	Frequency             Frequency            `json:"frequency"`
	AnnualCost            float64              `json:"annual_cost"`
	Category              string               `json:"category"`
	Account               string               `json:"account"`
	LastChargedDate       time.Time            `json:"last_charged_date"`
	NextEstimatedDate     *time.Time           `json:"next_estimated_date,omitempty"`
	TransactionCount      int                  `json:"transaction_count"`
	IsActive              bool                 `json:"is_active"`
	MonthsSinceLastCharge float64              `json:"months_since_last_charge"`
	PriceChange           *PriceChange         `json:"price_change,omitempty"`
	Transactions          []ledger.Transaction `json:"transactions"`
}

// Detector finds subscriptions. It holds no mutable state; concurrent
// detection runs are independent.
type Detector struct {
	converter Converter
	logger    *slog.Logger
}

// NewDetector creates a detector with the given currency collaborator.
func NewDetector(converter Converter, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{converter: converter, logger: logger}
}
