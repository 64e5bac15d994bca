// Package reports computes spending, income, trend, and burn-rate views
// over a transaction set.
//
// Every operation applies the same filtering pipeline: date range, transfer
// classification, asset-allocation inclusion, then type/sign retention —
// and converts retained amounts to the reporting currency in one batch
// before aggregating. Expense-oriented aggregates use the negation-sum
// convention: a category's amount is the sum of -amount over its retained
// transactions, so a positive refund subtracts from the total instead of
// inflating it.
package reports

import (
	"log/slog"

	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
)

// Converter rewrites transaction amounts into the reporting default
// currency. Implementations are external collaborators; conversion is
// always a single batch call per report invocation.
type Converter interface {
	ConvertTransactionsBatch(txs []ledger.Transaction) ([]ledger.Transaction, error)
	DefaultCurrency() string
}

// PreferenceSource supplies user preferences. Consulted only when a caller
// omits an explicit type filter.
type PreferenceSource interface {
	Preferences() ledger.Preferences
}

// Aggregator produces report views. It holds no mutable state, so
// concurrent calls for different parameter sets are independent.
type Aggregator struct {
	converter Converter
	prefs     PreferenceSource
	logger    *slog.Logger
}

// NewAggregator creates an aggregator with the given collaborators.
func NewAggregator(converter Converter, prefs PreferenceSource, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		converter: converter,
		prefs:     prefs,
		logger:    logger,
	}
}

// CategorySummary is one row of a per-category report.
type CategorySummary struct {
	CategoryName     string  `json:"category_name"`
	Amount           float64 `json:"amount"`
	TransactionCount int     `json:"transaction_count"`
	AverageAmount    float64 `json:"average_amount"`
	Percentage       float64 `json:"percentage"`
}

// MonthlyTrend is one calendar month of spending and income.
type MonthlyTrend struct {
	Month            string  `json:"month"` // YYYY-MM
	TotalSpending    float64 `json:"total_spending"`
	TotalIncome      float64 `json:"total_income"`
	NetAmount        float64 `json:"net_amount"`
	TransactionCount int     `json:"transaction_count"`
}

// IncomeExpenseAnalysis summarizes the income/expense balance of a period.
// SavingsRate is netIncome/totalIncome as a percentage, 0 when there is no
// income.
type IncomeExpenseAnalysis struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	NetIncome     float64 `json:"net_income"`
	SavingsRate   float64 `json:"savings_rate"`
}

// TrendPoint is one period of a deep-dive trend series.
type TrendPoint struct {
	Period           string  `json:"period"`
	Amount           float64 `json:"amount"`
	TransactionCount int     `json:"transaction_count"`
}

// Granularity of a deep-dive trend series, chosen from the span of the
// date range.
const (
	GranularityDaily   = "daily"
	GranularityWeekly  = "weekly"
	GranularityMonthly = "monthly"
)

// CategoryDeepDive is the detailed view of a single category.
type CategoryDeepDive struct {
	CategoryName        string              `json:"category_name"`
	TotalAmount         float64             `json:"total_amount"`
	TransactionCount    int                 `json:"transaction_count"`
	AverageAmount       float64             `json:"average_amount"`
	LargestTransaction  *ledger.Transaction `json:"largest_transaction,omitempty"`
	SmallestTransaction *ledger.Transaction `json:"smallest_transaction,omitempty"`
	Granularity         string              `json:"granularity"`
	Trend               []TrendPoint        `json:"trend"`
}

// Burn-rate trend classifications.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// BurnRateAnalysis projects spending from historical expense density.
type BurnRateAnalysis struct {
	DailyBurnRate       float64 `json:"daily_burn_rate"`
	MonthlyBurnRate     float64 `json:"monthly_burn_rate"`
	CurrentMonthSpend   float64 `json:"current_month_spend"`
	ProjectedMonthSpend float64 `json:"projected_month_spend"`
	Trend               string  `json:"trend"`
}
