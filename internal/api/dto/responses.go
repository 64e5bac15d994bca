package dto

import (
	"time"

	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
	"github.com/spendlens/spendlens-backend/internal/domain/recurring"
	"github.com/spendlens/spendlens-backend/internal/domain/reports"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a health response with current timestamp.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// CategoryReportResponse is returned by the spending and income by
// category endpoints.
type CategoryReportResponse struct {
	Categories []reports.CategorySummary `json:"categories"`
	Total      float64                   `json:"total"`
	Currency   string                    `json:"currency"`
}

// NewCategoryReportResponse wraps category summaries with their total.
func NewCategoryReportResponse(summaries []reports.CategorySummary, currency string) CategoryReportResponse {
	var total float64
	for _, s := range summaries {
		total += s.Amount
	}
	return CategoryReportResponse{
		Categories: summaries,
		Total:      total,
		Currency:   currency,
	}
}

// TrendsResponse is returned by the monthly trends endpoint.
type TrendsResponse struct {
	Trends   []reports.MonthlyTrend `json:"trends"`
	Currency string                 `json:"currency"`
}

// SubscriptionsResponse is returned by the subscriptions endpoint.
type SubscriptionsResponse struct {
	Subscriptions []recurring.Subscription `json:"subscriptions"`
	Summary       recurring.Summary        `json:"summary"`
	Currency      string                   `json:"currency"`
}

// IngestResponse is returned after storing a transaction batch.
type IngestResponse struct {
	Saved int `json:"saved"`
}

// TransactionListResponse is returned when listing stored transactions.
type TransactionListResponse struct {
	Transactions []ledger.Transaction `json:"transactions"`
	Count        int                  `json:"count"`
	Limit        int                  `json:"limit"`
	Offset       int                  `json:"offset"`
}

// StatsResponse is returned by the stats endpoint.
type StatsResponse struct {
	TransactionCount  int               `json:"transaction_count"`
	SubscriptionStats recurring.Summary `json:"subscription_stats"`
	Currency          string            `json:"currency"`
}
