// Package service wires storage, currency conversion, and user
// preferences into the domain insight operations exposed over the API.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
	"github.com/spendlens/spendlens-backend/internal/domain/recurring"
	"github.com/spendlens/spendlens-backend/internal/domain/reports"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/storage"
)

// Converter converts transaction batches into the reporting currency.
// Satisfied by the rates package implementations.
type Converter interface {
	ConvertTransactionsBatch(txs []ledger.Transaction) ([]ledger.Transaction, error)
	DefaultCurrency() string
}

// InsightsService runs report and subscription operations over the
// stored transaction set.
type InsightsService struct {
	storage    storage.Repository
	aggregator *reports.Aggregator
	detector   *recurring.Detector
	logger     *slog.Logger
	now        func() time.Time

	mu    sync.RWMutex
	prefs ledger.Preferences
}

// NewInsightsService creates the service. Preferences are fixed at
// construction and can be updated via SetPreferences.
func NewInsightsService(
	store storage.Repository,
	converter Converter,
	prefs ledger.Preferences,
	logger *slog.Logger,
) *InsightsService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &InsightsService{
		storage: store,
		logger:  logger,
		now:     time.Now,
		prefs:   prefs,
	}
	s.aggregator = reports.NewAggregator(converter, s, logger)
	s.detector = recurring.NewDetector(converter, logger)
	return s
}

// Preferences implements reports.PreferenceSource.
func (s *InsightsService) Preferences() ledger.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// SetPreferences replaces the active preferences.
func (s *InsightsService) SetPreferences(prefs ledger.Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = prefs
}

// SpendingByCategory returns per-category spending totals.
func (s *InsightsService) SpendingByCategory(ctx context.Context, rng *ledger.DateRange, filters ledger.ReportFilters) ([]reports.CategorySummary, error) {
	txs, err := s.loadTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return s.aggregator.SpendingByCategory(txs, rng, filters), nil
}

// IncomeByCategory returns per-category income totals.
func (s *InsightsService) IncomeByCategory(ctx context.Context, rng *ledger.DateRange, filters ledger.ReportFilters) ([]reports.CategorySummary, error) {
	txs, err := s.loadTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return s.aggregator.IncomeByCategory(txs, rng, filters), nil
}

// IncomeExpenseAnalysis returns the income vs expense breakdown.
func (s *InsightsService) IncomeExpenseAnalysis(ctx context.Context, rng *ledger.DateRange, filters ledger.ReportFilters) (reports.IncomeExpenseAnalysis, error) {
	txs, err := s.loadTransactions(ctx)
	if err != nil {
		return reports.IncomeExpenseAnalysis{}, err
	}
	return s.aggregator.IncomeExpenseAnalysis(txs, rng, filters), nil
}

// MonthlySpendingTrends returns month-by-month totals.
func (s *InsightsService) MonthlySpendingTrends(ctx context.Context, rng *ledger.DateRange, filters ledger.ReportFilters) ([]reports.MonthlyTrend, error) {
	txs, err := s.loadTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return s.aggregator.MonthlySpendingTrends(txs, rng, filters), nil
}

// CategoryDeepDive returns the detailed view of a single category.
func (s *InsightsService) CategoryDeepDive(ctx context.Context, category string, rng *ledger.DateRange, filters ledger.ReportFilters) (reports.CategoryDeepDive, error) {
	txs, err := s.loadTransactions(ctx)
	if err != nil {
		return reports.CategoryDeepDive{}, err
	}
	return s.aggregator.CategoryDeepDive(txs, category, rng, filters), nil
}

// BurnRate returns spending velocity and the current month projection.
func (s *InsightsService) BurnRate(ctx context.Context, rng *ledger.DateRange, filters ledger.ReportFilters) (reports.BurnRateAnalysis, error) {
	txs, err := s.loadTransactions(ctx)
	if err != nil {
		return reports.BurnRateAnalysis{}, err
	}
	return s.aggregator.BurnRateAnalysis(txs, rng, filters, s.now()), nil
}

// Subscriptions detects recurring payments and applies the given
// filters. The summary reflects the filtered set.
func (s *InsightsService) Subscriptions(ctx context.Context, filters recurring.SubscriptionFilters) ([]recurring.Subscription, recurring.Summary, error) {
	txs, err := s.loadTransactions(ctx)
	if err != nil {
		return nil, recurring.Summary{}, err
	}
	subs := s.detector.Detect(txs, s.now())
	subs = recurring.FilterSubscriptions(subs, filters)
	return subs, recurring.Summarize(subs), nil
}

// TransactionCount returns the number of stored transactions.
func (s *InsightsService) TransactionCount(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.storage.CountTransactions()
}

// IngestTransactions stores a batch of transactions.
func (s *InsightsService) IngestTransactions(ctx context.Context, txs []ledger.Transaction) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := s.storage.SaveTransactions(txs); err != nil {
		return 0, fmt.Errorf("failed to save transactions: %w", err)
	}
	s.logger.Info("transactions ingested", "count", len(txs))
	return len(txs), nil
}

func (s *InsightsService) loadTransactions(ctx context.Context) ([]ledger.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	txs, err := s.storage.GetAllTransactions()
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return txs, nil
}
