// Command report prints a spending summary for the stored transaction
// set to the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spendlens/spendlens-backend/internal/application/service"
	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
	"github.com/spendlens/spendlens-backend/internal/domain/recurring"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/config"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/logging"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/rates"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/storage"
)

func main() {
	var (
		dbPath           string
		configFile       string
		startDate        string
		endDate          string
		includeTransfers bool
	)
	flag.StringVar(&dbPath, "db", "", "Path to database file (uses config if not specified)")
	flag.StringVar(&configFile, "config", "config.yaml", "Configuration file path")
	flag.StringVar(&startDate, "start", "", "Report start date (YYYY-MM-DD)")
	flag.StringVar(&endDate, "end", "", "Report end date (YYYY-MM-DD)")
	flag.BoolVar(&includeTransfers, "include-transfers", false, "Include transfers in totals")
	flag.Parse()

	cfg := config.LoadOrEnvWithPath(configFile)
	if dbPath == "" {
		dbPath = cfg.Storage.DatabasePath
	}

	store, err := storage.NewStorage(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	logger := logging.NewLogger(config.LoggingConfig{Level: "warn", Format: "text"})
	converter := rates.NewStaticConverter(cfg.Currency.DefaultCurrency, cfg.Currency.StaticRates)
	prefs := ledger.Preferences{
		IncludeInvestmentsInReports: cfg.Preferences.IncludeInvestmentsInReports,
		DefaultCurrency:             cfg.Currency.DefaultCurrency,
	}
	insights := service.NewInsightsService(store, converter, prefs, logger)

	rng, err := parseRange(startDate, endDate)
	if err != nil {
		log.Fatal(err)
	}
	filters := ledger.FiltersFromLegacy(includeTransfers)
	ctx := context.Background()

	fmt.Println("SPENDING REPORT")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Database:  %s\n", dbPath)
	fmt.Printf("Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	if rng != nil {
		fmt.Printf("Period:    %s to %s\n", formatBound(rng.Start), formatBound(rng.End))
	}
	fmt.Println()

	count, err := insights.TransactionCount(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Transactions on file: %d\n\n", count)

	analysis, err := insights.IncomeExpenseAnalysis(ctx, rng, filters)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("INCOME VS EXPENSES")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Total Income:   %12.2f %s\n", analysis.TotalIncome, cfg.Currency.DefaultCurrency)
	fmt.Printf("Total Expenses: %12.2f %s\n", analysis.TotalExpenses, cfg.Currency.DefaultCurrency)
	fmt.Printf("Net Income:     %12.2f %s\n", analysis.NetIncome, cfg.Currency.DefaultCurrency)
	fmt.Printf("Savings Rate:   %11.1f%%\n\n", analysis.SavingsRate)

	spending, err := insights.SpendingByCategory(ctx, rng, filters)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("SPENDING BY CATEGORY")
	fmt.Println(strings.Repeat("-", 40))
	for _, c := range spending {
		fmt.Printf("%-24s %10.2f  (%4.1f%%, %d txs)\n", c.CategoryName, c.Amount, c.Percentage, c.TransactionCount)
	}
	fmt.Println()

	burn, err := insights.BurnRate(ctx, rng, filters)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("BURN RATE")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Daily:                %10.2f\n", burn.DailyBurnRate)
	fmt.Printf("Monthly:              %10.2f\n", burn.MonthlyBurnRate)
	fmt.Printf("Current Month Spend:  %10.2f\n", burn.CurrentMonthSpend)
	fmt.Printf("Projected This Month: %10.2f\n", burn.ProjectedMonthSpend)
	fmt.Printf("Trend:                %s\n\n", burn.Trend)

	subs, summary, err := insights.Subscriptions(ctx, recurring.SubscriptionFilters{DateRange: rng})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("RECURRING PAYMENTS")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Detected: %d (%d active), annual cost %.2f\n", summary.TotalCount, summary.ActiveCount, summary.TotalAnnualCost)
	for _, sub := range subs {
		status := "active"
		if !sub.IsActive {
			status = "inactive"
		}
		fmt.Printf("%-24s %10.2f  %-10s %s\n", sub.Name, sub.Amount, sub.Frequency, status)
	}
}

func parseRange(start, end string) (*ledger.DateRange, error) {
	if start == "" && end == "" {
		return nil, nil
	}
	var rng ledger.DateRange
	var err error
	if start != "" {
		if rng.Start, err = time.Parse("2006-01-02", start); err != nil {
			return nil, fmt.Errorf("invalid -start: %w", err)
		}
	}
	if end != "" {
		if rng.End, err = time.Parse("2006-01-02", end); err != nil {
			return nil, fmt.Errorf("invalid -end: %w", err)
		}
		rng.End = rng.End.Add(24*time.Hour - time.Nanosecond)
	}
	return &rng, nil
}

func formatBound(ts time.Time) string {
	if ts.IsZero() {
		return "(open)"
	}
	return ts.Format("2006-01-02")
}
