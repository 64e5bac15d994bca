package reports

import (
	"fmt"
	"math"
	"sort"

	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
)

const monthKeyFormat = "2006-01"

// MonthlySpendingTrends returns one record per calendar month present in
// the range, oldest first.
func (a *Aggregator) MonthlySpendingTrends(txs []ledger.Transaction, rng *ledger.DateRange, filters ledger.ReportFilters) []MonthlyTrend {
	retained := a.convertTagged(a.retainBoth(txs, rng, filters))

	byMonth := make(map[string]*MonthlyTrend)
	for _, tg := range retained {
		key := tg.tx.Date.Format(monthKeyFormat)
		trend, ok := byMonth[key]
		if !ok {
			trend = &MonthlyTrend{Month: key}
			byMonth[key] = trend
		}
		if tg.inExpense {
			trend.TotalSpending += -tg.tx.Amount
		}
		if tg.inIncome {
			trend.TotalIncome += tg.tx.Amount
		}
		trend.TransactionCount++
	}

	trends := make([]MonthlyTrend, 0, len(byMonth))
	for _, trend := range byMonth {
		trend.NetAmount = trend.TotalIncome - trend.TotalSpending
		trends = append(trends, *trend)
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].Month < trends[j].Month })
	return trends
}

// CategoryDeepDive returns the detailed expense view of one category: totals,
// largest and smallest transaction, and a trend series whose granularity is
// chosen from the span of the date range (≤31 days daily, ≤62 weekly, else
// monthly).
func (a *Aggregator) CategoryDeepDive(txs []ledger.Transaction, categoryName string, rng *ledger.DateRange, filters ledger.ReportFilters) CategoryDeepDive {
	scoped := filters
	scoped.SelectedCategories = []string{categoryName}

	retained := a.convert(a.retain(txs, rng, scoped, flowExpense))

	dive := CategoryDeepDive{
		CategoryName: categoryName,
		Granularity:  granularityFor(rng, retained),
		Trend:        []TrendPoint{},
	}
	if len(retained) == 0 {
		return dive
	}

	largest, smallest := retained[0], retained[0]
	for _, t := range retained {
		dive.TotalAmount += -t.Amount
		dive.TransactionCount++
		if math.Abs(t.Amount) > math.Abs(largest.Amount) {
			largest = t
		}
		if math.Abs(t.Amount) < math.Abs(smallest.Amount) {
			smallest = t
		}
	}
	dive.AverageAmount = dive.TotalAmount / float64(dive.TransactionCount)
	dive.LargestTransaction = &largest
	dive.SmallestTransaction = &smallest

	byPeriod := make(map[string]*TrendPoint)
	for _, t := range retained {
		key := periodKey(t, dive.Granularity)
		point, ok := byPeriod[key]
		if !ok {
			point = &TrendPoint{Period: key}
			byPeriod[key] = point
		}
		point.Amount += -t.Amount
		point.TransactionCount++
	}
	for _, point := range byPeriod {
		dive.Trend = append(dive.Trend, *point)
	}
	sort.Slice(dive.Trend, func(i, j int) bool { return dive.Trend[i].Period < dive.Trend[j].Period })

	return dive
}

// granularityFor picks the trend granularity from the range span, falling
// back to the span of the retained transactions when no range was given.
func granularityFor(rng *ledger.DateRange, retained []ledger.Transaction) string {
	days := 0
	if rng != nil {
		days = rng.Days()
	}
	if days == 0 && len(retained) > 0 {
		first, last := retained[0].Date, retained[0].Date
		for _, t := range retained {
			if t.Date.Before(first) {
				first = t.Date
			}
			if t.Date.After(last) {
				last = t.Date
			}
		}
		days = int(last.Sub(first).Hours()/24) + 1
	}

	switch {
	case days <= 31:
		return GranularityDaily
	case days <= 62:
		return GranularityWeekly
	default:
		return GranularityMonthly
	}
}

func periodKey(t ledger.Transaction, granularity string) string {
	switch granularity {
	case GranularityDaily:
		return t.Date.Format("2006-01-02")
	case GranularityWeekly:
		year, week := t.Date.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	default:
		return t.Date.Format(monthKeyFormat)
	}
}
