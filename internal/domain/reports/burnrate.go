package reports

import (
	"sort"
	"time"

	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
)

// daysPerMonth is the factor used to scale the daily burn rate to a
// monthly figure.
const daysPerMonth = 30

// BurnRateAnalysis computes daily/monthly burn rate from historical
// expense density, projects the current month from the fraction elapsed,
// and classifies the 3-month trend. now anchors the projection and must be
// supplied by the caller so results are reproducible.
func (a *Aggregator) BurnRateAnalysis(txs []ledger.Transaction, rng *ledger.DateRange, filters ledger.ReportFilters, now time.Time) BurnRateAnalysis {
	retained := a.convert(a.retain(txs, rng, filters, flowExpense))

	analysis := BurnRateAnalysis{Trend: TrendStable}
	if len(retained) == 0 {
		return analysis
	}

	first, last := retained[0].Date, retained[0].Date
	var total float64
	byMonth := make(map[string]float64)
	for _, t := range retained {
		if t.Date.Before(first) {
			first = t.Date
		}
		if t.Date.After(last) {
			last = t.Date
		}
		total += -t.Amount
		byMonth[t.Date.Format(monthKeyFormat)] += -t.Amount

		if t.Date.Year() == now.Year() && t.Date.Month() == now.Month() {
			analysis.CurrentMonthSpend += -t.Amount
		}
	}

	spanDays := int(last.Sub(first).Hours()/24) + 1
	if spanDays < 1 {
		spanDays = 1
	}
	analysis.DailyBurnRate = total / float64(spanDays)
	analysis.MonthlyBurnRate = analysis.DailyBurnRate * daysPerMonth

	// Linear projection from the fraction of the month elapsed.
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	analysis.ProjectedMonthSpend = analysis.CurrentMonthSpend / float64(now.Day()) * float64(daysInMonth)

	analysis.Trend = classifyTrend(byMonth)
	return analysis
}

// classifyTrend compares the average of the two most recent months of
// expense totals against the month before them. More than 10% above is
// increasing, more than 10% below is decreasing, otherwise stable. Fewer
// than three months of data is always stable.
func classifyTrend(byMonth map[string]float64) string {
	if len(byMonth) < 3 {
		return TrendStable
	}
	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	months = months[len(months)-3:]

	earlier := byMonth[months[0]]
	recent := (byMonth[months[1]] + byMonth[months[2]]) / 2

	switch {
	case recent > earlier*1.1:
		return TrendIncreasing
	case recent < earlier*0.9:
		return TrendDecreasing
	default:
		return TrendStable
	}
}
