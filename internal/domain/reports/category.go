package reports

import (
	"sort"

	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
)

// uncategorized is the bucket for transactions without a category value.
const uncategorized = "Uncategorized"

// SpendingByCategory returns per-category expense totals, largest first.
// Amounts follow the negation-sum convention: refunds recorded as positive
// amounts reduce their category's total.
func (a *Aggregator) SpendingByCategory(txs []ledger.Transaction, rng *ledger.DateRange, filters ledger.ReportFilters) []CategorySummary {
	retained := a.convert(a.retain(txs, rng, filters, flowExpense))
	return summarizeByCategory(retained, func(t ledger.Transaction) float64 { return -t.Amount })
}

// IncomeByCategory returns per-category income totals, largest first.
func (a *Aggregator) IncomeByCategory(txs []ledger.Transaction, rng *ledger.DateRange, filters ledger.ReportFilters) []CategorySummary {
	retained := a.convert(a.retain(txs, rng, filters, flowIncome))
	return summarizeByCategory(retained, func(t ledger.Transaction) float64 { return t.Amount })
}

// IncomeExpenseAnalysis computes period totals and the savings rate.
func (a *Aggregator) IncomeExpenseAnalysis(txs []ledger.Transaction, rng *ledger.DateRange, filters ledger.ReportFilters) IncomeExpenseAnalysis {
	retained := a.convertTagged(a.retainBoth(txs, rng, filters))

	var analysis IncomeExpenseAnalysis
	for _, tg := range retained {
		if tg.inIncome {
			analysis.TotalIncome += tg.tx.Amount
		}
		if tg.inExpense {
			analysis.TotalExpenses += -tg.tx.Amount
		}
	}
	analysis.NetIncome = analysis.TotalIncome - analysis.TotalExpenses
	if analysis.TotalIncome != 0 {
		analysis.SavingsRate = analysis.NetIncome / analysis.TotalIncome * 100
	}
	return analysis
}

func summarizeByCategory(txs []ledger.Transaction, amountOf func(ledger.Transaction) float64) []CategorySummary {
	byName := make(map[string]*CategorySummary)
	var total float64

	for _, t := range txs {
		name := t.Category
		if name == "" {
			name = uncategorized
		}
		row, ok := byName[name]
		if !ok {
			row = &CategorySummary{CategoryName: name}
			byName[name] = row
		}
		amount := amountOf(t)
		row.Amount += amount
		row.TransactionCount++
		total += amount
	}

	summaries := make([]CategorySummary, 0, len(byName))
	for _, row := range byName {
		if row.TransactionCount > 0 {
			row.AverageAmount = row.Amount / float64(row.TransactionCount)
		}
		if total != 0 {
			row.Percentage = row.Amount / total * 100
		}
		summaries = append(summaries, *row)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Amount != summaries[j].Amount {
			return summaries[i].Amount > summaries[j].Amount
		}
		return summaries[i].CategoryName < summaries[j].CategoryName
	})
	return summaries
}
