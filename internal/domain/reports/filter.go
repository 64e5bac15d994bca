package reports

import (
	"github.com/spendlens/spendlens-backend/internal/domain/classifier"
	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
)

// flow selects which side of the money movement a metric wants.
type flow int

const (
	flowExpense flow = iota
	flowIncome
)

// tagged carries a retained transaction with its flow membership. A
// positive refund inside an expense category belongs to the expense view
// (type match) and nets against it via the negation sum.
type tagged struct {
	tx        ledger.Transaction
	inExpense bool
	inIncome  bool
}

// retainBoth runs the filtering pipeline once and tags each retained
// transaction with the flows it participates in. Pipeline order: date
// range, dimension filters, transfer classification, asset-allocation
// inclusion, then type/sign retention.
func (a *Aggregator) retainBoth(txs []ledger.Transaction, rng *ledger.DateRange, filters ledger.ReportFilters) []tagged {
	includeAssets := a.prefs.Preferences().IncludeInvestmentsInReports
	if filters.HasTypeFilter() {
		includeAssets = filters.IncludeAssetAllocation()
	}

	kept := make([]tagged, 0, len(txs))
	for _, t := range txs {
		if !t.Valid() {
			continue
		}
		if rng != nil && !rng.Contains(t.Date) {
			continue
		}
		if !filters.AllowsCategory(t.Category) || !filters.AllowsAccount(t.Account) {
			continue
		}

		var inExpense, inIncome bool
		switch {
		case classifier.IsInternalTransfer(t):
			if !filters.IncludeTransfers() {
				continue
			}
			// Only the side matching the metric counts.
			inExpense = t.Amount < 0
			inIncome = t.Amount > 0

		case classifier.IsAssetAllocation(t):
			if !includeAssets {
				continue
			}
			inExpense = t.Amount < 0
			inIncome = t.Amount > 0

		default:
			if !filters.AllowsType(t.Type) {
				continue
			}
			inExpense = t.Type == ledger.TypeExpense || t.Amount < 0
			inIncome = t.Type == ledger.TypeIncome || t.Amount > 0
		}

		if !inExpense && !inIncome {
			continue
		}
		kept = append(kept, tagged{tx: t, inExpense: inExpense, inIncome: inIncome})
	}
	return kept
}

// retain runs the pipeline for a single flow.
func (a *Aggregator) retain(txs []ledger.Transaction, rng *ledger.DateRange, filters ledger.ReportFilters, fl flow) []ledger.Transaction {
	both := a.retainBoth(txs, rng, filters)
	kept := make([]ledger.Transaction, 0, len(both))
	for _, tg := range both {
		if fl == flowExpense && tg.inExpense {
			kept = append(kept, tg.tx)
		}
		if fl == flowIncome && tg.inIncome {
			kept = append(kept, tg.tx)
		}
	}
	return kept
}

// convert rewrites amounts into the reporting currency with one batch
// call. Conversion failure degrades to native amounts rather than failing
// the report.
func (a *Aggregator) convert(txs []ledger.Transaction) []ledger.Transaction {
	if len(txs) == 0 {
		return txs
	}
	converted, err := a.converter.ConvertTransactionsBatch(txs)
	if err != nil || len(converted) != len(txs) {
		a.logger.Warn("currency conversion failed, reporting native amounts", "error", err)
		return txs
	}
	return converted
}

// convertTagged converts the underlying transactions of a tagged set,
// preserving flow membership.
func (a *Aggregator) convertTagged(both []tagged) []tagged {
	if len(both) == 0 {
		return both
	}
	txs := make([]ledger.Transaction, len(both))
	for i, tg := range both {
		txs[i] = tg.tx
	}
	converted := a.convert(txs)
	out := make([]tagged, len(both))
	for i, tg := range both {
		out[i] = tagged{tx: converted[i], inExpense: tg.inExpense, inIncome: tg.inIncome}
	}
	return out
}
