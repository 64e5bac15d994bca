package recurring

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/spendlens/spendlens-backend/internal/domain/classifier"
	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
)

const (
	// minGroupSize is the fewest charges that can establish a cadence.
	minGroupSize = 3
	// maxAmountVariation caps (max-min)/mean across a group's charges.
	maxAmountVariation = 0.25
	// minMeanAmount filters out micro-charges unless a known brand.
	minMeanAmount = 5.0
	// maxShortCycleAmount caps weekly and bi-weekly charges; large
	// amounts on short cycles are bills or habits, not subscriptions.
	maxShortCycleAmount = 500.0
	// foodDominanceRatio marks a weekly group as an eating habit.
	foodDominanceRatio = 0.8
	// Price changes must move by both of these to be flagged.
	priceChangeMinRatio  = 0.05
	priceChangeMinAmount = 0.50

	avgDaysPerMonth = 30.44
)

// Detect finds subscriptions in the transaction set. now anchors the
// activity computation and is never cached, so re-running on an unchanged
// set yields identical subscriptions.
func (d *Detector) Detect(txs []ledger.Transaction, now time.Time) []Subscription {
	candidates := make([]ledger.Transaction, 0, len(txs))
	for _, t := range txs {
		if !t.Valid() {
			continue
		}
		if t.Type != ledger.TypeExpense || t.Amount >= 0 {
			continue
		}
		if classifier.IsInternalTransfer(t) {
			continue
		}
		candidates = append(candidates, t)
	}

	converted, err := d.converter.ConvertTransactionsBatch(candidates)
	if err != nil || len(converted) != len(candidates) {
		d.logger.Warn("currency conversion failed, detecting over native amounts", "error", err)
		converted = candidates
	}

	subscriptions := []Subscription{}
	for _, g := range groupCandidates(converted) {
		sort.Slice(g.txs, func(i, j int) bool { return g.txs[i].Date.Before(g.txs[j].Date) })

		dates := make([]time.Time, len(g.txs))
		for i, t := range g.txs {
			dates[i] = t.Date
		}
		freq := classifyFrequency(dates)

		if !d.accept(g, freq) {
			continue
		}
		subscriptions = append(subscriptions, buildSubscription(g, freq, now))
	}

	sort.Slice(subscriptions, func(i, j int) bool {
		if subscriptions[i].AnnualCost != subscriptions[j].AnnualCost {
			return subscriptions[i].AnnualCost > subscriptions[j].AnnualCost
		}
		return subscriptions[i].Name < subscriptions[j].Name
	})
	return subscriptions
}

// accept applies the subscription gates to a dated group.
func (d *Detector) accept(g group, freq Frequency) bool {
	if len(g.txs) < minGroupSize {
		return false
	}
	if !billingFrequencies[freq] {
		return false
	}

	mean, minAmt, maxAmt := amountStats(g.txs)
	if mean <= 0 {
		return false
	}
	if (maxAmt-minAmt)/mean > maxAmountVariation {
		return false
	}
	if mean < minMeanAmount && !isKnownBrand(g.normalized) {
		return false
	}
	shortCycle := freq == FrequencyWeekly || freq == FrequencyBiWeekly
	if shortCycle && mean > maxShortCycleAmount {
		return false
	}

	span := g.txs[len(g.txs)-1].Date.Sub(g.txs[0].Date).Hours() / 24
	if span < minSpanDays[freq] {
		return false
	}

	// Weekly cadences that are really eating habits are not subscriptions.
	if freq == FrequencyWeekly {
		if isDailyPurchaseMerchant(g.normalized) {
			return false
		}
		food := 0
		for _, t := range g.txs {
			if isFoodCategory(t.Category) {
				food++
			}
		}
		if float64(food)/float64(len(g.txs)) >= foodDominanceRatio {
			return false
		}
	}

	return true
}

func buildSubscription(g group, freq Frequency, now time.Time) Subscription {
	mean, _, _ := amountStats(g.txs)
	last := g.txs[len(g.txs)-1].Date
	next := nextChargeDate(last, freq)

	monthsSince := now.Sub(last).Hours() / 24 / avgDaysPerMonth
	if monthsSince < 0 {
		monthsSince = 0
	}

	sub := Subscription{
		Name:                  displayName(g),
		Amount:                mean,
		Frequency:             freq,
		AnnualCost:            mean * periodsPerYear[freq],
		Category:              dominantValue(g.txs, func(t ledger.Transaction) string { return t.Category }),
		Account:               dominantValue(g.txs, func(t ledger.Transaction) string { return t.Account }),
		LastChargedDate:       last,
		NextEstimatedDate:     &next,
		TransactionCount:      len(g.txs),
		MonthsSinceLastCharge: monthsSince,
		IsActive:              monthsSince < stalenessMonths[freq],
		PriceChange:           detectPriceChange(g.txs),
		Transactions:          append([]ledger.Transaction(nil), g.txs...),
	}
	return sub
}

// detectPriceChange flags first-vs-last or any adjacent step differing by
// more than 5% and more than fifty cents. txs must be sorted by date.
func detectPriceChange(txs []ledger.Transaction) *PriceChange {
	first := math.Abs(txs[0].Amount)
	last := math.Abs(txs[len(txs)-1].Amount)
	if qualifiesAsPriceChange(first, last) {
		return &PriceChange{PreviousAmount: first, CurrentAmount: last, Increased: last > first}
	}
	for i := 1; i < len(txs); i++ {
		prev := math.Abs(txs[i-1].Amount)
		curr := math.Abs(txs[i].Amount)
		if qualifiesAsPriceChange(prev, curr) {
			return &PriceChange{PreviousAmount: prev, CurrentAmount: curr, Increased: curr > prev}
		}
	}
	return nil
}

func qualifiesAsPriceChange(from, to float64) bool {
	diff := math.Abs(to - from)
	if diff <= priceChangeMinAmount {
		return false
	}
	if from == 0 {
		return true
	}
	return diff/from > priceChangeMinRatio
}

func amountStats(txs []ledger.Transaction) (mean, minAmt, maxAmt float64) {
	if len(txs) == 0 {
		return 0, 0, 0
	}
	minAmt = math.Abs(txs[0].Amount)
	maxAmt = minAmt
	var sum float64
	for _, t := range txs {
		m := math.Abs(t.Amount)
		sum += m
		if m < minAmt {
			minAmt = m
		}
		if m > maxAmt {
			maxAmt = m
		}
	}
	return sum / float64(len(txs)), minAmt, maxAmt
}

// displayName turns a normalized description back into a readable name.
func displayName(g group) string {
	if g.normalized == "" {
		return "Unknown"
	}
	words := strings.Fields(g.normalized)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// dominantValue returns the most frequent non-empty value of the selector
// across the group.
func dominantValue(txs []ledger.Transaction, selector func(ledger.Transaction) string) string {
	counts := make(map[string]int)
	best := ""
	for _, t := range txs {
		v := selector(t)
		if v == "" {
			continue
		}
		counts[v]++
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best
}
