package recurring

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
)

type identityConverter struct {
	err error
}

func (c identityConverter) ConvertTransactionsBatch(txs []ledger.Transaction) ([]ledger.Transaction, error) {
	if c.err != nil {
		return nil, c.err
	}
	return txs, nil
}

func (c identityConverter) DefaultCurrency() string { return "USD" }

func newTestDetector() *Detector {
	return NewDetector(identityConverter{}, slog.Default())
}

// charges builds expense transactions with the given description and
// category, one per (offsetDays, amount) pair from start.
func charges(description, category string, start time.Time, steps []struct {
	offsetDays int
	amount     float64
}) []ledger.Transaction {
	txs := make([]ledger.Transaction, 0, len(steps))
	for i, s := range steps {
		txs = append(txs, ledger.Transaction{
			ID:          description + string(rune('a'+i)),
			Date:        start.AddDate(0, 0, s.offsetDays),
			Amount:      s.amount,
			Description: description,
			Category:    category,
			Account:     "Checking",
			Type:        ledger.TypeExpense,
		})
	}
	return txs
}

func monthlyCharges(description, category string, start time.Time, amount float64, count int) []ledger.Transaction {
	steps := make([]struct {
		offsetDays int
		amount     float64
	}, count)
	for i := range steps {
		steps[i].offsetDays = i * 30
		steps[i].amount = amount
	}
	return charges(description, category, start, steps)
}

var detectStart = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

func nowAfter(txs []ledger.Transaction, days int) time.Time {
	last := txs[0].Date
	for _, t := range txs {
		if t.Date.After(last) {
			last = t.Date
		}
	}
	return last.AddDate(0, 0, days)
}

func TestDetect_MonthlySubscription(t *testing.T) {
	d := newTestDetector()
	txs := monthlyCharges("NETFLIX.COM", "Entertainment", detectStart, -15.49, 4)
	now := nowAfter(txs, 10)

	subs := d.Detect(txs, now)

	require.Len(t, subs, 1)
	sub := subs[0]
	assert.Equal(t, FrequencyMonthly, sub.Frequency)
	assert.InDelta(t, 15.49, sub.Amount, 0.001)
	assert.InDelta(t, 15.49*12, sub.AnnualCost, 0.001)
	assert.Equal(t, 4, sub.TransactionCount)
	assert.Equal(t, "Entertainment", sub.Category)
	assert.True(t, sub.IsActive)
	assert.Nil(t, sub.PriceChange)
	require.NotNil(t, sub.NextEstimatedDate)
	assert.Equal(t, sub.LastChargedDate.AddDate(0, 1, 0), *sub.NextEstimatedDate)
}

func TestDetect_DescriptionVariantsGroupTogether(t *testing.T) {
	// The same service shows up with IDs, boilerplate, and suffix noise.
	d := newTestDetector()
	txs := []ledger.Transaction{}
	descriptions := []string{"NETFLIX.COM", "NETFLIX #881234", "RECURRING NETFLIX", "NETFLIX.COM"}
	for i, desc := range descriptions {
		txs = append(txs, ledger.Transaction{
			ID:          desc,
			Date:        detectStart.AddDate(0, 0, i*30),
			Amount:      -15.49,
			Description: desc,
			Category:    "Entertainment",
			Account:     "Checking",
			Type:        ledger.TypeExpense,
		})
	}

	subs := d.Detect(txs, nowAfter(txs, 5))

	require.Len(t, subs, 1)
	assert.Equal(t, 4, subs[0].TransactionCount)
}

func TestDetect_TooFewCharges(t *testing.T) {
	d := newTestDetector()
	txs := monthlyCharges("NETFLIX.COM", "Entertainment", detectStart, -15.49, 2)

	subs := d.Detect(txs, nowAfter(txs, 5))

	assert.Empty(t, subs)
}

func TestDetect_MonthlyNeedsSeventyDaySpan(t *testing.T) {
	// Three 30-day charges classify as Monthly but only span 60 days,
	// which is too short to call real.
	d := newTestDetector()
	txs := monthlyCharges("NETFLIX.COM", "Entertainment", detectStart, -15.49, 3)

	subs := d.Detect(txs, nowAfter(txs, 5))

	assert.Empty(t, subs)
}

func TestDetect_AmountVariationRejected(t *testing.T) {
	d := newTestDetector()
	txs := charges("ACME GYM", "Fitness", detectStart, []struct {
		offsetDays int
		amount     float64
	}{
		{0, -20.00},
		{30, -20.00},
		{60, -35.00}, // 50%+ swing across the group
		{90, -20.00},
	})

	subs := d.Detect(txs, nowAfter(txs, 5))

	assert.Empty(t, subs)
}

func TestDetect_MicroChargeNeedsKnownBrand(t *testing.T) {
	d := newTestDetector()
	unknown := monthlyCharges("TINY SAAS CO", "Software", detectStart, -2.99, 4)
	brand := monthlyCharges("APPLE ICLOUD", "Software", detectStart, -2.99, 4)

	assert.Empty(t, d.Detect(unknown, nowAfter(unknown, 5)))
	require.Len(t, d.Detect(brand, nowAfter(brand, 5)), 1)
}

func TestDetect_WeeklyFoodHabitRejected(t *testing.T) {
	d := newTestDetector()
	// A perfectly periodic weekly grocery run is a habit, not a
	// subscription.
	txs := charges("CORNER MARKET", "Food & Dining", detectStart, []struct {
		offsetDays int
		amount     float64
	}{
		{0, -42.00}, {7, -42.00}, {14, -42.00}, {21, -42.00},
	})

	subs := d.Detect(txs, nowAfter(txs, 2))

	assert.Empty(t, subs)
}

func TestDetect_WeeklyDailyMerchantRejected(t *testing.T) {
	d := newTestDetector()
	txs := charges("STARBUCKS STORE 221", "Shopping", detectStart, []struct {
		offsetDays int
		amount     float64
	}{
		{0, -11.50}, {7, -11.50}, {14, -11.50}, {21, -11.50},
	})

	subs := d.Detect(txs, nowAfter(txs, 2))

	assert.Empty(t, subs)
}

func TestDetect_WeeklySubscriptionAccepted(t *testing.T) {
	d := newTestDetector()
	txs := charges("ACME MEAL KITS", "Home", detectStart, []struct {
		offsetDays int
		amount     float64
	}{
		{0, -60.00}, {7, -60.00}, {14, -60.00}, {21, -60.00},
	})

	subs := d.Detect(txs, nowAfter(txs, 2))

	require.Len(t, subs, 1)
	assert.Equal(t, FrequencyWeekly, subs[0].Frequency)
	assert.InDelta(t, 60*52, subs[0].AnnualCost, 0.001)
}

func TestDetect_DailyPurchasePatternRejected(t *testing.T) {
	// Spec property: charges every 3 days in a food category never form a
	// subscription, regardless of their regularity.
	d := newTestDetector()
	txs := charges("LUNCH SPOT", "Food & Dining", detectStart, []struct {
		offsetDays int
		amount     float64
	}{
		{0, -12.00}, {3, -12.00}, {6, -12.00}, {9, -12.00}, {12, -12.00}, {15, -12.00}, {18, -12.00}, {21, -12.00},
	})

	subs := d.Detect(txs, nowAfter(txs, 1))

	assert.Empty(t, subs)
}

func TestDetect_TransfersExcluded(t *testing.T) {
	d := newTestDetector()
	txs := []ledger.Transaction{}
	for i := 0; i < 4; i++ {
		txs = append(txs, ledger.Transaction{
			ID:          "tr" + string(rune('a'+i)),
			Date:        detectStart.AddDate(0, 0, i*30),
			Amount:      -500,
			Description: "Online Transfer to Savings Account",
			Category:    "Housing",
			Account:     "Checking",
			Type:        ledger.TypeExpense,
		})
	}

	subs := d.Detect(txs, nowAfter(txs, 5))

	assert.Empty(t, subs)
}

func TestDetect_PositiveAndNonExpenseExcluded(t *testing.T) {
	d := newTestDetector()
	refunds := monthlyCharges("NETFLIX.COM", "Entertainment", detectStart, 15.49, 4)
	incomes := monthlyCharges("NETFLIX.COM", "Entertainment", detectStart, -15.49, 4)
	for i := range incomes {
		incomes[i].Type = ledger.TypeIncome
	}

	assert.Empty(t, d.Detect(refunds, nowAfter(refunds, 5)))
	assert.Empty(t, d.Detect(incomes, nowAfter(incomes, 5)))
}

func TestDetect_PriceChangeFlagged(t *testing.T) {
	d := newTestDetector()
	txs := charges("SPOTIFY", "Entertainment", detectStart, []struct {
		offsetDays int
		amount     float64
	}{
		{0, -9.99}, {30, -9.99}, {60, -11.99}, {90, -11.99},
	})

	subs := d.Detect(txs, nowAfter(txs, 5))

	require.Len(t, subs, 1)
	change := subs[0].PriceChange
	require.NotNil(t, change)
	assert.InDelta(t, 9.99, change.PreviousAmount, 0.001)
	assert.InDelta(t, 11.99, change.CurrentAmount, 0.001)
	assert.True(t, change.Increased)
}

func TestDetect_SmallPriceJitterNotFlagged(t *testing.T) {
	d := newTestDetector()
	// 40 cents is under the half-dollar floor even though it exceeds 5%.
	txs := charges("TRANSIT PASS", "Transport", detectStart, []struct {
		offsetDays int
		amount     float64
	}{
		{0, -7.20}, {30, -7.60}, {60, -7.20}, {90, -7.60},
	})

	subs := d.Detect(txs, nowAfter(txs, 5))

	require.Len(t, subs, 1)
	assert.Nil(t, subs[0].PriceChange)
}

func TestDetect_StalenessByFrequency(t *testing.T) {
	d := newTestDetector()
	txs := monthlyCharges("NETFLIX.COM", "Entertainment", detectStart, -15.49, 4)

	fresh := d.Detect(txs, nowAfter(txs, 30))
	stale := d.Detect(txs, nowAfter(txs, 150))

	require.Len(t, fresh, 1)
	require.Len(t, stale, 1)
	assert.True(t, fresh[0].IsActive)
	assert.False(t, stale[0].IsActive)
	assert.Greater(t, stale[0].MonthsSinceLastCharge, fresh[0].MonthsSinceLastCharge)
}

func TestDetect_Idempotent(t *testing.T) {
	d := newTestDetector()
	txs := monthlyCharges("NETFLIX.COM", "Entertainment", detectStart, -15.49, 4)
	txs = append(txs, charges("ACME MEAL KITS", "Home", detectStart, []struct {
		offsetDays int
		amount     float64
	}{
		{0, -60.00}, {7, -60.00}, {14, -60.00}, {21, -60.00},
	})...)
	now := nowAfter(txs, 10)

	first := d.Detect(txs, now)
	second := d.Detect(txs, now)

	assert.Equal(t, first, second)
}

func TestDetect_ConversionFailureDegrades(t *testing.T) {
	d := NewDetector(identityConverter{err: errors.New("rates unavailable")}, slog.Default())
	txs := monthlyCharges("NETFLIX.COM", "Entertainment", detectStart, -15.49, 4)

	subs := d.Detect(txs, nowAfter(txs, 5))

	require.Len(t, subs, 1)
	assert.InDelta(t, 15.49, subs[0].Amount, 0.001)
}

func TestDetect_EmptyInput(t *testing.T) {
	d := newTestDetector()

	subs := d.Detect(nil, detectStart)

	assert.NotNil(t, subs)
	assert.Empty(t, subs)
}

func TestFilterSubscriptions(t *testing.T) {
	d := newTestDetector()
	txs := monthlyCharges("NETFLIX.COM", "Entertainment", detectStart, -15.49, 4)
	txs = append(txs, charges("ACME MEAL KITS", "Home", detectStart, []struct {
		offsetDays int
		amount     float64
	}{
		{0, -60.00}, {7, -60.00}, {14, -60.00}, {21, -60.00},
	})...)
	subs := d.Detect(txs, nowAfter(txs, 10))
	require.Len(t, subs, 2)

	byCategory := FilterSubscriptions(subs, SubscriptionFilters{Categories: []string{"entertainment"}})
	require.Len(t, byCategory, 1)
	assert.Equal(t, FrequencyMonthly, byCategory[0].Frequency)

	byFrequency := FilterSubscriptions(subs, SubscriptionFilters{Frequencies: []string{"Weekly"}})
	require.Len(t, byFrequency, 1)

	none := FilterSubscriptions(subs, SubscriptionFilters{Accounts: []string{"Brokerage"}})
	assert.Empty(t, none)

	// Date filter keeps a subscription when any charge falls inside.
	early := &ledger.DateRange{Start: detectStart, End: detectStart.AddDate(0, 0, 3)}
	byDate := FilterSubscriptions(subs, SubscriptionFilters{DateRange: early})
	assert.Len(t, byDate, 2)

	summary := Summarize(byCategory)
	assert.Equal(t, 1, summary.TotalCount)
	assert.Equal(t, 1, summary.ActiveCount)
	assert.InDelta(t, 15.49*12, summary.TotalAnnualCost, 0.001)
	assert.InDelta(t, 15.49, summary.TotalMonthlyCost, 0.001)
}
