package recurring

import (
	"math"
	"time"
)

// frequencyRule classifies a gap profile. Rules are checked in order and
// the first match wins.
type frequencyRule struct {
	frequency Frequency
	minMean   float64 // days
	maxMean   float64
	maxDev    float64 // max deviation from the mean gap
	minSpan   float64 // total first-to-last span required, 0 = none
}

var frequencyRules = []frequencyRule{
	{FrequencyWeekly, 5, 10, 3, 0},
	{FrequencyBiWeekly, 12, 18, 4, 0},
	{FrequencyMonthly, 25, 35, 7, 0},
	{FrequencyQuarterly, 85, 100, 14, 0},
	{FrequencyAnnual, 350, 380, 30, 300},
}

// billingFrequencies are the cadences a subscription can have.
var billingFrequencies = map[Frequency]bool{
	FrequencyWeekly:    true,
	FrequencyBiWeekly:  true,
	FrequencyMonthly:   true,
	FrequencyQuarterly: true,
	FrequencyAnnual:    true,
}

// periodsPerYear converts a mean charge into an annual cost.
var periodsPerYear = map[Frequency]float64{
	FrequencyWeekly:    52,
	FrequencyBiWeekly:  26,
	FrequencyMonthly:   12,
	FrequencyQuarterly: 4,
	FrequencyAnnual:    1,
}

// minSpanDays is the shortest observation window that justifies calling a
// cadence real: roughly three periods of history.
var minSpanDays = map[Frequency]float64{
	FrequencyWeekly:    21,
	FrequencyBiWeekly:  42,
	FrequencyMonthly:   70,
	FrequencyQuarterly: 200,
	FrequencyAnnual:    400,
}

// stalenessMonths is how many months of silence mark a subscription
// inactive for each cadence.
var stalenessMonths = map[Frequency]float64{
	FrequencyWeekly:    1,
	FrequencyBiWeekly:  1.5,
	FrequencyMonthly:   2,
	FrequencyQuarterly: 4,
	FrequencyAnnual:    14,
}

// classifyFrequency derives the billing cadence from the day gaps between
// consecutive charges. dates must be sorted ascending.
func classifyFrequency(dates []time.Time) Frequency {
	if len(dates) < 2 {
		return FrequencyOneTime
	}

	gaps := make([]float64, 0, len(dates)-1)
	for i := 1; i < len(dates); i++ {
		gaps = append(gaps, dates[i].Sub(dates[i-1]).Hours()/24)
	}

	var sum float64
	for _, g := range gaps {
		sum += g
	}
	mean := sum / float64(len(gaps))

	var maxDev float64
	for _, g := range gaps {
		if dev := math.Abs(g - mean); dev > maxDev {
			maxDev = dev
		}
	}

	span := dates[len(dates)-1].Sub(dates[0]).Hours() / 24

	for _, rule := range frequencyRules {
		if mean < rule.minMean || mean > rule.maxMean {
			continue
		}
		if maxDev > rule.maxDev {
			continue
		}
		if rule.minSpan > 0 && span < rule.minSpan {
			continue
		}
		return rule.frequency
	}
	return FrequencyIrregular
}

// nextChargeDate estimates the date of the next charge after last.
func nextChargeDate(last time.Time, freq Frequency) time.Time {
	switch freq {
	case FrequencyWeekly:
		return last.AddDate(0, 0, 7)
	case FrequencyBiWeekly:
		return last.AddDate(0, 0, 14)
	case FrequencyMonthly:
		return last.AddDate(0, 1, 0)
	case FrequencyQuarterly:
		return last.AddDate(0, 3, 0)
	case FrequencyAnnual:
		return last.AddDate(1, 0, 0)
	default:
		return last
	}
}
