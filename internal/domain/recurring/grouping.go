package recurring

import (
	"math"

	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
)

// Amount tolerance for bucket membership: half a dollar, or 30% of the
// bucket's representative amount, whichever is larger. The percentage arm
// lets a group survive subscription price changes.
const (
	amountToleranceFloor = 0.50
	amountToleranceRatio = 0.30
)

// amountBucket collects transactions with similar magnitudes. The first
// member's magnitude is the representative the tolerance is measured from.
type amountBucket struct {
	representative float64
	txs            []ledger.Transaction
}

// group is a candidate subscription: one amount band, one service name.
type group struct {
	normalized string
	txs        []ledger.Transaction
}

// groupCandidates buckets by tolerant amount first so that pairwise
// description comparison only ever runs inside a bucket. Bucketing before
// comparing keeps grouping near-linear on large sets; all-pairs comparison
// over the whole input would be quadratic.
func groupCandidates(txs []ledger.Transaction) []group {
	var buckets []*amountBucket
	for _, t := range txs {
		magnitude := math.Abs(t.Amount)

		var target *amountBucket
		for _, b := range buckets {
			tolerance := math.Max(amountToleranceFloor, amountToleranceRatio*b.representative)
			if math.Abs(magnitude-b.representative) <= tolerance {
				target = b
				break
			}
		}
		if target == nil {
			target = &amountBucket{representative: magnitude}
			buckets = append(buckets, target)
		}
		target.txs = append(target.txs, t)
	}

	var groups []group
	for _, b := range buckets {
		groups = append(groups, partitionByDescription(b.txs)...)
	}
	return groups
}

// partitionByDescription splits one amount bucket into groups of
// transactions whose normalized descriptions name the same service.
func partitionByDescription(txs []ledger.Transaction) []group {
	var groups []*group
	for _, t := range txs {
		normalized := NormalizeDescription(t.Description)

		var target *group
		for _, g := range groups {
			if similar(normalized, g.normalized) {
				target = g
				break
			}
		}
		if target == nil {
			target = &group{normalized: normalized}
			groups = append(groups, target)
		}
		target.txs = append(target.txs, t)
	}

	out := make([]group, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	return out
}
