// Package classifier decides what a transaction fundamentally is — an
// internal transfer, an investment movement, or ordinary income/expense —
// from noisy and frequently inconsistent input fields.
//
// Example usage:
//
//	if classifier.IsInternalTransfer(tx) {
//		// exclude from income/expense totals
//	}
package classifier

import (
	"strings"

	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
)

// IsInternalTransfer reports whether the transaction moves money between
// the user's own accounts. Decision order, first match wins:
//
//  1. Type field says transfer (authoritative when present).
//  2. Category matches a known transfer category.
//  3. Description contains a transfer keyword.
//  4. Description matches an ATM or transfer+account pattern.
func IsInternalTransfer(t ledger.Transaction) bool {
	if t.Type == ledger.TypeTransfer {
		return true
	}

	category := strings.ToLower(t.Category)
	for _, c := range transferCategories {
		if strings.Contains(category, c) {
			return true
		}
	}

	description := strings.ToLower(t.Description)
	for _, kw := range transferKeywords {
		if strings.Contains(description, kw) {
			return true
		}
	}

	for _, p := range transferPatterns {
		if p.MatchString(t.Description) {
			return true
		}
	}

	return false
}

// IsAssetAllocation reports whether the transaction is an investment
// purchase or sale. Only the type field decides this: inclusion in a
// report is governed by an explicit caller-supplied filter or preference,
// never inferred from content.
func IsAssetAllocation(t ledger.Transaction) bool {
	return t.Type == ledger.TypeAssetAllocation
}
