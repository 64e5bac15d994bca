package ledger

import "strings"

// ReportFilters narrows a report to selected types, categories, and accounts.
// Every dimension is optional: an empty slice means no restriction on that
// dimension. Transfers are the exception — they are excluded unless
// SelectedTypes names them, matching the default of keeping internal money
// movement out of income/expense totals.
type ReportFilters struct {
	SelectedTypes      []string `json:"selected_types,omitempty"`
	SelectedCategories []string `json:"selected_categories,omitempty"`
	SelectedAccounts   []string `json:"selected_accounts,omitempty"`
}

// FiltersFromLegacy converts the legacy includeTransfers boolean into the
// structured filter form. True selects every type; false applies no type
// restriction, which keeps transfers out and leaves asset-allocation
// inclusion to the user preference.
func FiltersFromLegacy(includeTransfers bool) ReportFilters {
	if !includeTransfers {
		return ReportFilters{}
	}
	types := make([]string, 0, len(AllTypes))
	for _, tt := range AllTypes {
		types = append(types, string(tt))
	}
	return ReportFilters{SelectedTypes: types}
}

// IncludeTransfers reports whether transfer transactions were requested.
func (f ReportFilters) IncludeTransfers() bool {
	return containsFold(f.SelectedTypes, string(TypeTransfer))
}

// HasTypeFilter reports whether the caller restricted types explicitly.
// When false, asset-allocation inclusion falls back to the user preference.
func (f ReportFilters) HasTypeFilter() bool {
	return len(f.SelectedTypes) > 0
}

// IncludeAssetAllocation reports whether asset-allocation transactions were
// requested by an explicit type filter.
func (f ReportFilters) IncludeAssetAllocation() bool {
	return containsFold(f.SelectedTypes, string(TypeAssetAllocation))
}

// AllowsType reports whether the (non-transfer, non-asset) type passes the
// type restriction. No restriction allows everything.
func (f ReportFilters) AllowsType(tt TransactionType) bool {
	if len(f.SelectedTypes) == 0 {
		return true
	}
	return containsFold(f.SelectedTypes, string(tt))
}

// AllowsCategory reports whether the category passes the category
// restriction. Matching is case-insensitive.
func (f ReportFilters) AllowsCategory(category string) bool {
	if len(f.SelectedCategories) == 0 {
		return true
	}
	return containsFold(f.SelectedCategories, category)
}

// AllowsAccount reports whether the account passes the account restriction.
func (f ReportFilters) AllowsAccount(account string) bool {
	if len(f.SelectedAccounts) == 0 {
		return true
	}
	return containsFold(f.SelectedAccounts, account)
}

func containsFold(list []string, want string) bool {
	for _, s := range list {
		if strings.EqualFold(s, want) {
			return true
		}
	}
	return false
}
