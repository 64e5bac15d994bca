package classifier

import "regexp"

// The keyword tables below exist because upstream categorization is
// unreliable: the category and type fields regularly disagree with an
// obvious transfer description, and totals must be protected from that
// noise regardless of which field lies. Keeping them as data tables lets
// them be tested independently of the decision logic.

// transferCategories are category values that mark a transaction as an
// internal transfer. Matched case-insensitively as substrings.
var transferCategories = []string{
	"internal transfer",
	"transfer",
	"transfers",
	"between accounts",
	"account transfer",
	"bank transfer",
}

// transferKeywords are description phrases that mark a transfer even when
// category and type say otherwise. Matched case-insensitively as substrings.
var transferKeywords = []string{
	"transfer to",
	"transfer from",
	"online transfer",
	"internal transfer",
	"ach transfer",
	"wire transfer",
	"zelle transfer",
	"venmo transfer",
	"paypal transfer",
	"atm withdrawal",
	"atm deposit",
	"cash withdrawal",
	"cash deposit",
	"move money",
	"fund transfer",
	"funds transfer",
	"transfer between",
}

// transferPatterns catch phrasings the keyword list misses: ATM activity
// and "transfer" paired with an account-type word in either order.
var transferPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)atm\s*(withdrawal|deposit|cash|#)`),
	regexp.MustCompile(`(?i)transfer.*\b(saving|checking|account)s?\b`),
	regexp.MustCompile(`(?i)\b(saving|checking|account)s?\b.*transfer`),
}
