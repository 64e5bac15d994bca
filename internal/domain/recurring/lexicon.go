package recurring

import "strings"

// knownBrands are services whose subscriptions legitimately charge under
// the $5 floor. Matched case-insensitively as substrings of the
// normalized description.
var knownBrands = []string{
	"netflix",
	"spotify",
	"hulu",
	"disney",
	"apple",
	"icloud",
	"youtube",
	"amazon prime",
	"prime video",
	"hbo",
	"paramount",
	"peacock",
	"audible",
	"kindle",
	"github",
	"dropbox",
	"google one",
	"google storage",
	"onedrive",
	"playstation",
	"xbox",
	"nintendo",
	"patreon",
	"substack",
	"nytimes",
	"new york times",
	"wall street journal",
	"economist",
}

// dailyPurchaseMerchants are places people buy from habitually. Weekly
// groups matching these are everyday habits, not subscriptions.
var dailyPurchaseMerchants = []string{
	"starbucks",
	"dunkin",
	"mcdonald",
	"burger king",
	"wendy",
	"taco bell",
	"chipotle",
	"subway",
	"chick-fil-a",
	"panera",
	"7-eleven",
	"seven eleven",
	"wawa",
	"sheetz",
	"uber eats",
	"doordash",
	"grubhub",
	"deli",
	"coffee",
	"cafe",
	"bakery",
}

// foodCategories mark a transaction as food/dining spending for the
// weekly-habit exclusion.
var foodCategories = []string{
	"food",
	"dining",
	"restaurant",
	"coffee",
	"cafe",
	"cafeteria",
	"fast food",
	"groceries",
}

func isKnownBrand(normalized string) bool {
	for _, brand := range knownBrands {
		if strings.Contains(normalized, brand) {
			return true
		}
	}
	return false
}

func isDailyPurchaseMerchant(normalized string) bool {
	for _, merchant := range dailyPurchaseMerchants {
		if strings.Contains(normalized, merchant) {
			return true
		}
	}
	return false
}

func isFoodCategory(category string) bool {
	c := strings.ToLower(category)
	for _, food := range foodCategories {
		if strings.Contains(c, food) {
			return true
		}
	}
	return false
}
