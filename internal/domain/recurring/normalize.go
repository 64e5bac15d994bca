package recurring

import (
	"regexp"
	"strings"
)

// Boilerplate the banks wrap around a service name. Leading tokens are
// stripped from the front, trailing tokens from the end.
var (
	leadingTokens  = []string{"recurring", "auto", "autopay", "payment to", "pmt to"}
	trailingTokens = []string{"bill", "subscription", "payment"}

	embeddedIDPattern   = regexp.MustCompile(`#\w+`)
	embeddedDatePattern = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}([/-]\d{2,4})?\b`)
	longDigitsPattern   = regexp.MustCompile(`\b\d{3,}\b`)
	spacePattern        = regexp.MustCompile(`\s+`)
)

// NormalizeDescription reduces a bank narrative to the service name it
// wraps: lowercased, boilerplate tokens stripped, embedded IDs and dates
// removed.
func NormalizeDescription(description string) string {
	s := strings.ToLower(strings.TrimSpace(description))

	s = embeddedIDPattern.ReplaceAllString(s, " ")
	s = embeddedDatePattern.ReplaceAllString(s, " ")
	s = longDigitsPattern.ReplaceAllString(s, " ")
	s = spacePattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	for changed := true; changed; {
		changed = false
		for _, tok := range leadingTokens {
			if strings.HasPrefix(s, tok+" ") {
				s = strings.TrimSpace(strings.TrimPrefix(s, tok+" "))
				changed = true
			}
		}
		for _, tok := range trailingTokens {
			if strings.HasSuffix(s, " "+tok) {
				s = strings.TrimSpace(strings.TrimSuffix(s, " "+tok))
				changed = true
			}
		}
	}

	return strings.Trim(s, " -*.")
}

// similarityThreshold is the minimum normalized similarity for two
// descriptions to land in the same group.
const similarityThreshold = 0.7

// similar reports whether two normalized descriptions refer to the same
// service. Cheap checks run first (equality, containment, word overlap) so
// the Levenshtein fallback is rarely reached.
func similar(a, b string) bool {
	if a == "" || b == "" {
		return a == b
	}
	if a == b {
		return true
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	if wordOverlap(a, b) > 0.5 {
		return true
	}
	return levenshteinSimilarity(a, b) > similarityThreshold
}

// wordOverlap returns the ratio of shared distinct words to the smaller
// distinct word set.
func wordOverlap(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	shared := 0
	for w := range setA {
		if setB[w] {
			shared++
		}
	}

	smaller := len(setA)
	if len(setB) < smaller {
		smaller = len(setB)
	}
	return float64(shared) / float64(smaller)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

// levenshteinSimilarity is 1 - editDistance/maxLen, in [0, 1].
func levenshteinSimilarity(a, b string) float64 {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(maxLen)
}

// levenshtein computes edit distance with a two-row matrix.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
