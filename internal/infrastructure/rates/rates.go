// Package rates converts transaction amounts into a single reporting
// currency. Conversions run as one batch per report invocation so a
// rate refresh happens at most once per call.
package rates

import (
	"strings"
	"sync"
	"time"

	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
)

// StaticConverter converts using a fixed rate table, typically loaded
// from configuration. Rates are expressed as units of the default
// currency per unit of the foreign currency.
type StaticConverter struct {
	defaultCurrency string
	rates           map[string]float64
}

// NewStaticConverter creates a converter over a fixed rate table.
// Rate keys are normalized to upper case.
func NewStaticConverter(defaultCurrency string, rates map[string]float64) *StaticConverter {
	normalized := make(map[string]float64, len(rates))
	for code, rate := range rates {
		normalized[strings.ToUpper(code)] = rate
	}
	return &StaticConverter{
		defaultCurrency: strings.ToUpper(defaultCurrency),
		rates:           normalized,
	}
}

// DefaultCurrency returns the reporting currency code.
func (c *StaticConverter) DefaultCurrency() string {
	return c.defaultCurrency
}

// ConvertTransactionsBatch converts every transaction with a foreign
// OriginalCurrency into the default currency. Transactions already in
// the default currency, or in a currency with no known rate, pass
// through unchanged.
func (c *StaticConverter) ConvertTransactionsBatch(txs []ledger.Transaction) ([]ledger.Transaction, error) {
	out := make([]ledger.Transaction, len(txs))
	copy(out, txs)
	for i := range out {
		currency := strings.ToUpper(out[i].OriginalCurrency)
		if currency == "" || currency == c.defaultCurrency {
			continue
		}
		rate, ok := c.rates[currency]
		if !ok {
			continue
		}
		out[i].Amount *= rate
	}
	return out, nil
}

// RateSource fetches the current rate table. Implementations may hit a
// remote service; the cache above them decides when.
type RateSource interface {
	FetchRates() (map[string]float64, error)
}

// CachingConverter converts using rates from a RateSource, refreshing
// at most once per TTL window. A fetch failure surfaces as an error so
// report callers can degrade to native amounts.
type CachingConverter struct {
	defaultCurrency string
	source          RateSource
	ttl             time.Duration
	now             func() time.Time

	mu        sync.Mutex
	rates     map[string]float64
	fetchedAt time.Time
}

// NewCachingConverter creates a converter that caches rates from the
// given source for ttl.
func NewCachingConverter(defaultCurrency string, source RateSource, ttl time.Duration) *CachingConverter {
	return &CachingConverter{
		defaultCurrency: strings.ToUpper(defaultCurrency),
		source:          source,
		ttl:             ttl,
		now:             time.Now,
	}
}

// DefaultCurrency returns the reporting currency code.
func (c *CachingConverter) DefaultCurrency() string {
	return c.defaultCurrency
}

// ConvertTransactionsBatch converts the batch using the cached rate
// table, refreshing it first when stale. Returns an error only when no
// usable rate table exists; callers keep native amounts in that case.
func (c *CachingConverter) ConvertTransactionsBatch(txs []ledger.Transaction) ([]ledger.Transaction, error) {
	rates, err := c.currentRates()
	if err != nil {
		return nil, err
	}

	out := make([]ledger.Transaction, len(txs))
	copy(out, txs)
	for i := range out {
		currency := strings.ToUpper(out[i].OriginalCurrency)
		if currency == "" || currency == c.defaultCurrency {
			continue
		}
		rate, ok := rates[currency]
		if !ok {
			continue
		}
		out[i].Amount *= rate
	}
	return out, nil
}

func (c *CachingConverter) currentRates() (map[string]float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rates != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.rates, nil
	}

	fetched, err := c.source.FetchRates()
	if err != nil {
		// Serve stale rates over failing when we have any.
		if c.rates != nil {
			return c.rates, nil
		}
		return nil, err
	}

	normalized := make(map[string]float64, len(fetched))
	for code, rate := range fetched {
		normalized[strings.ToUpper(code)] = rate
	}
	c.rates = normalized
	c.fetchedAt = c.now()
	return c.rates, nil
}
