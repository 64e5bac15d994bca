package rates

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// HTTPRateSource fetches a rate table from a JSON endpoint shaped like
// {"base": "USD", "rates": {"EUR": 1.08, ...}}. Transient failures are
// retried with backoff before the fetch is reported as failed.
type HTTPRateSource struct {
	url    string
	client *retryablehttp.Client
}

// NewHTTPRateSource creates a rate source for the given endpoint.
func NewHTTPRateSource(url string) *HTTPRateSource {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.HTTPClient.Timeout = 15 * time.Second
	client.Logger = nil
	return &HTTPRateSource{url: url, client: client}
}

// FetchRates retrieves the current rate table.
func (s *HTTPRateSource) FetchRates() (map[string]float64, error) {
	resp, err := s.client.Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read rates response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Base  string             `json:"base"`
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse rates response: %w", err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("rates endpoint returned no rates")
	}
	return payload.Rates, nil
}
