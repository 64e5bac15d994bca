package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/spendlens-backend/internal/api"
	"github.com/spendlens/spendlens-backend/internal/api/dto"
	"github.com/spendlens/spendlens-backend/internal/application/service"
	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/rates"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/storage"
)

// These tests use a real SQLite database to exercise the full stack:
// HTTP request → Router → Handlers → Service → Storage → SQLite.

func createIntegrationServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := storage.NewStorage(filepath.Join(t.TempDir(), "integration.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	converter := rates.NewStaticConverter("USD", map[string]float64{"EUR": 1.10})
	insights := service.NewInsightsService(store, converter, ledger.Preferences{DefaultCurrency: "USD"}, nil)

	server := api.NewServer(api.DefaultConfig(), store, insights, nil)
	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestAPI_Integration_IngestThenReport(t *testing.T) {
	ts := createIntegrationServer(t)

	body := dto.IngestRequest{Transactions: []dto.TransactionPayload{
		{Date: "2025-06-01", Amount: -120, Description: "WHOLE FOODS", Category: "Groceries", Account: "Checking", Type: "expense"},
		{Date: "2025-06-03", Amount: -30, Description: "LOCAL BISTRO", Category: "Dining", Account: "Checking", Type: "expense"},
		{Date: "2025-06-05", Amount: -100, Description: "AMAZON EU", Category: "Shopping", Account: "Credit Card", Type: "expense", OriginalCurrency: "EUR"},
		{Date: "2025-06-10", Amount: 4000, Description: "PAYROLL", Category: "Salary", Account: "Checking", Type: "income"},
		{Date: "2025-06-12", Amount: -500, Description: "Transfer to Savings", Category: "Other", Account: "Checking", Type: "expense"},
	}}
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/api/transactions", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Spending report: transfer excluded by description, EUR converted.
	resp, err = http.Get(ts.URL + "/api/reports/spending")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report dto.CategoryReportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))

	totals := map[string]float64{}
	for _, c := range report.Categories {
		totals[c.CategoryName] = c.Amount
	}
	assert.InDelta(t, 120, totals["Groceries"], 0.001)
	assert.InDelta(t, 30, totals["Dining"], 0.001)
	assert.InDelta(t, 110, totals["Shopping"], 0.001)
	assert.NotContains(t, totals, "Other")
	assert.InDelta(t, 260, report.Total, 0.001)
}

func TestAPI_Integration_HealthCheck(t *testing.T) {
	ts := createIntegrationServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
}

func TestAPI_Integration_EmptyDatabase(t *testing.T) {
	ts := createIntegrationServer(t)

	resp, err := http.Get(ts.URL + "/api/reports/spending")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report dto.CategoryReportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Empty(t, report.Categories)
	assert.Zero(t, report.Total)
}
