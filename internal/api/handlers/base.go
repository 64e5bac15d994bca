package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spendlens/spendlens-backend/internal/api/dto"
	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes an error response with the given status code.
func WriteError(w http.ResponseWriter, status int, err dto.APIError) {
	WriteJSON(w, status, err)
}

// ParseIntParam parses an integer query parameter with a default value.
func ParseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// ParseBoolParam parses a boolean query parameter with a default value.
func ParseBoolParam(r *http.Request, name string, defaultVal bool) bool {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}

// ParseListParam parses a comma-separated query parameter.
func ParseListParam(r *http.Request, name string) []string {
	val := r.URL.Query().Get(name)
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ParseDateParam parses a YYYY-MM-DD query parameter. Returns the zero
// time when absent, an error when malformed.
func ParseDateParam(r *http.Request, name string) (time.Time, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", val)
}

// parseDateRange builds a date range from the start/end query
// parameters. Returns nil when neither is supplied.
func parseDateRange(r *http.Request) (*ledger.DateRange, error) {
	start, err := ParseDateParam(r, "start")
	if err != nil {
		return nil, err
	}
	end, err := ParseDateParam(r, "end")
	if err != nil {
		return nil, err
	}
	if start.IsZero() && end.IsZero() {
		return nil, nil
	}
	// An end date means the whole day, not midnight.
	if !end.IsZero() {
		end = end.Add(24*time.Hour - time.Nanosecond)
	}
	return &ledger.DateRange{Start: start, End: end}, nil
}

// parseReportFilters builds report filters from query parameters. The
// legacy include_transfers boolean selects every type; explicit types
// take precedence over it.
func parseReportFilters(r *http.Request) ledger.ReportFilters {
	filters := ledger.ReportFilters{
		SelectedTypes:      ParseListParam(r, "types"),
		SelectedCategories: ParseListParam(r, "categories"),
		SelectedAccounts:   ParseListParam(r, "accounts"),
	}
	if len(filters.SelectedTypes) == 0 && ParseBoolParam(r, "include_transfers", false) {
		filters.SelectedTypes = ledger.FiltersFromLegacy(true).SelectedTypes
	}
	return filters
}
