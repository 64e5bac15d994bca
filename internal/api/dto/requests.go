package dto

import (
	"fmt"
	"time"

	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
)

// TransactionPayload is one transaction in an ingest request. Date is
// accepted as YYYY-MM-DD or RFC 3339.
type TransactionPayload struct {
	ID               string  `json:"id,omitempty"`
	Date             string  `json:"date"`
	Amount           float64 `json:"amount"`
	Description      string  `json:"description"`
	Category         string  `json:"category"`
	Subcategory      string  `json:"subcategory,omitempty"`
	Account          string  `json:"account"`
	Type             string  `json:"type"`
	OriginalCurrency string  `json:"original_currency,omitempty"`
}

// IngestRequest is the body of POST /api/transactions.
type IngestRequest struct {
	Transactions []TransactionPayload `json:"transactions"`
}

// Validate checks the request and converts it to domain transactions.
func (r IngestRequest) Validate() ([]ledger.Transaction, error) {
	if len(r.Transactions) == 0 {
		return nil, fmt.Errorf("transactions must not be empty")
	}

	out := make([]ledger.Transaction, 0, len(r.Transactions))
	for i, p := range r.Transactions {
		date, err := parseDate(p.Date)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}

		txType := ledger.TransactionType(p.Type)
		if p.Type == "" {
			txType = ledger.TypeExpense
		} else if !validType(txType) {
			return nil, fmt.Errorf("transaction %d: unknown type %q", i, p.Type)
		}

		out = append(out, ledger.Transaction{
			ID:               p.ID,
			Date:             date,
			Amount:           p.Amount,
			Description:      p.Description,
			Category:         p.Category,
			Subcategory:      p.Subcategory,
			Account:          p.Account,
			Type:             txType,
			OriginalCurrency: p.OriginalCurrency,
		})
	}
	return out, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if ts, err := time.Parse("2006-01-02", s); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", s)
}

func validType(tt ledger.TransactionType) bool {
	for _, known := range ledger.AllTypes {
		if tt == known {
			return true
		}
	}
	return false
}
