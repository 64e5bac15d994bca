package classifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
)

func makeTransaction(txType ledger.TransactionType, category, description string) ledger.Transaction {
	return ledger.Transaction{
		ID:          "tx1",
		Date:        time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC),
		Amount:      -50.00,
		Type:        txType,
		Category:    category,
		Description: description,
	}
}

func TestIsInternalTransfer_TypeFieldAuthoritative(t *testing.T) {
	tx := makeTransaction(ledger.TypeTransfer, "Groceries", "WHOLEFDS 10292")

	assert.True(t, IsInternalTransfer(tx))
}

func TestIsInternalTransfer_CategoryMatch(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     bool
	}{
		{"exact", "Internal Transfer", true},
		{"plural", "Transfers", true},
		{"between accounts", "Between Accounts", true},
		{"bank transfer", "Bank Transfer", true},
		{"substring", "My Account Transfer Bucket", true},
		{"unrelated", "Groceries", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := makeTransaction(ledger.TypeExpense, tt.category, "POS PURCHASE")
			assert.Equal(t, tt.want, IsInternalTransfer(tx))
		})
	}
}

func TestIsInternalTransfer_DescriptionKeywords(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        bool
	}{
		{"online transfer", "Online Transfer to Savings Account", true},
		{"ach", "ACH TRANSFER CHASE", true},
		{"zelle", "Zelle Transfer to John", true},
		{"venmo", "VENMO TRANSFER 12345", true},
		{"atm withdrawal", "ATM WITHDRAWAL MAIN ST", true},
		{"cash deposit", "CASH DEPOSIT BRANCH 22", true},
		{"move money", "Move Money to brokerage", true},
		{"fund transfer", "FUND TRANSFER REF 9921", true},
		{"regular purchase", "STARBUCKS STORE 1234", false},
		{"venmo payment", "VENMO PAYMENT PIZZA", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := makeTransaction(ledger.TypeExpense, "Shopping", tt.description)
			assert.Equal(t, tt.want, IsInternalTransfer(tx))
		})
	}
}

func TestIsInternalTransfer_Patterns(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        bool
	}{
		{"atm hash", "ATM #4432 MAIN ST", true},
		{"atm cash", "ATM CASH 0821", true},
		{"transfer then account word", "TRANSFER TO MY SAVINGS 0921", true},
		{"account word then transfer", "SAVINGS AUTO TRANSFER", true},
		{"checking pair", "CHECKING 1234 TRANSFER", true},
		{"no pairing", "SAVINGS ON SHOES PROMO", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := makeTransaction(ledger.TypeExpense, "Shopping", tt.description)
			assert.Equal(t, tt.want, IsInternalTransfer(tx))
		})
	}
}

func TestIsInternalTransfer_FieldsDisagree(t *testing.T) {
	// Upstream categorization actively lies here: expense type, expense
	// category, but the description is an obvious transfer. The
	// description must win so report totals stay clean.
	tx := makeTransaction(ledger.TypeExpense, "Housing", "Online Transfer to Savings Account")

	assert.True(t, IsInternalTransfer(tx))
}

func TestIsAssetAllocation(t *testing.T) {
	invest := makeTransaction(ledger.TypeAssetAllocation, "Investments", "VANGUARD BUY VTSAX")
	expense := makeTransaction(ledger.TypeExpense, "Investments", "VANGUARD BUY VTSAX")

	assert.True(t, IsAssetAllocation(invest))
	// Content never implies asset allocation; only the type field does.
	assert.False(t, IsAssetAllocation(expense))
}
