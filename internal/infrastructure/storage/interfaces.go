package storage

import (
	"time"

	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
)

// Repository defines the complete storage interface.
// This interface allows swapping implementations (SQLite, PostgreSQL, etc.)
// and makes testing with mocks straightforward.
type Repository interface {
	TransactionRepository
	Close() error
}

// TransactionRepository handles transaction record operations. The core
// reads the transaction set; writes come from the ingestion side.
type TransactionRepository interface {
	// SaveTransaction saves or updates a single transaction. An empty ID
	// is assigned before writing.
	SaveTransaction(t *ledger.Transaction) error

	// SaveTransactions saves a batch in one database transaction.
	SaveTransactions(txs []ledger.Transaction) error

	// GetAllTransactions returns every stored transaction, oldest first.
	GetAllTransactions() ([]ledger.Transaction, error)

	// ListTransactions returns transactions matching the given filters.
	ListTransactions(filters TransactionFilters) ([]ledger.Transaction, error)

	// CountTransactions returns the number of stored transactions.
	CountTransactions() (int, error)
}

// TransactionFilters defines filters for listing transactions.
type TransactionFilters struct {
	Account  string    // Filter by account (empty = all)
	Category string    // Filter by category (empty = all)
	Type     string    // Filter by transaction type (empty = all)
	Start    time.Time // Earliest date, inclusive (zero = unbounded)
	End      time.Time // Latest date, inclusive (zero = unbounded)
	Limit    int       // Max results (0 = no limit)
	Offset   int       // Pagination offset
}
