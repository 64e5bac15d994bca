package storage

import (
	"sort"
	"strconv"
	"sync"

	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
)

// MockRepository is an in-memory implementation of Repository for testing.
// It stores transactions in a map, making tests fast and isolated.
type MockRepository struct {
	mu           sync.Mutex
	transactions map[string]ledger.Transaction
	nextID       int

	// Hooks for test assertions
	SaveTransactionCalled bool
	GetAllCalled          bool
	LastSavedTransaction  *ledger.Transaction

	// Error injection for testing error paths
	SaveTransactionErr error
	GetAllErr          error
	ListErr            error
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{
		transactions: make(map[string]ledger.Transaction),
		nextID:       1,
	}
}

// Seed loads the given transactions, assigning IDs where missing.
func (m *MockRepository) Seed(txs []ledger.Transaction) {
	for i := range txs {
		tx := txs[i]
		if tx.ID == "" {
			tx.ID = "mock-" + strconv.Itoa(m.nextID)
			m.nextID++
		}
		m.transactions[tx.ID] = tx
	}
}

func (m *MockRepository) SaveTransaction(t *ledger.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveTransactionCalled = true
	if m.SaveTransactionErr != nil {
		return m.SaveTransactionErr
	}
	if t.ID == "" {
		t.ID = "mock-" + strconv.Itoa(m.nextID)
		m.nextID++
	}
	m.transactions[t.ID] = *t
	m.LastSavedTransaction = t
	return nil
}

func (m *MockRepository) SaveTransactions(txs []ledger.Transaction) error {
	for i := range txs {
		if err := m.SaveTransaction(&txs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockRepository) GetAllTransactions() ([]ledger.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetAllCalled = true
	if m.GetAllErr != nil {
		return nil, m.GetAllErr
	}
	out := make([]ledger.Transaction, 0, len(m.transactions))
	for _, t := range m.transactions {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *MockRepository) ListTransactions(filters TransactionFilters) ([]ledger.Transaction, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	all, err := m.GetAllTransactions()
	if err != nil {
		return nil, err
	}

	out := []ledger.Transaction{}
	for _, t := range all {
		if filters.Account != "" && t.Account != filters.Account {
			continue
		}
		if filters.Category != "" && t.Category != filters.Category {
			continue
		}
		if filters.Type != "" && string(t.Type) != filters.Type {
			continue
		}
		if !filters.Start.IsZero() && t.Date.Before(filters.Start) {
			continue
		}
		if !filters.End.IsZero() && t.Date.After(filters.End) {
			continue
		}
		out = append(out, t)
	}

	if filters.Offset > 0 {
		if filters.Offset >= len(out) {
			return []ledger.Transaction{}, nil
		}
		out = out[filters.Offset:]
	}
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, nil
}

func (m *MockRepository) CountTransactions() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.transactions), nil
}

func (m *MockRepository) Close() error {
	return nil
}
