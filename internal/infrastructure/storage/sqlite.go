package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/spendlens/spendlens-backend/internal/domain/ledger"
)

// Storage provides SQLite database access for transaction records.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

const transactionColumns = `id, date, amount, description, category, subcategory,
	account, type, original_currency, is_verified, confidence`

// SaveTransaction saves or updates a transaction, assigning an ID when
// the record has none.
func (s *Storage) SaveTransaction(t *ledger.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	query := `
	INSERT OR REPLACE INTO transactions
	(` + transactionColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		t.ID,
		t.Date.UTC().Format(time.RFC3339),
		t.Amount,
		t.Description,
		t.Category,
		t.Subcategory,
		t.Account,
		string(t.Type),
		t.OriginalCurrency,
		t.IsVerified,
		t.Confidence,
	)
	return err
}

// SaveTransactions saves a batch atomically.
func (s *Storage) SaveTransactions(txs []ledger.Transaction) error {
	dbTx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := dbTx.Prepare(`
	INSERT OR REPLACE INTO transactions
	(` + transactionColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = dbTx.Rollback()
		return err
	}
	defer stmt.Close()

	for i := range txs {
		if txs[i].ID == "" {
			txs[i].ID = uuid.NewString()
		}
		t := txs[i]
		_, err := stmt.Exec(
			t.ID,
			t.Date.UTC().Format(time.RFC3339),
			t.Amount,
			t.Description,
			t.Category,
			t.Subcategory,
			t.Account,
			string(t.Type),
			t.OriginalCurrency,
			t.IsVerified,
			t.Confidence,
		)
		if err != nil {
			_ = dbTx.Rollback()
			return fmt.Errorf("failed to save transaction %s: %w", t.ID, err)
		}
	}

	return dbTx.Commit()
}

// GetAllTransactions returns every stored transaction, oldest first.
func (s *Storage) GetAllTransactions() ([]ledger.Transaction, error) {
	return s.queryTransactions(`
	SELECT `+transactionColumns+`
	FROM transactions ORDER BY date ASC
	`)
}

// ListTransactions returns transactions matching the given filters.
func (s *Storage) ListTransactions(filters TransactionFilters) ([]ledger.Transaction, error) {
	var conditions []string
	var args []interface{}

	if filters.Account != "" {
		conditions = append(conditions, "account = ?")
		args = append(args, filters.Account)
	}
	if filters.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, filters.Category)
	}
	if filters.Type != "" {
		conditions = append(conditions, "type = ?")
		args = append(args, filters.Type)
	}
	if !filters.Start.IsZero() {
		conditions = append(conditions, "date >= ?")
		args = append(args, filters.Start.UTC().Format(time.RFC3339))
	}
	if !filters.End.IsZero() {
		conditions = append(conditions, "date <= ?")
		args = append(args, filters.End.UTC().Format(time.RFC3339))
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date ASC"

	if filters.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filters.Limit, filters.Offset)
	}

	return s.queryTransactions(query, args...)
}

// CountTransactions returns the number of stored transactions.
func (s *Storage) CountTransactions() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM transactions`).Scan(&count)
	return count, err
}

func (s *Storage) queryTransactions(query string, args ...interface{}) ([]ledger.Transaction, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []ledger.Transaction{}
	for rows.Next() {
		var t ledger.Transaction
		var date string
		var txType string
		err := rows.Scan(
			&t.ID,
			&date,
			&t.Amount,
			&t.Description,
			&t.Category,
			&t.Subcategory,
			&t.Account,
			&txType,
			&t.OriginalCurrency,
			&t.IsVerified,
			&t.Confidence,
		)
		if err != nil {
			return nil, err
		}
		t.Type = ledger.TransactionType(txType)
		if parsed, err := time.Parse(time.RFC3339, date); err == nil {
			t.Date = parsed
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
