// Package sqlite implements the transaction repository port on a local
// SQLite database: the durable variant of the store. The whole dataset
// lives in a single flat table, dates are stored as TEXT so they compare
// the same way the in-memory engine compares them, and the autoincrement
// seq column gives same-date records a deterministic order.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerline/bookkeeping_app/internal/apperrors"
	"github.com/ledgerline/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/ledgerline/bookkeeping_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a repository over an open database,
// running schema migrations first.
func NewTransactionRepository(db *sql.DB) (*TransactionRepository, error) {
	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrate transactions schema: %w", err)
	}
	return &TransactionRepository{db: db}, nil
}

// Ensure implementation matches interface
var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

const transactionColumns = "transaction_id, date, type, category, amount, notes"

// filterClause renders the canonical filter as a WHERE clause. Filtering is
// conjunctive; the category restriction is a case-insensitive substring
// match, mirroring the query engine.
func filterClause(f domain.TransactionFilter) (string, []any) {
	var conds []string
	var args []any

	if f.From != "" {
		conds = append(conds, "date >= ?")
		args = append(args, f.From)
	}
	if f.To != "" {
		conds = append(conds, "date <= ?")
		args = append(args, f.To)
	}
	if f.Type != "" {
		conds = append(conds, "type = ?")
		args = append(args, string(f.Type))
	}
	if f.Category != "" {
		conds = append(conds, "instr(lower(category), lower(?)) > 0")
		args = append(args, f.Category)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanTransaction(row interface{ Scan(...any) error }) (domain.Transaction, error) {
	var t domain.Transaction
	var typ, amount string
	if err := row.Scan(&t.TransactionID, &t.Date, &typ, &t.Category, &amount, &t.Notes); err != nil {
		return domain.Transaction{}, err
	}
	t.Type = domain.TransactionType(typ)
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("stored amount %q is not a decimal: %w", amount, err)
	}
	t.Amount = amt
	return t, nil
}

// CreateTransaction assigns a fresh id and inserts the record.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	txn.TransactionID = uuid.NewString()

	query := `
		INSERT INTO transactions (transaction_id, date, type, category, amount, notes)
		VALUES (?, ?, ?, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, query,
		txn.TransactionID,
		txn.Date,
		string(txn.Type),
		txn.Category,
		txn.Amount.String(),
		txn.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return &txn, nil
}

// FindTransactionByID retrieves a single record by id.
func (r *TransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := "SELECT " + transactionColumns + " FROM transactions WHERE transaction_id = ?;"

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return &t, nil
}

// ListTransactions returns one page of matching records, newest first, plus
// the total match count.
func (r *TransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter, page, pageSize int) (*domain.TransactionPage, error) {
	if page < 1 || pageSize < 1 {
		return &domain.TransactionPage{Items: []domain.Transaction{}}, nil
	}

	where, args := filterClause(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM transactions" + where + ";"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	listQuery := "SELECT " + transactionColumns + " FROM transactions" + where +
		" ORDER BY date DESC, seq ASC LIMIT ? OFFSET ?;"
	listArgs := append(append([]any{}, args...), pageSize, (page-1)*pageSize)

	items, err := r.queryTransactions(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, err
	}
	return &domain.TransactionPage{Items: items, Total: total}, nil
}

// ListAllTransactions returns every matching record, sorted, unpaginated.
func (r *TransactionRepository) ListAllTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	where, args := filterClause(filter)
	query := "SELECT " + transactionColumns + " FROM transactions" + where +
		" ORDER BY date DESC, seq ASC;"
	return r.queryTransactions(ctx, query, args...)
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	items := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return items, nil
}

// UpdateTransaction merges the patch over the stored record inside a
// database transaction so concurrent interleavings never observe a partial
// merge. The id is immutable.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, transactionID string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin update: %w", err)
	}
	defer tx.Rollback()

	query := "SELECT " + transactionColumns + " FROM transactions WHERE transaction_id = ?;"
	current, err := scanTransaction(tx.QueryRowContext(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load transaction for update: %w", err)
	}

	updated := current.ApplyPatch(patch)
	_, err = tx.ExecContext(ctx, `
		UPDATE transactions
		SET date = ?, type = ?, category = ?, amount = ?, notes = ?
		WHERE transaction_id = ?;
	`,
		updated.Date,
		string(updated.Type),
		updated.Category,
		updated.Amount.String(),
		updated.Notes,
		transactionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit update: %w", err)
	}
	return &updated, nil
}

// DeleteTransaction removes the record; deleting an absent id is a no-op.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM transactions WHERE transaction_id = ?;", transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// SeedTransactionsIfEmpty inserts the given records only when the table is
// empty, all within one database transaction.
func (r *TransactionRepository) SeedTransactionsIfEmpty(ctx context.Context, txns []domain.Transaction) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin seed: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions;").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions for seeding: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (transaction_id, date, type, category, amount, notes)
		VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare seed insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range txns {
		if _, err := stmt.ExecContext(ctx, uuid.NewString(), t.Date, string(t.Type), t.Category, t.Amount.String(), t.Notes); err != nil {
			return 0, fmt.Errorf("failed to seed transaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}
	return len(txns), nil
}
