package repositories

import (
	"context"

	"github.com/ledgerline/bookkeeping_app/internal/core/domain"
)

// TransactionReader defines read operations over the transaction store.
type TransactionReader interface {
	// FindTransactionByID retrieves a single transaction.
	// Returns apperrors.ErrNotFound when the id is absent.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions applies the filter, sorts by date descending and
	// returns the requested 1-based page plus the total match count.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter, page, pageSize int) (*domain.TransactionPage, error)

	// ListAllTransactions returns every matching record, filtered and
	// sorted but not paginated. Used for aggregate computation.
	ListAllTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations over the transaction store.
type TransactionWriter interface {
	// CreateTransaction inserts the record, assigning it a fresh unique id,
	// and returns the stored copy.
	CreateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)

	// UpdateTransaction merges the patch over the existing record. The id
	// itself is immutable. Returns apperrors.ErrNotFound when absent.
	UpdateTransaction(ctx context.Context, transactionID string, patch domain.TransactionPatch) (*domain.Transaction, error)

	// DeleteTransaction removes the record. Deleting an absent id is a
	// no-op, not an error.
	DeleteTransaction(ctx context.Context, transactionID string) error

	// SeedTransactionsIfEmpty inserts the given records only when the store
	// holds no transactions yet, reporting how many were inserted.
	SeedTransactionsIfEmpty(ctx context.Context, txns []domain.Transaction) (int, error)
}

// TransactionRepositoryFacade combines all transaction repository
// interfaces for clients that need the full store contract.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
