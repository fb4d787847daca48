// Package memory implements the transaction store as an in-memory,
// insertion-ordered collection behind the repository port. It emulates a
// remote storage service: every operation runs through an injected simnet
// policy that adds randomized latency and, when configured, random
// failures. Records only mutate after the simulated call resolves without
// failing, so a failed operation never leaves partial state behind.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/ledgerline/bookkeeping_app/internal/apperrors"
	"github.com/ledgerline/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/ledgerline/bookkeeping_app/internal/core/ports/repositories"
	"github.com/ledgerline/bookkeeping_app/internal/core/query"
	"github.com/ledgerline/bookkeeping_app/internal/platform/simnet"
)

// TransactionRepository is the in-memory store. Safe for concurrent use;
// there is no genuine parallelism in the application, but interleaved
// asynchronous completions still share the collection.
type TransactionRepository struct {
	sim *simnet.Simulator

	mu    sync.RWMutex
	items []domain.Transaction
}

// NewTransactionRepository creates an empty in-memory store. sim may be nil
// for a fully deterministic store with no delay and no failures.
func NewTransactionRepository(sim *simnet.Simulator) *TransactionRepository {
	return &TransactionRepository{sim: sim}
}

// Ensure implementation matches interface
var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

// CreateTransaction assigns a fresh id and appends the record.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	if err := r.sim.Simulate(ctx); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	txn.TransactionID = uuid.NewString()
	r.items = append(r.items, txn)
	stored := txn
	return &stored, nil
}

// FindTransactionByID retrieves a single record by id.
func (r *TransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	if err := r.sim.Simulate(ctx); err != nil {
		return nil, fmt.Errorf("find transaction: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.items {
		if t.TransactionID == transactionID {
			found := t
			return &found, nil
		}
	}
	return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
}

// ListTransactions filters, sorts newest-first and slices out the requested
// page. Total reports the count of all matching records.
func (r *TransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter, page, pageSize int) (*domain.TransactionPage, error) {
	if err := r.sim.Simulate(ctx); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	r.mu.RLock()
	matched := query.Apply(r.items, filter)
	r.mu.RUnlock()

	return &domain.TransactionPage{
		Items: query.Page(matched, page, pageSize),
		Total: len(matched),
	}, nil
}

// ListAllTransactions returns every matching record, sorted, unpaginated.
func (r *TransactionRepository) ListAllTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if err := r.sim.Simulate(ctx); err != nil {
		return nil, fmt.Errorf("list all transactions: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return query.Apply(r.items, filter), nil
}

// UpdateTransaction merges the patch over the stored record. The id is
// immutable; patching an absent id fails with ErrNotFound.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, transactionID string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	if err := r.sim.Simulate(ctx); err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.items {
		if t.TransactionID == transactionID {
			r.items[i] = t.ApplyPatch(patch)
			updated := r.items[i]
			return &updated, nil
		}
	}
	return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
}

// DeleteTransaction removes the record. Removal is immediate and permanent;
// deleting an absent id is a no-op.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	if err := r.sim.Simulate(ctx); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.items {
		if t.TransactionID == transactionID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

// SeedTransactionsIfEmpty inserts the given records only when the store is
// empty. This is a startup path, so it bypasses the simulated network.
func (r *TransactionRepository) SeedTransactionsIfEmpty(ctx context.Context, txns []domain.Transaction) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.items) > 0 {
		return 0, nil
	}
	for _, t := range txns {
		t.TransactionID = uuid.NewString()
		r.items = append(r.items, t)
	}
	return len(txns), nil
}
