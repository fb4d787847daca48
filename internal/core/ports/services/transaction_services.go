package services

import (
	"context"

	"github.com/ledgerline/bookkeeping_app/internal/core/domain"
	"github.com/ledgerline/bookkeeping_app/internal/dto"
)

// TransactionSvcFacade is the transaction coordinator: it sequences store
// mutations with refreshes of the paginated view and the aggregate view,
// and owns the single view session's filter and pagination state.
type TransactionSvcFacade interface {
	// CreateTransaction validates and stores a new record, then refreshes
	// both views so the table is never left stale after a create.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction applies a partial patch, then refreshes both views.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a record, then refreshes both views.
	DeleteTransaction(ctx context.Context, transactionID string) error

	// ListTransactions is the stateless paginated query used by the table
	// endpoint; it does not touch the view session.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*domain.TransactionPage, error)

	// SetFilters normalizes a partial filter update, resets the page to 1
	// and returns the new state. It does not trigger a fetch itself.
	SetFilters(upd domain.FilterUpdate) domain.FilterState

	// SetPage moves the view to the given 1-based page. No bound checking:
	// out-of-range pages simply come back empty.
	SetPage(page int)

	// SetPageSize changes the page size and resets the page to 1.
	SetPageSize(pageSize int)

	// RefreshPage refetches the current page view.
	RefreshPage(ctx context.Context) error

	// RefreshFull refetches the unpaginated aggregate view.
	RefreshFull(ctx context.Context) error

	// View returns a snapshot copy of the current view state.
	View() domain.ViewState
}
