package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/ledgerline/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/ledgerline/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/bookkeeping_app/internal/core/ports/services"
	"github.com/ledgerline/bookkeeping_app/internal/core/query"
	"github.com/ledgerline/bookkeeping_app/internal/dto"
	"github.com/ledgerline/bookkeeping_app/internal/utils"
	"golang.org/x/sync/errgroup"
)

const defaultPageSize = 10

// transactionService coordinates store mutations with the single view
// session. Every mutation refetches the paginated view and the aggregate
// view concurrently so the table and the dashboard never drift apart, and
// per-view sequence numbers discard responses that a newer request has
// already superseded.
type transactionService struct {
	BaseService
	txnRepo portsrepo.TransactionRepositoryFacade

	mu   sync.Mutex
	view domain.ViewState

	pageSeq atomic.Uint64
	fullSeq atomic.Uint64
}

// TransactionServiceOption configures optional behavior of the service.
type TransactionServiceOption func(*transactionService)

// WithDefaultPageSize overrides the initial page size of the view session.
func WithDefaultPageSize(pageSize int) TransactionServiceOption {
	return func(s *transactionService) {
		if pageSize > 0 {
			s.view.PageSize = pageSize
		}
	}
}

// NewTransactionService creates the transaction coordinator over the given
// repository.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, opts ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	s := &transactionService{
		txnRepo: txnRepo,
		view: domain.ViewState{
			Filters:   domain.DefaultFilterState(),
			Page:      1,
			PageSize:  defaultPageSize,
			PageItems: []domain.Transaction{},
			Totals:    domain.ZeroTotals(),
			Monthly:   []domain.MonthlySummary{},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTransaction validates and stores a new record, then refreshes both
// views. The refresh outcome lands in the view state, not in the returned
// error: the record is durably created even when a refetch fails.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	amount, err := utils.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		Date:     req.Date,
		Type:     domain.TransactionType(req.Type),
		Category: req.Category,
		Amount:   amount,
		Notes:    req.Notes,
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}

	created, err := s.txnRepo.CreateTransaction(ctx, txn)
	if err != nil {
		s.LogError(ctx, err, "failed to create transaction")
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	s.LogInfo(ctx, "transaction created", slog.String("transaction_id", created.TransactionID))

	s.refreshBoth(ctx)
	return created, nil
}

// UpdateTransaction applies a partial patch to an existing record, then
// refreshes both views.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	patch, err := toPatch(req)
	if err != nil {
		return nil, err
	}

	updated, err := s.txnRepo.UpdateTransaction(ctx, transactionID, patch)
	if err != nil {
		s.LogError(ctx, err, "failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	s.LogInfo(ctx, "transaction updated", slog.String("transaction_id", transactionID))

	s.refreshBoth(ctx)
	return updated, nil
}

// DeleteTransaction removes a record, then refreshes both views. Deleting
// an id that is already gone still succeeds.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		s.LogError(ctx, err, "failed to delete transaction", slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	s.LogInfo(ctx, "transaction deleted", slog.String("transaction_id", transactionID))

	s.refreshBoth(ctx)
	return nil
}

// ListTransactions runs a stateless paginated query; the view session is
// untouched.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*domain.TransactionPage, error) {
	page, err := s.txnRepo.ListTransactions(ctx, params.Filter(), params.Page, params.PageSize)
	if err != nil {
		s.LogError(ctx, err, "failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return page, nil
}

// SetFilters merges the partial update into the current filter state and
// resets the page to 1. Changing what you look at always starts you back at
// the first page.
func (s *transactionService) SetFilters(upd domain.FilterUpdate) domain.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Filters = domain.NormalizeFilter(s.view.Filters, upd)
	s.view.Page = 1
	return s.view.Filters
}

// SetPage moves the view to the given 1-based page. Out-of-range pages are
// not rejected here; they simply fetch empty.
func (s *transactionService) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Page = page
}

// SetPageSize changes the page size and resets the page to 1.
func (s *transactionService) SetPageSize(pageSize int) {
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.PageSize = pageSize
	s.view.Page = 1
}

// RefreshPage refetches the paginated view. A response is applied only when
// no newer page refresh has started since this one; stale responses are
// dropped so the table always shows the latest requested page.
func (s *transactionService) RefreshPage(ctx context.Context) error {
	seq := s.pageSeq.Add(1)

	s.mu.Lock()
	s.view.LoadingPage = true
	filter := s.view.Filters.Filter
	page, pageSize := s.view.Page, s.view.PageSize
	s.mu.Unlock()

	result, err := s.txnRepo.ListTransactions(ctx, filter, page, pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.pageSeq.Load() {
		// Superseded by a newer refresh; its result wins.
		return nil
	}
	s.view.LoadingPage = false
	if err != nil {
		s.view.PageItems = []domain.Transaction{}
		s.view.TotalCount = 0
		s.view.ErrorPage = "Failed to fetch transactions"
		s.LogError(ctx, err, "failed to refresh page view")
		return fmt.Errorf("failed to refresh page view: %w", err)
	}
	s.view.PageItems = result.Items
	s.view.TotalCount = result.Total
	s.view.ErrorPage = ""
	return nil
}

// RefreshFull refetches the unpaginated matching set and recomputes the
// dashboard aggregates from it. Stale responses are dropped the same way
// RefreshPage drops them.
func (s *transactionService) RefreshFull(ctx context.Context) error {
	seq := s.fullSeq.Add(1)

	s.mu.Lock()
	s.view.LoadingFull = true
	filter := s.view.Filters.Filter
	s.mu.Unlock()

	all, err := s.txnRepo.ListAllTransactions(ctx, filter)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.fullSeq.Load() {
		return nil
	}
	s.view.LoadingFull = false
	if err != nil {
		s.view.Totals = domain.ZeroTotals()
		s.view.Monthly = []domain.MonthlySummary{}
		s.view.ErrorFull = "Failed to fetch summary"
		s.LogError(ctx, err, "failed to refresh aggregate view")
		return fmt.Errorf("failed to refresh aggregate view: %w", err)
	}
	s.view.Totals = query.ComputeTotals(all)
	s.view.Monthly = query.MonthlyBreakdown(all)
	s.view.ErrorFull = ""
	return nil
}

// View returns a snapshot copy of the current view state. Slices are cloned
// so callers can hold the snapshot without racing later refreshes.
func (s *transactionService) View() domain.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.view
	snapshot.PageItems = append([]domain.Transaction{}, s.view.PageItems...)
	snapshot.Monthly = append([]domain.MonthlySummary{}, s.view.Monthly...)
	return snapshot
}

// refreshBoth refetches both views concurrently after a mutation. Failures
// are recorded in the view state by the refresh methods themselves; the
// mutation that triggered the refresh has already succeeded.
func (s *transactionService) refreshBoth(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error { return s.RefreshPage(ctx) })
	g.Go(func() error { return s.RefreshFull(ctx) })
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "view refresh after mutation failed")
	}
}

// toPatch converts the update request into a domain patch, parsing and
// checking the amount when one is provided.
func toPatch(req dto.UpdateTransactionRequest) (domain.TransactionPatch, error) {
	patch := domain.TransactionPatch{
		Date:     req.Date,
		Category: req.Category,
		Notes:    req.Notes,
	}
	if req.Type != nil {
		t := domain.TransactionType(*req.Type)
		patch.Type = &t
	}
	if req.Amount != nil {
		amount, err := utils.ParseAmount(*req.Amount)
		if err != nil {
			return domain.TransactionPatch{}, err
		}
		patch.Amount = &amount
	}
	return patch, nil
}
