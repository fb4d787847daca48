package services

import (
	"context"
	"fmt"

	"github.com/ledgerline/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/ledgerline/bookkeeping_app/internal/core/ports/repositories"
	"github.com/ledgerline/bookkeeping_app/internal/core/query"
)

// ReportingService computes dashboard aggregates by fetching the full
// matching set and folding it in memory. Aggregates are derived on demand,
// never stored.
type ReportingService struct {
	BaseService
	txnReader portsrepo.TransactionReader
}

// NewReportingService creates the reporting service over a read-only view
// of the transaction store.
func NewReportingService(txnReader portsrepo.TransactionReader) *ReportingService {
	return &ReportingService{txnReader: txnReader}
}

// Totals sums income and expense over every record matching the filter.
func (s *ReportingService) Totals(ctx context.Context, filter domain.TransactionFilter) (domain.Totals, error) {
	all, err := s.txnReader.ListAllTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch transactions for totals")
		return domain.ZeroTotals(), fmt.Errorf("failed to compute totals: %w", err)
	}
	return query.ComputeTotals(all), nil
}

// MonthlySummary groups matching records by YYYY-MM, summing income and
// expense per group, ordered by ascending month.
func (s *ReportingService) MonthlySummary(ctx context.Context, filter domain.TransactionFilter) ([]domain.MonthlySummary, error) {
	all, err := s.txnReader.ListAllTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch transactions for monthly summary")
		return nil, fmt.Errorf("failed to compute monthly summary: %w", err)
	}
	return query.MonthlyBreakdown(all), nil
}
