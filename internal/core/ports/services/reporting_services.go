package services

import (
	"context"

	"github.com/ledgerline/bookkeeping_app/internal/core/domain"
)

// ReportingSvcFacade defines the dashboard aggregation operations.
type ReportingSvcFacade interface {
	// Totals computes income, expense and net over every record matching
	// the filter.
	Totals(ctx context.Context, filter domain.TransactionFilter) (domain.Totals, error)

	// MonthlySummary groups matching records by month, summing income and
	// expense per group, ordered by ascending month key.
	MonthlySummary(ctx context.Context, filter domain.TransactionFilter) ([]domain.MonthlySummary, error)
}
